package spatial

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// KissResult reports one kissing-pin insertion performed by AutoWireKiss.
type KissResult struct {
	InstanceIndex int
	PinIndex      int
	World         xgeom.Point
	WireIndex     int
}

// AutoWireKiss automatically wires up newly placed or moved instances to
// whatever they now touch. For every selected instance pin, it transforms
// the pin's local centre to world coordinates and queries the index at that
// point. The pin "kisses" iff no selected wire is incident at that point
// and there exists, in the same bucket, (a) an unselected instance pin at
// exactly that point, or (b) an unselected wire touching the point where
// the point is not already an endpoint of that wire; in that case a
// degenerate, selected wire is inserted there. All insertions from one call should be wrapped by the
// caller in a single undo transaction.
func AutoWireKiss(sheet *doc.Sheet, ix *Index) []KissResult {
	var results []KissResult

	type selectedPin struct {
		instIdx, pinIdx int
		world           xgeom.Point
	}
	var selected []selectedPin
	for i := range sheet.Instances {
		inst := &sheet.Instances[i]
		if !inst.Selected || inst.SymbolIndex < 0 {
			continue
		}
		sym, ok := sheet.Symbols.Resolve(inst.SymbolIndex)
		if !ok {
			continue
		}
		for p, pin := range sym.Pins {
			world := xgeom.Transform(pin.Position, inst.Rotation, inst.Flip, inst.Position)
			selected = append(selected, selectedPin{i, p, world})
		}
	}

	for _, sp := range selected {
		blocked := false
		for _, ref := range ix.WiresTouching(sheet, sp.world) {
			if sheet.Wires[ref.WireIndex].Selected {
				blocked = true // a selected incident wire blocks kissing here
				break
			}
		}
		if blocked {
			continue
		}
		if kissesUnselectedPin(sheet, ix, sp.instIdx, sp.world) || kissesUnselectedWire(sheet, ix, sp.world) {
			w := doc.Wire{Start: sp.world, End: sp.world, Selected: true}
			idx := sheet.AddWire(w)
			ix.XInsertWire(idx, w)
			results = append(results, KissResult{
				InstanceIndex: sp.instIdx, PinIndex: sp.pinIdx, World: sp.world, WireIndex: idx,
			})
		}
	}
	return results
}

func kissesUnselectedPin(sheet *doc.Sheet, ix *Index, selfInst int, world xgeom.Point) bool {
	for _, ref := range ix.PinsAt(world) {
		if ref.InstanceIndex == selfInst {
			continue
		}
		// Only an unselected pin counts: a coincident pin on another
		// selected instance moves with the drag and needs no tether.
		if sheet.Instances[ref.InstanceIndex].Selected {
			continue
		}
		return true
	}
	return false
}

func kissesUnselectedWire(sheet *doc.Sheet, ix *Index, world xgeom.Point) bool {
	touching := ix.WiresTouching(sheet, world)

	// A selected wire incident at the point blocks kissing via the wire
	// path entirely, regardless of which other wire would have matched.
	for _, ref := range touching {
		if sheet.Wires[ref.WireIndex].Selected {
			return false
		}
	}

	for _, ref := range touching {
		w := sheet.Wires[ref.WireIndex]
		if WireEndpoint(w, world) {
			continue // already a wire endpoint of that wire
		}
		return true
	}
	return false
}
