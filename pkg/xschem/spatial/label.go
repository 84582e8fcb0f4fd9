package spatial

import (
	"strings"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// LabelPlacement describes one label-attachment insertion.
type LabelPlacement struct {
	InstanceIndex int
	PinIndex      int
	SymbolName    string // "lab_pin.sym" or "lab_wire.sym"
	World         xgeom.Point
	Rotation      xgeom.Rotation
	Flip          bool
	LabelProperty string // the placed label's "lab=" value
}

// AttachLabels computes label placements: for each selected instance, iterate
// its pins; for each pin not already connected in the index, compute a
// label placement. useLabWire selects "lab_wire.sym" over the default
// "lab_pin.sym". The caller is responsible for actually instantiating the
// label via doc.Sheet.PlaceInstance and for bracketing the whole batch in a
// single bbox accumulation (first call begins it, last ends it; see
// selection.BBoxController).
func AttachLabels(sheet *doc.Sheet, ix *Index, textRotationDelta xgeom.Rotation, useLabWire, prefixWithInstName bool) []LabelPlacement {
	symName := "lab_pin.sym"
	if useLabWire {
		symName = "lab_wire.sym"
	}

	var out []LabelPlacement
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
			if isConnected(sheet, ix, i, p, world) {
				continue
			}

			dir := labelDirection(pin.Direction, inst.Flip, inst.Rotation, textRotationDelta)

			label := pin.Name
			if prefixWithInstName {
				label = inst.InstanceName + "_" + label
			}

			out = append(out, LabelPlacement{
				InstanceIndex: i,
				PinIndex:      p,
				SymbolName:    symName,
				World:         world,
				Rotation:      dir,
				Flip:          inst.Flip,
				LabelProperty: label,
			})
		}
	}
	return out
}

// isConnected reports whether anything other than the examined pin itself
// sits at world: a touching wire or another instance's pin.
func isConnected(sheet *doc.Sheet, ix *Index, selfInst, selfPin int, world xgeom.Point) bool {
	if len(ix.WiresTouching(sheet, world)) > 0 {
		return true
	}
	for _, ref := range ix.PinsAt(world) {
		if ref.InstanceIndex == selfInst && ref.PinIndex == selfPin {
			continue
		}
		return true
	}
	return false
}

// labelDirection derives the label's orientation from the pin's dir
// attribute ("in" vs "out"/"inout"), flipped with the instance flip and
// rotated with the instance rotation plus a user text-rotation delta.
func labelDirection(pinDir string, instFlip bool, instRot, delta xgeom.Rotation) xgeom.Rotation {
	base := xgeom.Rot0
	if strings.EqualFold(pinDir, "out") || strings.EqualFold(pinDir, "inout") {
		base = xgeom.Rot180
	}
	rot := (int(base) + int(instRot) + int(delta)) % 4
	if instFlip && rot%2 == 1 {
		rot = (rot + 2) % 4
	}
	return xgeom.Rotation(rot)
}
