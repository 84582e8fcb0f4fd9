package doc

import (
	"fmt"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/attr"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

// ModifyListener is notified whenever SetModify(true) runs, giving
// collaborators (notably the floater cache) a hook to invalidate their own
// derived state before the next draw.
type ModifyListener func()

// SetModify updates the sheet's modified flag and, when set to true, clears
// every prep_hash_* freshness bit and runs every registered ModifyListener.
func (s *Sheet) SetModify(modified bool, listeners ...ModifyListener) {
	s.Modified = modified
	if modified {
		s.PrepHashInst = false
		s.PrepHashWires = false
		s.PrepNetStructs = false
		s.PrepHiStructs = false
		for _, l := range listeners {
			if l != nil {
				l()
			}
		}
	}
}

// ValidateInstance checks the cross-reference invariant for a single instance: its
// SymbolIndex is either -1 or resolves, and its pin/net-name array matches
// the symbol's pin count.
func (s *Sheet) ValidateInstance(inst *Instance) error {
	if inst.SymbolIndex == -1 {
		return nil
	}
	sym, ok := s.Symbols.Resolve(inst.SymbolIndex)
	if !ok {
		return fmt.Errorf("doc: instance %q has invalid symbol index %d", inst.Name, inst.SymbolIndex)
	}
	if len(inst.NetNames) != sym.PinCount() {
		return fmt.Errorf("doc: instance %q has %d net names, symbol %q has %d pins",
			inst.Name, len(inst.NetNames), sym.Name, sym.PinCount())
	}
	return nil
}

// PlaceInstance adds a new instance of the named symbol at position,
// inheriting a copy of the symbol's attribute string and uniquifying its
// name= property against every other live instance name. Returns the new instance's index.
func (s *Sheet) PlaceInstance(symbolName string, pos xgeom.Point, rot xgeom.Rotation, flip bool) (int, error) {
	symIdx, err := s.Symbols.MatchSymbol(symbolName)
	if err != nil {
		return -1, err
	}
	sym, _ := s.Symbols.Resolve(symIdx)

	taken := make(map[string]bool, len(s.Instances))
	for _, other := range s.Instances {
		taken[other.Name] = true
	}
	name := attr.UniqueName(sym.Name, taken)

	props := attr.Set(sym.Attributes, "name", name)

	inst := Instance{
		SymbolIndex: symIdx,
		Name:        name,
		Position:    pos,
		Rotation:    rot,
		Flip:        flip,
		Properties:  props,
		NetNames:    make([]string, sym.PinCount()),
	}
	inst.Flags = attr.InstanceFlags(inst.Properties)
	inst.BBox = instanceBBox(sym.BBox, pos, rot, flip)

	s.Instances = append(s.Instances, inst)
	s.PrepHashInst = false
	s.SetModify(true)
	return len(s.Instances) - 1, nil
}

func instanceBBox(local xgeom.Rect, pos xgeom.Point, rot xgeom.Rotation, flip bool) xgeom.Rect {
	corners := []xgeom.Point{
		{X: local.X1, Y: local.Y1}, {X: local.X2, Y: local.Y1},
		{X: local.X2, Y: local.Y2}, {X: local.X1, Y: local.Y2},
	}
	bb := xgeom.EmptyRect()
	for _, c := range corners {
		bb.Expand(xgeom.Transform(c, rot, flip, pos))
	}
	return bb
}

// DeleteInstance removes the instance at idx by shift-compaction, matching
// the symbol cache's recycling convention.
func (s *Sheet) DeleteInstance(idx int) error {
	if idx < 0 || idx >= len(s.Instances) {
		return fmt.Errorf("doc: DeleteInstance: index %d out of range", idx)
	}
	s.Instances = append(s.Instances[:idx], s.Instances[idx+1:]...)
	s.PrepHashInst = false
	s.SetModify(true)
	return nil
}

// AddWire appends a wire and clears the wire-hash freshness bit.
func (s *Sheet) AddWire(w Wire) int {
	s.Wires = append(s.Wires, w)
	s.PrepHashWires = false
	s.SetModify(true)
	return len(s.Wires) - 1
}

// DeleteWire removes the wire at idx by shift-compaction.
func (s *Sheet) DeleteWire(idx int) error {
	if idx < 0 || idx >= len(s.Wires) {
		return fmt.Errorf("doc: DeleteWire: index %d out of range", idx)
	}
	s.Wires = append(s.Wires[:idx], s.Wires[idx+1:]...)
	s.PrepHashWires = false
	s.SetModify(true)
	return nil
}

// AddGeometry appends a free-form geometry item (line/rect/arc/polygon,
// placed by the interaction state machine's non-wire FSMs) to its layer's
// slice and returns its index within that layer.
func (s *Sheet) AddGeometry(g GeometryItem) int {
	if s.Geometry == nil {
		s.Geometry = make(map[symbol.Layer][]GeometryItem)
	}
	s.Geometry[g.Layer] = append(s.Geometry[g.Layer], g)
	s.SetModify(true)
	return len(s.Geometry[g.Layer]) - 1
}

// DeleteGeometry removes the geometry item at idx on layer by
// shift-compaction.
func (s *Sheet) DeleteGeometry(layer symbol.Layer, idx int) error {
	items := s.Geometry[layer]
	if idx < 0 || idx >= len(items) {
		return fmt.Errorf("doc: DeleteGeometry: index %d out of range on layer %d", idx, layer)
	}
	s.Geometry[layer] = append(items[:idx], items[idx+1:]...)
	s.SetModify(true)
	return nil
}

// AddText appends a sheet-level TextItem and returns its index.
func (s *Sheet) AddText(t TextItem) int {
	s.Texts = append(s.Texts, t)
	s.SetModify(true)
	return len(s.Texts) - 1
}

// Clear empties the sheet, including the symbol cache.
func (s *Sheet) Clear() {
	s.Instances = nil
	s.Wires = nil
	s.Texts = nil
	s.Geometry = nil
	s.Symbols.Clear()
	s.PrepHashInst = false
	s.PrepHashWires = false
	s.PrepNetStructs = false
	s.PrepHiStructs = false
}

// SnapToGrid rounds every coordinate on the sheet (instance positions, wire
// endpoints, free geometry, text positions) to the nearest multiple of
// grid.
func (s *Sheet) SnapToGrid(grid float64) {
	if grid <= 0 {
		return
	}
	snap := func(v float64) float64 {
		return roundTo(v, grid)
	}
	for i := range s.Instances {
		s.Instances[i].Position.X = snap(s.Instances[i].Position.X)
		s.Instances[i].Position.Y = snap(s.Instances[i].Position.Y)
	}
	for i := range s.Wires {
		s.Wires[i].Start.X = snap(s.Wires[i].Start.X)
		s.Wires[i].Start.Y = snap(s.Wires[i].Start.Y)
		s.Wires[i].End.X = snap(s.Wires[i].End.X)
		s.Wires[i].End.Y = snap(s.Wires[i].End.Y)
	}
	for i := range s.Texts {
		s.Texts[i].X = snap(s.Texts[i].X)
		s.Texts[i].Y = snap(s.Texts[i].Y)
	}
	for _, items := range s.Geometry {
		for i := range items {
			g := &items[i]
			g.Line = Line{X1: snap(g.Line.X1), Y1: snap(g.Line.Y1), X2: snap(g.Line.X2), Y2: snap(g.Line.Y2)}
			r := g.RectG.Rect
			g.RectG.Rect = xgeom.Rect{X1: snap(r.X1), Y1: snap(r.Y1), X2: snap(r.X2), Y2: snap(r.Y2)}
			g.ArcG.Center = xgeom.Point{X: snap(g.ArcG.Center.X), Y: snap(g.ArcG.Center.Y)}
			for j := range g.Poly.X {
				g.Poly.X[j], g.Poly.Y[j] = snap(g.Poly.X[j]), snap(g.Poly.Y[j])
			}
		}
	}
	s.PrepHashInst = false
	s.PrepHashWires = false
	s.SetModify(true)
}

func roundTo(v, grid float64) float64 {
	q := v / grid
	if q >= 0 {
		return float64(int64(q+0.5)) * grid
	}
	return float64(int64(q-0.5)) * grid
}
