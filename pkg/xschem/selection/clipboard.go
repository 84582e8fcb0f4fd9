package selection

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// Clipboard holds a copied subgraph of selected instances/wires, rebased so
// (0,0) is the selection bbox's top-left corner.
type Clipboard struct {
	origin    xgeom.Point
	instances []doc.Instance
	wires     []doc.Wire
}

// Copy captures every selected instance and wire on sheet into a Clipboard,
// with coordinates relative to the selection bbox's min corner.
func Copy(sheet *doc.Sheet) Clipboard {
	bb := BoundingBox(sheet)
	cb := Clipboard{origin: xgeom.Point{X: bb.X1, Y: bb.Y1}}

	for _, inst := range sheet.Instances {
		if !inst.Selected {
			continue
		}
		rebased := inst
		rebased.Position = xgeom.Point{X: inst.Position.X - cb.origin.X, Y: inst.Position.Y - cb.origin.Y}
		cb.instances = append(cb.instances, rebased)
	}
	for _, w := range sheet.Wires {
		if !w.Selected {
			continue
		}
		rebased := w
		rebased.Start = xgeom.Point{X: w.Start.X - cb.origin.X, Y: w.Start.Y - cb.origin.Y}
		rebased.End = xgeom.Point{X: w.End.X - cb.origin.X, Y: w.End.Y - cb.origin.Y}
		cb.wires = append(cb.wires, rebased)
	}
	return cb
}

// Empty reports whether the clipboard holds nothing.
func (cb Clipboard) Empty() bool {
	return len(cb.instances) == 0 && len(cb.wires) == 0
}

// Paste re-instantiates the clipboard's contents at cursor, selecting the
// newly inserted objects and deselecting everything else (matching
// interactive paste semantics). Clipboard contents carry the symbol indices
// of the sheet they were copied from, so Paste is only valid against that
// same sheet (cross-sheet paste belongs to the out-of-scope scripting
// bridge, which can re-resolve by name).
func Paste(sheet *doc.Sheet, cb Clipboard, cursor xgeom.Point) {
	ClearAll(sheet)

	for _, inst := range cb.instances {
		placed := inst
		placed.Position = xgeom.Point{X: inst.Position.X + cursor.X, Y: inst.Position.Y + cursor.Y}
		placed.Selected = true
		sheet.Instances = append(sheet.Instances, placed)
	}
	for _, w := range cb.wires {
		placed := w
		placed.Start = xgeom.Point{X: w.Start.X + cursor.X, Y: w.Start.Y + cursor.Y}
		placed.End = xgeom.Point{X: w.End.X + cursor.X, Y: w.End.Y + cursor.Y}
		placed.Selected = true
		sheet.Wires = append(sheet.Wires, placed)
	}

	sheet.PrepHashInst = false
	sheet.PrepHashWires = false
	sheet.SetModify(true)
}
