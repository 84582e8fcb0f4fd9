// Package selection implements the selection set and dirty-rect/bbox
// controller, plus the copy/paste and rotate/flip operations on
// a selection.
package selection

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// ObjectKind tags what kind of object a Tuple refers to.
type ObjectKind int

const (
	KindInstance ObjectKind = iota
	KindWire
	KindGeometry
	KindText
)

// Tuple is one (kind, index, layer) selection-set entry.
type Tuple struct {
	Kind  ObjectKind
	Index int
	Layer int // meaningful only for KindGeometry
}

// Rebuild scans the sheet's per-object sel flags and returns a packed
// selection set.
func Rebuild(sheet *doc.Sheet) []Tuple {
	var out []Tuple
	for i, inst := range sheet.Instances {
		if inst.Selected {
			out = append(out, Tuple{Kind: KindInstance, Index: i})
		}
	}
	for i, w := range sheet.Wires {
		if w.Selected {
			out = append(out, Tuple{Kind: KindWire, Index: i})
		}
	}
	for layer, items := range sheet.Geometry {
		for i, g := range items {
			if g.Selected {
				out = append(out, Tuple{Kind: KindGeometry, Index: i, Layer: int(layer)})
			}
		}
	}
	return out
}

// ClearAll unselects every object on the sheet.
func ClearAll(sheet *doc.Sheet) {
	for i := range sheet.Instances {
		sheet.Instances[i].Selected = false
	}
	for i := range sheet.Wires {
		sheet.Wires[i].Selected = false
	}
	for layer := range sheet.Geometry {
		items := sheet.Geometry[layer]
		for i := range items {
			items[i].Selected = false
		}
	}
}

// BoundingBox returns the union bbox of every selected object.
func BoundingBox(sheet *doc.Sheet) xgeom.Rect {
	bb := xgeom.EmptyRect()
	for _, inst := range sheet.Instances {
		if inst.Selected {
			bb.ExpandRect(inst.BBox)
		}
	}
	for _, w := range sheet.Wires {
		if w.Selected {
			bb.Expand(w.Start)
			bb.Expand(w.End)
		}
	}
	for _, items := range sheet.Geometry {
		for _, g := range items {
			if g.Selected {
				bb.ExpandRect(geometryBBox(g))
			}
		}
	}
	return bb
}

func geometryBBox(g doc.GeometryItem) xgeom.Rect {
	switch g.Kind {
	case doc.GeomLine:
		bb := xgeom.EmptyRect()
		bb.Expand(xgeom.Point{X: g.Line.X1, Y: g.Line.Y1})
		bb.Expand(xgeom.Point{X: g.Line.X2, Y: g.Line.Y2})
		return bb
	case doc.GeomRect:
		return g.RectG.Rect.Normalize()
	case doc.GeomArc:
		r := g.ArcG.Radius
		c := g.ArcG.Center
		return xgeom.Rect{X1: c.X - r, Y1: c.Y - r, X2: c.X + r, Y2: c.Y + r}
	case doc.GeomPolygon:
		return g.Poly.BoundingBox()
	default:
		return xgeom.EmptyRect()
	}
}
