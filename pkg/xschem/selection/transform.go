package selection

import (
	"math"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// RotateSelection rotates every selected Instance/Wire/GeometryItem by 90
// degrees around the selection bbox center.
func RotateSelection(sheet *doc.Sheet) {
	center := centerOf(BoundingBox(sheet))
	rotatePoint := func(p xgeom.Point) xgeom.Point {
		local := xgeom.Point{X: p.X - center.X, Y: p.Y - center.Y}
		r := xgeom.RotatePoint(local, xgeom.Rot90, false)
		return xgeom.Point{X: r.X + center.X, Y: r.Y + center.Y}
	}

	for i := range sheet.Instances {
		inst := &sheet.Instances[i]
		if !inst.Selected {
			continue
		}
		inst.Position = rotatePoint(inst.Position)
		if inst.Flip {
			// Flip applies after rotation, so a flipped instance steps
			// its rotation the other way to turn by +90 degrees.
			inst.Rotation = (inst.Rotation + 3) % 4
		} else {
			inst.Rotation = (inst.Rotation + 1) % 4
		}
	}
	for i := range sheet.Wires {
		w := &sheet.Wires[i]
		if !w.Selected {
			continue
		}
		w.Start = rotatePoint(w.Start)
		w.End = rotatePoint(w.End)
	}
	for layer := range sheet.Geometry {
		items := sheet.Geometry[layer]
		for i := range items {
			rotateGeometry(&items[i], rotatePoint)
			if items[i].Selected && items[i].Kind == doc.GeomArc {
				items[i].ArcG.StartAngle = math.Mod(items[i].ArcG.StartAngle+90, 360)
			}
		}
	}
	sheet.PrepHashInst = false
	sheet.PrepHashWires = false
	sheet.SetModify(true)
}

// FlipSelection mirrors every selected object across the vertical axis
// through the selection bbox center.
func FlipSelection(sheet *doc.Sheet) {
	center := centerOf(BoundingBox(sheet))
	flipPoint := func(p xgeom.Point) xgeom.Point {
		return xgeom.Point{X: 2*center.X - p.X, Y: p.Y}
	}

	for i := range sheet.Instances {
		inst := &sheet.Instances[i]
		if !inst.Selected {
			continue
		}
		inst.Position = flipPoint(inst.Position)
		inst.Flip = !inst.Flip
	}
	for i := range sheet.Wires {
		w := &sheet.Wires[i]
		if !w.Selected {
			continue
		}
		w.Start = flipPoint(w.Start)
		w.End = flipPoint(w.End)
	}
	for layer := range sheet.Geometry {
		items := sheet.Geometry[layer]
		for i := range items {
			flipGeometry(&items[i], flipPoint)
		}
	}
	sheet.PrepHashInst = false
	sheet.PrepHashWires = false
	sheet.SetModify(true)
}

func centerOf(bb xgeom.Rect) xgeom.Point {
	if bb.IsEmpty() {
		return xgeom.Point{}
	}
	n := bb.Normalize()
	return xgeom.Point{X: (n.X1 + n.X2) / 2, Y: (n.Y1 + n.Y2) / 2}
}

func rotateGeometry(g *doc.GeometryItem, f func(xgeom.Point) xgeom.Point) {
	if !g.Selected {
		return
	}
	switch g.Kind {
	case doc.GeomLine:
		p1 := f(xgeom.Point{X: g.Line.X1, Y: g.Line.Y1})
		p2 := f(xgeom.Point{X: g.Line.X2, Y: g.Line.Y2})
		g.Line = doc.Line{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}
	case doc.GeomRect:
		p1 := f(xgeom.Point{X: g.RectG.Rect.X1, Y: g.RectG.Rect.Y1})
		p2 := f(xgeom.Point{X: g.RectG.Rect.X2, Y: g.RectG.Rect.Y2})
		g.RectG.Rect = xgeom.Rect{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}
	case doc.GeomArc:
		g.ArcG.Center = f(g.ArcG.Center)
	case doc.GeomPolygon:
		for i := range g.Poly.X {
			p := f(xgeom.Point{X: g.Poly.X[i], Y: g.Poly.Y[i]})
			g.Poly.X[i], g.Poly.Y[i] = p.X, p.Y
		}
	}
}

func flipGeometry(g *doc.GeometryItem, f func(xgeom.Point) xgeom.Point) {
	rotateGeometry(g, f) // identical shape, different point transform
	if g.Selected && g.Kind == doc.GeomArc && g.ArcG.Sweep != 360 {
		// Mirroring across a vertical axis maps angle a to 180-a and
		// reverses the sweep direction.
		g.ArcG.StartAngle = 180 - g.ArcG.StartAngle
		g.ArcG.Sweep = -g.ArcG.Sweep
	}
}
