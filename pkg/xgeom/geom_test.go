package xgeom

import (
	"math"
	"testing"
)

func TestRectNormalizeAndUnion(t *testing.T) {
	r := Rect{X1: 10, Y1: 10, X2: 0, Y2: 0}
	n := r.Normalize()
	if n.X1 != 0 || n.X2 != 10 {
		t.Fatalf("normalize failed: %+v", n)
	}
	u := EmptyRect()
	u.ExpandRect(Rect{X1: 0, Y1: 0, X2: 5, Y2: 5})
	u.ExpandRect(Rect{X1: 3, Y1: -2, X2: 8, Y2: 1})
	if u.X1 != 0 || u.Y1 != -2 || u.X2 != 8 || u.Y2 != 5 {
		t.Fatalf("union mismatch: %+v", u)
	}
}

func TestPolygonClosed(t *testing.T) {
	var p Polygon
	p.AddVertex(Point{0, 0})
	p.AddVertex(Point{1, 0})
	p.AddVertex(Point{1, 1})
	if p.Closed() {
		t.Fatal("polygon should not be closed yet")
	}
	p.AddVertex(Point{0, 0})
	if !p.Closed() {
		t.Fatal("polygon should be closed when last vertex equals the first")
	}
}

func TestTransformRotateFlip(t *testing.T) {
	p := Point{1, 0}
	got := Transform(p, Rot90, false, Point{10, 10})
	want := Point{10, 11}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("rot90: got %+v want %+v", got, want)
	}

	flipped := Transform(p, Rot0, true, Point{0, 0})
	if flipped.X != -1 || flipped.Y != 0 {
		t.Fatalf("flip: got %+v", flipped)
	}
}

func TestThreePointArcFullCircle(t *testing.T) {
	arc, ok := ThreePointArc(Point{1, 0}, Point{0, 1}, Point{-1, 0})
	if !ok {
		t.Fatal("expected valid arc")
	}
	if math.Abs(arc.Radius-1) > 1e-6 {
		t.Fatalf("radius = %v, want 1", arc.Radius)
	}
	full := FullCircle(arc)
	if full.Sweep != 360 {
		t.Fatalf("forced full circle sweep = %v", full.Sweep)
	}
	if full.Radius <= 0 {
		t.Fatal("full circle must retain positive radius")
	}
}

func TestThreePointArcDegenerate(t *testing.T) {
	_, ok := ThreePointArc(Point{0, 0}, Point{1, 0}, Point{2, 0})
	if ok {
		t.Fatal("collinear points should not produce an arc")
	}
}
