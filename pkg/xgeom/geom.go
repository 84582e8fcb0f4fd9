// Package xgeom provides the geometric primitives and transforms shared by
// the schematic document model: points, rectangles, arcs and polygons, plus
// the rotate/flip/bbox math used throughout placement and hit-testing.
package xgeom

import "math"

// Point is a floating-point world-space coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle expressed as two corners. The corners
// are not required to be ordered; callers needing a normalized rectangle
// should call Normalize.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Normalize returns r with X1<=X2 and Y1<=Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Width and Height report the (normalized) extents of r.
func (r Rect) Width() float64  { n := r.Normalize(); return n.X2 - n.X1 }
func (r Rect) Height() float64 { n := r.Normalize(); return n.Y2 - n.Y1 }

// Contains reports whether p lies within (inclusive) the normalized rect.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X1 && p.X <= n.X2 && p.Y >= n.Y1 && p.Y <= n.Y2
}

// Intersects reports whether two normalized rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	a, b := r.Normalize(), o.Normalize()
	return a.X1 <= b.X2 && a.X2 >= b.X1 && a.Y1 <= b.Y2 && a.Y2 >= b.Y1
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	a, b := r.Normalize(), o.Normalize()
	return Rect{
		X1: math.Min(a.X1, b.X1), Y1: math.Min(a.Y1, b.Y1),
		X2: math.Max(a.X2, b.X2), Y2: math.Max(a.Y2, b.Y2),
	}
}

// EmptyRect returns a rect positioned so the first Expand call establishes
// its bounds correctly.
func EmptyRect() Rect {
	return Rect{X1: math.Inf(1), Y1: math.Inf(1), X2: math.Inf(-1), Y2: math.Inf(-1)}
}

// IsEmpty reports whether the rect has never been expanded.
func (r Rect) IsEmpty() bool {
	return r.X1 > r.X2 || r.Y1 > r.Y2
}

// Expand grows r (in place, via pointer receiver) to include p.
func (r *Rect) Expand(p Point) {
	if p.X < r.X1 {
		r.X1 = p.X
	}
	if p.Y < r.Y1 {
		r.Y1 = p.Y
	}
	if p.X > r.X2 {
		r.X2 = p.X
	}
	if p.Y > r.Y2 {
		r.Y2 = p.Y
	}
}

// ExpandRect grows r to include o, ignoring o if it is empty.
func (r *Rect) ExpandRect(o Rect) {
	if o.IsEmpty() {
		return
	}
	r.Expand(Point{o.X1, o.Y1})
	r.Expand(Point{o.X2, o.Y2})
}

// Arc is a circular arc described by center, radius, start angle and sweep,
// all angles in degrees. A Sweep of exactly 360 denotes a full circle.
type Arc struct {
	Center       Point
	Radius       float64
	StartAngle   float64
	Sweep        float64
}

// Polygon owns parallel arrays of vertex coordinates and per-vertex
// selection flags, matching the document model's Polygon representation.
type Polygon struct {
	X, Y     []float64
	Selected []bool
}

// AddVertex appends a vertex to the polygon.
func (p *Polygon) AddVertex(pt Point) {
	p.X = append(p.X, pt.X)
	p.Y = append(p.Y, pt.Y)
	p.Selected = append(p.Selected, false)
}

// Closed reports whether the last vertex coincides with the first, the
// boundary condition that terminates interactive polygon placement.
func (p *Polygon) Closed() bool {
	n := len(p.X)
	if n < 2 {
		return false
	}
	return p.X[0] == p.X[n-1] && p.Y[0] == p.Y[n-1]
}

// BoundingBox returns the bbox enclosing every vertex.
func (p *Polygon) BoundingBox() Rect {
	bb := EmptyRect()
	for i := range p.X {
		bb.Expand(Point{p.X[i], p.Y[i]})
	}
	return bb
}

// Rotation is one of the four cardinal orientations an Instance may take.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// RotatePoint rotates p by rot (about the origin) then flips around X if
// flip is set, matching the order instances apply flip/rotate/translate in
// kissing-pin world coordinate derivation.
func RotatePoint(p Point, rot Rotation, flip bool) Point {
	x, y := p.X, p.Y
	switch rot {
	case Rot90:
		x, y = -p.Y, p.X
	case Rot180:
		x, y = -p.X, -p.Y
	case Rot270:
		x, y = p.Y, -p.X
	}
	if flip {
		x = -x
	}
	return Point{x, y}
}

// Transform maps a local point into world coordinates given an instance's
// flip/rotation/translation, the composition used by placement, kissing-pin
// lookup and label-attachment.
func Transform(local Point, rot Rotation, flip bool, origin Point) Point {
	p := RotatePoint(local, rot, flip)
	return Point{p.X + origin.X, p.Y + origin.Y}
}

// ThreePointArc derives (center, radius, startAngle, sweep) from three
// clicked points: start, a point on the arc (mid), and end. A near-zero
// sweep collapses; callers that want a forced full circle should set
// Sweep=360 afterwards.
func ThreePointArc(start, mid, end Point) (Arc, bool) {
	// Solve for the circumcenter of the three points.
	ax, ay := start.X, start.Y
	bx, by := mid.X, mid.Y
	cx, cy := end.X, end.Y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < 1e-9 {
		return Arc{}, false
	}

	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d
	center := Point{ux, uy}
	radius := math.Hypot(ax-ux, ay-uy)
	if radius < 1e-9 {
		return Arc{}, false
	}

	startAngle := math.Atan2(ay-uy, ax-ux)
	midAngle := math.Atan2(by-uy, bx-ux)
	endAngle := math.Atan2(cy-uy, cx-ux)

	sweep := normalizeSweep(startAngle, endAngle, midAngle)

	return Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: deg(startAngle),
		Sweep:      deg(sweep),
	}, true
}

// normalizeSweep picks the CCW or CW arc from start to end (both radians)
// that passes through mid, returning a signed sweep in radians.
func normalizeSweep(start, end, mid float64) float64 {
	norm := func(a float64) float64 {
		for a < 0 {
			a += 2 * math.Pi
		}
		for a >= 2*math.Pi {
			a -= 2 * math.Pi
		}
		return a
	}
	s, e, m := norm(start), norm(end), norm(mid)

	ccw := norm(e - s)
	midOnCCW := norm(m-s) <= ccw
	if midOnCCW {
		return ccw
	}
	return -(2*math.Pi - ccw)
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// FullCircle returns the Arc with the same center/radius as a but forced to
// a complete 360-degree sweep.
func FullCircle(a Arc) Arc {
	a.Sweep = 360
	return a
}
