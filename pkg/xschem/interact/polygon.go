package interact

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/selection"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
)

type polyStage int

const (
	polyIdle polyStage = iota
	polyOpen
)

// PolygonFSM accumulates vertices for a free-form polygon until the user
// explicitly commits (Set) or closes the loop by clicking back on vertex 0.
type PolygonFSM struct {
	stage polyStage
	poly  xgeom.Polygon
	Layer symbol.Layer
}

// PlacePolygon adds one vertex to the in-progress polygon. If pt coincides
// with vertex 0 (and at least two vertices already exist), the polygon is
// closed and committed automatically; closed reports whether that
// happened.
func (s *State) PlacePolygon(sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController, pt xgeom.Point) (idx int, closed bool, err error) {
	fsm := &s.Polygon
	if fsm.stage == polyIdle {
		if err := s.begin(ModePolygon); err != nil {
			return -1, false, err
		}
		fsm.poly = xgeom.Polygon{}
		fsm.poly.AddVertex(pt)
		fsm.stage = polyOpen
		return -1, false, nil
	}

	fsm.poly.AddVertex(pt)
	if len(fsm.poly.X) < 3 || !fsm.poly.Closed() {
		return -1, false, nil
	}

	idx, err = commitPolygon(s, sheet, u, bbox)
	return idx, true, err
}

// SetPolygon explicitly commits the in-progress polygon without requiring
// the loop to close (the SET phase input).
func (s *State) SetPolygon(sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController) (int, error) {
	if s.Polygon.stage != polyOpen || len(s.Polygon.poly.X) < 3 {
		return -1, nil
	}
	return commitPolygon(s, sheet, u, bbox)
}

func commitPolygon(s *State, sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController) (int, error) {
	if err := u.PushUndo(); err != nil {
		return -1, err
	}
	bbox.Start()

	item := doc.GeometryItem{Kind: doc.GeomPolygon, Layer: s.Polygon.Layer, Poly: s.Polygon.poly}
	idx := sheet.AddGeometry(item)
	bbox.Add(s.Polygon.poly.BoundingBox())
	bbox.Set()

	s.Polygon.stage = polyIdle
	s.Polygon.poly = xgeom.Polygon{}
	s.end(ModePolygon)
	return idx, nil
}

// RubberPolygon returns the committed vertices so far plus the live edge
// to cursor, for the rendering backend's preview.
func (s *State) RubberPolygon(cursor xgeom.Point) (vertices []xgeom.Point, ok bool) {
	fsm := &s.Polygon
	if fsm.stage != polyOpen {
		return nil, false
	}
	for i := range fsm.poly.X {
		vertices = append(vertices, xgeom.Point{X: fsm.poly.X[i], Y: fsm.poly.Y[i]})
	}
	vertices = append(vertices, cursor)
	return vertices, true
}

// ClearPolygon abandons an in-progress polygon without committing it.
func (s *State) ClearPolygon() {
	s.Polygon.stage = polyIdle
	s.Polygon.poly = xgeom.Polygon{}
	s.end(ModePolygon)
}
