package interact

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/selection"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
)

type twoPointStage int

const (
	twoPointIdle twoPointStage = iota
	twoPointArmed
)

// LineRectFSM is the shared two-click placement FSM for free-form Line and
// Rect geometry: first click arms the anchor, second click
// commits the item on Layer and returns to idle.
type LineRectFSM struct {
	stage  twoPointStage
	anchor xgeom.Point
	kind   doc.GeometryKind
	Layer  symbol.Layer
}

// PlaceLine drives a line placement through s.Line.
func (s *State) PlaceLine(sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController, pt xgeom.Point) (int, error) {
	return placeTwoPoint(s, &s.Line, ModeLine, doc.GeomLine, sheet, u, bbox, pt)
}

// RubberLine returns the in-progress line segment for rendering, or false
// if no line placement is armed.
func (s *State) RubberLine(cursor xgeom.Point) (Segment, bool) {
	return rubberTwoPoint(&s.Line, cursor)
}

// ClearLine cancels an in-progress line placement.
func (s *State) ClearLine() { clearTwoPoint(s, &s.Line, ModeLine) }

// PlaceRect drives a rect placement through s.Rect.
func (s *State) PlaceRect(sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController, pt xgeom.Point) (int, error) {
	return placeTwoPoint(s, &s.Rect, ModeRect, doc.GeomRect, sheet, u, bbox, pt)
}

// RubberRect returns the in-progress rectangle corner for rendering, or
// false if no rect placement is armed.
func (s *State) RubberRect(cursor xgeom.Point) (Segment, bool) {
	return rubberTwoPoint(&s.Rect, cursor)
}

// ClearRect cancels an in-progress rect placement.
func (s *State) ClearRect() { clearTwoPoint(s, &s.Rect, ModeRect) }

func placeTwoPoint(s *State, fsm *LineRectFSM, mode Mode, kind doc.GeometryKind, sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController, pt xgeom.Point) (int, error) {
	if fsm.stage == twoPointIdle {
		if err := s.begin(mode); err != nil {
			return -1, err
		}
		fsm.anchor = pt
		fsm.kind = kind
		fsm.stage = twoPointArmed
		return -1, nil
	}

	if err := u.PushUndo(); err != nil {
		return -1, err
	}
	bbox.Start()

	item := doc.GeometryItem{Kind: kind, Layer: fsm.Layer}
	r := xgeom.Rect{X1: fsm.anchor.X, Y1: fsm.anchor.Y, X2: pt.X, Y2: pt.Y}.Normalize()
	switch kind {
	case doc.GeomLine:
		item.Line = doc.Line{X1: fsm.anchor.X, Y1: fsm.anchor.Y, X2: pt.X, Y2: pt.Y}
	case doc.GeomRect:
		item.RectG = doc.RectGeom{Rect: r}
	}
	idx := sheet.AddGeometry(item)
	bbox.Add(r)
	bbox.Set()

	fsm.stage = twoPointIdle
	s.end(mode)
	return idx, nil
}

func rubberTwoPoint(fsm *LineRectFSM, cursor xgeom.Point) (Segment, bool) {
	if fsm.stage != twoPointArmed {
		return Segment{}, false
	}
	return Segment{Start: fsm.anchor, End: cursor}, true
}

func clearTwoPoint(s *State, fsm *LineRectFSM, mode Mode) {
	fsm.stage = twoPointIdle
	s.end(mode)
}
