package interact

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/selection"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
)

type arcStage int

const (
	arcIdle arcStage = iota
	arcStart
	arcMid
)

// ArcFSM is the three-click arc construction FSM: start point,
// a point on the arc, then the end point; the circumcircle through all
// three fixes center/radius/start angle/sweep. A third click back on the
// start point instead yields a full circle (Sweep 360) whose diameter runs
// from the start point to the second click.
type ArcFSM struct {
	stage      arcStage
	start, mid xgeom.Point
	Layer      symbol.Layer
}

// PlaceArc drives the three clicks of arc placement.
func (s *State) PlaceArc(sheet *doc.Sheet, u *undo.Stack, bbox *selection.BBoxController, pt xgeom.Point) (int, error) {
	fsm := &s.Arc
	switch fsm.stage {
	case arcIdle:
		if err := s.begin(ModeArc); err != nil {
			return -1, err
		}
		fsm.start = pt
		fsm.stage = arcStart
		return -1, nil
	case arcStart:
		fsm.mid = pt
		fsm.stage = arcMid
		return -1, nil
	}

	var arc xgeom.Arc
	if pt == fsm.start {
		// Closing back on the start point is a degenerate triangle (no
		// circumcircle), so it's read as "full circle through start and
		// mid" instead: center is their midpoint, radius half their
		// distance.
		arc = xgeom.FullCircle(xgeom.Arc{
			Center: xgeom.Point{X: (fsm.start.X + fsm.mid.X) / 2, Y: (fsm.start.Y + fsm.mid.Y) / 2},
			Radius: math.Hypot(fsm.mid.X-fsm.start.X, fsm.mid.Y-fsm.start.Y) / 2,
		})
	} else {
		var ok bool
		arc, ok = xgeom.ThreePointArc(fsm.start, fsm.mid, pt)
		if !ok {
			fsm.stage = arcIdle
			s.end(ModeArc)
			return -1, fmt.Errorf("interact: arc: start/mid/end points are collinear or coincident")
		}
	}

	if err := u.PushUndo(); err != nil {
		return -1, err
	}
	bbox.Start()

	item := doc.GeometryItem{Kind: doc.GeomArc, Layer: fsm.Layer, ArcG: arc}
	idx := sheet.AddGeometry(item)

	r := xgeom.EmptyRect()
	r.Expand(xgeom.Point{X: arc.Center.X - arc.Radius, Y: arc.Center.Y - arc.Radius})
	r.Expand(xgeom.Point{X: arc.Center.X + arc.Radius, Y: arc.Center.Y + arc.Radius})
	bbox.Add(r)
	bbox.Set()

	fsm.stage = arcIdle
	s.end(ModeArc)
	return idx, nil
}

// RubberArc returns the three construction points gathered so far, for the
// rendering backend to draw a provisional circumcircle preview; ok is
// false until at least the start point has been placed.
func (s *State) RubberArc(cursor xgeom.Point) (start, mid, cur xgeom.Point, ok bool) {
	fsm := &s.Arc
	switch fsm.stage {
	case arcStart:
		return fsm.start, cursor, cursor, true
	case arcMid:
		return fsm.start, fsm.mid, cursor, true
	default:
		return xgeom.Point{}, xgeom.Point{}, xgeom.Point{}, false
	}
}

// ClearArc cancels an in-progress arc placement.
func (s *State) ClearArc() {
	s.Arc.stage = arcIdle
	s.end(ModeArc)
}
