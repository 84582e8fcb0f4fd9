package interact

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/selection"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/spatial"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
)

// ManhattanMode selects how a wire commit is split into axis-aligned
// segments.
type ManhattanMode int

const (
	ManhattanOff ManhattanMode = iota
	ManhattanHThenV
	ManhattanVThenH
)

type wireStage int

const (
	wireIdle wireStage = iota
	wireArmed
)

// WireFSM is the wire-placement FSM: idle -> armed (first endpoint
// captured) -> placed (on commit, repeats back to armed at the commit
// point, matching interactive "rubber-band chain" wiring).
type WireFSM struct {
	stage     wireStage
	start     xgeom.Point
	Manhattan ManhattanMode
}

// Segment is one axis-aligned or freeform wire/line segment a commit may
// produce.
type Segment struct{ Start, End xgeom.Point }

// manhattanSplit splits a start->end commit into up to two axis-aligned
// segments per mode. Degenerate segments (zero length) are kept here:
// Place drops them before storing, and Rubber returns them as they are.
func manhattanSplit(start, end xgeom.Point, mode ManhattanMode) []Segment {
	switch mode {
	case ManhattanHThenV:
		corner := xgeom.Point{X: end.X, Y: start.Y}
		return []Segment{{start, corner}, {corner, end}}
	case ManhattanVThenH:
		corner := xgeom.Point{X: start.X, Y: end.Y}
		return []Segment{{start, corner}, {corner, end}}
	default:
		return []Segment{{start, end}}
	}
}

func (seg Segment) degenerate() bool { return seg.Start == seg.End }

// Place drives the PLACE phase: the first call captures the start point
// and arms the FSM (entering ModeWire); subsequent calls commit a wire (or,
// under a Manhattan mode, up to two wires) from the armed point to pt, push
// one undo transaction, incrementally hash the new wires, invalidate
// netlist caches, and accumulate a redraw bbox, then re-arm at pt so wire
// placement can continue as a chain.
func (s *State) Place(sheet *doc.Sheet, ix *spatial.Index, u *undo.Stack, bbox *selection.BBoxController, pt xgeom.Point) ([]int, error) {
	if s.Wire.stage == wireIdle {
		if err := s.begin(ModeWire); err != nil {
			return nil, err
		}
		s.Wire.start = pt
		s.Wire.stage = wireArmed
		return nil, nil
	}

	segments := manhattanSplit(s.Wire.start, pt, s.Wire.Manhattan)

	if err := u.PushUndo(); err != nil {
		return nil, err
	}
	bbox.Start()

	var added []int
	for _, seg := range segments {
		if seg.degenerate() {
			continue // only non-degenerate segments are stored
		}
		w := doc.Wire{Start: seg.Start, End: seg.End}
		idx := sheet.AddWire(w)
		ix.XInsertWire(idx, sheet.Wires[idx])
		segBB := xgeom.EmptyRect()
		segBB.Expand(seg.Start)
		segBB.Expand(seg.End)
		bbox.Add(segBB)
		added = append(added, idx)
	}
	bbox.Set()

	sheet.PrepNetStructs = false // wire placement affects net topology

	s.Wire.start = pt
	s.Wire.stage = wireArmed
	return added, nil
}

// Rubber returns the temporary segment(s) that should be drawn from the
// armed point to cursor, for the rendering backend's tile-erase-then-paint
// rubber-banding pass; it never touches the Document.
func (s *State) Rubber(cursor xgeom.Point) []Segment {
	if s.Wire.stage != wireArmed {
		return nil
	}
	return manhattanSplit(s.Wire.start, cursor, s.Wire.Manhattan)
}

// Clear cancels wire placement, discarding any in-progress rubber-band
// figure without touching the Document.
func (s *State) Clear() {
	s.Wire.stage = wireIdle
	s.end(ModeWire)
}

// EndWirePlacement leaves wire-placement mode (e.g. the user switched
// tools) without committing a pending armed point.
func (s *State) EndWirePlacement() {
	s.Wire.stage = wireIdle
	s.end(ModeWire)
}
