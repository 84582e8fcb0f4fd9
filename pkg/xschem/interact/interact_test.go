package interact

import (
	"encoding/json"
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/selection"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/spatial"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
)

// jsonCodec is a minimal undo.Codec good enough to drive these FSM tests;
// the real editor wires undo through its serializer instead.
type jsonCodec struct{ sheet *doc.Sheet }

func (c jsonCodec) Encode() (undo.Snapshot, error) {
	b, err := json.Marshal(c.sheet)
	return undo.Snapshot(b), err
}

func (c jsonCodec) Restore(s undo.Snapshot) error {
	return json.Unmarshal(s, c.sheet)
}

func newHarness() (*doc.Sheet, *spatial.Index, *undo.Stack, *selection.BBoxController) {
	sheet := doc.NewSheet(nil)
	ix := spatial.New(10)
	u := undo.NewStack(jsonCodec{sheet: sheet}, 0)
	bbox := &selection.BBoxController{}
	return sheet, ix, u, bbox
}

func TestManhattanWireTwoSegments(t *testing.T) {
	sheet, ix, u, bbox := newHarness()
	s := New()
	s.Wire.Manhattan = ManhattanHThenV

	if _, err := s.Place(sheet, ix, u, bbox, xgeom.Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("arm: %v", err)
	}
	added, err := s.Place(sheet, ix, u, bbox, xgeom.Point{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("Manhattan H-then-V commit stored %d wires, want 2: %#v", len(added), sheet.Wires)
	}
	w0, w1 := sheet.Wires[added[0]], sheet.Wires[added[1]]
	if w0.Start != (xgeom.Point{X: 0, Y: 0}) || w0.End != (xgeom.Point{X: 10, Y: 0}) {
		t.Errorf("first segment = %+v, want horizontal leg", w0)
	}
	if w1.Start != (xgeom.Point{X: 10, Y: 0}) || w1.End != (xgeom.Point{X: 10, Y: 10}) {
		t.Errorf("second segment = %+v, want vertical leg", w1)
	}
}

func TestManhattanDegenerateSegmentDropped(t *testing.T) {
	sheet, ix, u, bbox := newHarness()
	s := New()
	s.Wire.Manhattan = ManhattanHThenV

	s.Place(sheet, ix, u, bbox, xgeom.Point{X: 5, Y: 5})
	added, err := s.Place(sheet, ix, u, bbox, xgeom.Point{X: 5, Y: 20})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("a purely vertical commit under H-then-V should drop its degenerate horizontal leg, got %d wires", len(added))
	}
}

func TestWireReentrancyRejected(t *testing.T) {
	sheet, ix, u, bbox := newHarness()
	s := New()
	if _, err := s.Place(sheet, ix, u, bbox, xgeom.Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if err := s.begin(ModeWire); err == nil {
		t.Fatalf("begin(ModeWire) should reject a nested start while a wire placement is already armed")
	}
}

func TestPolygonClosesOnVertexZero(t *testing.T) {
	sheet, _, u, bbox := newHarness()
	s := New()

	if _, closed, err := s.PlacePolygon(sheet, u, bbox, xgeom.Point{X: 0, Y: 0}); err != nil || closed {
		t.Fatalf("first vertex should neither close nor error: closed=%v err=%v", closed, err)
	}
	if _, closed, err := s.PlacePolygon(sheet, u, bbox, xgeom.Point{X: 10, Y: 0}); err != nil || closed {
		t.Fatalf("second vertex should not close yet: closed=%v err=%v", closed, err)
	}
	if _, closed, err := s.PlacePolygon(sheet, u, bbox, xgeom.Point{X: 10, Y: 10}); err != nil || closed {
		t.Fatalf("third vertex should not close yet: closed=%v err=%v", closed, err)
	}
	idx, closed, err := s.PlacePolygon(sheet, u, bbox, xgeom.Point{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("closing vertex: %v", err)
	}
	if !closed {
		t.Fatalf("clicking back on vertex 0 should terminate and commit the polygon")
	}
	item := sheet.Geometry[0][idx]
	if len(item.Poly.X) != 4 {
		t.Fatalf("closed polygon should keep all 4 vertices (including the repeated vertex 0), got %d", len(item.Poly.X))
	}
	if s.Active(ModePolygon) {
		t.Errorf("ModePolygon should be cleared after the polygon auto-commits")
	}
}

func TestArcFullCircleOnClosedClickSequence(t *testing.T) {
	sheet, _, u, bbox := newHarness()
	s := New()

	start := xgeom.Point{X: 10, Y: 0}
	mid := xgeom.Point{X: 0, Y: 10}
	s.PlaceArc(sheet, u, bbox, start)
	s.PlaceArc(sheet, u, bbox, mid)
	idx, err := s.PlaceArc(sheet, u, bbox, start)
	if err != nil {
		t.Fatalf("PlaceArc: %v", err)
	}
	item := sheet.Geometry[0][idx]
	if item.ArcG.Sweep != 360 {
		t.Fatalf("an arc construction that closes back on its start point must force a full circle, got sweep=%v", item.ArcG.Sweep)
	}
}

func TestArcRejectsCollinearPoints(t *testing.T) {
	sheet, _, u, bbox := newHarness()
	s := New()

	s.PlaceArc(sheet, u, bbox, xgeom.Point{X: 0, Y: 0})
	s.PlaceArc(sheet, u, bbox, xgeom.Point{X: 5, Y: 0})
	if _, err := s.PlaceArc(sheet, u, bbox, xgeom.Point{X: 10, Y: 0}); err == nil {
		t.Fatalf("three collinear points have no circumcircle and should error")
	}
}

func TestLineRectModesDoNotInterfere(t *testing.T) {
	sheet, _, u, bbox := newHarness()
	s := New()

	if _, err := s.PlaceLine(sheet, u, bbox, xgeom.Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("arm line: %v", err)
	}
	if _, err := s.PlaceRect(sheet, u, bbox, xgeom.Point{X: 100, Y: 100}); err != nil {
		t.Fatalf("arm rect should not be rejected by an armed line (different Mode bits): %v", err)
	}
	if !s.Active(ModeLine) || !s.Active(ModeRect) {
		t.Fatalf("both ModeLine and ModeRect should be concurrently active")
	}
	if _, err := s.PlaceLine(sheet, u, bbox, xgeom.Point{X: 10, Y: 10}); err != nil {
		t.Fatalf("commit line: %v", err)
	}
	if s.Active(ModeLine) {
		t.Errorf("ModeLine should clear once its line commits")
	}
	if !s.Active(ModeRect) {
		t.Errorf("ModeRect should remain armed, independent of ModeLine's commit")
	}
}
