package selection

import (
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

type loader struct{}

func (loader) LoadSymbol(name string) (symbol.Symbol, error) {
	return symbol.Symbol{Name: name, BBox: xgeom.Rect{X1: -1, Y1: -1, X2: 1, Y2: 1}}, nil
}

func TestRebuildAndClear(t *testing.T) {
	s := doc.NewSheet(loader{})
	idx, _ := s.PlaceInstance("R", xgeom.Point{}, xgeom.Rot0, false)
	s.Instances[idx].Selected = true
	s.AddWire(doc.Wire{Selected: true})

	tuples := Rebuild(s)
	if len(tuples) != 2 {
		t.Fatalf("expected 2 selected tuples, got %d", len(tuples))
	}

	ClearAll(s)
	if Rebuild(s) != nil {
		t.Fatal("expected no selection after ClearAll")
	}
}

func TestCopyPasteRoundTrip(t *testing.T) {
	s := doc.NewSheet(loader{})
	idx, _ := s.PlaceInstance("R", xgeom.Point{X: 5, Y: 5}, xgeom.Rot0, false)
	s.Instances[idx].Selected = true

	cb := Copy(s)
	if cb.Empty() {
		t.Fatal("expected non-empty clipboard")
	}
	Paste(s, cb, xgeom.Point{X: 100, Y: 100})

	if len(s.Instances) != 2 {
		t.Fatalf("expected 2 instances after paste, got %d", len(s.Instances))
	}
	pasted := s.Instances[1]
	if !pasted.Selected {
		t.Fatal("pasted instance should be selected")
	}
	if pasted.Position.X != 100 || pasted.Position.Y != 100 {
		t.Fatalf("pasted position = %+v, want (100,100)", pasted.Position)
	}
}

func TestBBoxController(t *testing.T) {
	var c BBoxController
	c.Start()
	c.Add(xgeom.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10})
	c.Add(xgeom.Rect{X1: 5, Y1: -5, X2: 15, Y2: 5})
	c.Set()
	clip, ok := c.Clip()
	if !ok {
		t.Fatal("expected an installed clip")
	}
	if clip.X1 != 0 || clip.Y1 != -5 || clip.X2 != 15 || clip.Y2 != 10 {
		t.Fatalf("unexpected union: %+v", clip)
	}
	c.End()
	if _, ok := c.Clip(); ok {
		t.Fatal("End() should clear the active clip")
	}
}

func TestRotateSelection(t *testing.T) {
	s := doc.NewSheet(loader{})
	idx, _ := s.PlaceInstance("R", xgeom.Point{X: 10, Y: 0}, xgeom.Rot0, false)
	s.Instances[idx].Selected = true
	RotateSelection(s)
	if s.Instances[idx].Rotation != xgeom.Rot90 {
		t.Fatalf("expected rotation to advance to Rot90, got %v", s.Instances[idx].Rotation)
	}
}
