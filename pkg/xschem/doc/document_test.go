package doc

import (
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

type stubLoader struct{}

func (stubLoader) LoadSymbol(name string) (symbol.Symbol, error) {
	return symbol.Symbol{
		Name: name,
		Pins: []symbol.Pin{{Name: "A"}, {Name: "B"}},
		BBox: xgeom.Rect{X1: -1, Y1: -1, X2: 1, Y2: 1},
	}, nil
}

func TestPlaceInstanceUniquifiesName(t *testing.T) {
	s := NewSheet(stubLoader{})
	i1, err := s.PlaceInstance("R", xgeom.Point{}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	i2, err := s.PlaceInstance("R", xgeom.Point{X: 10}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	if s.Instances[i1].Name == s.Instances[i2].Name {
		t.Fatalf("expected unique names, got %q twice", s.Instances[i1].Name)
	}
	if len(s.Instances[i2].NetNames) != 2 {
		t.Fatalf("expected 2 net-name slots, got %d", len(s.Instances[i2].NetNames))
	}
}

func TestSetModifyClearsPrepHashAndInvokesListeners(t *testing.T) {
	s := NewSheet(stubLoader{})
	s.PrepHashInst = true
	s.PrepHashWires = true

	called := false
	s.SetModify(true, func() { called = true })

	if s.PrepHashInst || s.PrepHashWires {
		t.Fatal("SetModify(true) must clear prep_hash_* bits")
	}
	if !called {
		t.Fatal("SetModify(true) must invoke registered listeners")
	}
}

func TestValidateInstanceCatchesPinCountMismatch(t *testing.T) {
	s := NewSheet(stubLoader{})
	idx, err := s.PlaceInstance("R", xgeom.Point{}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	inst := &s.Instances[idx]
	inst.NetNames = inst.NetNames[:1]
	if err := s.ValidateInstance(inst); err == nil {
		t.Fatal("expected pin-count mismatch to be reported")
	}
}

func TestSnapToGrid(t *testing.T) {
	s := NewSheet(stubLoader{})
	idx, _ := s.PlaceInstance("R", xgeom.Point{X: 3.2, Y: 7.9}, xgeom.Rot0, false)
	s.SnapToGrid(5)
	pos := s.Instances[idx].Position
	if pos.X != 5 || pos.Y != 10 {
		t.Fatalf("SnapToGrid(5) = %+v, want (5,10)", pos)
	}
}

func TestWireDegenerate(t *testing.T) {
	w := Wire{Start: xgeom.Point{X: 1, Y: 1}, End: xgeom.Point{X: 1, Y: 1}}
	if !w.Degenerate() {
		t.Fatal("expected degenerate wire")
	}
}
