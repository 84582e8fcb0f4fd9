package spatial

import (
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

type onePinLoader struct{}

func (onePinLoader) LoadSymbol(name string) (symbol.Symbol, error) {
	return symbol.Symbol{Name: name, Pins: []symbol.Pin{{Name: "P", Position: xgeom.Point{}}}}, nil
}

func TestKissingPinInsertsDegenerateWire(t *testing.T) {
	sheet := doc.NewSheet(onePinLoader{})
	_, err := sheet.PlaceInstance("A", xgeom.Point{X: 0, Y: 0}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	bIdx, err := sheet.PlaceInstance("B", xgeom.Point{X: 0, Y: 0}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	sheet.Instances[bIdx].Selected = true

	ix := New(1.0)
	ix.Rebuild(sheet)

	results := AutoWireKiss(sheet, ix)
	if len(results) != 1 {
		t.Fatalf("expected 1 kiss result, got %d", len(results))
	}
	w := sheet.Wires[results[0].WireIndex]
	if !w.Degenerate() || !w.Selected {
		t.Fatalf("expected a selected degenerate wire, got %+v", w)
	}
}

func TestKissingSkipsCoincidentSelectedPins(t *testing.T) {
	sheet := doc.NewSheet(onePinLoader{})
	aIdx, _ := sheet.PlaceInstance("A", xgeom.Point{X: 0, Y: 0}, xgeom.Rot0, false)
	bIdx, _ := sheet.PlaceInstance("B", xgeom.Point{X: 0, Y: 0}, xgeom.Rot0, false)
	sheet.Instances[aIdx].Selected = true
	sheet.Instances[bIdx].Selected = true

	ix := New(1.0)
	ix.Rebuild(sheet)

	results := AutoWireKiss(sheet, ix)
	if len(results) != 0 {
		t.Fatalf("two coincident selected pins move together and must not kiss, got %d results", len(results))
	}
}

func TestKissingBlockedBySelectedWire(t *testing.T) {
	sheet := doc.NewSheet(onePinLoader{})
	_, _ = sheet.PlaceInstance("A", xgeom.Point{X: 0, Y: 0}, xgeom.Rot0, false)
	bIdx, _ := sheet.PlaceInstance("B", xgeom.Point{X: 0, Y: 0}, xgeom.Rot0, false)
	sheet.Instances[bIdx].Selected = true

	sheet.AddWire(doc.Wire{Start: xgeom.Point{X: 0, Y: 0}, End: xgeom.Point{X: 5, Y: 0}, Selected: true})

	ix := New(1.0)
	ix.Rebuild(sheet)

	results := AutoWireKiss(sheet, ix)
	if len(results) != 0 {
		t.Fatalf("expected kissing to be blocked by a selected incident wire, got %d results", len(results))
	}
}

func TestWindowQuery(t *testing.T) {
	sheet := doc.NewSheet(onePinLoader{})
	sheet.AddWire(doc.Wire{Start: xgeom.Point{X: 0, Y: 0}, End: xgeom.Point{X: 10, Y: 0}})
	ix := New(1.0)
	ix.Rebuild(sheet)

	wires, _ := ix.WindowQuery(sheet, xgeom.Rect{X1: -1, Y1: -1, X2: 1, Y2: 1})
	if len(wires) != 1 {
		t.Fatalf("expected wire to be found in window, got %d", len(wires))
	}
}

func TestHilightNet(t *testing.T) {
	sheet := doc.NewSheet(onePinLoader{})
	sheet.AddWire(doc.Wire{NetName: "VCC"})
	sheet.AddWire(doc.Wire{NetName: "GND"})
	idx, _ := sheet.PlaceInstance("A", xgeom.Point{}, xgeom.Rot0, false)
	sheet.Instances[idx].NetNames = []string{"VCC"}

	wires, pins := HilightNet(sheet, "VCC")
	if len(wires) != 1 || wires[0] != 0 {
		t.Fatalf("expected wire 0 to match, got %v", wires)
	}
	if len(pins) != 1 || pins[0].InstanceIndex != idx {
		t.Fatalf("expected instance %d pin match, got %v", idx, pins)
	}
}
