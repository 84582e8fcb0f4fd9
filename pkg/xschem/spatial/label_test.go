package spatial

import (
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

type twoPinLoader struct{}

func (twoPinLoader) LoadSymbol(name string) (symbol.Symbol, error) {
	return symbol.Symbol{Name: name, Pins: []symbol.Pin{
		{Name: "in", Position: xgeom.Point{X: -10, Y: 0}, Direction: "in"},
		{Name: "out", Position: xgeom.Point{X: 10, Y: 0}, Direction: "out"},
	}}, nil
}

func TestAttachLabelsUnconnectedPinsOnly(t *testing.T) {
	sheet := doc.NewSheet(twoPinLoader{})
	idx, err := sheet.PlaceInstance("amp", xgeom.Point{X: 100, Y: 100}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	sheet.Instances[idx].Selected = true
	sheet.Instances[idx].InstanceName = "X1"

	// Wire the "out" pin; only "in" should get a label.
	sheet.AddWire(doc.Wire{Start: xgeom.Point{X: 110, Y: 100}, End: xgeom.Point{X: 150, Y: 100}})

	ix := New(1.0)
	ix.Rebuild(sheet)

	placements := AttachLabels(sheet, ix, xgeom.Rot0, false, true)
	if len(placements) != 1 {
		t.Fatalf("placements = %d, want 1", len(placements))
	}
	p := placements[0]
	if p.SymbolName != "lab_pin.sym" {
		t.Errorf("symbol = %q, want lab_pin.sym", p.SymbolName)
	}
	if p.World != (xgeom.Point{X: 90, Y: 100}) {
		t.Errorf("world = %+v, want the in pin position", p.World)
	}
	if p.LabelProperty != "X1_in" {
		t.Errorf("label = %q, want X1_in (prefixed)", p.LabelProperty)
	}
}

func TestAttachLabelsDirectionAndSymbolChoice(t *testing.T) {
	sheet := doc.NewSheet(twoPinLoader{})
	idx, err := sheet.PlaceInstance("amp", xgeom.Point{}, xgeom.Rot0, false)
	if err != nil {
		t.Fatal(err)
	}
	sheet.Instances[idx].Selected = true

	ix := New(1.0)
	ix.Rebuild(sheet)

	placements := AttachLabels(sheet, ix, xgeom.Rot0, true, false)
	if len(placements) != 2 {
		t.Fatalf("placements = %d, want 2", len(placements))
	}
	for _, p := range placements {
		if p.SymbolName != "lab_wire.sym" {
			t.Errorf("symbol = %q, want lab_wire.sym", p.SymbolName)
		}
	}
	// "in" pins stay at the base rotation; "out" pins are flipped 180.
	if placements[0].Rotation != xgeom.Rot0 {
		t.Errorf("in-pin rotation = %v, want Rot0", placements[0].Rotation)
	}
	if placements[1].Rotation != xgeom.Rot180 {
		t.Errorf("out-pin rotation = %v, want Rot180", placements[1].Rotation)
	}
}
