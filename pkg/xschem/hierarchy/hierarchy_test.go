package hierarchy

import (
	"testing"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/viewport"
)

type stubLoader struct {
	syms  map[string]symbol.Symbol
	sheet *doc.Sheet
}

func (l stubLoader) LoadSymbol(name string) (symbol.Symbol, error) {
	return l.syms[name], nil
}

func (l stubLoader) LoadSchematic(path string) (*doc.Sheet, error) {
	return l.sheet, nil
}

type autoSave struct{ result SaveResult }

func (a autoSave) RequestSave(sheet *doc.Sheet) (SaveResult, error) { return a.result, nil }

func TestBuildPortMapVectorDescendDistinctSlices(t *testing.T) {
	// Parent instance X0[1:0] with pins a[1:0] connected to net n[3:0]
	//: each of the two sub-instances must land on a
	// distinct, non-overlapping 2-bit slice of the 4-bit net, and every
	// pin of a given sub-instance maps to a different net bit.
	sym := &symbol.Symbol{
		Name: "sub",
		Pins: []symbol.Pin{{Name: "a[1:0]"}},
	}
	inst := &doc.Instance{
		InstanceName: "X0[1:0]",
		NetNames:     []string{"n[3:0]"},
	}

	pm1 := BuildPortMap(sym, inst, 1, 2)
	pm2 := BuildPortMap(sym, inst, 2, 2)

	if pm1["a[1]"] == pm1["a[0]"] {
		t.Errorf("sub-instance 1 mapped both pins to the same net bit: %#v", pm1)
	}
	if pm2["a[1]"] == pm2["a[0]"] {
		t.Errorf("sub-instance 2 mapped both pins to the same net bit: %#v", pm2)
	}
	seen := map[string]bool{}
	for _, v := range pm1 {
		seen[v] = true
	}
	for _, v := range pm2 {
		if seen[v] {
			t.Errorf("sub-instances 1 and 2 both claimed net bit %q: pm1=%#v pm2=%#v", v, pm1, pm2)
		}
	}
}

func TestBuildPortMapAutoNet(t *testing.T) {
	// An auto-generated ("#"-prefixed) net attached to a multi-bit pin has
	// no bit index of its own; BuildPortMap must strip the "#" and suffix
	// a "[index]" per bit.
	sym := &symbol.Symbol{Pins: []symbol.Pin{{Name: "clk[1:0]"}}}
	inst := &doc.Instance{NetNames: []string{"#net"}}

	pm := BuildPortMap(sym, inst, 1, 1)
	if pm["clk[1]"] != "net[1]" || pm["clk[0]"] != "net[0]" {
		t.Fatalf("BuildPortMap = %#v, want {clk[1]:net[1], clk[0]:net[0]}", pm)
	}
	for k, v := range pm {
		if v[0] == '#' {
			t.Errorf("pin %s net %q should have had # stripped/suffixed", k, v)
		}
	}
}

func TestDescendRejectsWrongType(t *testing.T) {
	sheet := doc.NewSheet(stubLoader{syms: map[string]symbol.Symbol{}})
	sheet.Symbols.MatchSymbol("leaf")
	sheet.Instances = append(sheet.Instances, doc.Instance{SymbolIndex: 0})

	nav := New(stubLoader{sheet: doc.NewSheet(nil)})
	vp := viewport.New(800, 600)

	child, ok, err := Descend(nav, sheet, vp, 0, 1, autoSave{SaveYes})
	if err != nil || ok || child != nil {
		t.Fatalf("Descend into non-subcircuit symbol should be a silent no-op, got ok=%v err=%v", ok, err)
	}
}

func TestDescendCancelAborts(t *testing.T) {
	loader := stubLoader{syms: map[string]symbol.Symbol{
		"sub": {Name: "sub", Type: "subcircuit"},
	}}
	sheet := doc.NewSheet(loader)
	_, err := sheet.PlaceInstance("sub", xgeom.Point{}, 0, false)
	if err != nil {
		t.Fatalf("PlaceInstance: %v", err)
	}
	sheet.SetModify(true)

	nav := New(stubLoader{sheet: doc.NewSheet(nil)})
	vp := viewport.New(800, 600)

	child, ok, err := Descend(nav, sheet, vp, 0, 1, autoSave{SaveCancel})
	if err != nil {
		t.Fatalf("Descend: %v", err)
	}
	if ok || child != nil {
		t.Fatalf("Descend should abort on SaveCancel")
	}
	if nav.Depth() != 0 {
		t.Errorf("Depth should remain 0 after an aborted descend")
	}
}
