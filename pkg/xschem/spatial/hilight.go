package spatial

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/attr"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// HilightNet marks (sets Wire.Hilighted / Instance Flags' highlight bit on)
// every wire and instance pin sharing the resolved net name on the current
// sheet, and reports what it marked.
// This is the same-sheet flood; cross-hierarchy propagation is driven by
// the hierarchy navigator, which calls this once per descended level.
func HilightNet(sheet *doc.Sheet, netName string) (wireIdx []int, instPins []PinMatch) {
	if netName == "" {
		return nil, nil
	}
	for i := range sheet.Wires {
		if sheet.Wires[i].NetName == netName {
			sheet.Wires[i].Hilighted = true
			wireIdx = append(wireIdx, i)
		}
	}
	for i := range sheet.Instances {
		inst := &sheet.Instances[i]
		for p, n := range inst.NetNames {
			if n == netName {
				inst.Flags |= attr.InstFlagHighlight
				instPins = append(instPins, PinMatch{InstanceIndex: i, PinIndex: p})
			}
		}
	}
	return wireIdx, instPins
}

// ClearHilights unmarks every wire and instance on sheet, the counterpart
// invoked before unselect_all(1) in xschem's descend/ascend flow.
func ClearHilights(sheet *doc.Sheet) {
	for i := range sheet.Wires {
		sheet.Wires[i].Hilighted = false
	}
	for i := range sheet.Instances {
		sheet.Instances[i].Flags &^= attr.InstFlagHighlight
	}
}

// PinMatch names one instance pin whose resolved net name matched a query.
type PinMatch struct {
	InstanceIndex int
	PinIndex      int
}
