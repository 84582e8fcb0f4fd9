package editor

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/undo"
)

// sheetSnapshot is the gob-serializable deep copy of every Sheet field the
// undo stack must restore. The symbol cache is flattened to its dense symbol
// array; instance symbol indices survive unchanged because order is
// preserved on reinstall.
type sheetSnapshot struct {
	Path       string
	Symbols    []symbol.Symbol
	Instances  []doc.Instance
	Wires      []doc.Wire
	Texts      []doc.TextItem
	Geometry   map[symbol.Layer][]doc.GeometryItem
	Attributes doc.SheetAttributes
}

// sheetCodec implements undo.Codec over a live sheet. Snapshots are
// value-independent of the live model: gob deep-copies everything, including
// embedded image bytes.
type sheetCodec struct {
	sheet *doc.Sheet
}

func (c sheetCodec) Encode() (undo.Snapshot, error) {
	s := c.sheet
	snap := sheetSnapshot{
		Path:       s.Path,
		Symbols:    s.Symbols.All(),
		Instances:  s.Instances,
		Wires:      s.Wires,
		Texts:      s.Texts,
		Geometry:   s.Geometry,
		Attributes: s.Attributes,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("editor: encode sheet snapshot: %w", err)
	}
	return undo.Snapshot(buf.Bytes()), nil
}

func (c sheetCodec) Restore(snapshot undo.Snapshot) error {
	var snap sheetSnapshot
	if err := gob.NewDecoder(bytes.NewReader(snapshot)).Decode(&snap); err != nil {
		return fmt.Errorf("editor: decode sheet snapshot: %w", err)
	}
	s := c.sheet
	s.Path = snap.Path
	s.Symbols.Install(snap.Symbols)
	s.Instances = snap.Instances
	s.Wires = snap.Wires
	s.Texts = snap.Texts
	s.Geometry = snap.Geometry
	if s.Geometry == nil {
		s.Geometry = make(map[symbol.Layer][]doc.GeometryItem)
	}
	s.Attributes = snap.Attributes

	// Every derived index is stale after a restore.
	s.PrepHashInst = false
	s.PrepHashWires = false
	s.PrepNetStructs = false
	s.PrepHiStructs = false
	return nil
}
