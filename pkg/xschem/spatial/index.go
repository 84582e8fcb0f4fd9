// Package spatial implements the uniform-grid spatial index
// used for O(1)-expected hit-testing and net inference, plus the kissing-pin
// auto-wire, label-attachment and same-sheet net-highlight features built
// on top of it.
package spatial

import (
	"math"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// bucketConst is the "k" in BUCKET = k*snap.
const bucketConst = 20

// cellKey identifies one square grid bucket.
type cellKey struct{ CX, CY int }

// WireRef names a wire living (at least partially) in a bucket.
type WireRef struct {
	WireIndex int
}

// PinRef names an instance pin living in a bucket, with its precomputed
// world position.
type PinRef struct {
	InstanceIndex int
	PinIndex      int
	World         xgeom.Point
}

// Index is the uniform-grid bucket index over wires and instance pins.
// It is derived state: rebuilt on demand whenever the sheet's prep_hash_*
// bits are clear.
type Index struct {
	bucketSide float64
	wireCells  map[cellKey][]WireRef
	pinCells   map[cellKey][]PinRef
}

// New creates an index for the given snap; the bucket side is
// BUCKET = k*snap.
func New(snap float64) *Index {
	side := snap * bucketConst
	if side <= 0 {
		side = 1
	}
	return &Index{
		bucketSide: side,
		wireCells:  make(map[cellKey][]WireRef),
		pinCells:   make(map[cellKey][]PinRef),
	}
}

func (ix *Index) cellOf(p xgeom.Point) cellKey {
	return cellKey{
		CX: int(math.Floor(p.X / ix.bucketSide)),
		CY: int(math.Floor(p.Y / ix.bucketSide)),
	}
}

func (ix *Index) cellsForSegment(a, b xgeom.Point) []cellKey {
	x1, y1 := ix.cellOf(a), ix.cellOf(b)
	minCX, maxCX := x1.CX, y1.CX
	if minCX > maxCX {
		minCX, maxCX = maxCX, minCX
	}
	minCY, maxCY := x1.CY, y1.CY
	if minCY > maxCY {
		minCY, maxCY = maxCY, minCY
	}
	var cells []cellKey
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			cells = append(cells, cellKey{cx, cy})
		}
	}
	return cells
}

// Clear empties the index without freeing its bucket maps.
func (ix *Index) Clear() {
	for k := range ix.wireCells {
		delete(ix.wireCells, k)
	}
	for k := range ix.pinCells {
		delete(ix.pinCells, k)
	}
}

// Rebuild fully repopulates the index from the sheet: every wire is
// inserted into every bucket its segment overlaps, and every instance pin's
// world position is inserted into its owning bucket.
func (ix *Index) Rebuild(sheet *doc.Sheet) {
	ix.Clear()
	for i, w := range sheet.Wires {
		ix.XInsertWire(i, w)
	}
	for i := range sheet.Instances {
		ix.indexInstancePins(sheet, i)
	}
}

func (ix *Index) indexInstancePins(sheet *doc.Sheet, instIdx int) {
	inst := &sheet.Instances[instIdx]
	if inst.SymbolIndex < 0 {
		return
	}
	sym, ok := sheet.Symbols.Resolve(inst.SymbolIndex)
	if !ok {
		return
	}
	for pinIdx, pin := range sym.Pins {
		world := xgeom.Transform(pin.Position, inst.Rotation, inst.Flip, inst.Position)
		ix.XInsertPin(instIdx, pinIdx, world)
	}
}

// XInsertWire incrementally inserts a single freshly appended wire into
// every bucket its segment overlaps, avoiding a full rebuild.
func (ix *Index) XInsertWire(wireIdx int, w doc.Wire) {
	for _, c := range ix.cellsForSegment(w.Start, w.End) {
		ix.wireCells[c] = append(ix.wireCells[c], WireRef{WireIndex: wireIdx})
	}
}

// XInsertPin incrementally inserts a single instance pin.
func (ix *Index) XInsertPin(instIdx, pinIdx int, world xgeom.Point) {
	c := ix.cellOf(world)
	ix.pinCells[c] = append(ix.pinCells[c], PinRef{InstanceIndex: instIdx, PinIndex: pinIdx, World: world})
}

// PinsAt returns every indexed pin whose world position exactly equals pt
// (query (a): "find instance pins at an exact world point").
func (ix *Index) PinsAt(pt xgeom.Point) []PinRef {
	var out []PinRef
	for _, ref := range ix.pinCells[ix.cellOf(pt)] {
		if ref.World == pt {
			out = append(out, ref)
		}
	}
	return out
}

// WiresTouching returns every indexed wire passing through or touching pt
// (query (b)).
func (ix *Index) WiresTouching(sheet *doc.Sheet, pt xgeom.Point) []WireRef {
	var out []WireRef
	seen := make(map[int]bool)
	for _, ref := range ix.wireCells[ix.cellOf(pt)] {
		if seen[ref.WireIndex] {
			continue
		}
		w := sheet.Wires[ref.WireIndex]
		if pointOnSegment(pt, w.Start, w.End) {
			seen[ref.WireIndex] = true
			out = append(out, ref)
		}
	}
	return out
}

// WireEndpoint reports whether pt is exactly one of wire w's endpoints.
func WireEndpoint(w doc.Wire, pt xgeom.Point) bool {
	return w.Start == pt || w.End == pt
}

func pointOnSegment(p, a, b xgeom.Point) bool {
	const eps = 1e-9
	cross := (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
	if math.Abs(cross) > eps {
		return false
	}
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return p.X >= minX-eps && p.X <= maxX+eps && p.Y >= minY-eps && p.Y <= maxY+eps
}

// WindowQuery returns every wire whose segment's bounding box meets window
// and every instance with at least one pin inside window (query (c)).
// Instances are found through their indexed pins only: an instance whose
// body overlaps window but has no pin inside it is not returned.
func (ix *Index) WindowQuery(sheet *doc.Sheet, window xgeom.Rect) (wires []int, instances []int) {
	seenW := make(map[int]bool)
	seenI := make(map[int]bool)
	w := window.Normalize()
	minCell, maxCell := ix.cellOf(xgeom.Point{X: w.X1, Y: w.Y1}), ix.cellOf(xgeom.Point{X: w.X2, Y: w.Y2})
	for cx := minCell.CX; cx <= maxCell.CX; cx++ {
		for cy := minCell.CY; cy <= maxCell.CY; cy++ {
			c := cellKey{cx, cy}
			for _, ref := range ix.wireCells[c] {
				if seenW[ref.WireIndex] {
					continue
				}
				wr := sheet.Wires[ref.WireIndex]
				if segmentIntersectsRect(wr.Start, wr.End, w) {
					seenW[ref.WireIndex] = true
					wires = append(wires, ref.WireIndex)
				}
			}
			for _, ref := range ix.pinCells[c] {
				if seenI[ref.InstanceIndex] {
					continue
				}
				if w.Contains(ref.World) {
					seenI[ref.InstanceIndex] = true
					instances = append(instances, ref.InstanceIndex)
				}
			}
		}
	}
	return wires, instances
}

func segmentIntersectsRect(a, b xgeom.Point, r xgeom.Rect) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	segBB := xgeom.EmptyRect()
	segBB.Expand(a)
	segBB.Expand(b)
	return segBB.Intersects(r)
}
