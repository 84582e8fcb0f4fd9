// Package doc implements the document model: the current sheet,
// its instances, wires, text, free geometry per layer, the symbol library
// cache, and the four sheet-level attribute blobs.
package doc

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

// GeometryKind tags the union a GeometryItem holds.
type GeometryKind int

const (
	GeomLine GeometryKind = iota
	GeomRect
	GeomArc
	GeomPolygon
	GeomText
)

// GeometryItem is the tagged union of free-form sheet annotation geometry.
// Every item carries a layer, selection state and attribute string; a Rect
// additionally carries a cached flags bitmask and may own an EmbeddedImage.
type GeometryItem struct {
	Kind       GeometryKind
	Layer      symbol.Layer
	Selected   bool
	Attributes string

	Line    Line
	RectG   RectGeom
	ArcG    xgeom.Arc
	Poly    xgeom.Polygon
	TextRef int // index into Sheet.Texts, valid only when Kind == GeomText
}

// Line is a two-point line segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// RectGeom is a free-form rectangle, optionally owning an embedded raster
// image when its cached Flags bit10 (EmbeddedImage) is set.
type RectGeom struct {
	Rect  xgeom.Rect
	Flags int
	Image *EmbeddedImage
}

// EmbeddedImage is a raster image uniquely owned by its RectGeom. It carries
// the encoded image bytes and the scaling policy; Decode (image.go) turns
// them into a drawable xgeom.Surface.
type EmbeddedImage struct {
	Format    string // e.g. "png"
	Data      []byte // raw encoded bytes, base64-decoded on load
	Unscaled  bool   // mirrors RectGeom.Flags bit11
}

// Instance is a placement of a symbol on a sheet.
type Instance struct {
	SymbolIndex  int // -1 when unresolved
	Name         string
	InstanceName string
	Label        string
	Position     xgeom.Point
	Rotation     xgeom.Rotation
	Flip         bool
	Color        int
	Selected     bool
	Flags        int
	Properties   string
	BBox         xgeom.Rect
	NetNames     []string // one entry per symbol pin; "" = unresolved
}

// Wire is a conductor segment between two points. A wire is
// degenerate iff Start == End; degenerate wires are legal kissing-pin
// placeholders and are treated identically to ordinary wires by netlist
// passes.
type Wire struct {
	Start, End xgeom.Point
	IsBus      bool
	Selected   bool
	Hilighted  bool
	Attributes string
	NetName    string
}

// Degenerate reports whether the wire's endpoints coincide.
func (w Wire) Degenerate() bool { return w.Start == w.End }

// TextItem is an annotation text item, possibly a floater whose visible
// string is computed by template substitution.
type TextItem struct {
	Text       string
	X, Y       float64
	Rotation   xgeom.Rotation
	Flip       bool
	HScale     float64
	VScale     float64
	HCenter    bool
	VCenter    bool
	Layer      symbol.Layer
	Flags      int
	Font       string
	Attributes string

	FloaterInstName string // resolved-by-name target instance, if a floater
	FloaterCache    *string
}

// SheetAttributes holds the four sheet-level attribute blobs.
type SheetAttributes struct {
	Spice   string
	VHDL    string
	Verilog string
	Tedax   string
}

// Sheet (a.k.a. Document) owns every live object on the current schematic
// page. Exactly one Sheet is "current" per editor window.
type Sheet struct {
	Path string

	Symbols *symbol.Cache

	Instances []Instance
	Wires     []Wire
	Texts     []TextItem
	Geometry  map[symbol.Layer][]GeometryItem

	Attributes SheetAttributes

	// Derived-index freshness bits:
	// clearing any of these is always safe; setting requires the
	// corresponding cache to actually match the document.
	PrepHashInst   bool
	PrepHashWires  bool
	PrepNetStructs bool
	PrepHiStructs  bool

	Modified bool
}

// NewSheet creates an empty sheet backed by the given symbol loader.
func NewSheet(loader symbol.Loader) *Sheet {
	return &Sheet{
		Symbols:  symbol.NewCache(loader),
		Geometry: make(map[symbol.Layer][]GeometryItem),
	}
}
