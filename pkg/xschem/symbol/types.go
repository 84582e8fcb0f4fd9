// Package symbol implements the symbol library cache and
// polymorphic per-instance symbol expansion.
package symbol

import "github.com/OpenTraceLab/xschem-go/pkg/xgeom"

// Kind distinguishes a dense library symbol from a transient polymorphic
// clone appended during netlist/preview expansion.
type Kind int

const (
	// Primary is an ordinarily-loaded library symbol.
	Primary Kind = iota
	// Clone is a transient per-instance variant; BaseIndex names the
	// symbol it was cloned from.
	Clone
)

// Layer identifies a drawing layer. Layers 0..6 are reserved (wire, pin,
// text, ...); 7.. are user layers.
type Layer int

const (
	LayerWire Layer = iota
	LayerPin
	LayerText
	LayerReserved3
	LayerReserved4
	LayerReserved5
	LayerReserved6
	LayerUserBase
)

// Line, RectGeo, ArcGeo and PolyGeo are the per-layer graphical primitives a
// symbol owns, expressed in symbol-local coordinates.
type Line struct {
	Layer      Layer
	X1, Y1     float64
	X2, Y2     float64
	Attributes string
}

type RectGeo struct {
	Layer      Layer
	Rect       xgeom.Rect
	Attributes string
	Flags      int
}

type ArcGeo struct {
	Layer      Layer
	Arc        xgeom.Arc
	Attributes string
}

type PolyGeo struct {
	Layer      Layer
	Poly       xgeom.Polygon
	Attributes string
}

// TextGeo is a symbol-owned annotation text (not to be confused with a
// sheet-level TextItem, which can be a floater).
type TextGeo struct {
	Layer      Layer
	Text       string
	X, Y       float64
	Rotation   xgeom.Rotation
	Attributes string
}

// Pin is a named connection point, stored as its centre position in
// symbol-local coordinates, carrying a direction attribute
// ("in"/"out"/"inout") used by label direction derivation.
type Pin struct {
	Name      string
	Number    string
	Position  xgeom.Point
	Direction string // "in", "out", "inout"
}

// Symbol is a reusable graphical block with pins and attributes.
// Symbols are value-owned by the Cache and referenced by instances through
// integer indices only, never by pointer, so the cache may relocate
// entries during shift-compaction.
type Symbol struct {
	Name       string
	Kind       Kind
	BaseIndex  int // valid only when Kind == Clone; -1 otherwise
	Type       string
	Template   string
	Attributes string
	Flags      int
	BBox       xgeom.Rect
	Lines      []Line
	Rects      []RectGeo
	Arcs       []ArcGeo
	Polys      []PolyGeo
	Texts      []TextGeo
	Pins       []Pin
}

// PinCount reports the number of pins the symbol exposes, used to validate
// Instance.NetNames.
func (s *Symbol) PinCount() int { return len(s.Pins) }
