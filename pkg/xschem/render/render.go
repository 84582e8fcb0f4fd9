// Package render defines the narrow rendering-backend contract the editor
// draws through: the core never rasterizes anything itself, it only calls
// Backend through the NOW/ADD/END phase protocol an out-of-scope widget
// toolkit implements.
package render

import (
	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/symbol"
)

// Phase names where in a redraw pass a call falls: NOW draws directly
// (e.g. a one-shot rubber-band tick), ADD accumulates into a dirty-rect
// batch, END flushes a batch phase's accumulated draws to the screen.
type Phase int

const (
	PhaseNow Phase = iota
	PhaseAdd
	PhaseEnd
)

// Backend is implemented by the out-of-scope rendering/UI layer. Every
// method receives the phase it's being called under so a backend can
// batch ADD-phase calls and flush once on END, matching xschem's
// erase-then-paint tiled redraw convention.
type Backend interface {
	DrawLine(phase Phase, layer symbol.Layer, a, b xgeom.Point)
	DrawRect(phase Phase, layer symbol.Layer, r xgeom.Rect, filled bool)
	DrawArc(phase Phase, layer symbol.Layer, arc xgeom.Arc)
	DrawPolygon(phase Phase, layer symbol.Layer, poly xgeom.Polygon, filled bool)
	DrawString(phase Phase, layer symbol.Layer, text string, at xgeom.Point, rot xgeom.Rotation, flip bool, hscale, vscale float64)

	// DrawTemp draws a temporary/rubber-band overlay figure that is never
	// part of the committed document, tiled erase-then-paint by the
	// backend on every subsequent call with the same tag.
	DrawTemp(tag string, segments []xgeom.Point)
	// ClearTemp erases a previously drawn temporary figure by tag.
	ClearTemp(tag string)
}

// NullBackend discards every draw call; useful for headless batch-mode
// CLI operations (netlisting, validation) that never open a viewport.
type NullBackend struct{}

func (NullBackend) DrawLine(Phase, symbol.Layer, xgeom.Point, xgeom.Point)                {}
func (NullBackend) DrawRect(Phase, symbol.Layer, xgeom.Rect, bool)                        {}
func (NullBackend) DrawArc(Phase, symbol.Layer, xgeom.Arc)                                {}
func (NullBackend) DrawPolygon(Phase, symbol.Layer, xgeom.Polygon, bool)                  {}
func (NullBackend) DrawString(Phase, symbol.Layer, string, xgeom.Point, xgeom.Rotation, bool, float64, float64) {}
func (NullBackend) DrawTemp(string, []xgeom.Point)                                        {}
func (NullBackend) ClearTemp(string)                                                      {}
