// Package viewport implements pan/zoom/fit-to-content and linewidth
// scaling. It holds no document references: callers pass in
// whatever bounding box they want the viewport fitted to.
package viewport

import (
	"math"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
)

// Viewport maintains the current world-to-screen mapping for one editor
// window: an origin (xorigin, yorigin), a zoom factor and its reciprocal
// (mooz = 1/zoom), plus the viewport's pixel extents.
type Viewport struct {
	XOrigin, YOrigin float64
	Zoom             float64
	Mooz             float64

	Width, Height float64 // pixel extents
	LineWidth     float64

	// UnzoomNoDrift mirrors the "unzoom_nodrift" preference: when set,
	// ZoomOut keeps the cursor as the fixed point so ZoomIn(f) then
	// ZoomOut(f) restores the exact prior origin/zoom.
	UnzoomNoDrift bool
}

// New creates a viewport with the given pixel size and zoom=1.
func New(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, Zoom: 1, Mooz: 1, LineWidth: 1}
}

// SetSize updates the viewport's pixel extents (set_viewport_size).
func (v *Viewport) SetSize(width, height float64) {
	v.Width, v.Height = width, height
}

// ToScreen maps a world point to pixel coordinates under the current
// origin/zoom.
func (v *Viewport) ToScreen(p xgeom.Point) (x, y float64) {
	return (p.X + v.XOrigin) / v.Zoom, (p.Y + v.YOrigin) / v.Zoom
}

// ToWorld maps a pixel coordinate back to world space.
func (v *Viewport) ToWorld(x, y float64) xgeom.Point {
	return xgeom.Point{X: x*v.Zoom - v.XOrigin, Y: y*v.Zoom - v.YOrigin}
}

// Pan translates the origin by a pixel-space delta, scaled by zoom.
func (v *Viewport) Pan(dxPixels, dyPixels float64) {
	v.XOrigin += dxPixels * v.Zoom
	v.YOrigin += dyPixels * v.Zoom
}

const (
	// defaultZoomStep mirrors CADZOOMSTEP.
	defaultZoomStep = 2.0
	minZoom         = 1e-4
	maxZoom         = 1e6
)

// ZoomIn zooms toward cursor (world coords) by factor (0 => default step).
// Mirrors view_zoom: xctx->zoom /= factor, origin recentered on cursor.
func (v *Viewport) ZoomIn(cursor xgeom.Point, factor float64) {
	if factor == 0 {
		factor = defaultZoomStep
	}
	if v.Zoom < minZoom {
		return
	}
	v.Zoom /= factor
	v.Mooz = 1 / v.Zoom
	v.XOrigin = -cursor.X + (cursor.X+v.XOrigin)/factor
	v.YOrigin = -cursor.Y + (cursor.Y+v.YOrigin)/factor
}

// ZoomOut zooms away from cursor by factor (0 => default step). When
// UnzoomNoDrift is set this is the exact algebraic inverse of ZoomIn with
// the same factor and cursor, so the pair is drift-free; otherwise
// it recenters on the viewport instead of the cursor.
func (v *Viewport) ZoomOut(cursor xgeom.Point, factor float64) {
	if factor == 0 {
		factor = defaultZoomStep
	}
	if v.Zoom > maxZoom {
		return
	}
	v.Zoom *= factor
	v.Mooz = 1 / v.Zoom
	if v.UnzoomNoDrift {
		v.XOrigin = -cursor.X + (cursor.X+v.XOrigin)*factor
		v.YOrigin = -cursor.Y + (cursor.Y+v.YOrigin)*factor
	} else {
		v.XOrigin += v.Width * v.Zoom * (1 - 1/factor) / 2
		v.YOrigin += v.Height * v.Zoom * (1 - 1/factor) / 2
	}
}

// ZoomToRect fits the viewport to a world-space window (zoom_box): origin
// moves to the window's min corner, zoom is the larger of the two axis
// ratios scaled by factor (0 => 1).
func (v *Viewport) ZoomToRect(window xgeom.Rect, factor float64) {
	if factor == 0 {
		factor = 1
	}
	w := window.Normalize()
	v.XOrigin = -w.X1
	v.YOrigin = -w.Y1
	xz := (w.X2 - w.X1) / v.Width
	yz := (w.Y2 - w.Y1) / v.Height
	v.Zoom = math.Max(xz, yz) * factor
	v.Mooz = 1 / v.Zoom
	v.XOrigin += v.Width * v.Zoom * (1 - 1/factor) / 2
	v.YOrigin += v.Height * v.Zoom * (1 - 1/factor) / 2
}

// FitFlags controls ZoomToFit's behavior, mirroring zoom_full's flags bits.
type FitFlags int

const (
	// FitResetArea mirrors zoom_full flags&1; ZoomToFit accepts it but
	// does not act on it.
	FitResetArea FitFlags = 1 << 0
	// FitCentered centers the content instead of bottom-left-anchoring it
	// (zoom_full flags&2).
	FitCentered FitFlags = 1 << 1
)

// ZoomToFit fits the viewport to bbox (the document's, optionally
// selection/hilight-restricted, bounding box), dividing by the viewport
// extents on both axes, using the larger ratio, applying shrink (default
// 0.97), and centering when FitCentered is set.
func (v *Viewport) ZoomToFit(bbox xgeom.Rect, shrink float64, flags FitFlags) {
	if shrink <= 0 {
		shrink = 0.97
	}
	bb := bbox.Normalize()
	bboxw := bb.X2 - bb.X1
	bboxh := bb.Y2 - bb.Y1

	xz := bboxw / v.Width
	yz := bboxh / v.Height
	v.Zoom = math.Max(xz, yz) / shrink
	v.Mooz = 1 / v.Zoom

	if flags&FitCentered != 0 {
		v.XOrigin = -bb.X1 + (v.Zoom*v.Width-bboxw)/2
		v.YOrigin = -bb.Y1 + (v.Zoom*v.Height-bboxh)/2
	} else {
		v.XOrigin = -bb.X1 + (1-shrink)/2*v.Zoom*v.Width
		v.YOrigin = -bb.Y1 + v.Zoom*v.Height - bboxh - (1-shrink)/2*v.Zoom*v.Height
	}
}

// ChangeLineWidth rescales LineWidth with zoom. A negative requested width
// recomputes it from the current zoom as Mooz (1/zoom), the
// change_linewidth(-1.) convention; non-negative sets it directly.
func (v *Viewport) ChangeLineWidth(requested float64) {
	if requested < 0 {
		v.LineWidth = v.Mooz
		return
	}
	v.LineWidth = requested
}

// Saved captures enough state for save_restore_zoom to push/pop around a
// hierarchy descend.
type Saved struct {
	XOrigin, YOrigin, Zoom   float64
	Width, Height, LineWidth float64
}

// Save captures the current viewport for later restore.
func (v *Viewport) Save() Saved {
	return Saved{v.XOrigin, v.YOrigin, v.Zoom, v.Width, v.Height, v.LineWidth}
}

// Restore reinstalls a previously saved viewport.
func (v *Viewport) Restore(s Saved) {
	v.XOrigin, v.YOrigin, v.Zoom = s.XOrigin, s.YOrigin, s.Zoom
	v.Width, v.Height, v.LineWidth = s.Width, s.Height, s.LineWidth
	if v.Zoom != 0 {
		v.Mooz = 1 / v.Zoom
	}
}
