package selection

import "github.com/OpenTraceLab/xschem-go/pkg/xgeom"

// BBoxController accumulates the union of rectangles bounding the region
// to redraw, bracketed by START...ADD*...SET...END. Every
// placement, rubber-band step and zoom operation should bracket its visual
// work this way.
type BBoxController struct {
	active  bool
	union   xgeom.Rect
	clip    xgeom.Rect
	hasClip bool
}

// Start begins a new accumulation pass, discarding any prior union.
func (c *BBoxController) Start() {
	c.active = true
	c.union = xgeom.EmptyRect()
}

// Add merges r into the running union. A no-op if Start has not been called.
func (c *BBoxController) Add(r xgeom.Rect) {
	if !c.active {
		return
	}
	c.union.ExpandRect(r)
}

// Set installs the accumulated union as the active redraw clip.
func (c *BBoxController) Set() {
	c.clip = c.union
	c.hasClip = true
}

// End clears the active clip and ends the accumulation pass.
func (c *BBoxController) End() {
	c.active = false
	c.hasClip = false
}

// Clip returns the currently installed redraw clip, if any.
func (c *BBoxController) Clip() (xgeom.Rect, bool) {
	return c.clip, c.hasClip
}

// Union returns the rectangle accumulated so far in the current pass.
func (c *BBoxController) Union() xgeom.Rect {
	return c.union
}
