package doc

import (
	"fmt"

	"github.com/OpenTraceLab/xschem-go/pkg/xgeom"
)

// Decode decodes the embedded raster bytes into a drawable surface.
func (im *EmbeddedImage) Decode() (*xgeom.Surface, error) {
	return xgeom.DecodeSurface(im.Data)
}

// Surface returns the raster to paint inside the owning rectangle: the
// decoded image resampled to the rectangle's pixel extents, unless the image
// is flagged unscaled, in which case it is returned at its native size.
func (g *RectGeom) Surface(pxw, pxh int) (*xgeom.Surface, error) {
	if g.Image == nil {
		return nil, fmt.Errorf("doc: rect owns no embedded image")
	}
	s, err := g.Image.Decode()
	if err != nil {
		return nil, err
	}
	if g.Image.Unscaled || pxw <= 0 || pxh <= 0 {
		return s, nil
	}
	return s.Scaled(pxw, pxh), nil
}
