package xgeom

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Surface is a decoded raster image owned by a rectangle annotation. The
// document model only carries the decoded pixels and their format tag; how
// (and whether) a surface ends up on screen is the rendering backend's
// business.
type Surface struct {
	Img    image.Image
	Format string // "png", "jpeg", ...
}

// DecodeSurface decodes raw encoded image bytes (PNG or JPEG) into a
// Surface.
func DecodeSurface(data []byte) (*Surface, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xgeom: decode image: %w", err)
	}
	return &Surface{Img: img, Format: format}, nil
}

// Size returns the surface's native pixel extents.
func (s *Surface) Size() (w, h int) {
	b := s.Img.Bounds()
	return b.Dx(), b.Dy()
}

// Scaled returns a copy resampled to w x h with bilinear interpolation.
func (s *Surface) Scaled(w, h int) *Surface {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), s.Img, s.Img.Bounds(), xdraw.Over, nil)
	return &Surface{Img: dst, Format: s.Format}
}
