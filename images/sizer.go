// Package images places the pictorial content: single floated images
// with text wrap, grids of up to five images, and road-sign rows. All
// placement math works from intrinsic pixel sizes probed once per
// path.
package images

import (
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Size is an intrinsic image size in pixels.
type Size struct {
	W, H float64
}

// Aspect returns width over height.
func (s Size) Aspect() float64 {
	if s.H == 0 {
		return 1
	}
	return s.W / s.H
}

// Sizer probes intrinsic image sizes, memoizing per path. A path that
// cannot be opened or decoded yields the fallback size; sizing never
// fails.
type Sizer struct {
	Fallback Size
	cache    map[string]Size
}

// NewSizer returns a sizer with the given fallback size.
func NewSizer(fallback Size) *Sizer {
	return &Sizer{Fallback: fallback, cache: make(map[string]Size)}
}

// Probe returns the intrinsic size of the image at path.
func (s *Sizer) Probe(path string) Size {
	if sz, ok := s.cache[path]; ok {
		return sz
	}
	sz := s.Fallback
	if f, err := os.Open(path); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil && cfg.Width > 0 && cfg.Height > 0 {
			sz = Size{W: float64(cfg.Width), H: float64(cfg.Height)}
		}
		f.Close()
	}
	s.cache[path] = sz
	return sz
}
