package layout

import (
	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
)

// Oracle estimates block heights. Estimates guide the fitter; the
// placed frame's Overflows result is the ground truth that corrects
// them.
type Oracle struct {
	Surf surface.Surface
}

// Height returns the estimated height for flowing runs into the
// given width. It never fails: a zero or negative backend estimate
// falls back to the character-count heuristic.
func (o Oracle) Height(runs []markup.Run, width float64, opts surface.TextOptions) float64 {
	if len(runs) == 0 {
		return 0
	}
	h := o.Surf.MeasureHeight(runs, width, opts)
	if h <= 0 {
		return FallbackHeight(markup.Len(runs), opts.Size)
	}
	return h
}

// FallbackHeight is the estimate of last resort: fifty characters per
// line, each line one and a half times the font size.
func FallbackHeight(chars int, size float64) float64 {
	lines := chars / 50
	if lines < 1 {
		lines = 1
	}
	return float64(lines) * size * 1.5
}
