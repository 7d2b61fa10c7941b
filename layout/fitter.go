package layout

import (
	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// Decision is the fitter's verdict for a block at the current cursor
// position.
type Decision int

const (
	// Fit means the block was placed whole; Placement.Frame holds it.
	Fit Decision = iota
	// NewPage means nothing was placed; the caller breaks the page
	// and retries.
	NewPage
	// Split means a leading fragment was placed and
	// Placement.Remainder carries the rest to the next page.
	Split
)

// Placement is the outcome of a Place call. Frame is nil for NewPage.
// The frame has been laid out but not drawn; the caller commits it
// with Draw once the decision is accepted.
type Placement struct {
	Decision  Decision
	Frame     surface.TextFrame
	Height    float64
	Remainder []markup.Run
}

// Fitter places text blocks using estimate-then-verify: the oracle's
// estimate seeds the frame, expansion corrects underestimates, and
// bisection finds the split point when the page runs out. Every loop
// is bounded by the tuning limits.
type Fitter struct {
	Surf   surface.Surface
	Oracle Oracle
	Tun    theme.FitTuning
}

// NewFitter wires a fitter to a surface.
func NewFitter(s surface.Surface, tun theme.FitTuning) *Fitter {
	return &Fitter{Surf: s, Oracle: Oracle{Surf: s}, Tun: tun}
}

// Place lays runs into a frame at (x, y) with the given width, using
// at most remaining points of height. Atomic blocks are never split;
// fresh reports that the cursor sits at the top of an empty page, in
// which case an oversized atomic block is placed with residual
// overflow instead of looping on page breaks.
func (f *Fitter) Place(x, y, width, remaining float64, runs []markup.Run, opts surface.TextOptions, atomic, fresh bool) Placement {
	if len(runs) == 0 {
		return Placement{Decision: Fit}
	}
	minLine := opts.Spacing()
	if remaining < minLine && !fresh {
		return Placement{Decision: NewPage}
	}

	est := f.Oracle.Height(runs, width, opts)
	if est <= remaining {
		frame := f.Surf.TextFrame(surface.Rect{X: x, Y: y, W: width, H: est}, runs, opts)
		h, fits := f.expand(frame, est, remaining)
		if fits {
			return Placement{Decision: Fit, Frame: frame, Height: h}
		}
		frame.Discard()
	}

	// The block does not fit the remaining space.
	if atomic {
		if fresh {
			// taller than a full page; accept the overflow
			frame := f.Surf.TextFrame(surface.Rect{X: x, Y: y, W: width, H: remaining}, runs, opts)
			return Placement{Decision: Fit, Frame: frame, Height: remaining}
		}
		return Placement{Decision: NewPage}
	}
	return f.split(x, y, width, remaining, runs, opts, fresh)
}

// expand grows the frame from its estimated height until the text
// fits or the space runs out. Coarse steps close most of the gap,
// fine steps finish. Returns the final height and whether it fits.
func (f *Fitter) expand(frame surface.TextFrame, h, limit float64) (float64, bool) {
	if !frame.Overflows() {
		return h, true
	}
	for i := 0; i < f.Tun.MaxCoarse && frame.Overflows(); i++ {
		next := h + f.Tun.CoarseStep
		if next > limit {
			break
		}
		h = next
		frame.Resize(h)
	}
	for i := 0; i < f.Tun.MaxFine && frame.Overflows(); i++ {
		next := h + f.Tun.FineStep
		if next > limit {
			break
		}
		h = next
		frame.Resize(h)
	}
	if frame.Overflows() && h < limit {
		// steps exhausted, jump straight to the limit
		h = limit
		frame.Resize(h)
	}
	return h, !frame.Overflows()
}

// split bisects over the rune index for the longest prefix that fits
// in the remaining space, places it, and returns the rest. Prefix and
// remainder always concatenate to the original text.
func (f *Fitter) split(x, y, width, remaining float64, runs []markup.Run, opts surface.TextOptions, fresh bool) Placement {
	total := markup.Len(runs)
	fitsPrefix := func(n int) bool {
		head, _ := markup.SplitAt(runs, n)
		probe := f.Surf.TextFrame(surface.Rect{X: x, Y: y, W: width, H: remaining}, head, opts)
		ok := !probe.Overflows()
		probe.Discard()
		return ok
	}

	lo, hi := 0, total // invariant: prefix lo fits, hi+1..total unknown
	for i := 0; i < f.Tun.MaxBisect && lo < hi; i++ {
		mid := (lo + hi + 1) / 2
		if fitsPrefix(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		if !fresh {
			return Placement{Decision: NewPage}
		}
		// not even one rune fits a fresh page; degrade by taking one
		// line's worth rather than looping forever
		lo = 1
	}
	if lo == total {
		// the estimate was pessimistic and the whole block fits
		frame := f.Surf.TextFrame(surface.Rect{X: x, Y: y, W: width, H: remaining}, runs, opts)
		return Placement{Decision: Fit, Frame: frame, Height: remaining}
	}
	head, tail := markup.SplitAt(runs, lo)
	frame := f.Surf.TextFrame(surface.Rect{X: x, Y: y, W: width, H: remaining}, head, opts)
	return Placement{Decision: Split, Frame: frame, Height: remaining, Remainder: tail}
}
