package layout

import (
	"math"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
)

// Balanced holds the two column frames produced by Balance, resized
// to the same height so the columns end flush.
type Balanced struct {
	Left   surface.TextFrame
	Right  surface.TextFrame
	Height float64
}

// Balance distributes runs across two columns of the given width,
// starting at y with the left column at xLeft and the right at
// xRight. It probes word-level split points around the midpoint,
// keeps the one with the smallest height difference, and equalizes
// both frames to the taller column. The probe count and the early
// exit threshold come from the tuning.
func (f *Fitter) Balance(xLeft, xRight, y, width float64, runs []markup.Run, opts surface.TextOptions) Balanced {
	words := markup.SplitWords(runs)
	if len(words) == 0 {
		return Balanced{}
	}
	if len(words) == 1 {
		frame := f.Surf.TextFrame(surface.Rect{X: xLeft, Y: y, W: width, H: opts.Spacing()}, runs, opts)
		h, _ := f.expand(frame, opts.Spacing(), math.MaxFloat64)
		return Balanced{Left: frame, Height: h}
	}

	colHeight := func(ws []markup.Word) float64 {
		if len(ws) == 0 {
			return 0
		}
		probe := f.Surf.TextFrame(surface.Rect{X: xLeft, Y: y, W: width, H: 0}, markup.JoinWords(ws), opts)
		n := probe.LineCount()
		probe.Discard()
		return float64(n) * opts.Spacing()
	}

	mid := len(words) / 2
	bestSplit := mid
	bestDelta := math.MaxFloat64

	// alternate outward from the midpoint
	for i := 0; i < f.Tun.BalanceProbes; i++ {
		offset := (i + 1) / 2
		if i%2 == 1 {
			offset = -offset
		}
		k := mid + offset
		if k < 1 || k >= len(words) {
			continue
		}
		delta := math.Abs(colHeight(words[:k]) - colHeight(words[k:]))
		if delta < bestDelta {
			bestDelta = delta
			bestSplit = k
		}
		if bestDelta < f.Tun.BalanceEpsilon {
			break
		}
	}

	leftRuns := markup.JoinWords(words[:bestSplit])
	rightRuns := markup.JoinWords(words[bestSplit:])
	hl := colHeight(words[:bestSplit])
	hr := colHeight(words[bestSplit:])
	h := math.Max(hl, hr)

	left := f.Surf.TextFrame(surface.Rect{X: xLeft, Y: y, W: width, H: h}, leftRuns, opts)
	right := f.Surf.TextFrame(surface.Rect{X: xRight, Y: y, W: width, H: h}, rightRuns, opts)
	return Balanced{Left: left, Right: right, Height: h}
}
