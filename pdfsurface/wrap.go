package pdfsurface

import (
	"strings"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
)

// styledWord is one word with its resolved style and measured width.
type styledWord struct {
	text  string
	style markup.Style
	width float64
}

type line struct {
	words []styledWord
	width float64
}

// pdfFrame is a laid-out text block. Layout happens at creation with
// the backend's string metrics; Draw emits it, Discard never touches
// the document.
type pdfFrame struct {
	s     *PDFSurface
	r     surface.Rect
	opts  surface.TextOptions
	lines []line
}

func (s *PDFSurface) TextFrame(r surface.Rect, runs []markup.Run, opts surface.TextOptions) surface.TextFrame {
	f := &pdfFrame{s: s, r: r, opts: opts}
	f.lines = s.breakLines(r, runs, opts)
	return f
}

// MeasureHeight flows runs into the given width with no exclusions
// and returns the resulting height.
func (s *PDFSurface) MeasureHeight(runs []markup.Run, width float64, opts surface.TextOptions) float64 {
	clean := opts
	clean.Exclusions = nil
	lines := s.breakLines(surface.Rect{W: width, H: s.h}, runs, clean)
	return float64(len(lines)) * opts.Spacing()
}

// effectiveSize is the run's font size after delta and script
// shrinking.
func effectiveSize(base float64, st markup.Style) float64 {
	size := base + st.SizeDelta
	if st.Offset != markup.OffsetNone {
		size *= 0.7
	}
	if size < 1 {
		size = 1
	}
	return size
}

// setFont switches the backend to the run's font.
func (s *PDFSurface) setFont(st markup.Style, opts surface.TextOptions) {
	family := st.Family
	if family == "" {
		family = opts.Family
	}
	s.pdf.SetFont(s.fonts.resolve(family), styleString(st), effectiveSize(opts.Size, st))
}

// wordWidth measures text in the run's font.
func (s *PDFSurface) wordWidth(text string, st markup.Style, opts surface.TextOptions) float64 {
	s.setFont(st, opts)
	return s.pdf.GetStringWidth(text)
}

// breakLines is the greedy word-wrap. Exclusions narrow the lines
// whose vertical band they overlap, which is how floated images eat
// into the text.
func (s *PDFSurface) breakLines(r surface.Rect, runs []markup.Run, opts surface.TextOptions) []line {
	spacing := opts.Spacing()
	usable := func(idx int) float64 {
		band := surface.Rect{X: r.X, Y: r.Y + float64(idx)*spacing, W: r.W, H: spacing}
		w := r.W
		for _, ex := range opts.Exclusions {
			if band.Intersects(ex) {
				over := minF(band.X+band.W, ex.X+ex.W) - maxF(band.X, ex.X)
				if over > 0 {
					w -= over
				}
			}
		}
		if floor := r.W * 0.1; w < floor {
			w = floor
		}
		return w
	}

	var lines []line
	var cur line
	flush := func() {
		lines = append(lines, cur)
		cur = line{}
	}

	for _, run := range runs {
		space := s.wordWidth(" ", run.Style, opts)
		parts := strings.Split(run.Text, "\n")
		for pi, part := range parts {
			if pi > 0 {
				flush()
			}
			for _, word := range strings.Fields(part) {
				ww := s.wordWidth(word, run.Style, opts)
				width := usable(len(lines))
				switch {
				case len(cur.words) == 0:
					cur.words = append(cur.words, styledWord{word, run.Style, ww})
					cur.width = ww
				case cur.width+space+ww <= width:
					cur.words = append(cur.words, styledWord{word, run.Style, ww})
					cur.width += space + ww
				default:
					flush()
					cur.words = append(cur.words, styledWord{word, run.Style, ww})
					cur.width = ww
				}
			}
		}
	}
	if len(cur.words) > 0 {
		flush()
	}
	// drop a trailing empty line left by a terminal newline
	for len(lines) > 0 && len(lines[len(lines)-1].words) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (f *pdfFrame) Bounds() surface.Rect { return f.r }
func (f *pdfFrame) LineCount() int       { return len(f.lines) }
func (f *pdfFrame) Resize(h float64)     { f.r.H = h }
func (f *pdfFrame) Move(x, y float64)    { f.r.X, f.r.Y = x, y }
func (f *pdfFrame) Discard()             {}

func (f *pdfFrame) Overflows() bool {
	const eps = 1e-9
	return float64(len(f.lines))*f.opts.Spacing() > f.r.H+eps
}

// Draw renders every laid-out line. Frames the fitter committed fit
// their bounds; a degraded frame draws its residual overflow rather
// than losing text.
func (f *pdfFrame) Draw() {
	s := f.s
	spacing := f.opts.Spacing()
	for i, ln := range f.lines {
		baseline := f.r.Y + float64(i)*spacing + f.opts.Size*0.85
		x := f.r.X
		switch f.opts.Align {
		case surface.AlignCenter:
			x = f.r.X + (f.r.W-ln.width)/2
		case surface.AlignRight:
			x = f.r.X + f.r.W - ln.width
		}
		for _, w := range ln.words {
			s.setFont(w.style, f.opts)
			c := f.opts.Color
			if w.style.Color != nil {
				c = *w.style.Color
			}
			s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
			y := baseline
			switch w.style.Offset {
			case markup.OffsetSuper:
				y -= f.opts.Size * 0.3
			case markup.OffsetSub:
				y += f.opts.Size * 0.15
			}
			s.pdf.Text(x, y, w.text)
			x += w.width + s.wordWidth(" ", w.style, f.opts)
		}
	}
	s.pdf.SetTextColor(0, 0, 0)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
