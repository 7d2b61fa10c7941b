package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/theme"
)

// Headless is an in-memory Surface with a deterministic character
// grid: every rune advances half the font size and lines break by
// greedy word wrap. It records everything drawn so tests can assert
// on placement, and backs the CLI dry-run mode.
type Headless struct {
	w, h  float64
	pages []*HeadlessPage
	err   error
}

// HeadlessPage records the draw calls committed to one page.
type HeadlessPage struct {
	Texts   []DrawnText
	Rects   []DrawnRect
	Images  []DrawnImage
	Rotated []DrawnRotated
}

type DrawnText struct {
	Rect  Rect
	Text  string
	Lines int
}

type DrawnRect struct {
	Rect  Rect
	Color theme.RGB
}

type DrawnImage struct {
	Rect Rect
	Path string
}

type DrawnRotated struct {
	X, Y  float64
	Text  string
	Angle float64
}

// NewHeadless returns a headless surface with the given page size in
// points.
func NewHeadless(w, h float64) *Headless {
	return &Headless{w: w, h: h}
}

func (s *Headless) PageSize() (float64, float64) { return s.w, s.h }
func (s *Headless) PageCount() int               { return len(s.pages) }
func (s *Headless) Err() error                   { return s.err }

func (s *Headless) AddPage() {
	s.pages = append(s.pages, &HeadlessPage{})
}

// Page returns the recorded draw calls for a 1-based page number.
func (s *Headless) Page(n int) *HeadlessPage {
	return s.pages[n-1]
}

func (s *Headless) current() *HeadlessPage {
	if len(s.pages) == 0 {
		s.AddPage()
	}
	return s.pages[len(s.pages)-1]
}

func (s *Headless) FillRect(r Rect, color theme.RGB) {
	s.current().Rects = append(s.current().Rects, DrawnRect{Rect: r, Color: color})
}

func (s *Headless) Image(path string, r Rect) {
	s.current().Images = append(s.current().Images, DrawnImage{Rect: r, Path: path})
}

func (s *Headless) RotatedText(x, y float64, text string, angle float64, opts TextOptions) {
	s.current().Rotated = append(s.current().Rotated, DrawnRotated{X: x, Y: y, Text: text, Angle: angle})
}

// charWidth is the advance of one rune at the given size.
func charWidth(size float64) float64 { return size * 0.5 }

// countLines flows runs into a frame of the given origin and width
// and returns the number of lines used. Exclusions narrow the lines
// they vertically overlap.
func countLines(r Rect, runs []markup.Run, opts TextOptions) int {
	spacing := opts.Spacing()
	lines := 0
	cur := 0.0
	started := false

	usable := func(line int) float64 {
		band := Rect{X: r.X, Y: r.Y + float64(line)*spacing, W: r.W, H: spacing}
		w := r.W
		for _, ex := range opts.Exclusions {
			if band.Intersects(ex) {
				over := min(band.X+band.W, ex.X+ex.W) - max(band.X, ex.X)
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

	for _, run := range runs {
		cw := charWidth(opts.Size + run.Style.SizeDelta)
		parts := strings.Split(run.Text, "\n")
		for pi, part := range parts {
			if pi > 0 {
				lines++
				cur = 0
			}
			for _, word := range strings.Fields(part) {
				ww := float64(len([]rune(word))) * cw
				if !started {
					started = true
					lines = 1
				}
				width := usable(lines - 1)
				switch {
				case cur == 0:
					cur = ww
				case cur+cw+ww <= width:
					cur += cw + ww
				default:
					lines++
					cur = ww
				}
				if cur > width {
					// word wider than the line, let it occupy the
					// full line by itself
					cur = width
				}
			}
		}
	}
	if started && lines == 0 {
		lines = 1
	}
	return lines
}

// MeasureHeight estimates by flowing into an unbounded frame of the
// given width. Exclusions are ignored here, which is exactly why
// estimates can disagree with Overflows on float-wrapped frames.
func (s *Headless) MeasureHeight(runs []markup.Run, width float64, opts TextOptions) float64 {
	clean := opts
	clean.Exclusions = nil
	n := countLines(Rect{W: width, H: s.h}, runs, clean)
	return float64(n) * opts.Spacing()
}

type headlessFrame struct {
	s     *Headless
	page  *HeadlessPage
	r     Rect
	runs  []markup.Run
	opts  TextOptions
	lines int
}

func (s *Headless) TextFrame(r Rect, runs []markup.Run, opts TextOptions) TextFrame {
	f := &headlessFrame{s: s, page: s.current(), r: r, runs: runs, opts: opts}
	f.reflow()
	return f
}

func (f *headlessFrame) reflow() {
	f.lines = countLines(f.r, f.runs, f.opts)
}

func (f *headlessFrame) Bounds() Rect { return f.r }

func (f *headlessFrame) Resize(h float64) {
	f.r.H = h
	f.reflow()
}

func (f *headlessFrame) Move(x, y float64) {
	f.r.X, f.r.Y = x, y
}

func (f *headlessFrame) Overflows() bool {
	const eps = 1e-9
	return float64(f.lines)*f.opts.Spacing() > f.r.H+eps
}

func (f *headlessFrame) LineCount() int { return f.lines }

func (f *headlessFrame) Draw() {
	f.page.Texts = append(f.page.Texts, DrawnText{
		Rect:  f.r,
		Text:  markup.Text(f.runs),
		Lines: f.lines,
	})
}

func (f *headlessFrame) Discard() {}

// QRCode records a barcode draw so dry runs paginate like real ones.
func (s *Headless) QRCode(content string, r Rect) {
	s.current().Images = append(s.current().Images, DrawnImage{Rect: r, Path: "qr:" + content})
}

// PDF417 records a barcode draw.
func (s *Headless) PDF417(content string, r Rect) {
	s.current().Images = append(s.current().Images, DrawnImage{Rect: r, Path: "pdf417:" + content})
}

// Output writes a one-line summary. The headless surface produces no
// document; it exists for tests and dry runs.
func (s *Headless) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "headless: %d pages\n", len(s.pages))
	return err
}
