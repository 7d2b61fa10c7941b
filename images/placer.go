package images

import (
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// gap between images inside a row and between rows.
const imageGap = 5

// Placer draws image blocks onto a surface.
type Placer struct {
	Surf  surface.Surface
	Sizer *Sizer
	Th    theme.Images
}

// NewPlacer wires a placer to a surface.
func NewPlacer(s surface.Surface, th theme.Images) *Placer {
	return &Placer{
		Surf:  s,
		Sizer: NewSizer(Size{W: th.FallbackWidth, H: th.FallbackHeight}),
		Th:    th,
	}
}

// scaleToHeight returns the display width for an image scaled to h.
func (p *Placer) scaleToHeight(path string, h float64) float64 {
	return p.Sizer.Probe(path).Aspect() * h
}

// PlaceGrid draws paths in groups of five, three left-aligned on the
// first row and two centered on the second. Rows wider than width are
// scaled down uniformly so relative sizes survive. Returns the total
// height consumed.
func (p *Placer) PlaceGrid(x, y, width float64, paths []string) float64 {
	startY := y
	for len(paths) > 0 {
		group := paths
		if len(group) > 5 {
			group = group[:5]
		}
		paths = paths[len(group):]

		first := group
		if len(first) > 3 {
			first = first[:3]
		}
		y += p.placeRow(x, y, width, first, false)
		if len(group) > 3 {
			y += p.placeRow(x, y, width, group[3:], true)
		}
	}
	return y - startY
}

// placeRow draws one row at uniform height, scaling the whole row
// down when it is too wide. Returns the height consumed including the
// trailing gap.
func (p *Placer) placeRow(x, y, width float64, paths []string, centered bool) float64 {
	if len(paths) == 0 {
		return 0
	}
	h := p.Th.StandardHeight
	gaps := float64(len(paths)-1) * imageGap
	sum := 0.0
	widths := make([]float64, len(paths))
	for i, path := range paths {
		widths[i] = p.scaleToHeight(path, h)
		sum += widths[i]
	}
	if sum+gaps > width {
		ratio := (width - gaps) / sum
		h *= ratio
		for i := range widths {
			widths[i] *= ratio
		}
		sum = width - gaps
	}
	total := sum + gaps
	cx := x
	if centered {
		cx = x + (width-total)/2
	}
	for i, path := range paths {
		p.Surf.Image(path, surface.Rect{X: cx, Y: y, W: widths[i], H: h})
		cx += widths[i] + imageGap
	}
	return h + imageGap
}

// GridHeightEstimate returns the worst-case height of a grid of n
// images before scaling, for the walker's page-break check.
func (p *Placer) GridHeightEstimate(n int) float64 {
	rows := 0
	for n > 0 {
		group := n
		if group > 5 {
			group = 5
		}
		rows++
		if group > 3 {
			rows++
		}
		n -= group
	}
	return float64(rows) * (p.Th.StandardHeight + imageGap)
}

// RoadsignHeightEstimate returns the worst-case height of n signs in
// rows at the given width.
func (p *Placer) RoadsignHeightEstimate(n int, width float64) float64 {
	perRow := 3
	switch {
	case width < 120:
		perRow = 1
	case width < 200:
		perRow = 2
	}
	rows := (n + perRow - 1) / perRow
	return float64(rows) * (p.Th.RoadsignHeight + imageGap)
}

// attention reports whether a sign should shrink: near-square signs
// and large originals read too heavy at the standard sign height.
func attention(sz Size) bool {
	a := sz.Aspect()
	if a >= 0.8 && a <= 1.2 {
		return true
	}
	return sz.W > 200 || sz.H > 200
}

// PlaceRoadsigns draws sign images right-aligned in rows. The row
// capacity adapts to the available width. Returns the height
// consumed.
func (p *Placer) PlaceRoadsigns(x, y, width float64, paths []string) float64 {
	perRow := 3
	switch {
	case width < 120:
		perRow = 1
	case width < 200:
		perRow = 2
	}
	startY := y
	for len(paths) > 0 {
		row := paths
		if len(row) > perRow {
			row = row[:perRow]
		}
		paths = paths[len(row):]

		rowH := 0.0
		widths := make([]float64, len(row))
		heights := make([]float64, len(row))
		total := float64(len(row)-1) * imageGap
		for i, path := range row {
			h := p.Th.RoadsignHeight
			if attention(p.Sizer.Probe(path)) {
				h *= 0.6
			}
			heights[i] = h
			widths[i] = p.scaleToHeight(path, h)
			total += widths[i]
			if h > rowH {
				rowH = h
			}
		}
		cx := x + width - total
		for i, path := range row {
			p.Surf.Image(path, surface.Rect{X: cx, Y: y, W: widths[i], H: heights[i]})
			cx += widths[i] + imageGap
		}
		y += rowH + imageGap
	}
	return y - startY
}

// Float describes a single image floated at the top-right corner of a
// text frame.
type Float struct {
	// Defer means the remaining space is too short for the image and
	// the block should move to the next page.
	Defer bool
	// Image is where the picture goes, in page coordinates.
	Image surface.Rect
	// Exclusion is the area the text must flow around.
	Exclusion surface.Rect
	// Reserve is the extra height the text frame needs to absorb the
	// lines displaced by the image.
	Reserve float64
}

// PlanFloat computes the float geometry for an image at the top-right
// of a frame starting at (x, y) with the given width. The image is
// scaled to the standard height; when less than 60% of that fits in
// remaining, the float defers.
func (p *Placer) PlanFloat(x, y, width, remaining float64, path string) Float {
	h := p.Th.StandardHeight
	w := p.scaleToHeight(path, h)
	if w > width/2 {
		// never let the picture eat more than half the column
		ratio := (width / 2) / w
		w *= ratio
		h *= ratio
	}
	if remaining < h*0.6 {
		return Float{Defer: true}
	}
	img := surface.Rect{X: x + width - w, Y: y, W: w, H: h}
	return Float{
		Image:     img,
		Exclusion: surface.Rect{X: img.X - imageGap, Y: y, W: w + imageGap, H: h + imageGap},
		Reserve:   h * (w / width) * 1.2,
	}
}

// DrawFloat commits a planned float.
func (p *Placer) DrawFloat(f Float, path string) {
	p.Surf.Image(path, f.Image)
}
