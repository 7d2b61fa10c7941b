// Package surface defines the drawing seam between the layout engine
// and the PDF backend. The layout packages speak only to Surface and
// TextFrame, which lets the whole pagination pipeline run against the
// in-memory Headless implementation in tests and dry runs.
package surface

import (
	"io"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/theme"
)

// Rect is an axis-aligned box in page coordinates (points, origin at
// the top-left corner of the page).
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Align selects horizontal text alignment inside a frame.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextOptions carries the inherited text attributes for a frame.
// Per-run styles override these.
type TextOptions struct {
	Family string
	Size   float64
	// LineSpacing overrides the size-derived default when positive.
	LineSpacing float64
	Align       Align
	Color       theme.RGB
	// Exclusions are areas inside the frame that text must flow
	// around, in page coordinates. Used for floated images.
	Exclusions []Rect
}

// Spacing returns the effective baseline distance.
func (o TextOptions) Spacing() float64 {
	if o.LineSpacing > 0 {
		return o.LineSpacing
	}
	return theme.LineSpacing(o.Size)
}

// TextFrame is a block of flowed text whose layout has been computed
// but not yet drawn. The fitter probes frames freely and draws only
// the one it commits; Discard releases a probe without output.
type TextFrame interface {
	Bounds() Rect
	// Resize changes the frame height and recomputes the layout.
	Resize(h float64)
	// Move repositions the frame without reflowing it.
	Move(x, y float64)
	// Overflows reports whether the text does not fit the current
	// bounds. This is ground truth; estimates come from the oracle.
	Overflows() bool
	LineCount() int
	Draw()
	Discard()
}

// Surface is the drawing backend. Drawing calls do not return errors;
// the first failure sticks and is reported by Err, matching how the
// underlying PDF writer behaves.
type Surface interface {
	PageSize() (w, h float64)
	PageCount() int
	AddPage()
	// TextFrame lays out runs inside r on the current page.
	TextFrame(r Rect, runs []markup.Run, opts TextOptions) TextFrame
	// MeasureHeight estimates the height needed to flow runs into the
	// given width. Estimates may be wrong in either direction.
	MeasureHeight(runs []markup.Run, width float64, opts TextOptions) float64
	FillRect(r Rect, color theme.RGB)
	// Image draws the file scaled into r.
	Image(path string, r Rect)
	// RotatedText draws a single line rotated by angle degrees around
	// (x, y).
	RotatedText(x, y float64, text string, angle float64, opts TextOptions)
	Output(w io.Writer) error
	Err() error
}

// BarcodeDrawer is implemented by surfaces that can render barcodes.
type BarcodeDrawer interface {
	QRCode(content string, r Rect)
	PDF417(content string, r Rect)
}

// CoverImporter is implemented by surfaces that can import the first
// page of an existing PDF as a page of the output.
type CoverImporter interface {
	ImportCover(path string) error
}

// Watermarker is implemented by surfaces that can stamp a diagonal
// watermark on every page at output time.
type Watermarker interface {
	Watermark(text string)
}
