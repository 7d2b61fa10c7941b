// Package layout implements the pagination engine: the page cursor,
// the height oracle, the box fitter with its expand and split loops,
// the two-column balancer, and the inter-block spacing policy. It
// draws through the surface package only.
package layout

import (
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// Cursor tracks the insertion point while the walker emits blocks.
// Pages are 1-based; y grows downward from the top margin.
type Cursor struct {
	Surf surface.Surface
	Geom theme.Page

	page       int
	y          float64
	quizHeader bool

	// OnNewPage runs after every page break, before any block lands
	// on the new page. The walker uses it for banners and page
	// numbers.
	OnNewPage func(c *Cursor)
}

// NewCursor returns a cursor with no page yet. The first Ensure or
// NewPage call opens page 1.
func NewCursor(s surface.Surface, g theme.Page) *Cursor {
	return &Cursor{Surf: s, Geom: g}
}

// Page returns the current 1-based page number, 0 before the first
// page.
func (c *Cursor) Page() int { return c.page }

// Y returns the current vertical offset.
func (c *Cursor) Y() float64 { return c.y }

// SetY moves the insertion point. Used after drawing a block.
func (c *Cursor) SetY(y float64) { c.y = y }

// Advance moves the insertion point down by dy.
func (c *Cursor) Advance(dy float64) { c.y += dy }

// Remaining returns the usable height left on the current page, with
// the bottom margin and the footer reserve excluded.
func (c *Cursor) Remaining() float64 {
	return c.Geom.Height - c.y - c.Geom.MarginBottom - c.Geom.FooterReserve
}

// ContentHeight returns the usable height of a fresh page.
func (c *Cursor) ContentHeight() float64 {
	return c.Geom.Height - c.Geom.MarginTop - c.Geom.MarginBottom - c.Geom.FooterReserve
}

// AtTop reports whether nothing has been placed on the current page.
func (c *Cursor) AtTop() bool { return c.y == c.Geom.MarginTop }

// Ensure opens page 1 if no page exists yet.
func (c *Cursor) Ensure() {
	if c.page == 0 {
		c.NewPage()
	}
}

// NewPage breaks to a fresh page and resets the per-page state. The
// page number tracks the surface so imported cover pages count.
func (c *Cursor) NewPage() {
	c.Surf.AddPage()
	c.page = c.Surf.PageCount()
	c.y = c.Geom.MarginTop
	c.quizHeader = false
	if c.OnNewPage != nil {
		c.OnNewPage(c)
	}
}

// QuizHeaderPlaced reports whether the quiz header bar has been drawn
// on the current page.
func (c *Cursor) QuizHeaderPlaced() bool { return c.quizHeader }

// MarkQuizHeader records that the quiz header bar is on this page.
func (c *Cursor) MarkQuizHeader() { c.quizHeader = true }

// ColumnX returns the left edge of a 0-based column.
func (c *Cursor) ColumnX(col int) float64 {
	return c.Geom.MarginLeft + float64(col)*(c.Geom.ColumnWidth()+c.Geom.ColumnGap)
}
