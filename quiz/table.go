package quiz

import (
	"github.com/lvillar/bookletgen/layout"
	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// Table lays quiz items out as a striped table: a header bar once per
// page, one row per item, and V/F answer boxes at the right edge with
// the correct box highlighted.
type Table struct {
	Surf surface.Surface
	Th   theme.Quiz
}

// NewTable wires a table renderer to a surface.
func NewTable(s surface.Surface, th theme.Quiz) *Table {
	return &Table{Surf: s, Th: th}
}

// RowHeight estimates the height of one row from the character count
// of its text at the table width. Short statements take the base row;
// slightly long ones stretch it; anything longer goes line-based with
// a safety buffer.
func (t *Table) RowHeight(text string, width float64) float64 {
	textWidth := width - t.Th.TextInset
	charsPerLine := textWidth / (t.Th.FontSize * 0.42)
	n := float64(len([]rune(text)))
	switch {
	case n <= 0.85*charsPerLine:
		return t.Th.RowHeight
	case n <= 1.2*charsPerLine:
		return t.Th.RowHeight * 1.3
	default:
		lines := n/charsPerLine + 1
		return (lines*t.Th.FontSize*1.2 + 3) * 1.1
	}
}

// MinStartHeight is the space a quiz block needs before it may start
// on the current page: the header bar plus two base rows.
func (t *Table) MinStartHeight() float64 {
	return t.Th.HeaderHeight + 2*t.Th.RowHeight
}

// Draw paginates items starting at the cursor. Rows never split; a
// row that would cross the page boundary moves whole to the next
// page, and a page segment never holds a single orphaned row while
// two or more remain. The header bar repeats in continuation form
// after every break. Returns without drawing for an empty item list.
func (t *Table) Draw(c *layout.Cursor, x, width float64, items []Item) {
	if len(items) == 0 {
		return
	}
	heights := make([]float64, len(items))
	for i, it := range items {
		heights[i] = t.RowHeight(it.Text, width)
	}

	if c.Remaining() < t.MinStartHeight() {
		c.NewPage()
	}
	t.drawHeader(c, x, width, false)

	i := 0
	broke := false
	for i < len(items) {
		fit := 0
		room := c.Remaining()
		for i+fit < len(items) && heights[i+fit] <= room {
			room -= heights[i+fit]
			fit++
		}
		if fit == 0 && broke {
			// row taller than a page; place it anyway
			fit = 1
		}
		if fit == 0 || (fit == 1 && len(items)-i >= 2 && !broke) {
			c.NewPage()
			t.drawHeader(c, x, width, true)
			broke = true
			continue
		}
		broke = false
		for k := 0; k < fit; k++ {
			t.drawRow(c, x, width, items[i+k], heights[i+k], (i+k)%2 == 1)
		}
		i += fit
	}
}

// drawHeader draws the header bar unless one is already on the page.
func (t *Table) drawHeader(c *layout.Cursor, x, width float64, continued bool) {
	if c.QuizHeaderPlaced() {
		return
	}
	h := t.Th.HeaderHeight
	text := t.Th.HeaderText
	if continued {
		h = t.Th.HeaderHeight * 2 / 3
		text += " (continua)"
	}
	t.Surf.FillRect(surface.Rect{X: x, Y: c.Y(), W: width, H: h}, t.Th.HeaderFill)
	runs := []markup.Run{{Text: text, Style: markup.Style{Bold: true, Color: &theme.RGB{R: 255, G: 255, B: 255}}}}
	frame := t.Surf.TextFrame(surface.Rect{X: x + 4, Y: c.Y() + (h-t.Th.FontSize)/2, W: width - 8, H: t.Th.FontSize * 1.5}, runs, surface.TextOptions{Size: t.Th.FontSize + 1})
	frame.Draw()
	c.Advance(h)
	c.MarkQuizHeader()
}

// drawRow draws one striped row: background, statement text, and the
// two answer boxes with the correct one filled.
func (t *Table) drawRow(c *layout.Cursor, x, width float64, it Item, h float64, alt bool) {
	fill := t.Th.RowFill
	if alt {
		fill = t.Th.RowAltFill
	}
	t.Surf.FillRect(surface.Rect{X: x, Y: c.Y(), W: width, H: h}, fill)

	textW := width - t.Th.TextInset
	frame := t.Surf.TextFrame(
		surface.Rect{X: x + 2, Y: c.Y() + 2, W: textW, H: h - 4},
		markup.Plain(it.Text),
		surface.TextOptions{Size: t.Th.FontSize},
	)
	frame.Draw()

	box := t.Th.BoxSize
	boxY := c.Y() + (h-box+2)/2
	vRect := surface.Rect{X: x + width - 2*box - 4, Y: boxY, W: box, H: box - 2}
	fRect := surface.Rect{X: x + width - box - 2, Y: boxY, W: box, H: box - 2}
	t.drawBox(vRect, "V", it.IsTrue)
	t.drawBox(fRect, "F", !it.IsTrue)
	c.Advance(h)
}

func (t *Table) drawBox(r surface.Rect, label string, marked bool) {
	fill := theme.RGB{R: 255, G: 255, B: 255}
	if marked {
		fill = t.Th.MarkFill
	}
	t.Surf.FillRect(r, fill)
	runs := markup.Plain(label)
	frame := t.Surf.TextFrame(
		surface.Rect{X: r.X, Y: r.Y + (r.H-t.Th.FontSize)/2, W: r.W, H: t.Th.FontSize * 1.5},
		runs,
		surface.TextOptions{Size: t.Th.FontSize, Align: surface.AlignCenter},
	)
	frame.Draw()
}
