package booklet

import (
	"strings"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// drawAnswerKey appends the instructor appendix: one line of V/F
// letters per quizzed template, plus a PDF417 code carrying the whole
// key for machine checking.
func (w *walker) drawAnswerKey() {
	if len(w.answers) == 0 {
		return
	}
	w.banner = nil
	w.cursor.NewPage()
	w.header("SOLUZIONI", w.g.th.Fonts.HeaderSize+1)

	var lines []string
	for _, a := range w.answers {
		lines = append(lines, string(a.id)+": "+a.key)
	}
	runs := markup.Plain(strings.Join(lines, "\n"))
	w.block(runs, surface.TextOptions{Size: w.g.th.Fonts.BodySize}, false, theme.RGB{}, false)

	bd, ok := w.surf.(surface.BarcodeDrawer)
	if !ok {
		return
	}
	var enc []string
	for _, a := range w.answers {
		enc = append(enc, string(a.id)+"="+a.key)
	}
	const codeW, codeH = 180, 60
	if w.cursor.Remaining() < codeH+10 {
		w.cursor.NewPage()
	}
	w.cursor.Advance(8)
	bd.PDF417(strings.Join(enc, ";"), surface.Rect{
		X: w.g.th.Page.MarginLeft,
		Y: w.cursor.Y(),
		W: codeW,
		H: codeH,
	})
	w.cursor.Advance(codeH)
}
