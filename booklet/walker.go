package booklet

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lvillar/bookletgen/images"
	"github.com/lvillar/bookletgen/layout"
	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/quiz"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// Generator turns a parsed course document into pages on a surface.
type Generator struct {
	th    theme.Theme
	log   *slog.Logger
	runID string

	quizzes    bool
	quizFilter quiz.Filter
	images     bool
	coverPath  string
	watermark  string
	answerKey  bool
	limit      int
}

// New builds a generator. Quizzes and images are on by default.
func New(th theme.Theme, opts ...Option) *Generator {
	g := &Generator{
		th:      th,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		runID:   uuid.NewString(),
		quizzes: true,
		images:  true,
		limit:   th.TemplateLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate walks the document onto the surface. Input and
// configuration problems fail before the first page; content problems
// degrade and generation continues.
func (g *Generator) Generate(doc *Document, surf surface.Surface) error {
	if err := g.th.Validate(); err != nil {
		return genError("config", err)
	}
	if len(doc.Areas) == 0 {
		return genError("walk", ErrNoAreas)
	}
	log := g.log.With("run", g.runID)

	if g.watermark != "" {
		if wm, ok := surf.(surface.Watermarker); ok {
			wm.Watermark(g.watermark)
		}
	}
	if g.coverPath != "" {
		ci, ok := surf.(surface.CoverImporter)
		if !ok {
			log.Warn("surface cannot import covers, skipping", "cover", g.coverPath)
		} else if err := ci.ImportCover(g.coverPath); err != nil {
			return genError("cover", err)
		}
	}

	w := &walker{
		g:      g,
		log:    log,
		surf:   surf,
		cursor: layout.NewCursor(surf, g.th.Page),
		fit:    layout.NewFitter(surf, g.th.Fit),
		placer: images.NewPlacer(surf, g.th.Images),
		table:  quiz.NewTable(surf, g.th.Quiz),
	}
	w.cursor.OnNewPage = w.decoratePage
	w.run(doc)

	if g.answerKey {
		w.drawAnswerKey()
	}
	log.Info("generation finished", "pages", surf.PageCount(), "templates", w.count)
	if err := surf.Err(); err != nil {
		return genError("render", err)
	}
	return nil
}

// answerRec remembers one template's quiz truths for the answer key.
type answerRec struct {
	id  ID
	key string // "VFFV..." in item order
}

// walker carries the per-run state the original kept in globals.
type walker struct {
	g      *Generator
	log    *slog.Logger
	surf   surface.Surface
	cursor *layout.Cursor
	fit    *layout.Fitter
	placer *images.Placer
	table  *quiz.Table

	count   int
	banner  *banner
	answers []answerRec
}

func (w *walker) done() bool { return w.count >= w.g.limit }

// decoratePage runs on every page break: active banner first, then
// the page number.
func (w *walker) decoratePage(c *layout.Cursor) {
	if w.banner != nil {
		w.g.drawBanner(c, *w.banner)
	}
	w.drawPageNumber(c)
}

func (w *walker) drawPageNumber(c *layout.Cursor) {
	th := w.g.th
	r := surface.Rect{
		X: (th.Page.Width - th.Footer.Width) / 2,
		Y: th.Page.Height - th.Page.MarginBottom + th.Footer.Drop,
		W: th.Footer.Width,
		H: th.Footer.Height,
	}
	f := w.surf.TextFrame(r, markup.Plain(strconv.Itoa(c.Page())), surface.TextOptions{
		Size:  th.Footer.FontSize,
		Align: surface.AlignCenter,
	})
	f.Draw()
}

func (w *walker) run(doc *Document) {
	sp := w.g.th.Spacing
	w.cursor.Ensure()
	for ai, area := range doc.Areas {
		if w.done() {
			return
		}
		if ai > 0 {
			w.cursor.Advance(layout.Gap(sp, layout.AreaToArea))
		}
		w.header(area.Name, w.g.th.Fonts.HeaderSize+2)
		w.desc(area.Desc)
		for ci, ch := range area.Chapters {
			if w.done() {
				return
			}
			if ci > 0 {
				w.cursor.Advance(layout.Gap(sp, layout.ChapterToChapter))
			}
			w.header(ch.Name, w.g.th.Fonts.HeaderSize+1)
			w.desc(ch.Desc)
			for ti, tp := range ch.Topics {
				if w.done() {
					return
				}
				if ti > 0 {
					w.cursor.Advance(layout.Gap(sp, layout.TopicToTopic))
				}
				w.topic(tp)
			}
		}
	}
}

func (w *walker) topic(tp Topic) {
	sp := w.g.th.Spacing
	b := topicBanner(tp.Name, tp.BannerColor, w.g.th.Banner)
	w.banner = &b
	w.g.drawBanner(w.cursor, b)

	w.header(tp.Name, w.g.th.Fonts.HeaderSize)
	w.desc(tp.Desc)
	w.cursor.Advance(layout.Gap(sp, layout.BlockToBlock))

	w.templates(tp.Templates)
	for mi, m := range tp.Modules {
		if w.done() {
			return
		}
		if mi > 0 {
			w.cursor.Advance(layout.Gap(sp, layout.SectionToSection))
		}
		w.header(m.Name, w.g.th.Fonts.HeaderSize-1)
		w.desc(m.Desc)
		w.cursor.Advance(layout.Gap(sp, layout.ModuleToTemplate))
		w.templates(m.Templates)
	}
}

func (w *walker) templates(ts []Template) {
	sp := w.g.th.Spacing
	for i, t := range ts {
		if w.done() {
			return
		}
		isCont := i > 0 && ts[i-1].ID == t.ID
		nextCont := i+1 < len(ts) && ts[i+1].ID == t.ID
		hadQuiz := w.template(t, isCont)
		if i+1 < len(ts) {
			w.cursor.Advance(layout.TemplateGap(sp, hadQuiz, nextCont))
		}
	}
}

// header places an atomic heading line.
func (w *walker) header(text string, size float64) {
	if text == "" {
		return
	}
	runs := []markup.Run{{Text: text, Style: markup.Style{Bold: true}}}
	w.block(runs, surface.TextOptions{Size: size}, true, theme.RGB{}, false)
}

// desc places a two-column balanced description under a header.
func (w *walker) desc(text string) {
	if text == "" {
		return
	}
	w.cursor.Advance(layout.Gap(w.g.th.Spacing, layout.HeaderToDesc))
	runs := markup.Plain(markup.NormalizeUnits(text))
	opts := surface.TextOptions{Size: w.g.th.Fonts.BodySize}
	geom := w.g.th.Page
	colW := geom.ColumnWidth()

	for attempt := 0; attempt < 2; attempt++ {
		b := w.fit.Balance(w.cursor.ColumnX(0), w.cursor.ColumnX(1), w.cursor.Y(), colW, runs, opts)
		if b.Left == nil {
			return
		}
		if b.Height <= w.cursor.Remaining() || w.cursor.AtTop() {
			b.Left.Draw()
			if b.Right != nil {
				b.Right.Draw()
			}
			w.cursor.Advance(b.Height)
			return
		}
		b.Left.Discard()
		if b.Right != nil {
			b.Right.Discard()
		}
		w.cursor.NewPage()
	}
}

// block places runs full-width through the fitter, splitting across
// pages as needed. A non-zero tint paints the block background.
func (w *walker) block(runs []markup.Run, opts surface.TextOptions, atomic bool, tint theme.RGB, tinted bool) {
	geom := w.g.th.Page
	x := geom.MarginLeft
	width := geom.ContentWidth()
	for len(runs) > 0 {
		p := w.fit.Place(x, w.cursor.Y(), width, w.cursor.Remaining(), runs, opts, atomic, w.cursor.AtTop())
		switch p.Decision {
		case layout.Fit:
			if tinted {
				w.surf.FillRect(surface.Rect{X: x, Y: w.cursor.Y(), W: width, H: p.Height}, tint)
			}
			if p.Frame != nil {
				p.Frame.Draw()
			}
			w.cursor.Advance(p.Height)
			return
		case layout.NewPage:
			w.cursor.NewPage()
		case layout.Split:
			if tinted {
				w.surf.FillRect(surface.Rect{X: x, Y: w.cursor.Y(), W: width, H: p.Height}, tint)
			}
			p.Frame.Draw()
			runs = p.Remainder
			w.cursor.NewPage()
		}
	}
}

// template renders one leaf unit and reports whether it drew a quiz.
func (w *walker) template(t Template, isCont bool) bool {
	w.count++
	sp := w.g.th.Spacing
	if !isCont && w.cursor.Remaining() < sp.MinTemplateSpace && !w.cursor.AtTop() {
		w.cursor.NewPage()
	}

	runs := w.templateRuns(t)
	opts := surface.TextOptions{Size: w.g.th.Fonts.BodySize}
	tint := w.templateTint(t.ID)

	if w.g.images && len(t.Images) == 1 {
		w.floatTemplate(t, runs, opts, tint)
	} else {
		w.block(runs, opts, false, tint, !isCont)
		if w.g.images && len(t.Images) > 1 {
			w.grid(t.Images)
		}
	}
	if w.g.images && len(t.Roadsigns) > 0 {
		w.roadsigns(t.Roadsigns)
	}
	if w.g.images {
		for _, v := range t.Videos {
			w.video(v)
		}
	}

	items := w.quizItems(t)
	if len(items) == 0 {
		return false
	}
	w.recordAnswers(t.ID, items)
	w.table.Draw(w.cursor, w.g.th.Page.MarginLeft, w.g.th.Page.ContentWidth(), items)
	return true
}

// templateRuns builds the text runs for the present text variant,
// with unit exponents normalized. Paragraphs join with hard breaks.
func (w *walker) templateRuns(t Template) []markup.Run {
	var runs []markup.Run
	for pi, para := range t.Paragraphs() {
		if pi > 0 {
			runs = append(runs, markup.Run{Text: "\n"})
		}
		para = markup.NormalizeUnits(para)
		if t.Markdown() {
			runs = append(runs, markup.ParseMarkdown(para, w.g.th.TipColor)...)
		} else {
			runs = append(runs, w.textRuns(para)...)
		}
	}
	return runs
}

// textRuns converts one plain-variant paragraph. The exports embed
// HTML styling in the text fields, so anything with a tag goes
// through the HTML parser; unparsable fragments stay literal.
func (w *walker) textRuns(para string) []markup.Run {
	if strings.Contains(para, "<") {
		if runs, err := markup.ParseHTML(para, w.g.th.Fonts.BodySize); err == nil {
			return runs
		}
	}
	return markup.Plain(para)
}

// templateTint cycles the background palette by numeric id, hashing
// non-numeric ids so the choice stays stable.
func (w *walker) templateTint(id ID) theme.RGB {
	pal := w.g.th.TemplatePalette
	if n, err := strconv.Atoi(string(id)); err == nil {
		return pal[n%len(pal)]
	}
	h := 0
	for _, r := range string(id) {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return pal[h%len(pal)]
}

// floatTemplate renders text with its single image floated at the
// top-right corner and the lines wrapping around it. Float blocks
// never bisect; the frame grows by the displacement reserve instead.
func (w *walker) floatTemplate(t Template, runs []markup.Run, opts surface.TextOptions, tint theme.RGB) {
	geom := w.g.th.Page
	x := geom.MarginLeft
	width := geom.ContentWidth()
	path := t.Images[0]

	for attempt := 0; attempt < 2; attempt++ {
		fl := w.placer.PlanFloat(x, w.cursor.Y(), width, w.cursor.Remaining(), path)
		if fl.Defer && !w.cursor.AtTop() {
			w.cursor.NewPage()
			continue
		}
		withEx := opts
		withEx.Exclusions = []surface.Rect{fl.Exclusion}
		est := w.fit.Oracle.Height(runs, width, opts) + fl.Reserve
		if est < fl.Image.H {
			est = fl.Image.H
		}
		frame := w.surf.TextFrame(surface.Rect{X: x, Y: w.cursor.Y(), W: width, H: est}, runs, withEx)
		h := w.expandPadded(frame, est)
		if h > w.cursor.Remaining() && !w.cursor.AtTop() {
			frame.Discard()
			w.cursor.NewPage()
			continue
		}
		w.surf.FillRect(surface.Rect{X: x, Y: w.cursor.Y(), W: width, H: h}, tint)
		w.placer.DrawFloat(fl, path)
		frame.Draw()
		w.cursor.Advance(h)
		return
	}
}

// expandPadded grows a float-wrapped frame by the tuning steps until
// the text fits, with the same bounded loops as the fitter.
func (w *walker) expandPadded(frame surface.TextFrame, h float64) float64 {
	tun := w.g.th.Fit
	for i := 0; i < tun.MaxCoarse && frame.Overflows(); i++ {
		h += tun.CoarseStep
		frame.Resize(h)
	}
	for i := 0; i < tun.MaxFine && frame.Overflows(); i++ {
		h += tun.FineStep
		frame.Resize(h)
	}
	return h
}

func (w *walker) grid(paths []string) {
	est := w.placer.GridHeightEstimate(len(paths))
	if est > w.cursor.Remaining() && !w.cursor.AtTop() {
		w.cursor.NewPage()
	}
	geom := w.g.th.Page
	h := w.placer.PlaceGrid(geom.MarginLeft, w.cursor.Y(), geom.ContentWidth(), paths)
	w.cursor.Advance(h)
}

func (w *walker) roadsigns(paths []string) {
	geom := w.g.th.Page
	width := geom.ContentWidth()
	est := w.placer.RoadsignHeightEstimate(len(paths), width)
	if est > w.cursor.Remaining() && !w.cursor.AtTop() {
		w.cursor.NewPage()
	}
	h := w.placer.PlaceRoadsigns(geom.MarginLeft, w.cursor.Y(), width, paths)
	w.cursor.Advance(h)
}

// video draws a QR code for the link with the address as caption.
// Surfaces without barcode support fall back to the plain address so
// dry runs paginate the same.
const videoCodeSize = 60

func (w *walker) video(url string) {
	geom := w.g.th.Page
	if w.cursor.Remaining() < videoCodeSize+12 && !w.cursor.AtTop() {
		w.cursor.NewPage()
	}
	if bd, ok := w.surf.(surface.BarcodeDrawer); ok {
		bd.QRCode(url, surface.Rect{X: geom.MarginLeft, Y: w.cursor.Y(), W: videoCodeSize, H: videoCodeSize})
		w.cursor.Advance(videoCodeSize + 2)
	}
	f := w.surf.TextFrame(
		surface.Rect{X: geom.MarginLeft, Y: w.cursor.Y(), W: geom.ContentWidth(), H: w.g.th.Fonts.SmallSize * 1.5},
		markup.Plain(url),
		surface.TextOptions{Size: w.g.th.Fonts.SmallSize},
	)
	f.Draw()
	w.cursor.Advance(w.g.th.Fonts.SmallSize*1.5 + 2)
}

// quizItems converts and filters a template's quiz entries.
func (w *walker) quizItems(t Template) []quiz.Item {
	if !w.g.quizzes || len(t.Quiz) == 0 {
		return nil
	}
	items := make([]quiz.Item, 0, len(t.Quiz))
	for _, e := range t.Quiz {
		it := quiz.Item{Text: e.Que}
		switch {
		case e.IsTrue != nil:
			it.IsTrue = *e.IsTrue
		default:
			truth, ok := quiz.DeriveTruth(e.Ans)
			if !ok {
				w.log.Warn("quiz entry has no truth marker, assuming false", "template", string(t.ID))
			}
			it.IsTrue = truth
		}
		items = append(items, it)
	}
	return quiz.Apply(items, w.g.quizFilter)
}

func (w *walker) recordAnswers(id ID, items []quiz.Item) {
	key := make([]byte, len(items))
	for i, it := range items {
		if it.IsTrue {
			key[i] = 'V'
		} else {
			key[i] = 'F'
		}
	}
	w.answers = append(w.answers, answerRec{id: id, key: string(key)})
}
