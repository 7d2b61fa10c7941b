// Package pdfsurface implements the surface seam on top of
// jung-kurt/gofpdf. Text layout is computed with the backend's own
// string metrics before anything is drawn, so the fitter can probe
// and discard frames freely even though the PDF writer cannot undraw.
package pdfsurface

import (
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// PDFSurface renders to a gofpdf document. Create one with New, draw
// through the surface.Surface interface, then call Output.
type PDFSurface struct {
	pdf       *gofpdf.Fpdf
	w, h      float64
	fonts     *fontResolver
	watermark string
}

// New returns a surface with the theme's page geometry. No page is
// added yet.
func New(th theme.Theme) *PDFSurface {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: th.Page.Width, Ht: th.Page.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(th.Page.MarginLeft, th.Page.MarginTop, th.Page.MarginRight)
	return &PDFSurface{
		pdf:   pdf,
		w:     th.Page.Width,
		h:     th.Page.Height,
		fonts: newFontResolver(th.Fonts.Candidates),
	}
}

// PDF exposes the underlying document for the contrib helpers.
func (s *PDFSurface) PDF() *gofpdf.Fpdf { return s.pdf }

func (s *PDFSurface) PageSize() (float64, float64) { return s.w, s.h }
func (s *PDFSurface) PageCount() int               { return s.pdf.PageCount() }
func (s *PDFSurface) Err() error                   { return s.pdf.Error() }

func (s *PDFSurface) AddPage() {
	s.pdf.AddPage()
	if s.watermark != "" {
		s.stampWatermark()
	}
}

func (s *PDFSurface) FillRect(r surface.Rect, color theme.RGB) {
	s.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

// Image draws the file scaled into r. Unreadable assets degrade to a
// light placeholder box instead of poisoning the document error.
func (s *PDFSurface) Image(path string, r surface.Rect) {
	if _, err := os.Stat(path); err != nil {
		s.pdf.SetFillColor(235, 235, 235)
		s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
		return
	}
	opts := gofpdf.ImageOptions{AllowNegativePosition: true}
	s.pdf.ImageOptions(path, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

func (s *PDFSurface) RotatedText(x, y float64, text string, angle float64, opts surface.TextOptions) {
	family := s.fonts.resolve(opts.Family)
	s.pdf.SetFont(family, "B", opts.Size)
	s.pdf.SetTextColor(int(opts.Color.R), int(opts.Color.G), int(opts.Color.B))
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(angle, x, y)
	s.pdf.Text(x, y, text)
	s.pdf.TransformEnd()
}

// Watermark stamps every page added from now on. Set it before
// generation starts so the stamp sits under the content.
func (s *PDFSurface) Watermark(text string) { s.watermark = text }

func (s *PDFSurface) stampWatermark() {
	family := s.fonts.resolve("")
	s.pdf.SetFont(family, "B", 48)
	s.pdf.SetTextColor(225, 225, 225)
	w := s.pdf.GetStringWidth(s.watermark)
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(45, s.w/2, s.h/2)
	s.pdf.Text(s.w/2-w/2, s.h/2, s.watermark)
	s.pdf.TransformEnd()
	s.pdf.SetTextColor(0, 0, 0)
}

func (s *PDFSurface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

// fontResolver maps the configured candidate families onto fonts the
// backend actually has, falling through aliases for the families the
// original content names but core PDF lacks.
type fontResolver struct {
	candidates []string
}

func newFontResolver(candidates []string) *fontResolver {
	return &fontResolver{candidates: candidates}
}

// knownFamilies are the core families gofpdf ships.
var knownFamilies = map[string]string{
	"arial":     "Arial",
	"helvetica": "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// familyAliases route unavailable families to the closest core one.
var familyAliases = map[string]string{
	"myriad pro cond": "Helvetica",
	"myriad pro":      "Helvetica",
	"verdana":         "Helvetica",
	"tahoma":          "Helvetica",
	"georgia":         "Times",
}

// resolve returns a usable family for the requested one, trying the
// request, its alias, then the candidate list, then Helvetica.
func (r *fontResolver) resolve(family string) string {
	tryOne := func(f string) (string, bool) {
		key := strings.ToLower(strings.TrimSpace(f))
		if got, ok := knownFamilies[key]; ok {
			return got, true
		}
		if got, ok := familyAliases[key]; ok {
			return got, true
		}
		return "", false
	}
	if family != "" {
		if got, ok := tryOne(family); ok {
			return got
		}
	}
	for _, c := range r.candidates {
		if got, ok := tryOne(c); ok {
			return got
		}
	}
	return "Helvetica"
}

// styleString builds the gofpdf style flags for a run style.
func styleString(st markup.Style) string {
	var b strings.Builder
	if st.Bold {
		b.WriteByte('B')
	}
	if st.Italic {
		b.WriteByte('I')
	}
	if st.Underline {
		b.WriteByte('U')
	}
	return b.String()
}
