package pdfsurface

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

func TestFontResolver(t *testing.T) {
	r := newFontResolver([]string{"Myriad Pro Cond", "Arial", "Verdana"})
	if got := r.resolve("Myriad Pro Cond"); got != "Helvetica" {
		t.Fatalf("myriad resolves to %q", got)
	}
	if got := r.resolve("Arial"); got != "Arial" {
		t.Fatalf("arial resolves to %q", got)
	}
	if got := r.resolve("No Such Font"); got != "Helvetica" {
		t.Fatalf("unknown family resolves to %q, want first usable candidate", got)
	}
	if got := r.resolve(""); got != "Helvetica" {
		t.Fatalf("empty family resolves to %q", got)
	}
}

func TestStyleString(t *testing.T) {
	if got := styleString(markup.Style{Bold: true, Italic: true}); got != "BI" {
		t.Fatalf("style = %q, want BI", got)
	}
	if got := styleString(markup.Style{Underline: true}); got != "U" {
		t.Fatalf("style = %q, want U", got)
	}
	if got := styleString(markup.Style{}); got != "" {
		t.Fatalf("style = %q, want empty", got)
	}
}

func TestMeasureHeightIdempotent(t *testing.T) {
	s := New(theme.Default())
	runs := markup.Plain(strings.Repeat("misura ", 40))
	opts := surface.TextOptions{Size: 8}
	a := s.MeasureHeight(runs, 190, opts)
	b := s.MeasureHeight(runs, 190, opts)
	if a != b {
		t.Fatalf("measure not idempotent: %g vs %g", a, b)
	}
	if a <= 0 {
		t.Fatalf("measure = %g, want positive", a)
	}
}

func TestFrameOverflowBoundary(t *testing.T) {
	s := New(theme.Default())
	s.AddPage()
	runs := markup.Plain(strings.Repeat("testo ", 60))
	opts := surface.TextOptions{Size: 8}
	exact := s.MeasureHeight(runs, 190, opts)
	f := s.TextFrame(surface.Rect{X: 28, Y: 28, W: 190, H: exact}, runs, opts)
	if f.Overflows() {
		t.Fatal("frame at measured height must not overflow")
	}
	f.Resize(exact - 1)
	if !f.Overflows() {
		t.Fatal("frame below measured height must overflow")
	}
}

func TestExclusionAddsLines(t *testing.T) {
	s := New(theme.Default())
	s.AddPage()
	runs := markup.Plain(strings.Repeat("parola ", 40))
	plain := s.TextFrame(surface.Rect{X: 28, Y: 28, W: 190, H: 500}, runs, surface.TextOptions{Size: 8})
	wrapped := s.TextFrame(surface.Rect{X: 28, Y: 28, W: 190, H: 500}, runs, surface.TextOptions{
		Size:       8,
		Exclusions: []surface.Rect{{X: 138, Y: 28, W: 80, H: 90}},
	})
	if wrapped.LineCount() <= plain.LineCount() {
		t.Fatalf("exclusion must add lines: %d vs %d", wrapped.LineCount(), plain.LineCount())
	}
}

func TestOutputProducesPDF(t *testing.T) {
	s := New(theme.Default())
	s.AddPage()
	f := s.TextFrame(surface.Rect{X: 28, Y: 28, W: 400, H: 50}, markup.Plain("pagina di prova"), surface.TextOptions{Size: 10})
	f.Draw()
	s.FillRect(surface.Rect{X: 28, Y: 100, W: 100, H: 20}, theme.RGB{R: 224, G: 255, B: 255})
	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestImageMissingFileDegrades(t *testing.T) {
	s := New(theme.Default())
	s.AddPage()
	s.Image("no/such/image.png", surface.Rect{X: 28, Y: 28, W: 80, H: 60})
	if err := s.Err(); err != nil {
		t.Fatalf("missing image must not poison the document: %v", err)
	}
}
