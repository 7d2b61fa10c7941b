package surface

import (
	"strings"
	"testing"

	"github.com/lvillar/bookletgen/markup"
)

func opts8() TextOptions { return TextOptions{Size: 8} }

func TestHeadlessWrapDeterministic(t *testing.T) {
	s := NewHeadless(480, 595)
	// 8pt font: each rune advances 4pt, so a 40pt line holds 10 runes.
	runs := markup.Plain("aaaa bbbb cccc")
	f := s.TextFrame(Rect{X: 0, Y: 0, W: 40, H: 100}, runs, opts8())
	// "aaaa bbbb" is 9 runes (36pt), adding " cccc" exceeds 40pt.
	if got := f.LineCount(); got != 2 {
		t.Fatalf("lines = %d, want 2", got)
	}
}

func TestHeadlessOverflowBoundary(t *testing.T) {
	s := NewHeadless(480, 595)
	runs := markup.Plain("aaaa bbbb cccc")
	spacing := opts8().Spacing()
	f := s.TextFrame(Rect{W: 40, H: 2 * spacing}, runs, opts8())
	if f.Overflows() {
		t.Fatal("exact-height frame must not overflow")
	}
	f.Resize(2*spacing - 0.5)
	if !f.Overflows() {
		t.Fatal("short frame must overflow")
	}
}

func TestHeadlessMeasureIdempotent(t *testing.T) {
	s := NewHeadless(480, 595)
	runs := markup.Plain(strings.Repeat("word ", 50))
	a := s.MeasureHeight(runs, 190, opts8())
	b := s.MeasureHeight(runs, 190, opts8())
	if a != b {
		t.Fatalf("measure not idempotent: %g vs %g", a, b)
	}
	if a <= 0 {
		t.Fatalf("measure = %g, want positive", a)
	}
}

func TestHeadlessExclusionNarrowsLines(t *testing.T) {
	s := NewHeadless(480, 595)
	runs := markup.Plain(strings.Repeat("word ", 30))
	plain := s.TextFrame(Rect{W: 100, H: 500}, runs, opts8())
	ex := opts8()
	ex.Exclusions = []Rect{{X: 50, Y: 0, W: 50, H: 40}}
	wrapped := s.TextFrame(Rect{W: 100, H: 500}, runs, ex)
	if wrapped.LineCount() <= plain.LineCount() {
		t.Fatalf("exclusion must add lines: %d vs %d", wrapped.LineCount(), plain.LineCount())
	}
}

func TestHeadlessDrawDiscard(t *testing.T) {
	s := NewHeadless(480, 595)
	s.AddPage()
	runs := markup.Plain("hello")
	probe := s.TextFrame(Rect{W: 100, H: 50}, runs, opts8())
	probe.Discard()
	keep := s.TextFrame(Rect{W: 100, H: 50}, runs, opts8())
	keep.Draw()
	if n := len(s.Page(1).Texts); n != 1 {
		t.Fatalf("page has %d texts, want 1 (probes must not draw)", n)
	}
}

func TestHeadlessNewlineBreaks(t *testing.T) {
	s := NewHeadless(480, 595)
	runs := []markup.Run{{Text: "first\nsecond"}}
	f := s.TextFrame(Rect{W: 200, H: 100}, runs, opts8())
	if got := f.LineCount(); got != 2 {
		t.Fatalf("lines = %d, want 2", got)
	}
}
