package markup

import (
	"testing"

	"github.com/lvillar/bookletgen/theme"
)

var tip = theme.RGB{R: 0, G: 174, B: 0}

func TestParseMarkdownBoldItalic(t *testing.T) {
	runs := ParseMarkdown("give **way** to *all* vehicles", tip)
	if got := Text(runs); got != "give way to all vehicles" {
		t.Fatalf("text = %q", got)
	}
	if len(runs) != 5 {
		t.Fatalf("got %d runs, want 5", len(runs))
	}
	if !runs[1].Style.Bold || runs[1].Text != "way" {
		t.Fatalf("run 1 = %+v, want bold 'way'", runs[1])
	}
	if !runs[3].Style.Italic || runs[3].Text != "all" {
		t.Fatalf("run 3 = %+v, want italic 'all'", runs[3])
	}
}

func TestParseMarkdownTip(t *testing.T) {
	runs := ParseMarkdown("stop. {tip=3}remember the arm signal{end} always", tip)
	if got := Text(runs); got != "stop. remember the arm signal always" {
		t.Fatalf("text = %q", got)
	}
	var tinted *Run
	for i := range runs {
		if runs[i].Style.Color != nil {
			tinted = &runs[i]
		}
	}
	if tinted == nil {
		t.Fatal("no tinted run")
	}
	if tinted.Text != "remember the arm signal" || *tinted.Style.Color != tip {
		t.Fatalf("tinted run = %+v", tinted)
	}
}

func TestParseMarkdownUnterminated(t *testing.T) {
	runs := ParseMarkdown("a **b and *c", tip)
	if got := Text(runs); got != "a **b and *c" {
		t.Fatalf("text = %q, markers must stay literal", got)
	}
}

func TestParseHTMLStyles(t *testing.T) {
	runs, err := ParseHTML(`speed <b>limit</b> of <font color="#ff0000" size="10">50</font> km/h`, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := Text(runs); got != "speed limit of 50 km/h" {
		t.Fatalf("text = %q", got)
	}
	var bold, colored *Run
	for i := range runs {
		if runs[i].Style.Bold {
			bold = &runs[i]
		}
		if runs[i].Style.Color != nil {
			colored = &runs[i]
		}
	}
	if bold == nil || bold.Text != "limit" {
		t.Fatalf("bold run = %+v", bold)
	}
	if colored == nil || colored.Text != "50" {
		t.Fatalf("colored run = %+v", colored)
	}
	if colored.Style.Color.R != 255 || colored.Style.Color.G != 0 {
		t.Fatalf("color = %+v", colored.Style.Color)
	}
	if colored.Style.SizeDelta != 2 {
		t.Fatalf("size delta = %g, want 2", colored.Style.SizeDelta)
	}
}

func TestParseHTMLInlineStyle(t *testing.T) {
	runs, err := ParseHTML(`<span style="font-weight: bold; color: #00ae00; vertical-align: super">n</span>`, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	st := runs[0].Style
	if !st.Bold || st.Color == nil || st.Color.G != 174 || st.Offset != OffsetSuper {
		t.Fatalf("style = %+v", st)
	}
}

func TestParseHTMLParagraphCollapse(t *testing.T) {
	runs, err := ParseHTML("<p>first</p><p></p><p>second</p>", 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := Text(runs); got != "first\nsecond" {
		t.Fatalf("text = %q, want single newline between paragraphs", got)
	}
}

func TestSplitAtRoundTrip(t *testing.T) {
	runs := ParseMarkdown("the **quick** brown fox jumps", tip)
	orig := Text(runs)
	for at := 0; at <= Len(runs); at++ {
		head, tail := SplitAt(runs, at)
		if got := Text(head) + Text(tail); got != orig {
			t.Fatalf("split at %d: %q + %q != %q", at, Text(head), Text(tail), orig)
		}
	}
}

func TestSplitAtPreservesStyle(t *testing.T) {
	runs := []Run{{Text: "abc", Style: Style{Bold: true}}, {Text: "def"}}
	head, tail := SplitAt(runs, 2)
	if len(head) != 1 || !head[0].Style.Bold {
		t.Fatalf("head = %+v", head)
	}
	if len(tail) != 2 || !tail[0].Style.Bold || tail[0].Text != "c" {
		t.Fatalf("tail = %+v", tail)
	}
}

func TestSplitWordsJoinWords(t *testing.T) {
	runs := []Run{{Text: "one two ", Style: Style{Bold: true}}, {Text: "three four"}}
	words := SplitWords(runs)
	if len(words) != 4 {
		t.Fatalf("got %d words, want 4", len(words))
	}
	joined := JoinWords(words)
	if got := Text(joined); got != "one two three four" {
		t.Fatalf("joined = %q", got)
	}
	if !joined[0].Style.Bold || joined[1].Style.Bold {
		t.Fatalf("styles lost: %+v", joined)
	}
}

func TestNormalizeUnits(t *testing.T) {
	cases := map[string]string{
		"area of 5 cm2 total": "area of 5 cm² total",
		"within 100 m3 of":    "within 100 m³ of",
		"cm20 stays":          "cm20 stays",
		"scm2 stays":          "scm2 stays",
		"ends with km2":       "ends with km²",
	}
	for in, want := range cases {
		if got := NormalizeUnits(in); got != want {
			t.Fatalf("NormalizeUnits(%q) = %q, want %q", in, got, want)
		}
	}
}
