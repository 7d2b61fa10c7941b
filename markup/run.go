// Package markup converts the text variants of the course content
// (plain, markdown subset, HTML fragments) into styled runs. A run is
// the unit the layout engine measures and draws: a string plus the
// style that applies to all of it.
package markup

import (
	"strings"

	"github.com/lvillar/bookletgen/theme"
)

// VerticalOffset marks a run as superscript or subscript.
type VerticalOffset int

const (
	OffsetNone VerticalOffset = iota
	OffsetSuper
	OffsetSub
)

// Style describes how a run is drawn. The zero value is plain body
// text in the inherited font and size.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	// Color overrides the inherited text color when set.
	Color *theme.RGB
	// Family overrides the inherited font family when non-empty.
	Family string
	// SizeDelta is added to the inherited font size.
	SizeDelta float64
	Offset    VerticalOffset
}

// Run is a styled span of text.
type Run struct {
	Text  string
	Style Style
}

// Plain wraps s in a single unstyled run.
func Plain(s string) []Run {
	if s == "" {
		return nil
	}
	return []Run{{Text: s}}
}

// Text concatenates the text of all runs.
func Text(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the total rune count across runs.
func Len(runs []Run) int {
	n := 0
	for _, r := range runs {
		n += len([]rune(r.Text))
	}
	return n
}

// SplitAt divides runs at the given rune index. The two halves
// concatenate back to the original text with styles preserved.
func SplitAt(runs []Run, at int) (head, tail []Run) {
	if at <= 0 {
		return nil, runs
	}
	seen := 0
	for i, r := range runs {
		rs := []rune(r.Text)
		if seen+len(rs) <= at {
			head = append(head, r)
			seen += len(rs)
			continue
		}
		cut := at - seen
		if cut > 0 {
			head = append(head, Run{Text: string(rs[:cut]), Style: r.Style})
		}
		tail = append(tail, Run{Text: string(rs[cut:]), Style: r.Style})
		tail = append(tail, runs[i+1:]...)
		return head, tail
	}
	return head, nil
}

// Words splits runs into word-level tokens, each carrying its source
// style. Whitespace between words collapses to single separators so
// tokens can be rejoined with plain spaces.
type Word struct {
	Text  string
	Style Style
}

// SplitWords tokenizes runs at whitespace boundaries. A word never
// spans two runs with different styles; a style change inside a word
// starts a new token.
func SplitWords(runs []Run) []Word {
	var words []Word
	for _, r := range runs {
		for _, f := range strings.Fields(r.Text) {
			words = append(words, Word{Text: f, Style: r.Style})
		}
	}
	return words
}

// JoinWords rebuilds runs from word tokens, merging adjacent words
// that share a style into one space-separated run.
func JoinWords(words []Word) []Run {
	var runs []Run
	for _, w := range words {
		if n := len(runs); n > 0 && runs[n-1].Style == w.Style {
			runs[n-1].Text += " " + w.Text
			continue
		}
		text := w.Text
		if len(runs) > 0 {
			text = " " + text
		}
		runs = append(runs, Run{Text: text, Style: w.Style})
	}
	return runs
}
