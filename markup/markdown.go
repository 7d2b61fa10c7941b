package markup

import (
	"strings"

	"github.com/lvillar/bookletgen/theme"
)

// ParseMarkdown converts the markdown subset used by the course
// content into runs. Supported: **bold**, *italic*, and tip spans of
// the form {tip=N}text{end}, which are tinted with tipColor.
// Unterminated markers are kept as literal text.
func ParseMarkdown(s string, tipColor theme.RGB) []Run {
	var runs []Run
	var cur strings.Builder
	style := Style{}

	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, Run{Text: cur.String(), Style: style})
			cur.Reset()
		}
	}

	rs := []rune(s)
	for i := 0; i < len(rs); {
		switch {
		case strings.HasPrefix(string(rs[i:]), "**"):
			if end := indexFrom(rs, i+2, "**"); end >= 0 {
				flush()
				bold := style
				bold.Bold = true
				runs = append(runs, Run{Text: string(rs[i+2 : end]), Style: bold})
				i = end + 2
				continue
			}
			cur.WriteString("**")
			i += 2
		case rs[i] == '*':
			if end := indexFrom(rs, i+1, "*"); end >= 0 {
				flush()
				ital := style
				ital.Italic = true
				runs = append(runs, Run{Text: string(rs[i+1 : end]), Style: ital})
				i = end + 1
				continue
			}
			cur.WriteRune('*')
			i++
		case strings.HasPrefix(string(rs[i:]), "{tip="):
			open := indexFrom(rs, i, "}")
			if open < 0 {
				cur.WriteRune(rs[i])
				i++
				continue
			}
			end := indexFrom(rs, open+1, "{end}")
			if end < 0 {
				cur.WriteRune(rs[i])
				i++
				continue
			}
			flush()
			tip := style
			c := tipColor
			tip.Color = &c
			runs = append(runs, Run{Text: string(rs[open+1 : end]), Style: tip})
			i = end + len("{end}")
		default:
			cur.WriteRune(rs[i])
			i++
		}
	}
	flush()
	return runs
}

// indexFrom finds the rune index of the first occurrence of sep at or
// after start, or -1.
func indexFrom(rs []rune, start int, sep string) int {
	if start >= len(rs) {
		return -1
	}
	off := strings.Index(string(rs[start:]), sep)
	if off < 0 {
		return -1
	}
	return start + len([]rune(string(rs[start:])[:off]))
}
