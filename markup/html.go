package markup

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/lvillar/bookletgen/theme"
)

// ParseHTML converts an HTML fragment into runs. The subset matches
// what the course content actually uses: b, strong, i, em, u, sup,
// sub, font (color, size, face), and inline style attributes with
// font-family, font-weight, font-style, font-size, color,
// text-decoration and vertical-align. p and br collapse to single
// newlines. baseSize is the inherited font size, used to turn
// absolute font-size declarations into deltas.
func ParseHTML(fragment string, baseSize float64) ([]Run, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("markup: parse html: %w", err)
	}
	var runs []Run
	walkHTML(doc, Style{}, baseSize, &runs)
	return collapseNewlines(runs), nil
}

func walkHTML(n *html.Node, style Style, baseSize float64, runs *[]Run) {
	switch n.Type {
	case html.TextNode:
		text := strings.Map(func(r rune) rune {
			if r == '\n' || r == '\t' || r == '\r' {
				return ' '
			}
			return r
		}, n.Data)
		if text != "" {
			*runs = append(*runs, Run{Text: text, Style: style})
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "b", "strong":
			style.Bold = true
		case "i", "em":
			style.Italic = true
		case "u":
			style.Underline = true
		case "sup":
			style.Offset = OffsetSuper
		case "sub":
			style.Offset = OffsetSub
		case "br":
			*runs = append(*runs, Run{Text: "\n", Style: style})
			return
		case "p":
			defer func() { *runs = append(*runs, Run{Text: "\n", Style: style}) }()
		case "font":
			for _, a := range n.Attr {
				switch a.Key {
				case "color":
					if c, ok := ParseColor(a.Val); ok {
						style.Color = &c
					}
				case "face":
					style.Family = a.Val
				case "size":
					if v, err := strconv.ParseFloat(a.Val, 64); err == nil {
						style.SizeDelta = v - baseSize
					}
				}
			}
		}
		for _, a := range n.Attr {
			if a.Key == "style" {
				applyCSS(a.Val, &style, baseSize)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, style, baseSize, runs)
	}
}

// applyCSS handles the inline declarations the content uses.
func applyCSS(css string, style *Style, baseSize float64) {
	for _, decl := range strings.Split(css, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		switch key {
		case "font-family":
			style.Family = strings.Trim(strings.Split(val, ",")[0], `'" `)
		case "font-weight":
			style.Bold = val == "bold" || val == "bolder" || val >= "600"
		case "font-style":
			style.Italic = val == "italic" || val == "oblique"
		case "color":
			if c, ok := ParseColor(val); ok {
				style.Color = &c
			}
		case "font-size":
			if v, ok := parseSize(val); ok {
				style.SizeDelta = v - baseSize
			}
		case "text-decoration":
			if strings.Contains(val, "underline") {
				style.Underline = true
			}
		case "vertical-align":
			switch val {
			case "super":
				style.Offset = OffsetSuper
			case "sub":
				style.Offset = OffsetSub
			}
		}
	}
}

func parseSize(val string) (float64, bool) {
	val = strings.TrimSuffix(strings.TrimSuffix(val, "pt"), "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var namedColors = map[string]theme.RGB{
	"black":   {R: 0, G: 0, B: 0},
	"white":   {R: 255, G: 255, B: 255},
	"red":     {R: 255, G: 0, B: 0},
	"green":   {R: 0, G: 128, B: 0},
	"blue":    {R: 0, G: 0, B: 255},
	"yellow":  {R: 255, G: 255, B: 0},
	"cyan":    {R: 0, G: 255, B: 255},
	"magenta": {R: 255, G: 0, B: 255},
	"gray":    {R: 128, G: 128, B: 128},
	"orange":  {R: 255, G: 165, B: 0},
}

// ParseColor resolves a CSS color name or #rrggbb literal.
func ParseColor(val string) (theme.RGB, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if c, ok := namedColors[val]; ok {
		return c, true
	}
	if strings.HasPrefix(val, "#") && len(val) == 7 {
		n, err := strconv.ParseUint(val[1:], 16, 32)
		if err != nil {
			return theme.RGB{}, false
		}
		return theme.RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
	}
	return theme.RGB{}, false
}

// collapseNewlines trims leading and trailing breaks and merges
// consecutive ones, matching how the original content treats empty
// paragraphs.
func collapseNewlines(runs []Run) []Run {
	var out []Run
	lastBreak := true
	for _, r := range runs {
		if r.Text == "\n" {
			if lastBreak {
				continue
			}
			lastBreak = true
			out = append(out, r)
			continue
		}
		if strings.TrimSpace(r.Text) == "" && lastBreak {
			continue
		}
		lastBreak = false
		out = append(out, r)
	}
	for len(out) > 0 && out[len(out)-1].Text == "\n" {
		out = out[:len(out)-1]
	}
	return out
}
