package booklet

import (
	"hash/fnv"
	"strings"

	"github.com/lvillar/bookletgen/layout"
	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

// banner is the vertical topic strip redrawn on every page while its
// topic is active.
type banner struct {
	text  string
	color theme.RGB
}

// topicBanner builds the banner for a topic. An explicit banner_color
// wins; otherwise the color hashes from the name, so a topic keeps
// its color across runs.
func topicBanner(name, override string, th theme.Banner) banner {
	color, ok := theme.RGB{}, false
	if override != "" {
		color, ok = markup.ParseColor(override)
	}
	if !ok {
		h := fnv.New32a()
		h.Write([]byte(name))
		color = th.Palette[int(h.Sum32())%len(th.Palette)]
	}
	return banner{text: spacedUpper(name), color: color}
}

// spacedUpper renders "Precedenze" as "P R E C E D E N Z E".
func spacedUpper(name string) string {
	rs := []rune(strings.ToUpper(name))
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return strings.Join(out, " ")
}

// drawBanner paints the strip on the current page. Odd pages carry it
// on the left edge reading upward, even pages on the right edge
// reading downward, so the strip always sits at the outer edge of a
// bound booklet.
func (g *Generator) drawBanner(c *layout.Cursor, b banner) {
	th := g.th.Banner
	page := g.th.Page
	var x float64
	odd := c.Page()%2 == 1
	if odd {
		x = th.OddOffset
	} else {
		x = page.Width - th.Width - th.EvenOffset
	}
	c.Surf.FillRect(surface.Rect{X: x, Y: 0, W: th.Width, H: page.Height}, b.color)
	opts := surface.TextOptions{Size: th.FontSize, Color: theme.RGB{R: 255, G: 255, B: 255}}
	if odd {
		c.Surf.RotatedText(x+th.Width*0.7, page.Height-page.MarginBottom, b.text, 90, opts)
	} else {
		c.Surf.RotatedText(x+th.Width*0.3, page.MarginTop, b.text, 270, opts)
	}
}
