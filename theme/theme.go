// Package theme holds every tunable of the booklet generator: page
// geometry, fonts, spacing, quiz table metrics, banner and palette
// settings, and the fitter iteration limits. Default returns the stock
// configuration; Load overlays a YAML file on top of it.
package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RGB is a color in the 0-255 range.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Page describes the page geometry in points.
type Page struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MarginLeft   float64 `yaml:"margin_left"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginRight  float64 `yaml:"margin_right"`
	MarginBottom float64 `yaml:"margin_bottom"`
	Columns      int     `yaml:"columns"`
	ColumnGap    float64 `yaml:"column_gap"`
	// FooterReserve is kept clear above the bottom margin for the
	// page number.
	FooterReserve float64 `yaml:"footer_reserve"`
}

// ColumnWidth returns the width of a single text column.
func (p Page) ColumnWidth() float64 {
	return (p.Width - p.MarginLeft - p.MarginRight - float64(p.Columns-1)*p.ColumnGap) / float64(p.Columns)
}

// ContentWidth returns the full width between the side margins.
func (p Page) ContentWidth() float64 {
	return p.Width - p.MarginLeft - p.MarginRight
}

// Fonts lists the candidate font families, tried in order until the
// backend accepts one.
type Fonts struct {
	Candidates []string `yaml:"candidates"`
	BodySize   float64  `yaml:"body_size"`
	HeaderSize float64  `yaml:"header_size"`
	SmallSize  float64  `yaml:"small_size"`
}

// Spacing is the inter-block spacing policy in points.
type Spacing struct {
	Block              float64 `yaml:"block"`
	HeaderToDesc       float64 `yaml:"header_to_desc"`
	SectionToSection   float64 `yaml:"section_to_section"`
	ModuleToTemplate   float64 `yaml:"module_to_template"`
	TemplateDefault    float64 `yaml:"template_default"`
	TemplateAfterQuiz  float64 `yaml:"template_after_quiz"`
	TemplateToContinue float64 `yaml:"template_to_continue"`
	ChapterToChapter   float64 `yaml:"chapter_to_chapter"`
	AreaToArea         float64 `yaml:"area_to_area"`
	TopicToTopic       float64 `yaml:"topic_to_topic"`
	// MinTemplateSpace is the space a template needs on the current
	// page before it is pushed to the next one.
	MinTemplateSpace float64 `yaml:"min_template_space"`
}

// Quiz holds the true/false table metrics.
type Quiz struct {
	HeaderHeight float64 `yaml:"header_height"`
	RowHeight    float64 `yaml:"row_height"`
	BoxSize      float64 `yaml:"box_size"`
	// TextInset is subtracted from the table width to obtain the
	// question text width (answer boxes plus padding).
	TextInset  float64 `yaml:"text_inset"`
	FontSize   float64 `yaml:"font_size"`
	HeaderText string  `yaml:"header_text"`
	HeaderFill RGB     `yaml:"header_fill"`
	RowFill    RGB     `yaml:"row_fill"`
	RowAltFill RGB     `yaml:"row_alt_fill"`
	MarkFill   RGB     `yaml:"mark_fill"`
}

// Images holds the image placement metrics.
type Images struct {
	StandardHeight float64 `yaml:"standard_height"`
	RoadsignHeight float64 `yaml:"roadsign_height"`
	// FallbackWidth and FallbackHeight stand in for the intrinsic size
	// of images that cannot be decoded.
	FallbackWidth  float64 `yaml:"fallback_width"`
	FallbackHeight float64 `yaml:"fallback_height"`
}

// Banner holds the vertical topic banner settings.
type Banner struct {
	Width      float64 `yaml:"width"`
	OddOffset  float64 `yaml:"odd_offset"`
	EvenOffset float64 `yaml:"even_offset"`
	FontSize   float64 `yaml:"font_size"`
	Palette    []RGB   `yaml:"palette"`
}

// Footer holds the page number box settings.
type Footer struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Drop     float64 `yaml:"drop"`
	FontSize float64 `yaml:"font_size"`
}

// FitTuning bounds the fitter and balancer loops. Every loop in the
// layout engine terminates within these limits.
type FitTuning struct {
	CoarseStep    float64 `yaml:"coarse_step"`
	FineStep      float64 `yaml:"fine_step"`
	MaxCoarse     int     `yaml:"max_coarse"`
	MaxFine       int     `yaml:"max_fine"`
	MaxBisect     int     `yaml:"max_bisect"`
	BalanceProbes int     `yaml:"balance_probes"`
	// BalanceEpsilon is the column height delta below which balancing
	// stops early.
	BalanceEpsilon float64 `yaml:"balance_epsilon"`
}

// Theme is the full configuration surface.
type Theme struct {
	Page    Page      `yaml:"page"`
	Fonts   Fonts     `yaml:"fonts"`
	Spacing Spacing   `yaml:"spacing"`
	Quiz    Quiz      `yaml:"quiz"`
	Images  Images    `yaml:"images"`
	Banner  Banner    `yaml:"banner"`
	Footer  Footer    `yaml:"footer"`
	Fit     FitTuning `yaml:"fit"`
	// TemplateLimit stops the walker after this many templates.
	TemplateLimit int `yaml:"template_limit"`
	// TemplatePalette cycles the template background tint by id.
	TemplatePalette []RGB `yaml:"template_palette"`
	TipColor        RGB   `yaml:"tip_color"`
}

// Default returns the stock theme.
func Default() Theme {
	return Theme{
		Page: Page{
			Width:         480,
			Height:        595,
			MarginLeft:    28,
			MarginTop:     28,
			MarginRight:   32,
			MarginBottom:  28,
			Columns:       2,
			ColumnGap:     20,
			FooterReserve: 20,
		},
		Fonts: Fonts{
			Candidates: []string{"Myriad Pro Cond", "Arial", "Verdana"},
			BodySize:   8,
			HeaderSize: 10,
			SmallSize:  7,
		},
		Spacing: Spacing{
			Block:              3,
			HeaderToDesc:       5,
			SectionToSection:   2,
			ModuleToTemplate:   0,
			TemplateDefault:    0,
			TemplateAfterQuiz:  2,
			TemplateToContinue: 1,
			ChapterToChapter:   6,
			AreaToArea:         10,
			TopicToTopic:       2,
			MinTemplateSpace:   35,
		},
		Quiz: Quiz{
			HeaderHeight: 24,
			RowHeight:    16,
			BoxSize:      18,
			TextInset:    42,
			FontSize:     8,
			HeaderText:   "VERO O FALSO?",
			HeaderFill:   RGB{R: 0, G: 102, B: 153},
			RowFill:      RGB{R: 255, G: 255, B: 255},
			RowAltFill:   RGB{R: 224, G: 255, B: 255},
			MarkFill:     RGB{R: 198, G: 239, B: 206},
		},
		Images: Images{
			StandardHeight: 80,
			RoadsignHeight: 25,
			FallbackWidth:  300,
			FallbackHeight: 200,
		},
		Banner: Banner{
			Width:      20,
			OddOffset:  2,
			EvenOffset: 6,
			FontSize:   9,
			Palette: []RGB{
				{R: 204, G: 51, B: 51},   // red
				{R: 51, G: 153, B: 51},   // green
				{R: 204, G: 170, B: 0},   // yellow
				{R: 51, G: 102, B: 204},  // blue
				{R: 0, G: 153, B: 170},   // cyan
				{R: 170, G: 51, B: 170},  // magenta
			},
		},
		Footer: Footer{
			Width:    30,
			Height:   15,
			Drop:     3,
			FontSize: 8,
		},
		Fit: FitTuning{
			CoarseStep:     10,
			FineStep:       1,
			MaxCoarse:      60,
			MaxFine:        15,
			MaxBisect:      40,
			BalanceProbes:  30,
			BalanceEpsilon: 5,
		},
		TemplateLimit: 60,
		TemplatePalette: []RGB{
			{R: 255, G: 255, B: 255},
			{R: 240, G: 248, B: 255},
			{R: 245, G: 255, B: 240},
			{R: 255, G: 250, B: 240},
		},
		TipColor: RGB{R: 0, G: 174, B: 0},
	}
}

// Load reads a YAML overlay and applies it on top of Default.
func Load(path string) (Theme, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("theme: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("theme: parse %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("theme: %s: %w", path, err)
	}
	return t, nil
}

// Validate checks the invariants the layout engine relies on.
func (t Theme) Validate() error {
	p := t.Page
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("theme: page size %gx%g is not positive", p.Width, p.Height)
	}
	if p.Columns < 1 {
		return fmt.Errorf("theme: column count %d is not positive", p.Columns)
	}
	if p.ColumnWidth() <= 0 {
		return fmt.Errorf("theme: margins and gap leave no column width")
	}
	if p.MarginTop+p.MarginBottom+p.FooterReserve >= p.Height {
		return fmt.Errorf("theme: vertical margins leave no content height")
	}
	if t.TemplateLimit < 1 {
		return fmt.Errorf("theme: template limit %d is not positive", t.TemplateLimit)
	}
	if t.Fit.CoarseStep <= 0 || t.Fit.FineStep <= 0 {
		return fmt.Errorf("theme: fit steps must be positive")
	}
	if len(t.Banner.Palette) == 0 {
		return fmt.Errorf("theme: banner palette is empty")
	}
	if len(t.TemplatePalette) == 0 {
		return fmt.Errorf("theme: template palette is empty")
	}
	return nil
}

// LineSpacing returns the baseline-to-baseline distance for a font
// size. Small sizes pack tighter.
func LineSpacing(size float64) float64 {
	if size <= 7 {
		return size
	}
	return size * 1.1
}
