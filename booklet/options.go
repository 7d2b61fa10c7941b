package booklet

import (
	"log/slog"

	"github.com/lvillar/bookletgen/quiz"
)

// Option is a functional option for configuring a Generator.
type Option func(*Generator)

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithQuizzes toggles quiz tables and selects which items appear.
func WithQuizzes(enabled bool, f quiz.Filter) Option {
	return func(g *Generator) {
		g.quizzes = enabled
		g.quizFilter = f
	}
}

// WithImages toggles image, road-sign and video blocks.
func WithImages(enabled bool) Option {
	return func(g *Generator) {
		g.images = enabled
	}
}

// WithCover imports the first page of the given PDF as page 1.
func WithCover(path string) Option {
	return func(g *Generator) {
		g.coverPath = path
	}
}

// WithWatermark stamps every page, for proof copies.
func WithWatermark(text string) Option {
	return func(g *Generator) {
		g.watermark = text
	}
}

// WithAnswerKey appends the machine-readable answer key.
func WithAnswerKey(enabled bool) Option {
	return func(g *Generator) {
		g.answerKey = enabled
	}
}

// WithTemplateLimit overrides the theme's template limit.
func WithTemplateLimit(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.limit = n
		}
	}
}
