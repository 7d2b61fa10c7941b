package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lvillar/bookletgen/layout"
	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/pdfsurface"
	"github.com/lvillar/bookletgen/quiz"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

var quizCSVCmd = &cobra.Command{
	Use:   "quiz-csv <questions.csv>",
	Short: "Generate a quiz booklet straight from the CSV export",
	Long: `Builds a booklet of true/false tables from the ministry CSV export
(Chapter, QuestionID, QuestionText, AnswerNumber, AnswerText,
CorrectFlag). Questions group by id, chapters sort naturally
(1a, 1b, 2a, ...), and each question renders as its text followed by
one table row per answer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		th, err := loadTheme()
		if err != nil {
			return err
		}
		out := outputPath
		if out == "" {
			out = derivedOutput(input)
		}
		questions, err := quiz.ReadCSVFile(input)
		if err != nil {
			return err
		}
		filter, err := quiz.ParseFilter(quizFilter)
		if err != nil {
			return err
		}

		surf := pdfsurface.New(th)
		renderQuizBooklet(surf, th, questions, filter)
		if err := surf.Err(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		if err := surf.Output(f); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info("quiz booklet written", "output", out, "questions", len(questions))
		return nil
	},
}

func init() {
	f := quizCSVCmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "", "output PDF path (default: input name with .pdf)")
	f.StringVar(&quizFilter, "quiz-filter", "all", "quiz filter: all, true or false")
}

// renderQuizBooklet lays the question groups out chapter by chapter.
func renderQuizBooklet(surf surface.Surface, th theme.Theme, questions []quiz.Question, filter quiz.Filter) {
	cursor := layout.NewCursor(surf, th.Page)
	cursor.OnNewPage = func(c *layout.Cursor) {
		r := surface.Rect{
			X: (th.Page.Width - th.Footer.Width) / 2,
			Y: th.Page.Height - th.Page.MarginBottom + th.Footer.Drop,
			W: th.Footer.Width,
			H: th.Footer.Height,
		}
		pf := surf.TextFrame(r, markup.Plain(strconv.Itoa(c.Page())), surface.TextOptions{
			Size:  th.Footer.FontSize,
			Align: surface.AlignCenter,
		})
		pf.Draw()
	}
	cursor.Ensure()

	fit := layout.NewFitter(surf, th.Fit)
	table := quiz.NewTable(surf, th.Quiz)
	x := th.Page.MarginLeft
	width := th.Page.ContentWidth()

	chapter := ""
	for _, q := range questions {
		items := quiz.Apply(q.Items(), filter)
		if len(items) == 0 {
			continue
		}
		for i := range items {
			items[i].Text = quiz.StripTruth(items[i].Text)
		}
		if q.Chapter != chapter {
			if chapter != "" {
				cursor.Advance(th.Spacing.ChapterToChapter)
			}
			chapter = q.Chapter
			placeBlock(cursor, fit, x, width,
				[]markup.Run{{Text: "Capitolo " + chapter, Style: markup.Style{Bold: true}}},
				surface.TextOptions{Size: th.Fonts.HeaderSize}, true)
			cursor.Advance(th.Spacing.HeaderToDesc)
		}
		placeBlock(cursor, fit, x, width,
			[]markup.Run{{Text: q.Text, Style: markup.Style{Bold: true}}},
			surface.TextOptions{Size: th.Fonts.BodySize}, true)
		cursor.Advance(th.Spacing.Block)
		table.Draw(cursor, x, width, items)
		cursor.Advance(th.Spacing.TemplateAfterQuiz)
	}
}

// placeBlock drives the fitter until the runs land, breaking pages as
// needed.
func placeBlock(c *layout.Cursor, fit *layout.Fitter, x, width float64, runs []markup.Run, opts surface.TextOptions, atomic bool) {
	for len(runs) > 0 {
		p := fit.Place(x, c.Y(), width, c.Remaining(), runs, opts, atomic, c.AtTop())
		switch p.Decision {
		case layout.Fit:
			if p.Frame != nil {
				p.Frame.Draw()
			}
			c.Advance(p.Height)
			return
		case layout.NewPage:
			c.NewPage()
		case layout.Split:
			p.Frame.Draw()
			runs = p.Remainder
			c.NewPage()
		}
	}
}
