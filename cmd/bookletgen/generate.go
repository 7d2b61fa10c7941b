package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/lvillar/bookletgen/booklet"
	"github.com/lvillar/bookletgen/pdfsurface"
	"github.com/lvillar/bookletgen/quiz"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

var (
	outputPath string
	quizzes    bool
	quizFilter string
	withImages bool
	coverPath  string
	draft      bool
	answerKey  bool
	limit      int
	watch      bool
	validate   bool
	dryRun     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <course.json>",
	Short: "Generate a booklet PDF from a course JSON export",
	Args:  cobra.ExactArgs(1),
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
		if err := generateOnce(input, out, th); err != nil {
			return err
		}
		if watch {
			return watchLoop(cmd.Context(), input, out, th)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "", "output PDF path (default: input name with .pdf)")
	f.BoolVar(&quizzes, "quizzes", true, "include quiz tables")
	f.StringVar(&quizFilter, "quiz-filter", "all", "quiz filter: all, true or false")
	f.BoolVar(&withImages, "images", true, "include images, road signs and video codes")
	f.StringVar(&coverPath, "cover", "", "PDF whose first page becomes the cover")
	f.BoolVar(&draft, "draft", false, "stamp a BOZZA watermark on every page")
	f.BoolVar(&answerKey, "answer-key", false, "append the machine-readable answer key")
	f.IntVar(&limit, "limit", 0, "template limit (default: theme value)")
	f.BoolVar(&watch, "watch", false, "regenerate whenever the input changes")
	f.BoolVar(&validate, "validate", false, "validate the output PDF after writing")
	f.BoolVar(&dryRun, "dry-run", false, "paginate headlessly and print the page count")
}

func loadTheme() (theme.Theme, error) {
	if themeFile == "" {
		return theme.Default(), nil
	}
	return theme.Load(themeFile)
}

// derivedOutput mirrors the original behaviour: the booklet lands
// next to its input, same name, .pdf extension.
func derivedOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".pdf"
}

func generatorOptions(th theme.Theme) ([]booklet.Option, error) {
	filter, err := quiz.ParseFilter(quizFilter)
	if err != nil {
		return nil, err
	}
	opts := []booklet.Option{
		booklet.WithLogger(logger),
		booklet.WithQuizzes(quizzes, filter),
		booklet.WithImages(withImages),
		booklet.WithAnswerKey(answerKey),
		booklet.WithTemplateLimit(limit),
	}
	if coverPath != "" {
		opts = append(opts, booklet.WithCover(coverPath))
	}
	if draft {
		opts = append(opts, booklet.WithWatermark("BOZZA"))
	}
	return opts, nil
}

func generateOnce(input, out string, th theme.Theme) error {
	doc, err := booklet.ParseFile(input)
	if err != nil {
		return err
	}
	opts, err := generatorOptions(th)
	if err != nil {
		return err
	}
	gen := booklet.New(th, opts...)

	if dryRun {
		surf := surface.NewHeadless(th.Page.Width, th.Page.Height)
		if err := gen.Generate(doc, surf); err != nil {
			return err
		}
		fmt.Printf("%s: %d pages\n", input, surf.PageCount())
		return nil
	}

	surf := pdfsurface.New(th)
	if err := gen.Generate(doc, surf); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := surf.Output(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("booklet written", "output", out)

	if validate {
		if err := pdfcpu.ValidateFile(out, nil); err != nil {
			return fmt.Errorf("validate %s: %w", out, err)
		}
		logger.Info("output validated", "output", out)
	}
	return nil
}

// watchLoop regenerates on every write to the input until the context
// is cancelled.
func watchLoop(ctx context.Context, input, out string, th theme.Theme) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(input); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	logger.Info("watching for changes", "input", input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := generateOnce(input, out, th); err != nil {
				logger.Error("regeneration failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
