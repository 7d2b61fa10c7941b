package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lvillar/bookletgen/version"
)

var (
	themeFile string
	verbose   bool
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bookletgen",
	Short: "Paginated PDF study booklets from course content",
	Long: `Bookletgen converts hierarchical course content (areas, chapters,
topics, modules and templates with text, images, road signs, videos
and true/false quizzes) into paginated two-column PDF booklets.

Input is the course JSON export; the standalone quiz-csv command
builds a quiz booklet straight from the ministry CSV export.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&themeFile, "theme", "", "theme YAML overlay (default: built-in theme)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log generation details")

	viper.SetEnvPrefix("BOOKLETGEN")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		if themeFile == "" {
			themeFile = viper.GetString("theme")
		}
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCSVCmd)
	rootCmd.AddCommand(versionCmd)
}
