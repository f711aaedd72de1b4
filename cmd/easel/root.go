package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/artfoundry/easel/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "easel",
	Short: "Prompt assembly core for AI art generation",
	Long: `Easel assembles generation instructions for image models from
prioritized text blocks, named style presets, and optional vision
analysis of reference images.

Build strategies, first match wins:
  - reuse an upstream ready-made instruction
  - apply a named style preset
  - personalize via vision analysis of reference images (analyze command)
  - fall back to category defaults`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.easel/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Configure logging before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(initConfigCmd)
}
