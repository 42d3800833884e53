// Command compono is the offline static-site processor's CLI entry point:
// it mirrors an input directory to an output directory, expanding custom
// component tags in every HTML file along the way, and writes a JSON
// discovery index summarizing the result.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ashgrove/compono/build"
	"github.com/ashgrove/compono/index"
	"github.com/spf13/cobra"
)

var (
	indexName string
	verbose   bool

	// exitCode carries the outcome of a completed build out of RunE: a
	// logged diagnostic error isn't a Go error (processing always runs to
	// completion), so "exit 1 iff error_count > 0" can't be expressed as
	// RunE's return value alone.
	exitCode int
)

// errArgCount is returned by the command's Args validator on an argument-
// count mismatch, so mainRun can map it to exit code 2 instead of cobra's
// default of 1.
var errArgCount = errors.New("usage: compono <input_dir> <output_dir>")

var rootCmd = &cobra.Command{
	Use:   "compono <input_dir> <output_dir>",
	Short: "Expand component-based HTML into a static output tree",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errArgCount
		}
		return nil
	},
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&indexName, "index-name", "index.json", "filename of the discovery index, written at the output root")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "raise the log level from Info to Debug")
}

func main() {
	os.Exit(mainRun())
}

func mainRun() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errArgCount) {
			return 2
		}
		return 1
	}
	return exitCode
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	inputDir, outputDir := args[0], args[1]

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		exitCode = 1
		return fmt.Errorf("creating output directory: %w", err)
	}

	res, err := build.Run(build.Options{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Logger:    logger,
	})
	if err != nil {
		exitCode = 1
		return err
	}

	idx, err := index.Build(index.Options{InputDir: inputDir, Logger: logger})
	if err != nil {
		exitCode = 1
		return fmt.Errorf("building discovery index: %w", err)
	}
	if err := index.Write(idx, filepath.Join(outputDir, indexName)); err != nil {
		exitCode = 1
		return fmt.Errorf("writing discovery index: %w", err)
	}

	logger.Info("build complete", "errors", res.ErrorCount, "warnings", res.WarningCount, "pages_indexed", len(idx.Pages))

	if res.ErrorCount > 0 {
		exitCode = 1
	}
	return nil
}
