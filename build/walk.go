// Package build drives the offline site build: walk an input directory,
// run every HTML file through compono's parse/expand/serialize pipeline,
// and copy everything else through untouched.
package build

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashgrove/compono"
	"go.uber.org/multierr"
)

// Options configures a Run.
type Options struct {
	// InputDir is the source tree to walk.
	InputDir string
	// OutputDir is created (with its parents) if it does not exist.
	OutputDir string
	// Logger receives per-file diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
	// Progress receives one "Processed: src -> dst" line per file, HTML or
	// copied alike. Defaults to os.Stdout.
	Progress io.Writer
}

// Result summarizes one Run.
type Result struct {
	FilesProcessed int
	FilesCopied    int
	ErrorCount     int
	WarningCount   int

	diags []*compono.Diagnostic
}

// Err joins every diagnostic recorded across every processed file into a
// single error via multierr, or returns nil if nothing was recorded. It is
// not whether the build failed overall — use ErrorCount for that.
func (r Result) Err() error {
	var err error
	for _, d := range r.diags {
		err = multierr.Append(err, d)
	}
	return err
}

// Run walks opts.InputDir depth-first (order unspecified beyond what the
// host directory-read primitive returns) and, for every regular file,
// either runs the compono pipeline (".html"/".htm", case-insensitive) or
// copies it byte-for-byte, preserving its file mode.
func Run(opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	progress := opts.Progress
	if progress == nil {
		progress = os.Stdout
	}

	var res Result
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}
	fsys := os.DirFS(opts.InputDir)

	err := fs.WalkDir(fsys, ".", func(relPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", relPath, err)
		}
		if d.IsDir() {
			return nil
		}

		srcPath := filepath.Join(opts.InputDir, relPath)
		dstPath := filepath.Join(opts.OutputDir, relPath)

		if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
			return fmt.Errorf("creating output directory for %s: %w", relPath, err)
		}

		if isHTML(relPath) {
			b, perr := ProcessFile(srcPath, dstPath)
			if perr != nil {
				return fmt.Errorf("processing %s: %w", relPath, perr)
			}
			res.FilesProcessed++
			res.ErrorCount += b.ErrorCount()
			res.WarningCount += b.WarningCount()
			res.diags = append(res.diags, b.Diagnostics()...)
			for _, diag := range b.Diagnostics() {
				logAt(logger, diag)
			}
			fmt.Fprintf(progress, "Processed: %s -> %s\n", srcPath, dstPath)
			return nil
		}

		if err := CopyFile(srcPath, dstPath); err != nil {
			return fmt.Errorf("copying %s: %w", relPath, err)
		}
		res.FilesCopied++
		fmt.Fprintf(progress, "Processed: %s -> %s\n", srcPath, dstPath)
		return nil
	})
	if err != nil {
		return res, err
	}
	return res, nil
}

func isHTML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

func logAt(logger *slog.Logger, d *compono.Diagnostic) {
	if d.Severity == compono.SeverityError {
		logger.Error(d.Error())
	} else {
		logger.Warn(d.Error())
	}
}
