// Package analyze runs the line and tree rules over files.
package analyze

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phobologic/pystyle/internal/astrules"
	"github.com/phobologic/pystyle/internal/lang"
	"github.com/phobologic/pystyle/internal/linescan"
	"github.com/phobologic/pystyle/internal/model"
	"github.com/phobologic/pystyle/internal/report"
	"github.com/phobologic/pystyle/internal/syntax"
)

// Options controls a multi-file run.
type Options struct {
	// Workers bounds the number of files analyzed at once. Zero or less
	// means GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Source analyzes the content of one file. A parse failure keeps the
// line-rule violations and sets Err instead of running the tree rules.
func Source(parser *sitter.Parser, path string, content []byte) report.FileReport {
	lines := linescan.Scan(model.NewSourceFile(path, content))

	mod, err := syntax.Parse(parser, content)
	if err != nil {
		return report.FileReport{Path: path, Violations: lines, Err: fmt.Errorf("parse error: %w", err)}
	}
	return report.FileReport{Path: path, Violations: report.Merge(lines, astrules.Walk(path, mod))}
}

// File reads and analyzes one file.
func File(parser *sitter.Parser, path string) report.FileReport {
	content, err := os.ReadFile(path)
	if err != nil {
		return report.FileReport{Path: path, Err: fmt.Errorf("read error: %w", err)}
	}
	return Source(parser, path, content)
}

// Files analyzes paths concurrently. Reports come back in the order of paths
// whatever the worker count, and a failing file never stops the others.
func Files(paths []string, opts Options) []report.FileReport {
	if len(paths) == 0 {
		return nil
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("checking"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	py := lang.Languages[lang.Python]
	reports := make([]report.FileReport, len(paths))
	work := make(chan int, len(paths))

	var g errgroup.Group
	for range numWorkers {
		g.Go(func() error {
			// Each worker gets its own parser
			parser := py.NewParser()
			defer parser.Close()

			for idx := range work {
				fr := File(parser, paths[idx])
				if fr.Err != nil {
					logger.Debug("file failed", zap.String("path", fr.Path), zap.Error(fr.Err))
				} else {
					logger.Debug("file checked", zap.String("path", fr.Path), zap.Int("violations", len(fr.Violations)))
				}
				reports[idx] = fr
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			return nil
		})
	}

	for i := range paths {
		work <- i
	}
	close(work)
	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}
	return reports
}
