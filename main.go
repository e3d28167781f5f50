// pystyle checks Python source files against a fixed set of style rules.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phobologic/pystyle/internal/analyze"
	"github.com/phobologic/pystyle/internal/config"
	"github.com/phobologic/pystyle/internal/discover"
	"github.com/phobologic/pystyle/internal/report"
)

var version = "dev"

var (
	errPathNotSpecified = errors.New("path is not specified")
	errFilesFailed      = errors.New("some files could not be checked")
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	workers     int
	exclude     []string
	gitignore   bool
	progress    bool
	verbose     bool
	showVersion bool
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	cmd := &cobra.Command{
		Use:           "pystyle [flags] <path>",
		Short:         "pystyle - check Python files for style violations",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				_, _ = fmt.Fprintf(stdout, "pystyle %s\n", version)
				return nil
			}
			if len(args) == 0 {
				return errPathNotSpecified
			}
			return check(cmd, args[0], opts, stdout, stderr)
		},
	}
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "files checked concurrently (0 = one per CPU)")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "gitignore-style patterns to skip in directory scans")
	flags.BoolVar(&opts.gitignore, "gitignore", false, "skip files matched by the directory's .gitignore")
	flags.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")
	flags.BoolVarP(&opts.showVersion, "version", "V", false, "show version and exit")

	return cmd.Execute()
}

func check(cmd *cobra.Command, target string, opts options, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, opts.verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if opts.gitignore {
		cfg.RespectGitignore = true
	}
	cfg.Exclude = append(cfg.Exclude, opts.exclude...)

	files, err := discover.Files(target, discover.Options{
		Exclude:          cfg.Exclude,
		RespectGitignore: cfg.RespectGitignore,
	})
	if err != nil {
		return err
	}
	logger.Debug("discovered files", zap.String("target", target), zap.Int("count", len(files)))

	aopts := analyze.Options{Workers: cfg.Workers, Logger: logger}
	if opts.progress {
		aopts.Progress = stderr
	}
	reports := analyze.Files(files, aopts)

	failed, err := report.New(stdout, stderr).WriteAll(reports)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(files))
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}
