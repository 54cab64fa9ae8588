package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
	"github.com/alnah/go-web2pdf/internal/hints"
	"github.com/alnah/go-web2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no source addresses or job file given")
	ErrWritePDF    = errors.New("failed to write PDF file")
	ErrInvalidFlag = errors.New("invalid flag")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runRender renders the addresses in args (and/or --job) into one PDF.
func runRender(ctx context.Context, args []string, env *Environment) error {
	var flags renderFlags
	fs := newRenderFlagSet(&flags)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printRenderUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	if !flags.common.quiet {
		for _, name := range config.UnknownEnvVars(env.environ()) {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}

	configName := flags.common.config
	if configName == "" {
		configName = env.getenv(config.EnvConfig)
	}
	cfg, err := config.Resolve(configName, env.getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w%s", err, configHint(err))
	}
	mergeEngineFlags(fs, &flags.engine, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	job, err := buildJob(fs, &flags, fs.Args(), env)
	if err != nil {
		return err
	}

	logger := logging.New("web2pdf", logging.Options{
		Level:  logLevel(cfg.Log.Level, flags.common),
		Format: cfg.Log.Format,
		Writer: env.Stderr,
	})
	r, err := web2pdf.NewRenderer(cfg.Config,
		web2pdf.WithLogger(logger),
		web2pdf.WithClock(env.now),
	)
	if err != nil {
		return err
	}

	res, err := r.RenderJob(ctx, job)
	if err != nil {
		if errors.Is(err, web2pdf.ErrInvalidURL) {
			return fmt.Errorf("%w%s", err, hints.ForInvalidURL())
		}
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted: %w", ctx.Err())
	}

	outPath := resolveOutputPath(flags.output, res.Filename)
	if err := writeOutput(outPath, res.Data); err != nil {
		return err
	}

	if !flags.common.quiet {
		printResult(env.Stdout, outPath, res, flags.common.verbose)
	}
	return nil
}

// mergeEngineFlags applies explicitly set engine flags over cfg (CLI wins).
func mergeEngineFlags(fs *flag.FlagSet, f *engineFlags, cfg *config.File) {
	if fs.Changed("strategies") {
		cfg.Strategies = normalizeList(f.strategies)
	}
	if fs.Changed("timeout") {
		cfg.RenderTimeout = f.timeout
		// Keep navigation inside the render budget.
		if cfg.NavigationTimeout >= f.timeout {
			cfg.NavigationTimeout = f.timeout * 3 / 4
		}
	}
	if fs.Changed("max-engines") {
		cfg.MaxEngines = f.maxEngines
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
}

// buildJob loads --job when given, appends positional addresses and
// applies job and option flags.
func buildJob(fs *flag.FlagSet, flags *renderFlags, addresses []string, env *Environment) (*web2pdf.Job, error) {
	job := &web2pdf.Job{}
	if flags.job.file != "" {
		loaded, err := config.LoadJob(flags.job.file)
		if err != nil {
			return nil, err
		}
		job = loaded
	}
	job.URLs = append(job.URLs, addresses...)
	if len(job.URLs) == 0 {
		return nil, ErrNoInput
	}

	if flags.job.id != "" {
		job.ID = flags.job.id
	}
	if job.ID == "" {
		job.ID = env.newID()
	}
	if flags.job.name != "" {
		job.Name = flags.job.name
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = env.now()
	}

	if fs.Changed("page-size") {
		job.Options.PageSize = flags.options.pageSize
	}
	if fs.Changed("landscape") {
		job.Options.Landscape = flags.options.landscape
	}
	if fs.Changed("no-expand") {
		expand := !flags.options.noExpand
		job.Options.ExpandSections = &expand
	}
	if fs.Changed("exclude") {
		job.Options.ExcludeSections = append(job.Options.ExcludeSections, flags.options.exclude...)
	}
	return job, nil
}

// resolveOutputPath returns where to write the PDF. An empty output uses
// the suggested filename in the current directory; an existing directory
// or a trailing separator receives the suggested filename.
func resolveOutputPath(output, suggested string) string {
	if output == "" {
		return suggested
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, suggested)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, suggested)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %w%s", ErrWritePDF, err, hints.ForOutputDirectory())
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWritePDF, err, hints.ForOutputDirectory())
	}
	return nil
}

// configHint returns the search hint when a config was not found.
func configHint(err error) string {
	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		return hints.ForConfigNotFound(nf.Tried)
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(nil)
	}
	return ""
}

// logLevel picks the log level: -q and -v win over the configured level.
func logLevel(configured string, f commonFlags) string {
	switch {
	case f.quiet:
		return "error"
	case f.verbose:
		return "debug"
	case configured == "":
		return "warn"
	default:
		return configured
	}
}

// printResult reports the written file, and with verbose the attempts and
// failed sources.
func printResult(w io.Writer, path string, res *web2pdf.Result, verbose bool) {
	failed := 0
	for _, p := range res.Pages {
		if !p.OK {
			failed++
		}
	}

	fmt.Fprintf(w, "Wrote %s (%d sources, %d failed, strategy %s, %d bytes)\n",
		path, len(res.Pages), failed, res.Strategy, len(res.Data))
	if !res.IsPDF() {
		fmt.Fprintf(w, "warning: output is %s, not a PDF\n", res.ContentType)
	}
	if !verbose {
		return
	}

	fmt.Fprintln(w, "Attempts:")
	timedOut := false
	for _, a := range res.Attempts {
		if a.Succeeded() {
			fmt.Fprintf(w, "  [OK]    %-8s %s\n", a.Strategy, a.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(w, "  [FAIL]  %-8s %s: %v\n", a.Strategy, a.Duration.Round(time.Millisecond), a.Err)
			timedOut = timedOut || errors.Is(a.Err, web2pdf.ErrNavigationTimeout)
		}
	}
	if timedOut {
		fmt.Fprintln(w, strings.TrimPrefix(hints.ForTimeout(), "\n"))
	}
	if failed > 0 {
		fmt.Fprintln(w, "Failed sources:")
		for i, p := range res.Pages {
			if !p.OK {
				fmt.Fprintf(w, "  %d. %s: %s\n", i+1, p.Address, p.Err)
			}
		}
	}
}

// normalizeList lowercases and trims entries, dropping blanks.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
