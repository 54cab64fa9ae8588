package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// jobFlags override fields of the job being rendered.
type jobFlags struct {
	file string
	id   string
	name string
}

// optionFlags override the job's render options.
type optionFlags struct {
	pageSize  string
	landscape bool
	noExpand  bool
	exclude   []string
}

// engineFlags override renderer configuration.
type engineFlags struct {
	strategies []string
	timeout    time.Duration
	maxEngines int
	logFormat  string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	output  string
	job     jobFlags
	options optionFlags
	engine  engineFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show strategy attempts and source errors")
}

func addJobFlags(fs *flag.FlagSet, f *jobFlags) {
	fs.StringVarP(&f.file, "job", "j", "", "job file (YAML)")
	fs.StringVar(&f.id, "id", "", "job id (default: random)")
	fs.StringVarP(&f.name, "name", "n", "", "document name, used for the title and filename")
}

func addOptionFlags(fs *flag.FlagSet, f *optionFlags) {
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter, legal, ...")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
	fs.BoolVar(&f.noExpand, "no-expand", false, "leave collapsed sections collapsed")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "CSS selectors to remove (repeatable)")
}

func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringSliceVarP(&f.strategies, "strategies", "s", nil, "strategy order: full,minimal,remote,static")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-strategy render timeout")
	fs.IntVarP(&f.maxEngines, "max-engines", "w", 0, "concurrent browser engines (0 = auto)")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// newRenderFlagSet builds the render command's FlagSet bound to f.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SortFlags = false
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	addJobFlags(fs, &f.job)
	addOptionFlags(fs, &f.options)
	addEngineFlags(fs, &f.engine)
	return fs
}
