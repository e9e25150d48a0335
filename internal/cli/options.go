// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/yumyai/rmgtf/pkg/config"
)

const Version = "0.1.0"

// Options holds the parsed command line. Flags only override configuration
// values the user actually set.
type Options struct {
	ConfigPath string
	EnvFile    string
	Version    bool

	flags config.Config
	set   map[string]bool
	args  []string
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: convert RepeatMasker .out reports to Telescope-compatible GTF

Version: %s

Usage: %s [flags] <report.out> <genome.fai> <output.gtf>
       %s -config run.yaml

Flags:
`, name, Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	d := config.Default()

	fs.StringVar(&opt.ConfigPath, "config", "", "YAML configuration file")
	fs.StringVar(&opt.EnvFile, "env", ".env", "dotenv file with RMGTF_* variables (ignored when absent)")

	fs.StringVar(&opt.flags.Report, "report", "", "RepeatMasker .out report (.gz ok, '-' for stdin)")
	fs.StringVar(&opt.flags.Genome, "genome", "", "genome index: name<TAB>length table or samtools .fai")
	fs.StringVar(&opt.flags.Output, "output", "", "output GTF (.gz compresses)")
	fs.StringVar(&opt.flags.Baseline, "baseline", "", "previous annotation to compare with (.gtf, .gtf.gz or .db)")
	fs.StringVar(&opt.flags.SQLite, "sqlite", "", "also export features to this SQLite database")
	fs.StringVar(&opt.flags.Summary, "summary", "", "write the summary to this file instead of stdout")

	fs.StringVar(&opt.flags.Source, "source", d.Source, "GTF source column")
	fs.StringVar(&opt.flags.FeatureType, "feature-type", d.FeatureType, "GTF feature column")
	fs.StringVar(&opt.flags.IDScheme, "id-scheme", d.IDScheme, "feature id scheme: counter | uuid")
	fs.StringVar(&opt.flags.IDPrefix, "id-prefix", d.IDPrefix, "prefix for counter ids")
	fs.IntVar(&opt.flags.TopN, "top", d.TopN, "number of families in the summary histogram")
	fs.BoolVar(&opt.flags.Color, "color", d.Color, "color summary headings on a terminal")
	fs.BoolVar(&opt.flags.JSON, "json", false, "print the summary as JSON")
	fs.StringVar(&opt.flags.LogLevel, "log-level", d.LogLevel, "debug | info | warn | error")
	fs.StringVar(&opt.flags.Locale, "locale", d.Locale, "locale for number formatting in the summary, e.g. en, de")

	fs.BoolVar(&opt.Version, "version", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	opt.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.set[f.Name] = true })
	opt.args = fs.Args()

	if len(opt.args) > 3 {
		return opt, errors.New("too many arguments")
	}
	return opt, nil
}

// Apply overlays explicitly set flags, then positional arguments, onto cfg.
func (o Options) Apply(cfg *config.Config) {
	strs := map[string]struct{ dst, src *string }{
		"report":       {&cfg.Report, &o.flags.Report},
		"genome":       {&cfg.Genome, &o.flags.Genome},
		"output":       {&cfg.Output, &o.flags.Output},
		"baseline":     {&cfg.Baseline, &o.flags.Baseline},
		"sqlite":       {&cfg.SQLite, &o.flags.SQLite},
		"summary":      {&cfg.Summary, &o.flags.Summary},
		"source":       {&cfg.Source, &o.flags.Source},
		"feature-type": {&cfg.FeatureType, &o.flags.FeatureType},
		"id-scheme":    {&cfg.IDScheme, &o.flags.IDScheme},
		"id-prefix":    {&cfg.IDPrefix, &o.flags.IDPrefix},
		"log-level":    {&cfg.LogLevel, &o.flags.LogLevel},
		"locale":       {&cfg.Locale, &o.flags.Locale},
	}
	for name, p := range strs {
		if o.set[name] {
			*p.dst = *p.src
		}
	}
	if o.set["top"] {
		cfg.TopN = o.flags.TopN
	}
	if o.set["color"] {
		cfg.Color = o.flags.Color
	}
	if o.set["json"] {
		cfg.JSON = o.flags.JSON
	}

	positional := []*string{&cfg.Report, &cfg.Genome, &cfg.Output}
	for i, a := range o.args {
		*positional[i] = a
	}
}
