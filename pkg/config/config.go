// pkg/config/config.go
//
// Run configuration. Values are layered: built-in defaults, then an optional
// YAML file, then RMGTF_* environment variables (a .env file is loaded into
// the environment by main), then command-line flags.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces the environment variables, e.g. RMGTF_TOP_N.
const EnvPrefix = "RMGTF_"

type Config struct {
	Report   string `yaml:"report"`
	Genome   string `yaml:"genome"`
	Baseline string `yaml:"baseline,omitempty"`
	Output   string `yaml:"output"`
	SQLite   string `yaml:"sqlite,omitempty"`
	// Summary is the file for the text summary; empty means stdout.
	Summary string `yaml:"summary,omitempty"`

	Source      string `yaml:"source"`
	FeatureType string `yaml:"feature_type"`
	IDScheme    string `yaml:"id_scheme"`
	IDPrefix    string `yaml:"id_prefix"`

	TopN     int    `yaml:"top_n"`
	Color    bool   `yaml:"color"`
	JSON     bool   `yaml:"json"`
	LogLevel string `yaml:"log_level"`
	// Locale is a BCP 47 tag choosing digit grouping in the text summary.
	Locale string `yaml:"locale"`
}

func Default() Config {
	return Config{
		Source:      "RepeatMasker",
		FeatureType: "exon",
		IDScheme:    "counter",
		IDPrefix:    "TE",
		TopN:        10,
		Color:       true,
		LogLevel:    "info",
		Locale:      "en",
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays RMGTF_* variables read through getenv. Empty variables
// are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"REPORT":       &cfg.Report,
		"GENOME":       &cfg.Genome,
		"BASELINE":     &cfg.Baseline,
		"OUTPUT":       &cfg.Output,
		"SQLITE":       &cfg.SQLite,
		"SUMMARY":      &cfg.Summary,
		"SOURCE":       &cfg.Source,
		"FEATURE_TYPE": &cfg.FeatureType,
		"ID_SCHEME":    &cfg.IDScheme,
		"ID_PREFIX":    &cfg.IDPrefix,
		"LOG_LEVEL":    &cfg.LogLevel,
		"LOCALE":       &cfg.Locale,
	}
	for key, dst := range strs {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	if v := getenv(EnvPrefix + "TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTOP_N: %w", EnvPrefix, err)
		}
		cfg.TopN = n
	}
	bools := map[string]*bool{"COLOR": &cfg.Color, "JSON": &cfg.JSON}
	for key, dst := range bools {
		if v := getenv(EnvPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}
	return nil
}

// Language parses Locale; an empty locale is English.
func (c Config) Language() (language.Tag, error) {
	if c.Locale == "" {
		return language.English, nil
	}
	return language.Parse(c.Locale)
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.Report == "" {
		errs = append(errs, errors.New("no scanner report given"))
	}
	if c.Genome == "" {
		errs = append(errs, errors.New("no genome index given"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("no output GTF given"))
	}
	if c.TopN < 1 {
		errs = append(errs, fmt.Errorf("top_n must be at least 1, got %d", c.TopN))
	}
	switch c.IDScheme {
	case "counter", "uuid":
	default:
		errs = append(errs, fmt.Errorf("id_scheme must be counter or uuid, got %q", c.IDScheme))
	}
	if strings.TrimSpace(c.Source) == "" {
		errs = append(errs, errors.New("source must not be empty"))
	}
	if _, err := c.Language(); err != nil {
		errs = append(errs, fmt.Errorf("locale %q: %w", c.Locale, err))
	}
	return errors.Join(errs...)
}
