package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/rmgtf/internal/util"
	"github.com/yumyai/rmgtf/logger"
	"github.com/yumyai/rmgtf/pkg/config"
	"github.com/yumyai/rmgtf/pkg/convert"
	"github.com/yumyai/rmgtf/pkg/db"
	"github.com/yumyai/rmgtf/pkg/feature"
	"github.com/yumyai/rmgtf/pkg/genome"
	"github.com/yumyai/rmgtf/pkg/gtf"
	"github.com/yumyai/rmgtf/pkg/render"
	"github.com/yumyai/rmgtf/pkg/repeatmasker"
	"github.com/yumyai/rmgtf/pkg/stats"
)

type Result struct {
	Features   []feature.Feature
	Report     *stats.Report
	Comparison *stats.Comparison
}

// Run executes the whole conversion described by cfg.
func Run(ctx context.Context, cfg config.Config) (*Result, error) {
	if err := util.RequireFiles(cfg.Report, cfg.Genome, cfg.Baseline); err != nil {
		return nil, err
	}

	idx, err := genome.Load(cfg.Genome)
	if err != nil {
		return nil, fmt.Errorf("load genome index: %w", err)
	}
	logger.Info("Loaded genome index",
		zap.String("path", cfg.Genome),
		zap.Int("sequences", len(idx)),
		zap.Int64("genome_bp", idx.TotalLength()))

	scheme, err := convert.ParseIDScheme(cfg.IDScheme)
	if err != nil {
		return nil, err
	}
	opts := convert.Options{Source: cfg.Source, IDScheme: scheme, IDPrefix: cfg.IDPrefix}

	logger.Info("Parsing scanner report", zap.String("path", cfg.Report))
	features, err := ConvertReport(cfg.Report, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("Converted annotations", zap.Int("features", len(features)))

	report, err := stats.Aggregate(features, idx)
	if err != nil {
		return nil, err
	}
	res := &Result{Features: features, Report: report}

	if cfg.Baseline != "" {
		base, err := LoadBaseline(ctx, cfg.Baseline)
		if err != nil {
			return nil, fmt.Errorf("load baseline: %w", err)
		}
		baseReport, err := stats.Aggregate(base, idx)
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
		res.Comparison = stats.Compare(report, baseReport)
		logger.Info("Compared with baseline",
			zap.String("path", cfg.Baseline),
			zap.Int("baseline_features", baseReport.Total))
	}

	if err := writeOutputs(ctx, cfg, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConvertReport streams the report through the converter and returns the
// materialized feature set in input order.
func ConvertReport(path string, opts convert.Options) ([]feature.Feature, error) {
	rc, err := util.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rd := repeatmasker.NewReader(rc)
	conv := convert.New(opts)

	var out []feature.Feature
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			logger.Debug("Reached end of report", zap.String("path", path), zap.Int("converted", conv.Count()))
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		f, err := conv.Convert(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, f)
	}
}

// LoadBaseline reads a previous annotation set, either a GTF (optionally
// gzipped) or a feature database written by an earlier run.
func LoadBaseline(ctx context.Context, path string) ([]feature.Feature, error) {
	if isDatabase(path) {
		return db.Load(ctx, path)
	}
	rc, err := util.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return gtf.ReadAll(rc)
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// writeOutputs stages every output file and only commits them once all were
// written, so a failed run leaves none of them behind.
func writeOutputs(ctx context.Context, cfg config.Config, res *Result) error {
	features := res.Features
	out, err := util.CreateAtomic(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Abort()

	logger.Info("Writing GTF", zap.String("path", cfg.Output))
	w := gtf.NewWriter(out, cfg.FeatureType)
	header := []string{
		"GTF annotation of transposable elements",
		"Generated from " + cfg.Source + " output " + filepath.Base(cfg.Report),
		"Format: GTF (compatible with Telescope)",
		fmt.Sprintf("Features: %d", len(features)),
		"",
	}
	if err := w.WriteHeader(header...); err != nil {
		return err
	}
	for _, f := range features {
		if err := w.Write(f); err != nil {
			return fmt.Errorf("write %s: %w", f.FeatureID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var summary *util.AtomicFile
	if cfg.Summary != "" {
		summary, err = util.CreateAtomic(cfg.Summary)
		if err != nil {
			return fmt.Errorf("create summary: %w", err)
		}
		defer summary.Abort()

		fileCfg := cfg
		fileCfg.Color = false
		if err := WriteSummary(summary, res, fileCfg); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if cfg.SQLite != "" {
		logger.Info("Exporting feature database", zap.String("path", cfg.SQLite))
		if err := db.Export(ctx, cfg.SQLite, features); err != nil {
			return fmt.Errorf("export feature database: %w", err)
		}
	}

	if summary != nil {
		if err := summary.Commit(); err != nil {
			removeCommitted(cfg.SQLite)
			return fmt.Errorf("commit summary: %w", err)
		}
	}
	if err := out.Commit(); err != nil {
		removeCommitted(cfg.SQLite, cfg.Summary)
		return fmt.Errorf("commit output: %w", err)
	}
	return nil
}

func removeCommitted(paths ...string) {
	for _, p := range paths {
		if p != "" {
			os.Remove(p)
		}
	}
}

// WriteSummary renders the run summary as text or JSON, per cfg.
func WriteSummary(w io.Writer, res *Result, cfg config.Config) error {
	if cfg.JSON {
		return render.JSON(w, res.Report, res.Comparison, cfg.TopN)
	}
	lang, err := cfg.Language()
	if err != nil {
		return err
	}
	return render.Summary(w, res.Report, res.Comparison, render.Options{TopN: cfg.TopN, Color: cfg.Color, Lang: lang})
}
