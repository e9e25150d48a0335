// Render the human-readable run summary

package render

import (
	"fmt"
	"io"
	"text/template"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yumyai/rmgtf/pkg/stats"
)

const DefaultTopN = 10

// Options control presentation only; the numbers come from stats untouched.
type Options struct {
	TopN  int
	Color bool
	// Lang picks the digit grouping for counts (1,234 vs 1.234).
	Lang language.Tag
}

var summary_template *template.Template

func init() {
	mainTmpl := `{{ head "Repeat annotation summary" }}
  Features:          {{ num .Report.Total }}
  Unique families:   {{ num .Report.UniqueFamilies }}
  Covered bp:        {{ num64 .Report.CoveredBP }} of {{ num64 .Report.GenomeBP }} ({{ pct .Report.CoverageFraction }})
  Merged covered bp: {{ num64 .Report.UnionBP }} ({{ pct .Report.UnionFraction }}, overlaps merged, informational)

{{ head "Features per sequence" }}
{{- range .Sequences }}
  {{ pad $.SeqWidth .SequenceName }}  {{ num .Count }}
{{- else }}
  (none)
{{- end }}

{{ head (printf "Top %d families" $.TopN) }}
{{- range $i, $f := .Top }}
  {{ printf "%3d" (add $i 1) }}. {{ pad $.FamWidth $f.FamilyID }}  {{ num $f.Count }}
{{- else }}
  (none)
{{- end }}
{{ with .Comparison }}{{ template "comparison" . }}{{ end }}`

	comparisonTmpl := `{{ define "comparison" }}
{{ head "Comparison with baseline" }}
  {{ pad 16 "" }}  {{ pad 14 "baseline" }}  {{ pad 14 "new" }}  change
  {{ pad 16 "Features" }}  {{ pad 14 (num .Baseline.Total) }}  {{ pad 14 (num .New.Total) }}  {{ signed .CountDelta }} ({{ pctChange .CountDeltaPct }})
  {{ pad 16 "Families" }}  {{ pad 14 (num .Baseline.UniqueFamilies) }}  {{ pad 14 (num .New.UniqueFamilies) }}  {{ signed .FamilyDelta }}
  {{ pad 16 "Coverage" }}  {{ pad 14 (pct .Baseline.CoverageFraction) }}  {{ pad 14 (pct .New.CoverageFraction) }}  {{ pp .CoverageDeltaPP }} ({{ pctChange .CoverageDeltaPct }})
{{ end }}`

	summary_template = template.New("summary")
	summary_template.Funcs(template.FuncMap{
		// Replaced per call in Summary; defined here so parsing succeeds.
		"head":      fmt.Sprint,
		"num":       fmt.Sprint,
		"num64":     fmt.Sprint,
		"signed":    fmt.Sprint,
		"pct":       fmt.Sprint,
		"pp":        fmt.Sprint,
		"pctChange": fmt.Sprint,
		"add":       func(a, b int) int { return a + b },
		"pad":       func(w int, s string) string { return fmt.Sprintf("%-*s", w, s) },
	})
	template.Must(summary_template.Parse(mainTmpl))
	template.Must(summary_template.Parse(comparisonTmpl))
}

type summaryData struct {
	Report     *stats.Report
	Sequences  []stats.SequenceCount
	Top        []stats.FamilyCount
	TopN       int
	SeqWidth   int
	FamWidth   int
	Comparison *stats.Comparison
}

// Summary writes the text report. cmp may be nil when no baseline was given.
func Summary(w io.Writer, r *stats.Report, cmp *stats.Comparison, opts Options) error {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Lang == language.Und {
		opts.Lang = language.English
	}

	data := summaryData{
		Report:     r,
		Sequences:  r.Sequences(),
		Top:        r.TopFamilies(opts.TopN),
		TopN:       opts.TopN,
		Comparison: cmp,
	}
	for _, s := range data.Sequences {
		data.SeqWidth = max(data.SeqWidth, len(s.SequenceName))
	}
	for _, f := range data.Top {
		data.FamWidth = max(data.FamWidth, len(f.FamilyID))
	}

	tmpl, err := summary_template.Clone()
	if err != nil {
		return err
	}
	tmpl.Funcs(formatFuncs(opts))
	return tmpl.Execute(w, data)
}

func formatFuncs(opts Options) template.FuncMap {
	p := message.NewPrinter(opts.Lang)

	heading := color.New(color.Bold, color.FgCyan)
	if !opts.Color {
		heading.DisableColor()
	}

	return template.FuncMap{
		"head":   heading.Sprint,
		"num":    func(n int) string { return p.Sprintf("%d", n) },
		"num64":  func(n int64) string { return p.Sprintf("%d", n) },
		"signed": func(n int) string { return p.Sprintf("%+d", n) },
		"pct":    func(f float64) string { return p.Sprintf("%.2f%%", f*100) },
		"pp":     func(f float64) string { return p.Sprintf("%+.2f pp", f) },
		"pctChange": func(d stats.Delta) string {
			if !d.Defined {
				return d.String()
			}
			return p.Sprintf("%+.2f%%", d.Value)
		},
	}
}
