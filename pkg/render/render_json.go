package render

import (
	"encoding/json"
	"io"

	"github.com/yumyai/rmgtf/pkg/stats"
)

type jsonSummary struct {
	*stats.Report
	UniqueFamilies int                   `json:"unique_families"`
	Sequences      []stats.SequenceCount `json:"sequences"`
	TopFamilies    []stats.FamilyCount   `json:"top_families"`
}

type jsonDocument struct {
	Summary    jsonSummary       `json:"summary"`
	Comparison *stats.Comparison `json:"comparison,omitempty"`
}

// JSON writes the summary (and comparison, when present) as one JSON
// document for machine consumers.
func JSON(w io.Writer, r *stats.Report, cmp *stats.Comparison, topN int) error {
	if topN <= 0 {
		topN = DefaultTopN
	}
	doc := jsonDocument{
		Summary: jsonSummary{
			Report:         r,
			UniqueFamilies: r.UniqueFamilies(),
			Sequences:      r.Sequences(),
			TopFamilies:    r.TopFamilies(topN),
		},
		Comparison: cmp,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
