package stats

import (
	"encoding/json"
	"strconv"
)

// Delta is a relative change that may be undefined when its denominator is
// zero. An empty baseline is a legitimate state, so this is a value and not
// an error.
type Delta struct {
	Value   float64
	Defined bool
}

func percentChange(diff, base float64) Delta {
	if base == 0 {
		return Delta{}
	}
	return Delta{Value: diff / base * 100, Defined: true}
}

func (d Delta) String() string {
	if !d.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(d.Value, 'f', 2, 64)
}

// MarshalJSON encodes an undefined delta as null.
func (d Delta) MarshalJSON() ([]byte, error) {
	if !d.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// Comparison pairs a new report with a baseline.
type Comparison struct {
	New      *Report `json:"new"`
	Baseline *Report `json:"baseline"`

	CountDelta    int   `json:"count_delta"`
	CountDeltaPct Delta `json:"count_delta_pct"`

	// CoverageDelta is new minus baseline coverage fraction;
	// CoverageDeltaPP is the same in percentage points.
	CoverageDelta    float64 `json:"coverage_delta"`
	CoverageDeltaPP  float64 `json:"coverage_delta_pp"`
	CoverageDeltaPct Delta   `json:"coverage_delta_pct"`

	FamilyDelta int `json:"family_delta"`
}

func Compare(newReport, baseline *Report) *Comparison {
	c := &Comparison{New: newReport, Baseline: baseline}

	c.CountDelta = newReport.Total - baseline.Total
	c.CountDeltaPct = percentChange(float64(c.CountDelta), float64(baseline.Total))

	c.CoverageDelta = newReport.CoverageFraction - baseline.CoverageFraction
	c.CoverageDeltaPP = c.CoverageDelta * 100
	c.CoverageDeltaPct = percentChange(c.CoverageDelta, baseline.CoverageFraction)

	c.FamilyDelta = newReport.UniqueFamilies() - baseline.UniqueFamilies()
	return c
}
