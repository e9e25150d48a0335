package stats

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompare(t *testing.T) {
	base := &Report{Total: 100, CoverageFraction: 0.05, PerFamily: map[string]int{"a": 1}}
	cur := &Report{Total: 150, CoverageFraction: 0.075, PerFamily: map[string]int{"a": 1, "b": 1}}

	c := Compare(cur, base)
	if c.CountDelta != 50 {
		t.Errorf("CountDelta = %d, want 50", c.CountDelta)
	}
	if !c.CountDeltaPct.Defined || !approx(c.CountDeltaPct.Value, 50) {
		t.Errorf("CountDeltaPct = %+v, want 50", c.CountDeltaPct)
	}
	if !approx(c.CoverageDeltaPP, 2.5) {
		t.Errorf("CoverageDeltaPP = %v, want 2.5", c.CoverageDeltaPP)
	}
	if !approx(c.CoverageDelta, 0.025) {
		t.Errorf("CoverageDelta = %v, want 0.025", c.CoverageDelta)
	}
	if !c.CoverageDeltaPct.Defined || !approx(c.CoverageDeltaPct.Value, 50) {
		t.Errorf("CoverageDeltaPct = %+v, want 50", c.CoverageDeltaPct)
	}
	if c.FamilyDelta != 1 {
		t.Errorf("FamilyDelta = %d, want 1", c.FamilyDelta)
	}
}

func TestCompareEmptyBaseline(t *testing.T) {
	base := &Report{PerFamily: map[string]int{}}
	cur := &Report{Total: 10, CoverageFraction: 0.01, PerFamily: map[string]int{"a": 10}}

	c := Compare(cur, base)
	if c.CountDelta != 10 {
		t.Errorf("CountDelta = %d", c.CountDelta)
	}
	if c.CountDeltaPct.Defined || c.CountDeltaPct.String() != "undefined" {
		t.Errorf("CountDeltaPct = %+v, want undefined", c.CountDeltaPct)
	}
	if c.CoverageDeltaPct.Defined {
		t.Errorf("CoverageDeltaPct should be undefined")
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"count_delta_pct":null`) {
		t.Errorf("undefined delta not encoded as null: %s", b)
	}
}
