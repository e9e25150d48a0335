package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yumyai/rmgtf/pkg/feature"
)

var ErrUnknownSequence = errors.New("unknown sequence")

// UnknownSequenceError names a feature whose sequence is not in the genome
// index.
type UnknownSequenceError struct {
	FeatureID string
	Sequence  string
}

func (e *UnknownSequenceError) Error() string {
	return fmt.Sprintf("%v: feature %s references %q, which is not in the genome index",
		ErrUnknownSequence, e.FeatureID, e.Sequence)
}

func (e *UnknownSequenceError) Is(target error) bool {
	return target == ErrUnknownSequence
}

type SequenceCount struct {
	SequenceName string `json:"sequence_name"`
	Count        int    `json:"count"`
}

type FamilyCount struct {
	FamilyID string `json:"family_id"`
	Count    int    `json:"count"`
}

// Report holds the aggregates of one feature set.
//
// CoveredBP is the sum of feature lengths with no merging of overlaps, so a
// base covered by two features counts twice and CoverageFraction can exceed
// the fraction of the genome that is actually annotated (even above 1).
// UnionBP is the merged-interval figure, kept alongside for comparison only.
type Report struct {
	Total            int            `json:"total"`
	PerSequence      map[string]int `json:"per_sequence"`
	PerFamily        map[string]int `json:"per_family"`
	CoveredBP        int64          `json:"covered_bp"`
	UnionBP          int64          `json:"union_bp"`
	GenomeBP         int64          `json:"genome_bp"`
	CoverageFraction float64        `json:"coverage_fraction"`
	UnionFraction    float64        `json:"union_fraction"`
}

// Aggregate scans features once and builds their Report. Every feature must
// name a sequence present in idx.
func Aggregate(features []feature.Feature, idx feature.GenomeIndex) (*Report, error) {
	r := &Report{
		Total:       len(features),
		PerSequence: make(map[string]int),
		PerFamily:   make(map[string]int),
		GenomeBP:    idx.TotalLength(),
	}

	bySeq := make(map[string][]span)
	for _, f := range features {
		if _, ok := idx[f.SequenceName]; !ok {
			return nil, &UnknownSequenceError{FeatureID: f.FeatureID, Sequence: f.SequenceName}
		}
		r.PerSequence[f.SequenceName]++
		r.PerFamily[f.FamilyID]++
		r.CoveredBP += int64(f.Length())
		bySeq[f.SequenceName] = append(bySeq[f.SequenceName], span{f.Start, f.End})
	}
	for _, spans := range bySeq {
		r.UnionBP += unionLength(spans)
	}

	if r.GenomeBP > 0 {
		r.CoverageFraction = float64(r.CoveredBP) / float64(r.GenomeBP)
		r.UnionFraction = float64(r.UnionBP) / float64(r.GenomeBP)
	}
	return r, nil
}

func (r *Report) UniqueFamilies() int {
	return len(r.PerFamily)
}

// Sequences lists per-sequence counts by ascending sequence name.
func (r *Report) Sequences() []SequenceCount {
	out := make([]SequenceCount, 0, len(r.PerSequence))
	for name, n := range r.PerSequence {
		out = append(out, SequenceCount{SequenceName: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceName < out[j].SequenceName })
	return out
}

// TopFamilies ranks families by descending count, ties by ascending family
// id. k <= 0 returns every family.
func (r *Report) TopFamilies(k int) []FamilyCount {
	out := make([]FamilyCount, 0, len(r.PerFamily))
	for fam, n := range r.PerFamily {
		out = append(out, FamilyCount{FamilyID: fam, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].FamilyID < out[j].FamilyID
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
