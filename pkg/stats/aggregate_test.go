package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/yumyai/rmgtf/pkg/feature"
)

func feat(id, seq string, start, end int, family string) feature.Feature {
	return feature.Feature{
		FeatureID:    id,
		SequenceName: seq,
		Start:        start,
		End:          end,
		Strand:       feature.StrandPlus,
		FamilyID:     family,
		Source:       "RepeatMasker",
	}
}

func TestAggregateSingleFeature(t *testing.T) {
	idx := feature.GenomeIndex{"chr2": 1000}
	r, err := Aggregate([]feature.Feature{feat("TE1", "chr2", 101, 350, "ROO")}, idx)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if r.Total != 1 || r.CoveredBP != 250 {
		t.Errorf("total=%d covered=%d, want 1 and 250", r.Total, r.CoveredBP)
	}
	if r.CoverageFraction != 250.0/1000.0 {
		t.Errorf("fraction = %v, want 0.25", r.CoverageFraction)
	}
}

func TestAggregateOverlapNotMerged(t *testing.T) {
	idx := feature.GenomeIndex{"chr1": 100}
	r, err := Aggregate([]feature.Feature{
		feat("a", "chr1", 1, 10, "ROO"),
		feat("b", "chr1", 5, 15, "ROO"),
	}, idx)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if r.CoveredBP != 21 {
		t.Errorf("CoveredBP = %d, want 21 (10 + 11, overlaps counted per feature)", r.CoveredBP)
	}
	if r.UnionBP != 15 {
		t.Errorf("UnionBP = %d, want 15", r.UnionBP)
	}
}

func TestAggregateHistogram(t *testing.T) {
	idx := feature.GenomeIndex{"chr1": 1000, "chr2": 1000}
	fs := []feature.Feature{
		feat("1", "chr2", 1, 2, "ROO"),
		feat("2", "chr1", 1, 2, "DOC"),
		feat("3", "chr1", 3, 4, "ROO"),
		feat("4", "chr1", 5, 6, "BEL"),
		feat("5", "chr2", 3, 4, "DOC"),
		feat("6", "chr2", 5, 6, "jockey"),
	}
	r, err := Aggregate(fs, idx)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	top := r.TopFamilies(3)
	want := []FamilyCount{{"DOC", 2}, {"ROO", 2}, {"BEL", 1}}
	if len(top) != len(want) {
		t.Fatalf("TopFamilies(3) = %v", top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("rank %d = %v, want %v", i, top[i], want[i])
		}
	}
	if all := r.TopFamilies(0); len(all) != 4 {
		t.Errorf("TopFamilies(0) returned %d families, want 4", len(all))
	}
	if r.UniqueFamilies() != 4 {
		t.Errorf("UniqueFamilies = %d", r.UniqueFamilies())
	}

	seqs := r.Sequences()
	if len(seqs) != 2 || seqs[0] != (SequenceCount{"chr1", 3}) || seqs[1] != (SequenceCount{"chr2", 3}) {
		t.Errorf("Sequences = %v", seqs)
	}
}

func TestAggregateUnknownSequence(t *testing.T) {
	idx := feature.GenomeIndex{"chr2": 1000}
	_, err := Aggregate([]feature.Feature{
		feat("TE1", "chr2", 1, 10, "ROO"),
		feat("TE2", "chrX", 1, 10, "ROO"),
	}, idx)

	var ue *UnknownSequenceError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnknownSequenceError, got %v", err)
	}
	if ue.FeatureID != "TE2" || ue.Sequence != "chrX" {
		t.Errorf("error = %+v", ue)
	}
	if !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("errors.Is(ErrUnknownSequence) = false")
	}
}

func TestAggregateEmpty(t *testing.T) {
	r, err := Aggregate(nil, feature.GenomeIndex{"chr1": 10})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if r.Total != 0 || r.CoverageFraction != 0 || math.IsNaN(r.UnionFraction) {
		t.Errorf("unexpected empty report %+v", r)
	}
}

func TestUnionLength(t *testing.T) {
	tests := []struct {
		name  string
		spans []span
		want  int64
	}{
		{"Disjoint", []span{{1, 10}, {21, 30}}, 20},
		{"Nested", []span{{1, 100}, {10, 20}}, 100},
		{"Adjacent", []span{{11, 20}, {1, 10}}, 20},
		{"Chain", []span{{1, 5}, {4, 8}, {8, 12}}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unionLength(tt.spans); got != tt.want {
				t.Errorf("unionLength = %d, want %d", got, tt.want)
			}
		})
	}
}
