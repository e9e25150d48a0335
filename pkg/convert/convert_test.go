package convert

import (
	"errors"
	"testing"

	"github.com/yumyai/rmgtf/pkg/feature"
	"github.com/yumyai/rmgtf/pkg/repeatmasker"
)

func rawRecord(seq string, begin, end int, strand, name, class string) repeatmasker.RawRecord {
	return repeatmasker.RawRecord{
		Line:        4,
		Text:        "raw",
		Score:       1234,
		Divergence:  10.1,
		Sequence:    seq,
		Begin:       begin,
		End:         end,
		Strand:      strand,
		RepeatName:  name,
		RepeatClass: class,
	}
}

func TestConvertFields(t *testing.T) {
	c := New(Options{})
	f, err := c.Convert(rawRecord("chr2L", 1250, 1500, "C", "ROO_LTR", "LTR/Pao"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := feature.Feature{
		SequenceName: "chr2L",
		Start:        1250,
		End:          1500,
		Strand:       feature.StrandMinus,
		FeatureID:    "TE0000001",
		FamilyID:     "ROO_LTR",
		Source:       "RepeatMasker",
		LocusID:      "ROO_LTR_1",
		RepeatClass:  "LTR/Pao",
		Score:        1234,
		Divergence:   10.1,
	}
	if f != want {
		t.Errorf("Convert =\n%+v\nwant\n%+v", f, want)
	}
}

func TestConvertOrdinals(t *testing.T) {
	c := New(Options{})
	recs := []repeatmasker.RawRecord{
		rawRecord("chr1", 1, 10, "+", "ROO", "LTR/Pao"),
		rawRecord("chr1", 1, 10, "+", "ROO", "LTR/Pao"), // same coordinates
		rawRecord("chr1", 5, 15, "+", "DOC", "LINE/I"),
		rawRecord("chr1", 20, 30, "+", "ROO#LTR", "LTR/Pao"),
	}

	seen := map[string]bool{}
	var loci []string
	for _, r := range recs {
		f, err := c.Convert(r)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if seen[f.FeatureID] {
			t.Fatalf("duplicate feature id %s", f.FeatureID)
		}
		seen[f.FeatureID] = true
		loci = append(loci, f.LocusID)
	}

	wantLoci := []string{"ROO_1", "ROO_2", "DOC_1", "ROO_3"}
	for i := range wantLoci {
		if loci[i] != wantLoci[i] {
			t.Errorf("locus[%d] = %s, want %s", i, loci[i], wantLoci[i])
		}
	}
	if c.Count() != 4 {
		t.Errorf("Count = %d, want 4", c.Count())
	}
}

func TestConvertDeterministic(t *testing.T) {
	for _, scheme := range []IDScheme{IDCounter, IDUUID} {
		t.Run(string(scheme), func(t *testing.T) {
			run := func() []feature.Feature {
				c := New(Options{IDScheme: scheme})
				var out []feature.Feature
				for _, r := range []repeatmasker.RawRecord{
					rawRecord("chr1", 1, 10, "+", "ROO", "LTR/Pao"),
					rawRecord("chr1", 1, 10, "+", "ROO", "LTR/Pao"),
				} {
					f, err := c.Convert(r)
					if err != nil {
						t.Fatalf("Convert: %v", err)
					}
					out = append(out, f)
				}
				return out
			}
			a, b := run(), run()
			for i := range a {
				if a[i] != b[i] {
					t.Errorf("run differs at %d: %+v vs %+v", i, a[i], b[i])
				}
			}
			if a[0].FeatureID == a[1].FeatureID {
				t.Errorf("identical coordinates share id %s", a[0].FeatureID)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  repeatmasker.RawRecord
		kind error
	}{
		{"EndBeforeStart", rawRecord("chr1", 20, 10, "+", "ROO", "LTR"), ErrInvalidCoordinate},
		{"ZeroStart", rawRecord("chr1", 0, 10, "+", "ROO", "LTR"), ErrInvalidCoordinate},
		{"BadStrand", rawRecord("chr1", 1, 10, "X", "ROO", "LTR"), ErrUnknownStrand},
		{"EmptyFamily", rawRecord("chr1", 1, 10, "+", "#LTR", "LTR"), ErrEmptyFamilyLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{})
			_, err := c.Convert(tt.rec)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("err = %v, want %v", err, tt.kind)
			}
			var ce *ConversionError
			if !errors.As(err, &ce) || ce.Line != 4 || ce.Text != "raw" {
				t.Errorf("error does not name the raw record: %#v", err)
			}
			if c.Count() != 0 {
				t.Errorf("failed conversion advanced the counter")
			}
		})
	}
}

func TestParseIDScheme(t *testing.T) {
	if s, err := ParseIDScheme(""); err != nil || s != IDCounter {
		t.Errorf("empty scheme = %q, %v", s, err)
	}
	if s, err := ParseIDScheme("uuid"); err != nil || s != IDUUID {
		t.Errorf("uuid scheme = %q, %v", s, err)
	}
	if _, err := ParseIDScheme("hash"); err == nil {
		t.Errorf("expected error for unknown scheme")
	}
}
