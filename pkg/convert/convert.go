package convert

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yumyai/rmgtf/pkg/feature"
	"github.com/yumyai/rmgtf/pkg/repeatmasker"
)

type IDScheme string

const (
	// IDCounter numbers features in input order: TE0000001, TE0000002, ...
	IDCounter IDScheme = "counter"
	// IDUUID derives a name-based (SHA-1) UUID from the feature's location,
	// family and input ordinal.
	IDUUID IDScheme = "uuid"
)

const (
	DefaultSource   = "RepeatMasker"
	DefaultIDPrefix = "TE"
)

var featureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("rmgtf/feature"))

type Options struct {
	Source   string
	IDScheme IDScheme
	IDPrefix string
}

func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.IDScheme == "" {
		o.IDScheme = IDCounter
	}
	if o.IDPrefix == "" {
		o.IDPrefix = DefaultIDPrefix
	}
	return o
}

// ParseIDScheme validates a configured scheme name.
func ParseIDScheme(s string) (IDScheme, error) {
	switch IDScheme(s) {
	case IDCounter, IDUUID:
		return IDScheme(s), nil
	case "":
		return IDCounter, nil
	}
	return "", fmt.Errorf("unknown id scheme %q (want counter or uuid)", s)
}

// Ordinals carries the run position of a record: its 1-based index in the
// report and its 1-based index among records of the same family.
type Ordinals struct {
	Record int
	Locus  int
}

// Converter turns raw records into features one at a time, tracking the
// ordinals that make ids unique within a run. It is not safe for concurrent
// use; ConvertRecord is the pure per-record step.
type Converter struct {
	opts  Options
	n     int
	locus map[string]int
}

func New(opts Options) *Converter {
	return &Converter{opts: opts.withDefaults(), locus: make(map[string]int)}
}

// Convert maps rec to its feature. Ordinals only advance on success.
func (c *Converter) Convert(rec repeatmasker.RawRecord) (feature.Feature, error) {
	label, _ := ParseLabel(rec.RepeatName, rec.RepeatClass)
	ord := Ordinals{Record: c.n + 1, Locus: c.locus[label.Family] + 1}

	f, err := ConvertRecord(rec, ord, c.opts)
	if err != nil {
		return feature.Feature{}, err
	}
	c.n = ord.Record
	c.locus[label.Family] = ord.Locus
	return f, nil
}

// Count is the number of features converted so far.
func (c *Converter) Count() int {
	return c.n
}

// ConvertRecord is the deterministic conversion of one record at the given
// ordinals. Identical input always yields an identical feature.
func ConvertRecord(rec repeatmasker.RawRecord, ord Ordinals, opts Options) (feature.Feature, error) {
	opts = opts.withDefaults()

	if rec.Begin < 1 || rec.End < rec.Begin {
		return feature.Feature{}, newConversionError(ErrInvalidCoordinate, rec, fmt.Sprintf("begin %d end %d", rec.Begin, rec.End))
	}

	strand, ok := parseStrand(rec.Strand)
	if !ok {
		return feature.Feature{}, newConversionError(ErrUnknownStrand, rec, fmt.Sprintf("strand %q", rec.Strand))
	}

	label, ok := ParseLabel(rec.RepeatName, rec.RepeatClass)
	if !ok {
		return feature.Feature{}, newConversionError(ErrEmptyFamilyLabel, rec, fmt.Sprintf("repeat %q", rec.RepeatName))
	}

	f := feature.Feature{
		SequenceName: rec.Sequence,
		Start:        rec.Begin,
		End:          rec.End,
		Strand:       strand,
		FamilyID:     label.Family,
		Source:       opts.Source,
		LocusID:      fmt.Sprintf("%s_%d", label.Family, ord.Locus),
		RepeatClass:  label.Class,
		Score:        rec.Score,
		Divergence:   rec.Divergence,
	}
	f.FeatureID = featureID(f, ord.Record, opts)
	return f, nil
}

func featureID(f feature.Feature, ordinal int, opts Options) string {
	if opts.IDScheme == IDUUID {
		key := fmt.Sprintf("%s:%d-%d:%s:%s:%d", f.SequenceName, f.Start, f.End, f.Strand, f.FamilyID, ordinal)
		return uuid.NewSHA1(featureNamespace, []byte(key)).String()
	}
	return fmt.Sprintf("%s%07d", opts.IDPrefix, ordinal)
}

// RepeatMasker writes "C" (complement) for minus-strand hits.
func parseStrand(s string) (feature.Strand, bool) {
	switch s {
	case "+":
		return feature.StrandPlus, true
	case "-", "C", "c":
		return feature.StrandMinus, true
	case ".":
		return feature.StrandUnknown, true
	}
	return 0, false
}
