package feature

// Strand of a feature. The zero value is invalid and never produced by the
// converter.
type Strand byte

const (
	StrandPlus    Strand = '+'
	StrandMinus   Strand = '-'
	StrandUnknown Strand = '.'
)

func (s Strand) String() string {
	switch s {
	case StrandPlus, StrandMinus, StrandUnknown:
		return string(rune(s))
	default:
		return "?"
	}
}

// MarshalText keeps the symbol form in JSON output.
func (s Strand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Feature is one normalized repeat annotation. Coordinates are 1-based and
// inclusive, Start <= End. Features are built once by the converter and
// only read afterwards.
type Feature struct {
	SequenceName string  `json:"sequence_name"`
	Start        int     `json:"start"`
	End          int     `json:"end"`
	Strand       Strand  `json:"strand"`
	FeatureID    string  `json:"feature_id"`
	FamilyID     string  `json:"family_id"`
	Source       string  `json:"source"`
	LocusID      string  `json:"locus_id,omitempty"`
	RepeatClass  string  `json:"repeat_class,omitempty"`
	Score        float64 `json:"score"`
	Divergence   float64 `json:"divergence"`
}

// Length in base pairs of the closed interval.
func (f Feature) Length() int {
	return f.End - f.Start + 1
}
