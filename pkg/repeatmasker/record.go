// Reader for the RepeatMasker .out table.

package repeatmasker

import (
	"errors"
	"fmt"
)

// MinFields is the number of leading columns a data line must carry for
// conversion: score, three percentages, query, begin, end, (left), strand,
// repeat name and class/family.
const MinFields = 11

// ErrMalformedRecord is matched by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError names the offending line of the report.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d (%s): %q", e.Line, e.Reason, e.Text)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// RawRecord is one data line of the report, split into typed columns but not
// yet validated for conversion.
type RawRecord struct {
	Line        int
	Text        string
	Score       float64
	Divergence  float64
	Deletion    float64
	Insertion   float64
	Sequence    string
	Begin       int
	End         int
	Left        string
	Strand      string
	RepeatName  string
	RepeatClass string
	// ID is the scanner's own hit id, empty when the column is absent.
	ID string
	// Overlapped is set when the line carries the trailing "*" flag for a
	// hit overlapped by a higher-scoring one.
	Overlapped bool
}
