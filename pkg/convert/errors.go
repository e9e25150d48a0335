package convert

import (
	"errors"
	"fmt"

	"github.com/yumyai/rmgtf/pkg/repeatmasker"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrUnknownStrand     = errors.New("unknown strand")
	ErrEmptyFamilyLabel  = errors.New("empty family label")
)

// ConversionError names the raw record that could not become a feature.
// Kind is one of the Err* sentinels above.
type ConversionError struct {
	Kind   error
	Line   int
	Text   string
	Detail string
}

func newConversionError(kind error, rec repeatmasker.RawRecord, detail string) *ConversionError {
	return &ConversionError{Kind: kind, Line: rec.Line, Text: rec.Text, Detail: detail}
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%v at line %d (%s): %q", e.Kind, e.Line, e.Detail, e.Text)
}

func (e *ConversionError) Unwrap() error {
	return e.Kind
}
