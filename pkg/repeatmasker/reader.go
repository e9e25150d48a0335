package repeatmasker

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

// Reader yields RawRecords from a report one line at a time. The header is
// recognised by shape rather than position, since its length differs between
// scanner versions. Once the "score div. del. ins." title row has been seen,
// every non-blank line is a record.
type Reader struct {
	sc     *bufio.Scanner
	line   int
	inBody bool
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next data record, or io.EOF once the report is exhausted.
// A data line that cannot be split into a record is a *MalformedRecordError.
func (r *Reader) Next() (RawRecord, error) {
	for r.sc.Scan() {
		r.line++
		text := r.sc.Text()
		fields := strings.Fields(text)
		if !r.isDataLine(fields) {
			continue
		}
		return parseFields(r.line, text, fields)
	}
	if err := r.sc.Err(); err != nil {
		return RawRecord{}, err
	}
	return RawRecord{}, io.EOF
}

// ReadAll drains the reader. It stops at the first error.
func (r *Reader) ReadAll() ([]RawRecord, error) {
	var out []RawRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

const noRepeatsMessage = "There were no repetitive sequences detected"

func (r *Reader) isDataLine(fields []string) bool {
	switch {
	case len(fields) == 0:
		return false
	case isTitleRow(fields):
		r.inBody = true
		return false
	case strings.HasPrefix(strings.Join(fields, " "), noRepeatsMessage):
		return false
	case r.inBody:
		return true
	}
	// Reports stripped of their title row: a record starts with a number or
	// carries integer query coordinates in the begin and end columns.
	if _, err := strconv.ParseFloat(fields[0], 64); err == nil {
		return true
	}
	if len(fields) >= MinFields {
		_, errBegin := strconv.Atoi(fields[5])
		_, errEnd := strconv.Atoi(fields[6])
		return errBegin == nil && errEnd == nil
	}
	return false
}

func isTitleRow(fields []string) bool {
	return len(fields) >= 2 && fields[0] == "score" && fields[1] == "div."
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseFields(line int, text string, f []string) (RawRecord, error) {
	bad := func(reason string) (RawRecord, error) {
		return RawRecord{}, &MalformedRecordError{Line: line, Text: text, Reason: reason}
	}
	if len(f) < MinFields {
		return bad(strconv.Itoa(len(f)) + " fields, need at least " + strconv.Itoa(MinFields))
	}

	rec := RawRecord{
		Line:        line,
		Text:        text,
		Sequence:    f[4],
		Left:        f[7],
		Strand:      f[8],
		RepeatName:  f[9],
		RepeatClass: f[10],
	}

	var (
		ok  bool
		err error
	)
	if rec.Score, ok = parseFinite(f[0]); !ok {
		return bad("score")
	}
	if rec.Divergence, ok = parseFinite(f[1]); !ok {
		return bad("divergence")
	}
	if rec.Deletion, ok = parseFinite(f[2]); !ok {
		return bad("deletion")
	}
	if rec.Insertion, ok = parseFinite(f[3]); !ok {
		return bad("insertion")
	}
	if rec.Begin, err = strconv.Atoi(f[5]); err != nil {
		return bad("begin")
	}
	if rec.End, err = strconv.Atoi(f[6]); err != nil {
		return bad("end")
	}

	// Trailing columns: repeat begin, end, (left), then the hit id and an
	// optional "*".
	rest := f[MinFields:]
	if n := len(rest); n > 0 && rest[n-1] == "*" {
		rec.Overlapped = true
		rest = rest[:n-1]
	}
	if len(rest) >= 4 {
		rec.ID = rest[3]
	}

	return rec, nil
}
