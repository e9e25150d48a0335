// Loader for per-sequence genome lengths.

package genome

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yumyai/rmgtf/internal/util"
	"github.com/yumyai/rmgtf/pkg/feature"
)

var ErrEmptyIndex = errors.New("genome index has no sequences")

// Load reads a genome index from path. See Read for the format.
func Load(path string) (feature.GenomeIndex, error) {
	rc, err := util.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	idx, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Read parses a whitespace-separated table whose first two columns are the
// sequence name and its length. Extra columns are ignored, so a samtools
// .fai file works as is. Blank lines and lines starting with '#' are skipped.
func Read(r io.Reader) (feature.GenomeIndex, error) {
	idx := make(feature.GenomeIndex)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, fmt.Errorf("line %d: want name and length, got %q", ln, line)
		}
		length, err := strconv.ParseInt(f[1], 10, 64)
		if err != nil || length <= 0 {
			return nil, fmt.Errorf("line %d: bad length %q for %s", ln, f[1], f[0])
		}
		if _, dup := idx[f[0]]; dup {
			return nil, fmt.Errorf("line %d: duplicate sequence %s", ln, f[0])
		}
		idx[f[0]] = length
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, ErrEmptyIndex
	}
	return idx, nil
}
