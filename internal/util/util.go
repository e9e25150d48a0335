package util

import (
	"errors"
	"fmt"
	"os"
)

// ErrInputNotFound marks a missing report, index or baseline file.
var ErrInputNotFound = errors.New("input not found")

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// RequireFiles checks every non-empty path before any processing starts.
// The first missing file is returned wrapped in ErrInputNotFound.
func RequireFiles(paths ...string) error {
	for _, p := range paths {
		if p == "" || p == "-" {
			continue
		}
		if !FileExists(p) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, p)
		}
	}
	return nil
}
