package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
)

// Open returns a reader for path. "-" reads stdin and a ".gz" suffix is
// decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return fh, nil
	}
	zr, err := pgzip.NewReader(bufio.NewReader(fh))
	if err != nil {
		fh.Close()
		return nil, err
	}
	return &gzReadCloser{Reader: zr, zr: zr, fh: fh}, nil
}

type gzReadCloser struct {
	io.Reader
	zr *pgzip.Reader
	fh *os.File
}

func (g *gzReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.fh.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// AtomicFile collects output in a temporary file next to the destination and
// only moves it into place on Commit. Abort (or a failed Commit) leaves no
// file at the destination, so a failed run never emits partial output.
type AtomicFile struct {
	dest string
	tmp  *os.File
	zw   *pgzip.Writer
	w    io.Writer
	done bool
}

// CreateAtomic opens a staging file for dest. A ".gz" destination is
// compressed.
func CreateAtomic(dest string) (*AtomicFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, err
	}
	af := &AtomicFile{dest: dest, tmp: tmp, w: tmp}
	if strings.HasSuffix(dest, ".gz") {
		af.zw = pgzip.NewWriter(tmp)
		af.w = af.zw
	}
	return af, nil
}

func (af *AtomicFile) Write(p []byte) (int, error) {
	return af.w.Write(p)
}

// TempPath is the staging path, for writers that need a filename rather than
// an io.Writer.
func (af *AtomicFile) TempPath() string {
	return af.tmp.Name()
}

// Commit flushes and renames the staging file onto the destination.
func (af *AtomicFile) Commit() error {
	if af.done {
		return nil
	}
	af.done = true
	if af.zw != nil {
		if err := af.zw.Close(); err != nil {
			af.cleanup()
			return err
		}
	}
	if err := af.tmp.Close(); err != nil {
		os.Remove(af.tmp.Name())
		return err
	}
	if err := os.Rename(af.tmp.Name(), af.dest); err != nil {
		os.Remove(af.tmp.Name())
		return err
	}
	return nil
}

// Abort discards the staging file. Safe to call after Commit.
func (af *AtomicFile) Abort() {
	if af.done {
		return
	}
	af.done = true
	af.cleanup()
}

func (af *AtomicFile) cleanup() {
	if af.zw != nil {
		af.zw.Close()
	}
	af.tmp.Close()
	os.Remove(af.tmp.Name())
}
