// Package fileio opens sequence and annotation files for reading and writing.
// "-" means stdin or stdout. Compressed input is detected from its magic
// bytes, so plain gzip and BGZF (multi-member gzip) both work regardless of
// the file name. Output paths ending in ".gz" are gzip-compressed.
package fileio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Stdio is the path naming stdin or stdout.
const Stdio = "-"

var gzipMagic = []byte{0x1f, 0x8b}

// multiCloser closes every closer in order and reports the first error.
type multiCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader over path, decompressing gzip/BGZF transparently.
func Open(path string) (io.ReadCloser, error) {
	var (
		f      io.Reader
		closer io.Closer
	)
	if path == Stdio {
		f, closer = os.Stdin, io.NopCloser(nil)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("fileio: %w", err)
		}
		f, closer = fh, fh
	}
	rc, err := NewReader(f)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("fileio: %s: %w", path, err)
	}
	return &multiCloser{Reader: rc, closers: []io.Closer{rc, closer}}, nil
}

// NewReader wraps r, decompressing when the stream starts with the gzip magic.
// Closing the result does not close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !bytes.Equal(head, gzipMagic) {
		return io.NopCloser(br), nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return gz, nil
}

// Create returns a writer to path. Closing it flushes any compression and
// closes the file; stdout is flushed but never closed.
func Create(path string) (io.WriteCloser, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	if path == Stdio {
		w, closer = os.Stdout, io.NopCloser(nil)
	} else {
		fh, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("fileio: %w", err)
		}
		w, closer = fh, fh
	}

	bw := bufio.NewWriter(w)
	closers := []io.Closer{flusher{bw}, closer}
	out := io.Writer(bw)
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(bw)
		out = gz
		closers = append([]io.Closer{gz}, closers...)
	}
	return &multiCloser{Writer: out, closers: closers}, nil
}

// flusher adapts a bufio.Writer to io.Closer.
type flusher struct{ w *bufio.Writer }

func (f flusher) Close() error { return f.w.Flush() }
