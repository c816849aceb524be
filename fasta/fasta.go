// Package fasta reads and writes FASTA records as track.Sequence values on
// top of github.com/TuftsBCB/io/fasta.
//
// The record ID is the first whitespace-separated word of the header line.
// Sequence lines are concatenated verbatim (no case folding). Compressed
// input is handled by fileio.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	tfasta "github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"

	"github.com/logsdon-lab/misasim/fileio"
	"github.com/logsdon-lab/misasim/track"
)

// ErrMalformed indicates input that is not FASTA.
var ErrMalformed = errors.New("fasta: malformed input")

// DefaultLineWidth is the number of bases per output line.
const DefaultLineWidth = 80

// ReadAll reads every record of r in order. Duplicate IDs are rejected.
func ReadAll(r io.Reader) ([]track.Sequence, error) {
	br := bufio.NewReader(r)
	if err := expectHeader(br); err != nil {
		return nil, err
	}

	fr := tfasta.NewReader(br)
	fr.TrustSequences = true
	recs, err := fr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("fasta: %v: %w", err, ErrMalformed)
	}

	seen := make(map[string]bool, len(recs))
	out := make([]track.Sequence, 0, len(recs))
	for i, rec := range recs {
		fields := strings.Fields(rec.Name)
		if len(fields) == 0 {
			return nil, fmt.Errorf("fasta: record %d: empty header: %w", i+1, ErrMalformed)
		}
		id := fields[0]
		if seen[id] {
			return nil, fmt.Errorf("fasta: duplicate record %q: %w", id, ErrMalformed)
		}
		seen[id] = true
		out = append(out, track.Sequence{ID: id, Bases: bases(rec.Residues)})
	}
	return out, nil
}

// expectHeader fails unless the first non-blank byte of br is '>'.
// Empty input is accepted.
func expectHeader(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fasta: %w", err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '>':
			return br.UnreadByte()
		default:
			return fmt.Errorf("fasta: sequence before first header: %w", ErrMalformed)
		}
	}
}

// bases copies residues out of the library's type, dropping stray
// whitespace such as the '\r' of CRLF input.
func bases(rs []seq.Residue) []byte {
	if len(rs) == 0 {
		return nil
	}
	out := make([]byte, 0, len(rs))
	for _, r := range rs {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		}
		out = append(out, byte(r))
	}
	return out
}

// ReadFile reads every record of path ("-" for stdin, gzip/BGZF detected).
func ReadFile(path string) ([]track.Sequence, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	seqs, err := ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seqs, nil
}

// Writer emits records wrapped to a fixed line width.
type Writer struct {
	w *tfasta.Writer
}

// NewWriter returns a Writer with DefaultLineWidth.
func NewWriter(w io.Writer) *Writer {
	return NewWriterWidth(w, DefaultLineWidth)
}

// NewWriterWidth returns a Writer wrapping at width bases per line.
// width <= 0 disables wrapping.
func NewWriterWidth(w io.Writer, width int) *Writer {
	fw := tfasta.NewWriter(w)
	fw.Columns = max(width, 0)
	fw.Asterisk = false
	return &Writer{w: fw}
}

// Write emits one record.
func (w *Writer) Write(id string, b []byte) error {
	rs := make([]seq.Residue, len(b))
	for i, c := range b {
		rs[i] = seq.Residue(c)
	}
	return w.w.Write(seq.Sequence{Name: id, Residues: rs})
}

// WriteResult emits every fragment of res.
func (w *Writer) WriteResult(res track.Result) error {
	for _, f := range res.Fragments {
		if err := w.Write(f.ID, f.Bases); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }
