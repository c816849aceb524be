// Package bed reads restricting regions from BED files and writes the
// coordinate annotation of edited sequences.
//
// Regions are BED3 or wider: chrom, 0-based start, end. Extra columns, blank
// lines and "#", "track" and "browser" lines are ignored. Regions of one
// chrom may appear in any order and may overlap; interval.Restrict merges them.
//
// Annotation records carry nine columns:
//
//	chrom  origStart  origEnd  kind  0  .  newStart  newEnd  color
//
// chrom names the output sequence (a fragment ID after a break) and the
// color is "255,0,0" for edits and "255,255,255" for good rows.
package bed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/logsdon-lab/misasim/fileio"
	"github.com/logsdon-lab/misasim/interval"
	"github.com/logsdon-lab/misasim/track"
)

// ErrMalformed indicates a region line that cannot be parsed.
var ErrMalformed = errors.New("bed: malformed record")

// Regions maps a sequence ID to its restricting intervals, in file order.
type Regions map[string][]interval.Interval

// ReadRegions parses BED3+ records from r.
func ReadRegions(r io.Reader) (Regions, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	out := make(Regions)
	for n := 1; sc.Scan(); n++ {
		line := sc.Bytes()
		if skip(line) {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("bed: line %d: %d columns, want at least 3: %w", n, len(fields), ErrMalformed)
		}
		start, err := strconv.Atoi(string(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("bed: line %d: start %q: %w", n, fields[1], ErrMalformed)
		}
		end, err := strconv.Atoi(string(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("bed: line %d: end %q: %w", n, fields[2], ErrMalformed)
		}
		iv := interval.Interval{Start: start, End: end}
		if !iv.Valid() {
			return nil, fmt.Errorf("bed: line %d: region %s: %w", n, iv, ErrMalformed)
		}
		chrom := string(fields[0])
		out[chrom] = append(out[chrom], iv)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("bed: %w", err)
	}
	return out, nil
}

// ReadRegionsFile parses path ("-" for stdin, gzip detected).
func ReadRegionsFile(path string) (Regions, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	regs, err := ReadRegions(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return regs, nil
}

func skip(line []byte) bool {
	line = bytes.TrimSpace(line)
	return len(line) == 0 ||
		line[0] == '#' ||
		bytes.HasPrefix(line, []byte("track")) ||
		bytes.HasPrefix(line, []byte("browser"))
}

// Writer emits annotation rows as tab-separated records.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteRow emits one record.
func (w *Writer) WriteRow(r track.Row) error {
	_, err := fmt.Fprintf(w.w, "%s\t%d\t%d\t%s\t0\t.\t%d\t%d\t%s\n",
		r.SeqID, r.OrigStart, r.OrigEnd, r.Kind, r.NewStart, r.NewEnd, r.Kind.Color())
	return err
}

// WriteResult emits every row of every fragment of res, in order.
func (w *Writer) WriteResult(res track.Result) error {
	for _, r := range res.Rows() {
		if err := w.WriteRow(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }
