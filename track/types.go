package track

import (
	"errors"
	"fmt"

	"github.com/logsdon-lab/misasim/edit"
)

// Sentinel errors for track building.
var (
	// ErrInvalidSpan indicates a span outside [0, len), an empty non-break span, or an unknown kind.
	ErrInvalidSpan = errors.New("track: invalid span")

	// ErrOverlappingSpans indicates two spans claim the same original base.
	ErrOverlappingSpans = errors.New("track: overlapping spans")

	// ErrBrokenTiling indicates rows that leave a gap or overlap in either coordinate space.
	ErrBrokenTiling = errors.New("track: rows do not tile the sequence")
)

// Sequence is a named byte buffer. Bases is read-only to this package.
type Sequence struct {
	ID    string
	Bases []byte
}

// Len returns len(Bases).
func (s Sequence) Len() int { return len(s.Bases) }

// Row maps one original interval to one new interval.
type Row struct {
	// SeqID is the name of the sequence the new coordinates refer to.
	SeqID     string
	OrigStart int
	OrigEnd   int
	Kind      edit.Kind
	NewStart  int
	NewEnd    int
}

// OrigLen returns the original width of the row.
func (r Row) OrigLen() int { return r.OrigEnd - r.OrigStart }

// NewLen returns the new width of the row.
func (r Row) NewLen() int { return r.NewEnd - r.NewStart }

// String renders the row as "id orig[a,b) kind new[c,d)".
func (r Row) String() string {
	return fmt.Sprintf("%s orig[%d,%d) %s new[%d,%d)", r.SeqID, r.OrigStart, r.OrigEnd, r.Kind, r.NewStart, r.NewEnd)
}

// Fragment is one output sequence with its annotation.
type Fragment struct {
	// ID names the output sequence. It equals the source ID unless the source was split.
	ID string
	// Bases is the edited sequence.
	Bases []byte
	// Rows tile [0, len(Bases)) in new coordinates and [OrigStart, OrigEnd) in original ones.
	Rows []Row
	// OrigStart and OrigEnd delimit the original range this fragment came from.
	OrigStart int
	OrigEnd   int
}

// Result is the outcome of one Build: a single sequence, or a split into
// several fragments when the spans included breaks.
type Result struct {
	// SeqID is the source sequence name.
	SeqID     string
	Fragments []Fragment
}

// IsSplit reports whether the source was broken into more than one fragment.
func (r Result) IsSplit() bool { return len(r.Fragments) > 1 }

// Single returns the only fragment of an unsplit result.
func (r Result) Single() (Fragment, bool) {
	if len(r.Fragments) != 1 {
		return Fragment{}, false
	}
	return r.Fragments[0], true
}

// Rows returns every row of every fragment in order.
func (r Result) Rows() []Row {
	var out []Row
	for _, f := range r.Fragments {
		out = append(out, f.Rows...)
	}
	return out
}

// NewLen returns the summed length of all fragments.
func (r Result) NewLen() int {
	n := 0
	for _, f := range r.Fragments {
		n += len(f.Bases)
	}
	return n
}
