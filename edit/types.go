package edit

import (
	"errors"

	"github.com/logsdon-lab/misasim/interval"
)

// Sentinel errors for edit transforms.
var (
	// ErrInvalidAlphabet indicates a symbol outside {A,C,G,T,N,a,c,g,t,n} in an inversion.
	ErrInvalidAlphabet = errors.New("edit: symbol has no complement")

	// ErrNonPeriodicSpan indicates a collapse span that is not whole verbatim repeat units.
	ErrNonPeriodicSpan = errors.New("edit: span is not periodic in its unit")

	// ErrUnknownKind indicates a kind outside the closed set.
	ErrUnknownKind = errors.New("edit: unknown kind")
)

// Params carries the per-span values drawn or supplied for a kind.
// Fields that do not apply to a kind are zero.
type Params struct {
	// Duplications is d, the number of extra copies for FalseDuplication.
	Duplications int
	// Unit is the tandem repeat unit width for Collapse.
	Unit int
	// Keep is k', the number of repeat units Collapse leaves in place.
	Keep int
}

// Span is a committed edit placement on one sequence.
type Span struct {
	// SeqID names the sequence the span belongs to.
	SeqID string
	// Interval is the edited range in original coordinates. Break spans are zero width.
	Interval interval.Interval
	// Reserved is the range withheld from later placements. It equals Interval
	// except for Break, which reserves the base right after the split point.
	Reserved interval.Interval
	// Kind is the edit applied to Interval.
	Kind Kind
	// Params holds kind-specific values.
	Params Params
	// DrawSeed is the seed of the generator that placed this span.
	DrawSeed int64
}
