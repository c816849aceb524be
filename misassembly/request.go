package misassembly

import (
	"fmt"

	"github.com/logsdon-lab/misasim/edit"
	"github.com/logsdon-lab/misasim/sampler"
	"github.com/logsdon-lab/misasim/track"
)

// Request asks for Count edits of one Kind on every targeted sequence.
type Request struct {
	Kind  edit.Kind
	Count int
	// Length is the span length. For Collapse it bounds the repeat unit
	// width instead. Ignored by Break.
	Length sampler.LengthSpec
	// MaxDuplications bounds d for FalseDuplication; values below 1 mean 1.
	MaxDuplications int
	// KeepRepeats is k', the units a Collapse keeps (clamped into [1, k-1]).
	KeepRepeats int
}

// Validate checks what can be checked without a sequence.
func (r Request) Validate() error {
	if !r.Kind.IsEdit() {
		return fmt.Errorf("misassembly: kind %s is not an edit: %w", r.Kind, ErrBadRequest)
	}
	if r.Count < 0 {
		return fmt.Errorf("misassembly: %s count %d: %w", r.Kind, r.Count, ErrBadRequest)
	}
	return nil
}

// usesLength reports whether Length must be valid for the request to run.
func (r Request) usesLength() bool { return r.Kind != edit.Break && r.Count > 0 }

// dupKey identifies requests sharing a seed-offset counter.
type dupKey struct {
	kind   edit.Kind
	length sampler.LengthSpec
}

// dupOrdinals returns, for every request, how many earlier requests share
// its {Kind, Length}.
func dupOrdinals(batch []Request) []int {
	seen := make(map[dupKey]int, len(batch))
	out := make([]int, len(batch))
	for i, r := range batch {
		k := dupKey{r.Kind, r.Length}
		out[i] = seen[k]
		seen[k]++
	}
	return out
}

// SequenceResult is the outcome for one input sequence.
type SequenceResult struct {
	SeqID string
	// Result holds the edited fragment(s). An untouched or aborted sequence
	// yields a single fragment with the original bases and one good row.
	Result track.Result
	// Spans are the committed placements, in commit order.
	Spans []edit.Span
	// Err is set when the whole sequence was aborted.
	Err error
}

// Report gathers every sequence result, in input order, and every failure.
type Report struct {
	Results []SequenceResult
	// Failures lists every *EditError raised, sequence aborts included,
	// grouped by sequence in input order.
	Failures []error
}

// Committed returns the total number of committed spans.
func (r *Report) Committed() int {
	n := 0
	for _, sr := range r.Results {
		n += len(sr.Spans)
	}
	return n
}
