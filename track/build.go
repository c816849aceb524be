package track

import (
	"fmt"
	"sort"

	"github.com/logsdon-lab/misasim/edit"
)

// Build applies spans to seq in one left-to-right pass and returns the edited
// fragment(s) with their annotation rows.
//
// Spans are ordered by original start; at equal starts zero-width spans come
// first, otherwise declaration order is kept. seq and spans are not modified.
func Build(seq Sequence, spans []edit.Span) (Result, error) {
	ordered, err := orderSpans(seq, spans)
	if err != nil {
		return Result{}, err
	}

	n := seq.Len()
	buf := make([]byte, 0, newCapacity(n, ordered))
	rows := make([]Row, 0, 2*len(ordered)+1)
	oc, nc := 0, 0

	for _, sp := range ordered {
		iv := sp.Interval
		if iv.Start > oc {
			buf = append(buf, seq.Bases[oc:iv.Start]...)
			rows = append(rows, Row{
				SeqID:     seq.ID,
				OrigStart: oc,
				OrigEnd:   iv.Start,
				Kind:      edit.Good,
				NewStart:  nc,
				NewEnd:    nc + (iv.Start - oc),
			})
			nc += iv.Start - oc
		}

		repl, err := edit.Apply(sp.Kind, seq.Bases[iv.Start:iv.End], sp.Params)
		if err != nil {
			return Result{}, fmt.Errorf("track: %s %s %s: %w", seq.ID, sp.Kind, iv, err)
		}
		buf = append(buf, repl...)
		rows = append(rows, Row{
			SeqID:     seq.ID,
			OrigStart: iv.Start,
			OrigEnd:   iv.End,
			Kind:      sp.Kind,
			NewStart:  nc,
			NewEnd:    nc + len(repl),
		})
		oc = iv.End
		nc += len(repl)
	}
	if oc < n {
		buf = append(buf, seq.Bases[oc:]...)
		rows = append(rows, Row{
			SeqID:     seq.ID,
			OrigStart: oc,
			OrigEnd:   n,
			Kind:      edit.Good,
			NewStart:  nc,
			NewEnd:    nc + (n - oc),
		})
	}

	if err := Validate(rows, 0, n, len(buf)); err != nil {
		return Result{}, fmt.Errorf("track: %s: %w", seq.ID, err)
	}
	return split(seq.ID, buf, rows)
}

// orderSpans checks every span against seq and returns them sorted.
func orderSpans(seq Sequence, spans []edit.Span) ([]edit.Span, error) {
	n := seq.Len()
	ordered := make([]edit.Span, len(spans))
	copy(ordered, spans)

	for _, sp := range ordered {
		iv := sp.Interval
		switch {
		case !sp.Kind.IsEdit():
			return nil, fmt.Errorf("track: %s kind %s: %w", seq.ID, sp.Kind, ErrInvalidSpan)
		case !iv.Valid() || iv.End > n:
			return nil, fmt.Errorf("track: %s %s %s outside [0,%d): %w", seq.ID, sp.Kind, iv, n, ErrInvalidSpan)
		case sp.Kind == edit.Break && !iv.Empty():
			return nil, fmt.Errorf("track: %s break %s must be zero width: %w", seq.ID, iv, ErrInvalidSpan)
		case sp.Kind != edit.Break && iv.Empty():
			return nil, fmt.Errorf("track: %s %s %s is empty: %w", seq.ID, sp.Kind, iv, ErrInvalidSpan)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Interval, ordered[j].Interval
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Empty() && !b.Empty()
	})

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1].Interval, ordered[i].Interval
		if cur.Start < prev.End || (prev.Empty() && cur.Empty() && prev.Start == cur.Start) {
			return nil, fmt.Errorf("track: %s %s %s and %s %s: %w",
				seq.ID, ordered[i-1].Kind, prev, ordered[i].Kind, cur, ErrOverlappingSpans)
		}
	}
	return ordered, nil
}

// newCapacity returns the exact length of the edited buffer.
func newCapacity(n int, spans []edit.Span) int {
	for _, sp := range spans {
		w := sp.Interval.Len()
		n += edit.NewWidth(sp.Kind, w, sp.Params) - w
	}
	if n < 0 {
		return 0
	}
	return n
}

// split cuts buf and rows at every break row. The break row closes the
// fragment on its left. Unsplit results keep the source ID.
func split(seqID string, buf []byte, rows []Row) (Result, error) {
	breaks := 0
	for _, r := range rows {
		if r.Kind == edit.Break {
			breaks++
		}
	}
	if breaks == 0 {
		origEnd := 0
		if len(rows) > 0 {
			origEnd = rows[len(rows)-1].OrigEnd
		}
		return Result{
			SeqID:     seqID,
			Fragments: []Fragment{{ID: seqID, Bases: buf, Rows: rows, OrigStart: 0, OrigEnd: origEnd}},
		}, nil
	}

	res := Result{SeqID: seqID, Fragments: make([]Fragment, 0, breaks+1)}
	first := 0
	for i := 0; i <= len(rows); i++ {
		if i < len(rows) && rows[i].Kind != edit.Break {
			continue
		}
		last := i
		if i == len(rows) {
			last = i - 1
		}
		if first > last {
			// Trailing break at the very end leaves nothing behind it.
			break
		}
		frag := cut(seqID, buf, rows[first:last+1])
		if err := Validate(frag.Rows, frag.OrigStart, frag.OrigEnd, len(frag.Bases)); err != nil {
			return Result{}, fmt.Errorf("track: fragment %s: %w", frag.ID, err)
		}
		res.Fragments = append(res.Fragments, frag)
		first = i + 1
	}
	return res, nil
}

// cut builds one fragment from a contiguous run of rows.
func cut(seqID string, buf []byte, rows []Row) Fragment {
	lo, hi := rows[0].NewStart, rows[len(rows)-1].NewEnd
	origStart, origEnd := rows[0].OrigStart, rows[len(rows)-1].OrigEnd
	id := FragmentID(seqID, origStart, origEnd)

	out := make([]Row, len(rows))
	for i, r := range rows {
		r.SeqID = id
		r.NewStart -= lo
		r.NewEnd -= lo
		out[i] = r
	}
	bases := make([]byte, hi-lo)
	copy(bases, buf[lo:hi])
	return Fragment{ID: id, Bases: bases, Rows: out, OrigStart: origStart, OrigEnd: origEnd}
}

// FragmentID names a fragment by its original range, 1-based and closed:
// "chr1:1-16" for original [0,16).
func FragmentID(seqID string, origStart, origEnd int) string {
	return fmt.Sprintf("%s:%d-%d", seqID, origStart+1, origEnd)
}
