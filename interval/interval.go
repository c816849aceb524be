package interval

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRegion indicates a malformed region, or a restriction that leaves
// nothing of the sequence once clipped to its bounds.
var ErrInvalidRegion = errors.New("interval: invalid region")

// Interval is a half-open [Start, End) range in one coordinate space.
type Interval struct {
	Start int
	End   int
}

// Len returns End - Start.
func (iv Interval) Len() int { return iv.End - iv.Start }

// Empty reports whether the interval is zero width.
func (iv Interval) Empty() bool { return iv.Start == iv.End }

// Valid reports whether 0 <= Start <= End.
func (iv Interval) Valid() bool { return iv.Start >= 0 && iv.Start <= iv.End }

// String renders the interval as "[start,end)".
func (iv Interval) String() string { return fmt.Sprintf("[%d,%d)", iv.Start, iv.End) }

// Overlaps reports whether a and b share at least one position.
// Zero-width intervals never overlap anything.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Set is a sorted collection of disjoint, non-touching intervals.
// The zero value is an empty set.
type Set []Interval

// Restrict returns the Allowance for a sequence of length seqLen.
//
// With no regions the Allowance is the whole sequence. Otherwise every region
// is clipped to [0, seqLen), regions falling entirely outside are dropped, and
// the rest are sorted and merged. If regions were supplied but none survives,
// ErrInvalidRegion is returned.
func Restrict(seqLen int, regions []Interval) (Set, error) {
	if seqLen < 0 {
		return nil, fmt.Errorf("interval: negative sequence length %d: %w", seqLen, ErrInvalidRegion)
	}
	if len(regions) == 0 {
		if seqLen == 0 {
			return Set{}, nil
		}
		return Set{{Start: 0, End: seqLen}}, nil
	}

	clipped := make([]Interval, 0, len(regions))
	for _, r := range regions {
		if r.Start > r.End {
			return nil, fmt.Errorf("interval: region %s: %w", r, ErrInvalidRegion)
		}
		r.Start = max(r.Start, 0)
		if r.End > seqLen {
			r.End = seqLen
		}
		if r.Start >= r.End {
			// Outside the sequence, or zero width: hosts nothing.
			continue
		}
		clipped = append(clipped, r)
	}
	if len(clipped) == 0 {
		return nil, fmt.Errorf("interval: no region inside [0,%d): %w", seqLen, ErrInvalidRegion)
	}
	return Normalize(clipped), nil
}

// Normalize sorts ivs and merges overlapping or touching members, dropping
// zero-width ones. The input slice is not modified.
func Normalize(ivs []Interval) Set {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Len() > 0 {
			sorted = append(sorted, iv)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := make(Set, 0, len(sorted))
	for _, iv := range sorted {
		if n := len(out); n > 0 && iv.Start <= out[n-1].End {
			if iv.End > out[n-1].End {
				out[n-1].End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Width returns the number of positions covered by the set.
func (s Set) Width() int {
	w := 0
	for _, iv := range s {
		w += iv.Len()
	}
	return w
}

// Contains reports whether iv lies entirely inside a single member of s.
// A zero-width iv is contained when its position lies within [Start, End] of a member.
func (s Set) Contains(iv Interval) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].End >= iv.End })
	if i == len(s) {
		return false
	}
	return s[i].Start <= iv.Start && iv.End <= s[i].End
}

// Clip returns the part of s inside [lo, hi).
func (s Set) Clip(lo, hi int) Set {
	out := make(Set, 0, len(s))
	for _, iv := range s {
		if iv.Start < lo {
			iv.Start = lo
		}
		if iv.End > hi {
			iv.End = hi
		}
		if iv.Start < iv.End {
			out = append(out, iv)
		}
	}
	return out
}

// Subtract returns s minus every interval in others. Members partly covered
// are trimmed, members with a hole in the middle are split in two.
// Zero-width intervals remove nothing.
func (s Set) Subtract(others ...Interval) Set {
	if len(others) == 0 {
		return append(Set(nil), s...)
	}
	cut := Normalize(others)

	out := make(Set, 0, len(s)+len(cut))
	j := 0
	for _, iv := range s {
		// Skip cuts ending before this member.
		for j < len(cut) && cut[j].End <= iv.Start {
			j++
		}
		cur := iv.Start
		for k := j; k < len(cut) && cut[k].Start < iv.End; k++ {
			if cut[k].Start > cur {
				out = append(out, Interval{Start: cur, End: cut[k].Start})
			}
			if cut[k].End > cur {
				cur = cut[k].End
			}
		}
		if cur < iv.End {
			out = append(out, Interval{Start: cur, End: iv.End})
		}
	}
	return out
}
