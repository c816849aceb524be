// Package repeat finds exact tandem repeats: maximal runs of two or more
// verbatim copies of a primitive unit. Collapse edits are placed on them.
package repeat

import (
	"bytes"

	"github.com/logsdon-lab/misasim/interval"
)

// Repeat is Count adjacent copies of a Unit-wide pattern starting at Start.
type Repeat struct {
	Start int
	Unit  int
	Count int
}

// End returns the position right after the last copy.
func (r Repeat) End() int { return r.Start + r.Unit*r.Count }

// Interval returns [Start, End).
func (r Repeat) Interval() interval.Interval {
	return interval.Interval{Start: r.Start, End: r.End()}
}

// Find returns every maximal tandem repeat in seq whose unit width lies in
// [minUnit, maxUnit]. Units containing 'N'/'n' or that are themselves
// repeats of a shorter unit are skipped. Results are ordered by unit width,
// then start.
//
// Complexity: O(n·(maxUnit-minUnit+1)).
func Find(seq []byte, minUnit, maxUnit int) []Repeat {
	if minUnit < 1 {
		minUnit = 1
	}
	if maxUnit > len(seq)/2 {
		maxUnit = len(seq) / 2
	}

	var out []Repeat
	for u := minUnit; u <= maxUnit; u++ {
		i := 0
		for i+u < len(seq) {
			if seq[i] != seq[i+u] {
				i++
				continue
			}
			// seq[i:j+u] has period u.
			j := i
			for j+u < len(seq) && seq[j] == seq[j+u] {
				j++
			}
			count := (j - i + u) / u
			if count >= 2 && usable(seq[i:i+u]) {
				out = append(out, Repeat{Start: i, Unit: u, Count: count})
			}
			i = j + 1
		}
	}
	return out
}

// Within trims r to the whole copies lying inside one member of set. It
// returns false when no member keeps at least two copies.
func (r Repeat) Within(set interval.Set) (Repeat, bool) {
	best := Repeat{}
	for _, m := range set {
		lo := r.Start
		if m.Start > lo {
			// Align to the next copy boundary.
			lo += (m.Start - lo + r.Unit - 1) / r.Unit * r.Unit
		}
		hi := r.End()
		if m.End < hi {
			hi = m.End
		}
		if n := (hi - lo) / r.Unit; n >= 2 && n > best.Count {
			best = Repeat{Start: lo, Unit: r.Unit, Count: n}
		}
	}
	return best, best.Count >= 2
}

// usable rejects gap units and units that are not primitive.
func usable(unit []byte) bool {
	if bytes.IndexAny(unit, "Nn") >= 0 {
		return false
	}
	u := len(unit)
	for p := 1; p < u; p++ {
		if u%p != 0 {
			continue
		}
		if bytes.Equal(unit[p:], unit[:u-p]) {
			return false
		}
	}
	return true
}
