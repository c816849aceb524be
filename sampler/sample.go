package sampler

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/logsdon-lab/misasim/interval"
)

// Sentinel errors for placement.
var (
	// ErrInsufficientRegionSpace indicates no residual interval can host the drawn length.
	ErrInsufficientRegionSpace = errors.New("sampler: insufficient region space")

	// ErrInvalidLengthSpec indicates a zero, inverted, or oversized length request.
	ErrInvalidLengthSpec = errors.New("sampler: invalid length spec")
)

// Residual returns allowance minus every reserved interval.
func Residual(allowance interval.Set, reserved []interval.Interval) interval.Set {
	return allowance.Subtract(reserved...)
}

// Sample draws one span of length spec.Draw(rng) inside allowance, avoiding
// reserved. The start is uniform over every valid start position of every
// residual interval wide enough to host the span.
//
// Draw order on rng: length (ranges only), then start.
func Sample(allowance interval.Set, reserved []interval.Interval, spec LengthSpec, rng *rand.Rand) (interval.Interval, error) {
	if spec.Min <= 0 || spec.Max < spec.Min {
		return interval.Interval{}, fmt.Errorf("sampler: length %s: %w", spec, ErrInvalidLengthSpec)
	}
	l := spec.Draw(rng)
	start, err := drawStart(Residual(allowance, reserved), l, rng)
	if err != nil {
		return interval.Interval{}, err
	}
	return interval.Interval{Start: start, End: start + l}, nil
}

// SampleBreak draws a split point p with 1 <= p <= seqLen-1. Candidates are
// points whose base at p is free, plus the right edge of every allowance
// member that no reservation covers. It returns the zero-width span [p,p)
// and the reservation [p,p+1).
func SampleBreak(allowance interval.Set, reserved []interval.Interval, seqLen int, rng *rand.Rand) (span, reservation interval.Interval, err error) {
	res := Residual(allowance, reserved).Clip(1, seqLen)
	edges := breakEdges(allowance, reserved, seqLen)
	width := res.Width()
	if width+len(edges) == 0 {
		return interval.Interval{}, interval.Interval{}, fmt.Errorf("sampler: no room for a break: %w", ErrInsufficientRegionSpace)
	}

	var p int
	if r := rng.Intn(width + len(edges)); r < width {
		if p, err = pickStart(res, 1, r); err != nil {
			return interval.Interval{}, interval.Interval{}, err
		}
	} else {
		p = edges[r-width]
	}
	return interval.Interval{Start: p, End: p}, interval.Interval{Start: p, End: p + 1}, nil
}

// breakEdges returns the right edges of allowance usable as split points.
func breakEdges(allowance interval.Set, reserved []interval.Interval, seqLen int) []int {
	var out []int
next:
	for _, m := range allowance {
		p := m.End
		if m.Empty() || p < 1 || p > seqLen-1 {
			continue
		}
		for _, r := range reserved {
			if r.Start <= p && p < r.End {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// DrawDuplications returns d uniform in [1, maxDup]; maxDup < 1 is treated as 1.
func DrawDuplications(rng *rand.Rand, maxDup int) int {
	if maxDup <= 1 {
		return 1
	}
	return 1 + rng.Intn(maxDup)
}

// drawStart picks a start uniformly among all positions s in res where
// [s, s+l) fits inside a single member.
func drawStart(res interval.Set, l int, rng *rand.Rand) (int, error) {
	total := 0
	for _, iv := range res {
		if n := iv.Len() - l + 1; n > 0 {
			total += n
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("sampler: no room for length %d in %d residual bases: %w", l, res.Width(), ErrInsufficientRegionSpace)
	}

	return pickStart(res, l, rng.Intn(total))
}

// pickStart maps r to the r-th valid start of a length-l span in res.
func pickStart(res interval.Set, l, r int) (int, error) {
	for _, iv := range res {
		n := iv.Len() - l + 1
		if n <= 0 {
			continue
		}
		if r < n {
			return iv.Start + r, nil
		}
		r -= n
	}
	// Unreachable: r < total by construction.
	return 0, fmt.Errorf("sampler: start draw out of range: %w", ErrInsufficientRegionSpace)
}
