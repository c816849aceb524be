package sampler

import (
	"fmt"
	"math/rand"
)

// LengthSpec is a span length: fixed when Min == Max, otherwise a uniform
// integer draw over [Min, Max].
type LengthSpec struct {
	Min int
	Max int
}

// Fixed returns a LengthSpec of exactly n.
func Fixed(n int) LengthSpec { return LengthSpec{Min: n, Max: n} }

// Range returns a LengthSpec drawn uniformly over [lo, hi].
func Range(lo, hi int) LengthSpec { return LengthSpec{Min: lo, Max: hi} }

// IsFixed reports whether no draw is needed.
func (l LengthSpec) IsFixed() bool { return l.Min == l.Max }

// String renders "n" or "lo-hi".
func (l LengthSpec) String() string {
	if l.IsFixed() {
		return fmt.Sprintf("%d", l.Min)
	}
	return fmt.Sprintf("%d-%d", l.Min, l.Max)
}

// Validate rejects zero, inverted, or longer-than-sequence specs.
func (l LengthSpec) Validate(seqLen int) error {
	switch {
	case l.Min <= 0:
		return fmt.Errorf("sampler: length %s must be positive: %w", l, ErrInvalidLengthSpec)
	case l.Max < l.Min:
		return fmt.Errorf("sampler: length %s has max below min: %w", l, ErrInvalidLengthSpec)
	case l.Max > seqLen:
		return fmt.Errorf("sampler: length %s exceeds sequence length %d: %w", l, seqLen, ErrInvalidLengthSpec)
	}
	return nil
}

// ValidateUnit checks l as a tandem repeat unit width range. Only Min must
// fit: a unit repeats at least twice, so Min may not exceed seqLen/2, and
// Max is clipped by the repeat search.
func (l LengthSpec) ValidateUnit(seqLen int) error {
	switch {
	case l.Min <= 0:
		return fmt.Errorf("sampler: unit width %s must be positive: %w", l, ErrInvalidLengthSpec)
	case l.Max < l.Min:
		return fmt.Errorf("sampler: unit width %s has max below min: %w", l, ErrInvalidLengthSpec)
	case l.Min > seqLen/2:
		return fmt.Errorf("sampler: unit width %s cannot repeat in sequence length %d: %w", l, seqLen, ErrInvalidLengthSpec)
	}
	return nil
}

// Draw returns a length. Fixed specs consume no randomness.
func (l LengthSpec) Draw(rng *rand.Rand) int {
	if l.IsFixed() {
		return l.Min
	}
	return l.Min + rng.Intn(l.Max-l.Min+1)
}
