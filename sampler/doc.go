// Package sampler draws non-overlapping, seed-reproducible edit placements
// from an interval Allowance.
//
// A placement is drawn in two steps: a length from a LengthSpec (fixed, or
// uniform over a range), then a start position chosen uniformly among every
// base where a span of that length fits inside the residual allowance (the
// allowance minus the intervals already reserved on the sequence). Wider
// residual intervals are therefore proportionally more likely to host the span.
//
// Randomness is explicit: every call takes a *rand.Rand, and InstanceSeed
// derives the seed of one request instance from (base seed, request ordinal,
// duplicate ordinal, sequence id) alone.
//
// Errors:
//
//   - ErrInsufficientRegionSpace: no residual interval is wide enough.
//   - ErrInvalidLengthSpec:       zero, inverted, or oversized lengths.
package sampler
