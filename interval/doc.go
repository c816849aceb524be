// Package interval provides half-open coordinate intervals and the per-sequence
// Allowance (a sorted, disjoint interval Set) that decides where edits may land.
//
// What:
//
//   - Interval is a half-open [Start, End) range; Start == End is a zero-width marker.
//   - Set is a sorted, non-overlapping, merged collection of Intervals.
//   - Restrict builds the Allowance of one sequence from an optional region list.
//   - Set.Subtract removes committed intervals, splitting members when needed.
//
// Complexity:
//
//   - Restrict:  O(r log r) for r regions.
//   - Subtract:  O((n + m) log m) for n members and m removed intervals.
//   - Contains:  O(log n).
//
// Errors:
//
//   - ErrInvalidRegion: a region is malformed, or no region survives clipping.
package interval
