// Package track rebuilds an edited sequence from its committed spans and
// emits the annotation rows mapping new coordinates back to original ones.
//
// What:
//
//   - Build sorts spans by original start and walks the original buffer once,
//     copying unedited stretches as "good" rows and replacing each span with
//     the output of edit.Apply.
//   - Every byte of both the original and the new sequence is covered by
//     exactly one row; Validate checks this after every build.
//   - Break spans split the result into fragments; each fragment carries its own
//     rows, rebased so that new coordinates start at zero.
//
// Complexity:
//
//   - Build: O(n + s log s) for an n-byte sequence and s spans.
//
// Errors:
//
//   - ErrInvalidSpan:      span outside the sequence, empty, or of an unknown kind.
//   - ErrOverlappingSpans: two spans share an original base (or two breaks one position).
//   - ErrBrokenTiling:     rows fail to tile either coordinate space.
package track
