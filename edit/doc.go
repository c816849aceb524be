// Package edit defines the closed set of structural edit kinds and the
// transform each one applies to a chosen span of an original sequence.
//
// Kinds and their effect on a span S of width w:
//
//	Misjoin           delete S                                  → width 0
//	Gap               replace S by w copies of 'N'              → width w
//	Inversion         reverse complement of S (case kept)       → width w
//	FalseDuplication  S followed by d verbatim copies           → width w·(1+d)
//	Break             no byte change; the sequence is split     → width 0 (zero-width span)
//	Collapse          keep k' of the k repeat units of S        → width w − (k−k')·unit
//
// Good is the sentinel kind used by annotation rows for unedited sequence.
//
// A Span is one committed placement: which sequence, which original interval,
// which kind and the parameters drawn for it. Apply is the exhaustive
// transform over Kind; it never mutates its input.
//
// Errors:
//
//   - ErrInvalidAlphabet: Inversion met a symbol without a complement.
//   - ErrNonPeriodicSpan: Collapse span is not k verbatim copies of its unit.
//   - ErrUnknownKind:     a kind value or name outside the closed set.
package edit
