// Package misassembly resolves a batch of edit requests against a set of
// sequences and produces the edited sequences with their annotation tracks.
//
// 🚀 What happens in Run?
//
//	For every targeted sequence, independently:
//	  1. Build the Allowance from the sequence's regions (interval.Restrict).
//	  2. For each request in batch order, and each of its Count instances,
//	     draw a placement that avoids every span already committed on the
//	     sequence, whatever its kind (sampler, repeat).
//	  3. Rebuild the sequence once from the pooled spans (track.Build).
//
// ✨ Determinism:
//
//	The generator of a request on a sequence is seeded from
//	(base seed, request ordinal, duplicate ordinal, sequence id) only.
//	Repeating an identical {kind, length} entry bumps the duplicate ordinal,
//	so the copies land elsewhere while staying reproducible. Output is
//	byte-identical for any worker count.
//
// ⚙️ Usage:
//
//	eng := misassembly.New(
//	    misassembly.WithSeed(42),
//	    misassembly.WithRegions(regions), // optional, per sequence
//	)
//	rep, err := eng.Run(ctx, seqs, []misassembly.Request{
//	    {Kind: edit.Misjoin, Count: 2, Length: sampler.Fixed(5000)},
//	    {Kind: edit.Break, Count: 1},
//	})
//
// Errors:
//
//	Run itself fails only on a malformed batch (ErrBadRequest) or a
//	cancelled context. Everything else is reported, never swallowed:
//	  - a request instance that cannot be placed is recorded in
//	    Report.Failures as an *EditError wrapping
//	    sampler.ErrInsufficientRegionSpace (or edit.ErrInvalidAlphabet)
//	    and the remaining instances and requests still run;
//	  - interval.ErrInvalidRegion and sampler.ErrInvalidLengthSpec abort
//	    that sequence only (SequenceResult.Err), which is passed through unedited.
package misassembly
