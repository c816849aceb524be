// Package misasim simulates assembly errors. It applies seeded, region
// constrained structural edits to named sequences and records, for every
// base of the result, where it came from in the original.
//
// 🚀 What does misasim do?
//
//	Given sequences, optional regions and a batch of edit requests it:
//		• places every requested edit without overlapping any other edit
//		• rebuilds each sequence once, left to right
//		• splits sequences at breaks into named fragments
//		• emits annotation rows tiling both coordinate spaces
//
// ✨ Edit kinds:
//
//	misjoin      – delete a span and join its flanks
//	gap          – replace a span with N
//	inversion    – reverse-complement a span
//	false_dupe   – repeat a span 1+d times
//	break        – split the sequence at a point
//	collapse     – drop copies from a tandem repeat
//
// Under the hood:
//
//	interval/     half-open intervals, allowances, subtraction
//	sampler/      length specs, derived seeds, uniform placement draws
//	edit/         the closed Kind set and its byte transforms
//	repeat/       exact tandem repeat discovery for collapse
//	track/        one-pass rebuild, annotation rows, fragments
//	misassembly/  batch resolution and the parallel per-sequence engine
//	fasta/, bed/  sequence input/output and region/annotation files
//	fileio/       stdin/stdout and gzip/BGZF handling
//	group/        regex grouping of sequence names
//	config/       JSON/TOML/YAML batches and environment defaults
//	cmd/misasim   the command line
//
// Determinism: the same sequences, regions, batch and seed always produce
// byte-identical output, whatever the number of workers.
package misasim
