// SPDX-License-Identifier: MIT
// Package: misasim/misassembly
//
// options.go: functional options for the edit engine.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors PANIC on meaningless inputs (nil logger, workers < 1).
//     Run itself never panics.
//   • Determinism is explicit: the base seed comes from WithSeed only.

package misassembly

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/logsdon-lab/misasim/interval"
)

// Option customizes an Engine before it runs.
type Option func(*config)

// WithSeed sets the base seed every per-instance generator derives from.
// Seed 0 is valid and maps to sampler.DefaultSeed downstream.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithRegions restricts placements to the given original-coordinate regions,
// keyed by sequence id. Sequences absent from the map are not edited.
// A nil map (the default) allows every base of every sequence.
func WithRegions(regions map[string][]interval.Interval) Option {
	return func(c *config) {
		c.regions = regions
	}
}

// WithRepresentatives limits editing to the listed sequence ids, typically the
// one representative chosen per group. Every representative receives the full
// Count of each request; other sequences pass through unedited.
func WithRepresentatives(ids []string) Option {
	return func(c *config) {
		c.targets = make(map[string]bool, len(ids))
		for _, id := range ids {
			c.targets[id] = true
		}
	}
}

// WithWorkers bounds the number of sequences processed concurrently.
// Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("misassembly: WithWorkers(n<1)")
	}
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger attaches a logger for per-sequence and per-failure entries.
// Panics on nil; the default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("misassembly: WithLogger(nil)")
	}
	return func(c *config) {
		c.log = l
	}
}

// config aggregates every engine knob; it is copied into the Engine by value.
type config struct {
	seed    int64
	regions map[string][]interval.Interval
	targets map[string]bool // nil: every sequence
	workers int
	log     logrus.FieldLogger
}

// newConfig applies opts, in order, over deterministic defaults.
func newConfig(opts ...Option) config {
	cfg := config{
		seed:    0,
		workers: runtime.NumCPU(),
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
