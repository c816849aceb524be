package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/logsdon-lab/misasim/config"
	"github.com/logsdon-lab/misasim/edit"
	"github.com/logsdon-lab/misasim/misassembly"
	"github.com/logsdon-lab/misasim/sampler"
)

var envVars = []string{config.EnvSeed, config.EnvLogLevel}

// command is one subcommand. batch registers its own flags on fs and
// returns a function building the requests once fs is parsed.
type command struct {
	help  string
	batch func(fs *flag.FlagSet) func() ([]misassembly.Request, error)
}

var commandOrder = []string{"misjoin", "gap", "inversion", "false-duplication", "break", "collapse", "multiple"}

var commands = map[string]command{
	"misjoin":           {help: "Delete sequences and join their flanks.", batch: simple(edit.Misjoin)},
	"gap":               {help: "Replace sequences with N.", batch: simple(edit.Gap)},
	"inversion":         {help: "Reverse-complement sequences.", batch: simple(edit.Inversion)},
	"false-duplication": {help: "Duplicate sequences in tandem.", batch: falseDuplication},
	"break":             {help: "Split sequences in two.", batch: breaks},
	"collapse":          {help: "Remove copies from tandem repeats.", batch: collapse},
	"multiple":          {help: "Apply a batch of edits from a JSON, TOML or YAML file.", batch: multiple},
}

func simple(kind edit.Kind) func(fs *flag.FlagSet) func() ([]misassembly.Request, error) {
	return func(fs *flag.FlagSet) func() ([]misassembly.Request, error) {
		n := fs.Int("n", 1, "Number of edits per sequence.")
		l := fs.Int("l", 0, "Length of each edit in bp (required).")
		return func() ([]misassembly.Request, error) {
			if *l <= 0 {
				return nil, errors.New("-l must be positive")
			}
			return []misassembly.Request{{Kind: kind, Count: *n, Length: sampler.Fixed(*l)}}, nil
		}
	}
}

func falseDuplication(fs *flag.FlagSet) func() ([]misassembly.Request, error) {
	base := simple(edit.FalseDuplication)(fs)
	maxDup := fs.Int("m", 3, "Maximum number of extra copies.")
	return func() ([]misassembly.Request, error) {
		reqs, err := base()
		if err != nil {
			return nil, err
		}
		reqs[0].MaxDuplications = *maxDup
		return reqs, nil
	}
}

func breaks(fs *flag.FlagSet) func() ([]misassembly.Request, error) {
	n := fs.Int("n", 1, "Number of breaks per sequence.")
	return func() ([]misassembly.Request, error) {
		return []misassembly.Request{{Kind: edit.Break, Count: *n}}, nil
	}
}

func collapse(fs *flag.FlagSet) func() ([]misassembly.Request, error) {
	n := fs.Int("n", 1, "Number of collapses per sequence.")
	minUnit := fs.Int("min-unit", 1, "Smallest repeat unit in bp.")
	maxUnit := fs.Int("max-unit", 100, "Largest repeat unit in bp.")
	keep := fs.Int("k", 1, "Repeat units left after a collapse.")
	return func() ([]misassembly.Request, error) {
		if *minUnit <= 0 || *maxUnit < *minUnit {
			return nil, fmt.Errorf("bad repeat unit range %d-%d", *minUnit, *maxUnit)
		}
		return []misassembly.Request{{
			Kind:        edit.Collapse,
			Count:       *n,
			Length:      sampler.Range(*minUnit, *maxUnit),
			KeepRepeats: *keep,
		}}, nil
	}
}

func multiple(fs *flag.FlagSet) func() ([]misassembly.Request, error) {
	path := fs.String("c", "", "Batch file (.json, .toml, .yaml).")
	return func() ([]misassembly.Request, error) {
		if *path == "" {
			return nil, errors.New("-c is required")
		}
		return config.LoadFile(*path)
	}
}

// randomizeLengths turns each fixed length n into a draw over [1, n].
// Collapse lengths bound repeat units and are left alone.
func randomizeLengths(reqs []misassembly.Request) {
	for i, r := range reqs {
		if r.Kind == edit.Break || r.Kind == edit.Collapse || !r.Length.IsFixed() {
			continue
		}
		reqs[i].Length = sampler.Range(1, r.Length.Max)
	}
}

// run parses the flags of the command and runs the pipeline.
func (c command) run(ctx context.Context, name string, args []string, stderr io.Writer) int {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "misasim: %s\n", err)
		return 2
	}

	fs := flag.NewFlagSet("misasim "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := newOptions(fs, env)
	build := c.batch(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "misasim %s: unexpected arguments %q\n", name, fs.Args())
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "misasim %s: %s\n", name, err)
		return 2
	}
	log.SetLevel(lvl)

	batch, err := build()
	if err != nil {
		log.Errorf("%s: %s", name, err)
		return 2
	}
	if opts.randomizeLength {
		randomizeLengths(batch)
	}
	if !opts.seedSet {
		opts.seed = time.Now().UnixNano()
		log.Infof("no seed given, using %d", opts.seed)
	}

	if err := pipeline(ctx, log, opts, batch); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}
