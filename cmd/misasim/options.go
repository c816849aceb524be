package main

import (
	"flag"
	"runtime"
	"strconv"

	"github.com/logsdon-lab/misasim/config"
	"github.com/logsdon-lab/misasim/fileio"
)

// options are the flags shared by every command.
type options struct {
	input           string
	output          string
	outBED          string
	regions         string
	groupBy         string
	workers         int
	logLevel        string
	randomizeLength bool
	strict          bool

	seed    int64
	seedSet bool
}

// seedValue records whether a seed was given at all.
type seedValue struct{ o *options }

func (s seedValue) String() string {
	if s.o == nil || !s.o.seedSet {
		return ""
	}
	return strconv.FormatInt(s.o.seed, 10)
}

func (s seedValue) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	s.o.seed, s.o.seedSet = n, true
	return nil
}

func newOptions(fs *flag.FlagSet, env config.Env) *options {
	o := &options{seed: env.Seed, seedSet: env.HasSeed}
	fs.StringVar(&o.input, "i", fileio.Stdio, "Input FASTA, plain or gzip/BGZF. \"-\" reads stdin.")
	fs.StringVar(&o.output, "o", fileio.Stdio, "Output FASTA. \"-\" writes stdout; a .gz suffix compresses.")
	fs.StringVar(&o.outBED, "b", "", "Output BED annotation of the edited sequences.")
	fs.StringVar(&o.regions, "r", "", "BED of regions to restrict edits to. Sequences without regions are not edited.")
	fs.StringVar(&o.groupBy, "group-by", "", "Regex grouping sequence names; only the first sequence of each group is edited.")
	fs.IntVar(&o.workers, "workers", runtime.NumCPU(), "Sequences processed in parallel.")
	fs.StringVar(&o.logLevel, "log-level", env.LogLevel.String(), "Log level (debug, info, warn, error).")
	fs.BoolVar(&o.randomizeLength, "randomize-length", false, "Draw each length uniformly in [1, length].")
	fs.BoolVar(&o.strict, "strict", false, "Exit 1 when any sequence is left unedited by a length or region error.")
	fs.Var(seedValue{o}, "seed", "Base seed. Defaults to "+config.EnvSeed+", else the current time.")
	return o
}
