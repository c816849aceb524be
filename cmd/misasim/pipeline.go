package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/logsdon-lab/misasim/bed"
	"github.com/logsdon-lab/misasim/fasta"
	"github.com/logsdon-lab/misasim/fileio"
	"github.com/logsdon-lab/misasim/group"
	"github.com/logsdon-lab/misasim/misassembly"
)

// pipeline reads the inputs, runs the engine and writes the outputs.
func pipeline(ctx context.Context, log logrus.FieldLogger, o *options, batch []misassembly.Request) error {
	if o.workers < 1 {
		return fmt.Errorf("-workers must be at least 1, got %d", o.workers)
	}
	seqs, err := fasta.ReadFile(o.input)
	if err != nil {
		return err
	}
	log.Debugf("read %d sequences from %s", len(seqs), o.input)

	engOpts := []misassembly.Option{
		misassembly.WithSeed(o.seed),
		misassembly.WithWorkers(o.workers),
		misassembly.WithLogger(log),
	}
	if o.regions != "" {
		regs, err := bed.ReadRegionsFile(o.regions)
		if err != nil {
			return err
		}
		log.Debugf("read regions for %d sequences from %s", len(regs), o.regions)
		engOpts = append(engOpts, misassembly.WithRegions(regs))
	}
	if o.groupBy != "" {
		ids := make([]string, len(seqs))
		for i, s := range seqs {
			ids[i] = s.ID
		}
		g, err := group.By(o.groupBy, ids)
		if err != nil {
			return err
		}
		for _, grp := range g.Groups {
			log.Infof("group %s: editing %s of %d sequences", grp.Key, grp.Representative(), len(grp.Members))
		}
		if len(g.Unmatched) > 0 {
			log.Warnf("%d sequences match no group and are left unedited", len(g.Unmatched))
		}
		engOpts = append(engOpts, misassembly.WithRepresentatives(g.Representatives()))
	}

	rep, err := misassembly.New(engOpts...).Run(ctx, seqs, batch)
	if err != nil {
		return err
	}

	// Aborted sequences pass through unedited; unplaced instances were
	// already logged by the engine.
	var aborted []error
	for _, sr := range rep.Results {
		if sr.Err != nil {
			log.WithError(sr.Err).Errorf("sequence %s written unedited", sr.SeqID)
			aborted = append(aborted, sr.Err)
		}
	}
	if n := len(rep.Failures) - len(aborted); n > 0 {
		log.Warnf("%d edits could not be placed", n)
	}
	log.Infof("committed %d edits on %d sequences", rep.Committed(), len(rep.Results))

	if err := writeOutputs(o, rep); err != nil {
		return err
	}
	if o.strict && len(aborted) > 0 {
		return errors.Join(aborted...)
	}
	return nil
}

// writeOutputs writes every result, edited or not, in input order.
func writeOutputs(o *options, rep *misassembly.Report) (err error) {
	fa, err := fileio.Create(o.output)
	if err != nil {
		return err
	}
	defer closeInto(fa, &err)
	faw := fasta.NewWriter(fa)

	var bw *bed.Writer
	if o.outBED != "" {
		var bf io.WriteCloser
		if bf, err = fileio.Create(o.outBED); err != nil {
			return err
		}
		defer closeInto(bf, &err)
		bw = bed.NewWriter(bf)
	}

	for _, sr := range rep.Results {
		if err := faw.WriteResult(sr.Result); err != nil {
			return err
		}
		if bw != nil {
			if err := bw.WriteResult(sr.Result); err != nil {
				return err
			}
		}
	}
	if err := faw.Flush(); err != nil {
		return err
	}
	if bw != nil {
		return bw.Flush()
	}
	return nil
}

// closeInto closes c and keeps the first error in *err.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
