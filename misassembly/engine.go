package misassembly

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/logsdon-lab/misasim/edit"
	"github.com/logsdon-lab/misasim/interval"
	"github.com/logsdon-lab/misasim/repeat"
	"github.com/logsdon-lab/misasim/sampler"
	"github.com/logsdon-lab/misasim/track"
)

// Engine applies edit batches. It holds no mutable state after New and is
// safe for concurrent use.
type Engine struct {
	cfg config
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	return &Engine{cfg: newConfig(opts...)}
}

// Run applies batch to every targeted sequence and returns the results in
// input order. Sequences are neither modified nor retained.
//
// Cancellation is observed between sequences; a cancelled run returns the
// context error and no report.
func (e *Engine) Run(ctx context.Context, seqs []track.Sequence, batch []Request) (*Report, error) {
	for i, r := range batch {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("misassembly: request %d: %w", i, err)
		}
	}
	dups := dupOrdinals(batch)

	results := make([]SequenceResult, len(seqs))
	failures := make([][]error, len(seqs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(e.cfg.workers, len(seqs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], failures[i] = e.process(seqs[i], batch, dups)
			}
		}()
	}

	cancelled := false
feed:
	for i := range seqs {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled {
		return nil, fmt.Errorf("misassembly: run interrupted: %w", ctx.Err())
	}

	rep := &Report{Results: results}
	for _, fs := range failures {
		rep.Failures = append(rep.Failures, fs...)
	}
	return rep, nil
}

// process runs the whole pass for one sequence: allowance, placements, rebuild.
func (e *Engine) process(seq track.Sequence, batch []Request, dups []int) (SequenceResult, []error) {
	log := e.cfg.log.WithField("seq", seq.ID)
	out := SequenceResult{SeqID: seq.ID}

	allow, ok, err := e.allowance(seq)
	if err == nil && ok {
		err = checkLengths(seq, batch)
	}
	if err != nil || !ok {
		out.Result, _ = track.Build(seq, nil)
		if err != nil {
			out.Err = &EditError{SeqID: seq.ID, Request: -1, Instance: -1, Err: err}
			log.WithError(err).Warn("sequence skipped")
			return out, []error{out.Err}
		}
		log.Debug("sequence not targeted")
		return out, nil
	}

	var (
		fails    []error
		reserved []interval.Interval
	)
	for ri, req := range batch {
		if req.Count == 0 {
			continue
		}
		rng, seed := sampler.InstanceRand(e.cfg.seed, ri, dups[ri], seq.ID)
		var repeats []repeat.Repeat
		if req.Kind == edit.Collapse {
			repeats = repeat.Find(seq.Bases, req.Length.Min, req.Length.Max)
		}
		for inst := 0; inst < req.Count; inst++ {
			sp, err := place(seq, allow, reserved, req, repeats, rng)
			if err != nil {
				fails = append(fails, &EditError{SeqID: seq.ID, Request: ri, Instance: inst, Kind: req.Kind, Err: err})
				log.WithFields(logrus.Fields{
					"request":  ri,
					"instance": inst,
					"kind":     req.Kind,
				}).WithError(err).Warn("edit not placed")
				continue
			}
			sp.SeqID = seq.ID
			sp.DrawSeed = seed
			out.Spans = append(out.Spans, sp)
			reserved = append(reserved, sp.Reserved)
		}
	}

	res, err := track.Build(seq, out.Spans)
	if err != nil {
		// Placements never overlap, so this is an internal fault; surface it.
		out.Result, _ = track.Build(seq, nil)
		out.Spans = nil
		out.Err = &EditError{SeqID: seq.ID, Request: -1, Instance: -1, Err: err}
		return out, append(fails, out.Err)
	}
	out.Result = res
	log.WithFields(logrus.Fields{
		"spans":     len(out.Spans),
		"failed":    len(fails),
		"fragments": len(res.Fragments),
		"new_len":   res.NewLen(),
	}).Debug("sequence edited")
	return out, fails
}

// allowance resolves the placement allowance of seq. ok is false when the
// sequence is not targeted at all.
func (e *Engine) allowance(seq track.Sequence) (interval.Set, bool, error) {
	if e.cfg.targets != nil && !e.cfg.targets[seq.ID] {
		return nil, false, nil
	}
	var regions []interval.Interval
	if e.cfg.regions != nil {
		rs, found := e.cfg.regions[seq.ID]
		if !found || len(rs) == 0 {
			return nil, false, nil
		}
		regions = rs
	}
	allow, err := interval.Restrict(seq.Len(), regions)
	if err != nil {
		return nil, false, err
	}
	return allow, true, nil
}

// checkLengths validates every length spec against the sequence. Collapse
// lengths bound the repeat unit, not the span.
func checkLengths(seq track.Sequence, batch []Request) error {
	for i, r := range batch {
		if !r.usesLength() {
			continue
		}
		check := r.Length.Validate
		if r.Kind == edit.Collapse {
			check = r.Length.ValidateUnit
		}
		if err := check(seq.Len()); err != nil {
			return fmt.Errorf("misassembly: request %d (%s): %w", i, r.Kind, err)
		}
	}
	return nil
}

// place draws one span for req. Draw order on rng is fixed per kind.
func place(
	seq track.Sequence,
	allow interval.Set,
	reserved []interval.Interval,
	req Request,
	repeats []repeat.Repeat,
	rng *rand.Rand,
) (edit.Span, error) {
	switch req.Kind {
	case edit.Break:
		iv, resv, err := sampler.SampleBreak(allow, reserved, seq.Len(), rng)
		if err != nil {
			return edit.Span{}, err
		}
		return edit.Span{Interval: iv, Reserved: resv, Kind: edit.Break}, nil

	case edit.Collapse:
		return placeCollapse(allow, reserved, req, repeats, rng)

	default:
		iv, err := sampler.Sample(allow, reserved, req.Length, rng)
		if err != nil {
			return edit.Span{}, err
		}
		sp := edit.Span{Interval: iv, Reserved: iv, Kind: req.Kind}
		switch req.Kind {
		case edit.FalseDuplication:
			sp.Params.Duplications = sampler.DrawDuplications(rng, req.MaxDuplications)
		case edit.Inversion:
			for off, b := range seq.Bases[iv.Start:iv.End] {
				if _, ok := edit.Complement(b); !ok {
					return edit.Span{}, fmt.Errorf("misassembly: %q at %d: %w", b, iv.Start+off, edit.ErrInvalidAlphabet)
				}
			}
		}
		return sp, nil
	}
}

// placeCollapse picks uniformly among the repeats that still hold two whole
// copies inside the residual allowance.
func placeCollapse(
	allow interval.Set,
	reserved []interval.Interval,
	req Request,
	repeats []repeat.Repeat,
	rng *rand.Rand,
) (edit.Span, error) {
	residual := sampler.Residual(allow, reserved)
	var fit []repeat.Repeat
	for _, r := range repeats {
		if t, ok := r.Within(residual); ok {
			fit = append(fit, t)
		}
	}
	if len(fit) == 0 {
		return edit.Span{}, fmt.Errorf("misassembly: no tandem repeat with unit %s fits: %w",
			req.Length, sampler.ErrInsufficientRegionSpace)
	}
	r := fit[rng.Intn(len(fit))]
	iv := r.Interval()
	return edit.Span{
		Interval: iv,
		Reserved: iv,
		Kind:     edit.Collapse,
		Params:   edit.Params{Unit: r.Unit, Keep: edit.ClampKeep(req.KeepRepeats, r.Count)},
	}, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
