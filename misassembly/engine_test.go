package misassembly_test

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logsdon-lab/misasim/edit"
	"github.com/logsdon-lab/misasim/interval"
	"github.com/logsdon-lab/misasim/misassembly"
	"github.com/logsdon-lab/misasim/sampler"
	"github.com/logsdon-lab/misasim/track"
)

func seq(id, bases string) track.Sequence {
	return track.Sequence{ID: id, Bases: []byte(bases)}
}

// randomSeqs returns n deterministic ACGT sequences of the given length.
func randomSeqs(n, length int) []track.Sequence {
	rng := rand.New(rand.NewSource(7))
	out := make([]track.Sequence, n)
	for i := range out {
		b := make([]byte, length)
		for j := range b {
			b[j] = "ACGT"[rng.Intn(4)]
		}
		out[i] = track.Sequence{ID: string(rune('a' + i)), Bases: b}
	}
	return out
}

func run(t *testing.T, seqs []track.Sequence, batch []misassembly.Request, opts ...misassembly.Option) *misassembly.Report {
	t.Helper()
	rep, err := misassembly.New(opts...).Run(context.Background(), seqs, batch)
	require.NoError(t, err)
	require.Len(t, rep.Results, len(seqs))
	return rep
}

// requireTiling checks every fragment against the tiling invariant.
func requireTiling(t *testing.T, sr misassembly.SequenceResult) {
	t.Helper()
	for _, f := range sr.Result.Fragments {
		require.NoError(t, track.Validate(f.Rows, f.OrigStart, f.OrigEnd, len(f.Bases)), f.ID)
	}
}

func TestScenarioA_ForcedMisjoin(t *testing.T) {
	rep := run(t, []track.Sequence{seq("s", "ACGT")}, []misassembly.Request{
		{Kind: edit.Misjoin, Count: 1, Length: sampler.Fixed(4)},
	})
	require.Empty(t, rep.Failures)
	f, ok := rep.Results[0].Result.Single()
	require.True(t, ok)
	require.Empty(t, f.Bases)
	require.Equal(t, []track.Row{{SeqID: "s", OrigStart: 0, OrigEnd: 4, Kind: edit.Misjoin, NewStart: 0, NewEnd: 0}}, f.Rows)
}

func TestScenarioB_ForcedGap(t *testing.T) {
	rep := run(t, []track.Sequence{seq("s", "ACGTACGTACGTACGT")}, []misassembly.Request{
		{Kind: edit.Gap, Count: 1, Length: sampler.Fixed(16)},
	})
	f, ok := rep.Results[0].Result.Single()
	require.True(t, ok)
	require.Equal(t, bytes.Repeat([]byte{'N'}, 16), f.Bases)
	require.Equal(t, []track.Row{{SeqID: "s", OrigStart: 0, OrigEnd: 16, Kind: edit.Gap, NewStart: 0, NewEnd: 16}}, f.Rows)
}

// TestScenarioC_Exhaustion: the second request cannot fit and fails alone.
func TestScenarioC_Exhaustion(t *testing.T) {
	rep := run(t, []track.Sequence{seq("s", "ACGTA")}, []misassembly.Request{
		{Kind: edit.Misjoin, Count: 1, Length: sampler.Fixed(4)},
		{Kind: edit.Gap, Count: 1, Length: sampler.Fixed(4)},
	})
	sr := rep.Results[0]
	require.NoError(t, sr.Err)
	require.Len(t, sr.Spans, 1)
	require.Equal(t, edit.Misjoin, sr.Spans[0].Kind)
	require.Equal(t, 4, sr.Spans[0].Interval.Len())

	require.Len(t, rep.Failures, 1)
	require.ErrorIs(t, rep.Failures[0], sampler.ErrInsufficientRegionSpace)
	var ee *misassembly.EditError
	require.True(t, errors.As(rep.Failures[0], &ee))
	require.Equal(t, "s", ee.SeqID)
	require.Equal(t, 1, ee.Request)
	require.Equal(t, 0, ee.Instance)
	require.Equal(t, edit.Gap, ee.Kind)

	f, ok := sr.Result.Single()
	require.True(t, ok)
	require.Len(t, f.Bases, 1)
	requireTiling(t, sr)
}

// TestScenarioD_Break: fragments concatenate back to the original.
func TestScenarioD_Break(t *testing.T) {
	for s := int64(1); s <= 20; s++ {
		rep := run(t, []track.Sequence{seq("s", "ACGTACGT")}, []misassembly.Request{
			{Kind: edit.Break, Count: 1},
		}, misassembly.WithSeed(s))
		sr := rep.Results[0]
		require.True(t, sr.Result.IsSplit())
		require.Len(t, sr.Result.Fragments, 2)

		var joined []byte
		for _, f := range sr.Result.Fragments {
			require.NotEmpty(t, f.Bases)
			joined = append(joined, f.Bases...)
		}
		require.Equal(t, "ACGTACGT", string(joined))
		require.Equal(t, 8, sr.Result.NewLen())
		requireTiling(t, sr)
	}
}

func TestScenarioE_Inversion(t *testing.T) {
	rep := run(t, []track.Sequence{seq("s", "ACGTACGT"), seq("t", "AACCGGTa")}, []misassembly.Request{
		{Kind: edit.Inversion, Count: 1, Length: sampler.Fixed(8)},
	})
	f0, _ := rep.Results[0].Result.Single()
	require.Equal(t, "ACGTACGT", string(f0.Bases))
	f1, _ := rep.Results[1].Result.Single()
	require.Equal(t, "tACCGGTT", string(f1.Bases))
}

func TestInversion_InvalidAlphabet(t *testing.T) {
	rep := run(t, []track.Sequence{seq("s", "ACGTXCGT")}, []misassembly.Request{
		{Kind: edit.Inversion, Count: 1, Length: sampler.Fixed(8)},
		{Kind: edit.Gap, Count: 1, Length: sampler.Fixed(8)},
	})
	require.Len(t, rep.Failures, 1)
	require.ErrorIs(t, rep.Failures[0], edit.ErrInvalidAlphabet)
	// The later request still commits.
	f, _ := rep.Results[0].Result.Single()
	require.Equal(t, "NNNNNNNN", string(f.Bases))
}

func TestCollapse(t *testing.T) {
	rep := run(t, []track.Sequence{seq("s", "GATCACGTACGTACGTGATC")}, []misassembly.Request{
		{Kind: edit.Collapse, Count: 1, Length: sampler.Fixed(4), KeepRepeats: 1},
	})
	require.Empty(t, rep.Failures)
	f, _ := rep.Results[0].Result.Single()
	require.Equal(t, "GATCACGTGATC", string(f.Bases))
	require.Contains(t, f.Rows, track.Row{SeqID: "s", OrigStart: 4, OrigEnd: 16, Kind: edit.Collapse, NewStart: 4, NewEnd: 8})

	// No second repeat is left to collapse.
	rep = run(t, []track.Sequence{seq("s", "GATCACGTACGTACGTGATC")}, []misassembly.Request{
		{Kind: edit.Collapse, Count: 2, Length: sampler.Fixed(4)},
	})
	require.Len(t, rep.Failures, 1)
	require.ErrorIs(t, rep.Failures[0], sampler.ErrInsufficientRegionSpace)
}

// TestCollapse_WideUnitRange bounds the unit width only, so a range wider
// than a short sequence still finds its repeat.
func TestCollapse_WideUnitRange(t *testing.T) {
	bases := "CTGACCGTAGCTTCAG" + "GATTACAGATTACAGATTACAGATTACA" + "TCGGCATCAGTGCTCA"
	require.Len(t, bases, 60)
	rep := run(t, []track.Sequence{seq("s", bases)}, []misassembly.Request{
		{Kind: edit.Collapse, Count: 1, Length: sampler.Range(1, 100), KeepRepeats: 1},
	}, misassembly.WithSeed(3))
	sr := rep.Results[0]
	require.NoError(t, sr.Err)
	require.Empty(t, rep.Failures)
	require.Len(t, sr.Spans, 1)
	require.Equal(t, edit.Collapse, sr.Spans[0].Kind)
	require.Less(t, sr.Result.NewLen(), 60)
	requireTiling(t, sr)

	// A unit that cannot occur twice still aborts the sequence.
	rep = run(t, []track.Sequence{seq("s", bases)}, []misassembly.Request{
		{Kind: edit.Collapse, Count: 1, Length: sampler.Fixed(31)},
	})
	require.ErrorIs(t, rep.Results[0].Err, sampler.ErrInvalidLengthSpec)
}

func TestFalseDuplication_Bounds(t *testing.T) {
	rep := run(t, randomSeqs(1, 500), []misassembly.Request{
		{Kind: edit.FalseDuplication, Count: 5, Length: sampler.Fixed(10), MaxDuplications: 3},
	}, misassembly.WithSeed(3))
	sr := rep.Results[0]
	require.Len(t, sr.Spans, 5)
	grown := 0
	for _, sp := range sr.Spans {
		require.GreaterOrEqual(t, sp.Params.Duplications, 1)
		require.LessOrEqual(t, sp.Params.Duplications, 3)
		grown += 10 * sp.Params.Duplications
	}
	require.Equal(t, 500+grown, sr.Result.NewLen())
	requireTiling(t, sr)
}

func heterogeneousBatch() []misassembly.Request {
	return []misassembly.Request{
		{Kind: edit.Misjoin, Count: 3, Length: sampler.Range(5, 50)},
		{Kind: edit.Gap, Count: 2, Length: sampler.Fixed(20)},
		{Kind: edit.Inversion, Count: 2, Length: sampler.Range(10, 40)},
		{Kind: edit.FalseDuplication, Count: 2, Length: sampler.Fixed(15), MaxDuplications: 4},
		{Kind: edit.Break, Count: 2},
		{Kind: edit.Collapse, Count: 1, Length: sampler.Range(1, 3)},
		{Kind: edit.Gap, Count: 2, Length: sampler.Fixed(20)},
	}
}

func TestNonOverlap_Heterogeneous(t *testing.T) {
	rep := run(t, randomSeqs(6, 1000), heterogeneousBatch(), misassembly.WithSeed(11))
	for _, sr := range rep.Results {
		require.NoError(t, sr.Err)
		for i := range sr.Spans {
			for j := i + 1; j < len(sr.Spans); j++ {
				require.False(t, interval.Overlaps(sr.Spans[i].Reserved, sr.Spans[j].Reserved),
					"%s: %v and %v", sr.SeqID, sr.Spans[i], sr.Spans[j])
			}
		}
		requireTiling(t, sr)
	}
}

func TestDeterminism_AcrossWorkers(t *testing.T) {
	seqs := randomSeqs(12, 800)
	one := run(t, seqs, heterogeneousBatch(), misassembly.WithSeed(99), misassembly.WithWorkers(1))
	for i := 0; i < 3; i++ {
		many := run(t, seqs, heterogeneousBatch(), misassembly.WithSeed(99), misassembly.WithWorkers(8))
		require.Equal(t, one.Results, many.Results)
		require.Equal(t, len(one.Failures), len(many.Failures))
	}

	other := run(t, seqs, heterogeneousBatch(), misassembly.WithSeed(100))
	require.NotEqual(t, one.Results, other.Results)
}

// TestDuplicateEntries: repeated {kind,length} entries draw from distinct streams.
func TestDuplicateEntries(t *testing.T) {
	req := misassembly.Request{Kind: edit.Misjoin, Count: 1, Length: sampler.Fixed(10)}
	rep := run(t, randomSeqs(1, 1000), []misassembly.Request{req, req}, misassembly.WithSeed(5))
	spans := rep.Results[0].Spans
	require.Len(t, spans, 2)
	require.NotEqual(t, spans[0].DrawSeed, spans[1].DrawSeed)
	require.Equal(t, sampler.InstanceSeed(5, 0, 0, "a"), spans[0].DrawSeed)
	require.Equal(t, sampler.InstanceSeed(5, 1, 1, "a"), spans[1].DrawSeed)
}

func TestRegions(t *testing.T) {
	seqs := randomSeqs(2, 1000)
	rep := run(t, seqs, []misassembly.Request{
		{Kind: edit.Gap, Count: 4, Length: sampler.Fixed(10)},
	}, misassembly.WithRegions(map[string][]interval.Interval{"a": {{Start: 100, End: 200}}}))

	for _, sp := range rep.Results[0].Spans {
		require.GreaterOrEqual(t, sp.Interval.Start, 100)
		require.LessOrEqual(t, sp.Interval.End, 200)
	}
	require.Len(t, rep.Results[0].Spans, 4)
	// "b" has no regions and is left alone.
	require.Empty(t, rep.Results[1].Spans)
	f, _ := rep.Results[1].Result.Single()
	require.Equal(t, seqs[1].Bases, f.Bases)
}

func TestSequenceAbort(t *testing.T) {
	seqs := []track.Sequence{seq("short", "ACGTACGT"), randomSeqs(1, 100)[0]}

	rep := run(t, seqs, []misassembly.Request{
		{Kind: edit.Gap, Count: 1, Length: sampler.Fixed(50)},
	})
	require.ErrorIs(t, rep.Results[0].Err, sampler.ErrInvalidLengthSpec)
	f, _ := rep.Results[0].Result.Single()
	require.Equal(t, "ACGTACGT", string(f.Bases))
	require.NoError(t, rep.Results[1].Err)
	require.Len(t, rep.Results[1].Spans, 1)
	require.Len(t, rep.Failures, 1)

	rep = run(t, seqs, []misassembly.Request{
		{Kind: edit.Gap, Count: 1, Length: sampler.Fixed(5)},
	}, misassembly.WithRegions(map[string][]interval.Interval{
		"short": {{Start: 20, End: 30}},
		"a":     {{Start: 0, End: 10}},
	}))
	require.ErrorIs(t, rep.Results[0].Err, interval.ErrInvalidRegion)
	require.Len(t, rep.Results[1].Spans, 1)
}

func TestRepresentatives(t *testing.T) {
	seqs := randomSeqs(3, 300)
	rep := run(t, seqs, []misassembly.Request{
		{Kind: edit.Misjoin, Count: 2, Length: sampler.Fixed(10)},
	}, misassembly.WithRepresentatives([]string{"b"}))
	require.Empty(t, rep.Results[0].Spans)
	require.Len(t, rep.Results[1].Spans, 2)
	require.Empty(t, rep.Results[2].Spans)
	require.Equal(t, 2, rep.Committed())
}

func TestBadRequest(t *testing.T) {
	eng := misassembly.New()
	_, err := eng.Run(context.Background(), nil, []misassembly.Request{{Kind: edit.Good, Count: 1}})
	require.ErrorIs(t, err, misassembly.ErrBadRequest)
	_, err = eng.Run(context.Background(), nil, []misassembly.Request{{Kind: edit.Gap, Count: -1}})
	require.ErrorIs(t, err, misassembly.ErrBadRequest)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := misassembly.New().Run(ctx, randomSeqs(2, 50), []misassembly.Request{
		{Kind: edit.Gap, Count: 1, Length: sampler.Fixed(5)},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { misassembly.WithWorkers(0) })
	require.Panics(t, func() { misassembly.WithLogger(nil) })
}
