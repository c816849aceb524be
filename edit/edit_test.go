package edit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logsdon-lab/misasim/edit"
)

// TestApply_Widths checks each transform against its width rule.
func TestApply_Widths(t *testing.T) {
	span := []byte("ACGTTG")
	cases := []struct {
		name string
		kind edit.Kind
		p    edit.Params
		want string
	}{
		{"Misjoin", edit.Misjoin, edit.Params{}, ""},
		{"Gap", edit.Gap, edit.Params{}, "NNNNNN"},
		{"Inversion", edit.Inversion, edit.Params{}, "CAACGT"},
		{"FalseDuplication", edit.FalseDuplication, edit.Params{Duplications: 2}, "ACGTTGACGTTGACGTTG"},
		{"Good", edit.Good, edit.Params{}, "ACGTTG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := edit.Apply(tc.kind, span, tc.p)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(got))
			require.Equal(t, len(tc.want), edit.NewWidth(tc.kind, len(span), tc.p))
		})
	}
	require.Equal(t, "ACGTTG", string(span), "input must not be modified")
}

// TestApply_GapDropsCase verifies gap masking ignores the input case.
func TestApply_GapDropsCase(t *testing.T) {
	got, err := edit.Apply(edit.Gap, []byte("acgT"), edit.Params{})
	require.NoError(t, err)
	require.Equal(t, "NNNN", string(got))
}

// TestReverseComplement covers case preservation, N, and the palindrome from the docs.
func TestReverseComplement(t *testing.T) {
	got, err := edit.ReverseComplement([]byte("ACGTACGT"))
	require.NoError(t, err)
	require.Equal(t, "ACGTACGT", string(got))

	got, err = edit.ReverseComplement([]byte("aaCgNt"))
	require.NoError(t, err)
	require.Equal(t, "aNcGtt", string(got))

	_, err = edit.ReverseComplement([]byte("ACRT"))
	require.ErrorIs(t, err, edit.ErrInvalidAlphabet)

	_, err = edit.Apply(edit.Inversion, []byte("AC-T"), edit.Params{})
	require.ErrorIs(t, err, edit.ErrInvalidAlphabet)
}

// TestCollapse keeps k' units and rejects non-periodic spans.
func TestCollapse(t *testing.T) {
	span := []byte("ATTTTATTTTATTTT") // 3 x ATTTT
	got, err := edit.Apply(edit.Collapse, span, edit.Params{Unit: 5, Keep: 1})
	require.NoError(t, err)
	require.Equal(t, "ATTTT", string(got))

	// Keep >= k is clamped to k-1.
	got, err = edit.Apply(edit.Collapse, span, edit.Params{Unit: 5, Keep: 9})
	require.NoError(t, err)
	require.Equal(t, "ATTTTATTTT", string(got))
	require.Equal(t, 10, edit.NewWidth(edit.Collapse, len(span), edit.Params{Unit: 5, Keep: 9}))

	cases := []struct {
		name string
		span string
		unit int
	}{
		{"NotDivisible", "ATTTTATTT", 5},
		{"ZeroUnit", "ATAT", 0},
		{"SingleUnit", "ATTTT", 5},
		{"NotVerbatim", "ATTTTATTTC", 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := edit.Apply(edit.Collapse, []byte(tc.span), edit.Params{Unit: tc.unit, Keep: 1})
			require.ErrorIs(t, err, edit.ErrNonPeriodicSpan)
		})
	}
}

func TestApply_UnknownKind(t *testing.T) {
	_, err := edit.Apply(edit.Kind(42), []byte("A"), edit.Params{})
	require.ErrorIs(t, err, edit.ErrUnknownKind)
}

// TestParseKind checks labels, aliases and the round trip through String.
func TestParseKind(t *testing.T) {
	for _, k := range append([]edit.Kind{edit.Good}, edit.Kinds...) {
		got, err := edit.ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	got, err := edit.ParseKind("False-Duplication")
	require.NoError(t, err)
	require.Equal(t, edit.FalseDuplication, got)

	_, err = edit.ParseKind("haplotype_switch")
	require.ErrorIs(t, err, edit.ErrUnknownKind)
}

func TestColor(t *testing.T) {
	require.Equal(t, "255,255,255", edit.Good.Color())
	for _, k := range edit.Kinds {
		require.Equal(t, "255,0,0", k.Color())
	}
}
