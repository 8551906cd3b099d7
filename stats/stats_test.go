package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slowgo/slowgo/model"
)

func TestSummarize(t *testing.T) {
	history := model.History{
		"pkg.TestAlpha": {0.1, 0.2, 0.3},
		"pkg.TestBeta":  {0.5},
	}

	aggregates, err := Summarize(history)
	require.NoError(t, err)
	require.Len(t, aggregates, 2)

	// Ordered by identifier.
	alpha := aggregates[0]
	require.Equal(t, "pkg.TestAlpha", alpha.ID)
	require.Equal(t, 3, alpha.Count)
	require.InDelta(t, 0.2, alpha.Mean, 1e-12)
	require.Equal(t, 0.1, alpha.Min)
	require.Equal(t, 0.3, alpha.Max)

	// A single sample degenerates to mean == min == max.
	beta := aggregates[1]
	require.Equal(t, "pkg.TestBeta", beta.ID)
	require.Equal(t, 1, beta.Count)
	require.Equal(t, 0.5, beta.Mean)
	require.Equal(t, 0.5, beta.Min)
	require.Equal(t, 0.5, beta.Max)
}

func TestSummarize_EmptySequence(t *testing.T) {
	// An identifier with zero samples cannot be produced by a correct
	// merge; Summarize must flag it instead of emitting zeros.
	_, err := Summarize(model.History{"pkg.TestGhost": {}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "pkg.TestGhost")
}

func TestSummarize_EmptyHistory(t *testing.T) {
	aggregates, err := Summarize(model.History{})
	require.NoError(t, err)
	require.Empty(t, aggregates)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{
			name: "already at resolution",
			in:   0.5,
			want: 0.5,
		},
		{
			name: "truncates instead of rounding up",
			in:   0.1234567899,
			want: 0.123456789,
		},
		{
			name: "zero",
			in:   0,
			want: 0,
		},
		{
			name: "integer seconds untouched",
			in:   3,
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in)
			if got != tt.want {
				t.Errorf("truncate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
