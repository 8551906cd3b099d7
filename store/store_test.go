package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/slowgo/slowgo/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(zerolog.Nop(), filepath.Join(t.TempDir(), "runs.yaml"))
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	history, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, model.History{}, history)
}

func TestStore_LoadTruncated(t *testing.T) {
	// A zero-byte (or whitespace-only) store behaves like a missing
	// one, not like a corrupt one.
	for _, content := range []string{"", "   \n\n"} {
		s := newTestStore(t)
		require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

		history, err := s.Load()
		require.NoError(t, err)
		require.Equal(t, model.History{}, history)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not yaml",
			content: "{{{ definitely not yaml",
		},
		{
			name:    "wrong shape - sequence document",
			content: "- 0.1\n- 0.2\n",
		},
		{
			name:    "wrong shape - scalar values",
			content: "test_a: not-a-number\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			_, err := s.Load()
			require.ErrorIs(t, err, ErrCorrupt)

			// The corrupt file must be left untouched for the operator.
			data, readErr := os.ReadFile(s.Path())
			require.NoError(t, readErr)
			require.Equal(t, tt.content, string(data))
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	history := model.History{
		"pkg.TestAlpha": {0.4, 0.6, 0.5},
		"pkg.TestBeta":  {0.1},
	}
	require.NoError(t, s.Save(history))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, history, loaded)
}

func TestStore_ResetIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(model.History{"pkg.TestAlpha": {0.4}}))

	require.NoError(t, s.Reset())
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))

	history, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, model.History{}, history)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		history model.History
		run     model.RunRecord
		want    model.History
	}{
		{
			name:    "empty history",
			history: model.History{},
			run:     model.RunRecord{"test_a": 0.5, "test_b": 0.1},
			want:    model.History{"test_a": {0.5}, "test_b": {0.1}},
		},
		{
			name:    "appends in chronological order",
			history: model.History{"test_a": {0.4, 0.6}},
			run:     model.RunRecord{"test_a": 0.5},
			want:    model.History{"test_a": {0.4, 0.6, 0.5}},
		},
		{
			name:    "absent identifiers untouched",
			history: model.History{"test_a": {0.4}, "test_b": {0.2, 0.3}},
			run:     model.RunRecord{"test_a": 0.5},
			want:    model.History{"test_a": {0.4, 0.5}, "test_b": {0.2, 0.3}},
		},
		{
			name:    "new identifier mid-history",
			history: model.History{"test_a": {0.4, 0.6}},
			run:     model.RunRecord{"test_a": 0.5, "test_c": 1.2},
			want:    model.History{"test_a": {0.4, 0.6, 0.5}, "test_c": {1.2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.history, tt.run)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge_SequentialRuns(t *testing.T) {
	// Two runs merged into an initially empty store keep per-run
	// order: [R1's timing, R2's timing].
	history := model.History{}
	history = Merge(history, model.RunRecord{"test_a": 0.5})
	history = Merge(history, model.RunRecord{"test_a": 0.7})

	require.Equal(t, model.History{"test_a": {0.5, 0.7}}, history)
}

func TestStore_MergeSaveReload(t *testing.T) {
	s := newTestStore(t)

	history, err := s.Load()
	require.NoError(t, err)

	history = Merge(history, model.RunRecord{"test_a": 0.5, "test_b": 0.1})
	require.NoError(t, s.Save(history))

	reloaded, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, model.History{"test_a": {0.5}, "test_b": {0.1}}, reloaded)
}
