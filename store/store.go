package store

// This file contains the file-backed statistics store for loading,
// merging and persisting per-test timing history across runs.

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/slowgo/slowgo/model"
)

// ErrCorrupt indicates the store file exists but cannot be parsed as a
// mapping of test identifier to a sequence of timings. The file is
// left untouched; the operator must fix it by hand or reset the store.
var ErrCorrupt = errors.New("statistics store is corrupt")

// Store persists timing history to a single YAML file.
type Store struct {
	logger zerolog.Logger
	path   string
}

// New creates a store backed by the file at path.
func New(logger zerolog.Logger, path string) *Store {
	return &Store{logger: logger, path: path}
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted history. A missing or zero-byte file yields
// an empty history; unparseable content fails with ErrCorrupt.
func (s *Store) Load() (model.History, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Debug().Str("path", s.path).Msg("No statistics store yet, starting empty")
		return model.History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read statistics store: %w", err)
	}

	// A truncated store behaves like a missing one.
	if len(bytes.TrimSpace(data)) == 0 {
		return model.History{}, nil
	}

	var history model.History
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if history == nil {
		history = model.History{}
	}

	s.logger.Debug().Str("path", s.path).Int("tests", len(history)).Msg("Statistics store loaded")
	return history, nil
}

// Merge appends each timing in run to its identifier's history
// sequence, creating a single-element sequence on first appearance.
// Identifiers absent from run are left untouched. The history is
// mutated in place and returned.
func Merge(history model.History, run model.RunRecord) model.History {
	for id, elapsed := range run {
		history[id] = append(history[id], elapsed)
	}
	return history
}

// Save overwrites the store with the serialized history. The write is
// atomic: a temp file in the same directory is renamed over the
// target, so a crash mid-write cannot leave a half-written store.
func (s *Store) Save(history model.History) error {
	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to serialize statistics store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".slowgo-store-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write statistics store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write statistics store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace statistics store: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Int("tests", len(history)).Msg("Statistics store saved")
	return nil
}

// Reset overwrites the store with an empty, validly parseable
// document. Idempotent.
func (s *Store) Reset() error {
	return s.Save(model.History{})
}
