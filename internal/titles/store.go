// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package titles provides the persisted title dictionary: a flat JSON object
// mapping lowercase long forms ("doktor") to canonical abbreviations ("Dr.").
package titles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"contact-splitter/internal/lexicon"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance Suggest accepts.
const maxSuggestDistance = 2

var (
	ErrEmptyKey   = errors.New("title long form must not be empty")
	ErrEmptyValue = errors.New("title short form must not be empty")
)

// Store is a thread-safe title dictionary backed by a JSON file. Every
// mutation is written to disk before it returns. An empty path keeps the
// dictionary in memory only.
type Store struct {
	mu       sync.RWMutex
	path     string
	defaults map[string]string
	entries  map[string]string
	log      *slog.Logger
}

// NewStore creates a store for path seeded with defaults. Call Load before use.
func NewStore(path string, defaults map[string]string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	normalized := make(map[string]string, len(defaults))
	for long, short := range defaults {
		if key := lexicon.NormalizeKey(long); key != "" {
			normalized[key] = short
		}
	}

	return &Store{
		path:     path,
		defaults: normalized,
		entries:  maps.Clone(normalized),
		log:      logger.With("component", "titles"),
	}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file is created from the defaults,
// missing default keys are merged into an existing file and a malformed file
// is replaced by the defaults.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		s.entries = maps.Clone(s.defaults)
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(s.path))
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("title dictionary not found, creating from defaults", slog.String("path", s.path))
		s.entries = maps.Clone(s.defaults)
		return s.save()
	}
	if err != nil {
		return fmt.Errorf("failed to read title dictionary: %w", err)
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Warn("title dictionary is malformed, restoring defaults",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		s.entries = maps.Clone(s.defaults)
		return s.save()
	}

	entries := make(map[string]string, len(stored)+len(s.defaults))
	for long, short := range stored {
		if key := lexicon.NormalizeKey(long); key != "" && short != "" {
			entries[key] = short
		}
	}

	merged := 0
	for key, short := range s.defaults {
		if _, ok := entries[key]; !ok {
			entries[key] = short
			merged++
		}
	}
	s.entries = entries

	if merged > 0 {
		s.log.Debug("merged default titles", slog.Int("count", merged))
		return s.save()
	}
	return nil
}

// Lookup returns the canonical short form for a long form or abbreviation.
func (s *Store) Lookup(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	short, ok := s.entries[lexicon.NormalizeKey(token)]
	return short, ok
}

// KnownTokens returns all known long forms, sorted.
func (s *Store) KnownTokens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.entries))
}

// Entries returns a copy of the dictionary.
func (s *Store) Entries() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.entries)
}

// Add stores long -> short. It reports false when the pair already existed.
func (s *Store) Add(long, short string) (bool, error) {
	key := lexicon.NormalizeKey(long)
	if key == "" {
		return false, ErrEmptyKey
	}
	if short == "" {
		return false, ErrEmptyValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[key]
	if existed && previous == short {
		return false, nil
	}

	s.entries[key] = short
	if err := s.save(); err != nil {
		if existed {
			s.entries[key] = previous
		} else {
			delete(s.entries, key)
		}
		return false, err
	}
	return true, nil
}

// Delete removes long. It reports false when the key was unknown.
func (s *Store) Delete(long string) (bool, error) {
	key := lexicon.NormalizeKey(long)

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.entries[key]
	if !ok {
		return false, nil
	}

	delete(s.entries, key)
	if err := s.save(); err != nil {
		s.entries[key] = previous
		return false, err
	}
	return true, nil
}

// ResetToDefaults discards all custom entries.
func (s *Store) ResetToDefaults() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.entries
	s.entries = maps.Clone(s.defaults)
	if err := s.save(); err != nil {
		s.entries = previous
		return err
	}
	return nil
}

// Suggest returns the known long form closest to token when it is within a
// small edit distance. Ties resolve to the lexicographically first key.
func (s *Store) Suggest(token string) (string, bool) {
	key := lexicon.NormalizeKey(token)
	if key == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	best, bestDistance := "", maxSuggestDistance+1
	for _, known := range slices.Sorted(maps.Keys(s.entries)) {
		if d := levenshtein.ComputeDistance(key, known); d < bestDistance {
			best, bestDistance = known, d
		}
	}
	return best, best != ""
}

// save writes the dictionary. Callers hold the write lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal title dictionary: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create title dictionary directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write title dictionary: %w", err)
	}
	return nil
}
