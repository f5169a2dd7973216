// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package titles

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = map[string]string{
	"doktor":    "Dr.",
	"dr":        "Dr.",
	"professor": "Prof.",
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titles.json")
	store := NewStore(path, testDefaults, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, store.Load())
	return store, path
}

func readFile(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLoad_CreatesMissingFile(t *testing.T) {
	store, path := newTestStore(t)

	assert.Equal(t, testDefaults, readFile(t, path))
	assert.Equal(t, []string{"doktor", "dr", "professor"}, store.KnownTokens())
}

func TestLoad_MergesMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"doktor": "Dr. custom", "magister": "Mag."}`), 0600))

	store := NewStore(path, testDefaults, nil)
	require.NoError(t, store.Load())

	short, ok := store.Lookup("doktor")
	assert.True(t, ok)
	assert.Equal(t, "Dr. custom", short, "existing values are not overwritten")

	_, ok = store.Lookup("magister")
	assert.True(t, ok)
	_, ok = store.Lookup("professor")
	assert.True(t, ok)

	assert.Len(t, readFile(t, path), 4)
}

func TestLoad_MalformedFileRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	store := NewStore(path, testDefaults, nil)
	require.NoError(t, store.Load())

	assert.Equal(t, testDefaults, store.Entries())
	assert.Equal(t, testDefaults, readFile(t, path))
}

func TestLookup_NormalizesToken(t *testing.T) {
	store, _ := newTestStore(t)

	for _, token := range []string{"Dr.", "dr", "DR", " Doktor "} {
		short, ok := store.Lookup(token)
		assert.True(t, ok, token)
		assert.Equal(t, "Dr.", short, token)
	}

	_, ok := store.Lookup("Müller")
	assert.False(t, ok)
}

func TestAddLookupDeleteRoundTrip(t *testing.T) {
	store, path := newTestStore(t)

	changed, err := store.Add("Magister", "Mag.")
	require.NoError(t, err)
	assert.True(t, changed)

	short, ok := store.Lookup("magister")
	assert.True(t, ok)
	assert.Equal(t, "Mag.", short)
	assert.Equal(t, "Mag.", readFile(t, path)["magister"])

	changed, err = store.Add("magister", "Mag.")
	require.NoError(t, err)
	assert.False(t, changed, "unchanged pair reports false")

	changed, err = store.Add("magister", "Mag. rer.")
	require.NoError(t, err)
	assert.True(t, changed)

	deleted, err := store.Delete("magister")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok = store.Lookup("magister")
	assert.False(t, ok)
	assert.NotContains(t, readFile(t, path), "magister")

	deleted, err = store.Delete("magister")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAdd_RejectsEmptyValues(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Add("  ", "X")
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = store.Add("magister", "")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestAdd_MultiWordKey(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Add("Dr. rer. nat.", "Dr. rer. nat.")
	require.NoError(t, err)

	short, ok := store.Lookup("DR. RER. NAT")
	assert.True(t, ok)
	assert.Equal(t, "Dr. rer. nat.", short)
	assert.Contains(t, store.KnownTokens(), "dr rer nat")
}

func TestResetToDefaults(t *testing.T) {
	store, path := newTestStore(t)

	_, err := store.Add("magister", "Mag.")
	require.NoError(t, err)
	_, err = store.Delete("dr")
	require.NoError(t, err)

	require.NoError(t, store.ResetToDefaults())
	assert.Equal(t, testDefaults, store.Entries())
	assert.Equal(t, testDefaults, readFile(t, path))
}

func TestSuggest(t *testing.T) {
	store, _ := newTestStore(t)

	suggestion, ok := store.Suggest("Profesor")
	assert.True(t, ok)
	assert.Equal(t, "professor", suggestion)

	suggestion, ok = store.Suggest("doktr")
	assert.True(t, ok)
	assert.Equal(t, "doktor", suggestion)

	_, ok = store.Suggest("Schmidt")
	assert.False(t, ok)

	_, ok = store.Suggest("")
	assert.False(t, ok)
}

func TestInMemoryStore(t *testing.T) {
	store := NewStore("", testDefaults, nil)
	require.NoError(t, store.Load())

	changed, err := store.Add("magister", "Mag.")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, store.Path())
}

func TestConcurrentAccess(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Add("magister", "Mag.")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Lookup("dr")
			_ = store.KnownTokens()
		}()
	}
	wg.Wait()

	short, ok := store.Lookup("magister")
	assert.True(t, ok)
	assert.Equal(t, "Mag.", short)
}
