package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSynonymIndex_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"Legal": ["Advocate", " barrister "],
		"Fitness": ["pilates"],
		"Health & Medical": ["lawyer"]
	}`), 0o600))

	idx, err := LoadSynonymIndex(path)
	require.NoError(t, err)

	category, ok := idx.Lookup("advocate")
	assert.True(t, ok)
	assert.Equal(t, "Legal", category)

	category, _ = idx.Lookup("barrister")
	assert.Equal(t, "Legal", category)

	// file entries override built-ins
	category, _ = idx.Lookup("lawyer")
	assert.Equal(t, "Health & Medical", category)

	// untouched built-ins survive
	category, _ = idx.Lookup("gym")
	assert.Equal(t, "Fitness", category)
	assert.Contains(t, idx.Context(), "pilates")

	// the package table is never mutated
	assert.Equal(t, "Legal", defaultSynonyms["lawyer"])
}

func TestLoadSynonymIndex_EmptyPathUsesDefaults(t *testing.T) {
	idx, err := LoadSynonymIndex("")
	require.NoError(t, err)
	category, ok := idx.Lookup("attorney")
	assert.True(t, ok)
	assert.Equal(t, "Legal", category)
}

func TestLoadSynonymIndex_Errors(t *testing.T) {
	_, err := LoadSynonymIndex(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o600))
	_, err = LoadSynonymIndex(path)
	assert.Error(t, err)
}
