package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastPathRoundTrip(t *testing.T) {
	db, err := NewStateDB(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	// Fresh database: nothing recorded yet.
	last, err := db.LastPath()
	require.NoError(t, err)
	assert.Equal(t, "", last)

	require.NoError(t, db.SetLastPath("/art/starry_night.jpg"))
	last, err = db.LastPath()
	require.NoError(t, err)
	assert.Equal(t, "/art/starry_night.jpg", last)

	// Later writes overwrite.
	require.NoError(t, db.SetLastPath("/art/water_lilies.png"))
	last, err = db.LastPath()
	require.NoError(t, err)
	assert.Equal(t, "/art/water_lilies.png", last)
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := NewStateDB(dir)
	require.NoError(t, err)
	require.NoError(t, db.SetLastPath("/art/guernica.png"))
	require.NoError(t, db.Close())

	db, err = NewStateDB(dir)
	require.NoError(t, err)
	defer db.Close()
	last, err := db.LastPath()
	require.NoError(t, err)
	assert.Equal(t, "/art/guernica.png", last)
}

func TestOpenFailure(t *testing.T) {
	// A file where the directory should be makes bolt.Open fail.
	_, err := NewStateDB(filepath.Join(t.TempDir(), "not-a-dir", "nested"))
	assert.Error(t, err)
}
