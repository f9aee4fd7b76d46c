package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("version 2\n"), 0o644))
}

func TestListRepetitions_NumericDirsSortedByValue(t *testing.T) {
	setup := t.TempDir()
	touch(t, filepath.Join(setup, "0", "vectors.vec"))
	touch(t, filepath.Join(setup, "2", "vectors.vec"))
	touch(t, filepath.Join(setup, "10", "vectors.vec"))
	touch(t, filepath.Join(setup, "analysis", "notes.txt")) // ignored
	touch(t, filepath.Join(setup, "stray.vec"))             // plain file, ignored

	inputs, err := ListRepetitions(setup)
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "0", inputs[0].ID)
	assert.Equal(t, "2", inputs[1].ID)
	assert.Equal(t, "10", inputs[2].ID, "numeric, not lexical, ordering")
}

func TestListRepetitions_CollectsVectorAndScalarFiles(t *testing.T) {
	setup := t.TempDir()
	touch(t, filepath.Join(setup, "0", "vectors.vec"))
	touch(t, filepath.Join(setup, "0", "scalars.sca"))
	touch(t, filepath.Join(setup, "1", "vectors.vec.gz"))

	inputs, err := ListRepetitions(setup)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Len(t, inputs[0].VectorFiles, 1)
	assert.Len(t, inputs[0].ScalarFiles, 1)
	assert.Len(t, inputs[1].VectorFiles, 1, "compressed vector files are discovered")
	assert.Empty(t, inputs[1].ScalarFiles)
}

func TestListRepetitions_MissingDir(t *testing.T) {
	_, err := ListRepetitions(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
