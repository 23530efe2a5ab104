package splitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for AtomicWriter:
// - Installs a planned artifact set, creating the output directory
// - Reports each installed artifact through the progress callback
// - Overwrites same-named files and leaves unrelated files alone
// - Clears a stale staging directory left by an interrupted run
// - Removes the staging directory after a successful install

func TestAtomicWriter_InstallsArtifacts(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "mypackage")
	w, err := NewAtomicWriter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.OutputDir())

	var installed []string
	err = w.WriteArtifacts([]Artifact{
		{Name: "core.py", Content: "x = 1\n"},
		{Name: InitFile, Content: "__all__ = []\n"},
	}, func(name string) {
		installed = append(installed, name)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "core.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, InitFile))
	require.NoError(t, err)
	assert.Equal(t, "__all__ = []\n", string(data))

	assert.Equal(t, []string{"core.py", InitFile}, installed)

	_, err = os.Stat(filepath.Join(dir, ".tmp"))
	assert.True(t, os.IsNotExist(err), "staging directory should be removed after install")
}

func TestAtomicWriter_OverwritesAndPreserves(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core.py"), []byte("stale\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me\n"), 0644))

	w, err := NewAtomicWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteArtifacts([]Artifact{{Name: "core.py", Content: "fresh\n"}}, nil))

	data, err := os.ReadFile(filepath.Join(dir, "core.py"))
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", string(data))
}

func TestAtomicWriter_ClearsStaleStaging(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stale := filepath.Join(dir, ".tmp")
	require.NoError(t, os.MkdirAll(stale, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "leftover.py"), []byte("x"), 0644))

	_, err := NewAtomicWriter(dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(stale)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAtomicWriter_EndToEnd(t *testing.T) {
	t.Parallel()

	res, err := Split(loadFixture(t, "testsplitfile.py"), Options{})
	require.NoError(t, err)

	dir := t.TempDir()
	w, err := NewAtomicWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteArtifacts(res.Artifacts, nil))

	for _, a := range res.Artifacts {
		data, err := os.ReadFile(filepath.Join(dir, a.Name))
		require.NoError(t, err)
		assert.Equal(t, a.Content, string(data), a.Name)
	}
}
