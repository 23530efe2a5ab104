package cli

// Test Plan for Scan Command:
// - executeScan lists annotated files with marker counts
// - executeScan applies ignore patterns
// - executeScan reports an empty tree
// - executeScan --json emits root and candidates
// - executeScan fails on an invalid glob pattern

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedScanTree writes a small tree: two annotated files, one plain file,
// and one annotated file under an ignorable directory.
func seedScanTree(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "venv"), 0755))

	writeInput(t, filepath.Join(tempDir, "src"), "app.py", annotatedTwoSegments)
	writeInput(t, tempDir, "tool.py", annotatedWithDocstring)
	writeInput(t, tempDir, "plain.py", "x = 1\n")
	writeInput(t, filepath.Join(tempDir, "venv"), "skip.py", annotatedWithDocstring)

	return tempDir
}

func TestExecuteScan_ListsAnnotatedFiles(t *testing.T) {
	tempDir := seedScanTree(t)

	var out bytes.Buffer
	err := executeScan(tempDir, []string{"**/*.py"}, []string{"venv/**"}, false, &out)
	require.NoError(t, err)

	listing := out.String()
	assert.Contains(t, listing, "Found 2 annotated files")
	assert.Contains(t, listing, "src/app.py (markers: 2)")
	assert.Contains(t, listing, "tool.py (markers: 1)")
	assert.NotContains(t, listing, "plain.py")
	assert.NotContains(t, listing, "venv/skip.py")
}

func TestExecuteScan_JSON(t *testing.T) {
	tempDir := seedScanTree(t)

	var out bytes.Buffer
	err := executeScan(tempDir, []string{"**/*.py"}, []string{"venv/**"}, true, &out)
	require.NoError(t, err)

	var report scanReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, tempDir, report.Root)
	require.Len(t, report.Candidates, 2)
	assert.Equal(t, filepath.Join(tempDir, "src", "app.py"), report.Candidates[0].Path)
	assert.Equal(t, 2, report.Candidates[0].Markers)
	assert.Equal(t, filepath.Join(tempDir, "tool.py"), report.Candidates[1].Path)
	assert.Equal(t, 1, report.Candidates[1].Markers)
}

func TestExecuteScan_EmptyTree(t *testing.T) {
	tempDir := t.TempDir()

	var out bytes.Buffer
	err := executeScan(tempDir, []string{"**/*.py"}, nil, false, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "No annotated files found")
}

func TestExecuteScan_InvalidPattern(t *testing.T) {
	var out bytes.Buffer
	err := executeScan(t.TempDir(), []string{"[unclosed"}, nil, false, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create scanner")
}
