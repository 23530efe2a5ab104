package mcp

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/monosplit/internal/splitter"
)

// Test Plan for the inspect tool handler:
// - Returns the full plan as JSON without writing anything
// - Diagnostics ride along in the plan
// - Missing path argument returns an error result
// - Syntax errors return an error result

func TestInspectTool_ReturnsPlan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "tool.py", annotatedSource)

	handler := createInspectHandler(nil)
	result := callTool(t, handler, "monosplit_inspect", map[string]interface{}{
		"path": path,
	})

	require.False(t, result.IsError)

	var res splitter.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &res))

	require.Len(t, res.Segments, 2)
	assert.Equal(t, "helpers.py", res.Segments[0].File)
	assert.Equal(t, []string{"helper"}, res.Segments[0].Exports)
	assert.Equal(t, []string{"helper"}, res.Segments[1].CrossRefs)
	assert.Len(t, res.Artifacts, 3)

	// Inspect never writes
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInspectTool_ReportsDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "tool.py", `this_runs = 1

# pragma: newfile("part.py")

def part():
    return this_runs
`)

	handler := createInspectHandler(nil)
	result := callTool(t, handler, "monosplit_inspect", map[string]interface{}{
		"path": path,
	})

	require.False(t, result.IsError)

	var res splitter.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &res))

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, splitter.DiagDroppedPrologue, res.Diagnostics[0].Code)
}

func TestInspectTool_MissingPath(t *testing.T) {
	t.Parallel()

	handler := createInspectHandler(nil)
	result := callTool(t, handler, "monosplit_inspect", map[string]interface{}{})

	assert.True(t, result.IsError)
}

func TestInspectTool_SyntaxError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "broken.py", "# pragma: newfile(\"a.py\")\ndef broken(:\n")

	handler := createInspectHandler(nil)
	result := callTool(t, handler, "monosplit_inspect", map[string]interface{}{
		"path": path,
	})

	assert.True(t, result.IsError)
}
