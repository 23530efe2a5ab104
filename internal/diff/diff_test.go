package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for diff:
// - Unified marks removed and added lines under the file's name
// - Added diffs from /dev/null
// - Render skips unchanged files and concatenates the rest

func TestUnified_MarksChangedLines(t *testing.T) {
	t.Parallel()

	patch := Unified("core.py",
		[]byte("x = 1\ny = 2\n"),
		[]byte("x = 1\ny = 3\n"),
		Options{})

	assert.Contains(t, patch, "--- core.py")
	assert.Contains(t, patch, "+++ core.py")
	assert.Contains(t, patch, "-y = 2")
	assert.Contains(t, patch, "+y = 3")
	assert.Contains(t, patch, " x = 1")
}

func TestAdded_DiffsFromDevNull(t *testing.T) {
	t.Parallel()

	patch := Added("__init__.py", []byte("__all__ = []\n"), Options{})

	assert.Contains(t, patch, "--- /dev/null")
	assert.Contains(t, patch, "+++ __init__.py")
	assert.Contains(t, patch, "+__all__ = []")
}

func TestRender_SkipsUnchanged(t *testing.T) {
	t.Parallel()

	out := Render([]File{
		{Name: "same.py", Old: []byte("a = 1\n"), New: []byte("a = 1\n")},
		{Name: "changed.py", Old: []byte("b = 1\n"), New: []byte("b = 2\n")},
		{Name: "new.py", Old: nil, New: []byte("c = 3\n")},
	}, Options{})

	assert.NotContains(t, out, "same.py")
	assert.Contains(t, out, "--- changed.py")
	assert.Contains(t, out, "-b = 1")
	assert.Contains(t, out, "+b = 2")
	assert.Contains(t, out, "+++ new.py")
	assert.Contains(t, out, "+c = 3")
}

func TestRender_AllUnchangedRendersNothing(t *testing.T) {
	t.Parallel()

	out := Render([]File{
		{Name: "a.py", Old: []byte("x = 1\n"), New: []byte("x = 1\n")},
	}, Options{})

	assert.Empty(t, out)
}
