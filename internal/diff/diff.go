// Package diff renders unified patches between planned artifacts and the
// files currently on disk. It uses github.com/pmezard/go-difflib/difflib
// to produce classic unified output (---/+++ headers, @@ hunks, lines
// prefixed with ' ', '-', '+').
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation behavior.
type Options struct {
	// Context is the number of context lines per hunk. 0 means 3.
	Context int
}

// File is one named before/after pair. Old is nil when the file does not
// exist on disk yet.
type File struct {
	Name string
	Old  []byte
	New  []byte
}

// Render returns the concatenated unified patches for every changed file.
// Unchanged files contribute nothing; a fully unchanged set renders "".
func Render(files []File, opt Options) string {
	var out strings.Builder
	for _, f := range files {
		if f.Old == nil {
			out.WriteString(Added(f.Name, f.New, opt))
			continue
		}
		if string(f.Old) == string(f.New) {
			continue
		}
		out.WriteString(Unified(f.Name, f.Old, f.New, opt))
	}
	return out.String()
}

// Unified produces a classic unified patch for a↦b under one file name.
func Unified(name string, a, b []byte, opt Options) string {
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: name,
		ToFile:   name,
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

// Added produces a patch that introduces the entire content (no old version).
func Added(name string, content []byte, opt Options) string {
	u := difflib.UnifiedDiff{
		A:        []string{}, // empty "from"
		B:        splitLinesKeepNL(string(content)),
		FromFile: "/dev/null",
		ToFile:   name,
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

func contextLines(opt Options) int {
	if opt.Context <= 0 {
		return 3
	}
	return opt.Context
}

// splitLinesKeepNL splits into lines and keeps newline characters,
// which produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	// SplitAfter keeps the "\n" at the end of each element.
	return strings.SplitAfter(s, "\n")
}
