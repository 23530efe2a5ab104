// Package discovery finds split candidates under a directory tree: files
// matching the configured include globs that carry at least one marker
// line.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/monosplit/internal/splitter"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Candidate is one marker-annotated file found under the scan root.
type Candidate struct {
	Path    string `json:"path"`
	Markers int    `json:"markers"`
}

// Scanner handles candidate discovery with glob patterns and ignore rules.
type Scanner struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewScanner creates a scanner rooted at rootDir.
func NewScanner(rootDir string, includePatterns, ignorePatterns []string) (*Scanner, error) {
	s := &Scanner{
		rootDir: rootDir,
	}

	// Compile glob patterns
	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		s.includePatterns = append(s.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		s.ignorePatterns = append(s.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return s, nil
}

// Scan walks the tree and returns every included file containing at least
// one marker line, in walk order.
func (s *Scanner) Scan() ([]Candidate, error) {
	candidates := []Candidate{}

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		// Get relative path for pattern matching
		relPath, err := filepath.Rel(s.rootDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		// Check ignore patterns
		if s.shouldIgnore(relPath) {
			return nil
		}

		if !s.matchesAnyPattern(relPath, s.includePatterns) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if markers := splitter.CountMarkers(data); markers > 0 {
			candidates = append(candidates, Candidate{Path: path, Markers: markers})
		}

		return nil
	})

	return candidates, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (s *Scanner) shouldIgnore(relPath string) bool {
	// Always ignore the tool's own config directory
	if strings.HasPrefix(relPath, ".monosplit/") || relPath == ".monosplit" {
		return true
	}

	// Check if the path matches any ignore pattern
	if s.matchesAnyPattern(relPath, s.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix
	// For example, "__pycache__" should match pattern "__pycache__/**"
	pathWithSuffix := relPath + "/**"
	return s.matchesAnyPattern(pathWithSuffix, s.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (s *Scanner) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching against
	// patterns with **/ prefix removed. This makes "**/*.py" match both "tool.py"
	// and "src/tool.py" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			// If pattern starts with **/, try matching without it
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
