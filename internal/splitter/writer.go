package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DeriveOutputDir returns the default install directory for a source
// file: a directory named after the file's stem, next to it.
func DeriveOutputDir(sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(filepath.Dir(sourcePath), stem)
}

// AtomicWriter installs a planned artifact set using the temp → rename
// pattern. Every artifact is staged before the first rename, so a write
// failure leaves the output directory untouched.
type AtomicWriter struct {
	outputDir string
	tempDir   string
}

// NewAtomicWriter creates a writer rooted at outputDir, creating the
// directory if needed and clearing any stale staging area.
func NewAtomicWriter(outputDir string) (*AtomicWriter, error) {
	tempDir := filepath.Join(outputDir, ".tmp")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Clean up stale temp files
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &AtomicWriter{
		outputDir: outputDir,
		tempDir:   tempDir,
	}, nil
}

// WriteArtifacts stages every artifact, then renames each into place.
// Existing files with the same names are overwritten; unrelated files in
// the output directory are left alone. progress, when non-nil, is called
// once per installed artifact.
func (w *AtomicWriter) WriteArtifacts(artifacts []Artifact, progress func(name string)) error {
	defer os.RemoveAll(w.tempDir)

	for _, a := range artifacts {
		tempPath := filepath.Join(w.tempDir, a.Name)
		if err := os.WriteFile(tempPath, []byte(a.Content), 0644); err != nil {
			return fmt.Errorf("failed to stage %s: %w", a.Name, err)
		}
	}

	for _, a := range artifacts {
		tempPath := filepath.Join(w.tempDir, a.Name)
		finalPath := filepath.Join(w.outputDir, a.Name)
		if err := os.Rename(tempPath, finalPath); err != nil {
			return fmt.Errorf("failed to install %s: %w", a.Name, err)
		}
		if progress != nil {
			progress(a.Name)
		}
	}

	return nil
}

// OutputDir returns the directory artifacts are installed into.
func (w *AtomicWriter) OutputDir() string {
	return w.outputDir
}
