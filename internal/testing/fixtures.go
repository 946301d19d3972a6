package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// WriteSource writes a directive source made of lines to fs at path
func WriteSource(t *testing.T, fs afero.Fs, path string, lines ...string) string {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create source directory for %s: %v", path, err)
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := afero.WriteFile(fs, path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write source %s: %v", path, err)
	}

	return path
}

// TouchArtifact creates an empty artifact file, and its parent directories, in fs
func TouchArtifact(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create artifact directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, nil, 0o600); err != nil {
		t.Fatalf("Failed to write artifact %s: %v", path, err)
	}

	return path
}
