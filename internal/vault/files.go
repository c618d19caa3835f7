package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileNotFound is returned when a note does not exist.
var ErrFileNotFound = errors.New("file not found")

// Read returns the full text of a note.
func (m *Manager) Read(ctx context.Context, relPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := m.AbsPath(relPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, relPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return string(data), nil
}

// Write replaces the text of a note. The content goes to a temporary file
// in the same directory that is then renamed over the note, so readers see
// either the old or the new text. Missing parent folders are created.
func (m *Manager) Write(ctx context.Context, relPath, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := m.AbsPath(relPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", relPath, err)
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	// dot prefix and .tmp suffix keep the temp file out of scans and watches
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", relPath, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set mode on %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", relPath, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("failed to replace %s: %w", relPath, err)
	}
	return nil
}

// Exists reports whether a note exists.
func (m *Manager) Exists(relPath string) bool {
	abs, err := m.AbsPath(relPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// Remove deletes a note. Removing a missing note is not an error.
func (m *Manager) Remove(ctx context.Context, relPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := m.AbsPath(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", relPath, err)
	}
	return nil
}
