package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedFile represents a markdown file found during vault scanning.
type ScannedFile struct {
	VaultID int    // Vault ID from database
	RelPath string // Relative path from vault root (e.g., "projects/meeting-notes.md")
	Folder  string // RelPath without the file name, "" at the root
	AbsPath string // Absolute file path
}

// IsMarkdown reports whether a path names a markdown note.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// skipDir reports whether a directory below the root is left out of scans
// and watches. Hidden directories hold host configuration (.obsidian) or
// trash.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ScanAll walks the vault and returns every markdown file, sorted by path.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	var scannedFiles []ScannedFile
	root := m.vault.RootPath

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsMarkdown(path) {
			return nil
		}

		relPath, err := m.RelPath(path)
		if err != nil {
			return err
		}

		scannedFiles = append(scannedFiles, ScannedFile{
			VaultID: m.vault.ID,
			RelPath: relPath,
			Folder:  Folder(relPath),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return scannedFiles, fmt.Errorf("failed to scan vault %s: %w", m.vault.Name, err)
	}

	sort.Slice(scannedFiles, func(i, j int) bool {
		return scannedFiles[i].RelPath < scannedFiles[j].RelPath
	})
	return scannedFiles, nil
}

// MarkdownFiles returns the relative paths of all markdown files, sorted.
func (m *Manager) MarkdownFiles(ctx context.Context) ([]string, error) {
	files, err := m.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelPath
	}
	return paths, nil
}
