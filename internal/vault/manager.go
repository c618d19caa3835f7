// Package vault gives whole-file access to the markdown files under a vault
// root and reports changes to them.
package vault

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"outliner/internal/storage"
)

// ErrOutsideVault is returned for paths that resolve outside the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// Manager resolves vault-relative paths and reads and writes note files.
type Manager struct {
	vaultRepo storage.VaultStore
	vault     storage.VaultRecord
}

// NewManager registers the vault under name and returns a manager for it.
func NewManager(ctx context.Context, vaultRepo storage.VaultStore, name, rootPath string) (*Manager, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root %s: %w", rootPath, err)
	}

	vault, err := vaultRepo.GetOrCreateByName(ctx, name, root)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault %s: %w", name, err)
	}
	// files are served from the configured root even if the vault was
	// registered elsewhere
	vault.RootPath = root

	return &Manager{vaultRepo: vaultRepo, vault: vault}, nil
}

// Vault returns the vault record.
func (m *Manager) Vault() storage.VaultRecord { return m.vault }

// VaultID returns the vault's database id.
func (m *Manager) VaultID() int { return m.vault.ID }

// Root returns the absolute vault root.
func (m *Manager) Root() string { return m.vault.RootPath }

// AbsPath returns the absolute path for a vault-relative path.
func (m *Manager) AbsPath(relPath string) (string, error) {
	abs := filepath.Join(m.vault.RootPath, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(m.vault.RootPath, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, relPath)
	}
	return abs, nil
}

// RelPath converts an absolute path under the vault root to a normalized
// vault-relative path with forward slashes.
func (m *Manager) RelPath(absPath string) (string, error) {
	rel, err := filepath.Rel(m.vault.RootPath, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path for %s: %w", absPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, absPath)
	}
	return filepath.ToSlash(rel), nil
}

// Folder returns the folder part of a relative path, "" for root-level files.
func Folder(relPath string) string {
	folder := filepath.ToSlash(filepath.Dir(filepath.FromSlash(relPath)))
	if folder == "." {
		return ""
	}
	return folder
}
