package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vault_store.go -package=mocks outliner/internal/storage VaultStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// VaultStore defines the interface for vault storage operations.
type VaultStore interface {
	// GetOrCreateByName gets a vault by name, registering it when missing.
	GetOrCreateByName(ctx context.Context, name, rootPath string) (VaultRecord, error)
	// ListAll returns all vaults ordered by name.
	ListAll(ctx context.Context) ([]VaultRecord, error)
}

// VaultRepo provides methods for vault operations.
// It implements the VaultStore interface.
type VaultRepo struct {
	db *sql.DB
}

// NewVaultRepo creates a new VaultRepo.
func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

// GetOrCreateByName gets an existing vault by name, or creates it if it doesn't exist.
func (r *VaultRepo) GetOrCreateByName(ctx context.Context, name, rootPath string) (VaultRecord, error) {
	vault, err := r.scanOne(ctx, "SELECT id, name, root_path, created_at FROM vaults WHERE name = ?", name)
	if err == nil {
		return vault, nil
	}
	if err != ErrNotFound {
		return VaultRecord{}, err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO vaults (name, root_path) VALUES (?, ?)",
		name, rootPath,
	)
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to insert vault: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to get vault id: %w", err)
	}

	return r.scanOne(ctx, "SELECT id, name, root_path, created_at FROM vaults WHERE id = ?", id)
}

// ListAll returns all vaults ordered by name.
func (r *VaultRepo) ListAll(ctx context.Context) ([]VaultRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, root_path, created_at FROM vaults ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query vaults: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var vaults []VaultRecord
	for rows.Next() {
		var vault VaultRecord
		var createdAtStr string
		if err := rows.Scan(&vault.ID, &vault.Name, &vault.RootPath, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan vault: %w", err)
		}
		if vault.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
			return nil, err
		}
		vaults = append(vaults, vault)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return vaults, nil
}

func (r *VaultRepo) scanOne(ctx context.Context, query string, arg any) (VaultRecord, error) {
	var vault VaultRecord
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&vault.ID, &vault.Name, &vault.RootPath, &createdAtStr)
	if err == sql.ErrNoRows {
		return VaultRecord{}, ErrNotFound
	}
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to query vault: %w", err)
	}
	if vault.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return VaultRecord{}, err
	}
	return vault, nil
}

// parseTimestamp reads a DATETIME column. SQLite hands back either its own
// layout or RFC 3339 depending on how the value was written.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
