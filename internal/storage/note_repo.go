package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks outliner/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// GetByVaultAndPath gets a note by vault ID and relative path.
	// Returns nil and ErrNotFound if not found.
	GetByVaultAndPath(ctx context.Context, vaultID int, relPath string) (*NoteRecord, error)
	// Upsert inserts a new note or updates an existing one.
	Upsert(ctx context.Context, note *NoteRecord) error
	// DeleteByVaultAndPath removes a note and, by cascade, its blocks.
	// Deleting a note that is not indexed is not an error.
	DeleteByVaultAndPath(ctx context.Context, vaultID int, relPath string) error
	// ListPathsByVault returns the relative paths of all indexed notes.
	ListPathsByVault(ctx context.Context, vaultID int) ([]string, error)
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// GetByVaultAndPath gets a note by vault ID and relative path.
// Returns nil and ErrNotFound if not found.
func (r *NoteRepo) GetByVaultAndPath(ctx context.Context, vaultID int, relPath string) (*NoteRecord, error) {
	var note NoteRecord
	var updatedAtStr string
	var title sql.NullString

	err := r.db.QueryRowContext(ctx,
		"SELECT id, vault_id, rel_path, folder, title, updated_at, hash FROM notes WHERE vault_id = ? AND rel_path = ?",
		vaultID, relPath,
	).Scan(&note.ID, &note.VaultID, &note.RelPath, &note.Folder, &title, &updatedAtStr, &note.Hash)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	note.Title = title.String

	if note.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}

	return &note, nil
}

// Upsert inserts a new note or updates an existing one.
// New notes get a fresh UUID; existing notes keep theirs.
func (r *NoteRepo) Upsert(ctx context.Context, note *NoteRecord) error {
	existing, err := r.GetByVaultAndPath(ctx, note.VaultID, note.RelPath)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing note: %w", err)
	}

	if existing == nil && note.ID == "" {
		note.ID = uuid.New().String()
	} else if existing != nil {
		note.ID = existing.ID
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (id, vault_id, rel_path, folder, title, updated_at, hash)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
		 ON CONFLICT (vault_id, rel_path) DO UPDATE SET
		 title = excluded.title, updated_at = CURRENT_TIMESTAMP, hash = excluded.hash`,
		note.ID, note.VaultID, note.RelPath, note.Folder, note.Title, note.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	return nil
}

// DeleteByVaultAndPath removes a note and its blocks.
func (r *NoteRepo) DeleteByVaultAndPath(ctx context.Context, vaultID int, relPath string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM notes WHERE vault_id = ? AND rel_path = ?",
		vaultID, relPath,
	)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// ListPathsByVault returns the relative paths of all indexed notes, sorted.
func (r *NoteRepo) ListPathsByVault(ctx context.Context, vaultID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT rel_path FROM notes WHERE vault_id = ? ORDER BY rel_path",
		vaultID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query note paths: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan note path: %w", err)
		}
		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return paths, nil
}
