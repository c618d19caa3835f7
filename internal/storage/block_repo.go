package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_block_store.go -package=mocks outliner/internal/storage BlockStore

import (
	"context"
	"database/sql"
	"fmt"
)

// BlockStore defines the interface for block index operations.
type BlockStore interface {
	// ReplaceForNote swaps the indexed blocks of a note for blocks.
	ReplaceForNote(ctx context.Context, noteID string, blocks []BlockRecord) error
	// GetByBlockID finds an indexed block by its identifier within a vault.
	// RelPath is filled from the owning note. Returns ErrNotFound if not found.
	GetByBlockID(ctx context.Context, vaultID int, blockID string) (*BlockRecord, error)
	// ListByNote returns the indexed blocks of a note ordered by line.
	ListByNote(ctx context.Context, noteID string) ([]BlockRecord, error)
}

// BlockRepo provides methods for block index operations.
// It implements the BlockStore interface.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo creates a new BlockRepo.
func NewBlockRepo(db *sql.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

// ReplaceForNote deletes the note's blocks and inserts blocks in a single
// transaction. A block id that appears twice in the note keeps its first line.
func (r *BlockRepo) ReplaceForNote(ctx context.Context, noteID string, blocks []BlockRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM blocks WHERE note_id = ?", noteID); err != nil {
		return fmt.Errorf("failed to delete blocks by note: %w", err)
	}

	for _, b := range blocks {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO blocks (note_id, block_id, line, content) VALUES (?, ?, ?, ?)",
			noteID, b.BlockID, b.Line, b.Content,
		)
		if err != nil {
			return fmt.Errorf("failed to insert block %s: %w", b.BlockID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit blocks: %w", err)
	}
	return nil
}

// GetByBlockID finds a block by identifier. When the id is indexed in more
// than one note the note with the smallest path wins.
func (r *BlockRepo) GetByBlockID(ctx context.Context, vaultID int, blockID string) (*BlockRecord, error) {
	var b BlockRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT b.note_id, b.block_id, b.line, b.content, n.rel_path
		 FROM blocks b JOIN notes n ON n.id = b.note_id
		 WHERE n.vault_id = ? AND b.block_id = ?
		 ORDER BY n.rel_path LIMIT 1`,
		vaultID, blockID,
	).Scan(&b.NoteID, &b.BlockID, &b.Line, &b.Content, &b.RelPath)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query block: %w", err)
	}

	return &b, nil
}

// ListByNote returns the indexed blocks of a note ordered by line.
// Returns an empty slice if the note has no blocks (not an error).
func (r *BlockRepo) ListByNote(ctx context.Context, noteID string) ([]BlockRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT note_id, block_id, line, content FROM blocks WHERE note_id = ? ORDER BY line",
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	blocks := []BlockRecord{}
	for rows.Next() {
		var b BlockRecord
		if err := rows.Scan(&b.NoteID, &b.BlockID, &b.Line, &b.Content); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return blocks, nil
}
