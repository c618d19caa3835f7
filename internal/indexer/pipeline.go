// Package indexer keeps the structural block index in step with the vault.
//
// The index records which note and line carries each block identifier. It is
// a lookup shortcut only: readers must confirm a hit against the file text.
package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"outliner/internal/contextutil"
	"outliner/internal/markers"
	"outliner/internal/storage"
	"outliner/internal/vault"
)

// Pipeline orchestrates the indexing of markdown files into SQLite.
type Pipeline struct {
	vaultManager *vault.Manager
	noteRepo     storage.NoteStore
	blockRepo    storage.BlockStore
	titles       *TitleParser
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	vaultManager *vault.Manager,
	noteRepo storage.NoteStore,
	blockRepo storage.BlockStore,
) *Pipeline {
	return &Pipeline{
		vaultManager: vaultManager,
		noteRepo:     noteRepo,
		blockRepo:    blockRepo,
		titles:       NewTitleParser(),
	}
}

type noteResult struct {
	unchanged bool
	blocks    int
}

// IndexNote indexes a single note file.
// It checks if the file has changed (via hash), extracts the title and
// records every line carrying a block identifier.
func (p *Pipeline) IndexNote(ctx context.Context, relPath string) error {
	_, err := p.indexNote(ctx, relPath)
	return err
}

func (p *Pipeline) indexNote(ctx context.Context, relPath string) (noteResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	vaultID := p.vaultManager.VaultID()

	content, err := p.vaultManager.Read(ctx, relPath)
	if err != nil {
		return noteResult{}, fmt.Errorf("failed to read file %s: %w", relPath, err)
	}

	hash := sha256.Sum256([]byte(content))
	hashHex := fmt.Sprintf("%x", hash)

	existingNote, err := p.noteRepo.GetByVaultAndPath(ctx, vaultID, relPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return noteResult{}, fmt.Errorf("failed to check existing note: %w", err)
	}

	// Skip re-indexing if hash matches
	if existingNote != nil && existingNote.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", relPath, "hash", hashHex)
		return noteResult{unchanged: true}, nil
	}

	var noteID string
	if existingNote != nil {
		noteID = existingNote.ID
	} else {
		noteID = uuid.New().String()
	}

	noteRecord := &storage.NoteRecord{
		ID:      noteID,
		VaultID: vaultID,
		RelPath: relPath,
		Folder:  vault.Folder(relPath),
		Title:   p.titles.Title([]byte(content), filepath.Base(relPath)),
		Hash:    hashHex,
	}
	if err := p.noteRepo.Upsert(ctx, noteRecord); err != nil {
		return noteResult{}, fmt.Errorf("failed to upsert note: %w", err)
	}

	blocks := ExtractBlocks(noteRecord.ID, content)
	if err := p.blockRepo.ReplaceForNote(ctx, noteRecord.ID, blocks); err != nil {
		return noteResult{}, fmt.Errorf("failed to record blocks: %w", err)
	}

	logger.InfoContext(ctx, "indexed note", "rel_path", relPath, "blocks", len(blocks), "title", noteRecord.Title)
	return noteResult{blocks: len(blocks)}, nil
}

// ExtractBlocks returns one record per line that carries a block identifier.
func ExtractBlocks(noteID, content string) []storage.BlockRecord {
	var blocks []storage.BlockRecord
	for i, line := range strings.Split(content, "\n") {
		id := markers.ParseBlockID(line)
		if id == "" {
			continue
		}
		blocks = append(blocks, storage.BlockRecord{
			NoteID:  noteID,
			BlockID: id,
			Line:    i,
			Content: line,
		})
	}
	return blocks
}

// RemoveNote drops a note and its blocks from the index.
func (p *Pipeline) RemoveNote(ctx context.Context, relPath string) error {
	if err := p.noteRepo.DeleteByVaultAndPath(ctx, p.vaultManager.VaultID(), relPath); err != nil {
		return fmt.Errorf("failed to remove %s from index: %w", relPath, err)
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "removed note from index", "rel_path", relPath)
	return nil
}

// LookupBlock returns the indexed location of a block identifier, or
// storage.ErrNotFound.
func (p *Pipeline) LookupBlock(ctx context.Context, blockID string) (*storage.BlockRecord, error) {
	return p.blockRepo.GetByBlockID(ctx, p.vaultManager.VaultID(), blockID)
}

// NoteTitle returns the title recorded for a note when it was last indexed.
// It returns storage.ErrNotFound for notes that are not indexed.
func (p *Pipeline) NoteTitle(ctx context.Context, relPath string) (string, error) {
	note, err := p.noteRepo.GetByVaultAndPath(ctx, p.vaultManager.VaultID(), relPath)
	if err != nil {
		return "", err
	}
	return note.Title, nil
}

// IndexAll scans the vault and indexes all markdown files, then drops index
// entries for files that are gone.
// Errors for individual files are logged but don't stop the indexing process.
func (p *Pipeline) IndexAll(ctx context.Context) (IndexStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var stats IndexStats

	scannedFiles, err := p.vaultManager.ScanAll(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to scan vault: %w", err)
	}
	stats.FilesScanned = len(scannedFiles)

	logger.InfoContext(ctx, "starting indexing", "total_files", len(scannedFiles))

	present := make(map[string]bool, len(scannedFiles))
	for _, file := range scannedFiles {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		present[file.RelPath] = true
		result, err := p.indexNote(ctx, file.RelPath)
		if err != nil {
			stats.Failed++
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}
		stats.add(result)
	}

	indexed, err := p.noteRepo.ListPathsByVault(ctx, p.vaultManager.VaultID())
	if err != nil {
		return stats, fmt.Errorf("failed to list indexed notes: %w", err)
	}
	for _, relPath := range indexed {
		if present[relPath] {
			continue
		}
		if err := p.RemoveNote(ctx, relPath); err != nil {
			stats.Failed++
			logger.ErrorContext(ctx, "failed to remove stale note", "rel_path", relPath, "error", err)
			continue
		}
		stats.Removed++
	}

	logger.InfoContext(ctx, "indexing completed", "stats", stats.String())

	if stats.Failed > 0 {
		return stats, fmt.Errorf("indexing completed with %d errors", stats.Failed)
	}
	return stats, nil
}
