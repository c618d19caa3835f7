// Package linkedcopy keeps mirrors of list items in step with their
// originals.
//
// An original is a list item whose line ends with a block identifier; a
// mirror is a list item whose line ends with a mirror marker naming that
// identifier. Sync is one-directional: mirrors are rewritten from their
// originals and never the other way round. Nothing is kept between calls
// except a short-lived cache of mirror locations; every lookup reads the
// current file text.
package linkedcopy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"outliner/internal/markers"
	"outliner/internal/outline"
	"outliner/internal/storage"
)

// Files is whole-file access to the vault's markdown notes.
type Files interface {
	MarkdownFiles(ctx context.Context) ([]string, error)
	Read(ctx context.Context, relPath string) (string, error)
	Write(ctx context.Context, relPath, content string) error
	Exists(relPath string) bool
}

// BlockIndex locates block identifiers without scanning the vault. Results
// may be stale.
type BlockIndex interface {
	LookupBlock(ctx context.Context, blockID string) (*storage.BlockRecord, error)
}

// Block is an original list item as found in its file.
type Block struct {
	ID       string   `json:"id"`
	RelPath  string   `json:"rel_path"`
	Line     int      `json:"line"`
	Content  string   `json:"content"`
	Children []string `json:"children"`
}

// Mirror is a mirror root line and its children as found in a file.
type Mirror struct {
	SourceID string   `json:"source_id"`
	RelPath  string   `json:"rel_path"`
	Line     int      `json:"line"`
	Content  string   `json:"content"`
	Children []string `json:"children"`
}

// Location is where a mirror root sits.
type Location struct {
	RelPath string `json:"rel_path"`
	Line    int    `json:"line"`
}

// Store answers vault-wide queries about originals and mirrors.
type Store struct {
	files  Files
	index  BlockIndex
	logger *slog.Logger
}

// NewStore creates a store over files. index may be nil, in which case every
// block lookup scans the vault.
func NewStore(files Files, index BlockIndex) *Store {
	return &Store{
		files:  files,
		index:  index,
		logger: slog.Default().With("component", "linkedcopy"),
	}
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// FindBlockByID returns the original carrying id, or nil when no file holds
// it. The block index is tried first; a hit is only trusted when the fresh
// file text still carries the id on that line.
func (s *Store) FindBlockByID(ctx context.Context, id string) (*Block, error) {
	if b := s.lookupIndexed(ctx, id); b != nil {
		return b, nil
	}

	paths, err := s.files.MarkdownFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	for _, relPath := range paths {
		lines, err := s.readLines(ctx, relPath)
		if err != nil {
			return nil, err
		}
		for i, line := range lines {
			if markers.ParseBlockID(line) == id {
				return newBlock(id, relPath, lines, i), nil
			}
		}
	}
	return nil, nil
}

func (s *Store) lookupIndexed(ctx context.Context, id string) *Block {
	if s.index == nil {
		return nil
	}
	rec, err := s.index.LookupBlock(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("block index lookup failed", "id", id, "error", err)
		}
		return nil
	}

	lines, err := s.readLines(ctx, rec.RelPath)
	if err != nil || rec.Line >= len(lines) || markers.ParseBlockID(lines[rec.Line]) != id {
		s.logger.Debug("stale block index entry", "id", id, "rel_path", rec.RelPath, "line", rec.Line)
		return nil
	}
	return newBlock(id, rec.RelPath, lines, rec.Line)
}

func newBlock(id, relPath string, lines []string, line int) *Block {
	return &Block{
		ID:       id,
		RelPath:  relPath,
		Line:     line,
		Content:  lines[line],
		Children: outline.ChildLines(lines, line),
	}
}

// FindMirrorsByID returns every mirror of id across the vault. Mirror
// markers are not indexed, so this reads every note.
func (s *Store) FindMirrorsByID(ctx context.Context, id string) ([]Mirror, error) {
	paths, err := s.files.MarkdownFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var mirrors []Mirror
	for _, relPath := range paths {
		lines, err := s.readLines(ctx, relPath)
		if err != nil {
			return nil, err
		}
		for _, m := range mirrorsIn(relPath, lines) {
			if m.SourceID == id {
				mirrors = append(mirrors, m)
			}
		}
	}
	return mirrors, nil
}

// FindMirrorsInFile returns every mirror in one note.
func (s *Store) FindMirrorsInFile(ctx context.Context, relPath string) ([]Mirror, error) {
	lines, err := s.readLines(ctx, relPath)
	if err != nil {
		return nil, err
	}
	return mirrorsIn(relPath, lines), nil
}

// FindDanglingMirrors returns the mirrors whose original no longer exists
// anywhere in the vault.
func (s *Store) FindDanglingMirrors(ctx context.Context) ([]Mirror, error) {
	paths, err := s.files.MarkdownFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	ids := make(map[string]bool)
	var mirrors []Mirror
	for _, relPath := range paths {
		lines, err := s.readLines(ctx, relPath)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			if id := markers.ParseBlockID(line); id != "" {
				ids[id] = true
			}
		}
		mirrors = append(mirrors, mirrorsIn(relPath, lines)...)
	}

	var dangling []Mirror
	for _, m := range mirrors {
		if !ids[m.SourceID] {
			dangling = append(dangling, m)
		}
	}
	return dangling, nil
}

func mirrorsIn(relPath string, lines []string) []Mirror {
	var mirrors []Mirror
	for i, line := range lines {
		id := markers.ParseMirrorMarker(line)
		if id == "" {
			continue
		}
		mirrors = append(mirrors, Mirror{
			SourceID: id,
			RelPath:  relPath,
			Line:     i,
			Content:  line,
			Children: outline.ChildLines(lines, i),
		})
	}
	return mirrors
}

func (s *Store) readLines(ctx context.Context, relPath string) ([]string, error) {
	content, err := s.files.Read(ctx, relPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return splitLines(content), nil
}

// FindMirrorParent returns the mirror marker that governs line n: the marker
// on n itself or on its nearest indentation ancestor that carries one. The
// walk stops at the first top-level line.
func FindMirrorParent(lines []string, n int) (id string, mirrorLine int, ok bool) {
	if n < 0 || n >= len(lines) {
		return "", -1, false
	}
	if id := markers.ParseMirrorMarker(lines[n]); id != "" {
		return id, n, true
	}

	minIndent := outline.IndentLevel(lines[n])
	for i := n - 1; i >= 0 && minIndent > 0; i-- {
		line := lines[i]
		if outline.IsBlank(line) {
			continue
		}
		indent := outline.IndentLevel(line)
		if indent >= minIndent {
			continue
		}
		if id := markers.ParseMirrorMarker(line); id != "" {
			return id, i, true
		}
		minIndent = indent
	}
	return "", -1, false
}
