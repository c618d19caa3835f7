package linkedcopy

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"outliner/internal/markers"
	"outliner/internal/outline"
)

// Indexer keeps the block index in step with files the engine writes or
// loses.
type Indexer interface {
	IndexNote(ctx context.Context, relPath string) error
	RemoveNote(ctx context.Context, relPath string) error
}

// Options configures an Engine.
type Options struct {
	// Enabled turns the whole feature on or off.
	Enabled bool
	// Debounce coalesces bursts of modifications into one sync.
	Debounce time.Duration
	// CacheMaxAge bounds how long mirror locations are reused.
	CacheMaxAge time.Duration
	// CopyMaxAge bounds how long a recorded copy can be pasted.
	CopyMaxAge time.Duration
	// IndentUnit is added when pasting below a list item.
	IndentUnit string
	// Debug logs the engine's progress at info level.
	Debug bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Enabled:     true,
		Debounce:    300 * time.Millisecond,
		CacheMaxAge: 5 * time.Second,
		CopyMaxAge:  5 * time.Minute,
		IndentUnit:  "\t",
	}
}

type cacheEntry struct {
	mirrors []Location
	at      time.Time
}

// Engine propagates original content to mirrors, removes mirrors whose
// original is gone and carries the manual linked copy commands.
type Engine struct {
	store   *Store
	files   Files
	indexer Indexer
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	syncing atomic.Bool

	mu       sync.Mutex
	timer    *time.Timer
	closed   bool
	cache    map[string]cacheEntry
	lastCopy *CopySource
}

// NewEngine creates an engine over files. indexer may be nil.
func NewEngine(store *Store, files Files, indexer Indexer, opts Options) *Engine {
	return &Engine{
		store:   store,
		files:   files,
		indexer: indexer,
		opts:    opts,
		logger:  slog.Default().With("component", "linkedcopy"),
		now:     time.Now,
		cache:   make(map[string]cacheEntry),
	}
}

// Store returns the engine's query layer.
func (e *Engine) Store() *Store { return e.store }

// Enabled reports whether linked copies are turned on.
func (e *Engine) Enabled() bool { return e.opts.Enabled }

// debug logs progress messages, at info level when Debug is set.
func (e *Engine) debug(ctx context.Context, msg string, args ...any) {
	level := slog.LevelDebug
	if e.opts.Debug {
		level = slog.LevelInfo
	}
	e.logger.Log(ctx, level, msg, args...)
}

// OnModified schedules a sync for relPath. Modifications that arrive within
// the debounce delay replace each other; only the latest path is synced.
func (e *Engine) OnModified(relPath string) {
	if !e.opts.Enabled || !vaultNote(relPath) {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.invalidateLocked()
	if e.closed {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.opts.Debounce, func() {
		ctx := context.Background()
		if err := e.Sync(ctx, relPath); err != nil {
			e.logger.Error("sync failed", "rel_path", relPath, "error", err)
		}
	})
}

// Sync runs one sync pass for a modified note: it repairs malformed block
// identifiers, pushes each original in the note to its mirrors and refreshes
// the mirrors the note itself holds. A call made while another pass runs
// returns at once without doing anything.
func (e *Engine) Sync(ctx context.Context, relPath string) error {
	if !e.opts.Enabled {
		return nil
	}
	if !e.syncing.CompareAndSwap(false, true) {
		e.debug(ctx, "sync already running, dropping request", "rel_path", relPath)
		return nil
	}
	defer e.syncing.Store(false)

	e.debug(ctx, "sync triggered", "rel_path", relPath)

	lines, err := e.store.readLines(ctx, relPath)
	if err != nil {
		return err
	}

	if repaired := repairBlockIDs(lines); repaired > 0 {
		e.debug(ctx, "repairing block ids", "rel_path", relPath, "count", repaired)
		if err := e.write(ctx, relPath, lines); err != nil {
			return err
		}
	}

	originals := originalsIn(relPath, lines)
	if err := e.propagate(ctx, originals); err != nil {
		return fmt.Errorf("failed to propagate %s: %w", relPath, err)
	}

	if err := e.refreshMirrorsInFile(ctx, relPath); err != nil {
		return fmt.Errorf("failed to refresh mirrors in %s: %w", relPath, err)
	}
	return nil
}

func repairBlockIDs(lines []string) int {
	n := 0
	for i, line := range lines {
		if markers.HasBlockIDWithoutSpace(line) {
			lines[i] = markers.RepairBlockID(line)
			n++
		}
	}
	return n
}

func originalsIn(relPath string, lines []string) []*Block {
	var originals []*Block
	for i, line := range lines {
		if id := markers.ParseBlockID(line); id != "" {
			originals = append(originals, newBlock(id, relPath, lines, i))
		}
	}
	return originals
}

// target pairs a mirror root line with the original it renders.
type target struct {
	line     int
	original *Block
}

// propagate rewrites every mirror of originals, one read and at most one
// write per affected file.
func (e *Engine) propagate(ctx context.Context, originals []*Block) error {
	byFile := make(map[string][]target)
	for _, original := range originals {
		mirrors, err := e.store.FindMirrorsByID(ctx, original.ID)
		if err != nil {
			return err
		}
		e.remember(original.ID, mirrors)
		e.debug(ctx, "found mirrors", "id", original.ID, "count", len(mirrors))

		for _, m := range mirrors {
			byFile[m.RelPath] = append(byFile[m.RelPath], target{line: m.Line, original: original})
		}
	}

	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		if err := e.rewriteMirrors(ctx, relPath, byFile[relPath]); err != nil {
			return err
		}
	}
	return nil
}

// refreshMirrorsInFile re-renders every mirror held by relPath from its
// original, wherever that lives.
func (e *Engine) refreshMirrorsInFile(ctx context.Context, relPath string) error {
	mirrors, err := e.store.FindMirrorsInFile(ctx, relPath)
	if err != nil {
		return err
	}

	var targets []target
	for _, m := range mirrors {
		original, err := e.store.FindBlockByID(ctx, m.SourceID)
		if err != nil {
			return err
		}
		if original == nil {
			e.debug(ctx, "original not found for mirror", "id", m.SourceID, "rel_path", relPath, "line", m.Line)
			continue
		}
		targets = append(targets, target{line: m.Line, original: original})
	}
	if len(targets) == 0 {
		return nil
	}
	return e.rewriteMirrors(ctx, relPath, targets)
}

// rewriteMirrors reads relPath fresh, renders each target from its original
// and writes the file back only if something changed.
func (e *Engine) rewriteMirrors(ctx context.Context, relPath string, targets []target) error {
	lines, err := e.store.readLines(ctx, relPath)
	if err != nil {
		return err
	}

	// Bottom-up, so replacing one mirror's children leaves the line numbers
	// of the mirrors above intact.
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].line > targets[j].line })

	changed := false
	for _, t := range targets {
		if t.line >= len(lines) || markers.ParseMirrorMarker(lines[t.line]) != t.original.ID {
			e.debug(ctx, "mirror moved before it could be updated", "rel_path", relPath, "line", t.line)
			continue
		}
		if containsItself(lines, t.line, t.original.ID, t.original.Children) {
			e.logger.Warn("linked copy would contain itself, leaving it unchanged",
				"id", t.original.ID, "rel_path", relPath, "line", t.line)
			continue
		}
		var ok bool
		lines, ok = renderMirror(lines, t.line, t.original)
		changed = changed || ok
	}

	if !changed {
		return nil
	}
	e.debug(ctx, "mirror updated", "rel_path", relPath, "mirrors", len(targets))
	return e.write(ctx, relPath, lines)
}

// renderMirror makes the mirror rooted at line match original: the mirror
// keeps its own prefix, takes the original's content, and gets the original's
// children moved to the mirror's indentation. It reports whether anything
// changed.
func renderMirror(lines []string, line int, original *Block) ([]string, bool) {
	current := lines[line]
	want := markers.MirrorLine(markers.LinePrefix(current), original.Content, original.ID)

	changed := false
	if current != want {
		lines[line] = want
		changed = true
	}

	wantChildren := outline.Rebase(original.Children,
		outline.IndentString(original.Content), outline.IndentString(want))
	first, end := outline.ChildRange(lines, line)
	if equalLines(lines[first:end], wantChildren) {
		return lines, changed
	}

	out := make([]string, 0, len(lines)-(end-first)+len(wantChildren))
	out = append(out, lines[:first]...)
	out = append(out, wantChildren...)
	out = append(out, lines[end:]...)
	return out, true
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// OnDeleted handles the removal of relPath: it drops the note from the
// index, deletes every mirror whose original no longer resolves together
// with its children, and then strips block identifiers left without mirrors.
func (e *Engine) OnDeleted(ctx context.Context, relPath string) error {
	e.mu.Lock()
	e.invalidateLocked()
	e.mu.Unlock()

	if e.indexer != nil {
		if err := e.indexer.RemoveNote(ctx, relPath); err != nil {
			e.logger.Warn("failed to drop deleted note from index", "rel_path", relPath, "error", err)
		}
	}
	if !e.opts.Enabled {
		return nil
	}

	paths, err := e.files.MarkdownFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	resolved := make(map[string]bool)
	removed := make(map[string]bool)
	for _, p := range paths {
		if p == relPath {
			continue
		}
		if err := e.deleteDanglingMirrors(ctx, p, resolved, removed); err != nil {
			return err
		}
	}

	ids := make([]string, 0, len(removed))
	for id := range removed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := e.CleanupOrphanedBlockID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// deleteDanglingMirrors removes from relPath every mirror whose original is
// gone. resolved memoizes lookups across files; removed collects the ids of
// deleted mirrors.
func (e *Engine) deleteDanglingMirrors(ctx context.Context, relPath string, resolved, removed map[string]bool) error {
	lines, err := e.store.readLines(ctx, relPath)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(lines))
	modified := false
	for i := 0; i < len(lines); i++ {
		id := markers.ParseMirrorMarker(lines[i])
		if id == "" {
			kept = append(kept, lines[i])
			continue
		}

		exists, seen := resolved[id]
		if !seen {
			original, err := e.store.FindBlockByID(ctx, id)
			if err != nil {
				return err
			}
			exists = original != nil
			resolved[id] = exists
		}
		if exists {
			kept = append(kept, lines[i])
			continue
		}

		_, end := outline.ChildRange(lines, i)
		e.debug(ctx, "deleting mirror of missing original", "id", id, "rel_path", relPath, "line", i, "children", end-i-1)
		removed[id] = true
		modified = true
		i = end - 1
	}

	if !modified {
		return nil
	}
	return e.write(ctx, relPath, kept)
}

// CleanupOrphanedBlockID strips id from its original once no mirror refers
// to it any more.
func (e *Engine) CleanupOrphanedBlockID(ctx context.Context, id string) error {
	mirrors, err := e.store.FindMirrorsByID(ctx, id)
	if err != nil {
		return err
	}
	if len(mirrors) > 0 {
		e.debug(ctx, "block id still referenced", "id", id, "mirrors", len(mirrors))
		return nil
	}

	original, err := e.store.FindBlockByID(ctx, id)
	if err != nil {
		return err
	}
	if original == nil {
		return nil
	}

	lines, err := e.store.readLines(ctx, original.RelPath)
	if err != nil {
		return err
	}
	if original.Line >= len(lines) || markers.ParseBlockID(lines[original.Line]) != id {
		return nil
	}
	lines[original.Line] = markers.RemoveBlockID(lines[original.Line])

	e.debug(ctx, "removing orphaned block id", "id", id, "rel_path", original.RelPath, "line", original.Line)
	return e.write(ctx, original.RelPath, lines)
}

// MirrorLocations returns where the mirrors of id live, reusing a recent
// lookup when there is one.
func (e *Engine) MirrorLocations(ctx context.Context, id string) ([]Location, error) {
	e.mu.Lock()
	entry, ok := e.cache[id]
	e.mu.Unlock()
	if ok && e.now().Sub(entry.at) < e.opts.CacheMaxAge {
		return entry.mirrors, nil
	}

	mirrors, err := e.store.FindMirrorsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.remember(id, mirrors), nil
}

func (e *Engine) remember(id string, mirrors []Mirror) []Location {
	locations := make([]Location, len(mirrors))
	for i, m := range mirrors {
		locations[i] = Location{RelPath: m.RelPath, Line: m.Line}
	}

	e.mu.Lock()
	e.cache[id] = cacheEntry{mirrors: locations, at: e.now()}
	e.mu.Unlock()
	return locations
}

func (e *Engine) invalidateLocked() {
	clear(e.cache)
}

func (e *Engine) write(ctx context.Context, relPath string, lines []string) error {
	if err := e.files.Write(ctx, relPath, joinLines(lines)); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	if e.indexer != nil {
		if err := e.indexer.IndexNote(ctx, relPath); err != nil {
			e.logger.Warn("failed to index written note", "rel_path", relPath, "error", err)
		}
	}
	return nil
}

// Close stops a pending sync and drops the cache. Modifications reported
// after Close are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.invalidateLocked()
}

func vaultNote(relPath string) bool {
	return strings.EqualFold(path.Ext(relPath), ".md")
}
