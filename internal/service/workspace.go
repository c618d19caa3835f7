package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_workspace_service.go -package=mocks outliner/internal/service WorkspaceService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"outliner/internal/contextutil"
	"outliner/internal/editor"
	"outliner/internal/header"
	"outliner/internal/linkedcopy"
	"outliner/internal/structure"
	"outliner/internal/vault"
	"outliner/internal/zoom"
)

// NoteFiles is the note access the workspace needs.
// This interface is defined from the service layer's perspective (consumer-first).
type NoteFiles interface {
	Read(ctx context.Context, relPath string) (string, error)
	Write(ctx context.Context, relPath, content string) error
}

// NoteIndexer keeps the block index in step with saved and deleted notes.
type NoteIndexer interface {
	IndexNote(ctx context.Context, relPath string) error
	RemoveNote(ctx context.Context, relPath string) error
}

// ZoomOp names a zoom command.
type ZoomOp string

const (
	ZoomIn          ZoomOp = "in"
	ZoomOut         ZoomOp = "out"
	ZoomOutOneLevel ZoomOp = "out-one-level"
	ZoomRefresh     ZoomOp = "refresh"
)

// EditRequest replaces the text between From and To in an open note.
type EditRequest struct {
	Path string
	From int
	To   int
	Text string
}

// SelectRequest moves the selection of an open note.
type SelectRequest struct {
	Path      string
	Selection editor.Selection
}

// NewItemRequest creates a list item at the cursor of an open note.
type NewItemRequest struct {
	Path  string
	Above bool
}

// ZoomRequest runs a zoom command on an open note. Pos is required for
// ZoomIn only.
type ZoomRequest struct {
	Path string
	Op   ZoomOp
	Pos  *int
}

// HeaderView is the breadcrumb header of a pane together with its layout.
type HeaderView struct {
	header.State
	Bar  header.Bar `json:"bar"`
	Text string     `json:"text"`
}

// PaneState is a snapshot of one open note.
type PaneState struct {
	Path         string           `json:"path"`
	Text         string           `json:"text"`
	Selection    editor.Selection `json:"selection"`
	ScrollTop    int              `json:"scroll_top"`
	Zoomed       bool             `json:"zoomed"`
	VisibleRange *zoom.Range      `json:"visible_range,omitempty"`
	HiddenRanges []zoom.Range     `json:"hidden_ranges,omitempty"`
	ZoomRange    *zoom.LineRange  `json:"zoom_range,omitempty"`
	Header       *HeaderView      `json:"header,omitempty"`
}

// PasteResponse reports a pasted linked copy and the pane it went into.
type PasteResponse struct {
	linkedcopy.PasteResult
	Pane PaneState `json:"pane"`
}

// BreakResponse reports a broken mirror link.
type BreakResponse struct {
	ID   string    `json:"id"`
	Pane PaneState `json:"pane"`
}

// WorkspaceService manages the open panes of a vault and the commands run
// against them.
type WorkspaceService interface {
	// Open loads a note into a pane, or reloads it if already open.
	Open(ctx context.Context, relPath string) (PaneState, error)
	// Close drops the pane of a note.
	Close(relPath string) error
	// Pane returns the current state of an open note.
	Pane(relPath string) (PaneState, error)
	// Edit applies a text change and saves the note.
	Edit(ctx context.Context, req EditRequest) (PaneState, error)
	// Select moves the selection.
	Select(ctx context.Context, req SelectRequest) (PaneState, error)
	// NewItem creates a list item next to the cursor item and saves the note.
	NewItem(ctx context.Context, req NewItemRequest) (PaneState, error)
	// Zoom runs a zoom command.
	Zoom(ctx context.Context, req ZoomRequest) (PaneState, error)
	// ZoomRange returns the zoomed range in line/column coordinates, or nil.
	ZoomRange(relPath string) (*zoom.LineRange, error)
	// ClickHeader answers a click on a breadcrumb and returns the pane that
	// ends up active.
	ClickHeader(ctx context.Context, relPath string, index int) (PaneState, error)
	// CopyItem records the item at the cursor as the linked copy source.
	CopyItem(ctx context.Context, relPath string) (*linkedcopy.CopySource, error)
	// PasteLinkedCopy inserts a mirror of the recorded item at the cursor.
	PasteLinkedCopy(ctx context.Context, relPath string) (PasteResponse, error)
	// GoToOriginal opens the original of the mirror at the cursor.
	GoToOriginal(ctx context.Context, relPath string) (PaneState, error)
	// BreakMirrorLink turns a mirror into plain text. A nil line means the
	// cursor line.
	BreakMirrorLink(ctx context.Context, relPath string, line *int) (BreakResponse, error)
	// Sync runs a sync pass for a note right away.
	Sync(ctx context.Context, relPath string) error
	// MirrorLocations lists where the mirrors of a block live.
	MirrorLocations(ctx context.Context, blockID string) ([]linkedcopy.Location, error)
	// DanglingMirrors lists mirrors whose original is gone.
	DanglingMirrors(ctx context.Context) ([]linkedcopy.Mirror, error)
	// HandleEvent reacts to a change made to the vault on disk.
	HandleEvent(ctx context.Context, ev vault.Event)
}

// WorkspaceOptions configures a workspace.
type WorkspaceOptions struct {
	// SettleDelay is waited after opening a note for navigation before the
	// cursor or zoom is moved in it. Zero moves at once.
	SettleDelay time.Duration
	// IndentUnit indents a new first child. Empty means a tab.
	IndentUnit string
}

type pane struct {
	view   *editor.View
	zoom   *zoom.Controller
	header *header.State
}

// workspaceService implements WorkspaceService. All pane access is
// serialized by mu.
type workspaceService struct {
	files   NoteFiles
	indexer NoteIndexer
	engine  *linkedcopy.Engine
	headers *header.Builder
	opts    WorkspaceOptions
	logger  *slog.Logger

	mu    sync.Mutex
	panes map[string]*pane
}

// NewWorkspaceService creates a new WorkspaceService. indexer may be nil.
func NewWorkspaceService(files NoteFiles, indexer NoteIndexer, engine *linkedcopy.Engine, headers *header.Builder, opts WorkspaceOptions) WorkspaceService {
	return &workspaceService{
		files:   files,
		indexer: indexer,
		engine:  engine,
		headers: headers,
		opts:    opts,
		logger:  slog.Default().With("component", "workspace"),
		panes:   make(map[string]*pane),
	}
}

// Open loads relPath into a pane.
func (s *workspaceService) Open(ctx context.Context, relPath string) (PaneState, error) {
	if err := validatePath(relPath); err != nil {
		return PaneState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.openLocked(ctx, relPath)
	if err != nil {
		return PaneState{}, err
	}
	return p.state(), nil
}

func (s *workspaceService) openLocked(ctx context.Context, relPath string) (*pane, error) {
	content, err := s.files.Read(ctx, relPath)
	if errors.Is(err, vault.ErrFileNotFound) {
		return nil, noteMissing(relPath)
	}
	if err != nil {
		return nil, WrapError(err, "failed to open note")
	}

	if p, ok := s.panes[relPath]; ok {
		if err := p.view.SetText(content, editor.EventSync); err != nil {
			return nil, WrapError(err, "failed to reload note")
		}
		return p, nil
	}

	p := &pane{view: editor.NewView(relPath, content)}
	p.view.AddFilter(structure.ExpandSelection)
	p.zoom = zoom.NewController(p.view)
	p.zoom.NotifyAfterZoomIn(func(v *editor.View, pos int) {
		st := s.headers.AfterZoomIn(context.Background(), v, pos)
		p.header = &st
	})
	p.zoom.NotifyAfterZoomOut(func(*editor.View) {
		p.header = nil
	})
	p.zoom.NotifyRangeBeforeVisibleRangeChanged(func(v *editor.View) {
		if r := p.zoom.VisibleRange(); r != nil {
			st := s.headers.Local(v, r.From)
			p.header = &st
		}
	})
	s.panes[relPath] = p

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "pane opened", "rel_path", relPath)
	return p, nil
}

// Close drops the pane of relPath.
func (s *workspaceService) Close(relPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.panes[relPath]; !ok {
		return notOpen(relPath)
	}
	delete(s.panes, relPath)
	return nil
}

// Pane returns the state of an open note.
func (s *workspaceService) Pane(relPath string) (PaneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[relPath]
	if !ok {
		return PaneState{}, notOpen(relPath)
	}
	return p.state(), nil
}

// Edit applies req and saves the note.
func (s *workspaceService) Edit(ctx context.Context, req EditRequest) (PaneState, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.From < 0 || req.To < req.From {
		return PaneState{}, &ValidationError{Field: "range", Message: "from must be non-negative and not after to"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[req.Path]
	if !ok {
		return PaneState{}, notOpen(req.Path)
	}

	event := editor.EventInput
	if req.Text == "" {
		event = editor.EventDelete
	}
	if err := p.view.Replace(req.From, req.To, req.Text, event); err != nil {
		logger.WarnContext(ctx, "edit rejected", "rel_path", req.Path, "error", err)
		return PaneState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.saveLocked(ctx, p); err != nil {
		return PaneState{}, err
	}
	return p.state(), nil
}

// saveLocked writes the pane's text to the vault and reports the change.
func (s *workspaceService) saveLocked(ctx context.Context, p *pane) error {
	relPath := p.view.Path()
	if err := s.files.Write(ctx, relPath, p.view.Text()); err != nil {
		return WrapError(err, "failed to save note")
	}
	s.noteModified(ctx, relPath)
	return nil
}

func (s *workspaceService) noteModified(ctx context.Context, relPath string) {
	if s.indexer != nil {
		if err := s.indexer.IndexNote(ctx, relPath); err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to index note", "rel_path", relPath, "error", err)
		}
	}
	s.engine.OnModified(relPath)
}

// Select moves the selection of an open note.
func (s *workspaceService) Select(_ context.Context, req SelectRequest) (PaneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[req.Path]
	if !ok {
		return PaneState{}, notOpen(req.Path)
	}
	if err := p.view.Select(req.Selection, true); err != nil {
		return PaneState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return p.state(), nil
}

// NewItem creates a list item at the cursor of an open note and saves it.
func (s *workspaceService) NewItem(ctx context.Context, req NewItemRequest) (PaneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[req.Path]
	if !ok {
		return PaneState{}, notOpen(req.Path)
	}

	opts := structure.NewItemOptions{IndentUnit: s.opts.IndentUnit, Above: req.Above}
	if opts.IndentUnit == "" {
		opts.IndentUnit = "\t"
	}
	if r := p.zoom.VisibleRange(); r != nil {
		opts.Zoomed = true
		opts.ZoomedLine = p.view.Doc().LineAt(r.From)
	}

	created, err := structure.CreateNewItem(p.view, opts)
	if err != nil {
		return PaneState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !created {
		return PaneState{}, &ValidationError{Field: "selection", Message: "is not a caret inside a non-empty list item"}
	}
	if err := s.saveLocked(ctx, p); err != nil {
		return PaneState{}, err
	}
	return p.state(), nil
}

// Zoom runs a zoom command on an open note.
func (s *workspaceService) Zoom(_ context.Context, req ZoomRequest) (PaneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[req.Path]
	if !ok {
		return PaneState{}, notOpen(req.Path)
	}

	switch req.Op {
	case ZoomIn:
		if req.Pos == nil {
			return PaneState{}, &ValidationError{Field: "pos", Message: "is required"}
		}
		if !p.zoom.ZoomIn(*req.Pos) {
			return PaneState{}, &ValidationError{Field: "pos", Message: "not inside a list item"}
		}
	case ZoomOut:
		p.zoom.ZoomOut()
	case ZoomOutOneLevel:
		p.zoom.ZoomOutOneLevel()
	case ZoomRefresh:
		p.zoom.RefreshZoom()
	default:
		return PaneState{}, &ValidationError{Field: "op", Message: fmt.Sprintf("unknown zoom command %q", req.Op)}
	}
	return p.state(), nil
}

// ZoomRange returns the zoomed range of an open note.
func (s *workspaceService) ZoomRange(relPath string) (*zoom.LineRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[relPath]
	if !ok {
		return nil, notOpen(relPath)
	}
	return p.zoom.GetZoomRange(), nil
}

// ClickHeader answers a click on the breadcrumb at index.
func (s *workspaceService) ClickHeader(ctx context.Context, relPath string, index int) (PaneState, error) {
	s.mu.Lock()
	p, ok := s.panes[relPath]
	if !ok {
		s.mu.Unlock()
		return PaneState{}, notOpen(relPath)
	}
	if p.header == nil {
		s.mu.Unlock()
		return PaneState{}, &ValidationError{Field: "index", Message: "no header is shown"}
	}
	action, err := header.Click(*p.header, index)
	if err != nil {
		s.mu.Unlock()
		return PaneState{}, &ValidationError{Field: "index", Message: err.Error()}
	}

	switch action.Kind {
	case header.ActionZoomIn:
		p.zoom.ZoomIn(*action.Pos)
	case header.ActionZoomOut:
		p.zoom.ZoomOut()
	case header.ActionNavigate:
		s.mu.Unlock()
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "navigating to original", "rel_path", action.RelPath, "block_id", action.BlockID)
		return s.navigate(ctx, action.RelPath, func(target *pane) {
			if action.Pos == nil {
				target.zoom.ZoomOut()
				return
			}
			target.zoom.ZoomIn(*action.Pos)
		})
	}

	st := p.state()
	s.mu.Unlock()
	return st, nil
}

// navigate opens relPath, waits for the settle delay and then runs then on
// the opened pane. The lock is not held while waiting.
func (s *workspaceService) navigate(ctx context.Context, relPath string, then func(*pane)) (PaneState, error) {
	s.mu.Lock()
	_, err := s.openLocked(ctx, relPath)
	s.mu.Unlock()
	if err != nil {
		return PaneState{}, err
	}

	if s.opts.SettleDelay > 0 {
		t := time.NewTimer(s.opts.SettleDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return PaneState{}, ctx.Err()
		case <-t.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[relPath]
	if !ok {
		return PaneState{}, notOpen(relPath)
	}
	then(p)
	return p.state(), nil
}

// CopyItem records the item at the cursor of relPath.
func (s *workspaceService) CopyItem(ctx context.Context, relPath string) (*linkedcopy.CopySource, error) {
	if !s.engine.Enabled() {
		return nil, linkedcopy.ErrFeatureDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[relPath]
	if !ok {
		return nil, notOpen(relPath)
	}
	if !s.engine.RecordCopy(p.view) {
		return nil, &ValidationError{Field: "selection", Message: "not on a list item"}
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "copy recorded", "rel_path", relPath)
	return s.engine.LastCopy(), nil
}

// PasteLinkedCopy pastes the recorded item into relPath and saves it.
func (s *workspaceService) PasteLinkedCopy(ctx context.Context, relPath string) (PasteResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[relPath]
	if !ok {
		return PasteResponse{}, notOpen(relPath)
	}
	res, err := s.engine.PasteAsLinkedCopy(ctx, p.view)
	if err != nil {
		logger.InfoContext(ctx, "paste as linked copy refused", "rel_path", relPath, "error", err)
		return PasteResponse{}, err
	}
	if err := s.saveLocked(ctx, p); err != nil {
		return PasteResponse{}, err
	}
	// the source note got its block id on disk
	s.reloadLocked(ctx, relPath)

	logger.InfoContext(ctx, "pasted linked copy", "rel_path", relPath, "id", res.ID, "line", res.Line)
	return PasteResponse{PasteResult: *res, Pane: p.state()}, nil
}

// GoToOriginal opens the original of the mirror at the cursor of relPath and
// puts the cursor on it.
func (s *workspaceService) GoToOriginal(ctx context.Context, relPath string) (PaneState, error) {
	s.mu.Lock()
	p, ok := s.panes[relPath]
	if !ok {
		s.mu.Unlock()
		return PaneState{}, notOpen(relPath)
	}
	original, err := s.engine.GoToOriginal(ctx, p.view)
	s.mu.Unlock()
	if err != nil {
		return PaneState{}, err
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "navigating to original", "rel_path", original.RelPath, "line", original.Line)
	return s.navigate(ctx, original.RelPath, func(target *pane) {
		line := min(original.Line, target.view.LineCount()-1)
		if err := target.view.Select(editor.Caret(target.view.LineStart(line)), true); err != nil {
			s.logger.Error("failed to move cursor to original", "rel_path", original.RelPath, "error", err)
		}
	})
}

// BreakMirrorLink unlinks the mirror on line of relPath.
func (s *workspaceService) BreakMirrorLink(ctx context.Context, relPath string, line *int) (BreakResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panes[relPath]
	if !ok {
		return BreakResponse{}, notOpen(relPath)
	}

	n := p.view.Doc().LineAt(p.view.Selection().Head)
	if line != nil {
		n = *line
	}
	id, err := s.engine.BreakMirrorLink(ctx, relPath, n)
	if err != nil {
		return BreakResponse{}, err
	}
	s.reloadLocked(ctx, "")
	return BreakResponse{ID: id, Pane: p.state()}, nil
}

// Sync runs a sync pass for relPath and reloads the open panes.
func (s *workspaceService) Sync(ctx context.Context, relPath string) error {
	if err := validatePath(relPath); err != nil {
		return err
	}
	if err := s.engine.Sync(ctx, relPath); err != nil {
		if errors.Is(err, vault.ErrFileNotFound) {
			return noteMissing(relPath)
		}
		return WrapError(err, "sync failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadLocked(ctx, "")
	return nil
}

// MirrorLocations lists the mirrors of blockID.
func (s *workspaceService) MirrorLocations(ctx context.Context, blockID string) ([]linkedcopy.Location, error) {
	if blockID == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	return s.engine.MirrorLocations(ctx, blockID)
}

// DanglingMirrors lists mirrors whose original is gone.
func (s *workspaceService) DanglingMirrors(ctx context.Context) ([]linkedcopy.Mirror, error) {
	return s.engine.Store().FindDanglingMirrors(ctx)
}

// HandleEvent reacts to a change on disk. Modified notes are indexed,
// scheduled for sync and reloaded if open; deleted notes run the delete
// cascade and lose their pane.
func (s *workspaceService) HandleEvent(ctx context.Context, ev vault.Event) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "vault event", "op", ev.Op.String(), "rel_path", ev.RelPath)

	switch ev.Op {
	case vault.Modified:
		s.noteModified(ctx, ev.RelPath)

		s.mu.Lock()
		if p, ok := s.panes[ev.RelPath]; ok {
			s.reloadPaneLocked(ctx, p)
		}
		s.mu.Unlock()

	case vault.Deleted:
		if err := s.engine.OnDeleted(ctx, ev.RelPath); err != nil {
			logger.ErrorContext(ctx, "delete cascade failed", "rel_path", ev.RelPath, "error", err)
		}

		s.mu.Lock()
		delete(s.panes, ev.RelPath)
		s.reloadLocked(ctx, "")
		s.mu.Unlock()
	}
}

// reloadLocked refreshes every open pane except skip from disk.
func (s *workspaceService) reloadLocked(ctx context.Context, skip string) {
	paths := make([]string, 0, len(s.panes))
	for p := range s.panes {
		if p != skip {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		s.reloadPaneLocked(ctx, s.panes[relPath])
	}
}

// reloadPaneLocked replaces the pane's text with the note on disk. Only the
// differing span is changed, so a zoom outside it survives.
func (s *workspaceService) reloadPaneLocked(ctx context.Context, p *pane) {
	relPath := p.view.Path()
	content, err := s.files.Read(ctx, relPath)
	if err == nil {
		err = p.view.SetText(content, editor.EventSync)
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to reload pane", "rel_path", relPath, "error", err)
	}
}

func (p *pane) state() PaneState {
	st := PaneState{
		Path:         p.view.Path(),
		Text:         p.view.Text(),
		Selection:    p.view.Selection(),
		ScrollTop:    p.view.ScrollTop(),
		Zoomed:       p.zoom.IsZoomed(),
		VisibleRange: p.zoom.VisibleRange(),
		HiddenRanges: p.zoom.HiddenRanges(),
		ZoomRange:    p.zoom.GetZoomRange(),
	}
	if p.header != nil {
		bar := header.Layout(p.header.Breadcrumbs)
		st.Header = &HeaderView{
			State: *p.header,
			Bar:   bar,
			Text:  header.Render(bar, false),
		}
	}
	return st
}
