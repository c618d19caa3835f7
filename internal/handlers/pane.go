package handlers

import (
	"net/http"

	"outliner/internal/contextutil"
	"outliner/internal/editor"
	"outliner/internal/service"
	"outliner/internal/zoom"
)

// PaneHandler serves the pane, edit and zoom endpoints.
type PaneHandler struct {
	workspace service.WorkspaceService
}

// NewPaneHandler creates a new PaneHandler.
func NewPaneHandler(workspace service.WorkspaceService) *PaneHandler {
	return &PaneHandler{workspace: workspace}
}

// PathRequest names a note.
type PathRequest struct {
	Path string `json:"path"`
}

// EditRequest replaces From..To with Text.
type EditRequest struct {
	Path string `json:"path"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

// SelectRequest moves the selection.
type SelectRequest struct {
	Path   string `json:"path"`
	Anchor int    `json:"anchor"`
	Head   int    `json:"head"`
}

// NewItemRequest creates a list item at the cursor, below the cursor item
// unless Above is set.
type NewItemRequest struct {
	Path  string `json:"path"`
	Above bool   `json:"above,omitempty"`
}

// ZoomRequest runs a zoom command. Pos is only read for "in".
type ZoomRequest struct {
	Path string         `json:"path"`
	Op   service.ZoomOp `json:"op"`
	Pos  *int           `json:"pos,omitempty"`
}

// HeaderClickRequest is a click on the breadcrumb at Index.
type HeaderClickRequest struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
}

// ZoomRangeResponse wraps the zoomed range, which is null when not zoomed.
type ZoomRangeResponse struct {
	Range *zoom.LineRange `json:"range"`
}

// Open loads a note into a pane.
//
// POST /api/panes
func (h *PaneHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PathRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.Open(ctx, req.Path)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to open note")
		return
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "pane opened", "rel_path", req.Path)
	writeJSON(ctx, w, http.StatusOK, st)
}

// Get returns the state of an open note.
//
// GET /api/panes?path=
func (h *PaneHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := h.workspace.Pane(r.URL.Query().Get("path"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get pane")
		return
	}
	writeJSON(ctx, w, http.StatusOK, st)
}

// Close drops the pane of a note.
//
// DELETE /api/panes?path=
func (h *PaneHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.workspace.Close(r.URL.Query().Get("path")); err != nil {
		handleServiceError(w, ctx, err, "Failed to close pane")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Edit applies a text change and saves the note.
//
// POST /api/panes/edit
func (h *PaneHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req EditRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.Edit(ctx, service.EditRequest{
		Path: req.Path,
		From: req.From,
		To:   req.To,
		Text: req.Text,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to apply edit")
		return
	}
	writeJSON(ctx, w, http.StatusOK, st)
}

// Select moves the selection.
//
// POST /api/panes/select
func (h *PaneHandler) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SelectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.Select(ctx, service.SelectRequest{
		Path:      req.Path,
		Selection: editor.Selection{Anchor: req.Anchor, Head: req.Head},
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to select")
		return
	}
	writeJSON(ctx, w, http.StatusOK, st)
}

// NewItem creates a list item at the cursor.
//
// POST /api/panes/new-item
func (h *PaneHandler) NewItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req NewItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.NewItem(ctx, service.NewItemRequest{Path: req.Path, Above: req.Above})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create item")
		return
	}
	writeJSON(ctx, w, http.StatusOK, st)
}

// Zoom runs a zoom command.
//
// POST /api/panes/zoom
func (h *PaneHandler) Zoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ZoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.Zoom(ctx, service.ZoomRequest{
		Path: req.Path,
		Op:   req.Op,
		Pos:  req.Pos,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to zoom")
		return
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "zoom applied", "rel_path", req.Path, "op", req.Op)
	writeJSON(ctx, w, http.StatusOK, st)
}

// ZoomRange returns the zoomed range in line/column coordinates.
//
// GET /api/panes/zoom-range?path=
func (h *PaneHandler) ZoomRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lr, err := h.workspace.ZoomRange(r.URL.Query().Get("path"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get zoom range")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ZoomRangeResponse{Range: lr})
}

// ClickHeader answers a click on a breadcrumb.
//
// POST /api/panes/header/click
func (h *PaneHandler) ClickHeader(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req HeaderClickRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.ClickHeader(ctx, req.Path, req.Index)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to handle header click")
		return
	}
	writeJSON(ctx, w, http.StatusOK, st)
}
