package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"outliner/internal/contextutil"
	"outliner/internal/linkedcopy"
	"outliner/internal/service"
)

// LinkedCopyHandler serves the linked copy commands and queries.
type LinkedCopyHandler struct {
	workspace service.WorkspaceService
}

// NewLinkedCopyHandler creates a new LinkedCopyHandler.
func NewLinkedCopyHandler(workspace service.WorkspaceService) *LinkedCopyHandler {
	return &LinkedCopyHandler{workspace: workspace}
}

// BreakRequest unlinks the mirror on Line, or on the cursor line when Line
// is omitted.
type BreakRequest struct {
	Path string `json:"path"`
	Line *int   `json:"line,omitempty"`
}

// MirrorsResponse lists where the mirrors of a block live.
type MirrorsResponse struct {
	ID      string                `json:"id"`
	Mirrors []linkedcopy.Location `json:"mirrors"`
}

// DanglingResponse lists mirrors whose original is gone.
type DanglingResponse struct {
	Mirrors []linkedcopy.Mirror `json:"mirrors"`
}

// SyncResponse acknowledges a sync pass.
type SyncResponse struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// Copy records the item at the cursor.
//
// POST /api/linked-copies/copy
func (h *LinkedCopyHandler) Copy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PathRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	src, err := h.workspace.CopyItem(ctx, req.Path)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to copy item")
		return
	}
	writeJSON(ctx, w, http.StatusOK, src)
}

// Paste inserts a linked copy of the recorded item at the cursor.
//
// POST /api/linked-copies/paste
func (h *LinkedCopyHandler) Paste(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PathRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.workspace.PasteLinkedCopy(ctx, req.Path)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to paste linked copy")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, resp)
}

// GoToOriginal opens the original of the mirror at the cursor.
//
// POST /api/linked-copies/go-to-original
func (h *LinkedCopyHandler) GoToOriginal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PathRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.workspace.GoToOriginal(ctx, req.Path)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to go to original")
		return
	}
	writeJSON(ctx, w, http.StatusOK, st)
}

// Break turns a mirror into plain text.
//
// POST /api/linked-copies/break
func (h *LinkedCopyHandler) Break(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req BreakRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.workspace.BreakMirrorLink(ctx, req.Path, req.Line)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to break mirror link")
		return
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "mirror link broken", "rel_path", req.Path, "id", resp.ID)
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Sync runs a sync pass for a note right away.
//
// POST /api/sync
func (h *LinkedCopyHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PathRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.workspace.Sync(ctx, req.Path); err != nil {
		handleServiceError(w, ctx, err, "Sync failed")
		return
	}
	writeJSON(ctx, w, http.StatusOK, SyncResponse{Path: req.Path, Status: "synced"})
}

// Mirrors lists where the mirrors of a block live.
//
// GET /api/linked-copies/{id}/mirrors
func (h *LinkedCopyHandler) Mirrors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	locs, err := h.workspace.MirrorLocations(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to find mirrors")
		return
	}
	if locs == nil {
		locs = []linkedcopy.Location{}
	}
	writeJSON(ctx, w, http.StatusOK, MirrorsResponse{ID: id, Mirrors: locs})
}

// Dangling lists mirrors whose original is gone.
//
// GET /api/linked-copies/dangling
func (h *LinkedCopyHandler) Dangling(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mirrors, err := h.workspace.DanglingMirrors(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to scan for dangling mirrors")
		return
	}
	if mirrors == nil {
		mirrors = []linkedcopy.Mirror{}
	}
	writeJSON(ctx, w, http.StatusOK, DanglingResponse{Mirrors: mirrors})
}
