package handlers

import (
	"context"
	"net/http"

	"outliner/internal/contextutil"
	"outliner/internal/indexer"
)

// Indexer rebuilds the block index for the whole vault.
type Indexer interface {
	IndexAll(ctx context.Context) (indexer.IndexStats, error)
}

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	indexer Indexer
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(indexer Indexer) *IndexHandler {
	return &IndexHandler{indexer: indexer}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string              `json:"message"`
	Status  string              `json:"status"`
	Stats   *indexer.IndexStats `json:"stats,omitempty"`
}

// ServeHTTP rebuilds the index. It runs in the background unless wait=true
// is given, in which case the stats are returned.
//
// POST /api/index
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		logger.InfoContext(ctx, "re-indexing triggered via API, waiting")
		stats, err := h.indexer.IndexAll(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "re-indexing failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Indexing failed")
			return
		}
		writeJSON(ctx, w, http.StatusOK, IndexResponse{
			Message: "Indexing finished.",
			Status:  "done",
			Stats:   &stats,
		})
		return
	}

	logger.InfoContext(ctx, "re-indexing triggered via API")

	// background context so indexing continues after the response is sent
	go func() {
		indexCtx := context.Background()
		stats, err := h.indexer.IndexAll(indexCtx)
		if err != nil {
			logger.ErrorContext(indexCtx, "re-indexing completed with errors", "error", err, "stats", stats.String())
			return
		}
		logger.InfoContext(indexCtx, "re-indexing completed successfully", "stats", stats.String())
	}()

	writeJSON(ctx, w, http.StatusAccepted, IndexResponse{
		Message: "Indexing started. Check server logs for progress.",
		Status:  "accepted",
	})
}
