package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"outliner/internal/handlers"
	"outliner/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Workspace service.WorkspaceService
	Indexer   handlers.Indexer
	DB        handlers.Pinger
	Notes     handlers.NoteReader
	Titles    handlers.NoteTitles
	VaultRoot string
	IndexHTML string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	panes := handlers.NewPaneHandler(deps.Workspace)
	copies := handlers.NewLinkedCopyHandler(deps.Workspace)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB, deps.VaultRoot))
		r.Method(http.MethodPost, "/index", handlers.NewIndexHandler(deps.Indexer))

		r.Route("/panes", func(r chi.Router) {
			r.Get("/", panes.Get)
			r.Post("/", panes.Open)
			r.Delete("/", panes.Close)
			r.Post("/edit", panes.Edit)
			r.Post("/select", panes.Select)
			r.Post("/new-item", panes.NewItem)
			r.Post("/zoom", panes.Zoom)
			r.Get("/zoom-range", panes.ZoomRange)
			r.Post("/header/click", panes.ClickHeader)
		})

		r.Route("/linked-copies", func(r chi.Router) {
			r.Post("/copy", copies.Copy)
			r.Post("/paste", copies.Paste)
			r.Post("/go-to-original", copies.GoToOriginal)
			r.Post("/break", copies.Break)
			r.Get("/dangling", copies.Dangling)
			r.Get("/{id}/mirrors", copies.Mirrors)
		})

		r.Post("/sync", copies.Sync)
	})

	r.Get("/notes/*", handlers.NewNoteHandler(deps.Notes, deps.Titles).ServeHTTP)

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
