package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"outliner/internal/indexer"
	"outliner/internal/linkedcopy"
	"outliner/internal/service"
	"outliner/internal/service/mocks"
)

type nopPinger struct{}

func (nopPinger) PingContext(context.Context) error { return nil }

type nopIndexer struct{}

func (nopIndexer) IndexAll(context.Context) (indexer.IndexStats, error) {
	return indexer.IndexStats{}, nil
}

type nopNotes struct{}

func (nopNotes) Read(context.Context, string) (string, error) { return "- a", nil }

func newTestRouter(t *testing.T, ws service.WorkspaceService) http.Handler {
	t.Helper()
	return NewRouter(&Deps{
		Workspace: ws,
		Indexer:   nopIndexer{},
		DB:        nopPinger{},
		Notes:     nopNotes{},
		VaultRoot: t.TempDir(),
		IndexHTML: "<html><body>Test</body></html>",
	})
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockWorkspaceService(ctrl))
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ws := mocks.NewMockWorkspaceService(ctrl)
	ws.EXPECT().Pane("a.md").Return(service.PaneState{Path: "a.md"}, nil).AnyTimes()
	ws.EXPECT().ZoomRange("a.md").Return(nil, nil).AnyTimes()
	ws.EXPECT().DanglingMirrors(gomock.Any()).Return([]linkedcopy.Mirror{}, nil).AnyTimes()
	ws.EXPECT().MirrorLocations(gomock.Any(), "outliner-abc123").Return(nil, nil).AnyTimes()

	router := newTestRouter(t, ws)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "GET root serves HTML", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "GET health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "POST index", method: http.MethodPost, path: "/api/index?wait=true", wantStatus: http.StatusOK},
		{name: "GET index method not allowed", method: http.MethodGet, path: "/api/index", wantStatus: http.StatusMethodNotAllowed},
		{name: "GET pane", method: http.MethodGet, path: "/api/panes?path=a.md", wantStatus: http.StatusOK},
		{name: "GET zoom range", method: http.MethodGet, path: "/api/panes/zoom-range?path=a.md", wantStatus: http.StatusOK},
		{
			name:       "POST open exists",
			method:     http.MethodPost,
			path:       "/api/panes",
			body:       "{invalid",
			wantStatus: http.StatusBadRequest, // Bad request due to invalid body, but route exists
		},
		{name: "POST edit exists", method: http.MethodPost, path: "/api/panes/edit", body: "{invalid", wantStatus: http.StatusBadRequest},
		{name: "POST new item exists", method: http.MethodPost, path: "/api/panes/new-item", body: "{invalid", wantStatus: http.StatusBadRequest},
		{name: "POST zoom exists", method: http.MethodPost, path: "/api/panes/zoom", body: "{invalid", wantStatus: http.StatusBadRequest},
		{name: "POST paste exists", method: http.MethodPost, path: "/api/linked-copies/paste", body: "{invalid", wantStatus: http.StatusBadRequest},
		{name: "POST sync exists", method: http.MethodPost, path: "/api/sync", body: "{invalid", wantStatus: http.StatusBadRequest},
		{name: "GET zoom method not allowed", method: http.MethodGet, path: "/api/panes/zoom", wantStatus: http.StatusMethodNotAllowed},
		{name: "GET dangling", method: http.MethodGet, path: "/api/linked-copies/dangling", wantStatus: http.StatusOK},
		{name: "GET mirrors", method: http.MethodGet, path: "/api/linked-copies/outliner-abc123/mirrors", wantStatus: http.StatusOK},
		{name: "GET note preview", method: http.MethodGet, path: "/notes/a.md", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_RootServesHTML(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockWorkspaceService(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Router GET / status = %v, want %v", w.Code, http.StatusOK)
	}
	if w.Body.String() != "<html><body>Test</body></html>" {
		t.Errorf("Router GET / body = %v", w.Body.String())
	}
	if w.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Errorf("Router GET / Content-Type = %v, want text/html; charset=utf-8", w.Header().Get("Content-Type"))
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockWorkspaceService(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
