package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("database is locked") })

	tests := []struct {
		name       string
		method     string
		db         Pinger
		root       string
		wantStatus int
		wantChecks map[string]string
		wantIssues []string
	}{
		{
			name:       "healthy",
			method:     http.MethodGet,
			db:         ok,
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"database": "ok", "vault": "ok"},
		},
		{
			name:       "database down",
			method:     http.MethodGet,
			db:         down,
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "error", "vault": "ok"},
			wantIssues: []string{"database_unavailable"},
		},
		{
			name:       "vault missing",
			method:     http.MethodGet,
			db:         ok,
			root:       "missing",
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "ok", "vault": "error"},
			wantIssues: []string{"vault_unavailable"},
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			db:         ok,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.root != "" {
				root = filepath.Join(root, tt.root)
			}
			h := NewHealthHandler(tt.db, root)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantChecks == nil {
				return
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if diff := cmp.Diff(tt.wantChecks, resp.Checks); diff != "" {
				t.Errorf("Checks mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantIssues, resp.Issues); diff != "" {
				t.Errorf("Issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
