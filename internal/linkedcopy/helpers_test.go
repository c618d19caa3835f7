package linkedcopy

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"outliner/internal/storage"
	"outliner/internal/storage/mocks"
	"outliner/internal/vault"
)

// recordingFiles counts the writes made through it.
type recordingFiles struct {
	*vault.Manager

	mu     sync.Mutex
	writes []string
}

func (f *recordingFiles) Write(ctx context.Context, relPath, content string) error {
	f.mu.Lock()
	f.writes = append(f.writes, relPath)
	f.mu.Unlock()
	return f.Manager.Write(ctx, relPath, content)
}

func (f *recordingFiles) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func (f *recordingFiles) reset() {
	f.mu.Lock()
	f.writes = nil
	f.mu.Unlock()
}

type testVault struct {
	t     *testing.T
	root  string
	files *recordingFiles
}

func newTestVault(t *testing.T, notes map[string]string) *testVault {
	t.Helper()
	root := t.TempDir()

	ctrl := gomock.NewController(t)
	vaultRepo := mocks.NewMockVaultStore(ctrl)
	vaultRepo.EXPECT().
		GetOrCreateByName(gomock.Any(), "main", gomock.Any()).
		Return(storage.VaultRecord{ID: 1, Name: "main", RootPath: root}, nil)

	m, err := vault.NewManager(context.Background(), vaultRepo, "main", root)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	tv := &testVault{t: t, root: root, files: &recordingFiles{Manager: m}}
	for relPath, content := range notes {
		tv.put(relPath, content)
	}
	return tv
}

func (tv *testVault) put(relPath, content string) {
	tv.t.Helper()
	abs := filepath.Join(tv.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		tv.t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		tv.t.Fatalf("Failed to write %s: %v", relPath, err)
	}
}

func (tv *testVault) get(relPath string) string {
	tv.t.Helper()
	data, err := os.ReadFile(filepath.Join(tv.root, filepath.FromSlash(relPath)))
	if err != nil {
		tv.t.Fatalf("Failed to read %s: %v", relPath, err)
	}
	return string(data)
}

func (tv *testVault) remove(relPath string) {
	tv.t.Helper()
	if err := os.Remove(filepath.Join(tv.root, filepath.FromSlash(relPath))); err != nil {
		tv.t.Fatalf("Failed to remove %s: %v", relPath, err)
	}
}

func (tv *testVault) engine(opts Options) *Engine {
	tv.t.Helper()
	e := NewEngine(NewStore(tv.files, nil), tv.files, nil, opts)
	tv.t.Cleanup(e.Close)
	return e
}

// fakeIndex serves block lookups from a fixed map.
type fakeIndex struct {
	records map[string]*storage.BlockRecord
	err     error
}

func (f fakeIndex) LookupBlock(_ context.Context, blockID string) (*storage.BlockRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[blockID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return rec, nil
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
