package storage

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestVault(t *testing.T, repo *VaultRepo) VaultRecord {
	t.Helper()
	vault, err := repo.GetOrCreateByName(context.Background(), "test", "/tmp/test")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	return vault
}

func TestNoteRepo_GetByVaultAndPath(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db))
	repo := NewNoteRepo(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &NoteRecord{ID: "note-1", VaultID: vault.ID, RelPath: "daily/today.md", Folder: "daily", Title: "Today", Hash: "abc"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	tests := []struct {
		name    string
		relPath string
		wantErr error
		wantID  string
	}{
		{name: "existing note", relPath: "daily/today.md", wantID: "note-1"},
		{name: "missing note", relPath: "nope.md", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := repo.GetByVaultAndPath(ctx, vault.ID, tt.relPath)
			if err != tt.wantErr {
				t.Fatalf("GetByVaultAndPath() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if note.ID != tt.wantID || note.Title != "Today" || note.Folder != "daily" {
				t.Errorf("GetByVaultAndPath() = %+v", note)
			}
		})
	}
}

func TestNoteRepo_UpsertKeepsID(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db))
	repo := NewNoteRepo(db)
	ctx := context.Background()

	note := &NoteRecord{VaultID: vault.ID, RelPath: "a.md", Title: "A", Hash: "h1"}
	if err := repo.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if note.ID == "" {
		t.Fatal("Upsert() did not assign an ID")
	}
	firstID := note.ID

	update := &NoteRecord{VaultID: vault.ID, RelPath: "a.md", Title: "A2", Hash: "h2"}
	if err := repo.Upsert(ctx, update); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if update.ID != firstID {
		t.Errorf("Upsert() ID = %s, want preserved %s", update.ID, firstID)
	}

	got, err := repo.GetByVaultAndPath(ctx, vault.ID, "a.md")
	if err != nil {
		t.Fatalf("GetByVaultAndPath() error = %v", err)
	}
	if got.Title != "A2" || got.Hash != "h2" {
		t.Errorf("GetByVaultAndPath() = %+v, want updated title and hash", got)
	}
}

func TestNoteRepo_DeleteCascadesToBlocks(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db))
	notes := NewNoteRepo(db)
	blocks := NewBlockRepo(db)
	ctx := context.Background()

	note := &NoteRecord{VaultID: vault.ID, RelPath: "a.md", Hash: "h"}
	if err := notes.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := blocks.ReplaceForNote(ctx, note.ID, []BlockRecord{{BlockID: "outliner-aaaaaa", Line: 0, Content: "- a ^outliner-aaaaaa"}}); err != nil {
		t.Fatalf("ReplaceForNote() error = %v", err)
	}

	if err := notes.DeleteByVaultAndPath(ctx, vault.ID, "a.md"); err != nil {
		t.Fatalf("DeleteByVaultAndPath() error = %v", err)
	}
	// deleting again is not an error
	if err := notes.DeleteByVaultAndPath(ctx, vault.ID, "a.md"); err != nil {
		t.Fatalf("DeleteByVaultAndPath() second call error = %v", err)
	}

	if _, err := blocks.GetByBlockID(ctx, vault.ID, "outliner-aaaaaa"); err != ErrNotFound {
		t.Errorf("GetByBlockID() error = %v, want ErrNotFound after note delete", err)
	}
}

func TestNoteRepo_ListPathsByVault(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db))
	repo := NewNoteRepo(db)
	ctx := context.Background()

	for _, p := range []string{"z.md", "a/b.md", "m.md"} {
		if err := repo.Upsert(ctx, &NoteRecord{VaultID: vault.ID, RelPath: p, Hash: "h"}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	paths, err := repo.ListPathsByVault(ctx, vault.ID)
	if err != nil {
		t.Fatalf("ListPathsByVault() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a/b.md", "m.md", "z.md"}, paths); diff != "" {
		t.Errorf("ListPathsByVault() mismatch (-want +got):\n%s", diff)
	}
}
