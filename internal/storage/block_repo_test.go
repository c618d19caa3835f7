package storage

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockRepo_ReplaceForNote(t *testing.T) {
	db := newTestDB(t)
	vault := newTestVault(t, NewVaultRepo(db))
	notes := NewNoteRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	note := &NoteRecord{VaultID: vault.ID, RelPath: "projects/plan.md", Folder: "projects", Hash: "h"}
	if err := notes.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	first := []BlockRecord{
		{BlockID: "outliner-aaaaaa", Line: 3, Content: "- a ^outliner-aaaaaa"},
		{BlockID: "outliner-bbbbbb", Line: 1, Content: "- b ^outliner-bbbbbb"},
		{BlockID: "outliner-aaaaaa", Line: 7, Content: "- dup ^outliner-aaaaaa"},
	}
	if err := repo.ReplaceForNote(ctx, note.ID, first); err != nil {
		t.Fatalf("ReplaceForNote() error = %v", err)
	}

	got, err := repo.ListByNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("ListByNote() error = %v", err)
	}
	want := []BlockRecord{
		{NoteID: note.ID, BlockID: "outliner-bbbbbb", Line: 1, Content: "- b ^outliner-bbbbbb"},
		{NoteID: note.ID, BlockID: "outliner-aaaaaa", Line: 3, Content: "- a ^outliner-aaaaaa"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListByNote() mismatch (-want +got):\n%s", diff)
	}

	// replacing drops blocks that are gone from the note
	if err := repo.ReplaceForNote(ctx, note.ID, nil); err != nil {
		t.Fatalf("ReplaceForNote() error = %v", err)
	}
	got, err = repo.ListByNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("ListByNote() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByNote() = %v, want empty", got)
	}
}

func TestBlockRepo_GetByBlockID(t *testing.T) {
	db := newTestDB(t)
	vaults := NewVaultRepo(db)
	vault := newTestVault(t, vaults)
	other, err := vaults.GetOrCreateByName(context.Background(), "other", "/tmp/other")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	notes := NewNoteRepo(db)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	note := &NoteRecord{VaultID: vault.ID, RelPath: "plan.md", Hash: "h"}
	if err := notes.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := repo.ReplaceForNote(ctx, note.ID, []BlockRecord{{BlockID: "outliner-cccccc", Line: 2, Content: "- c ^outliner-cccccc"}}); err != nil {
		t.Fatalf("ReplaceForNote() error = %v", err)
	}

	tests := []struct {
		name    string
		vaultID int
		blockID string
		want    *BlockRecord
		wantErr error
	}{
		{
			name:    "indexed block",
			vaultID: vault.ID,
			blockID: "outliner-cccccc",
			want:    &BlockRecord{NoteID: note.ID, BlockID: "outliner-cccccc", Line: 2, Content: "- c ^outliner-cccccc", RelPath: "plan.md"},
		},
		{name: "unknown id", vaultID: vault.ID, blockID: "outliner-zzzzzz", wantErr: ErrNotFound},
		{name: "other vault", vaultID: other.ID, blockID: "outliner-cccccc", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByBlockID(ctx, tt.vaultID, tt.blockID)
			if err != tt.wantErr {
				t.Fatalf("GetByBlockID() error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GetByBlockID() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
