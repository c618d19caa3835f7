package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite(t *testing.T) {
	root := t.TempDir()
	m := newTestManager(t, root)
	ctx := context.Background()

	if m.Exists("daily/today.md") {
		t.Fatal("Exists() = true before write")
	}
	if _, err := m.Read(ctx, "daily/today.md"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Read() error = %v, want ErrFileNotFound", err)
	}

	if err := m.Write(ctx, "daily/today.md", "- first\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := m.Write(ctx, "daily/today.md", "- second\n"); err != nil {
		t.Fatalf("Write() overwrite error = %v", err)
	}

	got, err := m.Read(ctx, "daily/today.md")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != "- second\n" {
		t.Errorf("Read() = %q, want %q", got, "- second\n")
	}
	if !m.Exists("daily/today.md") {
		t.Error("Exists() = false after write")
	}

	// no temp files are left next to the note
	entries, err := os.ReadDir(filepath.Join(root, "daily"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("folder holds %d entries, want only the note", len(entries))
	}

	if err := m.Remove(ctx, "daily/today.md"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if m.Exists("daily/today.md") {
		t.Error("Exists() = true after remove")
	}
	if err := m.Remove(ctx, "daily/today.md"); err != nil {
		t.Errorf("Remove() of missing note error = %v", err)
	}
}

func TestManager_WriteOutsideVault(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	if err := m.Write(context.Background(), "../escape.md", "x"); !errors.Is(err, ErrOutsideVault) {
		t.Errorf("Write() error = %v, want ErrOutsideVault", err)
	}
}
