package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// New opens the index database at path. Foreign keys are enforced and
// writers wait on a locked database instead of failing at once, since the
// indexer and the sync engine write from different goroutines.
func New(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	// sqlite allows one writer; a single connection serializes them
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to index database: %w", err)
	}
	return db, nil
}

// Migrate creates the index tables. It is idempotent.
//
// The index is a cache of what the vault files contain. It is never the
// source of truth: every row can be rebuilt by re-indexing the vault.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS vaults (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			root_path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			vault_id INTEGER NOT NULL,
			rel_path TEXT NOT NULL,
			folder TEXT NOT NULL,
			title TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			hash TEXT NOT NULL,
			FOREIGN KEY (vault_id) REFERENCES vaults(id),
			UNIQUE (vault_id, rel_path)
		);`,
		`CREATE TABLE IF NOT EXISTS blocks (
			note_id TEXT NOT NULL,
			block_id TEXT NOT NULL,
			line INTEGER NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (note_id, block_id),
			FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_block_id ON blocks (block_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate index schema: %w", err)
		}
	}

	return nil
}
