package storage

import "time"

// VaultRecord is a registered vault.
type VaultRecord struct {
	ID        int
	Name      string
	RootPath  string
	CreatedAt time.Time
}

// NoteRecord is an indexed markdown file.
type NoteRecord struct {
	ID        string // UUID
	VaultID   int    // vaults.id
	RelPath   string // relative to the vault root, forward slashes
	Folder    string // RelPath without the file name
	Title     string
	UpdatedAt time.Time
	Hash      string // SHA256 hex of the file content
}

// BlockRecord is a line carrying a block identifier, as last indexed.
type BlockRecord struct {
	NoteID  string
	BlockID string // e.g. "outliner-ab12cd"
	Line    int    // 0-based line number in the note
	Content string // raw line text
	RelPath string // filled by lookups that join notes
}
