package indexer

import "fmt"

// IndexStats summarizes one IndexAll run.
type IndexStats struct {
	// FilesScanned is the number of markdown files found in the vault.
	FilesScanned int `json:"files_scanned"`
	// Indexed is the number of notes whose content changed and was recorded.
	Indexed int `json:"indexed"`
	// Unchanged is the number of notes skipped because their hash matched.
	Unchanged int `json:"unchanged"`
	// Removed is the number of index entries dropped for files that no
	// longer exist.
	Removed int `json:"removed"`
	// Failed is the number of files that could not be indexed.
	Failed int `json:"failed"`
	// Blocks is the number of block identifiers recorded by this run.
	Blocks int `json:"blocks"`
}

func (s IndexStats) String() string {
	return fmt.Sprintf("%d files: %d indexed, %d unchanged, %d removed, %d failed, %d blocks",
		s.FilesScanned, s.Indexed, s.Unchanged, s.Removed, s.Failed, s.Blocks)
}

// add folds the result of indexing one note into the totals.
func (s *IndexStats) add(r noteResult) {
	if r.unchanged {
		s.Unchanged++
		return
	}
	s.Indexed++
	s.Blocks += r.blocks
}
