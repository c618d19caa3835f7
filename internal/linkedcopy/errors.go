package linkedcopy

import "errors"

// Errors returned by the linked copy commands. Each one aborts the command
// before anything is written and is meant to be shown to the user as is.
var (
	ErrFeatureDisabled    = errors.New("linked copies are disabled")
	ErrNoRecentCopy       = errors.New("no recent copy found, copy a list item first")
	ErrCannotMirrorMirror = errors.New("cannot create a linked copy of a linked copy")
	ErrMirrorInsideSelf   = errors.New("cannot paste a linked copy inside the item it copies")
	ErrSourceFileNotFound = errors.New("source file not found")
	ErrSourceLineNotFound = errors.New("source line not found")
	ErrSourceChanged      = errors.New("source content has changed since it was copied")
	ErrNotOnMirror        = errors.New("cursor is not on a linked copy")
	ErrNotOnMirrorLine    = errors.New("cursor is not on a linked copy line")
	ErrOriginalNotFound   = errors.New("original block not found")
)
