package service

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrInvalidInput is returned when an edit or selection does not fit the
	// pane's current text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for notes and panes that do not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the request field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// WrapError prefixes err with msg. A nil err stays nil.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func validatePath(relPath string) error {
	if relPath == "" {
		return &ValidationError{Field: "path", Message: "cannot be empty"}
	}
	if !strings.EqualFold(path.Ext(relPath), ".md") {
		return &ValidationError{Field: "path", Message: "must be a markdown note"}
	}
	return nil
}

// notOpen reports a request for a pane that was never opened or was closed.
func notOpen(relPath string) error {
	return fmt.Errorf("pane %s: %w", relPath, ErrNotFound)
}

// noteMissing reports a note that is not in the vault.
func noteMissing(relPath string) error {
	return fmt.Errorf("note %s: %w", relPath, ErrNotFound)
}
