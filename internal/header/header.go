// Package header holds the breadcrumb header shown above a zoomed view: the
// trail itself, how clicks on it are answered and how a long trail is laid
// out.
package header

import (
	"errors"

	"outliner/internal/zoom"
)

// ErrNoSuchBreadcrumb is returned for a click outside the trail.
var ErrNoSuchBreadcrumb = errors.New("no such breadcrumb")

// MirrorSource is attached to a header whose zoomed item is a mirror or lies
// inside one. The breadcrumbs then describe the original's file.
type MirrorSource struct {
	RelPath  string `json:"rel_path"`
	BlockID  string `json:"block_id"`
	FileName string `json:"file_name"`
}

// State is the header of one view.
type State struct {
	Breadcrumbs  []zoom.Breadcrumb `json:"breadcrumbs"`
	MirrorSource *MirrorSource     `json:"mirror_source,omitempty"`
}

// ActionKind says what a breadcrumb click asks for.
type ActionKind string

const (
	ActionZoomIn   ActionKind = "zoom_in"
	ActionZoomOut  ActionKind = "zoom_out"
	ActionNavigate ActionKind = "navigate"
)

// Action is the answer to a breadcrumb click. For ActionNavigate, RelPath and
// BlockID name the original and a nil Pos means zooming out there.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Pos     *int       `json:"pos,omitempty"`
	RelPath string     `json:"rel_path,omitempty"`
	BlockID string     `json:"block_id,omitempty"`
}

// Click resolves a click on the breadcrumb at index.
func Click(s State, index int) (Action, error) {
	if index < 0 || index >= len(s.Breadcrumbs) {
		return Action{}, ErrNoSuchBreadcrumb
	}
	crumb := s.Breadcrumbs[index]

	if s.MirrorSource != nil {
		return Action{
			Kind:    ActionNavigate,
			Pos:     crumb.Pos,
			RelPath: s.MirrorSource.RelPath,
			BlockID: s.MirrorSource.BlockID,
		}, nil
	}
	if crumb.Pos == nil {
		return Action{Kind: ActionZoomOut}, nil
	}
	return Action{Kind: ActionZoomIn, Pos: crumb.Pos}, nil
}
