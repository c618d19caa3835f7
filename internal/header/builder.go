package header

import (
	"context"
	"log/slog"

	"outliner/internal/editor"
	"outliner/internal/linkedcopy"
	"outliner/internal/outline"
	"outliner/internal/zoom"
)

// Originals resolves block identifiers to their originals.
type Originals interface {
	FindBlockByID(ctx context.Context, id string) (*linkedcopy.Block, error)
}

// Reader reads a note by its vault-relative path.
type Reader interface {
	Read(ctx context.Context, relPath string) (string, error)
}

// Builder computes header states for zoomed views.
type Builder struct {
	originals Originals
	files     Reader
	logger    *slog.Logger
}

// NewBuilder creates a builder. originals may be nil, in which case mirrors
// get the same header as any other item.
func NewBuilder(originals Originals, files Reader) *Builder {
	return &Builder{
		originals: originals,
		files:     files,
		logger:    slog.Default().With("component", "header"),
	}
}

// Local returns the header for pos built from the view's own document.
func (b *Builder) Local(v *editor.View, pos int) State {
	return State{Breadcrumbs: zoom.CollectBreadcrumbs(v.Doc(), pos, zoom.DocumentTitle(v.Path()))}
}

// AfterZoomIn returns the header for a zoom into pos. When the zoomed line is
// a mirror root or lies inside a mirror, the trail is taken from the
// original's file at the same offset below the original and a MirrorSource
// is attached. Any failure to resolve the original falls back to the local
// trail.
func (b *Builder) AfterZoomIn(ctx context.Context, v *editor.View, pos int) State {
	if s, ok := b.fromOriginal(ctx, v, pos); ok {
		return s
	}
	return b.Local(v, pos)
}

func (b *Builder) fromOriginal(ctx context.Context, v *editor.View, pos int) (State, bool) {
	if b.originals == nil {
		return State{}, false
	}

	doc := v.Doc()
	zoomedLine := doc.LineAt(pos)
	id, mirrorLine, ok := linkedcopy.FindMirrorParent(doc.Lines(), zoomedLine)
	if !ok {
		return State{}, false
	}

	original, err := b.originals.FindBlockByID(ctx, id)
	if err != nil {
		b.logger.Warn("failed to resolve original for header", "id", id, "error", err)
		return State{}, false
	}
	if original == nil {
		b.logger.Debug("original not found for mirror header", "id", id)
		return State{}, false
	}

	content, err := b.files.Read(ctx, original.RelPath)
	if err != nil {
		b.logger.Warn("failed to read original for header", "rel_path", original.RelPath, "error", err)
		return State{}, false
	}
	origDoc := outline.NewDoc(content)
	target := min(original.Line+(zoomedLine-mirrorLine), origDoc.LineCount()-1)

	title := zoom.DocumentTitle(original.RelPath)
	return State{
		Breadcrumbs: zoom.CollectBreadcrumbsAtLine(origDoc, target, title),
		MirrorSource: &MirrorSource{
			RelPath:  original.RelPath,
			BlockID:  id,
			FileName: title,
		},
	}, true
}
