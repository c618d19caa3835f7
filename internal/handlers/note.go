package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"outliner/internal/contextutil"
	"outliner/internal/markers"
	"outliner/internal/storage"
	"outliner/internal/vault"
	"outliner/internal/zoom"
)

// NoteReader reads a note from the vault.
type NoteReader interface {
	Read(ctx context.Context, relPath string) (string, error)
}

// NoteTitles looks up the indexed title of a note.
type NoteTitles interface {
	NoteTitle(ctx context.Context, relPath string) (string, error)
}

// NoteHandler serves notes as rendered HTML pages with the outliner
// markers removed.
type NoteHandler struct {
	notes    NoteReader
	titles   NoteTitles
	parser   goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title   string
	RelPath string
	Content template.HTML
}

var notePage = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.6;
    }
    .meta {
      color: #64748b;
      font-size: 0.9rem;
    }
    li > ul {
      border-left: 1px solid #cbd5e1;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.RelPath}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewNoteHandler creates a new handler for previewing notes. titles may be
// nil, in which case pages are titled after the file name.
func NewNoteHandler(notes NoteReader, titles NoteTitles) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		titles: titles,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: notePage,
	}
}

// ServeHTTP renders the requested note as HTML.
//
// GET /notes/*
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	decoded, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		http.Error(w, "invalid path encoding", http.StatusBadRequest)
		return
	}
	relPath, err := cleanRelPath(decoded)
	if err != nil {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	content, err := h.notes.Read(ctx, relPath)
	if errors.Is(err, vault.ErrFileNotFound) {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to read note", "rel_path", relPath, "error", err)
		http.Error(w, "failed to read note", http.StatusInternalServerError)
		return
	}

	htmlContent, err := h.renderMarkdown(stripMarkers(content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "rel_path", relPath, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, notePageData{
		Title:   h.title(ctx, relPath),
		RelPath: relPath,
		Content: template.HTML(htmlContent),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "rel_path", relPath, "error", err)
	}
}

// title prefers the indexed title and falls back to the file name when the
// note is not indexed yet.
func (h *NoteHandler) title(ctx context.Context, relPath string) string {
	if h.titles != nil {
		title, err := h.titles.NoteTitle(ctx, relPath)
		if err == nil && strings.TrimSpace(title) != "" {
			return title
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to look up note title", "rel_path", relPath, "error", err)
		}
	}
	return zoom.DocumentTitle(relPath)
}

func (h *NoteHandler) renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// stripMarkers removes block ids and mirror markers from every line.
func stripMarkers(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = markers.RemoveMirrorMarker(markers.RemoveBlockID(line))
	}
	return strings.Join(lines, "\n")
}

func cleanRelPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("empty path")
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+trimmed), "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.New("invalid path")
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", errors.New("path traversal detected")
		}
	}
	return cleaned, nil
}
