package linkedcopy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"outliner/internal/editor"
	"outliner/internal/markers"
	"outliner/internal/outline"
)

// CopySource remembers the list item most recently copied, so that it can be
// pasted as a linked copy.
type CopySource struct {
	RelPath  string    `json:"rel_path"`
	Line     int       `json:"line"`
	Content  string    `json:"content"`
	Children []string  `json:"children"`
	At       time.Time `json:"at"`
}

// PasteResult describes a linked copy that was inserted.
type PasteResult struct {
	ID   string `json:"id"`
	Line int    `json:"line"`
}

// RecordCopy remembers the first selected line of v as the copy source. A
// multi-line selection supplies the children; otherwise the item's own
// children are taken. It reports false when the line is not a list item.
func (e *Engine) RecordCopy(v *editor.View) bool {
	if !e.opts.Enabled {
		e.debug(context.Background(), "linked copies disabled, not recording copy")
		return false
	}

	doc := v.Doc()
	sel := v.Selection()
	fromLine := doc.LineAt(sel.From())
	toLine := doc.LineAt(sel.To())

	line := doc.Line(fromLine)
	if !outline.IsListItem(line) {
		e.debug(context.Background(), "copied line is not a list item", "rel_path", v.Path(), "line", fromLine)
		return false
	}

	var children []string
	if toLine > fromLine {
		children = append(children, doc.Lines()[fromLine+1:toLine+1]...)
	} else {
		children = outline.ChildLines(doc.Lines(), fromLine)
	}

	e.mu.Lock()
	e.lastCopy = &CopySource{
		RelPath:  v.Path(),
		Line:     fromLine,
		Content:  line,
		Children: children,
		At:       e.now(),
	}
	e.mu.Unlock()

	e.debug(context.Background(), "stored copy source", "rel_path", v.Path(), "line", fromLine, "children", len(children))
	return true
}

// LastCopy returns the recorded copy source, or nil.
func (e *Engine) LastCopy() *CopySource {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastCopy == nil {
		return nil
	}
	c := *e.lastCopy
	return &c
}

// PasteAsLinkedCopy inserts a mirror of the recorded copy source at the
// cursor of v. The source line gets a block identifier if it has none. The
// mirror becomes the next sibling of the item on a non-blank cursor line, or
// replaces a blank cursor line indented below the closest list item above it.
func (e *Engine) PasteAsLinkedCopy(ctx context.Context, v *editor.View) (*PasteResult, error) {
	if !e.opts.Enabled {
		return nil, ErrFeatureDisabled
	}

	src := e.LastCopy()
	if src == nil || e.now().Sub(src.At) > e.opts.CopyMaxAge {
		return nil, ErrNoRecentCopy
	}
	if markers.HasMirrorMarker(src.Content) {
		return nil, ErrCannotMirrorMirror
	}
	if !e.files.Exists(src.RelPath) {
		return nil, ErrSourceFileNotFound
	}

	lines, err := e.store.readLines(ctx, src.RelPath)
	if err != nil {
		return nil, err
	}
	if src.Line >= len(lines) || lines[src.Line] == "" {
		return nil, ErrSourceLineNotFound
	}
	sourceLine := lines[src.Line]
	if markers.RemoveBlockID(sourceLine) != markers.RemoveBlockID(src.Content) {
		return nil, ErrSourceChanged
	}

	id := markers.ParseBlockID(sourceLine)
	updated := sourceLine
	switch {
	case id != "" && markers.HasBlockIDWithoutSpace(sourceLine):
		updated = markers.RepairBlockID(sourceLine)
	case id == "":
		id = markers.GenerateID()
		updated = markers.AddBlockID(sourceLine, id)
	}
	content := markers.CreateMirrorContent(sourceLine, src.Children, id)
	sourceIndent := outline.IndentString(sourceLine)

	at := placeMirror(v.Doc(), v.Selection().Head, content, sourceIndent, e.opts.IndentUnit)
	after := outline.NewDoc(at.applyTo(v.Text())).Lines()
	if v.Path() == src.RelPath && src.Line < at.line {
		after[src.Line] = updated
	}
	if containsItself(after, at.line, id, src.Children) {
		return nil, ErrMirrorInsideSelf
	}

	if updated != sourceLine {
		if err := e.updateSourceLine(ctx, v, src, lines, updated); err != nil {
			return nil, err
		}
	}

	// the source line may sit above the cursor in v, so place again
	at = placeMirror(v.Doc(), v.Selection().Head, content, sourceIndent, e.opts.IndentUnit)
	if err := v.Replace(at.from, at.to, at.text, editor.EventInput); err != nil {
		return nil, fmt.Errorf("failed to insert linked copy: %w", err)
	}

	e.debug(ctx, "pasted as linked copy", "id", id, "rel_path", v.Path(), "line", at.line)
	return &PasteResult{ID: id, Line: at.line}, nil
}

// updateSourceLine writes the identified source line back. When the source
// is open in v the buffer gets the same change, so saving v keeps it.
func (e *Engine) updateSourceLine(ctx context.Context, v *editor.View, src *CopySource, lines []string, updated string) error {
	lines[src.Line] = updated
	if err := e.write(ctx, src.RelPath, lines); err != nil {
		return err
	}

	if v.Path() != src.RelPath || src.Line >= v.LineCount() {
		return nil
	}
	doc := v.Doc()
	if markers.RemoveBlockID(doc.Line(src.Line)) != markers.RemoveBlockID(updated) {
		return nil
	}
	if err := v.Replace(doc.LineStart(src.Line), doc.LineEnd(src.Line), updated, editor.EventSync); err != nil {
		return fmt.Errorf("failed to update source line in buffer: %w", err)
	}
	return nil
}

// placement is a pending insertion of mirror content into a buffer.
type placement struct {
	from, to int
	text     string
	// line is the mirror root's line once the text is in place.
	line int
}

func (p placement) applyTo(text string) string {
	return text[:p.from] + p.text + text[p.to:]
}

// placeMirror decides where content goes for a cursor at pos, moved from the
// source's indentation to the one the cursor position calls for. On a list
// item line the mirror follows the item's subtree as its sibling. A blank
// line is replaced, indented below the closest list item above it.
func placeMirror(doc *outline.Doc, pos int, content, sourceIndent, indentUnit string) placement {
	cursorLine := doc.LineAt(pos)
	current := doc.Line(cursorLine)

	baseIndent := ""
	if !outline.IsBlank(current) {
		baseIndent = outline.IndentString(current)
	} else {
		for i := cursorLine - 1; i >= 0; i-- {
			prev := doc.Line(i)
			if outline.IsBlank(prev) {
				continue
			}
			baseIndent = outline.IndentString(prev)
			if outline.IsListItem(prev) {
				baseIndent += indentUnit
			}
			break
		}
	}

	text := strings.Join(outline.Rebase(strings.Split(content, "\n"), sourceIndent, baseIndent), "\n")

	if !outline.IsBlank(current) {
		_, end := outline.ChildRange(doc.Lines(), cursorLine)
		last := max(cursorLine, end-1)
		at := doc.LineEnd(last)
		return placement{from: at, to: at, text: "\n" + text, line: last + 1}
	}
	return placement{from: doc.LineStart(cursorLine), to: doc.LineEnd(cursorLine), text: text, line: cursorLine}
}

// GoToOriginal resolves the original of the mirror governing the cursor line
// of v.
func (e *Engine) GoToOriginal(ctx context.Context, v *editor.View) (*Block, error) {
	doc := v.Doc()
	id, _, ok := FindMirrorParent(doc.Lines(), doc.LineAt(v.Selection().Head))
	if !ok {
		return nil, ErrNotOnMirror
	}

	original, err := e.store.FindBlockByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrOriginalNotFound
	}
	return original, nil
}

// BreakMirrorLink turns the mirror on line of relPath into plain text and
// then drops the original's block identifier if it has no mirrors left. It
// returns the identifier the mirror referred to.
func (e *Engine) BreakMirrorLink(ctx context.Context, relPath string, line int) (string, error) {
	lines, err := e.store.readLines(ctx, relPath)
	if err != nil {
		return "", err
	}
	if line < 0 || line >= len(lines) {
		return "", ErrNotOnMirrorLine
	}
	id := markers.ParseMirrorMarker(lines[line])
	if id == "" {
		return "", ErrNotOnMirrorLine
	}

	lines[line] = markers.RemoveMirrorMarker(lines[line])
	if err := e.write(ctx, relPath, lines); err != nil {
		return "", err
	}
	e.debug(ctx, "broke mirror link", "id", id, "rel_path", relPath, "line", line)

	if err := e.CleanupOrphanedBlockID(ctx, id); err != nil {
		return id, fmt.Errorf("failed to clean up block id %s: %w", id, err)
	}
	return id, nil
}
