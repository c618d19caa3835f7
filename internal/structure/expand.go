// Package structure holds the list editing operations that work on whole
// items: snapping selections to item boundaries and creating new items.
package structure

import (
	"outliner/internal/editor"
	"outliner/internal/outline"
)

// ExpandToFullItems widens a selection that spans several lines so it starts
// at the content of the first item it touches and ends at the end of the last
// item's subtree. When the first item contains the last one, the first item's
// whole subtree is taken. The direction of the selection is kept. It reports
// false when the selection stays as it is.
func ExpandToFullItems(doc *outline.Doc, sel editor.Selection) (editor.Selection, bool) {
	from := max(0, min(sel.From(), doc.Len()))
	to := max(0, min(sel.To(), doc.Len()))
	fromLine, toLine := doc.LineAt(from), doc.LineAt(to)
	if fromLine == toLine {
		return sel, false
	}

	lines := doc.Lines()
	first, ok := outline.ItemLine(lines, fromLine)
	if !ok {
		return sel, false
	}
	last, ok := outline.ItemLine(lines, toLine)
	if !ok {
		return sel, false
	}
	for i := fromLine + 1; i < toLine; i++ {
		if outline.IsBlank(lines[i]) {
			continue
		}
		if _, ok := outline.ItemLine(lines, i); !ok {
			// prose between two lists
			return sel, false
		}
	}
	if last < first {
		first, last = last, first
	}

	if _, end := outline.ChildRange(lines, first); last < end {
		last = first
	}
	_, end := outline.ChildRange(lines, last)

	start := doc.LineStart(first) + len(outline.ListPrefix(lines[first]))
	stop := doc.LineEnd(max(last, end-1))
	if from == start && to == stop {
		return sel, false
	}

	if sel.Anchor <= sel.Head {
		return editor.Selection{Anchor: start, Head: stop}, true
	}
	return editor.Selection{Anchor: stop, Head: start}, true
}

// ExpandSelection is an editor filter that applies ExpandToFullItems to
// selections made by the user.
func ExpandSelection(v *editor.View, tr editor.Transaction) editor.Transaction {
	if tr.Selection == nil || tr.DocChanged() || !tr.IsUserEvent(editor.EventSelect) {
		return tr
	}
	if sel, ok := ExpandToFullItems(v.Doc(), *tr.Selection); ok {
		tr.Selection = &sel
	}
	return tr
}
