// Package zoom restricts an editor view to one list item's subtree.
//
// The zoomed range is the only state kept here. Item boundaries, hidden
// content and breadcrumbs are recomputed from the current document text
// every time they are needed.
package zoom

import (
	"path"
	"strings"

	"outliner/internal/outline"
)

// Range is a half-open span of document offsets.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether pos lies within r, boundaries included.
func (r Range) Contains(pos int) bool {
	return pos >= r.From && pos <= r.To
}

// RangeForZooming returns the range covering the list item at pos together
// with all of its descendants. From is the offset just past the item's bullet
// and checkbox; To is the end of its last non-blank descendant line. It
// returns nil when pos is not inside a list item.
func RangeForZooming(doc *outline.Doc, pos int) *Range {
	lines := doc.Lines()
	item, ok := outline.ItemLine(lines, doc.LineAt(pos))
	if !ok {
		return nil
	}

	from := doc.LineStart(item) + len(outline.ListPrefix(lines[item]))
	_, end := outline.ChildRange(lines, item)
	last := max(item, end-1)

	return &Range{From: from, To: doc.LineEnd(last)}
}

// VisibleContentRange returns the part of doc left visible by the zoomed
// range, or nil when not zoomed.
func VisibleContentRange(doc *outline.Doc, zoomed *Range) *Range {
	if zoomed == nil {
		return nil
	}
	from := max(0, min(zoomed.From, doc.Len()))
	to := max(from, min(zoomed.To, doc.Len()))
	return &Range{From: from, To: to}
}

// HiddenContentRanges returns the complement of the zoomed range within doc:
// at most one range before it and one after it. It returns nil when not
// zoomed.
func HiddenContentRanges(doc *outline.Doc, zoomed *Range) []Range {
	visible := VisibleContentRange(doc, zoomed)
	if visible == nil {
		return nil
	}
	hidden := make([]Range, 0, 2)
	if visible.From > 0 {
		hidden = append(hidden, Range{From: 0, To: visible.From})
	}
	if visible.To < doc.Len() {
		hidden = append(hidden, Range{From: visible.To, To: doc.Len()})
	}
	return hidden
}

// DocumentTitle returns the display name of a note: its file name without
// the Markdown extension.
func DocumentTitle(notePath string) string {
	return strings.TrimSuffix(path.Base(notePath), ".md")
}
