package zoom

import (
	"outliner/internal/markers"
	"outliner/internal/outline"
)

// Breadcrumb is one entry of the ancestor trail. Pos is nil for the document
// root and the line start of the item otherwise.
type Breadcrumb struct {
	Title string `json:"title"`
	Pos   *int   `json:"pos"`
}

// CollectBreadcrumbs returns the trail from the document root to the list
// item containing pos. The first entry is the root titled title; the last is
// the item itself. When pos is not inside a list item only the root is
// returned.
func CollectBreadcrumbs(doc *outline.Doc, pos int, title string) []Breadcrumb {
	return CollectBreadcrumbsAtLine(doc, doc.LineAt(pos), title)
}

// CollectBreadcrumbsAtLine is CollectBreadcrumbs for a line number.
func CollectBreadcrumbsAtLine(doc *outline.Doc, n int, title string) []Breadcrumb {
	root := []Breadcrumb{{Title: title}}

	lines := doc.Lines()
	item, ok := outline.ItemLine(lines, n)
	if !ok {
		return root
	}

	trail := []int{item}
	minIndent := outline.IndentLevel(lines[item])
	for i := item - 1; i >= 0 && minIndent > 0; i-- {
		line := lines[i]
		if outline.IsBlank(line) {
			continue
		}
		indent := outline.IndentLevel(line)
		if indent >= minIndent {
			continue
		}
		if !outline.IsListItem(line) {
			break
		}
		trail = append(trail, i)
		minIndent = indent
	}

	crumbs := make([]Breadcrumb, 0, len(trail)+1)
	crumbs = append(crumbs, root...)
	for i := len(trail) - 1; i >= 0; i-- {
		line := trail[i]
		pos := doc.LineStart(line)
		crumbs = append(crumbs, Breadcrumb{Title: markers.CleanTitle(lines[line]), Pos: &pos})
	}
	return crumbs
}
