package structure

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"outliner/internal/editor"
	"outliner/internal/outline"
)

var bulletRe = regexp.MustCompile(`^\s*(?:([-*+])|(\d+)\.)\s`)

// NewItemOptions controls CreateNewItem.
type NewItemOptions struct {
	// IndentUnit indents a first child under an item that has none.
	IndentUnit string
	// Above inserts the new item before the cursor item instead of after it.
	Above bool
	// Zoomed marks ZoomedLine as the line of the zoomed item. An item
	// created at the end of the zoomed item becomes its child so that it
	// stays visible.
	Zoomed     bool
	ZoomedLine int
}

// CreateNewItem adds a list item next to the one holding the caret and moves
// the caret into it.
//
// With the caret inside the item's text, the text after the caret moves to a
// new sibling that also takes over the item's children. With the caret at
// the end, the new item becomes the first child of an item that has children
// and the next sibling otherwise. Checkboxes are carried over unchecked.
//
// It reports false and leaves the view untouched when the selection is not a
// caret, the caret is not past the bullet of a list item, or the item is
// empty.
func CreateNewItem(v *editor.View, opts NewItemOptions) (bool, error) {
	sel := v.Selection()
	if sel.Anchor != sel.Head {
		return false, nil
	}

	doc := v.Doc()
	n, ch := doc.Position(sel.Head)
	line := doc.Line(n)
	if !outline.IsListItem(line) {
		return false, nil
	}
	prefix := outline.ListPrefix(line)
	if ch < len(prefix) || outline.IsBlank(line[len(prefix):]) {
		return false, nil
	}

	indent := outline.IndentString(line)
	checkbox := outline.HasCheckbox(line)
	lineStart := doc.LineStart(n)

	if opts.Above {
		p := itemPrefix(indent, line, checkbox, false)
		return true, insertItem(v, lineStart, p+"\n", lineStart+len(p))
	}

	if ch < len(line) {
		p := itemPrefix(indent, line, checkbox, true)
		at := lineStart + ch
		return true, insertItem(v, at, "\n"+p, at+1+len(p))
	}

	lines := doc.Lines()
	_, end := outline.ChildRange(lines, n)
	for i := n + 1; i < end; i++ {
		if !outline.IsListItem(lines[i]) {
			continue
		}
		p := itemPrefix(outline.IndentString(lines[i]), lines[i], checkbox, false)
		at := doc.LineStart(i)
		return true, insertItem(v, at, p+"\n", at+len(p))
	}

	at := doc.LineEnd(max(n, end-1))
	p := itemPrefix(indent, line, checkbox, true)
	if opts.Zoomed && n == opts.ZoomedLine {
		p = itemPrefix(indent+opts.IndentUnit, line, checkbox, false)
	}
	return true, insertItem(v, at, "\n"+p, at+1+len(p))
}

// itemPrefix builds the prefix of a new item at indent using the bullet of
// ref. Numbered bullets count up when next is set.
func itemPrefix(indent, ref string, checkbox, next bool) string {
	bullet := "-"
	if m := bulletRe.FindStringSubmatch(ref); m != nil {
		switch {
		case m[1] != "":
			bullet = m[1]
		case next:
			num, _ := strconv.Atoi(m[2])
			bullet = strconv.Itoa(num+1) + "."
		default:
			bullet = m[2] + "."
		}
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(bullet)
	b.WriteString(" ")
	if checkbox {
		b.WriteString("[ ] ")
	}
	return b.String()
}

func insertItem(v *editor.View, at int, text string, caret int) error {
	sel := editor.Caret(caret)
	err := v.Dispatch(editor.Transaction{
		Changes:        []editor.Change{{From: at, To: at, Insert: text}},
		Selection:      &sel,
		UserEvent:      editor.EventInput,
		ScrollIntoView: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}
