package linkedcopy

import (
	"outliner/internal/markers"
	"outliner/internal/outline"
)

// enclosingIDs collects the block identifiers and mirror ids found on the
// lines that contain line n by indentation.
func enclosingIDs(lines []string, n int) map[string]bool {
	ids := make(map[string]bool)
	if n < 0 || n >= len(lines) {
		return ids
	}

	minIndent := outline.IndentLevel(lines[n])
	for i := n - 1; i >= 0 && minIndent > 0; i-- {
		line := lines[i]
		if outline.IsBlank(line) {
			continue
		}
		indent := outline.IndentLevel(line)
		if indent >= minIndent {
			continue
		}
		if id := markers.ParseBlockID(line); id != "" {
			ids[id] = true
		}
		if id := markers.ParseMirrorMarker(line); id != "" {
			ids[id] = true
		}
		minIndent = indent
	}
	return ids
}

// containsItself reports whether a mirror of id rooted at line n would hold a
// copy of itself once rendered with children. That happens when the mirror
// sits below an item tied to id, or when children carry a mirror of id or of
// an item the mirror sits below. Rendering such a mirror grows it on every
// pass.
func containsItself(lines []string, n int, id string, children []string) bool {
	enclosing := enclosingIDs(lines, n)
	if enclosing[id] {
		return true
	}
	for _, child := range children {
		ref := markers.ParseMirrorMarker(child)
		if ref != "" && (ref == id || enclosing[ref]) {
			return true
		}
	}
	return false
}
