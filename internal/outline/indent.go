// Package outline derives list structure from plain Markdown text.
//
// Nothing here keeps a tree. Parent/child relationships are re-derived from
// indentation on every call, so callers always see the current buffer.
package outline

import (
	"regexp"
	"strings"
)

var (
	listItemRe = regexp.MustCompile(`^\s*[-*+]\s+|^\s*\d+\.\s+`)
	prefixRe   = regexp.MustCompile(`^(\s*[-*+]\s+|\s*\d+\.\s+)(\[.\]\s*)?`)
	checkboxRe = regexp.MustCompile(`^\s*([-*+]|\d+\.)\s+\[.\]`)
)

// IndentLevel returns the number of leading whitespace characters of a line.
// A tab counts as one unit, the same as a space.
func IndentLevel(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// IndentString returns the leading whitespace of a line.
func IndentString(line string) string {
	return line[:IndentLevel(line)]
}

// IsBlank reports whether the line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsListItem reports whether the line starts a bullet or numbered list item.
func IsListItem(line string) bool {
	return listItemRe.MatchString(line)
}

// HasCheckbox reports whether the list item carries a task checkbox.
func HasCheckbox(line string) bool {
	return checkboxRe.MatchString(line)
}

// ListPrefix returns the indentation, bullet and optional checkbox of a list
// item line, including the whitespace that follows them. Non-list lines have
// an empty prefix.
func ListPrefix(line string) string {
	return prefixRe.FindString(line)
}

// ChildRange returns the half-open line range [first, end) holding the
// children of the line at parent. Children are the contiguous following lines
// that are blank or indented deeper than the parent; the run stops at the
// first non-blank line whose indentation is less than or equal to the
// parent's. Trailing blank lines are not part of the range.
func ChildRange(lines []string, parent int) (first, end int) {
	first = parent + 1
	if parent < 0 || parent >= len(lines) {
		return first, first
	}
	parentIndent := IndentLevel(lines[parent])

	end = first
	for i := first; i < len(lines); i++ {
		line := lines[i]
		if IsBlank(line) {
			continue
		}
		if IndentLevel(line) <= parentIndent {
			break
		}
		end = i + 1
	}
	return first, end
}

// ChildLines returns the child lines of the line at parent.
func ChildLines(lines []string, parent int) []string {
	first, end := ChildRange(lines, parent)
	if end <= first {
		return nil
	}
	out := make([]string, end-first)
	copy(out, lines[first:end])
	return out
}

// ItemLine returns the index of the list item line that owns line n: n itself
// when it is a list item, otherwise the nearest preceding list item with a
// smaller indentation. Blank lines and top-level prose belong to no item.
func ItemLine(lines []string, n int) (int, bool) {
	if n < 0 || n >= len(lines) {
		return -1, false
	}
	line := lines[n]
	if IsListItem(line) {
		return n, true
	}
	if IsBlank(line) {
		return -1, false
	}

	indent := IndentLevel(line)
	for i := n - 1; i >= 0 && indent > 0; i-- {
		candidate := lines[i]
		if IsBlank(candidate) {
			continue
		}
		ci := IndentLevel(candidate)
		if ci >= indent {
			continue
		}
		if IsListItem(candidate) {
			return i, true
		}
		indent = ci
	}
	return -1, false
}

// Rebase moves every non-blank line from one base indentation to another.
// Lines that do not start with from keep their own indentation below to.
func Rebase(lines []string, from, to string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if IsBlank(line) {
			out[i] = line
			continue
		}
		out[i] = to + strings.TrimPrefix(line, from)
	}
	return out
}
