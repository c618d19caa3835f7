package outline

import "strings"

// Doc is an immutable snapshot of a text buffer with line bookkeeping.
// Offsets are byte offsets into the text. Line numbers start at 0.
type Doc struct {
	text   string
	lines  []string
	starts []int
}

// NewDoc builds a Doc from buffer text.
func NewDoc(text string) *Doc {
	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	pos := 0
	for i, l := range lines {
		starts[i] = pos
		pos += len(l) + 1
	}
	return &Doc{text: text, lines: lines, starts: starts}
}

// Text returns the full buffer text.
func (d *Doc) Text() string { return d.text }

// Len returns the buffer length in bytes.
func (d *Doc) Len() int { return len(d.text) }

// Lines returns the buffer split into lines. Callers must not modify it.
func (d *Doc) Lines() []string { return d.lines }

// LineCount returns the number of lines. An empty buffer has one empty line.
func (d *Doc) LineCount() int { return len(d.lines) }

// Line returns the text of line n, or "" when n is out of range.
func (d *Doc) Line(n int) string {
	if n < 0 || n >= len(d.lines) {
		return ""
	}
	return d.lines[n]
}

// LineStart returns the offset of the first character of line n.
func (d *Doc) LineStart(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(d.starts) {
		return len(d.text)
	}
	return d.starts[n]
}

// LineEnd returns the offset just after the last character of line n,
// excluding the line break.
func (d *Doc) LineEnd(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(d.lines) {
		return len(d.text)
	}
	return d.starts[n] + len(d.lines[n])
}

// LineAt returns the line containing pos. A position at the end of a line
// (on its line break) belongs to that line, not to the next one.
func (d *Doc) LineAt(pos int) int {
	if pos <= 0 {
		return 0
	}
	lo, hi := 0, len(d.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.starts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Offset converts a line/column pair to an offset, clamping the column to
// the line length.
func (d *Doc) Offset(line, ch int) int {
	if line < 0 {
		return 0
	}
	if line >= len(d.lines) {
		return len(d.text)
	}
	if ch < 0 {
		ch = 0
	}
	if ch > len(d.lines[line]) {
		ch = len(d.lines[line])
	}
	return d.starts[line] + ch
}

// Position converts an offset to a line/column pair.
func (d *Doc) Position(pos int) (line, ch int) {
	if pos > len(d.text) {
		pos = len(d.text)
	}
	line = d.LineAt(pos)
	return line, pos - d.LineStart(line)
}
