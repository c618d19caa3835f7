package editor

import (
	"fmt"
	"sort"
	"strings"
)

// Change replaces the text between From and To (offsets in the document the
// transaction starts from) with Insert.
type Change struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Insert string `json:"insert"`
}

// Empty reports whether the change neither deletes nor inserts anything.
func (c Change) Empty() bool {
	return c.From == c.To && c.Insert == ""
}

// normalizeChanges sorts changes by position and rejects overlapping or
// out-of-range entries.
func normalizeChanges(changes []Change, docLen int) ([]Change, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		if c.From < 0 || c.To < c.From || c.To > docLen {
			return nil, fmt.Errorf("change [%d, %d) out of range for document of length %d", c.From, c.To, docLen)
		}
		if !c.Empty() {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].From < out[j].From })
	for i := 1; i < len(out); i++ {
		if out[i].From < out[i-1].To {
			return nil, fmt.Errorf("overlapping changes at %d", out[i].From)
		}
	}
	return out, nil
}

// applyChanges returns text with sorted, non-overlapping changes applied.
func applyChanges(text string, changes []Change) string {
	if len(changes) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, c := range changes {
		b.WriteString(text[last:c.From])
		b.WriteString(c.Insert)
		last = c.To
	}
	b.WriteString(text[last:])
	return b.String()
}

// diffChange returns a single change turning a into b, trimmed to the span
// between their common prefix and common suffix.
func diffChange(a, b string) Change {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return Change{From: prefix, To: len(a) - suffix, Insert: b[prefix : len(b)-suffix]}
}

// MapPos maps a position in the start document of changes to the resulting
// document. When pos touches a change, assoc picks the side: negative keeps
// it before inserted text, positive moves it after. A position inside a
// deleted span collapses to the edge of the replacement.
func MapPos(changes []Change, pos int, assoc int) int {
	delta := 0
	for _, c := range changes {
		if c.From > pos {
			break
		}
		if c.To < pos {
			delta += len(c.Insert) - (c.To - c.From)
			continue
		}
		if assoc < 0 {
			return c.From + delta
		}
		return c.From + len(c.Insert) + delta
	}
	return pos + delta
}
