package header

import (
	"strings"

	"outliner/internal/zoom"
)

// Trails longer than this collapse their middle entries.
const maxExpanded = 3

const (
	delimiter = " / "
	ellipsis  = "···"
)

// Entry is one breadcrumb as laid out in the header.
type Entry struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Pos     *int   `json:"pos"`
	Hidden  bool   `json:"hidden"`
	Current bool   `json:"current"`
}

// Bar is the laid out header. When Collapsed, the entries marked Hidden sit
// behind an expand control whose tooltip is HiddenTitles.
type Bar struct {
	Entries      []Entry `json:"entries"`
	Collapsed    bool    `json:"collapsed"`
	HiddenTitles string  `json:"hidden_titles,omitempty"`
}

// Layout arranges crumbs. A trail of more than three entries shows the root,
// an expand control, the second-to-last and the last entry.
func Layout(crumbs []zoom.Breadcrumb) Bar {
	collapse := len(crumbs) > maxExpanded

	bar := Bar{Entries: make([]Entry, len(crumbs)), Collapsed: collapse}
	var hidden []string
	for i, c := range crumbs {
		e := Entry{
			Index:   i,
			Title:   c.Title,
			Pos:     c.Pos,
			Current: i == len(crumbs)-1,
		}
		if collapse && i > 0 && i < len(crumbs)-2 {
			e.Hidden = true
			hidden = append(hidden, c.Title)
		}
		bar.Entries[i] = e
	}
	bar.HiddenTitles = strings.Join(hidden, delimiter)
	return bar
}

// Render returns the header as a single line of text. A collapsed bar shows
// its hidden entries only when expanded is set.
func Render(bar Bar, expanded bool) string {
	var parts []string
	for i, e := range bar.Entries {
		if bar.Collapsed && !expanded && i == 1 {
			parts = append(parts, ellipsis)
		}
		if e.Hidden && !expanded {
			continue
		}
		parts = append(parts, e.Title)
	}
	return strings.Join(parts, delimiter)
}
