package zoom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"outliner/internal/outline"
)

func intPtr(v int) *int { return &v }

func TestCollectBreadcrumbs(t *testing.T) {
	nested := "- a\n  - b\n\n    - c ^outliner-ab12cd\n  - d"

	tests := []struct {
		name string
		text string
		pos  int
		want []Breadcrumb
	}{
		{
			name: "deepest item, blank line skipped",
			text: nested,
			pos:  14,
			want: []Breadcrumb{
				{Title: "Daily"},
				{Title: "a", Pos: intPtr(0)},
				{Title: "b", Pos: intPtr(4)},
				{Title: "c", Pos: intPtr(11)},
			},
		},
		{
			name: "sibling after deeper item",
			text: nested,
			pos:  len(nested),
			want: []Breadcrumb{
				{Title: "Daily"},
				{Title: "a", Pos: intPtr(0)},
				{Title: "d", Pos: intPtr(36)},
			},
		},
		{
			name: "top level item",
			text: nested,
			pos:  0,
			want: []Breadcrumb{
				{Title: "Daily"},
				{Title: "a", Pos: intPtr(0)},
			},
		},
		{
			name: "outside list items",
			text: "# Heading\n- a",
			pos:  2,
			want: []Breadcrumb{{Title: "Daily"}},
		},
		{
			name: "prose parent stops the walk",
			text: "intro\n  - x",
			pos:  9,
			want: []Breadcrumb{
				{Title: "Daily"},
				{Title: "x", Pos: intPtr(6)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectBreadcrumbs(outline.NewDoc(tt.text), tt.pos, "Daily")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CollectBreadcrumbs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
