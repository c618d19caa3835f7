package zoom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"outliner/internal/editor"
)

// Line offsets:
//
//	0  "- a"
//	4  "  - b"
//	10 "    - c"
//	18 "  - d"
//	24 "- e"
const sampleOutline = "- a\n  - b\n    - c\n  - d\n- e"

func newTestController(t *testing.T) (*editor.View, *Controller) {
	t.Helper()
	v := editor.NewView("notes/Sample.md", sampleOutline)
	return v, NewController(v)
}

func TestController_ZoomIn(t *testing.T) {
	v, c := newTestController(t)

	var notified []int
	c.NotifyAfterZoomIn(func(_ *editor.View, pos int) { notified = append(notified, pos) })

	if !c.ZoomIn(6) {
		t.Fatal("ZoomIn() = false, want true")
	}

	if diff := cmp.Diff(&Range{From: 8, To: 17}, c.VisibleRange()); diff != "" {
		t.Errorf("VisibleRange() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Range{{From: 0, To: 8}, {From: 17, To: 27}}, c.HiddenRanges()); diff != "" {
		t.Errorf("HiddenRanges() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6}, notified); diff != "" {
		t.Errorf("zoom-in notifications mismatch (-want +got):\n%s", diff)
	}
	if got := v.Selection(); got != editor.Caret(8) {
		t.Errorf("Selection() = %+v, want clamped to 8", got)
	}
	if got := v.ScrollTop(); got != 1 {
		t.Errorf("ScrollTop() = %d, want 1", got)
	}

	want := &LineRange{From: Position{Line: 1, Ch: 4}, To: Position{Line: 2, Ch: 7}}
	if diff := cmp.Diff(want, c.GetZoomRange()); diff != "" {
		t.Errorf("GetZoomRange() mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ZoomInOutsideListIsNoop(t *testing.T) {
	v := editor.NewView("Plain.md", "# Heading\n\ntext")
	c := NewController(v)

	called := false
	c.NotifyAfterZoomIn(func(*editor.View, int) { called = true })

	if c.ZoomIn(3) {
		t.Error("ZoomIn() = true, want false")
	}
	if c.IsZoomed() || called {
		t.Errorf("IsZoomed() = %v, notified = %v; want neither", c.IsZoomed(), called)
	}
	if c.VisibleRange() != nil || c.HiddenRanges() != nil || c.GetZoomRange() != nil {
		t.Error("expected nil ranges when not zoomed")
	}
}

func TestController_ZoomOut(t *testing.T) {
	_, c := newTestController(t)

	outs := 0
	c.NotifyAfterZoomOut(func(*editor.View) { outs++ })

	c.ZoomIn(12)
	c.ZoomOut()

	if c.IsZoomed() {
		t.Error("IsZoomed() = true after ZoomOut")
	}
	if outs != 1 {
		t.Errorf("zoom-out notifications = %d, want 1", outs)
	}
}

func TestController_ZoomOutOneLevel(t *testing.T) {
	tests := []struct {
		name    string
		zoomAt  int
		want    *Range
		wantOut bool
	}{
		{name: "grandchild to child", zoomAt: 12, want: &Range{From: 8, To: 17}},
		{name: "child to top level", zoomAt: 6, want: &Range{From: 2, To: 23}},
		{name: "top level zooms out", zoomAt: 1, wantOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestController(t)
			c.ZoomIn(tt.zoomAt)
			c.ZoomOutOneLevel()

			if tt.wantOut {
				if c.IsZoomed() {
					t.Errorf("IsZoomed() = true, want zoomed out; range %+v", c.VisibleRange())
				}
				return
			}
			if diff := cmp.Diff(tt.want, c.VisibleRange()); diff != "" {
				t.Errorf("VisibleRange() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestController_ZoomOutOneLevelMatchesParentBreadcrumb(t *testing.T) {
	for _, pos := range []int{6, 12, 20} {
		_, viaCrumbs := newTestController(t)
		viaCrumbs.ZoomIn(pos)
		crumbs := viaCrumbs.Breadcrumbs()
		viaCrumbs.ZoomIn(*crumbs[len(crumbs)-2].Pos)

		_, oneLevel := newTestController(t)
		oneLevel.ZoomIn(pos)
		oneLevel.ZoomOutOneLevel()

		if diff := cmp.Diff(viaCrumbs.VisibleRange(), oneLevel.VisibleRange()); diff != "" {
			t.Errorf("pos %d: ranges differ (-crumbs +oneLevel):\n%s", pos, diff)
		}
	}
}

func TestController_LimitsSelectionWhileZoomed(t *testing.T) {
	v, c := newTestController(t)
	c.ZoomIn(6)

	tests := []struct {
		sel  editor.Selection
		want editor.Selection
	}{
		{sel: editor.Caret(0), want: editor.Caret(8)},
		{sel: editor.Selection{Anchor: 10, Head: 25}, want: editor.Selection{Anchor: 10, Head: 17}},
		{sel: editor.Caret(12), want: editor.Caret(12)},
	}

	for _, tt := range tests {
		if err := v.Select(tt.sel, false); err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if got := v.Selection(); got != tt.want {
			t.Errorf("Select(%+v) left selection %+v, want %+v", tt.sel, got, tt.want)
		}
	}

	c.ZoomOut()
	if err := v.Select(editor.Caret(0), false); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := v.Selection(); got != editor.Caret(0) {
		t.Errorf("Selection() = %+v after zoom out, want caret at 0", got)
	}
}

func TestController_EditsWhileZoomed(t *testing.T) {
	tests := []struct {
		name        string
		changes     []editor.Change
		wantZoomed  bool
		wantRange   *Range
		wantRefresh int
	}{
		{
			name:       "typing inside",
			changes:    []editor.Change{{From: 9, To: 9, Insert: "x"}},
			wantZoomed: true,
			wantRange:  &Range{From: 8, To: 18},
		},
		{
			name:       "typing at end of visible range",
			changes:    []editor.Change{{From: 17, To: 17, Insert: "!"}},
			wantZoomed: true,
			wantRange:  &Range{From: 8, To: 18},
		},
		{
			name:       "edit after visible range",
			changes:    []editor.Change{{From: 26, To: 27, Insert: "E"}},
			wantZoomed: true,
			wantRange:  &Range{From: 8, To: 17},
		},
		{
			name:        "edit before visible range",
			changes:     []editor.Change{{From: 2, To: 3, Insert: "AA"}},
			wantZoomed:  true,
			wantRange:   &Range{From: 9, To: 18},
			wantRefresh: 1,
		},
		{
			name:    "item merged into previous line",
			changes: []editor.Change{{From: 3, To: 8}},
		},
		{
			name:    "edit touching hidden and visible content",
			changes: []editor.Change{{From: 0, To: 1, Insert: "*"}, {From: 9, To: 9, Insert: "x"}},
		},
		{
			name:    "child dedented out of zoom",
			changes: []editor.Change{{From: 10, To: 12}},
		},
		{
			name:       "blank line typed at end of visible range",
			changes:    []editor.Change{{From: 17, To: 17, Insert: "\n"}},
			wantZoomed: true,
			wantRange:  &Range{From: 8, To: 18},
		},
		{
			name:    "trailing newline removed into sibling",
			changes: []editor.Change{{From: 17, To: 22}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := newTestController(t)
			c.ZoomIn(6)

			refreshes, outs := 0, 0
			c.NotifyRangeBeforeVisibleRangeChanged(func(*editor.View) { refreshes++ })
			c.NotifyAfterZoomOut(func(*editor.View) { outs++ })

			if err := v.Dispatch(editor.Transaction{Changes: tt.changes, UserEvent: editor.EventInput}); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			if c.IsZoomed() != tt.wantZoomed {
				t.Fatalf("IsZoomed() = %v, want %v", c.IsZoomed(), tt.wantZoomed)
			}
			if !tt.wantZoomed {
				if outs != 1 {
					t.Errorf("zoom-out notifications = %d, want 1", outs)
				}
				return
			}
			if diff := cmp.Diff(tt.wantRange, c.VisibleRange()); diff != "" {
				t.Errorf("VisibleRange() mismatch (-want +got):\n%s", diff)
			}
			if refreshes != tt.wantRefresh {
				t.Errorf("before-range notifications = %d, want %d", refreshes, tt.wantRefresh)
			}
		})
	}
}

func TestController_SiblingPulledIntoZoomZoomsOut(t *testing.T) {
	v := editor.NewView("notes/Sample.md", sampleOutline)
	c := NewController(v)
	c.ZoomIn(0)
	if diff := cmp.Diff(&Range{From: 2, To: 23}, c.VisibleRange()); diff != "" {
		t.Fatalf("VisibleRange() mismatch (-want +got):\n%s", diff)
	}

	// "  - d" becomes "- d", a sibling of the zoomed item
	if err := v.Replace(18, 20, "", editor.EventDelete); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if c.IsZoomed() {
		t.Errorf("IsZoomed() = true, visible %q", v.Text()[c.VisibleRange().From:c.VisibleRange().To])
	}
}

func TestController_RefreshZoomKeepsScroll(t *testing.T) {
	v, c := newTestController(t)
	c.ZoomIn(12)

	// a new child appended right after the zoomed item is outside the range
	// until the range is recomputed
	if err := v.Replace(18, 18, "      - c1\n", editor.EventInput); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if diff := cmp.Diff(&Range{From: 16, To: 17}, c.VisibleRange()); diff != "" {
		t.Fatalf("VisibleRange() before refresh mismatch (-want +got):\n%s", diff)
	}

	v.SetScrollTop(3)
	c.RefreshZoom()

	if diff := cmp.Diff(&Range{From: 16, To: 28}, c.VisibleRange()); diff != "" {
		t.Errorf("VisibleRange() after refresh mismatch (-want +got):\n%s", diff)
	}
	if got := v.ScrollTop(); got != 3 {
		t.Errorf("ScrollTop() = %d, want 3", got)
	}
}
