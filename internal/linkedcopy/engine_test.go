package linkedcopy

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"outliner/internal/markers"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Debounce = 10 * time.Millisecond
	return opts
}

func TestEngine_SyncPropagatesToMirrors(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa\n  - sub 1\n  - sub 2\n- other",
		"b.md": "# B\n- parent\n  - task <!-- mirror:outliner-aaaaaa -->\n- tail",
		"c.md": "- [x] stale <!-- mirror:outliner-aaaaaa -->\n  - old child\n  - old child 2\n- [ ] next",
	})
	e := tv.engine(testOptions())
	ctx := context.Background()

	if err := e.Sync(ctx, "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	wantB := "# B\n- parent\n  - task <!-- mirror:outliner-aaaaaa -->\n    - sub 1\n    - sub 2\n- tail"
	if got := tv.get("b.md"); got != wantB {
		t.Errorf("b.md = %q, want %q", got, wantB)
	}
	wantC := "- [x] task <!-- mirror:outliner-aaaaaa -->\n  - sub 1\n  - sub 2\n- [ ] next"
	if got := tv.get("c.md"); got != wantC {
		t.Errorf("c.md = %q, want %q", got, wantC)
	}

	// editing the original removes a child everywhere
	tv.put("a.md", "- task renamed ^outliner-aaaaaa\n  - sub 2\n- other")
	if err := e.Sync(ctx, "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	wantB = "# B\n- parent\n  - task renamed <!-- mirror:outliner-aaaaaa -->\n    - sub 2\n- tail"
	if got := tv.get("b.md"); got != wantB {
		t.Errorf("b.md after edit = %q, want %q", got, wantB)
	}
}

func TestEngine_SyncConverges(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- v0 ^outliner-aaaaaa",
		"b.md": "- v0 <!-- mirror:outliner-aaaaaa -->\n- keep",
		"c.md": "- first\n- v0 <!-- mirror:outliner-aaaaaa -->",
	})
	e := tv.engine(testOptions())
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		original := fmt.Sprintf("- v%d ^outliner-aaaaaa", i)
		children := []string{}
		for j := 0; j < i%3; j++ {
			children = append(children, fmt.Sprintf("  - child %d.%d", i, j))
		}
		tv.put("a.md", strings.Join(append([]string{original}, children...), "\n"))

		if err := e.Sync(ctx, "a.md"); err != nil {
			t.Fatalf("edit %d: Sync() error = %v", i, err)
		}

		mirror := markers.CreateMirrorContent(original, children, "outliner-aaaaaa")
		if got, want := tv.get("b.md"), mirror+"\n- keep"; got != want {
			t.Errorf("edit %d: b.md = %q, want %q", i, got, want)
		}
		if got, want := tv.get("c.md"), "- first\n"+mirror; got != want {
			t.Errorf("edit %d: c.md = %q, want %q", i, got, want)
		}
	}
}

func TestEngine_SyncSkipsConvergedFiles(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa\n  - sub",
		"b.md": "- task <!-- mirror:outliner-aaaaaa -->\n  - sub",
	})
	e := tv.engine(testOptions())

	if err := e.Sync(context.Background(), "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if err := e.Sync(context.Background(), "b.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if writes := tv.files.Writes(); len(writes) != 0 {
		t.Errorf("Sync() wrote %v, want no writes", writes)
	}
}

func TestEngine_SyncLeavesSelfContainingMirrors(t *testing.T) {
	tests := []struct {
		name  string
		notes map[string]string
	}{
		{
			name: "mirror inside its own original",
			notes: map[string]string{
				"a.md": "- a ^outliner-aaaaaa\n  - b\n  - a <!-- mirror:outliner-aaaaaa -->\n- z",
			},
		},
		{
			name: "originals mirroring each other",
			notes: map[string]string{
				"a.md": "- x ^outliner-xxxxxx\n  - y <!-- mirror:outliner-yyyyyy -->",
				"b.md": "- y ^outliner-yyyyyy\n  - x <!-- mirror:outliner-xxxxxx -->",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := newTestVault(t, tt.notes)
			e := tv.engine(testOptions())

			for pass := 0; pass < 3; pass++ {
				for relPath := range tt.notes {
					if err := e.Sync(context.Background(), relPath); err != nil {
						t.Fatalf("Sync(%s) error = %v", relPath, err)
					}
				}
			}

			for relPath, want := range tt.notes {
				if got := tv.get(relPath); got != want {
					t.Errorf("%s = %q, want unchanged %q", relPath, got, want)
				}
			}
			if writes := tv.files.Writes(); len(writes) != 0 {
				t.Errorf("Sync() wrote %v, want no writes", writes)
			}
		})
	}
}

func TestContainsItself(t *testing.T) {
	lines := []string{
		"- a ^outliner-aaaaaa",
		"  - b",
		"    - m <!-- mirror:outliner-aaaaaa -->",
		"- c <!-- mirror:outliner-cccccc -->",
		"  - n <!-- mirror:outliner-bbbbbb -->",
		"- d",
	}

	tests := []struct {
		name     string
		line     int
		id       string
		children []string
		want     bool
	}{
		{name: "below its original", line: 2, id: "outliner-aaaaaa", want: true},
		{name: "top level", line: 3, id: "outliner-cccccc", want: false},
		{name: "children refer to enclosing mirror", line: 4, id: "outliner-bbbbbb", children: []string{"  - <!-- mirror:outliner-cccccc -->"}, want: true},
		{name: "children refer to itself", line: 5, id: "outliner-dddddd", children: []string{"  - d <!-- mirror:outliner-dddddd -->"}, want: true},
		{name: "unrelated children", line: 4, id: "outliner-bbbbbb", children: []string{"  - plain"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsItself(lines, tt.line, tt.id, tt.children); got != tt.want {
				t.Errorf("containsItself() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_SyncRepairsBlockIDs(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task^outliner-aaaaaa\n- other^outliner-bbbbbb",
	})
	e := tv.engine(testOptions())

	if err := e.Sync(context.Background(), "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	want := "- task ^outliner-aaaaaa\n- other ^outliner-bbbbbb"
	if got := tv.get("a.md"); got != want {
		t.Errorf("a.md = %q, want %q", got, want)
	}
}

func TestEngine_SyncRefreshesMirrorsInChangedFile(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa\n  - sub",
		"b.md": "- task <!-- mirror:outliner-aaaaaa -->\n  - sub",
	})
	e := tv.engine(testOptions())

	// the mirror side was edited; the original wins
	tv.put("b.md", "- edited in mirror <!-- mirror:outliner-aaaaaa -->\n  - sub\n  - added\n- after")
	if err := e.Sync(context.Background(), "b.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	want := "- task <!-- mirror:outliner-aaaaaa -->\n  - sub\n- after"
	if got := tv.get("b.md"); got != want {
		t.Errorf("b.md = %q, want %q", got, want)
	}
	if got := tv.get("a.md"); got != "- task ^outliner-aaaaaa\n  - sub" {
		t.Errorf("original changed: %q", got)
	}
}

func TestEngine_SyncGuard(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa",
		"b.md": "- old <!-- mirror:outliner-aaaaaa -->",
	})
	e := tv.engine(testOptions())
	ctx := context.Background()

	e.syncing.Store(true)
	if err := e.Sync(ctx, "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if writes := tv.files.Writes(); len(writes) != 0 {
		t.Errorf("overlapping Sync() wrote %v, want request dropped", writes)
	}
	e.syncing.Store(false)

	if err := e.Sync(ctx, "missing.md"); err == nil {
		t.Error("Sync() of missing note expected error")
	}
	if e.syncing.Load() {
		t.Fatal("syncing guard still held after failed pass")
	}

	if err := e.Sync(ctx, "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got := tv.get("b.md"); got != "- task <!-- mirror:outliner-aaaaaa -->" {
		t.Errorf("b.md = %q, want synced mirror", got)
	}
}

func TestEngine_Disabled(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa",
		"b.md": "- old <!-- mirror:outliner-aaaaaa -->",
	})
	opts := testOptions()
	opts.Enabled = false
	e := tv.engine(opts)

	e.OnModified("a.md")
	if err := e.Sync(context.Background(), "a.md"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if err := e.OnDeleted(context.Background(), "x.md"); err != nil {
		t.Fatalf("OnDeleted() error = %v", err)
	}
	if writes := tv.files.Writes(); len(writes) != 0 {
		t.Errorf("disabled engine wrote %v", writes)
	}
}

func TestEngine_OnModifiedDebounces(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa",
		"b.md": "- old <!-- mirror:outliner-aaaaaa -->",
	})
	opts := testOptions()
	opts.Debounce = 100 * time.Millisecond
	e := tv.engine(opts)

	for i := 0; i < 5; i++ {
		tv.put("a.md", fmt.Sprintf("- task %d ^outliner-aaaaaa", i))
		e.OnModified("a.md")
	}

	want := "- task 4 <!-- mirror:outliner-aaaaaa -->"
	waitFor(t, func() bool { return tv.get("b.md") == want })

	// one sync pass for the burst
	time.Sleep(150 * time.Millisecond)
	if writes := tv.files.Writes(); len(writes) != 1 {
		t.Errorf("writes = %v, want a single write to b.md", writes)
	}
}

func TestEngine_CloseStopsPendingSync(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa",
		"b.md": "- old <!-- mirror:outliner-aaaaaa -->",
	})
	opts := testOptions()
	opts.Debounce = 50 * time.Millisecond
	e := tv.engine(opts)

	e.OnModified("a.md")
	e.Close()
	e.OnModified("a.md")

	time.Sleep(150 * time.Millisecond)
	if writes := tv.files.Writes(); len(writes) != 0 {
		t.Errorf("closed engine wrote %v", writes)
	}
}

func TestEngine_OnDeletedCascades(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- keep\n- task ^outliner-aaaaaa\n  - sub",
		"b.md": "- intro\n- task <!-- mirror:outliner-aaaaaa -->\n  - sub\n\n  - sub2\n- after\n  - deep <!-- mirror:outliner-aaaaaa -->\n    - deeper\n  - stays",
		"c.md": "- other <!-- mirror:outliner-zzzzzz -->",
		"d.md": "- z ^outliner-zzzzzz",
	})
	e := tv.engine(testOptions())
	ctx := context.Background()

	tv.remove("a.md")
	if err := e.OnDeleted(ctx, "a.md"); err != nil {
		t.Fatalf("OnDeleted() error = %v", err)
	}

	if got, want := tv.get("b.md"), "- intro\n- after\n  - stays"; got != want {
		t.Errorf("b.md = %q, want %q", got, want)
	}
	if got, want := tv.get("c.md"), "- other <!-- mirror:outliner-zzzzzz -->"; got != want {
		t.Errorf("c.md = %q, want %q", got, want)
	}
	if got, want := tv.get("d.md"), "- z ^outliner-zzzzzz"; got != want {
		t.Errorf("d.md = %q, want %q", got, want)
	}

	dangling, err := e.Store().FindDanglingMirrors(ctx)
	if err != nil {
		t.Fatalf("FindDanglingMirrors() error = %v", err)
	}
	if len(dangling) != 0 {
		t.Errorf("dangling mirrors remain: %+v", dangling)
	}
}

func TestEngine_CleanupOrphanedBlockID(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa\n- solo ^outliner-bbbbbb",
		"b.md": "- task <!-- mirror:outliner-aaaaaa -->",
	})
	e := tv.engine(testOptions())
	ctx := context.Background()

	if err := e.CleanupOrphanedBlockID(ctx, "outliner-aaaaaa"); err != nil {
		t.Fatalf("CleanupOrphanedBlockID() error = %v", err)
	}
	if err := e.CleanupOrphanedBlockID(ctx, "outliner-bbbbbb"); err != nil {
		t.Fatalf("CleanupOrphanedBlockID() error = %v", err)
	}
	if err := e.CleanupOrphanedBlockID(ctx, "outliner-cccccc"); err != nil {
		t.Fatalf("CleanupOrphanedBlockID() error = %v", err)
	}

	if got, want := tv.get("a.md"), "- task ^outliner-aaaaaa\n- solo"; got != want {
		t.Errorf("a.md = %q, want %q", got, want)
	}
}

func TestEngine_MirrorLocationsCache(t *testing.T) {
	tv := newTestVault(t, map[string]string{
		"a.md": "- task ^outliner-aaaaaa",
		"b.md": "- task <!-- mirror:outliner-aaaaaa -->",
	})
	opts := testOptions()
	opts.Debounce = time.Hour
	e := tv.engine(opts)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	got, err := e.MirrorLocations(ctx, "outliner-aaaaaa")
	if err != nil {
		t.Fatalf("MirrorLocations() error = %v", err)
	}
	if diff := cmp.Diff([]Location{{RelPath: "b.md", Line: 0}}, got); diff != "" {
		t.Errorf("MirrorLocations() mismatch (-want +got):\n%s", diff)
	}

	tv.put("c.md", "- x\n- task <!-- mirror:outliner-aaaaaa -->")

	now = now.Add(time.Second)
	if got, _ := e.MirrorLocations(ctx, "outliner-aaaaaa"); len(got) != 1 {
		t.Errorf("MirrorLocations() within max age = %+v, want cached result", got)
	}

	now = now.Add(5 * time.Second)
	if got, _ := e.MirrorLocations(ctx, "outliner-aaaaaa"); len(got) != 2 {
		t.Errorf("MirrorLocations() after max age = %+v, want fresh result", got)
	}

	tv.put("d.md", "- task <!-- mirror:outliner-aaaaaa -->")
	e.OnModified("d.md")
	if got, _ := e.MirrorLocations(ctx, "outliner-aaaaaa"); len(got) != 3 {
		t.Errorf("MirrorLocations() after modification = %+v, want fresh result", got)
	}
}

func TestRenderMirror(t *testing.T) {
	original := &Block{
		ID:       "outliner-aaaaaa",
		Content:  "  - [ ] task ^outliner-aaaaaa",
		Children: []string{"    - one", "", "      - two"},
	}

	tests := []struct {
		name        string
		lines       []string
		line        int
		want        []string
		wantChanged bool
	}{
		{
			name:        "deeper mirror",
			lines:       []string{"- p", "\t- old <!-- mirror:outliner-aaaaaa -->", "\t\t- gone", "- q"},
			line:        1,
			want:        []string{"- p", "\t- task <!-- mirror:outliner-aaaaaa -->", "\t  - one", "", "\t    - two", "- q"},
			wantChanged: true,
		},
		{
			name:        "already current",
			lines:       []string{"- task <!-- mirror:outliner-aaaaaa -->", "  - one", "", "    - two"},
			want:        []string{"- task <!-- mirror:outliner-aaaaaa -->", "  - one", "", "    - two"},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := renderMirror(tt.lines, tt.line, original)
			if changed != tt.wantChanged {
				t.Errorf("renderMirror() changed = %v, want %v", changed, tt.wantChanged)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("renderMirror() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
