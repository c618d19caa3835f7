package zoom

import (
	"log/slog"
	"slices"
	"strings"

	"outliner/internal/editor"
	"outliner/internal/outline"
)

// ZoomInEffect is attached to the transaction that enters or moves a zoom.
type ZoomInEffect struct {
	Range Range
}

// ZoomOutEffect is attached to the transaction that leaves a zoom.
type ZoomOutEffect struct{}

// ZoomInFunc is called after the view zoomed into the item at pos.
type ZoomInFunc func(v *editor.View, pos int)

// ZoomOutFunc is called after the view zoomed out.
type ZoomOutFunc func(v *editor.View)

// Position is a line/column pair.
type Position struct {
	Line int `json:"line"`
	Ch   int `json:"ch"`
}

// LineRange is a zoom range in line/column coordinates.
type LineRange struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Controller owns the zoom state of one view. It clamps selections to the
// visible range and zooms out when an edit breaks the zoomed subtree.
type Controller struct {
	view   *editor.View
	logger *slog.Logger

	zoomed *Range

	afterZoomIn   []ZoomInFunc
	afterZoomOut  []ZoomOutFunc
	beforeChanged []ZoomOutFunc
}

// NewController attaches a controller to view.
func NewController(view *editor.View) *Controller {
	c := &Controller{
		view:   view,
		logger: slog.Default().With("component", "zoom", "path", view.Path()),
	}
	view.AddFilter(c.limitSelection)
	view.AddListener(c.detectBoundaryViolation)
	return c
}

// View returns the controlled view.
func (c *Controller) View() *editor.View { return c.view }

// Title returns the document title used for the root breadcrumb.
func (c *Controller) Title() string { return DocumentTitle(c.view.Path()) }

// IsZoomed reports whether a zoom is active.
func (c *Controller) IsZoomed() bool { return c.zoomed != nil }

// NotifyAfterZoomIn subscribes fn to zoom-in events. Subscribers run in
// subscription order.
func (c *Controller) NotifyAfterZoomIn(fn ZoomInFunc) {
	c.afterZoomIn = append(c.afterZoomIn, fn)
}

// NotifyAfterZoomOut subscribes fn to zoom-out events.
func (c *Controller) NotifyAfterZoomOut(fn ZoomOutFunc) {
	c.afterZoomOut = append(c.afterZoomOut, fn)
}

// NotifyRangeBeforeVisibleRangeChanged subscribes fn to edits made above the
// visible range while zoomed.
func (c *Controller) NotifyRangeBeforeVisibleRangeChanged(fn ZoomOutFunc) {
	c.beforeChanged = append(c.beforeChanged, fn)
}

// VisibleRange returns the visible range, or nil when not zoomed.
func (c *Controller) VisibleRange() *Range {
	return VisibleContentRange(c.view.Doc(), c.zoomed)
}

// HiddenRanges returns the hidden ranges, or nil when not zoomed.
func (c *Controller) HiddenRanges() []Range {
	return HiddenContentRanges(c.view.Doc(), c.zoomed)
}

// Breadcrumbs returns the trail for the visible range, or nil when not
// zoomed.
func (c *Controller) Breadcrumbs() []Breadcrumb {
	r := c.VisibleRange()
	if r == nil {
		return nil
	}
	return CollectBreadcrumbs(c.view.Doc(), r.From, c.Title())
}

// GetZoomRange returns the visible range in line/column coordinates, or nil
// when not zoomed.
func (c *Controller) GetZoomRange() *LineRange {
	r := c.VisibleRange()
	if r == nil {
		return nil
	}
	doc := c.view.Doc()
	fromLine, fromCh := doc.Position(r.From)
	toLine, toCh := doc.Position(r.To)
	return &LineRange{
		From: Position{Line: fromLine, Ch: fromCh},
		To:   Position{Line: toLine, Ch: toCh},
	}
}

// ZoomIn zooms to the list item at pos. It reports false and leaves the view
// untouched when pos is not inside a list item.
func (c *Controller) ZoomIn(pos int) bool {
	r := RangeForZooming(c.view.Doc(), pos)
	if r == nil {
		c.logger.Debug("unable to calculate range for zooming", "pos", pos)
		return false
	}

	c.logger.Debug("zooming in", "pos", pos, "from", r.From, "to", r.To)
	c.apply(*r)
	c.view.SetScrollTop(c.view.Doc().LineAt(r.From))

	for _, fn := range c.afterZoomIn {
		fn(c.view, pos)
	}
	return true
}

// ZoomOut shows the whole document again.
func (c *Controller) ZoomOut() {
	c.logger.Debug("zooming out")
	c.zoomed = nil
	if err := c.view.Dispatch(editor.Transaction{Effects: []any{ZoomOutEffect{}}}); err != nil {
		c.logger.Error("failed to dispatch zoom out", "error", err)
	}
	for _, fn := range c.afterZoomOut {
		fn(c.view)
	}
}

// ZoomOutOneLevel zooms to the parent of the zoomed item, or out entirely
// when the item has no list parent.
func (c *Controller) ZoomOutOneLevel() {
	r := c.VisibleRange()
	if r == nil {
		c.ZoomOut()
		return
	}

	crumbs := CollectBreadcrumbs(c.view.Doc(), r.From, c.Title())
	if len(crumbs) <= 2 {
		c.logger.Debug("at top level, zooming out completely")
		c.ZoomOut()
		return
	}
	parent := crumbs[len(crumbs)-2]
	if parent.Pos == nil {
		c.ZoomOut()
		return
	}
	c.ZoomIn(*parent.Pos)
}

// RefreshZoom recomputes the zoomed range from its current start and applies
// it without moving the viewport.
func (c *Controller) RefreshZoom() {
	prev := c.VisibleRange()
	if prev == nil {
		return
	}
	r := RangeForZooming(c.view.Doc(), prev.From)
	if r == nil {
		return
	}
	top := c.view.ScrollTop()
	c.apply(*r)
	c.view.SetScrollTop(top)
}

func (c *Controller) apply(r Range) {
	c.zoomed = &r
	if err := c.view.Dispatch(editor.Transaction{Effects: []any{ZoomInEffect{Range: r}}}); err != nil {
		c.logger.Error("failed to dispatch zoom", "error", err)
	}
}

// limitSelection keeps both selection endpoints inside the visible range on
// zoom entry and on every transaction that sets a selection while zoomed.
func (c *Controller) limitSelection(v *editor.View, tr editor.Transaction) editor.Transaction {
	var bounds *Range
	for _, e := range tr.Effects {
		if ze, ok := e.(ZoomInEffect); ok {
			r := ze.Range
			bounds = &r
		}
	}

	sel := v.Selection()
	switch {
	case bounds != nil:
		if tr.Selection != nil {
			sel = *tr.Selection
		}
	case c.zoomed != nil && tr.Selection != nil:
		r := mapRange(*c.zoomed, tr.Changes)
		bounds = &r
		sel = *tr.Selection
	default:
		return tr
	}

	limited := editor.Selection{
		Anchor: max(bounds.From, min(sel.Anchor, bounds.To)),
		Head:   max(bounds.From, min(sel.Head, bounds.To)),
	}
	if limited == sel && tr.Selection != nil {
		return tr
	}
	if limited != sel {
		c.logger.Debug("limiting selection", "anchor", limited.Anchor, "head", limited.Head)
	}
	tr.Selection = &limited
	return tr
}

// detectBoundaryViolation keeps the zoomed range in step with edits. Edits
// that cross the range boundary, or touch hidden and visible content at
// once, or leave the range start outside a list item, zoom out once the
// current dispatch completes.
func (c *Controller) detectBoundaryViolation(v *editor.View, u editor.Update) {
	if c.zoomed == nil || !u.DocChanged() {
		return
	}

	prev := *c.zoomed
	var inside, outside, before, crossed bool
	for _, ch := range u.Transaction.Changes {
		switch {
		case ch.From >= prev.From && ch.To <= prev.To:
			inside = true
		case ch.To < prev.From:
			outside, before = true, true
		case ch.From > prev.To:
			outside = true
		default:
			crossed = true
		}
	}

	next := mapRange(prev, u.Transaction.Changes)
	c.zoomed = &next

	violated := crossed || (inside && outside) || !matchesItem(u.Doc, next)

	if violated {
		c.logger.Debug("visible content boundaries violated, zooming out")
		v.Defer(func() {
			if c.zoomed != nil {
				c.ZoomOut()
			}
		})
		return
	}

	if before {
		v.Defer(func() {
			if c.zoomed == nil {
				return
			}
			for _, fn := range c.beforeChanged {
				fn(v)
			}
		})
	}
}

// matchesItem reports whether r still starts at a list item's content and
// holds nothing beyond that item's subtree but whitespace.
func matchesItem(doc *outline.Doc, r Range) bool {
	item := RangeForZooming(doc, r.From)
	if item == nil || item.From != r.From {
		return false
	}
	if item.To >= r.To {
		return true
	}
	return strings.TrimSpace(doc.Text()[item.To:r.To]) == ""
}

func mapRange(r Range, changes []editor.Change) Range {
	if len(changes) == 0 {
		return r
	}
	sorted := slices.Clone(changes)
	slices.SortFunc(sorted, func(a, b editor.Change) int { return a.From - b.From })
	from := editor.MapPos(sorted, r.From, -1)
	to := editor.MapPos(sorted, r.To, 1)
	return Range{From: from, To: max(from, to)}
}
