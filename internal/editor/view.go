// Package editor hosts a live text buffer per open note. Edits go through
// transactions: filters may rewrite a transaction before it is applied and
// listeners observe the result. Everything runs on the caller's goroutine;
// the owner of a View serializes access to it.
package editor

import (
	"fmt"

	"outliner/internal/outline"
)

// User event names carried by transactions.
const (
	EventSelect = "select"
	EventInput  = "input"
	EventDelete = "delete"
	EventSync   = "sync"
)

// Selection is the main cursor. Anchor and Head are equal for a caret.
type Selection struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

// Caret returns a collapsed selection at pos.
func Caret(pos int) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// From returns the smaller selection endpoint.
func (s Selection) From() int { return min(s.Anchor, s.Head) }

// To returns the larger selection endpoint.
func (s Selection) To() int { return max(s.Anchor, s.Head) }

// Transaction describes one atomic update of a View.
type Transaction struct {
	Changes        []Change
	Selection      *Selection
	Effects        []any
	UserEvent      string
	ScrollIntoView bool
}

// IsUserEvent reports whether the transaction was tagged with event.
func (tr Transaction) IsUserEvent(event string) bool {
	return tr.UserEvent == event
}

// DocChanged reports whether the transaction modifies the text.
func (tr Transaction) DocChanged() bool {
	for _, c := range tr.Changes {
		if !c.Empty() {
			return true
		}
	}
	return false
}

// Update is delivered to listeners after a transaction was applied.
type Update struct {
	StartDoc       *outline.Doc
	Doc            *outline.Doc
	StartSelection Selection
	Transaction    Transaction
}

// DocChanged reports whether the update modified the text.
func (u Update) DocChanged() bool {
	return u.Transaction.DocChanged()
}

// Filter inspects a transaction before it is applied and returns the
// transaction to apply in its place.
type Filter func(v *View, tr Transaction) Transaction

// Listener observes applied transactions.
type Listener func(v *View, u Update)

// View is one open document.
type View struct {
	path      string
	doc       *outline.Doc
	sel       Selection
	scrollTop int

	filters   []Filter
	listeners []Listener

	depth    int
	deferred []func()
}

// NewView creates a view over text with the caret at the start.
func NewView(path, text string) *View {
	return &View{path: path, doc: outline.NewDoc(text)}
}

// Path returns the vault-relative path of the document.
func (v *View) Path() string { return v.path }

// Doc returns the current document snapshot.
func (v *View) Doc() *outline.Doc { return v.doc }

// Text returns the current document text.
func (v *View) Text() string { return v.doc.Text() }

// Selection returns the current selection.
func (v *View) Selection() Selection { return v.sel }

// ScrollTop returns the first visible line.
func (v *View) ScrollTop() int { return v.scrollTop }

// SetScrollTop moves the viewport without touching the document.
func (v *View) SetScrollTop(line int) {
	v.scrollTop = max(0, min(line, v.doc.LineCount()-1))
}

// Line returns the text of line n.
func (v *View) Line(n int) string { return v.doc.Line(n) }

// LineCount returns the number of lines.
func (v *View) LineCount() int { return v.doc.LineCount() }

// LineStart returns the offset of line n.
func (v *View) LineStart(n int) int { return v.doc.LineStart(n) }

// AddFilter registers a transaction filter. Filters run in registration order.
func (v *View) AddFilter(f Filter) {
	v.filters = append(v.filters, f)
}

// AddListener registers an update listener. Listeners run in registration order.
func (v *View) AddListener(l Listener) {
	v.listeners = append(v.listeners, l)
}

// Defer queues fn to run once the outermost Dispatch returns. Outside a
// dispatch fn runs immediately.
func (v *View) Defer(fn func()) {
	if v.depth == 0 {
		fn()
		return
	}
	v.deferred = append(v.deferred, fn)
}

// Dispatch runs tr through the filters, applies it and notifies listeners.
func (v *View) Dispatch(tr Transaction) error {
	v.depth++
	err := v.dispatch(tr)
	v.depth--
	if v.depth == 0 {
		v.runDeferred()
	}
	return err
}

func (v *View) dispatch(tr Transaction) error {
	for _, f := range v.filters {
		tr = f(v, tr)
	}

	changes, err := normalizeChanges(tr.Changes, v.doc.Len())
	if err != nil {
		return fmt.Errorf("failed to apply transaction: %w", err)
	}
	tr.Changes = changes

	startDoc := v.doc
	startSel := v.sel

	if len(changes) > 0 {
		v.doc = outline.NewDoc(applyChanges(startDoc.Text(), changes))
	}

	if tr.Selection != nil {
		v.sel = clampSelection(*tr.Selection, v.doc.Len())
	} else if len(changes) > 0 {
		v.sel = Selection{
			Anchor: MapPos(changes, startSel.Anchor, 1),
			Head:   MapPos(changes, startSel.Head, 1),
		}
	}

	if tr.ScrollIntoView {
		v.SetScrollTop(v.doc.LineAt(v.sel.Head))
	} else {
		v.SetScrollTop(v.scrollTop)
	}

	u := Update{StartDoc: startDoc, Doc: v.doc, StartSelection: startSel, Transaction: tr}
	for _, l := range v.listeners {
		l(v, u)
	}
	return nil
}

func (v *View) runDeferred() {
	for len(v.deferred) > 0 {
		fn := v.deferred[0]
		v.deferred = v.deferred[1:]
		fn()
	}
}

// Replace swaps the text between from and to for text.
func (v *View) Replace(from, to int, text, event string) error {
	return v.Dispatch(Transaction{
		Changes:   []Change{{From: from, To: to, Insert: text}},
		UserEvent: event,
	})
}

// SetText replaces the document with text. Only the span that differs is
// sent as a change, so positions outside it survive the update.
func (v *View) SetText(text, event string) error {
	c := diffChange(v.doc.Text(), text)
	if c.Empty() {
		return nil
	}
	return v.Dispatch(Transaction{Changes: []Change{c}, UserEvent: event})
}

// Select moves the selection as a user selection event.
func (v *View) Select(sel Selection, scroll bool) error {
	return v.Dispatch(Transaction{Selection: &sel, UserEvent: EventSelect, ScrollIntoView: scroll})
}

func clampSelection(s Selection, docLen int) Selection {
	return Selection{
		Anchor: max(0, min(s.Anchor, docLen)),
		Head:   max(0, min(s.Head, docLen)),
	}
}
