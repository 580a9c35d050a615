package tracker

import (
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
	"github.com/nholm/leaper/internal/engine/pair"
)

// LineSource provides read access to the host document's current text.
// Implementations must reflect the post-edit state by the time a
// document-change event is delivered.
type LineSource interface {
	// Line returns the text of line n without its trailing line break.
	Line(n uint32) (string, bool)
}

// VisibilityPolicy selects which tracked pairs are decorated.
type VisibilityPolicy int

const (
	// DecorateNearest decorates only each cluster's innermost pair.
	DecorateNearest VisibilityPolicy = iota
	// DecorateAll decorates every tracked pair.
	DecorateAll
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithRenderer sets the decoration renderer. Defaults to a no-op renderer.
func WithRenderer(r decoration.Renderer) Option {
	return func(t *Tracker) { t.renderer = r }
}

// WithLogger sets the tracker's logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// WithPairSet sets the recognized pair set. Defaults to pair.DefaultSet.
func WithPairSet(set pair.Set) Option {
	return func(t *Tracker) { t.set = set }
}

// WithVisibilityPolicy sets the decoration visibility policy.
func WithVisibilityPolicy(p VisibilityPolicy) Option {
	return func(t *Tracker) { t.policy = p }
}

// WithDecorationOptions sets the style used for decoration requests.
func WithDecorationOptions(opts decoration.Options) Option {
	return func(t *Tracker) { t.decOpts = opts }
}

// Tracker owns all pair clusters for one editor.
type Tracker struct {
	doc      LineSource
	renderer decoration.Renderer
	log      *zap.Logger
	set      pair.Set
	policy   VisibilityPolicy
	decOpts  decoration.Options

	// cursors mirrors the host's cursor list; clusters is index-aligned
	// with it.
	cursors  []document.Selection
	clusters []pair.Cluster

	// decorated maps handles to the position last applied; decoFailed
	// remembers handles the renderer rejected so they are not retried.
	decorated  map[decoration.Handle]document.Position
	decoFailed map[decoration.Handle]struct{}

	mode  contextValue
	sight contextValue

	closed bool
}

// New creates a tracker over the given document.
func New(doc LineSource, opts ...Option) *Tracker {
	t := &Tracker{
		doc:        doc,
		renderer:   decoration.Nop(),
		log:        zap.NewNop(),
		set:        pair.DefaultSet(),
		cursors:    []document.Selection{document.Caret(document.Position{})},
		clusters:   make([]pair.Cluster, 1),
		decorated:  make(map[decoration.Handle]document.Position),
		decoFailed: make(map[decoration.Handle]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.mode.compute = t.computeInLeaperMode
	t.sight.compute = t.computeHasLineOfSight
	t.mode.invalidate()
	t.sight.invalidate()
	return t
}

// CursorCount returns the number of tracked cursors.
func (t *Tracker) CursorCount() int {
	return len(t.cursors)
}

// Cursors returns a copy of the tracked cursor list.
func (t *Tracker) Cursors() []document.Selection {
	out := make([]document.Selection, len(t.cursors))
	copy(out, t.cursors)
	return out
}

// ClusterPairs returns the pairs tracked for the cursor at index i,
// outermost first.
func (t *Tracker) ClusterPairs(i int) []pair.Pair {
	if i < 0 || i >= len(t.clusters) {
		return nil
	}
	return t.clusters[i].Pairs()
}

// ApplySelections replaces the tracked cursor list and runs move-out
// invalidation against every cluster. Clusters for removed cursors are
// cleared; added cursors start with empty clusters.
func (t *Tracker) ApplySelections(sels []document.Selection) {
	if t.closed {
		return
	}
	if len(sels) == 0 {
		sels = []document.Selection{document.Caret(document.Position{})}
	}

	// Drop clusters belonging to cursors that no longer exist.
	for i := len(sels); i < len(t.clusters); i++ {
		t.releasePairs(t.clusters[i].Clear())
	}
	if len(t.clusters) > len(sels) {
		t.clusters = t.clusters[:len(sels)]
	}
	for len(t.clusters) < len(sels) {
		t.clusters = append(t.clusters, pair.Cluster{})
	}

	t.cursors = make([]document.Selection, len(sels))
	copy(t.cursors, sels)

	for i := range t.clusters {
		t.releasePairs(t.clusters[i].RetainContaining(t.cursors[i].Head))
	}

	t.refreshDecorations()
	t.invalidateContext()
}

// ApplyContentChanges applies one document-change batch: position
// translation, same-line and containment re-checks, and autoclose detection.
func (t *Tracker) ApplyContentChanges(changes []document.ContentChange) {
	if t.closed || len(changes) == 0 {
		return
	}

	sorted := document.SortChangesDescending(changes)

	// Cursor positions before translation anchor autoclose detection.
	preCursors := make([]document.Selection, len(t.cursors))
	copy(preCursors, t.cursors)

	for i := range t.cursors {
		t.cursors[i] = document.Selection{
			Anchor: document.TranslateCaretThrough(t.cursors[i].Anchor, sorted),
			Head:   document.TranslateCaretThrough(t.cursors[i].Head, sorted),
		}
	}

	for i := range t.clusters {
		t.translateCluster(&t.clusters[i], sorted)
	}

	t.detectAutoclose(preCursors, sorted)

	for i := range t.clusters {
		t.releasePairs(t.clusters[i].RetainContaining(t.cursors[i].Head))
	}

	t.refreshDecorations()
	t.invalidateContext()
}

// translateCluster maps every pair in a cluster through the sorted batch.
// Pairs losing a side or their single-line shape are dropped individually; a
// translation yielding a malformed pair resets the whole cluster.
func (t *Tracker) translateCluster(c *pair.Cluster, sorted []document.ContentChange) {
	old := c.Pairs()
	c.Clear()

	for _, p := range old {
		open, okOpen := document.TranslateThrough(p.Open, sorted, document.SideOpen)
		if !okOpen {
			t.releasePair(p)
			continue
		}
		close, okClose := document.TranslateThrough(p.Close, sorted, document.SideClose)
		if !okClose {
			t.releasePair(p)
			continue
		}

		moved := pair.Pair{Open: open, Close: close, Decoration: p.Decoration}
		if !moved.SameLine() {
			t.releasePair(moved)
			continue
		}
		if !moved.Valid() {
			// Translation inverted the pair: the cluster can no longer
			// be trusted. Reset it and keep going with a clean state.
			t.log.Warn("translation produced malformed pair, dropping cluster",
				zap.Stringer("open", open), zap.Stringer("close", close))
			t.releasePairs(old)
			c.Clear()
			return
		}
		if err := c.Push(moved); err != nil {
			t.log.Warn("translated pairs no longer nest, dropping cluster", zap.Error(err))
			t.releasePairs(old)
			c.Clear()
			return
		}
	}
}

// ApplyConfig updates the recognized pair set, visibility policy, and
// decoration style. Already-tracked pairs are kept; the new set applies to
// subsequent detections only.
func (t *Tracker) ApplyConfig(set pair.Set, policy VisibilityPolicy, decOpts decoration.Options) {
	if t.closed {
		return
	}
	t.set = set
	t.policy = policy
	t.decOpts = decOpts
	t.refreshDecorations()
}

// Escape clears every cluster and releases all decorations. Calling it on an
// already-empty tracker is a no-op; repeated calls are safe.
func (t *Tracker) Escape() {
	if t.closed {
		return
	}
	for i := range t.clusters {
		t.releasePairs(t.clusters[i].Clear())
	}
	t.refreshDecorations()
	t.invalidateContext()
}

// Close tears the tracker down, releasing every decoration. The tracker
// must not be used afterwards.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.Escape()
	t.closed = true
}

// releasePairs releases the decorations of dropped pairs.
func (t *Tracker) releasePairs(dropped []pair.Pair) {
	for _, p := range dropped {
		t.releasePair(p)
	}
}

func (t *Tracker) releasePair(p pair.Pair) {
	if p.Decoration.IsZero() {
		return
	}
	delete(t.decoFailed, p.Decoration)
	if _, ok := t.decorated[p.Decoration]; !ok {
		return
	}
	delete(t.decorated, p.Decoration)
	if err := t.renderer.Clear(p.Decoration); err != nil {
		t.log.Warn("decoration clear rejected", zap.Error(err))
	}
}
