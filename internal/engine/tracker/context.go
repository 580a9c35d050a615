package tracker

import (
	"unicode"

	"github.com/nholm/leaper/internal/engine/document"
)

// contextValue is a lazily recomputed boolean. Structural mutations mark it
// stale; get recomputes only when stale, so repeated reads between
// mutations cost nothing.
type contextValue struct {
	value   bool
	stale   bool
	compute func() bool
}

func (c *contextValue) get() bool {
	if c.stale {
		c.value = c.compute()
		c.stale = false
	}
	return c.value
}

func (c *contextValue) invalidate() {
	c.stale = true
}

// invalidateContext marks both derived booleans stale.
func (t *Tracker) invalidateContext() {
	t.mode.invalidate()
	t.sight.invalidate()
}

// InLeaperMode reports whether the primary cursor has at least one tracked
// pair.
func (t *Tracker) InLeaperMode() bool {
	return t.mode.get()
}

// HasLineOfSight reports whether only whitespace separates the primary
// cursor from its nearest pair's closing character.
func (t *Tracker) HasLineOfSight() bool {
	return t.sight.get()
}

func (t *Tracker) computeInLeaperMode() bool {
	return len(t.clusters) > 0 && !t.clusters[0].IsEmpty()
}

func (t *Tracker) computeHasLineOfSight() bool {
	return t.cursorHasLineOfSight(0)
}

// cursorHasLineOfSight evaluates line of sight for the cursor at index i.
func (t *Tracker) cursorHasLineOfSight(i int) bool {
	if i >= len(t.clusters) || i >= len(t.cursors) {
		return false
	}
	nearest, ok := t.clusters[i].Nearest()
	if !ok {
		return false
	}
	cursor := t.cursors[i].Head
	if cursor.Line != nearest.Close.Line || cursor.Col > nearest.Close.Col {
		return false
	}

	line, ok := t.doc.Line(nearest.Close.Line)
	if !ok {
		return false
	}
	from := document.ColToByteOffset(line, cursor.Col)
	to := document.ColToByteOffset(line, nearest.Close.Col)
	for _, r := range line[from:to] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
