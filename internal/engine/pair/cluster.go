package pair

import (
	"errors"
	"fmt"

	"github.com/nholm/leaper/internal/engine/document"
)

// ErrMalformedPair is returned when a pair violates its own invariants.
var ErrMalformedPair = errors.New("pair: open must strictly precede close on the same line")

// ErrNotNested is returned when a pushed pair does not nest inside the
// cluster's current innermost pair.
var ErrNotNested = errors.New("pair: new pair does not nest inside the innermost pair")

// Cluster is the ordered set of pairs enclosing one cursor, outermost first.
// The zero value is an empty cluster ready for use.
type Cluster struct {
	pairs []Pair
}

// Len returns the number of tracked pairs.
func (c *Cluster) Len() int {
	return len(c.pairs)
}

// IsEmpty returns true if no pairs are tracked.
func (c *Cluster) IsEmpty() bool {
	return len(c.pairs) == 0
}

// Nearest returns the innermost pair.
func (c *Cluster) Nearest() (Pair, bool) {
	if len(c.pairs) == 0 {
		return Pair{}, false
	}
	return c.pairs[len(c.pairs)-1], true
}

// Pairs returns a copy of the tracked pairs, outermost first.
func (c *Cluster) Pairs() []Pair {
	out := make([]Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// Push appends a new innermost pair. It fails if the pair is malformed or
// does not nest strictly inside the current innermost pair; a push failure
// is a logic error on the caller's side and is never silently ignored.
func (c *Cluster) Push(p Pair) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %s", ErrMalformedPair, p)
	}
	if inner, ok := c.Nearest(); ok && !inner.Encloses(p) {
		return fmt.Errorf("%w: %s inside %s", ErrNotNested, p, inner)
	}
	c.pairs = append(c.pairs, p)
	return nil
}

// PopNearest removes and returns the innermost pair.
func (c *Cluster) PopNearest() (Pair, bool) {
	if len(c.pairs) == 0 {
		return Pair{}, false
	}
	p := c.pairs[len(c.pairs)-1]
	c.pairs = c.pairs[:len(c.pairs)-1]
	return p, true
}

// Retain removes every pair failing keep, preserving the order of survivors,
// and returns the dropped pairs so their decorations can be released.
func (c *Cluster) Retain(keep func(Pair) bool) []Pair {
	var dropped []Pair
	kept := c.pairs[:0]
	for _, p := range c.pairs {
		if keep(p) {
			kept = append(kept, p)
		} else {
			dropped = append(dropped, p)
		}
	}
	c.pairs = kept
	return dropped
}

// RetainContaining drops every pair that no longer contains pos, the
// move-out invalidation test. Containment is monotone over the nesting
// order, so survivors are always an outermost prefix.
func (c *Cluster) RetainContaining(pos document.Position) []Pair {
	return c.Retain(func(p Pair) bool { return p.Contains(pos) })
}

// Clear removes all pairs and returns them.
func (c *Cluster) Clear() []Pair {
	dropped := c.pairs
	c.pairs = nil
	return dropped
}

// Nested verifies the cluster's structural invariant: every adjacent
// (outer, inner) pair satisfies outer.Open < inner.Open <= inner.Close <
// outer.Close, and every pair is valid on its own.
func (c *Cluster) Nested() bool {
	for i, p := range c.pairs {
		if !p.Valid() {
			return false
		}
		if i > 0 && !c.pairs[i-1].Encloses(p) {
			return false
		}
	}
	return true
}
