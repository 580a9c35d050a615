package pair

import (
	"fmt"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
)

// Pair is one tracked autoclosing bracket pair. Open addresses the opening
// character, Close the closing character. Decoration is the handle of the
// visual marker requested for the closing side; zero if none was granted.
type Pair struct {
	Open       document.Position
	Close      document.Position
	Decoration decoration.Handle
}

// String returns a human-readable representation of the pair.
func (p Pair) String() string {
	return fmt.Sprintf("pair{%s %s}", p.Open, p.Close)
}

// SameLine returns true if both sides are on one line.
func (p Pair) SameLine() bool {
	return p.Open.Line == p.Close.Line
}

// Valid returns true if the pair satisfies its structural invariants:
// open strictly precedes close and both share a line.
func (p Pair) Valid() bool {
	return p.Open.Before(p.Close) && p.SameLine()
}

// Contains reports whether pos lies inside the pair using the half-open
// containment test open < pos <= close. A cursor sitting immediately after
// the opening character is inside; a cursor at the closing character is
// still inside (it has not moved past the closer yet).
func (p Pair) Contains(pos document.Position) bool {
	return p.Open.Before(pos) && !p.Close.Before(pos)
}

// Encloses reports whether inner nests strictly inside p:
// p.Open < inner.Open <= inner.Close < p.Close.
func (p Pair) Encloses(inner Pair) bool {
	return p.Open.Before(inner.Open) &&
		!inner.Close.Before(inner.Open) &&
		inner.Close.Before(p.Close)
}
