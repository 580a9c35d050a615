package document

import "fmt"

// Position represents a location in a document.
// Line is 0-indexed. Col is 0-indexed and measured in UTF-16 code units,
// matching host text-editor addressing.
type Position struct {
	Line uint32
	Col  uint32
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// ShiftCol returns the position moved by delta columns on the same line.
// Negative deltas that would underflow clamp to column 0.
func (p Position) ShiftCol(delta int32) Position {
	col := int64(p.Col) + int64(delta)
	if col < 0 {
		col = 0
	}
	return Position{Line: p.Line, Col: uint32(col)}
}

// Range is a half-open span [Start, End) in a document.
type Range struct {
	Start Position
	End   Position
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if pos lies within [Start, End).
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}

// Selection represents one cursor with an anchor/head model.
// Anchor is where the selection started; Head is where the cursor is.
// When Anchor == Head the selection is just a caret.
type Selection struct {
	Anchor Position
	Head   Position
}

// Caret returns a collapsed selection at pos.
func Caret(pos Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// IsEmpty returns true if the selection has zero extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}
