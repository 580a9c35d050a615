package document

// Side identifies which side of a tracked pair a position belongs to.
// The side determines the boundary rule applied when an edit starts exactly
// at the position: a closing side survives an insertion at its own position
// (the inserted text lands inside the pair and the closer shifts right),
// while an opening side does not (the opener character itself has been pushed
// away from the recorded position, so the pair is no longer trustworthy).
type Side int

const (
	// SideOpen is the opening side of a pair.
	SideOpen Side = iota
	// SideClose is the closing side of a pair.
	SideClose
)

// Translate maps a pair-side position through a single content change.
// It returns the translated position and true, or a zero position and false
// when the side has been destroyed by the change (the character it addressed
// was replaced, or the boundary rule for the side invalidates it).
func Translate(pos Position, change ContentChange, side Side) (Position, bool) {
	start := change.Range.Start
	end := change.Range.End

	// Entirely before the edit: untouched.
	if pos.Before(start) {
		return pos, true
	}

	if pos == start {
		if change.Range.IsEmpty() {
			// Insertion exactly at the side's own position.
			if side == SideClose {
				return change.NewEnd(), true
			}
			return Position{}, false
		}
		// Replacement starting here consumes the side's character.
		return Position{}, false
	}

	// Strictly inside the replaced range: the character is gone.
	if pos.Before(end) {
		return Position{}, false
	}

	return shiftPast(pos, change), true
}

// TranslateCaret maps a cursor position through a single content change.
// Carets are never invalidated: an insertion at the caret advances it past
// the inserted text (typing moves the cursor forward), and a caret inside a
// replaced range snaps to the end of the new text.
func TranslateCaret(pos Position, change ContentChange) Position {
	start := change.Range.Start
	end := change.Range.End

	if pos.Before(start) {
		return pos
	}

	if pos == start {
		if change.Range.IsEmpty() {
			return change.NewEnd()
		}
		return pos
	}

	if pos.Before(end) {
		return change.NewEnd()
	}

	return shiftPast(pos, change)
}

// shiftPast relocates a position at or beyond the replaced range's end by the
// change's net effect. Positions on lines below the range keep their column;
// positions on the range's end line are re-based onto the end of the new
// text.
func shiftPast(pos Position, change ContentChange) Position {
	end := change.Range.End
	newEnd := change.NewEnd()

	if pos.Line > end.Line {
		return Position{
			Line: pos.Line + newEnd.Line - end.Line,
			Col:  pos.Col,
		}
	}
	return Position{
		Line: newEnd.Line,
		Col:  newEnd.Col + (pos.Col - end.Col),
	}
}

// TranslateThrough maps a pair-side position through an ordered batch of
// changes. The batch must be in descending start order (see
// SortChangesDescending). Returns false as soon as any change destroys the
// side.
func TranslateThrough(pos Position, changes []ContentChange, side Side) (Position, bool) {
	ok := true
	for _, change := range changes {
		pos, ok = Translate(pos, change, side)
		if !ok {
			return Position{}, false
		}
	}
	return pos, true
}

// TranslateCaretThrough maps a cursor position through an ordered batch of
// changes in descending start order.
func TranslateCaretThrough(pos Position, changes []ContentChange) Position {
	for _, change := range changes {
		pos = TranslateCaret(pos, change)
	}
	return pos
}
