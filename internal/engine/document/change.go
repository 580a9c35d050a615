package document

import (
	"sort"
	"strings"
	"unicode/utf16"
)

// ContentChange describes one text replacement: the replaced range and the
// text inserted in its place. Coordinates are pre-edit.
type ContentChange struct {
	Range Range
	Text  string
}

// IsInsertion returns true if the change replaces no text.
func (c ContentChange) IsInsertion() bool {
	return c.Range.IsEmpty()
}

// IsDeletion returns true if the change inserts no text.
func (c ContentChange) IsDeletion() bool {
	return c.Text == ""
}

// NewEnd returns the position immediately after the inserted text, i.e.
// where the replaced range's end lands after the change is applied.
func (c ContentChange) NewEnd() Position {
	lines, lastCols := TextMetrics(c.Text)
	if lines == 0 {
		return Position{Line: c.Range.Start.Line, Col: c.Range.Start.Col + lastCols}
	}
	return Position{Line: c.Range.Start.Line + lines, Col: lastCols}
}

// TextMetrics measures text for position arithmetic: the number of line
// breaks it contains and the UTF-16 length of its final line.
func TextMetrics(text string) (lines uint32, lastLineCols uint32) {
	last := text
	for {
		idx := strings.IndexByte(last, '\n')
		if idx < 0 {
			break
		}
		lines++
		last = last[idx+1:]
	}
	return lines, UTF16Len(last)
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		n += uint32(utf16.RuneLen(r))
	}
	return n
}

// SortChangesDescending orders a batch by descending start position, the
// order required for translating positions through the whole batch.
// The input slice is not modified.
func SortChangesDescending(changes []ContentChange) []ContentChange {
	sorted := make([]ContentChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].Range.Start.Before(sorted[i].Range.Start)
	})
	return sorted
}
