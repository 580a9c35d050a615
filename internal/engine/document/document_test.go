package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(line, col uint32) Position {
	return Position{Line: line, Col: col}
}

func insertion(at Position, text string) ContentChange {
	return ContentChange{Range: Range{Start: at, End: at}, Text: text}
}

func deletion(start, end Position) ContentChange {
	return ContentChange{Range: Range{Start: start, End: end}}
}

func TestPositionCompare(t *testing.T) {
	assert.Equal(t, -1, pos(0, 5).Compare(pos(0, 6)))
	assert.Equal(t, -1, pos(0, 9).Compare(pos(1, 0)))
	assert.Equal(t, 0, pos(2, 3).Compare(pos(2, 3)))
	assert.Equal(t, 1, pos(2, 3).Compare(pos(2, 2)))
	assert.True(t, pos(1, 0).After(pos(0, 99)))
	assert.True(t, pos(0, 0).Before(pos(0, 1)))
}

func TestTextMetrics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		lines    uint32
		lastCols uint32
	}{
		{"empty", "", 0, 0},
		{"single char", "(", 0, 1},
		{"ascii", "hello", 0, 5},
		{"newline only", "\n", 1, 0},
		{"multi line", "ab\ncd\nef", 2, 2},
		{"astral plane", "\U0001F600", 0, 2}, // surrogate pair counts as two units
		{"mixed", "a\n\U0001F600b", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, lastCols := TextMetrics(tt.text)
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.lastCols, lastCols)
		})
	}
}

func TestColToByteOffset(t *testing.T) {
	line := "a\U0001F600bc"
	assert.Equal(t, 0, ColToByteOffset(line, 0))
	assert.Equal(t, 1, ColToByteOffset(line, 1))
	// Columns 1 and 2 both fall on the surrogate-paired rune.
	assert.Equal(t, 1, ColToByteOffset(line, 2))
	assert.Equal(t, 5, ColToByteOffset(line, 3))
	assert.Equal(t, 6, ColToByteOffset(line, 4))
	assert.Equal(t, 7, ColToByteOffset(line, 99))
}

func TestTranslateBeforeEdit(t *testing.T) {
	change := insertion(pos(0, 10), "xy")
	got, ok := Translate(pos(0, 4), change, SideOpen)
	require.True(t, ok)
	assert.Equal(t, pos(0, 4), got)
}

func TestTranslateAfterInsertionSameLine(t *testing.T) {
	change := insertion(pos(0, 3), "ab")
	got, ok := Translate(pos(0, 10), change, SideClose)
	require.True(t, ok)
	assert.Equal(t, pos(0, 12), got)
}

func TestTranslateAfterDeletion(t *testing.T) {
	change := deletion(pos(0, 3), pos(0, 6))
	got, ok := Translate(pos(0, 10), change, SideOpen)
	require.True(t, ok)
	assert.Equal(t, pos(0, 7), got)
}

func TestTranslateInsideReplacedRangeInvalidates(t *testing.T) {
	change := deletion(pos(0, 5), pos(0, 9))
	for _, side := range []Side{SideOpen, SideClose} {
		_, ok := Translate(pos(0, 7), change, side)
		assert.False(t, ok)
	}
}

func TestTranslateSideAtDeletionStartInvalidates(t *testing.T) {
	// Deleting the character at the side's position destroys the side.
	change := deletion(pos(0, 20), pos(0, 21))
	_, ok := Translate(pos(0, 20), change, SideClose)
	assert.False(t, ok)
}

func TestTranslateBoundaryPolicy(t *testing.T) {
	change := insertion(pos(0, 8), "zz")

	t.Run("closing side survives insertion at its own position", func(t *testing.T) {
		got, ok := Translate(pos(0, 8), change, SideClose)
		require.True(t, ok)
		assert.Equal(t, pos(0, 10), got)
	})

	t.Run("opening side does not", func(t *testing.T) {
		_, ok := Translate(pos(0, 8), change, SideOpen)
		assert.False(t, ok)
	})
}

func TestTranslateAtRangeEndSurvives(t *testing.T) {
	// Deletion ending exactly at the side leaves the side's character alone.
	change := deletion(pos(0, 2), pos(0, 5))
	got, ok := Translate(pos(0, 5), change, SideOpen)
	require.True(t, ok)
	assert.Equal(t, pos(0, 2), got)
}

func TestTranslateMultiLineInsertion(t *testing.T) {
	change := insertion(pos(1, 4), "x\nyz")

	t.Run("position on later line keeps its column", func(t *testing.T) {
		got, ok := Translate(pos(3, 7), change, SideOpen)
		require.True(t, ok)
		assert.Equal(t, pos(4, 7), got)
	})

	t.Run("position on the edited line re-bases", func(t *testing.T) {
		got, ok := Translate(pos(1, 9), change, SideClose)
		require.True(t, ok)
		// Five columns past the insertion point, now five past "yz".
		assert.Equal(t, pos(2, 7), got)
	})
}

func TestTranslateMultiLineDeletion(t *testing.T) {
	change := deletion(pos(1, 2), pos(3, 4))
	got, ok := Translate(pos(3, 9), change, SideClose)
	require.True(t, ok)
	assert.Equal(t, pos(1, 7), got)
}

func TestTranslateCaret(t *testing.T) {
	t.Run("insertion at caret advances it", func(t *testing.T) {
		got := TranslateCaret(pos(0, 5), insertion(pos(0, 5), "()"))
		assert.Equal(t, pos(0, 7), got)
	})

	t.Run("caret inside replaced range snaps to new end", func(t *testing.T) {
		got := TranslateCaret(pos(0, 6), ContentChange{
			Range: Range{Start: pos(0, 4), End: pos(0, 8)},
			Text:  "ab",
		})
		assert.Equal(t, pos(0, 6), got)
	})

	t.Run("caret before edit untouched", func(t *testing.T) {
		got := TranslateCaret(pos(0, 2), insertion(pos(0, 5), "x"))
		assert.Equal(t, pos(0, 2), got)
	})
}

func TestTranslateThroughBatch(t *testing.T) {
	changes := SortChangesDescending([]ContentChange{
		insertion(pos(0, 2), "a"),
		insertion(pos(0, 8), "bb"),
	})
	require.Equal(t, pos(0, 8), changes[0].Range.Start)

	got, ok := TranslateThrough(pos(0, 10), changes, SideClose)
	require.True(t, ok)
	assert.Equal(t, pos(0, 13), got)
}

func TestSortChangesDescendingDoesNotMutate(t *testing.T) {
	original := []ContentChange{
		insertion(pos(0, 1), "a"),
		insertion(pos(0, 5), "b"),
	}
	sorted := SortChangesDescending(original)
	assert.Equal(t, pos(0, 1), original[0].Range.Start)
	assert.Equal(t, pos(0, 5), sorted[0].Range.Start)
}
