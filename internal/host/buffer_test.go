package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nholm/leaper/internal/engine/document"
)

func change(sl, sc, el, ec uint32, text string) document.ContentChange {
	return document.ContentChange{
		Range: document.Range{
			Start: document.Position{Line: sl, Col: sc},
			End:   document.Position{Line: el, Col: ec},
		},
		Text: text,
	}
}

func TestBufferInsertSameLine(t *testing.T) {
	b := NewBuffer("hello world")
	require.NoError(t, b.Apply([]document.ContentChange{change(0, 5, 0, 5, ",")}))
	assert.Equal(t, "hello, world", b.Text())
}

func TestBufferDeleteAcrossLines(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree")
	require.NoError(t, b.Apply([]document.ContentChange{change(0, 2, 2, 3, "")}))
	assert.Equal(t, "onee", b.Text())
	assert.Equal(t, uint32(1), b.LineCount())
}

func TestBufferInsertNewline(t *testing.T) {
	b := NewBuffer("abcd")
	require.NoError(t, b.Apply([]document.ContentChange{change(0, 2, 0, 2, "\n")}))
	assert.Equal(t, "ab\ncd", b.Text())

	line, ok := b.Line(1)
	require.True(t, ok)
	assert.Equal(t, "cd", line)
}

func TestBufferReplaceMultiLine(t *testing.T) {
	b := NewBuffer("aaa\nbbb\nccc")
	require.NoError(t, b.Apply([]document.ContentChange{change(0, 1, 2, 1, "X\nY")}))
	assert.Equal(t, "aX\nYcc", b.Text())
}

func TestBufferBatchAppliedDescending(t *testing.T) {
	// Two cursors typing at once: both ranges are pre-edit coordinates.
	b := NewBuffer("ab")
	require.NoError(t, b.Apply([]document.ContentChange{
		change(0, 1, 0, 1, "()"),
		change(0, 2, 0, 2, "[]"),
	}))
	assert.Equal(t, "a()b[]", b.Text())
}

func TestBufferOutOfBounds(t *testing.T) {
	b := NewBuffer("ab")
	err := b.Apply([]document.ContentChange{change(3, 0, 3, 0, "x")})
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)
}

func TestBufferUTF16Columns(t *testing.T) {
	b := NewBuffer("a\U0001F600b")
	// The emoji occupies two UTF-16 units; column 3 addresses "b".
	require.NoError(t, b.Apply([]document.ContentChange{change(0, 3, 0, 4, "X")}))
	assert.Equal(t, "a\U0001F600X", b.Text())
	assert.Equal(t, uint32(4), b.LineLen(0))
}
