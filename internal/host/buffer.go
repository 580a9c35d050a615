package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nholm/leaper/internal/engine/document"
)

// ErrRangeOutOfBounds is returned when a change addresses text outside the
// buffer.
var ErrRangeOutOfBounds = errors.New("host: change range out of bounds")

// Buffer is an in-memory, line-based text store addressed in UTF-16
// columns. It is not safe for concurrent use.
type Buffer struct {
	lines []string
}

// NewBuffer creates a buffer holding the given text.
func NewBuffer(text string) *Buffer {
	return &Buffer{lines: strings.Split(text, "\n")}
}

// Line returns the text of line n without a trailing line break.
func (b *Buffer) Line(n uint32) (string, bool) {
	if int(n) >= len(b.lines) {
		return "", false
	}
	return b.lines[n], true
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	return uint32(len(b.lines))
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// LineLen returns the UTF-16 length of line n.
func (b *Buffer) LineLen(n uint32) uint32 {
	if int(n) >= len(b.lines) {
		return 0
	}
	return document.UTF16Len(b.lines[n])
}

// Apply applies a change batch given in pre-edit coordinates. Changes are
// applied in descending start order so earlier ranges stay valid.
func (b *Buffer) Apply(changes []document.ContentChange) error {
	for _, change := range document.SortChangesDescending(changes) {
		if err := b.applyOne(change); err != nil {
			return err
		}
	}
	return nil
}

func (b *Buffer) applyOne(change document.ContentChange) error {
	start, end := change.Range.Start, change.Range.End
	if end.Before(start) {
		return fmt.Errorf("%w: %s", ErrRangeOutOfBounds, change.Range)
	}
	if int(start.Line) >= len(b.lines) || int(end.Line) >= len(b.lines) {
		return fmt.Errorf("%w: %s", ErrRangeOutOfBounds, change.Range)
	}

	startLine := b.lines[start.Line]
	endLine := b.lines[end.Line]
	prefix := startLine[:document.ColToByteOffset(startLine, start.Col)]
	suffix := endLine[document.ColToByteOffset(endLine, end.Col):]

	inserted := strings.Split(change.Text, "\n")
	inserted[0] = prefix + inserted[0]
	inserted[len(inserted)-1] += suffix

	replaced := make([]string, 0, len(b.lines)-int(end.Line-start.Line)-1+len(inserted))
	replaced = append(replaced, b.lines[:start.Line]...)
	replaced = append(replaced, inserted...)
	replaced = append(replaced, b.lines[end.Line+1:]...)
	b.lines = replaced
	return nil
}
