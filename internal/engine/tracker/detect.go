package tracker

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
	"github.com/nholm/leaper/internal/engine/pair"
)

// detectAutoclose inspects an applied change batch for the shape of an
// autoclosing insertion and grows the owning cursor's cluster by one
// innermost pair per detection.
//
// Two shapes are recognized, both anchored at a caret's pre-edit position:
//
//   - the host inserted opener and closer as one change ("()"), or
//   - the host inserted a lone opener and the post-edit document already
//     carries the matching closer immediately after it (the host completed
//     the pair in a sibling change, or the closer was typed over).
//
// preCursors is the cursor list before translation; sorted is the batch in
// descending start order.
func (t *Tracker) detectAutoclose(preCursors []document.Selection, sorted []document.ContentChange) {
	for i, change := range sorted {
		if !change.IsInsertion() || change.Text == "" {
			continue
		}

		cursorIdx := -1
		for j, sel := range preCursors {
			if sel.IsEmpty() && sel.Head == change.Range.Start {
				cursorIdx = j
				break
			}
		}
		if cursorIdx < 0 || cursorIdx >= len(t.clusters) {
			continue
		}

		opener, closer, ok := t.matchAutoclose(change, sorted, i)
		if !ok {
			continue
		}

		// Map the insertion point through the rest of the batch (lower
		// changes shift it; higher ones do not).
		openPos := document.TranslateCaretThrough(change.Range.Start, sorted[i+1:])
		closePos := document.Position{Line: openPos.Line, Col: openPos.Col + 1}

		newPair := pair.Pair{
			Open:       openPos,
			Close:      closePos,
			Decoration: decoration.NewHandle(),
		}
		if err := t.clusters[cursorIdx].Push(newPair); err != nil {
			t.log.Error("detected pair does not nest, ignoring",
				zap.Error(err), zap.Int("cursor", cursorIdx))
			continue
		}

		// The host parks the caret between the two characters; mirror that
		// now so the containment re-check in this same event turn passes.
		// The follow-up selection event confirms it.
		t.cursors[cursorIdx] = document.Caret(closePos)

		t.log.Debug("tracking new pair",
			zap.Stringer("open", openPos),
			zap.String("opener", string(opener)),
			zap.String("closer", string(closer)),
			zap.Int("cursor", cursorIdx))
	}
}

// matchAutoclose decides whether the change at sorted[i] is an autoclosing
// insertion, returning the opener and closer characters.
func (t *Tracker) matchAutoclose(change document.ContentChange, sorted []document.ContentChange, i int) (rune, rune, bool) {
	opener, size := utf8.DecodeRuneInString(change.Text)
	if opener == utf8.RuneError {
		return 0, 0, false
	}
	wantClose, known := t.set.Closer(opener)
	if !known {
		return 0, 0, false
	}

	rest := change.Text[size:]
	if rest != "" {
		// Single change carrying both characters.
		closer, size2 := utf8.DecodeRuneInString(rest)
		if closer == wantClose && size+size2 == len(change.Text) {
			return opener, closer, true
		}
		return 0, 0, false
	}

	// Lone opener: the closer must sit right after it in the post-edit
	// document.
	openPos := document.TranslateCaretThrough(change.Range.Start, sorted[i+1:])
	line, ok := t.doc.Line(openPos.Line)
	if !ok {
		return 0, 0, false
	}
	at := document.ColToByteOffset(line, openPos.Col)
	got, gotSize := utf8.DecodeRuneInString(line[at:])
	if got != opener {
		return 0, 0, false
	}
	closer, _ := utf8.DecodeRuneInString(line[at+gotSize:])
	if closer != wantClose {
		return 0, 0, false
	}
	return opener, closer, true
}
