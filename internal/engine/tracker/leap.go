package tracker

import (
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/engine/document"
)

// Leap moves each cursor past its nearest pair's closing character, popping
// that pair from the cluster. The operation is gated on the primary cursor's
// line of sight; cursors without their own line of sight are left alone.
//
// It returns the updated cursor list for the host to apply and true, or nil
// and false when the leap was a no-op.
func (t *Tracker) Leap() ([]document.Selection, bool) {
	if t.closed || !t.HasLineOfSight() {
		return nil, false
	}

	leapt := false
	for i := range t.cursors {
		if !t.cursorHasLineOfSight(i) {
			continue
		}
		p, ok := t.clusters[i].PopNearest()
		if !ok {
			continue
		}
		t.releasePair(p)

		target := document.Position{Line: p.Close.Line, Col: p.Close.Col + 1}
		t.cursors[i] = document.Caret(target)
		leapt = true

		t.log.Debug("leapt past pair",
			zap.Stringer("close", p.Close), zap.Int("cursor", i))
	}
	if !leapt {
		return nil, false
	}

	// Leaving a pair can also leave outer pairs' spans behind; run the
	// same containment test a cursor move would.
	for i := range t.clusters {
		t.releasePairs(t.clusters[i].RetainContaining(t.cursors[i].Head))
	}

	t.refreshDecorations()
	t.invalidateContext()
	return t.Cursors(), true
}
