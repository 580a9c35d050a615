package tracker

import (
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
)

// refreshDecorations reconciles the host's decorations with the current
// clusters under the visibility policy. Decorations are keyed by the pair's
// handle: newly visible pairs get an Apply, moved pairs are re-applied at
// their new position, and no-longer-visible pairs are cleared.
//
// A rejected Apply is logged and the handle blacklisted; the pair stays
// tracked but undecorated.
func (t *Tracker) refreshDecorations() {
	desired := make(map[decoration.Handle]document.Position)
	for i := range t.clusters {
		if t.policy == DecorateNearest {
			if p, ok := t.clusters[i].Nearest(); ok && !p.Decoration.IsZero() {
				desired[p.Decoration] = p.Close
			}
			continue
		}
		for _, p := range t.clusters[i].Pairs() {
			if !p.Decoration.IsZero() {
				desired[p.Decoration] = p.Close
			}
		}
	}

	for handle := range t.decorated {
		if _, keep := desired[handle]; keep {
			continue
		}
		delete(t.decorated, handle)
		if err := t.renderer.Clear(handle); err != nil {
			t.log.Warn("decoration clear rejected", zap.Error(err))
		}
	}

	for handle, pos := range desired {
		if _, failed := t.decoFailed[handle]; failed {
			continue
		}
		if prev, ok := t.decorated[handle]; ok && prev == pos {
			continue
		}
		if err := t.renderer.Apply(handle, pos, t.decOpts); err != nil {
			t.log.Warn("decoration apply rejected, pair stays undecorated",
				zap.Error(err), zap.Stringer("pos", pos))
			t.decoFailed[handle] = struct{}{}
			delete(t.decorated, handle)
			continue
		}
		t.decorated[handle] = pos
	}
}
