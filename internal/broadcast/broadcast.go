// Package broadcast publishes the engine's keybinding-context values to the
// host.
//
// The host sees a single global pair of booleans regardless of how many
// editors are tracked; the Broadcaster owns the last-published snapshot and
// forwards only actual changes, so switching between editors with identical
// values costs no host round-trip.
package broadcast

import (
	"sync"

	"go.uber.org/zap"
)

// Context keys published to the host.
const (
	KeyInLeaperMode   = "leaper.inLeaperMode"
	KeyHasLineOfSight = "leaper.hasLineOfSight"
)

// Snapshot is one pair of published context values.
type Snapshot struct {
	InLeaperMode   bool
	HasLineOfSight bool
}

// ContextSetter is the host's "set context" call.
type ContextSetter interface {
	SetContext(key string, value bool) error
}

// ContextSetterFunc adapts a function to ContextSetter.
type ContextSetterFunc func(key string, value bool) error

// SetContext implements ContextSetter.
func (f ContextSetterFunc) SetContext(key string, value bool) error {
	return f(key, value)
}

// Broadcaster relays context snapshots to the host, skipping unchanged
// values. A setter failure is logged and the snapshot still advances; the
// next genuine change retries the key.
type Broadcaster struct {
	mu     sync.Mutex
	setter ContextSetter
	log    *zap.Logger
	last   Snapshot
}

// New creates a broadcaster over the host setter. Both context values start
// published as false.
func New(setter ContextSetter, log *zap.Logger) *Broadcaster {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Broadcaster{setter: setter, log: log}
	b.publish(KeyInLeaperMode, false)
	b.publish(KeyHasLineOfSight, false)
	return b
}

// Sync publishes snap, emitting only the keys whose value differs from the
// last broadcast.
func (b *Broadcaster) Sync(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if snap.InLeaperMode != b.last.InLeaperMode {
		b.publish(KeyInLeaperMode, snap.InLeaperMode)
	}
	if snap.HasLineOfSight != b.last.HasLineOfSight {
		b.publish(KeyHasLineOfSight, snap.HasLineOfSight)
	}
	b.last = snap
}

// Last returns the most recently broadcast snapshot.
func (b *Broadcaster) Last() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *Broadcaster) publish(key string, value bool) {
	if b.setter == nil {
		return
	}
	if err := b.setter.SetContext(key, value); err != nil {
		b.log.Warn("context publication rejected",
			zap.String("key", key), zap.Bool("value", value), zap.Error(err))
	}
}
