package decoration

import (
	"sync"

	"github.com/nholm/leaper/internal/engine/document"
)

// Recorder is a Renderer that records requests for inspection in tests.
type Recorder struct {
	mu      sync.Mutex
	applied map[Handle]document.Position
	cleared []Handle

	// FailApply, when set, is returned from Apply calls.
	FailApply error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{applied: make(map[Handle]document.Position)}
}

// Apply records the request, or fails if FailApply is set.
func (r *Recorder) Apply(handle Handle, pos document.Position, _ Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailApply != nil {
		return r.FailApply
	}
	r.applied[handle] = pos
	return nil
}

// Clear records the removal.
func (r *Recorder) Clear(handle Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.applied, handle)
	r.cleared = append(r.cleared, handle)
	return nil
}

// ActiveCount returns the number of decorations applied and not yet cleared.
func (r *Recorder) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applied)
}

// ClearedCount returns the number of Clear calls seen.
func (r *Recorder) ClearedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cleared)
}

// PositionOf returns the recorded position for a handle.
func (r *Recorder) PositionOf(handle Handle) (document.Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.applied[handle]
	return pos, ok
}
