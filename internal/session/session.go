// Package session routes host events to per-editor trackers.
//
// A Session owns one tracker per open editor, remembers which editor is
// active, and keeps the globally broadcast context values mirroring the
// active editor's tracker. Trackers never observe each other; the session is
// the single writer of the shared context snapshot, and it synchronizes only
// after a tracker mutation has completed.
//
// A mutex serializes the exported methods, so configuration reloads may be
// applied from a watcher goroutine while a host event loop drives editing;
// each event is still processed to completion before the next begins.
package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/broadcast"
	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
	"github.com/nholm/leaper/internal/engine/pair"
	"github.com/nholm/leaper/internal/engine/tracker"
)

// EditorID identifies one host editor.
type EditorID string

// ErrEditorExists is returned when opening an editor ID twice.
var ErrEditorExists = errors.New("session: editor already open")

// Settings is the tracker-facing slice of configuration.
type Settings struct {
	Pairs      pair.Set
	Policy     tracker.VisibilityPolicy
	Decoration decoration.Options
}

// DefaultSettings returns the settings used before any configuration is
// applied.
func DefaultSettings() Settings {
	return Settings{Pairs: pair.DefaultSet(), Policy: tracker.DecorateNearest}
}

// Session is the engine coordinating trackers and the context broadcaster.
type Session struct {
	mu       sync.Mutex
	log      *zap.Logger
	bc       *broadcast.Broadcaster
	trackers map[EditorID]*tracker.Tracker
	active   EditorID
	settings Settings
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithSettings sets the initial settings.
func WithSettings(settings Settings) Option {
	return func(s *Session) { s.settings = settings }
}

// New creates a session publishing through bc.
func New(bc *broadcast.Broadcaster, opts ...Option) *Session {
	s := &Session{
		log:      zap.NewNop(),
		bc:       bc,
		trackers: make(map[EditorID]*tracker.Tracker),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenEditor starts tracking an editor. The first opened editor becomes
// active.
func (s *Session) OpenEditor(id EditorID, doc tracker.LineSource, renderer decoration.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trackers[id]; ok {
		return fmt.Errorf("%w: %q", ErrEditorExists, id)
	}
	s.trackers[id] = tracker.New(doc,
		tracker.WithRenderer(renderer),
		tracker.WithLogger(s.log.Named("tracker").With(zap.String("editor", string(id)))),
		tracker.WithPairSet(s.settings.Pairs),
		tracker.WithVisibilityPolicy(s.settings.Policy),
		tracker.WithDecorationOptions(s.settings.Decoration),
	)
	s.log.Debug("editor opened", zap.String("editor", string(id)))
	if s.active == "" {
		s.active = id
		s.sync()
	}
	return nil
}

// CloseEditor tears down an editor's tracker, releasing its decorations.
func (s *Session) CloseEditor(id EditorID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.trackers[id]
	if !ok {
		return
	}
	tr.Close()
	delete(s.trackers, id)
	s.log.Debug("editor closed", zap.String("editor", string(id)))
	if s.active == id {
		s.active = ""
		s.sync()
	}
}

// SetActive switches the active editor and re-synchronizes the broadcast
// context.
func (s *Session) SetActive(id EditorID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trackers[id]; !ok && id != "" {
		s.log.Warn("activating unknown editor", zap.String("editor", string(id)))
		return
	}
	s.active = id
	s.sync()
}

// ActiveID returns the active editor's ID, or "" if none.
func (s *Session) ActiveID() EditorID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// EditorCount returns the number of open editors.
func (s *Session) EditorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.trackers)
}

// HandleContentChanges routes a document-change batch to the owning tracker.
func (s *Session) HandleContentChanges(id EditorID, changes []document.ContentChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.trackers[id]
	if !ok {
		return
	}
	tr.ApplyContentChanges(changes)
	s.syncIfActive(id)
}

// HandleSelections routes a selection-change event to the owning tracker.
func (s *Session) HandleSelections(id EditorID, sels []document.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.trackers[id]
	if !ok {
		return
	}
	tr.ApplySelections(sels)
	s.syncIfActive(id)
}

// Leap performs the leap on the active editor. The returned selections, if
// any, are the cursor positions the host must apply.
func (s *Session) Leap() ([]document.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.trackers[s.active]
	if !ok {
		return nil, false
	}
	sels, leapt := tr.Leap()
	if leapt {
		s.sync()
	}
	return sels, leapt
}

// Escape clears all clusters of the active editor only.
func (s *Session) Escape() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.trackers[s.active]
	if !ok {
		return
	}
	tr.Escape()
	s.sync()
}

// ApplySettings propagates new settings to every tracker.
func (s *Session) ApplySettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	for _, tr := range s.trackers {
		tr.ApplyConfig(settings.Pairs, settings.Policy, settings.Decoration)
	}
	s.sync()
}

// Close tears down every tracker.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, tr := range s.trackers {
		tr.Close()
		delete(s.trackers, id)
	}
	s.active = ""
	s.sync()
}

// InLeaperMode reports the active editor's mode value.
func (s *Session) InLeaperMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inLeaperMode()
}

// HasLineOfSight reports the active editor's line-of-sight value.
func (s *Session) HasLineOfSight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasLineOfSight()
}

func (s *Session) inLeaperMode() bool {
	if tr, ok := s.trackers[s.active]; ok {
		return tr.InLeaperMode()
	}
	return false
}

func (s *Session) hasLineOfSight() bool {
	if tr, ok := s.trackers[s.active]; ok {
		return tr.HasLineOfSight()
	}
	return false
}

// ClusterPairs exposes an editor's tracked pairs for rendering.
func (s *Session) ClusterPairs(id EditorID, cursor int) []pair.Pair {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tr, ok := s.trackers[id]; ok {
		return tr.ClusterPairs(cursor)
	}
	return nil
}

func (s *Session) syncIfActive(id EditorID) {
	if id == s.active {
		s.sync()
	}
}

func (s *Session) sync() {
	if s.bc == nil {
		return
	}
	s.bc.Sync(broadcast.Snapshot{
		InLeaperMode:   s.inLeaperMode(),
		HasLineOfSight: s.hasLineOfSight(),
	})
}
