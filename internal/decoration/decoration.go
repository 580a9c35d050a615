// Package decoration defines the boundary to the host's decoration renderer.
//
// The engine requests a visual marker for the closing side of tracked pairs
// and must release every marker it requested, including on editor teardown.
// Rendering itself is owned by the host; this package only carries handles,
// styling options, and the request interface.
package decoration

import (
	"github.com/google/uuid"

	"github.com/nholm/leaper/internal/engine/document"
)

// Handle identifies one decoration owned by the host renderer.
// The zero value means "no decoration".
type Handle string

// NewHandle allocates a fresh decoration handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// IsZero returns true if the handle does not refer to a decoration.
func (h Handle) IsZero() bool {
	return h == ""
}

// Options describes how a decoration should be rendered.
type Options struct {
	// Color is the foreground color as a hex string (e.g. "#767676") or a
	// named theme color. Empty means the host default.
	Color string

	// Bold renders the decorated character in bold.
	Bold bool

	// Underline renders the decorated character underlined.
	Underline bool
}

// Renderer is implemented by the host to display and remove decorations.
// Implementations must tolerate Clear calls for handles they never saw.
type Renderer interface {
	// Apply places (or moves) a decoration at the given position.
	Apply(handle Handle, pos document.Position, opts Options) error

	// Clear removes a single decoration.
	Clear(handle Handle) error
}

// Nop returns a renderer that ignores all requests. Useful for tests and for
// hosts without a visual surface.
func Nop() Renderer {
	return nopRenderer{}
}

type nopRenderer struct{}

func (nopRenderer) Apply(Handle, document.Position, Options) error { return nil }
func (nopRenderer) Clear(Handle) error                             { return nil }
