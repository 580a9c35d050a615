// Package ui is a minimal single-buffer editor surface used to exercise the
// engine interactively. It implements the host boundary end to end: it owns
// the buffer and cursor, feeds document and selection events to the
// session, renders pair decorations, and binds Tab to leap and Esc to
// escape.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
)

// screenRenderer collects decoration requests for the draw pass.
type screenRenderer struct {
	mu    sync.Mutex
	marks map[decoration.Handle]mark
}

type mark struct {
	pos  document.Position
	opts decoration.Options
}

func newScreenRenderer() *screenRenderer {
	return &screenRenderer{marks: make(map[decoration.Handle]mark)}
}

// Apply implements decoration.Renderer.
func (r *screenRenderer) Apply(handle decoration.Handle, pos document.Position, opts decoration.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks[handle] = mark{pos: pos, opts: opts}
	return nil
}

// Clear implements decoration.Renderer.
func (r *screenRenderer) Clear(handle decoration.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.marks, handle)
	return nil
}

// styleAt returns the decoration style for a position, if decorated.
func (r *screenRenderer) styleAt(pos document.Position) (tcell.Style, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.marks {
		if m.pos == pos {
			return styleFor(m.opts), true
		}
	}
	return tcell.StyleDefault, false
}

func styleFor(opts decoration.Options) tcell.Style {
	style := tcell.StyleDefault
	if opts.Color != "" {
		style = style.Foreground(tcell.GetColor(opts.Color))
	}
	if opts.Bold {
		style = style.Bold(true)
	}
	if opts.Underline {
		style = style.Underline(true)
	}
	return style
}
