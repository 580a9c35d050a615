package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/document"
	"github.com/nholm/leaper/internal/host"
	"github.com/nholm/leaper/internal/session"
)

// scriptEditor stands in for one host editor: it owns the buffer and the
// cursor, and feeds events to the session the way a host would.
type scriptEditor struct {
	id     session.EditorID
	runner *Runner
	buf    *host.Buffer
	cursor document.Position
}

func (r *Runner) openEditor(id session.EditorID, text string) (*scriptEditor, error) {
	ed := &scriptEditor{
		id:     id,
		runner: r,
		buf:    host.NewBuffer(text),
	}
	if err := r.session.OpenEditor(id, ed.buf, decoration.Nop()); err != nil {
		return nil, err
	}
	r.session.HandleSelections(id, []document.Selection{document.Caret(ed.cursor)})
	r.editors[id] = ed
	return ed, nil
}

// typeText simulates typing runes at the cursor, autoclosing recognized
// openers the way a host does.
func (ed *scriptEditor) typeText(text string) error {
	for _, r := range text {
		var change document.ContentChange
		var after document.Position

		at := ed.cursor
		if closer, ok := ed.runner.set.Closer(r); ok {
			change = document.ContentChange{
				Range: document.Range{Start: at, End: at},
				Text:  string(r) + string(closer),
			}
			after = document.Position{Line: at.Line, Col: at.Col + document.UTF16Len(string(r))}
		} else {
			change = document.ContentChange{
				Range: document.Range{Start: at, End: at},
				Text:  string(r),
			}
			if r == '\n' {
				after = document.Position{Line: at.Line + 1, Col: 0}
			} else {
				after = document.Position{Line: at.Line, Col: at.Col + document.UTF16Len(string(r))}
			}
		}

		if err := ed.buf.Apply([]document.ContentChange{change}); err != nil {
			return fmt.Errorf("typing %q: %w", r, err)
		}
		ed.runner.session.HandleContentChanges(ed.id, []document.ContentChange{change})
		ed.cursor = after
		ed.runner.session.HandleSelections(ed.id, []document.Selection{document.Caret(after)})
	}
	return nil
}

func (ed *scriptEditor) move(line, col uint32) {
	ed.cursor = document.Position{Line: line, Col: col}
	ed.runner.session.HandleSelections(ed.id, []document.Selection{document.Caret(ed.cursor)})
}

// registerEditorType installs the editor metatable.
func (r *Runner) registerEditorType() {
	mt := r.L.NewTypeMetatable(editorTypeName)
	r.L.SetField(mt, "__index", r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"type":              editorType,
		"move":              editorMove,
		"leap":              editorLeap,
		"escape":            editorEscape,
		"text":              editorText,
		"line":              editorLine,
		"cursor":            editorCursor,
		"pairs":             editorPairs,
		"in_leaper_mode":    editorInLeaperMode,
		"has_line_of_sight": editorHasLineOfSight,
	}))
}

func checkEditor(L *lua.LState) *scriptEditor {
	ud := L.CheckUserData(1)
	ed, ok := ud.Value.(*scriptEditor)
	if !ok {
		L.ArgError(1, "editor expected")
		return nil
	}
	return ed
}

// editorType implements ed:type(text).
func editorType(L *lua.LState) int {
	ed := checkEditor(L)
	if err := ed.typeText(L.CheckString(2)); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

// editorMove implements ed:move(line, col).
func editorMove(L *lua.LState) int {
	ed := checkEditor(L)
	ed.move(uint32(L.CheckInt(2)), uint32(L.CheckInt(3)))
	return 0
}

// editorLeap implements ed:leap() -> bool.
func editorLeap(L *lua.LState) int {
	ed := checkEditor(L)
	if ed.runner.session.ActiveID() != ed.id {
		L.Push(lua.LFalse)
		return 1
	}
	sels, ok := ed.runner.session.Leap()
	if ok && len(sels) > 0 {
		ed.cursor = sels[0].Head
	}
	L.Push(lua.LBool(ok))
	return 1
}

// editorEscape implements ed:escape().
func editorEscape(L *lua.LState) int {
	ed := checkEditor(L)
	if ed.runner.session.ActiveID() == ed.id {
		ed.runner.session.Escape()
	}
	return 0
}

// editorText implements ed:text() -> string.
func editorText(L *lua.LState) int {
	ed := checkEditor(L)
	L.Push(lua.LString(ed.buf.Text()))
	return 1
}

// editorLine implements ed:line(n) -> string.
func editorLine(L *lua.LState) int {
	ed := checkEditor(L)
	line, ok := ed.buf.Line(uint32(L.CheckInt(2)))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(line))
	return 1
}

// editorCursor implements ed:cursor() -> line, col.
func editorCursor(L *lua.LState) int {
	ed := checkEditor(L)
	L.Push(lua.LNumber(ed.cursor.Line))
	L.Push(lua.LNumber(ed.cursor.Col))
	return 2
}

// editorPairs implements ed:pairs() -> count of tracked pairs for the
// primary cursor.
func editorPairs(L *lua.LState) int {
	ed := checkEditor(L)
	L.Push(lua.LNumber(len(ed.runner.session.ClusterPairs(ed.id, 0))))
	return 1
}

// editorInLeaperMode implements ed:in_leaper_mode() -> bool.
func editorInLeaperMode(L *lua.LState) int {
	ed := checkEditor(L)
	active := ed.runner.session.ActiveID() == ed.id
	L.Push(lua.LBool(active && ed.runner.session.InLeaperMode()))
	return 1
}

// editorHasLineOfSight implements ed:has_line_of_sight() -> bool.
func editorHasLineOfSight(L *lua.LState) int {
	ed := checkEditor(L)
	active := ed.runner.session.ActiveID() == ed.id
	L.Push(lua.LBool(active && ed.runner.session.HasLineOfSight()))
	return 1
}
