package ui

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/broadcast"
	"github.com/nholm/leaper/internal/engine/document"
	"github.com/nholm/leaper/internal/engine/pair"
	"github.com/nholm/leaper/internal/host"
	"github.com/nholm/leaper/internal/session"
)

const demoEditorID session.EditorID = "demo"

// App is the interactive demo editor. It implements broadcast.ContextSetter
// so the published keybinding-context values can be mirrored into its
// status line; construct it first and hand it to the engine as the setter,
// then call Run with the assembled session.
type App struct {
	screen tcell.Screen
	log    *zap.Logger

	buf    *host.Buffer
	cursor document.Position
	sess   *session.Session
	rend   *screenRenderer
	set    pair.Set

	ctxMu sync.Mutex
	ctx   broadcast.Snapshot
}

// New builds the demo app.
func New(log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		log:  log,
		buf:  host.NewBuffer(""),
		rend: newScreenRenderer(),
	}
}

// SetContext implements broadcast.ContextSetter by mirroring published
// values into the status line.
func (app *App) SetContext(key string, value bool) error {
	app.ctxMu.Lock()
	defer app.ctxMu.Unlock()
	switch key {
	case broadcast.KeyInLeaperMode:
		app.ctx.InLeaperMode = value
	case broadcast.KeyHasLineOfSight:
		app.ctx.HasLineOfSight = value
	}
	return nil
}

// context returns the last mirrored snapshot.
func (app *App) context() broadcast.Snapshot {
	app.ctxMu.Lock()
	defer app.ctxMu.Unlock()
	return app.ctx
}

// Run opens an editor in sess and takes over the terminal until the user
// quits with Ctrl+Q or Ctrl+C. set is the autoclose pair set the demo host
// applies while typing.
func (app *App) Run(sess *session.Session, set pair.Set) error {
	app.sess = sess
	app.set = set

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("ui: creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("ui: initializing screen: %w", err)
	}
	app.screen = screen
	defer screen.Fini()

	if err := app.sess.OpenEditor(demoEditorID, app.buf, app.rend); err != nil {
		return err
	}
	defer app.sess.CloseEditor(demoEditorID)
	app.sess.HandleSelections(demoEditorID, []document.Selection{document.Caret(app.cursor)})

	for {
		app.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if app.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey dispatches one key event. It returns true when the app should
// exit.
func (app *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		app.sess.Escape()
	case tcell.KeyTab:
		if sels, ok := app.sess.Leap(); ok && len(sels) > 0 {
			app.cursor = sels[0].Head
		}
	case tcell.KeyEnter:
		app.typeRune('\n')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.deleteBack()
	case tcell.KeyLeft:
		app.moveBy(0, -1)
	case tcell.KeyRight:
		app.moveBy(0, 1)
	case tcell.KeyUp:
		app.moveBy(-1, 0)
	case tcell.KeyDown:
		app.moveBy(1, 0)
	case tcell.KeyRune:
		app.typeRune(ev.Rune())
	}
	return false
}

// typeRune inserts one rune at the cursor, autoclosing recognized openers.
func (app *App) typeRune(r rune) {
	at := app.cursor
	text := string(r)
	after := document.Position{Line: at.Line, Col: at.Col + document.UTF16Len(text)}
	if closer, ok := app.set.Closer(r); ok {
		text += string(closer)
	} else if r == '\n' {
		after = document.Position{Line: at.Line + 1, Col: 0}
	}

	change := document.ContentChange{
		Range: document.Range{Start: at, End: at},
		Text:  text,
	}
	if err := app.buf.Apply([]document.ContentChange{change}); err != nil {
		app.log.Warn("insert rejected", zap.Error(err))
		return
	}
	app.sess.HandleContentChanges(demoEditorID, []document.ContentChange{change})
	app.cursor = after
	app.sess.HandleSelections(demoEditorID, []document.Selection{document.Caret(after)})
}

// deleteBack removes the character before the cursor, joining lines at
// column zero.
func (app *App) deleteBack() {
	at := app.cursor
	var start document.Position
	switch {
	case at.Col > 0:
		start = document.Position{Line: at.Line, Col: at.Col - 1}
	case at.Line > 0:
		start = document.Position{Line: at.Line - 1, Col: app.buf.LineLen(at.Line - 1)}
	default:
		return
	}

	change := document.ContentChange{Range: document.Range{Start: start, End: at}}
	if err := app.buf.Apply([]document.ContentChange{change}); err != nil {
		app.log.Warn("delete rejected", zap.Error(err))
		return
	}
	app.sess.HandleContentChanges(demoEditorID, []document.ContentChange{change})
	app.cursor = start
	app.sess.HandleSelections(demoEditorID, []document.Selection{document.Caret(start)})
}

// moveBy moves the cursor, clamping to buffer bounds.
func (app *App) moveBy(dLine, dCol int) {
	line := int(app.cursor.Line) + dLine
	if line < 0 {
		line = 0
	}
	if max := int(app.buf.LineCount()) - 1; line > max {
		line = max
	}
	col := int(app.cursor.Col) + dCol
	if col < 0 {
		col = 0
	}
	if max := int(app.buf.LineLen(uint32(line))); col > max {
		col = max
	}
	app.cursor = document.Position{Line: uint32(line), Col: uint32(col)}
	app.sess.HandleSelections(demoEditorID, []document.Selection{document.Caret(app.cursor)})
}

func (app *App) draw() {
	app.screen.Clear()
	_, height := app.screen.Size()

	for y := uint32(0); int(y) < height-1 && y < app.buf.LineCount(); y++ {
		line, _ := app.buf.Line(y)
		x := 0
		col := uint32(0)
		for _, r := range line {
			style := tcell.StyleDefault
			if s, ok := app.rend.styleAt(document.Position{Line: y, Col: col}); ok {
				style = s
			}
			app.screen.SetContent(x, int(y), r, nil, style)
			x++
			col += document.UTF16Len(string(r))
		}
	}

	app.drawStatus(height - 1)
	app.screen.ShowCursor(app.cursorScreenX(), int(app.cursor.Line))
	app.screen.Show()
}

// cursorScreenX converts the cursor's UTF-16 column to a screen column.
func (app *App) cursorScreenX() int {
	line, ok := app.buf.Line(app.cursor.Line)
	if !ok {
		return 0
	}
	return utf8.RuneCountInString(line[:document.ColToByteOffset(line, app.cursor.Col)])
}

func (app *App) drawStatus(y int) {
	ctx := app.context()
	status := fmt.Sprintf(" leaper  mode:%s sight:%s  Tab=leap Esc=escape Ctrl+Q=quit",
		onOff(ctx.InLeaperMode), onOff(ctx.HasLineOfSight))
	style := tcell.StyleDefault.Reverse(true)
	width, _ := app.screen.Size()
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		app.screen.SetContent(x, y, r, nil, style)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
