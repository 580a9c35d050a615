// Package script embeds a sandboxed Lua interpreter for driving the engine
// end to end.
//
// Scripts play the host: they open editors, type text (with autoclosing
// applied the way a host would), move cursors, and invoke leap and escape,
// asserting on the resulting state. This is the scriptable harness behind
// the `leaper run` command and doubles as an integration-test vehicle.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/broadcast"
	"github.com/nholm/leaper/internal/config"
	"github.com/nholm/leaper/internal/engine/pair"
	"github.com/nholm/leaper/internal/engine/tracker"
	"github.com/nholm/leaper/internal/session"
)

const editorTypeName = "leaper.editor"

// Runner executes scenario scripts against a fresh session.
type Runner struct {
	L       *lua.LState
	log     *zap.Logger
	cfg     config.Config
	set     pair.Set
	session *session.Session
	bc      *broadcast.Broadcaster
	editors map[session.EditorID]*scriptEditor
}

// NewRunner creates a runner with its own session and context broadcaster.
func NewRunner(cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	// The sandbox opens only the libraries scenario scripts need; no io
	// and no os access.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}

	bc := broadcast.New(nil, log)
	r := &Runner{
		L:       L,
		log:     log,
		cfg:     cfg,
		set:     pair.NewSet(cfg.PairSpecs()),
		bc:      bc,
		editors: make(map[session.EditorID]*scriptEditor),
	}
	r.session = session.New(bc,
		session.WithLogger(log.Named("session")),
		session.WithSettings(session.Settings{
			Pairs:      r.set,
			Policy:     policyFor(cfg),
			Decoration: cfg.DecorationOptions(),
		}),
	)

	r.registerEditorType()
	r.registerLeaperModule()
	return r
}

// RunFile executes a script file.
func (r *Runner) RunFile(path string) error {
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunString executes script source.
func (r *Runner) RunString(src string) error {
	if err := r.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close releases the interpreter and the session.
func (r *Runner) Close() {
	r.session.Close()
	r.L.Close()
}

// Broadcast returns the last context snapshot, for harness assertions.
func (r *Runner) Broadcast() broadcast.Snapshot {
	return r.bc.Last()
}

func policyFor(cfg config.Config) tracker.VisibilityPolicy {
	if cfg.DecorateAll {
		return tracker.DecorateAll
	}
	return tracker.DecorateNearest
}

// registerLeaperModule installs the global `leaper` table.
func (r *Runner) registerLeaperModule() {
	mod := r.L.NewTable()
	r.L.SetFuncs(mod, map[string]lua.LGFunction{
		"open":     r.luaOpen,
		"close":    r.luaClose,
		"activate": r.luaActivate,
	})
	r.L.SetGlobal("leaper", mod)
}

// luaOpen implements leaper.open(id [, text]) -> editor.
func (r *Runner) luaOpen(L *lua.LState) int {
	id := session.EditorID(L.CheckString(1))
	text := L.OptString(2, "")

	ed, err := r.openEditor(id, text)
	if err != nil {
		L.RaiseError("%s", err)
		return 0
	}

	ud := L.NewUserData()
	ud.Value = ed
	L.SetMetatable(ud, L.GetTypeMetatable(editorTypeName))
	L.Push(ud)
	return 1
}

// luaClose implements leaper.close(id).
func (r *Runner) luaClose(L *lua.LState) int {
	id := session.EditorID(L.CheckString(1))
	r.session.CloseEditor(id)
	delete(r.editors, id)
	return 0
}

// luaActivate implements leaper.activate(id).
func (r *Runner) luaActivate(L *lua.LState) int {
	r.session.SetActive(session.EditorID(L.CheckString(1)))
	return 0
}
