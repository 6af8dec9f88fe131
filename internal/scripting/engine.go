package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/towerclimb/server/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM hosting the decoration scripts.
// Single-goroutine access only (game loop): the decoration hook is invoked
// synchronously from the store's commit path and handle release happens in
// the same loop.
//
// Script contract:
//
//	on_platform_created(p) -> array of {kind=string, ref=any} or nil
//	on_decoration_released(kind, ref)
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all .lua files from the given
// directory. A missing directory is not an error: the engine simply has no
// decoration functions and the hook returns nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load decoration scripts: %w", err)
	}
	return e, nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Hook returns the engine's world.DecorationHook. The returned hook never
// fails: a script error is logged and the platform simply goes undecorated.
func (e *Engine) Hook() world.DecorationHook {
	return e.onPlatformCreated
}

func (e *Engine) onPlatformCreated(v world.PlatformView) []world.DecorationHandle {
	fn := e.vm.GetGlobal("on_platform_created")
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(v.ID))
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	t.RawSetString("width", lua.LNumber(v.Width))
	t.RawSetString("height", lua.LNumber(v.Height))
	t.RawSetString("light", lua.LBool(v.LightEmitter))
	t.RawSetString("coin", lua.LBool(v.WantCoin))
	t.RawSetString("theme", lua.LString(v.Theme))
	t.RawSetString("chunk", lua.LNumber(v.ChunkID))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_platform_created error", zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	var handles []world.DecorationHandle
	rt.ForEach(func(_, entry lua.LValue) {
		et, ok := entry.(*lua.LTable)
		if !ok {
			return
		}
		handles = append(handles, &luaHandle{
			engine: e,
			kind:   lua.LVAsString(et.RawGetString("kind")),
			ref:    et.RawGetString("ref"),
		})
	})
	return handles
}

// luaHandle is a decoration handle whose release is forwarded back into the
// script that created it.
type luaHandle struct {
	engine *Engine
	kind   string
	ref    lua.LValue
}

func (h *luaHandle) Release() {
	fn := h.engine.vm.GetGlobal("on_decoration_released")
	if fn == lua.LNil {
		return
	}
	if err := h.engine.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(h.kind), h.ref); err != nil {
		h.engine.log.Error("lua on_decoration_released error",
			zap.Error(err), zap.String("kind", h.kind))
	}
}
