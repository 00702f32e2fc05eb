// Package scripting runs operator-supplied Lua hooks on game events.
// Scripts register plain global functions (on_move, on_collect, on_deposit,
// on_reset); a hook that errors is logged and skipped, never fatal.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Game events can arrive from more
// than one session, so calls into the VM are serialized here.
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all .lua files from the given
// directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory. Missing dirs are skipped.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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

// Close shuts down the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}

func (e *Engine) OnMove(lat, lng float64) {
	e.call("on_move", lua.LNumber(lat), lua.LNumber(lng))
}

func (e *Engine) OnCollect(tokenID, cellKey string) {
	e.call("on_collect", lua.LString(tokenID), lua.LString(cellKey))
}

func (e *Engine) OnDeposit(tokenID, cellKey string) {
	e.call("on_deposit", lua.LString(tokenID), lua.LString(cellKey))
}

func (e *Engine) OnReset() {
	e.call("on_reset")
}

// call invokes a global Lua function if the loaded scripts define it.
func (e *Engine) call(name string, args ...lua.LValue) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Warn("lua hook failed", zap.String("hook", name), zap.Error(err))
	}
}
