package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/viewctl/internal/input/key"
	"github.com/dshills/viewctl/internal/input/mouse"
)

// Handler function names.
const (
	ManipulatorFunc = "on_manipulator"
	ViewportFunc    = "on_viewport"
)

// DefaultTimeout bounds a single handler call.
const DefaultTimeout = 50 * time.Millisecond

// Option configures a Script.
type Option func(*Script)

// WithLogger sets the logger for script errors and the log() builtin.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Script) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout sets the per-call timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		s.timeout = d
	}
}

// Script is a loaded Lua consumer. gopher-lua states are single-threaded;
// the mutex serializes calls from Go.
type Script struct {
	name string
	L    *lua.LState
	mu   sync.Mutex

	timeout time.Duration
	logger  *slog.Logger

	errors  int
	lastErr error
	closed  bool
}

// Load reads and runs the script at path.
func Load(path string, opts ...Option) (*Script, error) {
	s := newScript(path, opts)
	if err := s.L.DoFile(path); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return s, nil
}

// LoadString runs code as a script labelled name.
func LoadString(name, code string, opts ...Option) (*Script, error) {
	s := newScript(name, opts)
	if err := s.L.DoString(code); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return s, nil
}

func newScript(name string, opts []Option) *Script {
	s := &Script{
		name:    name,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("script", name))

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.L.SetGlobal("log", s.L.NewFunction(s.luaLog))
	return s
}

// openSafeLibraries opens the libraries that cannot touch the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// luaLog implements log(msg) for scripts.
func (s *Script) luaLog(L *lua.LState) int {
	s.logger.Info(L.CheckString(1))
	return 0
}

// Name returns the script label.
func (s *Script) Name() string {
	return s.name
}

// Defines reports whether the script defines the global function fn.
func (s *Script) Defines(fn string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.L.GetGlobal(fn).Type() == lua.LTFunction
}

// Manipulator returns a consumer that calls on_manipulator.
func (s *Script) Manipulator() mouse.Consumer {
	return s.consumer(ManipulatorFunc)
}

// Viewport returns a consumer that calls on_viewport.
func (s *Script) Viewport() mouse.Consumer {
	return s.consumer(ViewportFunc)
}

func (s *Script) consumer(fn string) mouse.ConsumerFunc {
	return func(event mouse.InteractionEvent) bool {
		handled, err := s.Call(fn, event)
		if err != nil {
			s.logger.Warn("handler failed",
				slog.String("func", fn),
				slog.String("kind", event.Kind.String()),
				slog.Any("error", err),
			)
			return false
		}
		return handled
	}
}

// Call invokes fn with event and returns its truthiness. A missing
// function returns false without error.
func (s *Script) Call(fn string, event mouse.InteractionEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrScriptClosed
	}

	fnVal := s.L.GetGlobal(fn)
	switch fnVal.Type() {
	case lua.LTNil:
		return false, nil
	case lua.LTFunction:
	default:
		return false, s.fail(fmt.Errorf("%w: %s is %s", ErrNotFunction, fn, fnVal.Type()))
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	err := s.L.CallByParam(lua.P{Fn: fnVal, NRet: 1, Protect: true}, eventTable(s.L, event))
	if err != nil {
		return false, s.fail(fmt.Errorf("script: %s: %w", fn, err))
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)
	return lua.LVAsBool(ret), nil
}

func (s *Script) fail(err error) error {
	s.errors++
	s.lastErr = err
	return err
}

// Errors returns the number of failed calls and the most recent error.
func (s *Script) Errors() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors, s.lastErr
}

// Close releases the Lua state. Later calls return ErrScriptClosed.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

// eventTable converts event into the table passed to handlers.
func eventTable(L *lua.LState, event mouse.InteractionEvent) *lua.LTable {
	in := event.Interaction
	t := L.NewTable()

	t.RawSetString("kind", lua.LString(event.Kind.String()))
	if b := event.Button(); b != mouse.ButtonNone {
		t.RawSetString("button", lua.LString(b.String()))
	}

	buttons := L.NewTable()
	in.Buttons.Each(func(b mouse.Button) {
		buttons.Append(lua.LString(b.String()))
	})
	t.RawSetString("buttons", buttons)

	mods := L.NewTable()
	mods.RawSetString("ctrl", lua.LBool(in.Modifiers.Has(key.ModCtrl)))
	mods.RawSetString("alt", lua.LBool(in.Modifiers.Has(key.ModAlt)))
	mods.RawSetString("shift", lua.LBool(in.Modifiers.Has(key.ModShift)))
	t.RawSetString("modifiers", mods)

	t.RawSetString("x", lua.LNumber(in.Pick.Screen.X))
	t.RawSetString("y", lua.LNumber(in.Pick.Screen.Y))
	t.RawSetString("has_ray", lua.LBool(in.Pick.HasRay))
	if in.Pick.HasRay {
		t.RawSetString("origin", vecTable(L, in.Pick.Ray.Origin.X, in.Pick.Ray.Origin.Y, in.Pick.Ray.Origin.Z))
		t.RawSetString("dir", vecTable(L, in.Pick.Ray.Dir.X, in.Pick.Ray.Dir.Y, in.Pick.Ray.Dir.Z))
	}
	t.RawSetString("wheel_delta", lua.LNumber(event.WheelDelta))
	t.RawSetString("viewport", lua.LNumber(in.ViewportID))
	return t
}

func vecTable(L *lua.LState, x, y, z float32) *lua.LTable {
	v := L.NewTable()
	v.RawSetString("x", lua.LNumber(x))
	v.RawSetString("y", lua.LNumber(y))
	v.RawSetString("z", lua.LNumber(z))
	return v
}
