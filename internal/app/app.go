// Package app runs viewctl's interactive terminal viewport. It wires the
// terminal backend, the viewport controller host, the consumer bus, the
// optional Lua consumer and live configuration together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/viewctl/internal/backend"
	"github.com/dshills/viewctl/internal/bus"
	"github.com/dshills/viewctl/internal/camera"
	"github.com/dshills/viewctl/internal/config"
	"github.com/dshills/viewctl/internal/controller"
	"github.com/dshills/viewctl/internal/input/mouse"
	"github.com/dshills/viewctl/internal/logging"
	"github.com/dshills/viewctl/internal/replay"
	"github.com/dshills/viewctl/internal/script"
	"github.com/dshills/viewctl/internal/viewport"
)

// Backend is the terminal the application draws on and reads input from.
type Backend interface {
	Init() error
	Shutdown()
	Size() (int, int)
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
	Clear()
	DrawText(x, y int, text string, style tcell.Style)
	Show()
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	ConfigPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// ScriptPath overrides script.path when set.
	ScriptPath string

	// RecordPath, when set, saves the session as a replay script on exit.
	RecordPath string

	// Viewport is the ID of the terminal viewport.
	Viewport mouse.ViewportID

	// Version is attached to every log record.
	Version string

	// Watch reloads ConfigPath when it changes.
	Watch bool

	// Clock returns the tick time. Defaults to time.Now.
	Clock func() time.Time

	// Lookup reads environment overrides. Defaults to the process
	// environment.
	Lookup config.LookupFunc
}

// Application is the interactive viewport.
type Application struct {
	mu sync.Mutex

	opts     Options
	store    *config.Store
	logger   *slog.Logger
	closeLog func() error

	backend    Backend
	translator *backend.Translator
	camera     *camera.Camera
	bus        *bus.Bus
	script     *script.Script
	manager    *viewport.Manager
	metrics    *controller.Metrics
	recorder   *replay.Recorder
	status     *statusLog

	unsubscribe func()

	running atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// New loads configuration and builds every component except the backend.
func New(opts Options) (*Application, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	app := &Application{
		opts:   opts,
		done:   make(chan struct{}),
		status: newStatusLog(statusLines),
	}
	if err := app.bootstrap(); err != nil {
		app.close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.store = config.NewStore(cfg)

	// 2. Logging
	logger, closeLog, err := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     logging.Format(cfg.Logging.Format),
		Sink:       logging.Sink(cfg.Logging.Sink),
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		App:        "viewctl",
		Version:    app.opts.Version,
	})
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logger = logger
	app.closeLog = closeLog

	// 3. Input sources
	app.translator = backend.NewTranslator(cfg.Input.WheelStep)
	camCfg := camera.DefaultConfig()
	camCfg.Position = cfg.CameraPosition()
	camCfg.Target = cfg.CameraTarget()
	camCfg.FOV = cfg.Camera.FOVDegrees
	camCfg.PixelAspect = cfg.Camera.PixelAspect
	app.camera = camera.New(camCfg, 0, 0)

	// 4. Consumers
	app.bus = bus.New(bus.WithLogger(logger))
	clicks := bus.WithFilter(bus.Kinds(mouse.EventDown, mouse.EventUp, mouse.EventDoubleClick, mouse.EventWheel))
	app.bus.ConnectManipulator(app.status.observe(controller.TierManipulator),
		bus.WithPriority(bus.PriorityCritical), bus.WithName("status"), clicks)
	app.bus.ConnectViewport(app.status.observe(controller.TierInteraction),
		bus.WithPriority(bus.PriorityCritical), bus.WithName("status"), clicks)

	if cfg.Script.Path != "" {
		s, err := script.Load(cfg.Script.Path,
			script.WithLogger(logger),
			script.WithTimeout(cfg.ScriptTimeout()),
		)
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
		app.script = s
		app.bus.ConnectManipulator(s.Manipulator().HandleMouseInteraction, bus.WithName("script"))
		app.bus.ConnectViewport(s.Viewport().HandleMouseInteraction, bus.WithName("script"))
	}

	// 5. Controller host
	app.metrics = controller.NewMetrics()
	app.manager = viewport.NewManager(app.collaborators,
		viewport.WithLogger(logger),
		viewport.WithMetrics(app.metrics),
	)
	app.manager.UpdateViewport(app.opts.Clock())
	if _, err := app.manager.Register(app.opts.Viewport); err != nil {
		return &InitError{Component: "viewport", Err: err}
	}

	// 6. Live settings
	app.unsubscribe = app.store.OnChange(func(_, updated config.Config) {
		app.translator.SetWheelStep(updated.Input.WheelStep)
		app.logger.Info("settings applied",
			slog.Int("double_click_ms", updated.Input.DoubleClickIntervalMS),
			slog.Float64("wheel_step", float64(updated.Input.WheelStep)),
		)
	})

	if app.opts.RecordPath != "" {
		app.recorder = replay.NewRecorder(app.opts.Viewport, app.opts.Clock())
	}
	return nil
}

func (app *Application) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if app.opts.ConfigPath != "" {
		loaded, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg, app.opts.Lookup); err != nil {
		return cfg, err
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.ScriptPath != "" {
		cfg.Script.Path = app.opts.ScriptPath
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// collaborators is the viewport factory.
func (app *Application) collaborators(mouse.ViewportID) (controller.Collaborators, error) {
	return controller.Collaborators{
		Cursor:      app.translator,
		Rays:        app.camera,
		Clicks:      app.store,
		Manipulator: app.bus.Manipulator(),
		Viewport:    app.bus.Viewport(),
	}, nil
}

// SetBackend sets the terminal. It must be called before Run.
func (app *Application) SetBackend(b Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Run initializes the backend and processes input until the user quits,
// ctx is done or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	w, h := b.Size()
	app.resize(w, h)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.opts.Watch && app.opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(app.opts.ConfigPath, app.store,
			config.WithWatchLogger(app.logger),
			config.WithLookup(app.opts.Lookup),
		)
		if err != nil {
			app.logger.Warn("config watch disabled", slog.Any("error", err))
		} else {
			go watcher.Run(ctx)
		}
	}

	events := make(chan tcell.Event, 16)
	go app.pollEvents(b, events)

	app.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			app.render()
		}
	}
}

// pollEvents forwards backend events until the backend shuts down.
func (app *Application) pollEvents(b Backend, out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := b.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-app.done:
			return
		}
	}
}

// Shutdown stops Run and releases resources. The session recording, if
// any, is saved.
func (app *Application) Shutdown() error {
	var err error
	app.once.Do(func() {
		close(app.done)
		if app.recorder != nil {
			if err = app.recorder.Save(app.opts.RecordPath); err == nil {
				app.logger.Info("session recorded",
					slog.String("path", app.opts.RecordPath),
					slog.Int("steps", app.recorder.Len()),
				)
			}
		}
		app.logMetrics()
		app.close()
	})
	return err
}

func (app *Application) close() {
	if app.unsubscribe != nil {
		app.unsubscribe()
	}
	if app.script != nil {
		app.script.Close()
	}
	if app.closeLog != nil {
		app.closeLog()
	}
}

func (app *Application) logMetrics() {
	if app.metrics == nil || app.logger == nil {
		return
	}
	s := app.metrics.Snapshot()
	app.logger.Info("session metrics",
		slog.Uint64("dispatched", s.TotalDispatched()),
		slog.Uint64("consumed", s.Consumed),
		slog.Uint64("suppressed_releases", s.SuppressedReleases),
		slog.Uint64("ray_misses", s.RayMisses),
		slog.Uint64("resets", s.Resets),
	)
}

// Store returns the live configuration.
func (app *Application) Store() *config.Store {
	return app.store
}

// Manager returns the controller host.
func (app *Application) Manager() *viewport.Manager {
	return app.manager
}

// Bus returns the consumer bus, for attaching extra handlers.
func (app *Application) Bus() *bus.Bus {
	return app.bus
}

// Metrics returns the controller metrics.
func (app *Application) Metrics() *controller.Metrics {
	return app.metrics
}

// Status returns the recent interaction lines shown on screen.
func (app *Application) Status() []string {
	return app.status.lines()
}

func (app *Application) String() string {
	return fmt.Sprintf("viewctl viewport %d", app.opts.Viewport)
}
