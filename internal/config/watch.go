package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger sets the logger for reload results.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLookup sets the environment lookup re-applied on every reload.
func WithLookup(lookup LookupFunc) WatchOption {
	return func(w *Watcher) {
		w.lookup = lookup
	}
}

// Watcher reloads a config file into a Store when it changes. Reloads that
// fail to parse or validate are logged and leave the store untouched.
type Watcher struct {
	path     string
	store    *Store
	fsw      *fsnotify.Watcher
	debounce time.Duration
	lookup   LookupFunc
	logger   *slog.Logger
}

// NewWatcher starts watching path. The parent directory is watched so
// that editors which save by rename are seen too.
func NewWatcher(path string, store *Store, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := FormatFor(abs); err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	w.fsw = fsw
	return w, nil
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.Reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.Reload()
				continue
			}
			w.logger.Warn("config watcher error", slog.Any("error", err))
		}
	}
}

// Reload loads, overrides and validates the file, and swaps it into the
// store on success.
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if err == nil {
		err = ApplyEnv(&cfg, w.lookup)
	}
	if err == nil {
		err = Validate(cfg)
	}
	if err != nil {
		w.logger.Warn("config reload rejected", slog.String("path", w.path), slog.Any("error", err))
		return err
	}

	w.store.Set(cfg)
	w.logger.Info("config reloaded", slog.String("path", w.path))
	return nil
}

// Watch watches path until ctx is done.
func Watch(ctx context.Context, path string, store *Store, opts ...WatchOption) error {
	w, err := NewWatcher(path, store, opts...)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
