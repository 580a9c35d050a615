// Package app wires the leaper engine together for a running host:
// configuration, logging, the context broadcaster, the session, and
// configuration hot-reload.
package app

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/broadcast"
	"github.com/nholm/leaper/internal/config"
	"github.com/nholm/leaper/internal/config/watcher"
	"github.com/nholm/leaper/internal/engine/pair"
	"github.com/nholm/leaper/internal/engine/tracker"
	"github.com/nholm/leaper/internal/session"
)

// Options configures the application.
type Options struct {
	// Sources locates the configuration files. Empty paths skip their
	// layer.
	Sources config.Sources

	// Setter is the host's context-setting call. May be nil.
	Setter broadcast.ContextSetter

	// Logger overrides the config-built logger. Used by hosts that own
	// the terminal.
	Logger *zap.Logger

	// Watch enables configuration hot-reload.
	Watch bool

	// Debounce overrides the reload debounce window.
	Debounce time.Duration
}

// Application owns the long-lived engine components.
type Application struct {
	log     *zap.Logger
	cfg     config.Config
	sources config.Sources

	bc      *broadcast.Broadcaster
	session *session.Session
	watcher *watcher.Watcher

	wg sync.WaitGroup
}

// New loads configuration and assembles the engine. A broken configuration
// is logged and replaced with defaults rather than refusing to start.
func New(opts Options) (*Application, error) {
	cfg, cfgErr := config.Load(opts.Sources)

	log := opts.Logger
	if log == nil {
		var err error
		log, err = NewLogger(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("app: building logger: %w", err)
		}
	}
	if cfgErr != nil {
		log.Warn("configuration invalid, using defaults", zap.Error(cfgErr))
	}

	a := &Application{
		log:     log,
		cfg:     cfg,
		sources: opts.Sources,
	}
	a.bc = broadcast.New(opts.Setter, log.Named("broadcast"))
	a.session = session.New(a.bc,
		session.WithLogger(log.Named("session")),
		session.WithSettings(SettingsFrom(cfg)),
	)

	if opts.Watch {
		debounce := opts.Debounce
		if debounce <= 0 {
			debounce = watcher.DefaultDebounce
		}
		w, err := watcher.New(opts.Sources, debounce, log.Named("watcher"))
		if err != nil {
			log.Warn("configuration watching unavailable", zap.Error(err))
		} else {
			a.watcher = w
			a.wg.Add(1)
			go a.reloadLoop()
		}
	}
	return a, nil
}

// Session returns the engine session for the host to drive.
func (a *Application) Session() *session.Session {
	return a.session
}

// Config returns the effective configuration at startup.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger {
	return a.log
}

// Close stops the reload loop and tears down the session.
func (a *Application) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.wg.Wait()
	a.session.Close()
	_ = a.log.Sync()
}

// reloadLoop applies validated configurations as they arrive.
func (a *Application) reloadLoop() {
	defer a.wg.Done()
	for {
		select {
		case <-a.watcher.Done():
			return
		case cfg := <-a.watcher.Configs():
			a.log.Info("configuration reloaded",
				zap.Int("pairs", len(cfg.DetectedPairs)),
				zap.Bool("decorateAll", cfg.DecorateAll))
			a.session.ApplySettings(SettingsFrom(cfg))
		}
	}
}

// SettingsFrom maps a validated configuration onto tracker settings.
func SettingsFrom(cfg config.Config) session.Settings {
	policy := tracker.DecorateNearest
	if cfg.DecorateAll {
		policy = tracker.DecorateAll
	}
	return session.Settings{
		Pairs:      pair.NewSet(cfg.PairSpecs()),
		Policy:     policy,
		Decoration: cfg.DecorationOptions(),
	}
}
