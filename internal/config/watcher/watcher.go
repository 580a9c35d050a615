package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/config"
)

// DefaultDebounce is the default settle window after a file event.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads configuration when a watched source file changes and
// delivers the result on Configs. Consumers drain the channel from their
// event loop; delivery is dropped, not blocked on, if the consumer lags.
type Watcher struct {
	sources  config.Sources
	log      *zap.Logger
	fsw      *fsnotify.Watcher
	debounce *Countdown
	configs  chan config.Config
	done     chan struct{}
}

// New starts watching the directories containing the configured sources.
// Watching the directory rather than the file survives the
// write-then-rename dance editors perform.
func New(sources config.Sources, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	w := &Watcher{
		sources: sources,
		log:     log,
		fsw:     fsw,
		configs: make(chan config.Config, 1),
		done:    make(chan struct{}),
	}
	w.debounce = NewCountdown(debounce, w.reload)

	for _, dir := range w.watchDirs() {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watcher: watching %s: %w", dir, err)
		}
	}

	go w.loop()
	return w, nil
}

// Configs returns the channel of reloaded configurations.
func (w *Watcher) Configs() <-chan config.Config {
	return w.configs
}

// Done is closed when the watcher stops. Consumers select on it alongside
// Configs; the configs channel itself is never closed.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	w.debounce.Cancel()
	return w.fsw.Close()
}

func (w *Watcher) watchDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, path := range []string{w.sources.ProfilePath, w.sources.SettingsPath} {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.debounce.Arm()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == filepath.Clean(w.sources.ProfilePath) ||
		name == filepath.Clean(w.sources.SettingsPath)
}

func (w *Watcher) reload() {
	cfg, err := config.Load(w.sources)
	if err != nil {
		w.log.Warn("config reload failed, keeping previous config", zap.Error(err))
		return
	}
	select {
	case w.configs <- cfg:
	default:
		// Consumer still holds an undelivered config; replace it.
		select {
		case <-w.configs:
		default:
		}
		select {
		case w.configs <- cfg:
		default:
		}
	}
}
