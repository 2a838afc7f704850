package changewallpaperlib

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDelay = 2 * time.Second

// OriginalsWatcher calls OnChange after images are added to, removed from or
// renamed within OriginalsDirectory. Bursts of events within Delay of each
// other only trigger one call. Calls never overlap; changes that arrive while
// OnChange is running cause exactly one more call once it returns.
type OriginalsWatcher struct {
	Delay    time.Duration
	OnChange func()

	mu       sync.Mutex
	debounce *time.Timer
	running  bool
	pending  bool
}

func NewOriginalsWatcher(onChange func()) *OriginalsWatcher {
	return &OriginalsWatcher{
		Delay:    DefaultWatchDelay,
		OnChange: onChange,
	}
}

// Run blocks until ctx is cancelled
func (w *OriginalsWatcher) Run(ctx context.Context) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}
	if err = c.RequireOriginals(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err = addDirectories(watcher, c.OriginalsDirectory); err != nil {
		return err
	}

	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(watcher, c, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

func (w *OriginalsWatcher) handle(
	watcher *fsnotify.Watcher, c *Config, event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		fi, err := os.Stat(event.Name)
		if err == nil && fi.IsDir() {
			if err = addDirectories(watcher, event.Name); err != nil {
				logger.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch directory")
			}
			// Files moved in along with the directory produce no events
			w.trigger()
			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if !isImageFile(c, event.Name) {
		return
	}

	logger.Debug().Str("path", event.Name).Stringer("op", event.Op).Msg("Originals changed")
	w.trigger()
}

func (w *OriginalsWatcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(w.Delay, w.run)
}

func (w *OriginalsWatcher) run() {
	w.mu.Lock()
	if w.running {
		w.pending = true
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	for {
		w.OnChange()

		w.mu.Lock()
		if !w.pending {
			w.running = false
			w.mu.Unlock()
			return
		}
		w.pending = false
		w.mu.Unlock()
	}
}

func (w *OriginalsWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
}

// fsnotify isn't recursive
func addDirectories(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !f.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(f.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
