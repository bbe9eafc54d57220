package chartfile

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reload is one result of re-reading a watched chart file.
type Reload struct {
	Chart *Chart
	Err   error
}

// Watcher reloads a chart file whenever it changes on disk.
type Watcher struct {
	Path    string
	Reloads <-chan Reload // Read-only external channel

	reloads chan Reload // Internal write channel
	done    chan struct{}
	stop    sync.Once
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// NewWatcher creates a watcher for a single chart file.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:    abs,
		Reloads: ch,
		reloads: ch,
		done:    make(chan struct{}),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start begins watching. The parent directory is watched so editors that
// replace the file by rename are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		close(w.done)
		w.Stop()
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.Path), err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel. It is safe to call
// more than once, and after a failed Start.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		w.watcher.Close()
		<-w.done
		close(w.reloads)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("chart watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) emit() {
	c, err := Load(w.Path)
	if err != nil {
		w.logger.Warn("chart reload failed", zap.String("path", w.Path), zap.Error(err))
	} else {
		w.logger.Info("chart reloaded", zap.String("path", w.Path), zap.String("name", c.Name))
	}

	select {
	case w.reloads <- Reload{Chart: c, Err: err}:
	default:
		// Drop when the consumer is behind; the next write reloads again.
	}
}
