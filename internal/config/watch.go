package config

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// Watcher polls override-file modification times and invalidates the store
// when one changes. Polling keeps hot reload dependency-free and is cheap
// at this file count.
type Watcher struct {
	store    *Store
	paths    []string
	interval time.Duration
	log      *zap.Logger

	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewWatcher creates a watcher over every override file the store reads.
func NewWatcher(store *Store, interval time.Duration, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		store:     store,
		paths:     store.WatchPaths(),
		interval:  interval,
		log:       log,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() { close(w.stopCh) }

// scan checks mtimes; on the first change seen it drops the store cache.
func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue // absent files are legal layers
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if !ok || prime {
			continue
		}
		if mt.After(last) {
			w.log.Info("pool override changed, reloading", zap.String("path", p))
			w.store.Invalidate()
			return
		}
	}
}
