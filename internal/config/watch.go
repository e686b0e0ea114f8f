package config

import (
	"os"
	"time"
)

// Watcher polls a config file's modification time and invokes a
// callback when it changes. Standard library polling keeps the reload
// path dependency-free and works on every filesystem.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func(string)
	stopCh   chan struct{}
	last     time.Time
}

// NewWatcher creates a watcher for the given file and interval.
func NewWatcher(path string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		path:     path,
		interval: interval,
		onChange: onChange,
		stopCh:   make(chan struct{}),
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

func (w *Watcher) scan(prime bool) {
	fi, err := os.Stat(w.path)
	if err != nil {
		// missing file: keep polling, it may appear later
		return
	}
	mt := fi.ModTime()
	if w.last.IsZero() {
		w.last = mt
		return
	}
	if mt.After(w.last) {
		w.last = mt
		if !prime && w.onChange != nil {
			w.onChange(w.path)
		}
	}
}
