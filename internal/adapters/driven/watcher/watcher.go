// Package watcher detects changes to the document folder between questions.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// DefaultDebounce is how long to wait after the last file event before
// reporting a change. Editors and downloads write PDFs in bursts.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a document folder and invokes a callback once the
// folder has settled after a change to any PDF in it.
type Watcher struct {
	folder   string
	debounce time.Duration
	onChange func()
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for the given folder. onChange fires at most once
// per settled burst of events, from the watcher's own goroutine.
func New(folder string, onChange func(), opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if err := fsWatcher.Add(folder); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watching %s: %w", folder, err)
	}

	w := &Watcher{
		folder:   folder,
		debounce: DefaultDebounce,
		onChange: onChange,
		watcher:  fsWatcher,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.loop()
	return w, nil
}

// loop consumes fsnotify events until Close.
func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isPDF(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				logger.Error("watcher error: %v", err)
			}

		case <-w.done:
			return
		}
	}
}

// schedule resets the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.onChange)
}

// Close stops watching. Pending callbacks are cancelled.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

// isPDF reports whether the path names a PDF file.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
