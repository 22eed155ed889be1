// Package watcher provides directory change notification for watch-mode
// ingestion, built on fsnotify.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pagerag/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last relevant
// event before notifying, so one copied file does not trigger a re-ingest
// per write syscall.
const DefaultDebounce = 2 * time.Second

// Watcher emits a notification when PDF files under a directory change.
type Watcher struct {
	fsw       *fsnotify.Watcher
	debounce  time.Duration
	extension string
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a notification fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a new directory watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:       fsw,
		debounce:  DefaultDebounce,
		extension: ".pdf",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch monitors dir and returns a channel that receives one value per
// debounced burst of PDF changes. The channel closes when ctx is
// cancelled or the underlying watcher shuts down.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan struct{}, error) {
	if err := w.fsw.Add(dir); err != nil {
		return nil, err
	}

	notify := make(chan struct{}, 1)

	go func() {
		defer close(notify)

		timer := time.NewTimer(w.debounce)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				logger.Debug("Watch event: %s %s", event.Op, event.Name)
				if pending && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
				pending = true

			case <-timer.C:
				pending = false
				select {
				case notify <- struct{}{}:
				default:
				}

			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", err)
			}
		}
	}()

	return notify, nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// relevant reports whether the event concerns a PDF being created,
// written, renamed or removed.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), w.extension) {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}
