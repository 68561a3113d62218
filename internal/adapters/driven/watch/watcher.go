// Package watch reports changes to the local attachment data so the
// viewer can refresh the displayed image set. Filesystem events are
// rate-limited to coalesce bursts from a single write.
package watch

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/evidex-labs/caseview-cli/internal/logger"
)

// Watcher observes a data directory and signals on its Changes channel
// when the contents are modified.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
	limiter *rate.Limiter
	done    chan struct{}
}

// New creates a watcher over the given directory. limit bounds how often
// change signals are emitted; nil selects two per second.
func New(dir string, limit *rate.Limiter) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	if limit == nil {
		limit = rate.NewLimiter(rate.Limit(2), 1)
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		limiter: limit,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes returns the channel signalled when the watched data changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
				// A signal is already pending.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
