package session

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nfrund/unisocial/internal/format"
)

const watchDebounce = 50 * time.Millisecond

// Watcher calls back when the session file in a directory changes, so a long
// running process picks up logins and logouts made by another one.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce *format.Debouncer
	done     chan struct{}
	logger   *slog.Logger
}

// Watch starts watching dir for changes to the session file. The directory is
// created if needed.
func Watch(dir string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: format.Debounce(onChange, watchDebounce),
		done:     make(chan struct{}),
		logger:   slog.Default().With("component", "session-watcher", "dir", dir),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	target := Key + ".json"
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			w.logger.Debug("Session file changed", "op", ev.Op.String())
			w.debounce.Call()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Session watcher error", "error", err)
		}
	}
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	w.debounce.Stop()
	return err
}
