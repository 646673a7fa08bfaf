package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/voxray/internal/logger"
)

// Watcher reports changes to asset files on disk. Events are coalesced:
// any number of writes between two Pending calls count once.
type Watcher struct {
	watcher *fsnotify.Watcher
	names   map[string]bool
	changed chan string
	done    chan struct{}
}

// NewWatcher watches dirs for changes to files with one of the given
// base names. Directories that do not exist are skipped.
func NewWatcher(dirs []string, names ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		watcher: fw,
		names:   make(map[string]bool, len(names)),
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	for _, n := range names {
		w.names[n] = true
	}

	watched := 0
	for _, dir := range dirs {
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			continue
		}
		// Editors often replace files by rename, so watch the directory.
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		watched++
	}
	logger.Info("watching asset directories", zap.Strings("dirs", dirs), zap.Int("watched", watched))

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !w.names[name] {
				continue
			}
			select {
			case w.changed <- name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("asset watcher error", zap.Error(err))
		}
	}
}

// Pending reports whether a watched file changed since the last call.
// It never blocks.
func (w *Watcher) Pending() (string, bool) {
	select {
	case name := <-w.changed:
		return name, true
	default:
		return "", false
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
