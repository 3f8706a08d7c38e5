package discovery

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/contentforge/contentforge/pkg/telemetry"
)

// watchDebounce coalesces bursts of filesystem events into one reload.
const watchDebounce = 250 * time.Millisecond

// Watch observes the content roots (recursively) and invokes onChange after
// each settled burst of file changes. It blocks until the context is
// cancelled or the watcher fails.
func Watch(ctx context.Context, roots []string, log *telemetry.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	log = log.NewComponentLogger("watch")

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.WithField("path", event.Name).Debug("content changed")
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")

		case <-fire:
			timer = nil
			fire = nil
			onChange()
		}
	}
}
