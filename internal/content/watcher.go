package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce window between a file event and the sync it triggers, so an
// editor save burst produces a single re-import.
const debounceDelay = 500 * time.Millisecond

// Watch blocks and re-runs Sync whenever files under dir change. After every
// successful sync the onSync hook runs; the serving layer uses it to flush
// its page cache. Watch returns nil once ctx is cancelled.
func (i *Importer) Watch(ctx context.Context, dir string, onSync func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// fsnotify watches single directories, so add the whole tree.
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch content dir: %w", err)
	}

	var syncTimer *time.Timer
	defer func() {
		if syncTimer != nil {
			syncTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Directories created under a watched path are not watched
			// automatically.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := watcher.Add(event.Name); addErr != nil {
						i.log.Warn("Failed to watch new directory " + event.Name)
					}
				}
			}

			if syncTimer != nil {
				syncTimer.Stop()
			}
			syncTimer = time.AfterFunc(debounceDelay, func() {
				count, err := i.Sync(ctx, dir)
				if err != nil {
					i.log.Error(err, "Content re-sync failed")
					return
				}
				i.log.With(map[string]interface{}{"entries": count}).Info("Content re-synced")
				if onSync != nil {
					onSync()
				}
			})

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			i.log.Error(watchErr, "Watcher error")
		}
	}
}
