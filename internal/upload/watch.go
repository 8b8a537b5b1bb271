package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/liftplan/internal/ingest/document"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before it is uploaded.
const DefaultDebounce = 2 * time.Second

// Watch runs an initial pass and then uploads supported documents as they
// are created or written in the directory, until ctx is cancelled.
// Subdirectories are not watched.
func (u *Uploader) Watch(ctx context.Context, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(u.dir); err != nil {
		return fmt.Errorf("watching %s: %w", u.dir, err)
	}

	if _, err := u.Run(ctx); err != nil {
		return err
	}
	u.log.Info("watching for documents", "dir", u.dir, "debounce", debounce)

	tick := debounce / 4
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := map[string]time.Time{}
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !document.Supported(event.Name) || filepath.Base(event.Name)[0] == '.' {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			u.log.Warn("watcher error", "error", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < debounce {
					continue
				}
				delete(pending, path)
				if fi, err := os.Stat(path); err != nil || fi.IsDir() {
					continue
				}
				u.processFile(ctx, path)
			}
		}
	}
}
