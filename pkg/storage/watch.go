package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the storage path of every file created, written,
// removed or renamed directly under prefix. It blocks until ctx is done.
// Temp files written by Write are not reported.
func (s *LocalStorage) Watch(ctx context.Context, prefix string, fn func(p string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := s.resolve(prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", prefix, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", prefix, err)
	}

	const ops = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if ev.Op&ops == 0 || strings.HasSuffix(name, ".tmp") {
				continue
			}
			fn(path.Join(prefix, name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "storage watch error", "prefix", prefix, "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
