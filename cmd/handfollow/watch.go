package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/handfollow"
)

// watchFile calls fn after file is written, created or renamed into
// place, coalescing events within debounce. It watches the parent
// directory so editors that replace the file are seen. fn runs on the
// calling goroutine, one call at a time, and never after watchFile
// returns. It returns when ctx is done.
func watchFile(ctx context.Context, file string, debounce time.Duration, fn func()) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", abs, err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			handfollow.Logger().Debug("watch: file changed",
				slog.String("file", abs), slog.String("op", ev.Op.String()))
			timer.Reset(debounce)
		case <-timer.C:
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			handfollow.Logger().Warn("watch: watcher error", slog.Any("error", err))
		}
	}
}
