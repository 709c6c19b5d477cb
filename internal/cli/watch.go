package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/rewire/pkg/log"
)

// watchFile calls fn every time the file at path is written or replaced,
// until ctx is done. Errors returned by fn are logged and watching
// continues.
func watchFile(ctx context.Context, path string, fn func(context.Context) error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("get absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	defer func() {
		err := watcher.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}()

	// Watch the directory so that files replaced by editors are still seen.
	err = watcher.Add(filepath.Dir(absPath))
	if err != nil {
		return fmt.Errorf("add path to watcher: %w", err)
	}

	logger := log.WithContext(ctx)
	logger.DebugContext(ctx, "watching file", slog.String("path", absPath))

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(evt.Name) != absPath {
				continue
			}

			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}

			logger.DebugContext(ctx, "file changed", slog.String("event", evt.String()))

			err := fn(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "transform failed", slog.Any("err", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.ErrorContext(ctx, "watch error", slog.Any("err", err))
		}
	}
}
