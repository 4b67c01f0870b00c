package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads the store whenever the settings file is edited outside the app
// and calls onChange after each effective reload. It returns once the watch is
// established and stops when ctx is done.
func (store *Store) Watch(ctx context.Context, onChange func(), onError func(error)) error {
	if store.path == "" {
		return nil
	}
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Editors replace files on save, so the directory is watched instead of the file.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}

	go store.watchLoop(ctx, watcher, onChange, onError)
	return nil
}

func (store *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func(), onError func(error)) {
	defer watcher.Close()

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	reload := func() {
		changed, err := store.Reload()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if changed && onChange != nil {
			onChange()
		}
	}

	target := filepath.Clean(store.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(reloadDebounce, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
