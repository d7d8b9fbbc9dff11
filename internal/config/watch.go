package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the env file at path whenever it is written or replaced,
// applies the result and passes it to onChange. Invalid files are logged
// and ignored. The watcher stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	// watch the directory so editors that replace the file are still seen
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				s, err := Load(path)
				if err != nil {
					log.Printf("config reload of %s failed: %v", path, err)
					continue
				}
				Apply(s)
				log.Printf("config reloaded from %s", path)
				if onChange != nil {
					onChange(s)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher error: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
