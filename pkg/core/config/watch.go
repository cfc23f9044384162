package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msto63/devconsole/pkg/core/logging"
)

// ChangeHandler is called with the reloaded configuration after the file changed
type ChangeHandler func(cfg *Config)

const debounceDelay = 250 * time.Millisecond

// Watch reloads the configuration file whenever it is written and calls
// onChange with the result. Parse failures are logged and the previous
// configuration stays in effect. Watch returns once ctx is cancelled.
func Watch(ctx context.Context, path string, logger *logging.Logger, onChange ChangeHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors replace files instead of writing in place.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	log := logger.WithField("component", "config-watch")
	log.Info("Watching config file", logging.Fields{"file": path})

	target := filepath.Clean(path)

	// Reload once writes settle.
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			settle = time.After(debounceDelay)

		case <-settle:
			settle = nil

			cfg, err := Load(path)
			if err != nil {
				log.WarnWithErr("Config reload failed", err, logging.Fields{"file": path})
				continue
			}
			log.Info("Config reloaded", logging.Fields{"file": path})
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.ErrorWithErr("Watcher error", err)
		}
	}
}
