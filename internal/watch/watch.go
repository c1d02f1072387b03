// Package watch re-runs a callback whenever one of a set of input files
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher watches individual files by watching their directories, which
// keeps working across the rename-and-replace saves many editors do.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	// files maps the absolute path of each watched file to the path the
	// caller gave.
	files    map[string]string
	onChange func(path string)
}

// NewFileWatcher creates a watcher for paths. onChange receives the path as
// it was given to NewFileWatcher.
func NewFileWatcher(paths []string, onChange func(path string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]string, len(paths)),
		onChange: onChange,
	}
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		fw.files[abs] = path
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	return fw, nil
}

// Start blocks, dispatching change events until ctx is done.
func (fw *FileWatcher) Start(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path, watched := fw.files[filepath.Clean(event.Name)]
			if !watched {
				continue
			}
			logger.Debug().Str("path", path).Str("op", event.Op.String()).Msg("input changed")
			fw.onChange(path)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				// Log error but continue watching
				logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

// Watch calls fn each time the file at path is written or re-created. It
// returns nil when ctx is cancelled.
func Watch(ctx context.Context, path string, fn func(path string)) error {
	fw, err := NewFileWatcher([]string{path}, fn)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
