package novela

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces into
// one reload.
var watchDebounce = 500 * time.Millisecond

// Watch reloads the content whenever a file under the content directories
// changes. Changes to any of configFiles are only logged: the configuration
// is read once at startup. Watch blocks until ctx is cancelled.
func (s *Site) Watch(ctx context.Context, configFiles ...string) error {
	w, err := s.newWatcher(configFiles)
	if err != nil {
		return err
	}
	defer w.Close()
	return s.runWatcher(ctx, w, configFiles)
}

func (s *Site) newWatcher(configFiles []string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	theme := s.Config.Theme()
	for _, root := range []string{s.Config.Path(theme.ContentPosts), s.Config.Path(theme.ContentAuthors)} {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			s.Logger.Warn("content directory not found, not watching", "path", root)
			continue
		}
		if err := watchDirs(w, root); err != nil {
			w.Close()
			return nil, err
		}
	}
	for _, f := range configFiles {
		if err := w.Add(f); err != nil {
			s.Logger.Warn("cannot watch config", "path", f, "error", err)
		}
	}
	return w, nil
}

func (s *Site) runWatcher(ctx context.Context, w *fsnotify.Watcher, configFiles []string) error {
	isConfig := make(map[string]bool, len(configFiles))
	for _, f := range configFiles {
		isConfig[filepath.Clean(f)] = true
	}

	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isWatchEvent(event.Op) {
				continue
			}
			if isConfig[filepath.Clean(event.Name)] {
				s.Logger.Warn("config changed, restart to apply", "path", event.Name)
				continue
			}
			if shouldAddWatchDir(event) {
				if err := watchDirs(w, event.Name); err != nil {
					s.Logger.Error("watch new directory", "path", event.Name, "error", err)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.Logger.Error("watcher error", "error", err)
		case <-reload:
			if err := s.Reload(); err != nil {
				s.Logger.Error("reload failed, keeping previous content", "error", err)
			}
		}
	}
}

func watchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func shouldAddWatchDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}
