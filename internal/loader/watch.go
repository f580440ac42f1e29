package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports batches of changed source files below a set of roots.
type Watcher struct {
	loader   *Loader
	watcher  *fsnotify.Watcher
	roots    []string
	debounce time.Duration
}

// NewWatcher registers every non-hidden directory below roots with fsnotify.
// A root that is a file is watched through its parent directory.
func (l *Loader) NewWatcher(debounce time.Duration, roots ...string) (*Watcher, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{loader: l, watcher: fw, debounce: debounce}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			// Watch the parent directory; editors often replace files on save.
			if err := fw.Add(filepath.Dir(abs)); err != nil {
				_ = fw.Close()
				return nil, fmt.Errorf("failed to watch %s: %w", root, err)
			}
			w.roots = append(w.roots, abs)
			continue
		}
		if err := w.addTree(abs); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", root, err)
		}
		w.roots = append(w.roots, abs)
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// relevant reports whether path is a source file the loader would select.
func (w *Watcher) relevant(path string) bool {
	for _, root := range w.roots {
		if path == root {
			return true
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if w.loader.Matches(rel) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange with the sorted set of
// source files written or created since the previous call. Calls never
// overlap, and none happens after Run returns: a call in progress is
// waited for.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	var (
		mu      sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
		stopped bool
		running sync.Mutex
	)

	flush := func() {
		running.Lock()
		defer running.Unlock()

		mu.Lock()
		if stopped {
			mu.Unlock()
			return
		}
		changed := make([]string, 0, len(pending))
		for path := range pending {
			changed = append(changed, path)
		}
		clear(pending)
		mu.Unlock()

		if len(changed) == 0 {
			return
		}
		slices.Sort(changed)
		onChange(changed)
	}

	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()

		// Wait for a flush already past the stopped check.
		running.Lock()
		defer running.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(info.Name()) {
					if err := w.addTree(event.Name); err != nil {
						w.loader.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(event.Name) {
				continue
			}

			w.loader.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			mu.Lock()
			pending[event.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, flush)
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.loader.logger.Warn("watcher event queue overflowed", "error", err)
				continue
			}
			w.loader.logger.Error("watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
