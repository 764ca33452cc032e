package services

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle before rebuilding
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds the site whenever files under Root change
type Watcher struct {
	Root     string
	Ignore   []string
	Debounce time.Duration
	Rebuild  func() error
}

// Run watches until ctx is cancelled. Rebuilds run one at a time on the watch goroutine;
// changes that arrive during a rebuild schedule one more rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()

	ignore := make([]string, 0, len(w.Ignore))
	for _, dir := range w.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			ignore = append(ignore, abs)
		}
	}
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return err
	}
	if err := addDirsRecursive(watcher, root, ignore); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	log.Printf("Watching %s for changes", root)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name, ignore) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addDirsRecursive(watcher, ev.Name, ignore)
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		case <-timer.C:
			log.Println("Change detected; rebuilding site")
			if err := w.Rebuild(); err != nil {
				log.Printf("Rebuild failed: %v", err)
			}
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string, ignore []string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldIgnoreEvent(path, ignore) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			log.Printf("Warning: cannot watch %s: %v", path, err)
		}
		return nil
	})
}

// shouldIgnoreEvent reports whether a change to path should not trigger a rebuild:
// hidden and editor temp files, and anything inside an ignored directory.
func shouldIgnoreEvent(path string, ignore []string) bool {
	for _, dir := range ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"))
}
