package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/recallbox/pkg/log"
)

// Change is a debounced batch of file events under the watched drive.
type Change struct {
	Root  string
	Paths []string
}

// Watcher follows the mounted drive on the local filesystem so the UI can
// suggest a rescan when photos are added or removed.
type Watcher struct {
	debounce time.Duration
	fs       *fsnotify.Watcher
	changes  chan Change

	mu   sync.Mutex
	root string
	dirs []string
}

func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		debounce: debounce,
		fs:       fw,
		changes:  make(chan Change, 1),
	}, nil
}

func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Watch moves the watcher to root. An empty root stops watching. Drives the
// backend sees but this machine does not (remote backends) are skipped.
func (w *Watcher) Watch(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, dir := range w.dirs {
		_ = w.fs.Remove(dir)
	}
	w.dirs = nil
	w.root = ""

	if root == "" {
		return nil
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("drive %s is not a local directory", root)
	}

	w.root = root
	return w.addTree(root)
}

func (w *Watcher) Root() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

// addTree must be called with mu held.
func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if hidden(path) && path != root {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.dirs = append(w.dirs, path)
		return nil
	})
}

func (w *Watcher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	var fire <-chan time.Time
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ignore(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.followDir(event.Name)
			}
			if fire == nil {
				fire = time.After(w.debounce)
			}
			pending[event.Name] = struct{}{}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("drive watch error")
		case <-fire:
			fire = nil
			change := Change{Root: w.Root(), Paths: make([]string, 0, len(pending))}
			for p := range pending {
				change.Paths = append(change.Paths, p)
			}
			sort.Strings(change.Paths)
			pending = make(map[string]struct{})
			w.publish(change)
			logger.Debug().Int("files", len(change.Paths)).Msg("drive changed")
		}
	}
}

// publish replaces an unread batch instead of blocking the loop.
func (w *Watcher) publish(c Change) {
	for {
		select {
		case w.changes <- c:
			return
		default:
		}
		select {
		case old := <-w.changes:
			c.Paths = mergePaths(old.Paths, c.Paths)
		default:
		}
	}
}

func (w *Watcher) followDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.root == "" || !strings.HasPrefix(path, w.root) {
		return
	}
	_ = w.addTree(path)
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	return w.fs.Close()
}

func ignore(event fsnotify.Event) bool {
	if hidden(event.Name) {
		return true
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0
}

// hidden covers the backend's own .memory_index.db and its journal files.
func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func mergePaths(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, p := range append(append([]string{}, a...), b...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
