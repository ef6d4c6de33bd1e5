// Package watchers triggers panel reloads when the working tree changes.
package watchers

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

// RepoWatcher observes one repository worktree recursively and fires a
// debounced callback on file activity. Events under .git and common build
// output directories are ignored.
type RepoWatcher struct {
	root     string
	onChange func()
	logger   logging.Logger
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
}

func New(root string, onChange func(), logger logging.Logger) *RepoWatcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &RepoWatcher{root: root, onChange: onChange, logger: logger, debounce: 200 * time.Millisecond}
}

// SetDebounce overrides the notification delay; values <= 0 are ignored.
func (w *RepoWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	if d > 0 {
		w.debounce = d
	}
	w.mu.Unlock()
}

// Start begins watching. Subdirectory registration failures are logged and
// skipped; watching as much of the tree as possible beats failing outright.
func (w *RepoWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()
	if err := addRecursive(watcher, w.root); err != nil {
		w.logger.Warn("watcher setup incomplete", "root", w.root, "error", err)
	}
	go w.observe(watcher)
	return nil
}

// Stop closes the watcher and cancels any pending notification.
func (w *RepoWatcher) Stop() {
	w.mu.Lock()
	watcher := w.watcher
	timer := w.timer
	w.watcher = nil
	w.timer = nil
	w.mu.Unlock()
	if timer != nil {
		timer.Stop()
	}
	if watcher != nil {
		_ = watcher.Close()
	}
}

func (w *RepoWatcher) observe(watcher *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if isIgnored(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, ev.Name)
				}
			}
			w.schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "root", w.root, "error", err)
		}
	}
}

func (w *RepoWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		_ = watcher.Add(path)
		return nil
	})
}

func isIgnored(path string) bool {
	if path == "" {
		return false
	}
	sep := string(filepath.Separator)
	for _, dir := range []string{".git", "node_modules", "dist", "build", ".cache"} {
		if strings.Contains(path, sep+dir+sep) {
			return true
		}
	}
	switch filepath.Base(path) {
	case ".git", "node_modules", "dist", "build", ".cache":
		return true
	}
	return false
}
