package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// ChangeType classifies a filesystem change.
type ChangeType string

// Recognised change types.
const (
	// ChangeCreated means a new file appeared.
	ChangeCreated ChangeType = "created"

	// ChangeUpdated means an existing file was written to.
	ChangeUpdated ChangeType = "updated"

	// ChangeDeleted means a file was removed or renamed away.
	ChangeDeleted ChangeType = "deleted"
)

// Change is a single observed filesystem change.
type Change struct {
	// Path is the absolute path of the changed file.
	Path string

	// Type classifies the change.
	Type ChangeType
}

// defaultDebounce coalesces write bursts for a single path.
const defaultDebounce = 500 * time.Millisecond

// defaultExtensions are the file extensions watched by default.
var defaultExtensions = []string{".txt", ".md"}

// Watcher observes a directory tree and reports changes to files with
// watched extensions. Hidden files and directories are skipped.
type Watcher struct {
	root       string
	extensions map[string]struct{}
	debounce   time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithExtensions overrides the watched file extensions.
func WithExtensions(exts ...string) WatcherOption {
	return func(w *Watcher) {
		w.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			w.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
}

// WithDebounce overrides the write-coalescing interval.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher rooted at the given directory.
func NewWatcher(root string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", domain.ErrInvalidInput, abs)
	}

	w := &Watcher{
		root:     abs,
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
	}
	WithExtensions(defaultExtensions...)(w)

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Run watches the directory tree until the context is cancelled,
// invoking handle for every observed change. Create and write events
// for the same path are debounced; deletions are reported immediately.
func (w *Watcher) Run(ctx context.Context, handle func(Change)) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer notifier.Close()

	if err := w.addRecursive(notifier, w.root); err != nil {
		return err
	}

	logger.Info("Watching %s", w.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			w.handleEvent(notifier, event, handle)

		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(notifier *fsnotify.Watcher, event fsnotify.Event, handle func(Change)) {
	// New directories need to be added to the watch set before any
	// files inside them produce events.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !isHidden(event.Name) {
				if err := w.addRecursive(notifier, event.Name); err != nil {
					logger.Warn("Watch %s: %v", event.Name, err)
				}
			}
			return
		}
	}

	change, ok := w.classify(event)
	if !ok {
		return
	}

	if change.Type == ChangeDeleted {
		w.cancelPending(change.Path)
		handle(change)
		return
	}

	w.schedule(change, handle)
}

// classify maps an fsnotify event to a Change, filtering out paths the
// watcher does not care about.
func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	if isHidden(event.Name) {
		return Change{}, false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	if _, ok := w.extensions[ext]; !ok {
		return Change{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		return Change{Path: event.Name, Type: ChangeCreated}, true
	case event.Op.Has(fsnotify.Write):
		return Change{Path: event.Name, Type: ChangeUpdated}, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return Change{Path: event.Name, Type: ChangeDeleted}, true
	default:
		return Change{}, false
	}
}

// schedule arms a debounce timer for the path, replacing any pending one.
func (w *Watcher) schedule(change Change, handle func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[change.Path]; ok {
		timer.Stop()
	}
	w.timers[change.Path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, change.Path)
		w.mu.Unlock()
		handle(change)
	})
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) addRecursive(notifier *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		if err := notifier.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
		return nil
	})
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
