package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ioutils "github.com/handiism/id3handler/internal/io"
	"github.com/handiism/id3handler/internal/tagging"
)

// DefaultSettle is used when Config.Settle is zero.
const DefaultSettle = 2 * time.Second

// Config holds watcher configuration.
type Config struct {
	// Dirs are the directories to watch.
	Dirs []string

	// Extensions selects the files handed to the handler.
	Extensions []string

	// Recursive also watches subdirectories, including ones created later.
	Recursive bool

	// Settle is how long a file must stay quiet before it is handled.
	Settle time.Duration
}

// Watcher hands new or changed audio files to a handler once they have
// stopped changing.
//
// Example:
//
//	w := watch.New(cfg, func(ctx context.Context, path string) {
//	    manager.Process(ctx, tagging.Request{Command: tagging.CommandUpdate}, path)
//	}, onProgress)
//	err := w.Run(ctx)
type Watcher struct {
	config     Config
	handle     func(ctx context.Context, path string)
	onProgress func(tagging.ProgressEvent)

	ctx     context.Context
	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
	wg      sync.WaitGroup
}

// New creates a Watcher.
func New(config Config, handle func(ctx context.Context, path string), onProgress func(tagging.ProgressEvent)) *Watcher {
	if config.Settle <= 0 {
		config.Settle = DefaultSettle
	}
	if len(config.Extensions) == 0 {
		config.Extensions = ioutils.DefaultAudioExtensions
	}
	return &Watcher{
		config:     config,
		handle:     handle,
		onProgress: onProgress,
		ctx:        context.Background(),
		pending:    make(map[string]*time.Timer),
	}
}

// Run watches until ctx is cancelled. Pending files are dropped on
// shutdown; handlers already running are waited for.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	w.ctx = ctx
	for _, dir := range w.config.Dirs {
		if err := w.addDir(watcher, dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				w.stop()
				return nil
			}
			w.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				w.stop()
				return nil
			}
			w.progress(tagging.ProgressEvent{Message: fmt.Sprintf("Watcher error: %v", err), Level: tagging.LevelWarning})
		}
	}
}

func (w *Watcher) addDir(watcher *fsnotify.Watcher, root string) error {
	if !w.config.Recursive {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		w.progress(tagging.ProgressEvent{Message: fmt.Sprintf("Watching %s", root), Level: tagging.LevelInfo})
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.progress(tagging.ProgressEvent{Message: fmt.Sprintf("Watching %s", path), Level: tagging.LevelVerbose})
		return nil
	})
}

// handleEvent schedules, reschedules or cancels the handling of one path.
// watcher may be nil, in which case new directories are not followed.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	w.progress(tagging.ProgressEvent{Message: fmt.Sprintf("Watcher event: %s on %s", event.Op, event.Name), Level: tagging.LevelVerbose})

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.cancel(event.Name)
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if event.Has(fsnotify.Create) && w.config.Recursive && watcher != nil {
				if err := w.addDir(watcher, event.Name); err != nil {
					w.progress(tagging.ProgressEvent{Message: err.Error(), Level: tagging.LevelWarning})
				}
			}
			return
		}
		if ioutils.IsAudioFile(event.Name, w.config.Extensions) {
			w.schedule(event.Name)
		}
	}
}

// schedule runs the handler for path after the settle delay, restarting
// the delay when path is already pending.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.config.Settle, func() {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return
		}
		delete(w.pending, path)
		w.wg.Add(1)
		w.mu.Unlock()

		defer w.wg.Done()
		w.handle(w.ctx, path)
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

// Pending returns the number of files waiting for their settle delay.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Watcher) stop() {
	w.mu.Lock()
	w.closed = true
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Watcher) progress(event tagging.ProgressEvent) {
	if w.onProgress != nil {
		w.onProgress(event)
	}
}
