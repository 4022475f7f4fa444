package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for changes to settle before
// triggering a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher triggers a rebuild whenever files below a directory change.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  func(context.Context) error
}

func New(dir string, debounce time.Duration, rebuild func(context.Context) error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, debounce: debounce, rebuild: rebuild}
}

// Run watches until ctx is done. Rebuild errors are logged and never stop
// the watcher; rebuilds never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := addDirsRecursive(fw, w.dir); err != nil {
		return err
	}

	log := zerolog.Ctx(ctx)
	rebuildReq, trigger, stop := debouncer(w.debounce)
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				if err := w.rebuild(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("rebuild failed")
				}
			}
		}
	}()

	log.Info().Str("dir", w.dir).Msg("Watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				// new directories need their own watch
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := addDirsRecursive(fw, ev.Name); err != nil {
						log.Warn().Err(err).Str("dir", ev.Name).Msg("unable to watch directory")
					}
				}
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// debouncer returns a channel receiving one request per burst of trigger
// calls, the trigger itself, and a func stopping any pending timer.
func debouncer(delay time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}

	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}

	return req, trigger, stop
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
