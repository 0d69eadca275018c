package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fieldboard/fieldboard/pkg/debug"
)

// watchDebounce coalesces the write bursts editors produce when saving.
const watchDebounce = 250 * time.Millisecond

// Watch re-reads the config whenever the file at path changes and calls
// onChange with the result. It watches the parent directory rather than the
// file itself so atomic-rename saves keep working. The returned stop
// function releases the watcher. Reload failures are logged and skipped;
// the previous configuration stays in effect.
func Watch(path string, onChange func(Config)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	var mu sync.Mutex
	var timer *time.Timer
	var gen uint64

	reload := func() {
		cfg, err := Load(path)
		if err != nil {
			debug.Log("config: reload failed: %v", err)
			return
		}
		onChange(cfg)
	}

	// Trigger schedules a reload after the debounce window; a newer event
	// within the window supersedes it. The generation counter guards the
	// race where the timer fires while a newer trigger holds the lock.
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		gen++
		g := gen
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			mu.Lock()
			current := gen == g
			if current {
				timer = nil
			}
			mu.Unlock()
			if current {
				reload()
			}
		})
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					trigger()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				debug.Log("config: watcher error: %v", err)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		w.Close()
		mu.Lock()
		gen++
		if timer != nil {
			timer.Stop()
			timer = nil
		}
		mu.Unlock()
	}, nil
}
