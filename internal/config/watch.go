package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file every time it changes on disk.
type Watcher struct {
	watch *fsnotify.Watcher
	path  string
	done  chan struct{}
	wg    sync.WaitGroup
}

// Watch calls onChange with the reloaded configuration, or the load error,
// after each write to path. onChange runs on the watcher goroutine.
//
// The parent directory is watched so editors that replace the file on save
// are still seen.
func Watch(path string, onChange func(*Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watch.Add(filepath.Dir(abs)); err != nil {
		watch.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := &Watcher{watch: watch, path: abs, done: make(chan struct{})}
	w.wg.Add(1)
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(*Config, error)) {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watch.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				onChange(LoadFile(w.path))
			}
		case err, ok := <-w.watch.Errors:
			if !ok {
				return
			}
			onChange(nil, err)
		}
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Close stops watching and waits for a running callback to return.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watch.Close()
	w.wg.Wait()
	return err
}
