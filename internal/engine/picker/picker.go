// Package picker opens native file dialogs without blocking the render loop.
package picker

import (
	"errors"
	"sync"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/logger"
)

// Filter restricts a dialog to files with the given extensions.
type Filter struct {
	Desc       string
	Extensions []string
}

var (
	Images = Filter{Desc: "Images", Extensions: []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp"}}
	Sounds = Filter{Desc: "WAV Audio", Extensions: []string{"wav"}}
)

// Picker shows one dialog at a time. The result is queued for the main
// thread, since SDL window operations must not run on the dialog goroutine.
type Picker struct {
	mu      sync.Mutex
	busy    bool
	pending string
	ready   bool
}

// Open shows a file dialog on its own goroutine. It does nothing while
// another dialog is open.
func (p *Picker) Open(title string, f Filter) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return
	}
	p.busy = true
	p.mu.Unlock()

	go func() {
		filename, err := dialog.File().
			Filter(f.Desc, f.Extensions...).
			Filter("All Files", "*").
			Title(title).
			Load()
		if err != nil && !errors.Is(err, dialog.ErrCancelled) {
			logger.Warn("file dialog failed", zap.Error(err))
		}
		p.deliver(filename, err == nil)
	}()
}

func (p *Picker) deliver(path string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if ok && path != "" {
		p.pending, p.ready = path, true
	}
}

// Poll returns the path chosen since the last call, if any.
func (p *Picker) Poll() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return "", false
	}
	path := p.pending
	p.pending, p.ready = "", false
	return path, true
}

// Busy reports whether a dialog is open.
func (p *Picker) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}
