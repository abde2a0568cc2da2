package mcp

import (
	"sync"

	"github.com/ziadkadry99/flipbook/internal/navigator"
)

// recordingView keeps what a browser would display so tool results can
// report it.
type recordingView struct {
	mu      sync.Mutex
	loading bool
	errMsg  string
	current int
	total   int
	nav     navigator.Affordances
	flip    navigator.Direction
}

func (v *recordingView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = loading
}

func (v *recordingView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = message
}

func (v *recordingView) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = ""
}

func (v *recordingView) ShowPage(current, total int, nav navigator.Affordances) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current, v.total, v.nav = current, total, nav
}

func (v *recordingView) Flip(dir navigator.Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flip = dir
}

func (v *recordingView) errorMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

func (v *recordingView) affordances() navigator.Affordances {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nav
}

// layout is the fixed, tool-adjustable container the pages are fitted to.
type layout struct {
	mu      sync.Mutex
	width   float64
	density float64
}

func (l *layout) ContainerWidth() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.width
}

func (l *layout) PixelDensity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.density
}

func (l *layout) set(width, density float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if width > 0 {
		l.width = width
	}
	if density > 0 {
		l.density = density
	}
}
