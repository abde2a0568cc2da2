// Package input turns raw UI events (button clicks, key presses, touch
// gestures and resizes) into navigation requests.
package input

import (
	"sync"
	"time"

	"github.com/ziadkadry99/flipbook/internal/navigator"
)

// Navigator is the part of the navigation controller the adapters drive.
type Navigator interface {
	Step(delta int) (*navigator.Completion, bool)
	RequestRerender() (*navigator.Completion, bool)
	State() navigator.State
}

// Button identifies a navigation control.
type Button string

const (
	ButtonPrevious Button = "prev"
	ButtonNext     Button = "next"
)

// Keys handled by KeyDown, as reported by KeyboardEvent.key.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// ButtonDelta maps a control to a page delta; 0 for unknown controls.
func ButtonDelta(b Button) int {
	switch b {
	case ButtonPrevious:
		return -1
	case ButtonNext:
		return 1
	default:
		return 0
	}
}

// KeyDelta maps a key to a page delta; 0 for keys that are not handled.
func KeyDelta(key string) int {
	switch key {
	case KeyArrowLeft:
		return -1
	case KeyArrowRight:
		return 1
	default:
		return 0
	}
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithSwipeRules overrides the swipe thresholds.
func WithSwipeRules(r SwipeRules) AdapterOption {
	return func(a *Adapter) {
		a.rules = r
	}
}

// WithResizeDebounce overrides the resize quiet period.
func WithResizeDebounce(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.debounce = d
	}
}

// Adapter routes UI events to a Navigator. Requests the navigator drops are
// not reported back.
type Adapter struct {
	nav      Navigator
	rules    SwipeRules
	debounce time.Duration
	resize   *Debouncer

	mu    sync.Mutex
	touch *TouchPoint
}

// NewAdapter returns an Adapter for nav.
func NewAdapter(nav Navigator, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		nav:      nav,
		rules:    DefaultSwipeRules(),
		debounce: DefaultResizeDebounce,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resize = NewDebouncer(a.debounce)
	return a
}

// Click handles a press of a navigation control.
func (a *Adapter) Click(b Button) {
	if delta := ButtonDelta(b); delta != 0 {
		a.nav.Step(delta)
	}
}

// KeyDown handles a key press and reports whether the key was consumed, in
// which case the surface should suppress its default action.
func (a *Adapter) KeyDown(key string) bool {
	delta := KeyDelta(key)
	if delta == 0 {
		return false
	}
	a.nav.Step(delta)
	return true
}

// TouchStart records the start of a gesture.
func (a *Adapter) TouchStart(p TouchPoint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.touch = &p
}

// TouchEnd completes a gesture started by TouchStart. An end without a start
// is ignored.
func (a *Adapter) TouchEnd(p TouchPoint) {
	a.mu.Lock()
	start := a.touch
	a.touch = nil
	a.mu.Unlock()

	if start == nil {
		return
	}
	if delta := a.rules.Classify(*start, p); delta != 0 {
		a.nav.Step(delta)
	}
}

// Resize schedules a debounced re-render. Nothing is scheduled until a
// document is loaded and a page has been sized once.
func (a *Adapter) Resize() {
	st := a.nav.State()
	if !st.Loaded() || !st.Sized {
		return
	}
	a.resize.Trigger(func() {
		a.nav.RequestRerender()
	})
}

// Close cancels a pending resize.
func (a *Adapter) Close() {
	a.resize.Stop()
}
