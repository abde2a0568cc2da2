package navigator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/flipbook/internal/document"
	"github.com/ziadkadry99/flipbook/internal/viewport"
)

// ErrAlreadyLoaded is returned by Load after the first call.
var ErrAlreadyLoaded = errors.New("navigator: document already loaded")

// Option configures a Controller.
type Option func(*Controller)

// WithFlipDuration sets how long the flip animation stays applied.
func WithFlipDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.flipDuration = d
	}
}

// WithDebug logs dropped requests and render timings.
func WithDebug(debug bool) Option {
	return func(c *Controller) {
		c.debug = debug
	}
}

// Controller is the page navigation state machine. It owns one document for
// its lifetime and lets at most one render run at a time; requests arriving
// while a render is in flight are dropped.
type Controller struct {
	view   View
	canvas document.Canvas
	layout Layout

	flipDuration time.Duration
	debug        bool

	mu        sync.Mutex
	opened    bool // Load has been called
	doc       document.Document
	locator   string
	current   int
	total     int
	inFlight  bool
	sized     bool
	flipTimer *time.Timer
}

// New creates an unloaded controller.
func New(view View, canvas document.Canvas, layout Layout, opts ...Option) *Controller {
	c := &Controller{
		view:         view,
		canvas:       canvas,
		layout:       layout,
		flipDuration: DefaultFlipDuration,
		current:      1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load opens the document and starts rendering page 1. The returned
// Completion tracks that first render. If the document cannot be opened the
// controller stays unloaded for good and the error is shown on the view.
func (c *Controller) Load(ctx context.Context, src document.Source, locator string) (*Completion, error) {
	if locator == "" {
		locator = document.DefaultLocator
	}

	c.mu.Lock()
	if c.opened {
		c.mu.Unlock()
		return nil, ErrAlreadyLoaded
	}
	c.opened = true
	c.locator = locator
	c.mu.Unlock()

	c.view.SetLoading(true)

	doc, err := src.Open(ctx, locator)
	if err == nil && doc.PageCount() < 1 {
		doc.Close()
		err = &document.OpenError{Locator: locator, Err: document.ErrEmptySource}
	}
	if err != nil {
		if !document.IsOpenError(err) {
			err = &document.OpenError{Locator: locator, Err: err}
		}
		log.Printf("navigator: %v", err)
		c.view.SetLoading(false)
		c.view.ShowError(fmt.Sprintf(OpenFailedMessage, locator))
		return nil, err
	}

	c.mu.Lock()
	c.doc = doc
	c.total = doc.PageCount()
	c.current = 1
	c.inFlight = true
	st := c.stateLocked()
	c.mu.Unlock()

	c.view.ShowPage(st.CurrentPage, st.TotalPages, AffordancesFor(st))

	done := newCompletion()
	go c.render(doc, 1, NoFlip, done)
	return done, nil
}

// RequestGoTo asks for target to be shown. It reports whether the request was
// accepted; a rejected request changes nothing.
func (c *Controller) RequestGoTo(target int) (*Completion, bool) {
	return c.request(func(cur int) (int, Direction) {
		switch {
		case target > cur:
			return target, FlipForward
		case target < cur:
			return target, FlipBackward
		default:
			return target, NoFlip
		}
	})
}

// Step moves delta pages from the current one with the matching flip.
func (c *Controller) Step(delta int) (*Completion, bool) {
	return c.request(func(cur int) (int, Direction) {
		if delta > 0 {
			return cur + delta, FlipForward
		}
		return cur + delta, FlipBackward
	})
}

// RequestRerender renders the current page again at the current layout.
func (c *Controller) RequestRerender() (*Completion, bool) {
	return c.request(func(cur int) (int, Direction) { return cur, NoFlip })
}

// State returns a snapshot of the navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Locator is the locator passed to Load.
func (c *Controller) Locator() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locator
}

// Close releases the document. Pending flip timers are stopped; a render in
// flight still completes but will fail to fetch its page.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flipTimer != nil {
		c.flipTimer.Stop()
		c.flipTimer = nil
	}
	if c.doc == nil {
		return nil
	}
	return c.doc.Close()
}

func (c *Controller) stateLocked() State {
	st := State{
		CurrentPage:    c.current,
		TotalPages:     c.total,
		RenderInFlight: c.inFlight,
		Sized:          c.sized,
	}
	switch {
	case c.doc == nil:
		st.Phase = Unloaded
	case c.inFlight:
		st.Phase = Rendering
	default:
		st.Phase = Idle
	}
	return st
}

// request is the single guard: the check and the transition to Rendering
// happen under one lock, before any suspension point.
func (c *Controller) request(pick func(current int) (int, Direction)) (*Completion, bool) {
	c.mu.Lock()
	if c.doc == nil || c.inFlight {
		loaded, busy := c.doc != nil, c.inFlight
		c.mu.Unlock()
		c.debugf("request dropped (loaded=%v, in flight=%v)", loaded, busy)
		return nil, false
	}
	target, dir := pick(c.current)
	if total := c.total; target < 1 || target > total {
		c.mu.Unlock()
		c.debugf("request for page %d dropped: out of range 1..%d", target, total)
		return nil, false
	}
	c.inFlight = true
	doc := c.doc
	c.mu.Unlock()

	done := newCompletion()
	go c.render(doc, target, dir, done)
	return done, true
}

// render runs one accepted request to completion. Renders are not
// cancellable, so they run on a background context.
func (c *Controller) render(doc document.Document, target int, dir Direction, done *Completion) {
	start := time.Now()
	c.view.SetLoading(true)
	c.view.HideError()

	err := c.paint(context.Background(), doc, target, dir)

	c.mu.Lock()
	if err == nil {
		c.current = target
	}
	st := c.stateLocked()
	c.mu.Unlock()

	if err != nil {
		log.Printf("navigator: %v", err)
		c.view.ShowError(fmt.Sprintf(RenderFailedMessage, target))
	} else {
		c.view.ShowPage(st.CurrentPage, st.TotalPages, AffordancesFor(st))
		c.debugf("page %d rendered in %v", target, time.Since(start))
	}
	c.view.SetLoading(false)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	done.finish(err)
}

func (c *Controller) paint(ctx context.Context, doc document.Document, target int, dir Direction) error {
	page, err := doc.Page(ctx, target)
	if err != nil {
		var pfe *document.PageFetchError
		if !errors.As(err, &pfe) {
			err = &document.PageFetchError{Page: target, Err: err}
		}
		return err
	}

	intrinsic := page.IntrinsicSize()
	c.mu.Lock()
	c.sized = true
	c.mu.Unlock()

	width := c.layout.ContainerWidth()
	if width <= 0 || intrinsic.Width <= 0 {
		return &document.RenderError{Page: target, Err: fmt.Errorf("cannot fit page of width %v into container of width %v", intrinsic.Width, width)}
	}
	rt := viewport.Compute(intrinsic, width, c.layout.PixelDensity())

	if err := c.canvas.Resize(rt); err != nil {
		return &document.RenderError{Page: target, Err: err}
	}

	c.startFlip(dir)

	if err := page.RenderInto(ctx, c.canvas, document.ParamsFor(rt)); err != nil {
		var re *document.RenderError
		if !errors.As(err, &re) {
			err = &document.RenderError{Page: target, Err: err}
		}
		return err
	}

	c.scheduleFlipClear(dir)
	return nil
}

func (c *Controller) startFlip(dir Direction) {
	if dir == NoFlip {
		return
	}
	c.mu.Lock()
	if c.flipTimer != nil {
		c.flipTimer.Stop()
		c.flipTimer = nil
	}
	c.mu.Unlock()
	c.view.Flip(dir)
}

func (c *Controller) scheduleFlipClear(dir Direction) {
	if dir == NoFlip {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flipTimer = time.AfterFunc(c.flipDuration, func() {
		c.view.Flip(NoFlip)
	})
}

func (c *Controller) debugf(format string, args ...any) {
	if c.debug {
		log.Printf("navigator: "+format, args...)
	}
}
