package viewer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/flipbook/internal/frame"
	"github.com/ziadkadry99/flipbook/internal/input"
	"github.com/ziadkadry99/flipbook/internal/navigator"
)

// session is one browser tab: a websocket, its own controller and its own
// input adapters. It is the controller's View and Layout.
type session struct {
	id    string
	conn  *websocket.Conn
	debug bool

	writeMu sync.Mutex

	layoutMu sync.Mutex
	width    float64
	density  float64

	uiMu sync.Mutex
	ui   stateMessage

	ctrl   *navigator.Controller
	input  *input.Adapter
	canvas *frame.Canvas

	loadOnce sync.Once
	loading  sync.WaitGroup
}

func newSession(conn *websocket.Conn, opts Options) *session {
	s := &session{
		id:    uuid.NewString(),
		conn:  conn,
		debug: opts.Debug,
	}
	s.ui = stateMessage{Type: msgState, SessionID: s.id, Page: 1}
	s.canvas = frame.NewCanvas(s.sendFrame)
	s.ctrl = navigator.New(s, s.canvas, s,
		navigator.WithFlipDuration(opts.FlipDuration),
		navigator.WithDebug(opts.Debug),
	)
	s.input = input.NewAdapter(s.ctrl,
		input.WithSwipeRules(opts.Swipe),
		input.WithResizeDebounce(opts.ResizeDebounce),
	)
	return s
}

// start opens the document the first time the browser says hello.
func (s *session) start(ctx context.Context, opts Options) {
	s.loadOnce.Do(func() {
		s.loading.Add(1)
		go func() {
			defer s.loading.Done()
			if _, err := s.ctrl.Load(ctx, opts.Source, opts.Locator); err != nil && s.debug {
				log.Printf("viewer: session %s: %v", s.id, err)
			}
		}()
	})
}

// close waits for a pending load, then releases the controller. The caller
// must have cancelled the load context first.
func (s *session) close() {
	s.input.Close()
	s.loading.Wait()
	if err := s.ctrl.Close(); err != nil {
		log.Printf("viewer: session %s: closing document: %v", s.id, err)
	}
}

func (s *session) dispatch(ctx context.Context, msg clientMessage, opts Options) {
	switch msg.Type {
	case msgHello:
		s.setLayout(msg.Width, msg.Density)
		s.start(ctx, opts)
	case msgClick:
		s.input.Click(input.Button(msg.Button))
	case msgKey:
		s.input.KeyDown(msg.Key)
	case msgTouchStart:
		s.input.TouchStart(touchPoint(msg))
	case msgTouchEnd:
		s.input.TouchEnd(touchPoint(msg))
	case msgResize:
		s.setLayout(msg.Width, msg.Density)
		s.input.Resize()
	default:
		s.sendError("unknown message type: " + msg.Type)
	}
}

func touchPoint(msg clientMessage) input.TouchPoint {
	return input.TouchPoint{
		X:  msg.X,
		Y:  msg.Y,
		At: time.UnixMicro(int64(msg.Time * 1000)),
	}
}

func (s *session) setLayout(width, density float64) {
	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()
	s.width = width
	s.density = density
}

// ContainerWidth implements navigator.Layout.
func (s *session) ContainerWidth() float64 {
	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()
	return s.width
}

// PixelDensity implements navigator.Layout.
func (s *session) PixelDensity() float64 {
	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()
	return s.density
}

// SetLoading implements navigator.View.
func (s *session) SetLoading(loading bool) {
	s.updateUI(func(ui *stateMessage) { ui.Loading = loading })
}

// ShowError implements navigator.View.
func (s *session) ShowError(message string) {
	s.updateUI(func(ui *stateMessage) { ui.Error = message })
}

// HideError implements navigator.View.
func (s *session) HideError() {
	s.updateUI(func(ui *stateMessage) { ui.Error = "" })
}

// ShowPage implements navigator.View.
func (s *session) ShowPage(current, total int, nav navigator.Affordances) {
	s.updateUI(func(ui *stateMessage) {
		ui.Page = current
		ui.Pages = total
		ui.Previous = nav.Previous
		ui.Next = nav.Next
	})
}

// Flip implements navigator.View.
func (s *session) Flip(dir navigator.Direction) {
	s.write(flipMessage{Type: msgFlip, Direction: string(dir)})
}

// updateUI applies fn and publishes the new state. Publishing under uiMu
// keeps state messages in the order they were produced.
func (s *session) updateUI(fn func(*stateMessage)) {
	s.uiMu.Lock()
	defer s.uiMu.Unlock()
	fn(&s.ui)
	s.write(s.ui)
}

func (s *session) sendFrame(f frame.Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	header := frameMessage{
		Type:         msgFrame,
		RenderWidth:  f.Target.RenderWidth,
		RenderHeight: f.Target.RenderHeight,
		CSSWidth:     f.Target.CSSWidth,
		CSSHeight:    f.Target.CSSHeight,
		Bytes:        len(f.PNG),
	}
	if err := s.conn.WriteJSON(header); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, f.PNG)
}

func (s *session) sendError(message string) {
	s.write(errorMessage{Type: msgError, Content: message})
}

func (s *session) write(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(v); err != nil && s.debug {
		log.Printf("viewer: session %s: websocket write: %v", s.id, err)
	}
}
