package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/flipbook/internal/document"
	"github.com/ziadkadry99/flipbook/internal/navigator"
	"github.com/ziadkadry99/flipbook/internal/viewport"
)

type stubSource struct {
	pages int
	err   error
}

func (s *stubSource) Open(_ context.Context, locator string) (document.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &stubDoc{pages: s.pages}, nil
}

type stubDoc struct {
	mu     sync.Mutex
	pages  int
	closed bool
}

func (d *stubDoc) PageCount() int { return d.pages }

func (d *stubDoc) Page(_ context.Context, n int) (document.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, document.ErrClosed
	}
	return stubPage(n), nil
}

func (d *stubDoc) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

type stubPage int

func (p stubPage) Number() int { return int(p) }

func (p stubPage) IntrinsicSize() viewport.Size {
	return viewport.Size{Width: 200, Height: 100}
}

func (p stubPage) RenderInto(_ context.Context, c document.Canvas, params document.RenderParams) error {
	return c.Draw(image.NewRGBA(image.Rect(0, 0, params.Width, params.Height)))
}

func setupServer(t *testing.T, src document.Source) (*Viewer, *httptest.Server) {
	t.Helper()
	v := New(Options{Locator: "book.pdf", Source: src, FlipDuration: 10 * time.Millisecond})
	r := chi.NewRouter()
	v.RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return v, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/viewer"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// received is one server message: either a decoded JSON message or the
// binary frame that followed a frame header.
type received struct {
	state  *stateMessage
	frame  *frameMessage
	flip   *flipMessage
	err    *errorMessage
	binary []byte
}

func readMessage(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind == websocket.BinaryMessage {
		return received{binary: data}
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		t.Fatalf("decoding message %s: %v", data, err)
	}
	var r received
	switch head.Type {
	case msgState:
		r.state = &stateMessage{}
		err = json.Unmarshal(data, r.state)
	case msgFrame:
		r.frame = &frameMessage{}
		err = json.Unmarshal(data, r.frame)
	case msgFlip:
		r.flip = &flipMessage{}
		err = json.Unmarshal(data, r.flip)
	case msgError:
		r.err = &errorMessage{}
		err = json.Unmarshal(data, r.err)
	default:
		t.Fatalf("unexpected message type %q", head.Type)
	}
	if err != nil {
		t.Fatalf("decoding %s message: %v", head.Type, err)
	}
	return r
}

// settle reads until a state message reports no loading on the given page,
// returning everything read on the way.
func settle(t *testing.T, conn *websocket.Conn, page int) []received {
	t.Helper()
	var all []received
	for {
		r := readMessage(t, conn)
		all = append(all, r)
		if r.state != nil && !r.state.Loading && r.state.Pages > 0 && r.state.Page == page {
			return all
		}
		if r.state != nil && r.state.Error != "" && !r.state.Loading {
			return all
		}
	}
}

func waitIdle(t *testing.T, v *Viewer) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		v.mu.Lock()
		idle := len(v.sessions) > 0
		for _, s := range v.sessions {
			if s.ctrl.State().Phase != navigator.Idle {
				idle = false
			}
		}
		v.mu.Unlock()
		if idle {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("session never became idle")
}

func lastFrame(t *testing.T, msgs []received) (frameMessage, []byte) {
	t.Helper()
	for i := len(msgs) - 2; i >= 0; i-- {
		if msgs[i].frame != nil && msgs[i+1].binary != nil {
			return *msgs[i].frame, msgs[i+1].binary
		}
	}
	t.Fatal("no frame received")
	return frameMessage{}, nil
}

func TestServeIndex(t *testing.T) {
	_, server := setupServer(t, &stubSource{pages: 1})

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}
}

func TestHelloRendersFirstPage(t *testing.T) {
	_, server := setupServer(t, &stubSource{pages: 3})
	conn := dial(t, server)

	if err := conn.WriteJSON(clientMessage{Type: msgHello, Width: 400, Density: 2}); err != nil {
		t.Fatalf("write: %v", err)
	}

	msgs := settle(t, conn, 1)
	final := msgs[len(msgs)-1].state
	if final.Pages != 3 || final.Previous || !final.Next {
		t.Errorf("unexpected final state: %+v", *final)
	}
	if final.SessionID == "" {
		t.Error("expected a session id")
	}

	header, data := lastFrame(t, msgs)
	if header.RenderWidth != 800 || header.RenderHeight != 400 {
		t.Errorf("render size = %dx%d, want 800x400", header.RenderWidth, header.RenderHeight)
	}
	if header.CSSWidth != 400 || header.CSSHeight != 200 {
		t.Errorf("css size = %dx%d, want 400x200", header.CSSWidth, header.CSSHeight)
	}
	if header.Bytes != len(data) {
		t.Errorf("header announces %d bytes, got %d", header.Bytes, len(data))
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("frame is not a png: %v", err)
	}
}

func TestClickNextFlipsForward(t *testing.T) {
	v, server := setupServer(t, &stubSource{pages: 2})
	conn := dial(t, server)

	conn.WriteJSON(clientMessage{Type: msgHello, Width: 300, Density: 1})
	settle(t, conn, 1)
	waitIdle(t, v)

	if err := conn.WriteJSON(clientMessage{Type: msgClick, Button: "next"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msgs := settle(t, conn, 2)

	var flipped bool
	for _, m := range msgs {
		if m.flip != nil && m.flip.Direction == string(navigator.FlipForward) {
			flipped = true
		}
	}
	if !flipped {
		t.Error("expected a forward flip message")
	}
	final := msgs[len(msgs)-1].state
	if !final.Previous || final.Next {
		t.Errorf("on the last page expected previous only, got %+v", *final)
	}
	lastFrame(t, msgs)
}

func TestOpenFailureShowsError(t *testing.T) {
	_, server := setupServer(t, &stubSource{err: errors.New("no such file")})
	conn := dial(t, server)

	conn.WriteJSON(clientMessage{Type: msgHello, Width: 300, Density: 1})

	for {
		r := readMessage(t, conn)
		if r.state == nil || r.state.Error == "" {
			continue
		}
		if !strings.Contains(r.state.Error, `"book.pdf"`) {
			t.Errorf("error should name the document, got %q", r.state.Error)
		}
		if r.state.Next || r.state.Previous {
			t.Errorf("no navigation should be offered, got %+v", *r.state)
		}
		return
	}
}

func TestUnknownMessageType(t *testing.T) {
	_, server := setupServer(t, &stubSource{pages: 1})
	conn := dial(t, server)

	if err := conn.WriteJSON(clientMessage{Type: "zoom"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := readMessage(t, conn)
	if r.err == nil {
		t.Fatalf("expected an error message, got %+v", r)
	}
	if !strings.Contains(r.err.Content, "unknown message type") {
		t.Errorf("unexpected error content %q", r.err.Content)
	}
}

func TestInvalidJSON(t *testing.T) {
	_, server := setupServer(t, &stubSource{pages: 1})
	conn := dial(t, server)

	conn.WriteMessage(websocket.TextMessage, []byte("{not json"))

	r := readMessage(t, conn)
	if r.err == nil || r.err.Content != "invalid message format" {
		t.Fatalf("expected invalid format error, got %+v", r)
	}
}

func TestStatusEndpoint(t *testing.T) {
	v, server := setupServer(t, &stubSource{pages: 4})
	conn := dial(t, server)
	conn.WriteJSON(clientMessage{Type: msgHello, Width: 300, Density: 1})
	settle(t, conn, 1)
	waitIdle(t, v)

	resp, err := http.Get(server.URL + "/api/viewer/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if status.Document != "book.pdf" {
		t.Errorf("document = %q, want book.pdf", status.Document)
	}
	if len(status.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(status.Sessions))
	}
	if s := status.Sessions[0]; s.Phase != "idle" || s.State.TotalPages != 4 {
		t.Errorf("unexpected session status %+v", s)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Locator != document.DefaultLocator {
		t.Errorf("locator = %q, want %q", o.Locator, document.DefaultLocator)
	}
	if o.Source == nil {
		t.Error("expected a default source")
	}
	if o.Swipe.MaxDuration != 600*time.Millisecond || o.Swipe.MinDistance != 40 || o.Swipe.Ratio != 1.3 {
		t.Errorf("unexpected swipe defaults %+v", o.Swipe)
	}
	if o.FlipDuration != navigator.DefaultFlipDuration {
		t.Errorf("flip duration = %v", o.FlipDuration)
	}
}
