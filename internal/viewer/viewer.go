// Package viewer serves the browser viewer page and runs one navigation
// session per websocket connection. The browser only paints: every click,
// key press, touch and resize is forwarded here, and rendered pages come back
// as PNG frames.
package viewer

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/flipbook/internal/document"
	"github.com/ziadkadry99/flipbook/internal/input"
	"github.com/ziadkadry99/flipbook/internal/navigator"
)

//go:embed index.html
var indexHTML []byte

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Options configures every session the Viewer starts. Zero values fall back
// to the stock behaviour.
type Options struct {
	Locator        string
	Source         document.Source
	Swipe          input.SwipeRules
	ResizeDebounce time.Duration
	FlipDuration   time.Duration
	Debug          bool
}

func (o Options) withDefaults() Options {
	if o.Locator == "" {
		o.Locator = document.DefaultLocator
	}
	if o.Source == nil {
		o.Source = document.NewFitzSource()
	}
	def := input.DefaultSwipeRules()
	if o.Swipe.MaxDuration <= 0 {
		o.Swipe.MaxDuration = def.MaxDuration
	}
	if o.Swipe.MinDistance <= 0 {
		o.Swipe.MinDistance = def.MinDistance
	}
	if o.Swipe.Ratio <= 0 {
		o.Swipe.Ratio = def.Ratio
	}
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = input.DefaultResizeDebounce
	}
	if o.FlipDuration <= 0 {
		o.FlipDuration = navigator.DefaultFlipDuration
	}
	return o
}

// Viewer provides the viewer page and its websocket endpoint.
type Viewer struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a Viewer.
func New(opts Options) *Viewer {
	return &Viewer{
		opts:     opts.withDefaults(),
		sessions: make(map[string]*session),
	}
}

// RegisterRoutes mounts the viewer routes onto the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/", v.ServeIndex)
	r.Get("/api/viewer/status", v.handleStatus)
	r.Get("/ws/viewer", v.handleWebSocket)
}

// ServeIndex serves the embedded viewer page.
func (v *Viewer) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// statusResponse is the JSON response for the status endpoint.
type statusResponse struct {
	Document string          `json:"document"`
	Sessions []sessionStatus `json:"sessions"`
}

type sessionStatus struct {
	ID    string          `json:"id"`
	Phase string          `json:"phase"`
	State navigator.State `json:"state"`
}

func (v *Viewer) handleStatus(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	resp := statusResponse{Document: v.opts.Locator, Sessions: make([]sessionStatus, 0, len(v.sessions))}
	for id, s := range v.sessions {
		st := s.ctrl.State()
		resp.Sessions = append(resp.Sessions, sessionStatus{ID: id, Phase: st.Phase.String(), State: st})
	}
	v.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (v *Viewer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	s := newSession(conn, v.opts)
	v.track(s)
	defer func() {
		cancel()
		s.close()
		v.untrack(s)
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("viewer: websocket read: %v", err)
			}
			return
		}

		var req clientMessage
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError("invalid message format")
			continue
		}
		s.dispatch(ctx, req, v.opts)
	}
}

func (v *Viewer) track(s *session) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sessions[s.id] = s
}

func (v *Viewer) untrack(s *session) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.sessions, s.id)
}

// SessionCount returns the number of connected viewers.
func (v *Viewer) SessionCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.sessions)
}
