package viewer

// Message types sent by the browser.
const (
	msgHello      = "hello"
	msgClick      = "click"
	msgKey        = "key"
	msgTouchStart = "touchstart"
	msgTouchEnd   = "touchend"
	msgResize     = "resize"
)

// Message types sent to the browser.
const (
	msgState = "state"
	msgFlip  = "flip"
	msgFrame = "frame"
	msgError = "error"
)

// clientMessage is the incoming WebSocket message format. Which fields are
// set depends on Type.
type clientMessage struct {
	Type    string  `json:"type"`
	Button  string  `json:"button,omitempty"`
	Key     string  `json:"key,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Time    float64 `json:"t,omitempty"` // client clock, milliseconds
	Width   float64 `json:"width,omitempty"`
	Density float64 `json:"density,omitempty"`
}

// stateMessage mirrors everything the page shows outside the canvas.
type stateMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Page      int    `json:"page"`
	Pages     int    `json:"pages"`
	Previous  bool   `json:"previous"`
	Next      bool   `json:"next"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
}

type flipMessage struct {
	Type      string `json:"type"`
	Direction string `json:"direction"`
}

// frameMessage announces the binary PNG message that follows it.
type frameMessage struct {
	Type         string `json:"type"`
	RenderWidth  int    `json:"render_width"`
	RenderHeight int    `json:"render_height"`
	CSSWidth     int    `json:"css_width"`
	CSSHeight    int    `json:"css_height"`
	Bytes        int    `json:"bytes"`
}

// errorMessage reports a protocol problem, not a document problem.
type errorMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
