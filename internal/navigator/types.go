package navigator

import "time"

// Phase is the controller's lifecycle state.
type Phase int

const (
	Unloaded Phase = iota
	Idle
	Rendering
)

func (p Phase) String() string {
	switch p {
	case Unloaded:
		return "unloaded"
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Direction selects the page-turn animation.
type Direction string

const (
	NoFlip       Direction = ""
	FlipForward  Direction = "forward"
	FlipBackward Direction = "backward"
)

// DefaultFlipDuration is how long the flip animation class stays applied
// after a page finishes rendering.
const DefaultFlipDuration = 380 * time.Millisecond

// User-visible error texts. Only "can't open" and "can't render" are
// distinguished.
const (
	OpenFailedMessage   = "Could not open the document. Make sure %q exists and is accessible."
	RenderFailedMessage = "Could not render page %d of the document."
)

// State is a snapshot of the navigation state.
type State struct {
	Phase          Phase `json:"-"`
	CurrentPage    int   `json:"current_page"`
	TotalPages     int   `json:"total_pages"`
	RenderInFlight bool  `json:"render_in_flight"`
	// Sized reports whether a page's intrinsic size has been seen, which is
	// what a resize needs to re-render.
	Sized bool `json:"sized"`
}

// Loaded reports whether a document is open.
func (s State) Loaded() bool { return s.Phase != Unloaded }

// Affordances is the enabled state of the navigation controls.
type Affordances struct {
	Previous bool `json:"previous"`
	Next     bool `json:"next"`
}

// AffordancesFor derives the control state from page bounds only. A render in
// flight does not disable the controls; requests made meanwhile are dropped.
func AffordancesFor(s State) Affordances {
	return Affordances{
		Previous: s.CurrentPage > 1,
		Next:     s.Loaded() && s.CurrentPage < s.TotalPages,
	}
}

// View is the UI surface the controller drives. Implementations must be safe
// to call from the render goroutine.
type View interface {
	SetLoading(loading bool)
	ShowError(message string)
	HideError()
	ShowPage(current, total int, nav Affordances)
	// Flip starts the page-turn animation, or clears it when dir is NoFlip.
	Flip(dir Direction)
}

// Layout reports the display geometry at render time.
type Layout interface {
	ContainerWidth() float64
	PixelDensity() float64
}

// FixedLayout is a Layout with constant geometry.
type FixedLayout struct {
	Width   float64
	Density float64
}

func (l FixedLayout) ContainerWidth() float64 { return l.Width }
func (l FixedLayout) PixelDensity() float64   { return l.Density }
