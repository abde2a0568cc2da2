package input

import (
	"math"
	"time"
)

// Swipe thresholds.
const (
	DefaultSwipeMaxDuration = 600 * time.Millisecond
	DefaultSwipeMinDistance = 40.0
	DefaultSwipeRatio       = 1.3
)

// SwipeRules decides when a touch gesture counts as a horizontal swipe.
// Distances are in CSS pixels.
type SwipeRules struct {
	MaxDuration time.Duration
	MinDistance float64
	// Ratio is how many times larger the horizontal displacement must be
	// than the vertical one.
	Ratio float64
}

// DefaultSwipeRules returns the stock thresholds.
func DefaultSwipeRules() SwipeRules {
	return SwipeRules{
		MaxDuration: DefaultSwipeMaxDuration,
		MinDistance: DefaultSwipeMinDistance,
		Ratio:       DefaultSwipeRatio,
	}
}

// TouchPoint is one end of a gesture.
type TouchPoint struct {
	X, Y float64
	At   time.Time
}

// Classify returns the page delta for a gesture: +1 for a leftward swipe
// (next page), -1 for a rightward one, 0 if it is not a swipe. All three
// comparisons are strict.
func (r SwipeRules) Classify(start, end TouchPoint) int {
	dx := end.X - start.X
	dy := end.Y - start.Y
	dt := end.At.Sub(start.At)

	absX, absY := math.Abs(dx), math.Abs(dy)
	if dt >= r.MaxDuration || absX <= r.MinDistance || absX <= absY*r.Ratio {
		return 0
	}
	if dx < 0 {
		return 1
	}
	return -1
}
