package carousel

import "math"

// MinSwipeDistance is the horizontal travel, in pixels, below which a
// gesture is treated as a click.
const MinSwipeDistance = 10.0

// Gesture is the pointer travel between press and release.
type Gesture struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// SwipeDirection is the classified direction of a gesture.
type SwipeDirection int

const (
	SwipeNone SwipeDirection = iota
	SwipeLeft
	SwipeRight
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	default:
		return "none"
	}
}

// Classify returns the swipe direction of g. Horizontal travel must reach
// MinSwipeDistance and dominate vertical travel.
func Classify(g Gesture) SwipeDirection {
	ax, ay := math.Abs(g.DX), math.Abs(g.DY)
	if ax < MinSwipeDistance || ax <= ay {
		return SwipeNone
	}
	if g.DX < 0 {
		return SwipeLeft
	}
	return SwipeRight
}

// Swipe applies g: left goes to the next slide, right to the previous one.
// consumed is false for an unrecognised gesture, which the caller should
// handle as a click.
func (c *Carousel) Swipe(g Gesture) (index int, consumed bool) {
	switch Classify(g) {
	case SwipeLeft:
		return c.Next(), true
	case SwipeRight:
		return c.Prev(), true
	default:
		return c.State().Index, false
	}
}
