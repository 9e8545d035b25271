// Package carousel implements the self-advancing news rotator: autoplay,
// click and swipe navigation, and an attention pulse on the controls.
package carousel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/clock"
	"github.com/utafrali/storefront/internal/domain"
)

const (
	// Placeholder is shown instead of a slide when there are no items.
	Placeholder = "No items to display"

	ItemFallbackImage       = "/images/image_fallback.png"
	LeftArrowImage          = "/images/arrows_left.png"
	LeftArrowFallbackImage  = "/images/arrows_left_fallback.png"
	RightArrowImage         = "/images/arrows_right.png"
	RightArrowFallbackImage = "/images/arrows_right_fallback.png"
)

// ErrOutOfRange is returned by GoTo for an index outside the item list.
var ErrOutOfRange = errors.New("carousel: index out of range")

// Timings controls autoplay and the attention pulse.
type Timings struct {
	Advance       time.Duration
	PulseInterval time.Duration
	PulseDuration time.Duration
}

// DefaultTimings advances every 5s and pulses for 1s every 4s.
func DefaultTimings() Timings {
	return Timings{
		Advance:       5 * time.Second,
		PulseInterval: 4 * time.Second,
		PulseDuration: time.Second,
	}
}

// EventType names a carousel notification.
type EventType string

const (
	EventSlide EventType = "slide"
	EventPulse EventType = "pulse"
)

// Event is emitted on every transition and every pulse edge.
type Event struct {
	Type  EventType `json:"type"`
	State State     `json:"state"`
}

// Images are the image URLs to render, with fallbacks applied.
type Images struct {
	Item       string `json:"item,omitempty"`
	LeftArrow  string `json:"left_arrow"`
	RightArrow string `json:"right_arrow"`
}

// State is a snapshot of a carousel.
type State struct {
	Index       int              `json:"index"`
	Count       int              `json:"count"`
	Item        *domain.NewsItem `json:"item,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Pulsing     bool             `json:"pulsing"`
	Images      Images           `json:"images"`
}

// Carousel is one mounted rotator. Observers are called synchronously and
// in order; they must not call back into the carousel.
type Carousel struct {
	items    []domain.NewsItem
	clock    clock.Clock
	timings  Timings
	observer func(Event)

	mu       sync.Mutex
	emitMu   sync.Mutex
	index    int
	running  bool
	autoGen  uint64
	pulseGen uint64
	autoplay clock.Timer
	pulse    clock.Timer
	pulseOff clock.Timer
	pulsing  bool
	failed   map[ImageSlot]bool
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(cr *Carousel) { cr.clock = c }
}

// WithTimings overrides DefaultTimings.
func WithTimings(t Timings) Option {
	return func(cr *Carousel) { cr.timings = t }
}

// WithObserver registers the function receiving every Event.
func WithObserver(fn func(Event)) Option {
	return func(cr *Carousel) { cr.observer = fn }
}

// New creates a carousel over items. It does nothing until Start.
func New(items []domain.NewsItem, opts ...Option) *Carousel {
	c := &Carousel{
		items:   append([]domain.NewsItem(nil), items...),
		clock:   clock.Real{},
		timings: DefaultTimings(),
		failed:  make(map[ImageSlot]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start mounts the carousel and arms both timers. Empty carousels never
// arm a timer.
func (c *Carousel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || len(c.items) == 0 {
		return
	}
	c.running = true
	c.scheduleAutoplay()
	c.schedulePulse()
}

// Stop unmounts the carousel and cancels every timer.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.autoGen++
	c.pulseGen++
	for _, t := range []clock.Timer{c.autoplay, c.pulse, c.pulseOff} {
		if t != nil {
			t.Stop()
		}
	}
	c.autoplay, c.pulse, c.pulseOff = nil, nil, nil
	c.pulsing = false
}

// Running reports whether the carousel is mounted.
func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Len returns the number of items.
func (c *Carousel) Len() int { return len(c.items) }

// State returns the current snapshot.
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Next advances one slide with wraparound and returns the new index.
func (c *Carousel) Next() int {
	return c.move(func(i, n int) int { return (i + 1) % n })
}

// Prev steps back one slide with wraparound and returns the new index.
func (c *Carousel) Prev() int {
	return c.move(func(i, n int) int { return (i - 1 + n) % n })
}

// GoTo jumps to slide i. The state is unchanged when i is out of range.
func (c *Carousel) GoTo(i int) (int, error) {
	if i < 0 || i >= len(c.items) {
		return c.State().Index, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, len(c.items))
	}
	return c.move(func(int, int) int { return i }), nil
}

func (c *Carousel) move(step func(i, n int) int) int {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return 0
	}
	c.index = step(c.index, len(c.items))
	if c.running {
		c.scheduleAutoplay()
	}
	return c.emitLocked(EventSlide)
}

// emitLocked is entered with c.mu held and releases it. It returns the
// index carried by the emitted event.
func (c *Carousel) emitLocked(t EventType) int {
	ev := Event{Type: t, State: c.stateLocked()}
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()
	if c.observer != nil {
		c.observer(ev)
	}
	return ev.State.Index
}

// scheduleAutoplay must be called with c.mu held. The previous timer is
// always stopped first so autoplay is measured from the latest transition.
func (c *Carousel) scheduleAutoplay() {
	if c.autoplay != nil {
		c.autoplay.Stop()
	}
	c.autoGen++
	gen := c.autoGen
	c.autoplay = c.clock.AfterFunc(c.timings.Advance, func() { c.onAutoplay(gen) })
}

func (c *Carousel) onAutoplay(gen uint64) {
	c.mu.Lock()
	if !c.running || gen != c.autoGen {
		c.mu.Unlock()
		return
	}
	c.index = (c.index + 1) % len(c.items)
	c.scheduleAutoplay()
	c.emitLocked(EventSlide)
}

// schedulePulse must be called with c.mu held.
func (c *Carousel) schedulePulse() {
	if c.pulse != nil {
		c.pulse.Stop()
	}
	gen := c.pulseGen
	c.pulse = c.clock.AfterFunc(c.timings.PulseInterval, func() { c.onPulse(gen) })
}

func (c *Carousel) onPulse(gen uint64) {
	c.mu.Lock()
	if !c.running || gen != c.pulseGen {
		c.mu.Unlock()
		return
	}
	c.pulsing = true
	if c.pulseOff != nil {
		c.pulseOff.Stop()
	}
	c.pulseOff = c.clock.AfterFunc(c.timings.PulseDuration, func() { c.onPulseEnd(gen) })
	c.schedulePulse()
	c.emitLocked(EventPulse)
}

func (c *Carousel) onPulseEnd(gen uint64) {
	c.mu.Lock()
	if !c.running || gen != c.pulseGen || !c.pulsing {
		c.mu.Unlock()
		return
	}
	c.pulsing = false
	c.pulseOff = nil
	c.emitLocked(EventPulse)
}

func (c *Carousel) stateLocked() State {
	s := State{
		Index:   c.index,
		Count:   len(c.items),
		Pulsing: c.pulsing,
		Images: Images{
			LeftArrow:  c.imageLocked(LeftArrow, LeftArrowImage),
			RightArrow: c.imageLocked(RightArrow, RightArrowImage),
		},
	}
	if len(c.items) == 0 {
		s.Placeholder = Placeholder
		return s
	}
	item := c.items[c.index]
	s.Item = &item
	s.Images.Item = c.imageLocked(ItemImage(c.index), item.ImageURL)
	return s
}
