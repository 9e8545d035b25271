package carousel

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/clock"
	"github.com/utafrali/storefront/internal/domain"
)

var epoch = time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC)

func newsItems(n int) []domain.NewsItem {
	items := make([]domain.NewsItem, n)
	for i := range items {
		items[i] = domain.NewsItem{
			Title:    fmt.Sprintf("Item %c", 'A'+i),
			ImageURL: fmt.Sprintf("https://img.example/%d.jpg", i),
		}
	}
	return items
}

type recorder struct{ events []Event }

func (r *recorder) observe(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) ofType(t EventType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func mounted(t *testing.T, n int) (*Carousel, *clock.Fake, *recorder) {
	t.Helper()
	fc := clock.NewFake(epoch)
	rec := &recorder{}
	c := New(newsItems(n), WithClock(fc), WithObserver(rec.observe))
	c.Start()
	t.Cleanup(c.Stop)
	return c, fc, rec
}

// ============================================================================
// Navigation
// ============================================================================

func TestNavigation_ThreeItemScenario(t *testing.T) {
	c, fc, _ := mounted(t, 3)

	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 0, c.Prev())

	i, err := c.GoTo(2)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	fc.Advance(5 * time.Second)
	assert.Equal(t, 0, c.State().Index)
}

func TestNavigation_SingleItemAlwaysZero(t *testing.T) {
	c, fc, rec := mounted(t, 1)

	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())
	i, err := c.GoTo(0)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	fc.Advance(20 * time.Second)
	assert.Equal(t, 0, c.State().Index)
	assert.NotEmpty(t, rec.ofType(EventPulse), "pulse keeps running with one item")
}

func TestNavigation_FullCycleReturnsToStart(t *testing.T) {
	for n := 1; n <= 7; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			c, _, _ := mounted(t, n)
			c.GoTo(n / 2)
			start := c.State().Index

			for i := 0; i < n; i++ {
				c.Next()
			}
			assert.Equal(t, start, c.State().Index)

			for i := 0; i < n; i++ {
				c.Prev()
			}
			assert.Equal(t, start, c.State().Index)
		})
	}
}

func TestGoTo_OutOfRangeLeavesState(t *testing.T) {
	c, _, rec := mounted(t, 3)
	c.Next()
	before := len(rec.events)

	for _, i := range []int{-1, 3, 99} {
		idx, err := c.GoTo(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, 1, idx)
	}
	assert.Equal(t, 1, c.State().Index)
	assert.Len(t, rec.events, before)
}

func TestEmptyCarousel(t *testing.T) {
	fc := clock.NewFake(epoch)
	c := New(nil, WithClock(fc))
	c.Start()
	defer c.Stop()

	assert.Zero(t, fc.Pending(), "no timers for an empty carousel")
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())
	_, err := c.GoTo(0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	s := c.State()
	assert.Equal(t, Placeholder, s.Placeholder)
	assert.Nil(t, s.Item)
	assert.False(t, c.Running())
}

// ============================================================================
// Autoplay
// ============================================================================

func TestAutoplay_AdvancesEveryInterval(t *testing.T) {
	c, fc, rec := mounted(t, 3)

	fc.Advance(4999 * time.Millisecond)
	assert.Equal(t, 0, c.State().Index)
	fc.Advance(time.Millisecond)
	assert.Equal(t, 1, c.State().Index)
	fc.Advance(10 * time.Second)
	assert.Equal(t, 0, c.State().Index)

	slides := rec.ofType(EventSlide)
	require.Len(t, slides, 3)
	assert.Equal(t, []int{1, 2, 0}, []int{slides[0].State.Index, slides[1].State.Index, slides[2].State.Index})
}

func TestAutoplay_ResetByManualNavigation(t *testing.T) {
	c, fc, _ := mounted(t, 5)

	fc.Advance(4 * time.Second)
	c.Next()
	fc.Advance(4 * time.Second)
	assert.Equal(t, 1, c.State().Index, "autoplay measured from the click")
	fc.Advance(time.Second)
	assert.Equal(t, 2, c.State().Index)
}

func TestAutoplay_OnlyOneTimerArmed(t *testing.T) {
	c, fc, _ := mounted(t, 4)
	for i := 0; i < 10; i++ {
		c.Next()
	}
	// one autoplay timer and one pulse timer
	assert.Equal(t, 2, fc.Pending())
}

// ============================================================================
// Pulse
// ============================================================================

func TestPulse_IndependentOfNavigation(t *testing.T) {
	c, fc, rec := mounted(t, 3)

	fc.Advance(3 * time.Second)
	c.Next()
	fc.Advance(time.Second)
	assert.True(t, c.State().Pulsing, "pulse not rescheduled by navigation")

	fc.Advance(time.Second)
	assert.False(t, c.State().Pulsing)

	fc.Advance(3 * time.Second)
	assert.True(t, c.State().Pulsing)

	pulses := rec.ofType(EventPulse)
	require.Len(t, pulses, 3)
	assert.True(t, pulses[0].State.Pulsing)
	assert.False(t, pulses[1].State.Pulsing)
	assert.True(t, pulses[2].State.Pulsing)
}

func TestStop_CancelsEverything(t *testing.T) {
	c, fc, rec := mounted(t, 3)
	fc.Advance(4500 * time.Millisecond)
	require.True(t, c.State().Pulsing)

	c.Stop()
	assert.Zero(t, fc.Pending())
	assert.False(t, c.State().Pulsing)

	n := len(rec.events)
	fc.Advance(time.Minute)
	assert.Len(t, rec.events, n)
	assert.Equal(t, 0, c.State().Index)
}

func TestStart_Idempotent(t *testing.T) {
	c, fc, _ := mounted(t, 3)
	c.Start()
	assert.Equal(t, 2, fc.Pending())
}

// ============================================================================
// Images
// ============================================================================

func TestImageFailed_FallbackOnce(t *testing.T) {
	c, _, _ := mounted(t, 3)

	fb, ok := c.ImageFailed(ItemImage(0))
	assert.True(t, ok)
	assert.Equal(t, ItemFallbackImage, fb)
	assert.Equal(t, ItemFallbackImage, c.State().Images.Item)

	_, ok = c.ImageFailed(ItemImage(0))
	assert.False(t, ok, "fallback handed out only once")

	c.Next()
	assert.Equal(t, "https://img.example/1.jpg", c.State().Images.Item)
}

func TestImageFailed_Arrows(t *testing.T) {
	c, _, _ := mounted(t, 2)

	fb, ok := c.ImageFailed(LeftArrow)
	assert.True(t, ok)
	assert.Equal(t, LeftArrowFallbackImage, fb)

	fb, ok = c.ImageFailed(RightArrow)
	assert.True(t, ok)
	assert.Equal(t, RightArrowFallbackImage, fb)

	_, ok = c.ImageFailed(ImageSlot{Kind: KindLeftArrow, Index: 7})
	assert.False(t, ok, "arrow slots ignore the index")

	s := c.State()
	assert.Equal(t, LeftArrowFallbackImage, s.Images.LeftArrow)
	assert.Equal(t, RightArrowFallbackImage, s.Images.RightArrow)
}

func TestImageFailed_UnknownSlot(t *testing.T) {
	c, _, _ := mounted(t, 2)
	_, ok := c.ImageFailed(ItemImage(5))
	assert.False(t, ok)
	_, ok = c.ImageFailed(ImageSlot{Kind: "banner"})
	assert.False(t, ok)
}

func TestDefaultState_Images(t *testing.T) {
	c, _, _ := mounted(t, 1)
	s := c.State()
	assert.Equal(t, LeftArrowImage, s.Images.LeftArrow)
	assert.Equal(t, RightArrowImage, s.Images.RightArrow)
	assert.Equal(t, "Item A", s.Item.Title)
}

func TestDefaultNews(t *testing.T) {
	items := DefaultNews()
	require.Len(t, items, 7)
	assert.Equal(t, "GameSpot", items[0].Source)
	for _, it := range items {
		assert.Empty(t, it.Description)
		assert.NotEmpty(t, it.Link)
	}
}
