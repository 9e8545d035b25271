package carousel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/utafrali/storefront/internal/clock"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHub(limit int) (*Hub, *clock.Fake) {
	fc := clock.NewFake(epoch)
	return NewHub(newsItems(3), DefaultTimings(), limit, fc, nil), fc
}

func TestHub_MountStreamsEvents(t *testing.T) {
	h, fc := newTestHub(0)
	defer h.Close()

	s, err := h.Mount()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, h.Len())

	fc.Advance(5 * time.Second)

	var types []EventType
	for len(s.Events()) > 0 {
		types = append(types, (<-s.Events()).Type)
	}
	// pulse on at 4s, slide at 5s, pulse off at 5s
	assert.Equal(t, []EventType{EventPulse, EventSlide, EventPulse}, types)
}

func TestHub_GetAndUnmount(t *testing.T) {
	h, fc := newTestHub(0)
	defer h.Close()

	s, err := h.Mount()
	require.NoError(t, err)

	got, err := h.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	h.Unmount(s.ID)
	h.Unmount(s.ID)
	assert.Zero(t, h.Len())
	assert.Zero(t, fc.Pending(), "unmount stops both timers")
	assert.False(t, s.Carousel.Running())

	select {
	case <-s.Done():
	default:
		t.Fatal("done not closed")
	}

	_, err = h.Get(s.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestHub_SessionsAreIndependent(t *testing.T) {
	h, _ := newTestHub(0)
	defer h.Close()

	a, err := h.Mount()
	require.NoError(t, err)
	b, err := h.Mount()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	a.Carousel.Next()
	assert.Equal(t, 1, a.Carousel.State().Index)
	assert.Equal(t, 0, b.Carousel.State().Index)
}

func TestHub_Limit(t *testing.T) {
	h, _ := newTestHub(1)
	defer h.Close()

	_, err := h.Mount()
	require.NoError(t, err)
	_, err = h.Mount()
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestHub_SlowReaderDropsInsteadOfBlocking(t *testing.T) {
	h, fc := newTestHub(0)
	defer h.Close()

	s, err := h.Mount()
	require.NoError(t, err)

	for i := 0; i < sessionBuffer*2; i++ {
		s.Carousel.Next()
	}
	fc.Advance(time.Second)
	assert.Len(t, s.Events(), sessionBuffer)
}

func TestHub_CloseUnmountsAll(t *testing.T) {
	h, fc := newTestHub(0)
	for i := 0; i < 3; i++ {
		_, err := h.Mount()
		require.NoError(t, err)
	}
	h.Close()
	assert.Zero(t, h.Len())
	assert.Zero(t, fc.Pending())
}

func TestHub_RealClockStopsCleanly(t *testing.T) {
	h := NewHub(newsItems(2), Timings{
		Advance:       5 * time.Millisecond,
		PulseInterval: 3 * time.Millisecond,
		PulseDuration: time.Millisecond,
	}, 0, nil, nil)

	s, err := h.Mount()
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for slide := false; !slide; {
		select {
		case ev := <-s.Events():
			slide = ev.Type == EventSlide
		case <-deadline:
			t.Fatal("no slide event")
		}
	}

	h.Close()
	assert.False(t, s.Carousel.Running())
}
