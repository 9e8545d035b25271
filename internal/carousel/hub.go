package carousel

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/storefront/internal/clock"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// sessionBuffer is how many events a slow stream may lag before events are
// dropped.
const sessionBuffer = 32

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_carousel_sessions_active",
		Help: "Number of mounted carousel sessions.",
	})

	droppedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_carousel_events_dropped_total",
		Help: "Carousel events dropped because the stream was not reading.",
	})
)

// Session is one client's mounted carousel.
type Session struct {
	ID       string
	Carousel *Carousel

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Events delivers slide and pulse events until the session is unmounted.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed when the session is unmounted.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) publish(ev Event) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.events <- ev:
	default:
		droppedEvents.Inc()
	}
}

// Hub keeps one running carousel per streaming client.
type Hub struct {
	items   []domain.NewsItem
	clock   clock.Clock
	timings Timings
	limit   int
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHub creates a hub serving items. limit caps concurrent sessions; zero
// means unlimited.
func NewHub(items []domain.NewsItem, timings Timings, limit int, c clock.Clock, logger *slog.Logger) *Hub {
	if c == nil {
		c = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		items:    items,
		clock:    c,
		timings:  timings,
		limit:    limit,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Items returns the feed served to every session.
func (h *Hub) Items() []domain.NewsItem {
	return append([]domain.NewsItem(nil), h.items...)
}

// Timings returns the autoplay and pulse timings.
func (h *Hub) Timings() Timings { return h.timings }

// Mount starts a new carousel session.
func (h *Hub) Mount() (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.limit > 0 && len(h.sessions) >= h.limit {
		return nil, apperrors.Unavailable("too many carousel sessions")
	}

	s := &Session{
		ID:     uuid.New().String(),
		events: make(chan Event, sessionBuffer),
		done:   make(chan struct{}),
	}
	s.Carousel = New(h.items,
		WithClock(h.clock),
		WithTimings(h.timings),
		WithObserver(s.publish),
	)
	h.sessions[s.ID] = s
	activeSessions.Inc()
	s.Carousel.Start()

	h.logger.Debug("carousel session mounted", slog.String("session_id", s.ID))
	return s, nil
}

// Get returns a mounted session.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("carousel session", id)
	}
	return s, nil
}

// Unmount stops the session's timers and forgets it. Unknown ids are ignored.
func (h *Hub) Unmount(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	s.Carousel.Stop()
	s.once.Do(func() { close(s.done) })
	activeSessions.Dec()
	h.logger.Debug("carousel session unmounted", slog.String("session_id", id))
}

// Len returns the number of mounted sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close unmounts every session.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.Unmount(id)
	}
}
