package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/carousel"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

// NewsAction is a visitor interaction with a mounted carousel.
type NewsAction string

const (
	ActionNext       NewsAction = "next"
	ActionPrev       NewsAction = "prev"
	ActionGoTo       NewsAction = "goto"
	ActionSwipe      NewsAction = "swipe"
	ActionImageError NewsAction = "image-error"
)

// NewsActionInput carries the arguments of goto, swipe and image-error.
type NewsActionInput struct {
	Index *int    `json:"index" validate:"omitempty,gte=0"`
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
	Image string  `json:"image" validate:"omitempty,oneof=item left-arrow right-arrow"`
}

// NewsActionResult is the carousel's state after an action. Consumed is set
// for swipes and Fallback for image errors.
type NewsActionResult struct {
	State    carousel.State `json:"state"`
	Consumed *bool          `json:"consumed,omitempty"`
	Fallback string         `json:"fallback,omitempty"`
}

// NewsFeed is the carousel's content and timings in milliseconds.
type NewsFeed struct {
	Items           []domain.NewsItem `json:"items"`
	AdvanceMS       int64             `json:"advance_ms"`
	PulseIntervalMS int64             `json:"pulse_interval_ms"`
	PulseDurationMS int64             `json:"pulse_duration_ms"`
}

// NewsService drives the per-visitor news carousels.
type NewsService struct {
	hub *carousel.Hub
}

// NewNewsService creates a news service over hub.
func NewNewsService(hub *carousel.Hub) *NewsService {
	return &NewsService{hub: hub}
}

// Feed returns the news items and timings.
func (s *NewsService) Feed() NewsFeed {
	t := s.hub.Timings()
	return NewsFeed{
		Items:           s.hub.Items(),
		AdvanceMS:       t.Advance.Milliseconds(),
		PulseIntervalMS: t.PulseInterval.Milliseconds(),
		PulseDurationMS: t.PulseDuration.Milliseconds(),
	}
}

// Mount starts a carousel for a new stream.
func (s *NewsService) Mount(ctx context.Context) (*carousel.Session, error) {
	session, err := s.hub.Mount()
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).InfoContext(ctx, "news stream opened",
		slog.String("session_id", session.ID),
		slog.Int("sessions", s.hub.Len()),
	)
	return session, nil
}

// Unmount stops the stream's carousel.
func (s *NewsService) Unmount(ctx context.Context, sessionID string) {
	s.hub.Unmount(sessionID)
	logger.FromContext(ctx).InfoContext(ctx, "news stream closed", slog.String("session_id", sessionID))
}

// Act applies action to the carousel of sessionID.
func (s *NewsService) Act(ctx context.Context, sessionID string, action NewsAction, in NewsActionInput) (*NewsActionResult, error) {
	session, err := s.hub.Get(sessionID)
	if err != nil {
		return nil, err
	}
	c := session.Carousel
	result := &NewsActionResult{}

	switch action {
	case ActionNext:
		c.Next()
	case ActionPrev:
		c.Prev()
	case ActionGoTo:
		if in.Index == nil {
			return nil, apperrors.InvalidInput("index is required")
		}
		if _, err := c.GoTo(*in.Index); err != nil {
			if errors.Is(err, carousel.ErrOutOfRange) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("index %d is out of range", *in.Index))
			}
			return nil, err
		}
	case ActionSwipe:
		_, consumed := c.Swipe(carousel.Gesture{DX: in.DX, DY: in.DY})
		result.Consumed = &consumed
	case ActionImageError:
		slot, err := imageSlot(c, in)
		if err != nil {
			return nil, err
		}
		result.Fallback, _ = c.ImageFailed(slot)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown carousel action %q", action))
	}

	result.State = c.State()
	return result, nil
}

func imageSlot(c *carousel.Carousel, in NewsActionInput) (carousel.ImageSlot, error) {
	switch carousel.ImageKind(in.Image) {
	case carousel.KindLeftArrow:
		return carousel.LeftArrow, nil
	case carousel.KindRightArrow:
		return carousel.RightArrow, nil
	case carousel.KindItem, "":
		index := c.State().Index
		if in.Index != nil {
			index = *in.Index
		}
		return carousel.ItemImage(index), nil
	default:
		return carousel.ImageSlot{}, apperrors.InvalidInput(fmt.Sprintf("unknown image %q", in.Image))
	}
}
