package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/carousel"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// EventSession is the first event of every news stream.
const EventSession = "session"

// NewsHandler serves the news carousel.
type NewsHandler struct {
	service   *service.NewsService
	logger    *slog.Logger
	heartbeat time.Duration
}

// NewNewsHandler creates a new news HTTP handler. A non-positive heartbeat
// disables keep-alive comments.
func NewNewsHandler(svc *service.NewsService, logger *slog.Logger, heartbeat time.Duration) *NewsHandler {
	return &NewsHandler{service: svc, logger: logger, heartbeat: heartbeat}
}

type sessionEvent struct {
	SessionID string         `json:"session_id"`
	State     carousel.State `json:"state"`
}

// Feed handles GET /api/v1/news
func (h *NewsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Feed()})
}

// Stream handles GET /api/v1/news/stream. It mounts a carousel for the
// connection and relays its slide and pulse events as Server-Sent Events
// until the client goes away.
func (h *NewsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("streaming unsupported")), h.logger)
		return
	}

	session, err := h.service.Mount(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ctx := logger.WithSessionID(r.Context(), session.ID)
	defer h.service.Unmount(ctx, session.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set(middleware.SessionHeader, session.ID)
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, EventSession, sessionEvent{SessionID: session.ID, State: session.Carousel.State()}); err != nil {
		return
	}
	flusher.Flush()

	var heartbeat <-chan time.Time
	if h.heartbeat > 0 {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-session.Done():
			return
		case <-heartbeat:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
		case ev := <-session.Events():
			if err := writeEvent(w, string(ev.Type), ev.State); err != nil {
				logger.FromContext(ctx).DebugContext(ctx, "news stream write failed", slog.String("error", err.Error()))
				return
			}
		}
		flusher.Flush()
	}
}

func writeEvent(w io.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}

// Act handles POST /api/v1/news/sessions/{id}/{action}
func (h *NewsHandler) Act(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	action := service.NewsAction(chi.URLParam(r, "action"))

	var in service.NewsActionInput
	if err := validator.DecodeAndValidate(r, &in); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := logger.WithSessionID(r.Context(), id.String())
	result, err := h.service.Act(ctx, id.String(), action, in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
