package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// StatusError is returned by the circuit breaker client when the upstream
// answers with a status it counts as a failure.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// upstreamErrorBody covers both error shapes seen from upstreams: the
// storefront envelope {"error":{code,message}} and the GraphQL style
// {"errors":[{message}]} or {"errors":"message"}.
type upstreamErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Errors json.RawMessage `json:"errors"`
}

func (b upstreamErrorBody) message() string {
	if b.Error != nil {
		return b.Error.Message
	}
	if len(b.Errors) == 0 {
		return ""
	}
	var single string
	if json.Unmarshal(b.Errors, &single) == nil {
		return single
	}
	var list []struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b.Errors, &list) == nil {
		msgs := make([]string, 0, len(list))
		for _, e := range list {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return string(b.Errors)
}

// ParseResponseError consumes and closes a non-2xx response and turns it into
// an AppError carrying the upstream's message.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apperrors.Upstream(fmt.Sprintf("%s returned status %d (read body: %v)", upstream, resp.StatusCode, err))
	}

	msg := strings.TrimSpace(string(raw))
	var body upstreamErrorBody
	if json.Unmarshal(raw, &body) == nil {
		if m := body.message(); m != "" {
			msg = m
		}
	}
	return MapStatus(resp.StatusCode, upstream, msg)
}

// MapStatus translates an upstream HTTP status into the AppError a handler
// should surface to the browser.
func MapStatus(status int, upstream, message string) error {
	qualified := fmt.Sprintf("%s: %s", upstream, message)

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: qualified,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		// Bad storefront token is our misconfiguration, not the visitor's.
		return apperrors.Upstream(qualified)
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(qualified)
	case status >= 500:
		return apperrors.Upstream(qualified)
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: qualified,
			Status:  http.StatusBadGateway,
			Err:     apperrors.ErrUpstream,
		}
	}
}

// IsClientError reports whether status is a 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
