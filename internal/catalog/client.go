// Package catalog is the storefront's client for the commerce platform's
// GraphQL Storefront API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

const (
	tracerName  = "github.com/utafrali/storefront/internal/catalog"
	tokenHeader = "X-Shopify-Storefront-Access-Token"
	upstream    = "storefront api"

	// maxResponseBody bounds a single GraphQL response.
	maxResponseBody = 8 << 20
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// CircuitOpenFallback replaces the breaker's raw open-state error with a
// structured 503.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.Unavailable("catalog is temporarily unavailable, please retry shortly")
}

// Config locates the Storefront API.
type Config struct {
	ShopDomain  string
	APIVersion  string
	AccessToken string
	// Endpoint overrides the URL derived from ShopDomain and APIVersion.
	Endpoint string
}

// URL returns the GraphQL endpoint.
func (c Config) URL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s/api/%s/graphql.json", strings.TrimSuffix(c.ShopDomain, "/"), c.APIVersion)
}

// Client runs Storefront API queries.
type Client struct {
	http   HTTPDoer
	url    string
	token  string
	logger *slog.Logger
}

// NewClient creates a catalog client sending requests through doer.
func NewClient(cfg Config, doer HTTPDoer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: doer, url: cfg.URL(), token: cfg.AccessToken, logger: logger}
}

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

func joinErrors(errs []graphqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// query posts one GraphQL operation and decodes its data into out. A
// response carrying both data and errors is accepted with a warning.
func (c *Client) query(ctx context.Context, operation, query string, vars map[string]any, out any) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("graphql.operation.name", operation)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(graphqlRequest{Query: query, OperationName: operation, Variables: vars})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call %s: %w", upstream, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, upstream)
	}

	var gql graphqlResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&gql); err != nil {
		return apperrors.Upstream(fmt.Sprintf("decode %s response: %v", operation, err))
	}

	if len(gql.Errors) > 0 {
		if len(gql.Data) == 0 || string(gql.Data) == "null" {
			return apperrors.Upstream(fmt.Sprintf("%s: %s", operation, joinErrors(gql.Errors)))
		}
		c.logger.WarnContext(ctx, "partial graphql response",
			slog.String("operation", operation),
			slog.String("errors", joinErrors(gql.Errors)),
		)
	}
	if len(gql.Data) == 0 || string(gql.Data) == "null" {
		return apperrors.Upstream(fmt.Sprintf("%s: empty data", operation))
	}

	if err := json.Unmarshal(gql.Data, out); err != nil {
		return apperrors.Upstream(fmt.Sprintf("decode %s data: %v", operation, err))
	}
	return nil
}
