package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/repository"
	xhttp "StockLens/pkg/http"
	applogger "StockLens/pkg/logger"
	"StockLens/pkg/metrics"
)

// Outcome labels used for logs and metrics.
const (
	OutcomeOK        = "ok"
	OutcomeHTTP      = "http_error"
	OutcomePayload   = "payload_error"
	OutcomeTransport = "transport_error"
)

// Client is the FetchGateway: one GET per facet, every failure returned as
// a value inside the FacetResult.
type Client struct {
	baseURL string
	http    *xhttp.Client
	l       *applogger.Logger
	metrics repository.Metrics
}

// Option configures Client.
type Option func(*Client)

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.l = l }
}

func WithMetrics(m repository.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a gateway rooted at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		l:       applogger.Nop(),
		metrics: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

var _ repository.FacetFetcher = (*Client)(nil)

// Fetch issues GET baseURL+path and classifies the response.
func (c *Client) Fetch(ctx context.Context, facet models.Facet, path string) models.FacetResult {
	start := time.Now()
	res, outcome := c.fetch(ctx, facet, path)
	elapsed := time.Since(start)

	c.metrics.RecordFacet(facet, outcome, elapsed)
	if res.Err != nil {
		c.l.Warn("gateway fetch failed",
			applogger.String("facet", string(facet)),
			applogger.String("path", path),
			applogger.String("outcome", outcome),
			applogger.Int("status", res.Err.Status),
			applogger.String("reason", res.Err.Message),
			applogger.Duration("duration_ms", elapsed),
		)
	} else {
		c.l.Debug("gateway fetch ok",
			applogger.String("facet", string(facet)),
			applogger.String("path", path),
			applogger.Int("bytes", len(res.Payload)),
			applogger.Duration("duration_ms", elapsed),
		)
	}
	return res
}

func (c *Client) fetch(ctx context.Context, facet models.Facet, path string) (res models.FacetResult, outcome string) {
	res.Facet = facet
	defer func() {
		// Nothing escapes this boundary, not even a panic from a transport.
		if r := recover(); r != nil {
			res = failure(facet, 0, fmt.Sprintf("panic: %v", r))
			outcome = OutcomeTransport
		}
	}()

	resp, err := c.http.Send(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + path,
	})
	if err != nil {
		return failure(facet, 0, err.Error()), OutcomeTransport
	}

	if !resp.OK() {
		msg := errorMessage(resp.Body)
		if msg == "" {
			msg = http.StatusText(resp.Status)
		}
		return failure(facet, resp.Status, msg), OutcomeHTTP
	}

	body := bytes.TrimSpace(resp.Body)
	if !json.Valid(body) {
		return failure(facet, 0, "invalid JSON body"), OutcomePayload
	}
	if msg := errorMessage(body); msg != "" {
		// An error field on a 2xx is the same failure as a non-2xx status.
		return failure(facet, resp.Status, msg), OutcomeHTTP
	}

	res.Payload = json.RawMessage(body)
	return res, OutcomeOK
}

func failure(facet models.Facet, status int, msg string) models.FacetResult {
	return models.FacetResult{
		Facet: facet,
		Err:   &models.FacetError{Facet: facet, Status: status, Message: msg},
	}
}

// errorMessage returns the text of a top-level non-null "error" field, or "".
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return ""
	}
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	raw := bytes.TrimSpace(probe.Error)
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "false" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "error"
		}
		return s
	}
	return string(raw)
}
