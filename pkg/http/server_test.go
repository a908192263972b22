package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes func(e *echo.Echo)

func (r routes) RegisterRoutes(e *echo.Echo) { r(e) }

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServer_HealthAndReadiness(t *testing.T) {
	var ready error
	s := NewServer(nil, nil,
		WithMetrics("", nil),
		WithReadiness(func(context.Context) error { return ready }),
	)

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/readyz").Code)

	ready = errors.New("redis down")
	assert.Equal(t, http.StatusServiceUnavailable, serve(s, http.MethodGet, "/readyz").Code)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	s := NewServer(nil, nil, WithMetrics("/metrics", prometheus.NewRegistry()))

	serve(s, http.MethodGet, "/healthz")
	rec := serve(s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAppErrorResponse_Envelope(t *testing.T) {
	h := routes(func(e *echo.Echo) {
		e.GET("/missing", func(c echo.Context) error {
			return AppErrorResponse(c, NotFoundError("no such symbol").WithParam("symbol", "ZZZZ"))
		})
		e.GET("/boom", func(c echo.Context) error {
			return AppErrorResponse(c, errors.New("plain"))
		})
	})
	s := NewServer(h, nil, WithMetrics("", nil))

	rec := serve(s, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var body struct {
		Status    int         `json:"status"`
		RequestID string      `json:"request_id"`
		Data      []*AppError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.NotEmpty(t, body.RequestID)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body.RequestID)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ERR_NOT_FOUND", body.Data[0].Code)
	assert.Equal(t, "ZZZZ", body.Data[0].Params["symbol"])

	rec = serve(s, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_INTERNAL")
	assert.NotContains(t, rec.Body.String(), "plain")
}

func TestStatusError_Codes(t *testing.T) {
	assert.Equal(t, "ERR_RATE_LIMITED", TooManyRequestsError("slow down").Code)
	assert.Equal(t, "ERR_CONFLICT", ConflictError("stale").Code)
	assert.Equal(t, "ERR_HTTP_418", StatusError(http.StatusTeapot, "tea").Code)

	err := BadRequestError("bad").WithField("theme").WithError(errors.New("cause"))
	assert.Equal(t, "theme", err.Field)
	assert.ErrorContains(t, err, "cause")
}

func TestReadAndValidateRequest_UsesJSONNames(t *testing.T) {
	type req struct {
		Theme string `json:"theme" validate:"required,oneof=light dark"`
	}
	e := echo.New()
	httpReq := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"theme":"sepia"}`))
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(httpReq, httptest.NewRecorder())

	errs := ReadAndValidateRequest(c, &req{})
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_ONEOF", errs[0].Code)
	assert.Equal(t, "theme", errs[0].Field)
	assert.Equal(t, "theme must be one of: light, dark", errs[0].Message)
	assert.Equal(t, []string{"light", "dark"}, errs[0].Params["options"])
}

func TestRecover_ReturnsEnvelope(t *testing.T) {
	h := routes(func(e *echo.Echo) {
		e.GET("/panic", func(c echo.Context) error { panic("boom") })
	})
	s := NewServer(h, nil, WithMetrics("", nil))

	rec := serve(s, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"request_id"`)
}
