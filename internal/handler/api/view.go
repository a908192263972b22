package api

import (
	"errors"
	"net/http"
	"strings"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HeaderSessionID selects the session a request acts on.
const HeaderSessionID = "X-Session-ID"

const defaultSession = "default"

// ViewHandler serves assembled view-models, session state and the theme.
type ViewHandler struct {
	logger   *xlogger.Logger
	orch     *usecase.Orchestrator
	sessions *usecase.Sessions
	themes   domrepo.ThemeStore
	limiter  *ratelimit.Limiter
	msgs     localizer
}

func NewViewHandler(
	logger *xlogger.Logger,
	orch *usecase.Orchestrator,
	sessions *usecase.Sessions,
	themes domrepo.ThemeStore,
	limiter *ratelimit.Limiter,
	locale string,
) *ViewHandler {
	if locale == "" {
		locale = "en"
	}
	return &ViewHandler{
		logger:   logger,
		orch:     orch,
		sessions: sessions,
		themes:   themes,
		limiter:  limiter,
		msgs:     localizer{fallback: locale},
	}
}

func (h *ViewHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/view/:symbol", h.View)
	g.GET("/session", h.Session)
	g.GET("/theme", h.GetTheme)
	g.PUT("/theme", h.PutTheme)
	e.GET("/ws", h.Stream)
}

// sessionID reads the header, then ?session= for clients that cannot set
// headers (browsers opening a WebSocket).
func sessionID(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.QueryParam("session")); id != "" {
		return id
	}
	return defaultSession
}

func (h *ViewHandler) View(c echo.Context) error {
	id := sessionID(c)
	if h.limiter != nil && !h.limiter.Allow(id) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError(h.msgs.text(c, msgRateLimited)))
	}

	vm, err := h.orch.LoadSymbol(c.Request().Context(), h.sessions.Get(id), c.Param("symbol"))
	if err != nil {
		return xhttp.AppErrorResponse(c, h.loadError(c, err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, vm)
}

func (h *ViewHandler) loadError(c echo.Context, err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrValidation):
		return xhttp.BadRequestError(h.msgs.text(c, msgInvalidSymbol)).WithError(err)
	case errors.Is(err, models.ErrNotFound):
		appErr := xhttp.NotFoundError(h.msgs.text(c, msgNotFound)).WithError(err)
		var lerr *models.LoadError
		if errors.As(err, &lerr) {
			appErr.WithParam("symbol", lerr.Symbol)
		}
		return appErr
	case usecase.IsSuperseded(err):
		return xhttp.ConflictError(h.msgs.text(c, msgSuperseded)).WithError(err)
	default:
		h.logger.Error("view load error", xlogger.Error(err))
		return xhttp.InternalError(h.msgs.text(c, msgInternal)).WithError(err)
	}
}

// SessionState is the body of GET /api/session.
type SessionState struct {
	Session string            `json:"session"`
	Symbol  models.Symbol     `json:"symbol,omitempty"`
	Loading bool              `json:"loading"`
	View    *models.ViewModel `json:"view"`
}

func (h *ViewHandler) Session(c echo.Context) error {
	id := sessionID(c)
	sess, ok := h.sessions.Lookup(id)
	if !ok || sess.Last() == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(h.msgs.text(c, msgNoView)).WithParam("loading", ok && sess.Loading()))
	}
	return xhttp.SuccessResponse(c, SessionState{
		Session: id,
		Symbol:  sess.Symbol(),
		Loading: sess.Loading(),
		View:    sess.Last(),
	})
}

// ThemeRequest is the body of PUT /api/theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// ThemeResponse is returned by both theme endpoints.
type ThemeResponse struct {
	Session string        `json:"session"`
	Theme   domrepo.Theme `json:"theme"`
}

func (h *ViewHandler) GetTheme(c echo.Context) error {
	id := sessionID(c)
	theme, err := h.themes.GetTheme(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("get theme error", xlogger.String("session", id), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(h.msgs.text(c, msgInternal)).WithError(err))
	}
	return xhttp.SuccessResponse(c, ThemeResponse{Session: id, Theme: theme})
}

func (h *ViewHandler) PutTheme(c echo.Context) error {
	req := &ThemeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	id := sessionID(c)
	theme := domrepo.Theme(req.Theme)
	if err := h.themes.SetTheme(c.Request().Context(), id, theme); err != nil {
		h.logger.Error("set theme error", xlogger.String("session", id), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(h.msgs.text(c, msgInternal)).WithError(err))
	}
	return xhttp.DataResponse(c, http.StatusOK, ThemeResponse{Session: id, Theme: theme})
}
