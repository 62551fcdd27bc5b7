package handler // handler exposes the hostel services over HTTP

import (
	"context"  // request scoped timeouts
	"errors"   // errors.Is for mapping service failures
	"log"      // unexpected failures are logged, not returned
	"net/http" // status codes
	"strconv"  // path and query parameter parsing
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/service"
)

// requestTimeout bounds every service call made by a handler.
const requestTimeout = 5 * time.Second

// dateLayout is the accepted format of date query parameters.
const dateLayout = "2006-01-02"

// Handler bundles the hostel services and the configuration needed by the
// HTTP endpoints.
type Handler struct {
	Cfg    config.Config
	Hostel *service.Hostel
	now    func() time.Time
}

// New constructs a Handler and panics when the hostel is missing.
func New(cfg config.Config, h *service.Hostel) *Handler {
	if h == nil {
		panic("nil hostel passed to handler.New")
	}
	return &Handler{Cfg: cfg, Hostel: h, now: time.Now}
}

// reqCtx derives the service context from the request. It keeps the actor
// set by the JWT middleware.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// fail maps a service error to its HTTP status. Unknown errors are logged
// and reported as 500 without leaking details.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "request timed out"})
	}
	log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// pathID parses the :id path parameter. Ids are positive.
func pathID(c echo.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	return id, err == nil && id > 0
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// queryDate parses an optional YYYY-MM-DD query parameter, defaulting to
// today.
func (h *Handler) queryDate(c echo.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return h.now(), true
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	return d, err == nil
}

// period reads ?month=&year= and defaults to the current month.
func (h *Handler) period(c echo.Context) (month, year int, ok bool) {
	now := h.now()
	month, ok1 := queryInt(c, "month", int(now.Month()))
	year, ok2 := queryInt(c, "year", now.Year())
	if !ok1 || !ok2 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return month, year, true
}

// list wraps a collection in the envelope used by every listing endpoint.
func list[T any](c echo.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
