package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// ----- notices -----

// ListNotices handles GET /v1/notices. Without ?all=true only the notices
// currently on the board are returned.
func (h *Handler) ListNotices(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	var (
		items []model.Notice
		err   error
	)
	if c.QueryParam("all") == "true" {
		items, err = h.Hostel.Notices.List(ctx)
	} else {
		items, err = h.Hostel.Notices.ListActive(ctx, h.now())
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// PostNotice handles POST /v1/notices. posted_by defaults to the caller.
func (h *Handler) PostNotice(c echo.Context) error {
	var n model.Notice
	if err := c.Bind(&n); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Notices.Post(ctx, n)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateNotice(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var n model.Notice
	if err := c.Bind(&n); err != nil {
		return badRequest(c, "invalid request body")
	}
	n.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Notices.Update(ctx, n)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeactivateNotice handles DELETE /v1/notices/:id.
func (h *Handler) DeactivateNotice(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Notices.Deactivate(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- mess menu -----

// parseWeekday accepts 0-6 (Sunday first) or an English day name.
func parseWeekday(raw string) (time.Weekday, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Weekday(n), n >= 0 && n <= 6
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), raw) {
			return d, true
		}
	}
	return 0, false
}

// ListMenu handles GET /v1/mess. ?day= returns one day, otherwise the whole
// week from Monday.
func (h *Handler) ListMenu(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	var (
		items []model.MessMenu
		err   error
	)
	if raw := c.QueryParam("day"); raw != "" {
		day, ok := parseWeekday(raw)
		if !ok {
			return badRequest(c, "unknown day")
		}
		items, err = h.Hostel.Mess.ByDay(ctx, day)
	} else {
		items, err = h.Hostel.Mess.Week(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

func (h *Handler) AddMenuItem(c echo.Context) error {
	var m model.MessMenu
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Mess.Add(ctx, m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateMenuItem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var m model.MessMenu
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	m.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Mess.Update(ctx, m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteMenuItem(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Mess.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
