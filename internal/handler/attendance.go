package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// MarkAttendance handles POST /v1/attendance. An empty date means today.
func (h *Handler) MarkAttendance(c echo.Context) error {
	var body struct {
		StudentID int                    `json:"student_id"`
		Date      string                 `json:"date"`
		Status    model.AttendanceStatus `json:"status"`
		Remarks   string                 `json:"remarks"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	a := model.Attendance{StudentID: body.StudentID, Status: body.Status, Remarks: body.Remarks}
	if s := strings.TrimSpace(body.Date); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		a.Date = d
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Attendance.Mark(ctx, a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ListAttendance handles GET /v1/attendance?date= with the day's marks and
// their counts.
func (h *Handler) ListAttendance(c echo.Context) error {
	day, ok := h.queryDate(c, "date")
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Hostel.Attendance.ListByDate(ctx, day)
	if err != nil {
		return fail(c, err)
	}
	stats, err := h.Hostel.Attendance.StatsForDate(ctx, day)
	if err != nil {
		return fail(c, err)
	}
	if items == nil {
		items = []model.Attendance{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items), "stats": stats})
}

// StudentAttendance handles GET /v1/students/:id/attendance.
func (h *Handler) StudentAttendance(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Hostel.Attendance.ListByStudent(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	pct, err := h.Hostel.Attendance.Percentage(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if items == nil {
		items = []model.Attendance{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items), "percentage": pct})
}
