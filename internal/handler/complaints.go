package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// ListComplaints handles GET /v1/complaints. Filters: ?open=true,
// ?student_id= and ?priority=.
func (h *Handler) ListComplaints(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.Complaint
		err   error
	)
	switch {
	case c.QueryParam("open") == "true":
		items, err = h.Hostel.Complaints.ListOpen(ctx)
	case c.QueryParam("student_id") != "":
		id, ok := queryInt(c, "student_id", 0)
		if !ok {
			return badRequest(c, "invalid student_id")
		}
		items, err = h.Hostel.Complaints.ListByStudent(ctx, id)
	case c.QueryParam("priority") != "":
		p := model.ComplaintPriority(c.QueryParam("priority"))
		if !p.Valid() {
			return badRequest(c, "unknown priority")
		}
		items, err = h.Hostel.Complaints.ListByPriority(ctx, p)
	default:
		items, err = h.Hostel.Complaints.List(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// GetComplaint handles GET /v1/complaints/:id.
func (h *Handler) GetComplaint(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Complaints.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CreateComplaint handles POST /v1/complaints. New complaints are Open.
func (h *Handler) CreateComplaint(c echo.Context) error {
	var body struct {
		StudentID   int                     `json:"student_id"`
		Title       string                  `json:"title"`
		Description string                  `json:"description"`
		Category    model.ComplaintCategory `json:"category"`
		Priority    model.ComplaintPriority `json:"priority"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Complaints.Create(ctx, model.Complaint{
		StudentID:   body.StudentID,
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Priority:    body.Priority,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateComplaintStatus handles PATCH /v1/complaints/:id with
// {"status", "notes"}.
func (h *Handler) UpdateComplaintStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var body struct {
		Status model.ComplaintStatus `json:"status"`
		Notes  string                `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Complaints.UpdateStatus(ctx, id, body.Status, body.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// AssignComplaint handles POST /v1/complaints/:id/assign with {"staff_id"}.
func (h *Handler) AssignComplaint(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var body struct {
		StaffID int `json:"staff_id"`
	}
	if err := c.Bind(&body); err != nil || body.StaffID <= 0 {
		return badRequest(c, "staff_id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Complaints.Assign(ctx, id, body.StaffID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
