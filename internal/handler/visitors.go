package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// ListVisitors handles GET /v1/visitors. ?active=true lists visitors still
// inside, ?date=YYYY-MM-DD the visits of one day, ?student_id= the visits
// of one resident.
func (h *Handler) ListVisitors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.Visitor
		err   error
	)
	switch {
	case c.QueryParam("active") == "true":
		items, err = h.Hostel.Visitors.ListActive(ctx)
	case c.QueryParam("date") != "":
		day, ok := h.queryDate(c, "date")
		if !ok {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		items, err = h.Hostel.Visitors.ListByDate(ctx, day)
	case c.QueryParam("student_id") != "":
		id, ok := queryInt(c, "student_id", 0)
		if !ok {
			return badRequest(c, "invalid student_id")
		}
		items, err = h.Hostel.Visitors.ListByStudent(ctx, id)
	default:
		items, err = h.Hostel.Visitors.List(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// CheckInVisitor handles POST /v1/visitors and issues a visitor pass.
func (h *Handler) CheckInVisitor(c echo.Context) error {
	var body struct {
		VisitorName  string `json:"visitor_name"`
		CNIC         string `json:"cnic"`
		Phone        string `json:"phone"`
		Relationship string `json:"relationship"`
		StudentID    int    `json:"student_id"`
		Purpose      string `json:"purpose"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	v, err := h.Hostel.Visitors.CheckIn(ctx, model.Visitor{
		VisitorName:  body.VisitorName,
		CNIC:         body.CNIC,
		Phone:        body.Phone,
		Relationship: body.Relationship,
		StudentID:    body.StudentID,
		Purpose:      body.Purpose,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// CheckOutVisitor handles POST /v1/visitors/:id/checkout. A second
// checkout answers 409.
func (h *Handler) CheckOutVisitor(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	v, err := h.Hostel.Visitors.CheckOut(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
