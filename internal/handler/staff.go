package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// ListStaff handles GET /v1/staff; ?active=true or ?role= filter.
func (h *Handler) ListStaff(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.Staff
		err   error
	)
	switch {
	case c.QueryParam("role") != "":
		role := model.StaffRole(c.QueryParam("role"))
		if !role.Valid() {
			return badRequest(c, "unknown role")
		}
		items, err = h.Hostel.Staff.ListByRole(ctx, role)
	case c.QueryParam("active") == "true":
		items, err = h.Hostel.Staff.ListActive(ctx)
	default:
		items, err = h.Hostel.Staff.List(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

func (h *Handler) GetStaff(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	m, err := h.Hostel.Staff.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// AddStaff handles POST /v1/staff. The body is a staff record; id and the
// active flag are set by the server.
func (h *Handler) AddStaff(c echo.Context) error {
	var m model.Staff
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Staff.Add(ctx, m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var m model.Staff
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	m.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Staff.Update(ctx, m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeactivateStaff handles DELETE /v1/staff/:id.
func (h *Handler) DeactivateStaff(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Staff.Deactivate(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Payroll handles GET /v1/staff/payroll.
func (h *Handler) Payroll(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	total, err := h.Hostel.Staff.MonthlyPayroll(ctx)
	if err != nil {
		return fail(c, err)
	}
	active, err := h.Hostel.Staff.ActiveCount(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"monthly_payroll": total, "active_staff": active})
}
