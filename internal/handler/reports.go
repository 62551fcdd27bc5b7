package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/export"
	"github.com/iliyamo/hostel-management/internal/service"
)

// Dashboard handles GET /v1/dashboard.
func (h *Handler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	stats, err := h.Hostel.Dashboard(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// AuditLog handles GET /v1/audit. ?module= filters, otherwise the newest
// ?limit= entries (default 50) are returned.
func (h *Handler) AuditLog(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if module := c.QueryParam("module"); module != "" {
		items, err := h.Hostel.Audit.ByModule(ctx, module)
		if err != nil {
			return fail(c, err)
		}
		return list(c, items)
	}
	n, ok := queryInt(c, "limit", 50)
	if !ok || n < 1 {
		return badRequest(c, "invalid limit")
	}
	items, err := h.Hostel.Audit.Recent(ctx, n)
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// ExportCSV handles GET /v1/reports/export/:kind and downloads one
// collection as CSV.
func (h *Handler) ExportCSV(c echo.Context) error {
	kind, ok := export.ParseKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown export"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	snap, err := h.Hostel.Snapshot(ctx)
	if err != nil {
		return fail(c, err)
	}
	// Render fully before answering so a failure still yields a JSON error.
	var buf bytes.Buffer
	if _, err := export.WriteCSV(&buf, kind, snap); err != nil {
		return fail(c, err)
	}
	name := fmt.Sprintf("%s_%s.csv", kind, snap.TakenAt.Format("20060102_150405"))
	h.Hostel.LogExport(ctx, kind.Label(), name)

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// FullReport handles GET /v1/reports/full and answers the plain text report.
func (h *Handler) FullReport(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	snap, err := h.Hostel.Snapshot(ctx)
	if err != nil {
		return fail(c, err)
	}
	by := service.ActorFrom(ctx)
	h.Hostel.LogExport(ctx, "Full Report", "http")
	return c.String(http.StatusOK, export.FullReport(snap, by))
}
