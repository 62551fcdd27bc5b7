package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/handler"
)

// RegisterOperations registers the day-to-day modules and the reports.
func RegisterOperations(g *echo.Group, h *handler.Handler) {
	// ---- Complaints ----
	g.GET("/complaints", h.ListComplaints)
	g.POST("/complaints", h.CreateComplaint)
	g.GET("/complaints/:id", h.GetComplaint)
	g.PATCH("/complaints/:id", h.UpdateComplaintStatus)
	g.POST("/complaints/:id/assign", h.AssignComplaint)

	// ---- Staff ----
	g.GET("/staff", h.ListStaff)
	g.POST("/staff", h.AddStaff)
	g.GET("/staff/payroll", h.Payroll)
	g.GET("/staff/:id", h.GetStaff)
	g.PUT("/staff/:id", h.UpdateStaff)
	g.DELETE("/staff/:id", h.DeactivateStaff)

	// ---- Visitors ----
	g.GET("/visitors", h.ListVisitors)
	g.POST("/visitors", h.CheckInVisitor)
	g.POST("/visitors/:id/checkout", h.CheckOutVisitor)

	// ---- Attendance ----
	g.GET("/attendance", h.ListAttendance)
	g.POST("/attendance", h.MarkAttendance)

	// ---- Mess menu ----
	g.GET("/mess", h.ListMenu)
	g.POST("/mess", h.AddMenuItem)
	g.PUT("/mess/:id", h.UpdateMenuItem)
	g.DELETE("/mess/:id", h.DeleteMenuItem)

	// ---- Notices ----
	g.GET("/notices", h.ListNotices)
	g.POST("/notices", h.PostNotice)
	g.PUT("/notices/:id", h.UpdateNotice)
	g.DELETE("/notices/:id", h.DeactivateNotice)

	// ---- Reports ----
	g.GET("/dashboard", h.Dashboard)
	g.GET("/audit", h.AuditLog)
	g.GET("/reports/full", h.FullReport)
	g.GET("/reports/export/:kind", h.ExportCSV)
}
