package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/handler"
)

// RegisterResidents registers students, rooms, payments and fee structures
// on the authenticated /v1 group.
func RegisterResidents(g *echo.Group, h *handler.Handler) {
	// ---- Students ----
	g.GET("/students", h.ListStudents)
	g.POST("/students", h.CreateStudent)
	g.POST("/students/swap", h.SwapRooms)
	g.GET("/students/:id", h.GetStudent)
	g.PUT("/students/:id", h.UpdateStudent)
	g.DELETE("/students/:id", h.DeactivateStudent) // marks the student as left
	g.POST("/students/:id/room", h.AssignRoom)
	g.DELETE("/students/:id/room", h.UnassignRoom)
	g.GET("/students/:id/history", h.StudentHistory)
	g.GET("/students/:id/attendance", h.StudentAttendance)

	// ---- Rooms ----
	g.GET("/rooms", h.ListRooms)
	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms/:id", h.GetRoom)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)

	// ---- Payments ----
	g.GET("/payments", h.ListPayments)
	g.POST("/payments", h.RecordPayment)
	g.GET("/payments/revenue", h.Revenue)
	g.POST("/payments/overdue", h.MarkOverdue)
	g.GET("/payments/:id", h.GetPayment)
	g.PATCH("/payments/:id", h.UpdatePaymentStatus)
	g.GET("/payments/:id/receipt", h.PaymentReceipt)

	// ---- Fee structures ----
	g.GET("/fees", h.ListFees)
	g.POST("/fees", h.CreateFee)
	g.POST("/fees/generate", h.GenerateFees)
	g.PUT("/fees/:id", h.UpdateFee)
}
