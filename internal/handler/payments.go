package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/service"
)

// ListPayments handles GET /v1/payments. Filters: ?student_id=,
// ?month=&year=, ?status=pending and ?status=defaulters.
func (h *Handler) ListPayments(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.Payment
		err   error
	)
	switch {
	case c.QueryParam("student_id") != "":
		id, ok := queryInt(c, "student_id", 0)
		if !ok {
			return badRequest(c, "invalid student_id")
		}
		items, err = h.Hostel.Payments.ListForStudent(ctx, id)
	case c.QueryParam("month") != "" || c.QueryParam("year") != "":
		month, year, ok := h.period(c)
		if !ok {
			return badRequest(c, "invalid month/year")
		}
		items, err = h.Hostel.Payments.ListByMonth(ctx, month, year)
	case c.QueryParam("status") == "pending":
		items, err = h.Hostel.Payments.ListPending(ctx)
	case c.QueryParam("status") == "defaulters":
		items, err = h.Hostel.Payments.Defaulters(ctx)
	default:
		items, err = h.Hostel.Payments.List(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// GetPayment handles GET /v1/payments/:id.
func (h *Handler) GetPayment(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Hostel.Payments.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// RecordPayment handles POST /v1/payments. The receipt number, payment
// date and student name are filled in by the server.
func (h *Handler) RecordPayment(c echo.Context) error {
	var body struct {
		StudentID int                 `json:"student_id"`
		Amount    int64               `json:"amount"`
		Month     int                 `json:"month"`
		Year      int                 `json:"year"`
		Method    model.PaymentMethod `json:"method"`
		Status    model.PaymentStatus `json:"status"`
		Remarks   string              `json:"remarks"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Hostel.Payments.Record(ctx, model.Payment{
		StudentID: body.StudentID,
		Amount:    body.Amount,
		Month:     body.Month,
		Year:      body.Year,
		Method:    body.Method,
		Status:    body.Status,
		Remarks:   body.Remarks,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdatePaymentStatus handles PATCH /v1/payments/:id with {"status": ...}.
func (h *Handler) UpdatePaymentStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var body struct {
		Status model.PaymentStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Hostel.Payments.UpdateStatus(ctx, id, body.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// PaymentReceipt handles GET /v1/payments/:id/receipt and answers the
// printable receipt as plain text.
func (h *Handler) PaymentReceipt(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	text, err := h.Hostel.Payments.GenerateReceipt(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.String(http.StatusOK, text)
}

// Revenue handles GET /v1/payments/revenue: the all-time total and the
// total of ?month=&year= (default: this month).
func (h *Handler) Revenue(c echo.Context) error {
	month, year, ok := h.period(c)
	if !ok {
		return badRequest(c, "invalid month/year")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	total, err := h.Hostel.Payments.TotalRevenue(ctx)
	if err != nil {
		return fail(c, err)
	}
	monthly, err := h.Hostel.Payments.RevenueByMonth(ctx, month, year)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":           total,
		"total_formatted": service.FormatAmount(total),
		"month":           month,
		"year":            year,
		"monthly":         monthly,
	})
}

// MarkOverdue handles POST /v1/payments/overdue and runs the sweep that the
// scheduler otherwise runs daily.
func (h *Handler) MarkOverdue(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	n, err := h.Hostel.Payments.MarkOverdue(ctx, h.now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"marked": n})
}

// ----- fee structures -----

type feeReq struct {
	RoomType        model.RoomType `json:"room_type"`
	MonthlyRent     int64          `json:"monthly_rent"`
	MessFee         int64          `json:"mess_fee"`
	UtilityCharges  int64          `json:"utility_charges"`
	SecurityDeposit int64          `json:"security_deposit"`
	LaundryFee      int64          `json:"laundry_fee"`
	Description     string         `json:"description"`
	IsActive        *bool          `json:"is_active"`
}

func (r feeReq) fee() model.FeeStructure {
	return model.FeeStructure{
		RoomType:        r.RoomType,
		MonthlyRent:     r.MonthlyRent,
		MessFee:         r.MessFee,
		UtilityCharges:  r.UtilityCharges,
		SecurityDeposit: r.SecurityDeposit,
		LaundryFee:      r.LaundryFee,
		Description:     r.Description,
		IsActive:        r.IsActive == nil || *r.IsActive,
	}
}

// feeView adds the computed monthly total to a fee structure.
type feeView struct {
	model.FeeStructure
	TotalMonthly int64 `json:"total_monthly"`
}

func viewFee(f model.FeeStructure) feeView { return feeView{FeeStructure: f, TotalMonthly: f.TotalMonthly()} }

// ListFees handles GET /v1/fees; ?room_type= returns the active structure
// of one room type.
func (h *Handler) ListFees(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if rt := model.RoomType(c.QueryParam("room_type")); rt != "" {
		f, err := h.Hostel.Fees.ByRoomType(ctx, rt)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, viewFee(f))
	}
	fees, err := h.Hostel.Fees.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	items := make([]feeView, 0, len(fees))
	for _, f := range fees {
		items = append(items, viewFee(f))
	}
	return list(c, items)
}

// CreateFee handles POST /v1/fees.
func (h *Handler) CreateFee(c echo.Context) error {
	var req feeReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	f, err := h.Hostel.Fees.Create(ctx, req.fee())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, viewFee(f))
}

// UpdateFee handles PUT /v1/fees/:id.
func (h *Handler) UpdateFee(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req feeReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	f := req.fee()
	f.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Fees.Update(ctx, f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, viewFee(out))
}

// GenerateFees handles POST /v1/fees/generate?month=&year= and creates the
// pending payments of every resident for that period.
func (h *Handler) GenerateFees(c echo.Context) error {
	month, year, ok := h.period(c)
	if !ok {
		return badRequest(c, "invalid month/year")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	n, err := h.Hostel.Fees.GenerateMonthlyFees(ctx, month, year)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"created": n, "month": month, "year": year})
}
