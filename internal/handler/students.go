package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// studentReq is the body of the create and update endpoints. Residency
// fields are not accepted; rooms change through the assignment endpoints.
type studentReq struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	RegistrationNumber string `json:"registration_number"`
	CNIC               string `json:"cnic"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	GuardianName       string `json:"guardian_name"`
	GuardianPhone      string `json:"guardian_phone"`
	Department         string `json:"department"`
	JoinDate           string `json:"join_date"` // YYYY-MM-DD, defaults to today
}

func (r studentReq) student() (model.Student, bool) {
	st := model.Student{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		RegistrationNumber: r.RegistrationNumber,
		CNIC:               r.CNIC,
		Phone:              r.Phone,
		Email:              r.Email,
		Address:            r.Address,
		GuardianName:       r.GuardianName,
		GuardianPhone:      r.GuardianPhone,
		Department:         r.Department,
	}
	if s := strings.TrimSpace(r.JoinDate); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return st, false
		}
		st.JoinDate = d
	}
	return st, true
}

// ListStudents handles GET /v1/students. Filters: ?q= searches names,
// registration numbers and phones; ?active=true, ?without_room=true and
// ?room_id= narrow the list.
func (h *Handler) ListStudents(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.Student
		err   error
	)
	switch {
	case strings.TrimSpace(c.QueryParam("q")) != "":
		items, err = h.Hostel.Students.Search(ctx, c.QueryParam("q"))
	case c.QueryParam("room_id") != "":
		roomID, ok := queryInt(c, "room_id", 0)
		if !ok {
			return badRequest(c, "invalid room_id")
		}
		items, err = h.Hostel.Students.ListByRoom(ctx, roomID)
	case c.QueryParam("without_room") == "true":
		items, err = h.Hostel.Students.ListWithoutRoom(ctx)
	case c.QueryParam("active") == "true":
		items, err = h.Hostel.Students.ListActive(ctx)
	default:
		items, err = h.Hostel.Students.List(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// GetStudent handles GET /v1/students/:id.
func (h *Handler) GetStudent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	st, err := h.Hostel.Students.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// CreateStudent handles POST /v1/students.
func (h *Handler) CreateStudent(c echo.Context) error {
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	st, ok := req.student()
	if !ok {
		return badRequest(c, "join_date must be YYYY-MM-DD")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Students.Register(ctx, st)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateStudent handles PUT /v1/students/:id.
func (h *Handler) UpdateStudent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	st, ok := req.student()
	if !ok {
		return badRequest(c, "join_date must be YYYY-MM-DD")
	}
	st.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Students.Update(ctx, st)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeactivateStudent handles DELETE /v1/students/:id. Students are never
// removed; they are marked as left and their room is released.
func (h *Handler) DeactivateStudent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Students.Deactivate(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignRoom handles POST /v1/students/:id/room with {"room_id": n}.
func (h *Handler) AssignRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var body struct {
		RoomID int `json:"room_id"`
	}
	if err := c.Bind(&body); err != nil || body.RoomID <= 0 {
		return badRequest(c, "room_id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Students.AssignRoom(ctx, id, body.RoomID); err != nil {
		return fail(c, err)
	}
	st, err := h.Hostel.Students.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// UnassignRoom handles DELETE /v1/students/:id/room.
func (h *Handler) UnassignRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Students.UnassignRoom(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SwapRooms handles POST /v1/students/swap with {"first_id", "second_id"}.
func (h *Handler) SwapRooms(c echo.Context) error {
	var body struct {
		FirstID  int `json:"first_id"`
		SecondID int `json:"second_id"`
	}
	if err := c.Bind(&body); err != nil || body.FirstID <= 0 || body.SecondID <= 0 {
		return badRequest(c, "first_id and second_id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Students.SwapRooms(ctx, body.FirstID, body.SecondID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StudentHistory handles GET /v1/students/:id/history.
func (h *Handler) StudentHistory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Hostel.Students.History(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}
