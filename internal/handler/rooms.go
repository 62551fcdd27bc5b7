package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/model"
)

// roomReq excludes occupancy, which only the assignment operations change.
type roomReq struct {
	RoomNumber      string         `json:"room_number"`
	Floor           int            `json:"floor"`
	Capacity        int            `json:"capacity"`
	RoomType        model.RoomType `json:"room_type"`
	MonthlyRent     int64          `json:"monthly_rent"`
	HasAC           bool           `json:"has_ac"`
	HasAttachedBath bool           `json:"has_attached_bath"`
	IsActive        *bool          `json:"is_active"` // update only; defaults to true
}

func (r roomReq) room() model.Room {
	active := r.IsActive == nil || *r.IsActive
	return model.Room{
		RoomNumber:      r.RoomNumber,
		Floor:           r.Floor,
		Capacity:        r.Capacity,
		RoomType:        r.RoomType,
		MonthlyRent:     r.MonthlyRent,
		HasAC:           r.HasAC,
		HasAttachedBath: r.HasAttachedBath,
		IsActive:        active,
	}
}

// ListRooms handles GET /v1/rooms; ?status=available|full filters.
func (h *Handler) ListRooms(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		items []model.Room
		err   error
	)
	switch c.QueryParam("status") {
	case "available":
		items, err = h.Hostel.Rooms.ListAvailable(ctx)
	case "full":
		items, err = h.Hostel.Rooms.ListFull(ctx)
	case "":
		items, err = h.Hostel.Rooms.List(ctx)
	default:
		return badRequest(c, "status must be available or full")
	}
	if err != nil {
		return fail(c, err)
	}
	return list(c, items)
}

// GetRoom handles GET /v1/rooms/:id and includes the current occupants.
func (h *Handler) GetRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	r, err := h.Hostel.Rooms.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	occupants, err := h.Hostel.Students.ListByRoom(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if occupants == nil {
		occupants = []model.Student{}
	}
	return c.JSON(http.StatusOK, echo.Map{"room": r, "occupants": occupants, "free_beds": r.FreeBeds()})
}

// CreateRoom handles POST /v1/rooms.
func (h *Handler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	r, err := h.Hostel.Rooms.Create(ctx, req.room())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// UpdateRoom handles PUT /v1/rooms/:id.
func (h *Handler) UpdateRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	r := req.room()
	r.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Hostel.Rooms.Update(ctx, r)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteRoom handles DELETE /v1/rooms/:id. Occupied rooms answer 409.
func (h *Handler) DeleteRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Rooms.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
