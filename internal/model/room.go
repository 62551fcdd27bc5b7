package model

// Room is a bookable hostel room. CurrentOccupancy never exceeds Capacity
// and never drops below zero.
type Room struct {
	ID               int      `json:"id"`
	RoomNumber       string   `json:"room_number" validate:"required,max=10"`
	Floor            int      `json:"floor" validate:"gte=0"`
	Capacity         int      `json:"capacity" validate:"gte=1"`
	CurrentOccupancy int      `json:"current_occupancy"`
	RoomType         RoomType `json:"room_type" validate:"enum"`
	MonthlyRent      int64    `json:"monthly_rent" validate:"gte=0"`
	HasAC            bool     `json:"has_ac"`
	HasAttachedBath  bool     `json:"has_attached_bath"`
	IsActive         bool     `json:"is_active"`
}

func (r Room) RecordID() int { return r.ID }

func (r Room) WithRecordID(id int) Room { r.ID = id; return r }

func (r Room) IsFull() bool { return r.CurrentOccupancy >= r.Capacity }

// Available reports whether the room can take another occupant.
func (r Room) Available() bool { return r.IsActive && !r.IsFull() }

// FreeBeds returns the number of beds left, never negative.
func (r Room) FreeBeds() int {
	if n := r.Capacity - r.CurrentOccupancy; n > 0 {
		return n
	}
	return 0
}
