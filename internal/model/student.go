package model

import "time"

// Student is a resident of the hostel. RoomID and RoomNumber are either
// both set or both empty; they are maintained by the room assignment
// operations only.
type Student struct {
	ID                 int        `json:"id"`
	FirstName          string     `json:"first_name" validate:"required,max=50"`
	LastName           string     `json:"last_name" validate:"required,max=50"`
	RegistrationNumber string     `json:"registration_number" validate:"required,max=30"`
	CNIC               string     `json:"cnic" validate:"max=20"`
	Phone              string     `json:"phone" validate:"max=20"`
	Email              string     `json:"email" validate:"omitempty,email"`
	Address            string     `json:"address"`
	GuardianName       string     `json:"guardian_name"`
	GuardianPhone      string     `json:"guardian_phone"`
	Department         string     `json:"department"`
	RoomID             *int       `json:"room_id,omitempty"`
	RoomNumber         string     `json:"room_number,omitempty"`
	JoinDate           time.Time  `json:"join_date"`
	LeaveDate          *time.Time `json:"leave_date,omitempty"`
	IsActive           bool       `json:"is_active"`
}

func (s Student) RecordID() int { return s.ID }

func (s Student) WithRecordID(id int) Student { s.ID = id; return s }

// FullName joins the first and last name.
func (s Student) FullName() string { return s.FirstName + " " + s.LastName }

// HasRoom reports whether the student currently occupies a room.
func (s Student) HasRoom() bool { return s.RoomID != nil }

// InRoom reports whether the student occupies the room with the given id.
func (s Student) InRoom(roomID int) bool { return s.RoomID != nil && *s.RoomID == roomID }
