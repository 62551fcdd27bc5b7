package model

import "time"

// Booking is the history of a student's stay in a room. At most one
// booking per student is current.
type Booking struct {
	ID          int        `json:"id"`
	StudentID   int        `json:"student_id"`
	StudentName string     `json:"student_name"`
	RoomID      int        `json:"room_id"`
	RoomNumber  string     `json:"room_number"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsCurrent   bool       `json:"is_current"`
}

func (b Booking) RecordID() int { return b.ID }

func (b Booking) WithRecordID(id int) Booking { b.ID = id; return b }
