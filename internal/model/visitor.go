package model

import "time"

// Visitor is a visit to a resident. A visit moves from CheckedIn to
// CheckedOut exactly once.
type Visitor struct {
	ID           int           `json:"id"`
	VisitorName  string        `json:"visitor_name" validate:"required,max=100"`
	CNIC         string        `json:"cnic" validate:"max=20"`
	Phone        string        `json:"phone" validate:"max=20"`
	Relationship string        `json:"relationship"`
	StudentID    int           `json:"student_id" validate:"gt=0"`
	StudentName  string        `json:"student_name"`
	Purpose      string        `json:"purpose"`
	CheckInTime  time.Time     `json:"check_in_time"`
	CheckOutTime *time.Time    `json:"check_out_time,omitempty"`
	Status       VisitorStatus `json:"status"`
	PassNumber   string        `json:"pass_number"`
}

func (v Visitor) RecordID() int { return v.ID }

func (v Visitor) WithRecordID(id int) Visitor { v.ID = id; return v }
