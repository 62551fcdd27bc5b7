package model

import "time"

// Attendance is one roll-call mark. Date is always truncated to midnight.
type Attendance struct {
	ID          int              `json:"id"`
	StudentID   int              `json:"student_id" validate:"gt=0"`
	StudentName string           `json:"student_name"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status" validate:"enum"`
	Remarks     string           `json:"remarks,omitempty"`
}

func (a Attendance) RecordID() int { return a.ID }

func (a Attendance) WithRecordID(id int) Attendance { a.ID = id; return a }

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
