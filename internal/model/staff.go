package model

import "time"

type Staff struct {
	ID       int       `json:"id"`
	FullName string    `json:"full_name" validate:"required,max=100"`
	Phone    string    `json:"phone" validate:"max=20"`
	Email    string    `json:"email" validate:"omitempty,email"`
	CNIC     string    `json:"cnic" validate:"max=20"`
	Role     StaffRole `json:"role" validate:"enum"`
	Salary   int64     `json:"salary" validate:"gte=0"`
	Shift    string    `json:"shift"`
	JoinDate time.Time `json:"join_date"`
	IsActive bool      `json:"is_active"`
}

func (s Staff) RecordID() int { return s.ID }

func (s Staff) WithRecordID(id int) Staff { s.ID = id; return s }
