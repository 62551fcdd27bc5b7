package model

import "time"

type Complaint struct {
	ID                int               `json:"id"`
	StudentID         int               `json:"student_id" validate:"gt=0"`
	StudentName       string            `json:"student_name"`
	Title             string            `json:"title" validate:"required,max=100"`
	Description       string            `json:"description" validate:"required"`
	Category          ComplaintCategory `json:"category" validate:"enum"`
	Priority          ComplaintPriority `json:"priority" validate:"enum"`
	CreatedAt         time.Time         `json:"created_at"`
	ResolvedAt        *time.Time        `json:"resolved_at,omitempty"`
	Status            ComplaintStatus   `json:"status"`
	AssignedStaffID   *int              `json:"assigned_staff_id,omitempty"`
	AssignedStaffName string            `json:"assigned_staff_name,omitempty"`
	ResolutionNotes   string            `json:"resolution_notes,omitempty"`
}

func (c Complaint) RecordID() int { return c.ID }

func (c Complaint) WithRecordID(id int) Complaint { c.ID = id; return c }

// IsOpen reports whether the complaint still needs attention.
func (c Complaint) IsOpen() bool {
	return c.Status == ComplaintOpen || c.Status == ComplaintInProgress
}
