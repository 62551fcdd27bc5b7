package model

import "time"

// AuditLog is an append-only record of an administrative action.
type AuditLog struct {
	ID          int       `json:"id"`
	Action      string    `json:"action"`
	Module      string    `json:"module"`
	PerformedBy string    `json:"performed_by"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details,omitempty"`
}

func (a AuditLog) RecordID() int { return a.ID }

func (a AuditLog) WithRecordID(id int) AuditLog { a.ID = id; return a }
