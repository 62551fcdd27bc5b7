package model

import "time"

type Notice struct {
	ID        int            `json:"id"`
	Title     string         `json:"title" validate:"required,max=200"`
	Content   string         `json:"content" validate:"required"`
	PostedBy  string         `json:"posted_by"`
	PostedAt  time.Time      `json:"posted_at"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Priority  NoticePriority `json:"priority" validate:"enum"`
	IsActive  bool           `json:"is_active"`
}

func (n Notice) RecordID() int { return n.ID }

func (n Notice) WithRecordID(id int) Notice { n.ID = id; return n }

// VisibleAt reports whether the notice is shown on the board at now.
func (n Notice) VisibleAt(now time.Time) bool {
	return n.IsActive && (n.ExpiresAt == nil || n.ExpiresAt.After(now))
}
