package model

import "time"

const (
	AdminRoleAdmin      = "Admin"
	AdminRoleSuperAdmin = "SuperAdmin"
)

// Admin is an operator account. PasswordHash is never serialised to API
// responses; handlers expose AdminView instead.
type Admin struct {
	ID           int        `json:"id"`
	Username     string     `json:"username" validate:"required,max=50"`
	PasswordHash string     `json:"password_hash"`
	FullName     string     `json:"full_name" validate:"max=100"`
	Role         string     `json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
}

func (a Admin) RecordID() int { return a.ID }

func (a Admin) WithRecordID(id int) Admin { a.ID = id; return a }

// AdminView is the public projection of an Admin.
type AdminView struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
}

func (a Admin) View() AdminView {
	return AdminView{ID: a.ID, Username: a.Username, FullName: a.FullName, Role: a.Role, LastLogin: a.LastLogin, IsActive: a.IsActive}
}

// RefreshToken stores the SHA-256 hash of an issued refresh token. The raw
// token only ever exists on the client.
type RefreshToken struct {
	ID        int        `json:"id"`
	AdminID   int        `json:"admin_id"`
	TokenHash string     `json:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r RefreshToken) RecordID() int { return r.ID }

func (r RefreshToken) WithRecordID(id int) RefreshToken { r.ID = id; return r }

// Usable reports whether the token can still be exchanged at now.
func (r RefreshToken) Usable(now time.Time) bool {
	return r.RevokedAt == nil && r.ExpiresAt.After(now)
}
