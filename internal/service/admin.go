package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/iliyamo/hostel-management/internal/metrics"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
	"github.com/iliyamo/hostel-management/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AdminService manages operator accounts and their refresh tokens.
type AdminService struct {
	base
	admins repository.Store[model.Admin]
	tokens repository.Store[model.RefreshToken]
	cost   int
}

// Authenticate checks a username (case-insensitive) and password against
// the active accounts and stamps the last login. Hashes in an older format
// are replaced with bcrypt on success. Password hashing runs before the
// write lock is taken.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (model.Admin, error) {
	found, ok := s.byUsername(ctx, username)
	if !ok || !found.IsActive || !utils.VerifyPassword(found.PasswordHash, password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return model.Admin{}, ErrInvalidCredentials
	}
	rehashed := ""
	if utils.NeedsRehash(found.PasswordHash) {
		if h, err := utils.HashPassword(password, s.bcryptCost()); err == nil {
			rehashed = h
		} else {
			log.Printf("admins: rehash for %s failed: %v", found.Username, err)
		}
	}

	var a model.Admin
	err := s.write(ctx, func() error {
		var err error
		a, err = s.admins.Get(ctx, found.ID)
		if err != nil {
			return ErrInvalidCredentials
		}
		// The account may have changed while the password was checked.
		if !a.IsActive || a.PasswordHash != found.PasswordHash {
			return ErrInvalidCredentials
		}
		if rehashed != "" {
			a.PasswordHash = rehashed
		}
		now := s.now()
		a.LastLogin = &now
		return s.admins.Update(ctx, a)
	}, s.admins)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return model.Admin{}, err
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.record(WithActor(ctx, a.Username), "Auth", "Login", fmt.Sprintf("%s signed in", a.Username))
	return a, nil
}

// Create adds an active account with a hashed password. Role defaults to
// Admin.
func (s *AdminService) Create(ctx context.Context, a model.Admin, password string) (model.Admin, error) {
	a.ID = 0
	a.Username = strings.TrimSpace(a.Username)
	if a.Role == "" {
		a.Role = model.AdminRoleAdmin
	}
	a.IsActive = true
	if err := check(a); err != nil {
		return model.Admin{}, err
	}
	if !ValidatePasswordStrength(password) {
		return model.Admin{}, ErrWeakPassword
	}
	hash, err := utils.HashPassword(password, s.bcryptCost())
	if err != nil {
		return model.Admin{}, err
	}
	a.PasswordHash = hash
	err = s.write(ctx, func() error {
		if _, taken := s.byUsername(ctx, a.Username); taken {
			return fmt.Errorf("%w (%s)", ErrDuplicateUsername, a.Username)
		}
		var err error
		a, err = s.admins.Add(ctx, a)
		return err
	}, s.admins)
	if err != nil {
		return model.Admin{}, err
	}
	s.record(ctx, "Admin", "Create", fmt.Sprintf("%s (%s)", a.Username, a.Role))
	return a, nil
}

func (s *AdminService) Get(ctx context.Context, id int) (model.Admin, error) {
	a, err := s.admins.Get(ctx, id)
	if err != nil {
		return model.Admin{}, notFound(err, ErrAdminNotFound, id)
	}
	return a, nil
}

// ChangePassword replaces the password after verifying the current one.
// Outstanding refresh tokens of the account are revoked.
func (s *AdminService) ChangePassword(ctx context.Context, id int, oldPassword, newPassword string) error {
	if !ValidatePasswordStrength(newPassword) {
		return ErrWeakPassword
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost())
	if err != nil {
		return err
	}
	var a model.Admin
	err = s.write(ctx, func() error {
		var err error
		if a, err = s.Get(ctx, id); err != nil {
			return err
		}
		if !utils.VerifyPassword(a.PasswordHash, oldPassword) {
			return ErrIncorrectPassword
		}
		a.PasswordHash = hash
		if err := s.admins.Update(ctx, a); err != nil {
			return err
		}
		return s.revokeAll(ctx, id)
	}, s.admins, s.tokens)
	if err != nil {
		return err
	}
	s.record(ctx, "Admin", "Change Password", a.Username)
	return nil
}

// Exists reports whether at least one active account exists.
func (s *AdminService) Exists(ctx context.Context) (bool, error) {
	active, err := filter(ctx, s.admins, func(a model.Admin) bool { return a.IsActive })
	return len(active) > 0, err
}

// EnsureDefault creates the given SuperAdmin account when no active
// account exists. It reports whether an account was created.
func (s *AdminService) EnsureDefault(ctx context.Context, username, password string) (bool, error) {
	ok, err := s.Exists(ctx)
	if err != nil || ok {
		return false, err
	}
	hash, err := utils.HashPassword(password, s.bcryptCost())
	if err != nil {
		return false, err
	}
	a := model.Admin{
		Username:     username,
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         model.AdminRoleSuperAdmin,
		IsActive:     true,
	}
	err = s.write(ctx, func() error {
		var err error
		a, err = s.admins.Add(ctx, a)
		return err
	}, s.admins)
	if err != nil {
		return false, err
	}
	s.record(ctx, "Admin", "Create", fmt.Sprintf("Default account %s created", a.Username))
	return true, nil
}

// IssueRefresh stores the hash of a new refresh token for an account.
func (s *AdminService) IssueRefresh(ctx context.Context, adminID int, ttlDays int) (utils.RefreshToken, error) {
	rt, err := utils.NewRefreshToken(ttlDays)
	if err != nil {
		return utils.RefreshToken{}, err
	}
	err = s.write(ctx, func() error {
		_, err := s.tokens.Add(ctx, model.RefreshToken{
			AdminID:   adminID,
			TokenHash: utils.HashRefreshRaw(rt.Raw),
			ExpiresAt: rt.Exp,
			CreatedAt: s.now(),
		})
		return err
	}, s.tokens)
	if err != nil {
		return utils.RefreshToken{}, err
	}
	return rt, nil
}

// ValidateRefresh returns the active account owning a usable token.
func (s *AdminService) ValidateRefresh(ctx context.Context, raw string) (model.Admin, error) {
	rec, ok := s.tokenByRaw(ctx, raw)
	if !ok || !rec.Usable(s.now()) {
		return model.Admin{}, ErrInvalidRefreshToken
	}
	a, err := s.Get(ctx, rec.AdminID)
	if err != nil || !a.IsActive {
		return model.Admin{}, ErrInvalidRefreshToken
	}
	return a, nil
}

// RevokeRefresh marks a token as revoked. Unknown tokens are ignored.
func (s *AdminService) RevokeRefresh(ctx context.Context, raw string) error {
	return s.write(ctx, func() error {
		rec, ok := s.tokenByRaw(ctx, raw)
		if !ok || rec.RevokedAt != nil {
			return nil
		}
		now := s.now()
		rec.RevokedAt = &now
		return s.tokens.Update(ctx, rec)
	}, s.tokens)
}

// RevokeAllRefresh revokes every outstanding token of an account.
func (s *AdminService) RevokeAllRefresh(ctx context.Context, adminID int) error {
	return s.write(ctx, func() error { return s.revokeAll(ctx, adminID) }, s.tokens)
}

func (s *AdminService) revokeAll(ctx context.Context, adminID int) error {
	all, err := s.tokens.List(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	for _, t := range all {
		if t.AdminID == adminID && t.RevokedAt == nil {
			revoked := now
			t.RevokedAt = &revoked
			if err := s.tokens.Update(ctx, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *AdminService) tokenByRaw(ctx context.Context, raw string) (model.RefreshToken, bool) {
	hash := utils.HashRefreshRaw(raw)
	all, _ := s.tokens.List(ctx)
	for _, t := range all {
		if t.TokenHash == hash {
			return t, true
		}
	}
	return model.RefreshToken{}, false
}

func (s *AdminService) byUsername(ctx context.Context, username string) (model.Admin, bool) {
	username = strings.TrimSpace(username)
	all, _ := s.admins.List(ctx)
	for _, a := range all {
		if strings.EqualFold(a.Username, username) {
			return a, true
		}
	}
	return model.Admin{}, false
}

func (s *AdminService) bcryptCost() int {
	if s.cost < bcrypt.MinCost || s.cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.cost
}

// ValidatePasswordStrength requires at least 6 characters, one upper-case
// letter and one digit.
func ValidatePasswordStrength(password string) bool {
	var upper, digit bool
	for _, r := range password {
		upper = upper || unicode.IsUpper(r)
		digit = digit || unicode.IsDigit(r)
	}
	return len([]rune(password)) >= 6 && upper && digit
}
