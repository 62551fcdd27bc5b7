package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
)

func TestEnsureDefaultAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	created, err := f.h.Admins.EnsureDefault(f.ctx, "admin", "admin123")
	if err != nil || !created {
		t.Fatalf("ensure default: %v %v", created, err)
	}
	if again, _ := f.h.Admins.EnsureDefault(f.ctx, "admin", "admin123"); again {
		t.Fatal("default admin created twice")
	}

	a, err := f.h.Admins.Authenticate(f.ctx, "  ADMIN ", "admin123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if a.Role != model.AdminRoleSuperAdmin || a.LastLogin == nil || !a.LastLogin.Equal(testNow) {
		t.Fatalf("admin = %+v", a)
	}
	if _, err := f.h.Admins.Authenticate(f.ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := f.h.Admins.Authenticate(f.ctx, "nobody", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestLegacyHashIsUpgraded(t *testing.T) {
	st := MemoryStores()
	sum := sha256.Sum256([]byte("Legacy1" + "HostelSalt2026"))
	legacy := base64.StdEncoding.EncodeToString(sum[:])
	if _, err := st.Admins.Add(context.Background(), model.Admin{Username: "old", PasswordHash: legacy, Role: model.AdminRoleAdmin, IsActive: true}); err != nil {
		t.Fatal(err)
	}
	f := newFixtureWith(t, st)
	a, err := f.h.Admins.Authenticate(f.ctx, "old", "Legacy1")
	if err != nil {
		t.Fatalf("legacy login: %v", err)
	}
	if !strings.HasPrefix(a.PasswordHash, "$2") {
		t.Fatalf("hash not upgraded: %q", a.PasswordHash)
	}
	if _, err := f.h.Admins.Authenticate(f.ctx, "old", "Legacy1"); err != nil {
		t.Fatalf("login after upgrade: %v", err)
	}
}

func TestChangePasswordRevokesRefreshTokens(t *testing.T) {
	f := newFixture(t)
	a, err := f.h.Admins.Create(f.ctx, model.Admin{Username: "warden"}, "Secret1")
	if err != nil {
		t.Fatal(err)
	}
	rt, err := f.h.Admins.IssueRefresh(f.ctx, a.ID, 7)
	if err != nil {
		t.Fatal(err)
	}
	if owner, err := f.h.Admins.ValidateRefresh(f.ctx, rt.Raw); err != nil || owner.ID != a.ID {
		t.Fatalf("validate refresh: %+v %v", owner, err)
	}

	if err := f.h.Admins.ChangePassword(f.ctx, a.ID, "nope", "Better2"); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("wrong old password err = %v", err)
	}
	if err := f.h.Admins.ChangePassword(f.ctx, a.ID, "Secret1", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password err = %v", err)
	}
	if err := f.h.Admins.ChangePassword(f.ctx, a.ID, "Secret1", "Better2"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.h.Admins.ValidateRefresh(f.ctx, rt.Raw); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("refresh after password change err = %v", err)
	}
	if _, err := f.h.Admins.Authenticate(f.ctx, "warden", "Better2"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	if _, err := f.h.Admins.Create(f.ctx, model.Admin{Username: "Clerk"}, "Secret1"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.h.Admins.Create(f.ctx, model.Admin{Username: "clerk"}, "Secret1"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("err = %v", err)
	}
}

func TestRevokeRefresh(t *testing.T) {
	f := newFixture(t)
	a, _ := f.h.Admins.Create(f.ctx, model.Admin{Username: "clerk"}, "Secret1")
	rt, _ := f.h.Admins.IssueRefresh(f.ctx, a.ID, 7)
	if err := f.h.Admins.RevokeRefresh(f.ctx, rt.Raw); err != nil {
		t.Fatal(err)
	}
	if _, err := f.h.Admins.ValidateRefresh(f.ctx, rt.Raw); err == nil {
		t.Fatal("revoked token accepted")
	}
	if err := f.h.Admins.RevokeRefresh(f.ctx, "unknown"); err != nil {
		t.Fatalf("unknown token: %v", err)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := map[string]bool{
		"Admin1":   true,
		"admin1":   false,
		"ADMINX":   false,
		"Ab1":      false,
		"Pässw0rd": true,
	}
	for pw, want := range cases {
		if got := ValidatePasswordStrength(pw); got != want {
			t.Errorf("ValidatePasswordStrength(%q) = %v", pw, got)
		}
	}
}

func TestFailedLoginDoesNotWaitForWriters(t *testing.T) {
	f := newFixture(t)
	if _, err := f.h.Admins.EnsureDefault(f.ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	// A long running mutation elsewhere holds the shared lock.
	f.h.Admins.mu.Lock()
	defer f.h.Admins.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := f.h.Admins.Authenticate(f.ctx, "admin", "wrong")
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("failed login blocked on the write lock")
	}
}

func TestLoginRejectedWhenPasswordChangedMeanwhile(t *testing.T) {
	f := newFixture(t)
	if _, err := f.h.Admins.EnsureDefault(f.ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}
	a, _ := f.h.Admins.byUsername(f.ctx, "admin")
	if err := f.h.Admins.ChangePassword(f.ctx, a.ID, "admin123", "Changed1"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.h.Admins.Authenticate(f.ctx, "admin", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password err = %v", err)
	}
	got, err := f.h.Admins.Authenticate(f.ctx, "admin", "Changed1")
	if err != nil || got.LastLogin == nil {
		t.Fatalf("new password login = %+v, %v", got, err)
	}
}
