package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/middleware"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/service"
	"github.com/iliyamo/hostel-management/internal/utils"
)

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type passwordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
type createAdminReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // Admin | SuperAdmin
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	Admin   model.AdminView `json:"admin"`
	Access  tokenPart       `json:"access"`
	Refresh tokenPart       `json:"refresh"`
}

// issue signs an access token and stores a fresh refresh token for a.
func (h *Handler) issue(c echo.Context, a model.Admin) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, a.Username, a.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := h.Hostel.Admins.IssueRefresh(ctx, a.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, authResp{
		Admin:   a.View(),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Login verifies the credentials and returns a token pair. Unknown users,
// wrong passwords and inactive accounts all answer 401 alike.
func (h *Handler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username/password required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Hostel.Admins.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return fail(c, err)
	}
	return h.issue(c, a)
}

// Refresh validates a refresh token, revokes it and issues a new pair.
func (h *Handler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token required")
	}
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Hostel.Admins.ValidateRefresh(ctx, raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	if err := h.Hostel.Admins.RevokeRefresh(ctx, raw); err != nil {
		return fail(c, err)
	}
	return h.issue(c, a)
}

// Logout revokes the given refresh token, or every refresh token of the
// caller when the body carries none.
func (h *Handler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqCtx(c)
	defer cancel()
	if raw != "" {
		if err := h.Hostel.Admins.RevokeRefresh(ctx, raw); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.NoContent(http.StatusNoContent)
	}
	if err := h.Hostel.Admins.RevokeAllRefresh(ctx, middleware.AdminID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the account behind the access token.
func (h *Handler) Me(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Hostel.Admins.Get(ctx, middleware.AdminID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a.View())
}

// ChangePassword replaces the caller's password. All refresh tokens are
// revoked, so other sessions must log in again.
func (h *Handler) ChangePassword(c echo.Context) error {
	var req passwordReq
	if err := c.Bind(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		return badRequest(c, "old_password and new_password required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Hostel.Admins.ChangePassword(ctx, middleware.AdminID(c), req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateAdmin adds an operator account. Only super admins reach it.
func (h *Handler) CreateAdmin(c echo.Context) error {
	var req createAdminReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	role := strings.TrimSpace(req.Role)
	if role != model.AdminRoleSuperAdmin {
		role = model.AdminRoleAdmin
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Hostel.Admins.Create(ctx, model.Admin{
		Username: strings.TrimSpace(req.Username),
		FullName: strings.TrimSpace(req.FullName),
		Role:     role,
	}, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, a.View())
}
