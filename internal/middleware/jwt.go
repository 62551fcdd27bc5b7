package middleware // reusable HTTP middleware for the hostel API

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming of the Authorization header

	"github.com/golang-jwt/jwt/v5" // JWT parsing and validation
	"github.com/labstack/echo/v4"  // Echo middleware types

	"github.com/iliyamo/hostel-management/internal/service"
)

// Context keys set by JWTAuth.
const (
	CtxAdminID  = "admin_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token.
// On success the admin id, username and role claims are stored on the Echo
// context and the username becomes the actor of every audit entry written
// while serving the request.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Only HMAC signed tokens are accepted; anything else is
			// rejected before the secret is handed out.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			// Numeric claims decode as float64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			name, _ := claims["name"].(string)
			role, _ := claims["role"].(string)

			c.Set(CtxAdminID, int(sub))
			c.Set(CtxUsername, name)
			c.Set(CtxRole, role)
			if name != "" {
				c.SetRequest(c.Request().WithContext(service.WithActor(c.Request().Context(), name)))
			}
			return next(c)
		}
	}
}

// AdminID returns the authenticated admin id or 0.
func AdminID(c echo.Context) int {
	id, _ := c.Get(CtxAdminID).(int)
	return id
}
