package middleware

// identity.go holds the helpers that name the caller for rate limit and
// cache keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID returns the authenticated admin id as a string, or "anon" when
// JWTAuth has not run for this request.
func userID(c echo.Context) string {
	if id := AdminID(c); id > 0 {
		return strconv.Itoa(id)
	}
	return "anon"
}

// clientIP is the caller address as seen through proxies.
func clientIP(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}
