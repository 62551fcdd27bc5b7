package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // status codes and response helpers

	"github.com/labstack/echo/v4"
)

// Health is a liveness endpoint used by load balancers and monitoring. It
// returns a plain text "ok" with HTTP 200.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
