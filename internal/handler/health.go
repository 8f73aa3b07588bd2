package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and
// monitoring.  Plain "ok" with a 200.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
