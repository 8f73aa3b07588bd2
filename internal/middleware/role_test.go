package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runWithRole(role any, allowed ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runWithRole("ADMIN", "ADMIN", "CUSTOMER")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	rec := runWithRole("CUSTOMER", "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec := runWithRole(nil, "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsNonString(t *testing.T) {
	rec := runWithRole(42, "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
