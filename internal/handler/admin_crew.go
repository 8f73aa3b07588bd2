package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

type crewReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateCrewMember: POST /v1/admin/crew
func (h *AdminHandler) CreateCrewMember(c echo.Context) error {
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &model.CrewMember{FirstName: first, LastName: last}
	if err := h.Crew.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create crew member failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// ListCrewMembers: GET /v1/crew
func (h *AdminHandler) ListCrewMembers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	members, err := h.Crew.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list crew failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"crew_members": members})
}

// UpdateCrewMember: PUT /v1/admin/crew/:id
func (h *AdminHandler) UpdateCrewMember(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &model.CrewMember{ID: id, FirstName: first, LastName: last}
	if err := h.Crew.Update(ctx, m); err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update crew member failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteCrewMember: DELETE /v1/admin/crew/:id
func (h *AdminHandler) DeleteCrewMember(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Crew.Delete(ctx, id); err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete crew member failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
