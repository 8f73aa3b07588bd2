package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

type routeReq struct {
	SourceID      uint64 `json:"source_id"`
	DestinationID uint64 `json:"destination_id"`
	Distance      uint32 `json:"distance"`
}

// CreateRoute: POST /v1/admin/routes
func (h *AdminHandler) CreateRoute(c echo.Context) error {
	var req routeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var bad []string
	if req.SourceID == 0 {
		bad = append(bad, "source_id")
	}
	if req.DestinationID == 0 {
		bad = append(bad, "destination_id")
	}
	if req.SourceID != 0 && req.SourceID == req.DestinationID {
		bad = append(bad, "destination_id")
	}
	if req.Distance == 0 {
		bad = append(bad, "distance")
	}
	if len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Both endpoints must exist before the insert; a dangling FK would
	// otherwise surface as an opaque 500.
	if _, err := h.Stations.GetByID(ctx, req.SourceID); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "source station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load station failed"})
	}
	if _, err := h.Stations.GetByID(ctx, req.DestinationID); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load station failed"})
	}

	rt := &model.Route{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}
	if err := h.Routes.Create(ctx, rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create route failed"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// ListRoutes: GET /v1/routes
func (h *AdminHandler) ListRoutes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	routes, err := h.Routes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list routes failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"routes": routes})
}

// GetRoute: GET /v1/routes/:id
func (h *AdminHandler) GetRoute(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Routes.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load route failed"})
	}
	return c.JSON(http.StatusOK, rt)
}

// DeleteRoute: DELETE /v1/admin/routes/:id
func (h *AdminHandler) DeleteRoute(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Routes.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrRouteNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "route has booked journeys"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete route failed"})
	}
}
