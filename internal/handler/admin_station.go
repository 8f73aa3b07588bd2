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

type stationReq struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// validateStationReq checks the name and coordinate ranges and reports
// every invalid field.
func validateStationReq(req stationReq) []string {
	var bad []string
	if strings.TrimSpace(req.Name) == "" {
		bad = append(bad, "name")
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		bad = append(bad, "latitude")
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		bad = append(bad, "longitude")
	}
	return bad
}

// CreateStation: POST /v1/admin/stations
func (h *AdminHandler) CreateStation(c echo.Context) error {
	var req stationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if bad := validateStationReq(req); len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Station{
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.Stations.Create(ctx, s); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "station name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create station failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// ListStations: GET /v1/stations
func (h *AdminHandler) ListStations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stations, err := h.Stations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list stations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stations": stations})
}

// GetStation: GET /v1/stations/:id
func (h *AdminHandler) GetStation(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Stations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load station failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateStation: PUT /v1/admin/stations/:id
func (h *AdminHandler) UpdateStation(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req stationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if bad := validateStationReq(req); len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Station{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.Stations.Update(ctx, s); err != nil {
		switch err {
		case repository.ErrStationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "station name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update station failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteStation: DELETE /v1/admin/stations/:id
func (h *AdminHandler) DeleteStation(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Stations.Delete(ctx, id); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete station failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
