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

type trainTypeReq struct {
	Name string `json:"name"`
}

type trainReq struct {
	Name          string `json:"name"`
	TrainTypeID   uint64 `json:"train_type_id"`
	CargoCount    uint32 `json:"cargo_count"`
	SeatsPerCargo uint32 `json:"seats_per_cargo"`
}

// CreateTrainType: POST /v1/admin/train-types
func (h *AdminHandler) CreateTrainType(c echo.Context) error {
	var req trainTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.TrainType{Name: req.Name}
	if err := h.Trains.CreateType(ctx, t); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "train type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train type failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTrainTypes: GET /v1/train-types
func (h *AdminHandler) ListTrainTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	types, err := h.Trains.ListTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list train types failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"train_types": types})
}

// DeleteTrainType: DELETE /v1/admin/train-types/:id
func (h *AdminHandler) DeleteTrainType(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Trains.DeleteType(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrTrainTypeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "train type not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "train type is in use"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete train type failed"})
	}
}

// validateTrainReq reports every invalid field, not just the first.
func validateTrainReq(req trainReq) []string {
	var bad []string
	if strings.TrimSpace(req.Name) == "" {
		bad = append(bad, "name")
	}
	if req.TrainTypeID == 0 {
		bad = append(bad, "train_type_id")
	}
	if req.CargoCount == 0 {
		bad = append(bad, "cargo_count")
	}
	if req.SeatsPerCargo == 0 {
		bad = append(bad, "seats_per_cargo")
	}
	return bad
}

// CreateTrain: POST /v1/admin/trains
func (h *AdminHandler) CreateTrain(c echo.Context) error {
	var req trainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if bad := validateTrainReq(req); len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Train{
		Name:          strings.TrimSpace(req.Name),
		TrainTypeID:   req.TrainTypeID,
		CargoCount:    req.CargoCount,
		SeatsPerCargo: req.SeatsPerCargo,
	}
	if err := h.Trains.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":              t.ID,
		"name":            t.Name,
		"train_type_id":   t.TrainTypeID,
		"cargo_count":     t.CargoCount,
		"seats_per_cargo": t.SeatsPerCargo,
		"capacity":        t.Capacity(),
	})
}

// ListTrains: GET /v1/trains
func (h *AdminHandler) ListTrains(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trains, err := h.Trains.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list trains failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"trains": trains})
}

// UpdateTrain: PUT /v1/admin/trains/:id
func (h *AdminHandler) UpdateTrain(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req trainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if bad := validateTrainReq(req); len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Train{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		TrainTypeID:   req.TrainTypeID,
		CargoCount:    req.CargoCount,
		SeatsPerCargo: req.SeatsPerCargo,
	}
	if err := h.Trains.Update(ctx, t); err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update train failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":              t.ID,
		"name":            t.Name,
		"train_type_id":   t.TrainTypeID,
		"cargo_count":     t.CargoCount,
		"seats_per_cargo": t.SeatsPerCargo,
		"capacity":        t.Capacity(),
	})
}

// DeleteTrain: DELETE /v1/admin/trains/:id
func (h *AdminHandler) DeleteTrain(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Trains.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrTrainNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "train has booked journeys"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete train failed"})
	}
}
