package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

type journeyReq struct {
	TrainID       uint64    `json:"train_id"`
	RouteID       uint64    `json:"route_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []uint64  `json:"crew_ids"`
}

// validateJourneyReq reports every invalid field.  Arrival must be
// strictly after departure.
func validateJourneyReq(req journeyReq) []string {
	var bad []string
	if req.TrainID == 0 {
		bad = append(bad, "train_id")
	}
	if req.RouteID == 0 {
		bad = append(bad, "route_id")
	}
	if req.DepartureTime.IsZero() {
		bad = append(bad, "departure_time")
	}
	if req.ArrivalTime.IsZero() || !req.ArrivalTime.After(req.DepartureTime) {
		bad = append(bad, "arrival_time")
	}
	return bad
}

// CreateJourney: POST /v1/admin/journeys
func (h *AdminHandler) CreateJourney(c echo.Context) error {
	var req journeyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if bad := validateJourneyReq(req); len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Trains.GetByID(ctx, req.TrainID); err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load train failed"})
	}
	if _, err := h.Routes.GetByID(ctx, req.RouteID); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load route failed"})
	}
	for _, cid := range req.CrewIDs {
		if _, err := h.Crew.GetByID(ctx, cid); err != nil {
			if err == repository.ErrCrewNotFound {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "crew member not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load crew member failed"})
		}
	}

	j := &model.Journey{
		TrainID:       req.TrainID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := h.Journeys.Create(ctx, j, req.CrewIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create journey failed"})
	}
	return c.JSON(http.StatusCreated, j)
}

// UpdateJourney: PUT /v1/admin/journeys/:id
func (h *AdminHandler) UpdateJourney(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req journeyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if bad := validateJourneyReq(req); len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields", "fields": bad})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	j := &model.Journey{
		ID:            id,
		TrainID:       req.TrainID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := h.Journeys.Update(ctx, j, req.CrewIDs); err != nil {
		if err == repository.ErrJourneyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update journey failed"})
	}
	return c.JSON(http.StatusOK, j)
}

// DeleteJourney: DELETE /v1/admin/journeys/:id
func (h *AdminHandler) DeleteJourney(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Journeys.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrJourneyNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "journey has sold tickets"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete journey failed"})
	}
}
