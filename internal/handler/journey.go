package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/repository"
)

// JourneyHandler serves the customer-facing read side of journeys:
// the listing with live seat availability and the detail view with
// taken places.
type JourneyHandler struct {
	Journeys *repository.JourneyRepo
}

// NewJourneyHandler constructs a JourneyHandler and panics on a nil repo.
func NewJourneyHandler(journeys *repository.JourneyRepo) *JourneyHandler {
	if journeys == nil {
		panic("nil repository passed to NewJourneyHandler")
	}
	return &JourneyHandler{Journeys: journeys}
}

// ListJourneys: GET /v1/journeys
//
// Each entry carries tickets_available computed against committed
// tickets at read time.  The number is advisory: a booking racing with
// this read may consume seats before the client acts on it.
func (h *JourneyHandler) ListJourneys(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	journeys, err := h.Journeys.ListWithAvailability(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list journeys failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"journeys": journeys})
}

// GetJourney: GET /v1/journeys/:id
func (h *JourneyHandler) GetJourney(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Journeys.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrJourneyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load journey failed"})
	}
	return c.JSON(http.StatusOK, detail)
}
