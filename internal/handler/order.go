package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/booking"
	"github.com/iliyamo/train-station-booking/internal/queue"
	"github.com/iliyamo/train-station-booking/internal/repository"
	queue_publisher "github.com/iliyamo/train-station-booking/internal/service"
)

// BookingHandler serves order creation and the customer's order views.
type BookingHandler struct {
	Booker *booking.Booker
	Orders *repository.OrderRepo
}

// NewBookingHandler constructs a BookingHandler and panics on nil deps.
func NewBookingHandler(b *booking.Booker, orders *repository.OrderRepo) *BookingHandler {
	if b == nil || orders == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Booker: b, Orders: orders}
}

type createOrderReq struct {
	Tickets []booking.TicketRequest `json:"tickets"`
}

// CreateOrder: POST /v1/orders
//
// Books every requested seat atomically.  Error mapping:
//   - empty ticket list, out-of-range seat, unknown journey -> 400
//   - seat already sold -> 409 (client may retry with another seat)
func (h *BookingHandler) CreateOrder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	detail, err := h.Booker.CreateOrder(ctx, uid, req.Tickets)
	if err != nil {
		var rangeErr *booking.SeatRangeError
		var takenErr *booking.SeatTakenError
		var journeyErr *booking.JourneyNotFoundError
		switch {
		case errors.Is(err, booking.ErrEmptyOrder):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order must contain at least one ticket"})
		case errors.As(err, &rangeErr):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "seat out of range",
				"index":  rangeErr.Index,
				"fields": rangeErr.Fields,
			})
		case errors.As(err, &journeyErr):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":      "journey not found",
				"index":      journeyErr.Index,
				"journey_id": journeyErr.JourneyID,
			})
		case errors.As(err, &takenErr):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":        "seat already taken",
				"index":        takenErr.Index,
				"journey_id":   takenErr.JourneyID,
				"cargo_number": takenErr.CargoNumber,
				"seat_number":  takenErr.SeatNumber,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}

	// Publish after commit; a broker outage must not fail the booking.
	event := queue.OrderCreatedEvent{
		OrderID:   detail.ID,
		UserID:    uid,
		Tickets:   make([]queue.TicketInfo, 0, len(detail.Tickets)),
		CreatedAt: detail.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range detail.Tickets {
		event.Tickets = append(event.Tickets, queue.TicketInfo{
			JourneyID:   t.JourneyID,
			CargoNumber: t.CargoNumber,
			SeatNumber:  t.SeatNumber,
		})
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishOrderCreated(pubCtx, event)
	}()

	return c.JSON(http.StatusCreated, detail)
}

// ListMyOrders: GET /v1/my-orders
func (h *BookingHandler) ListMyOrders(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list orders failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder: GET /v1/orders/:id
//
// Scoped to the authenticated user; another user's order reads as 404.
func (h *BookingHandler) GetOrder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Orders.GetByIDForUser(ctx, id, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load order failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// DeleteOrder: DELETE /v1/orders/:id
//
// Cancels an order; the cascade removes its tickets and frees the
// seats for rebooking.
func (h *BookingHandler) DeleteOrder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.DeleteForUser(ctx, id, uid); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete order failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
