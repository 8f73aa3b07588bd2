package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

// TicketRequest is one desired seat in a booking request.
type TicketRequest struct {
	JourneyID   uint64 `json:"journey_id"`
	CargoNumber uint32 `json:"cargo_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

// Booker creates orders with their tickets as a single atomic unit of
// work.  It is safe for concurrent use: many bookings may run in
// parallel against the shared store, and no application-level locking
// is involved.  Two bookings racing for the same seat both reach the
// ticket insert; the store's uq_ticket_seat unique index lets exactly
// one commit and fails the other with a SeatTakenError.  Which of the
// two wins is deliberately left to the store's first-committer-wins
// semantics.
type Booker struct {
	db       *sql.DB
	journeys *repository.JourneyRepo
	orders   *repository.OrderRepo
}

// NewBooker constructs a Booker.  All dependencies must be non-nil.
func NewBooker(db *sql.DB, journeys *repository.JourneyRepo, orders *repository.OrderRepo) *Booker {
	if db == nil || journeys == nil || orders == nil {
		panic("nil dependency passed to NewBooker")
	}
	return &Booker{db: db, journeys: journeys, orders: orders}
}

// CreateOrder books every requested seat for the user inside one
// transaction.  For each request, in the order given, it resolves the
// journey's train, validates the seat coordinates against the train's
// layout, and inserts the ticket.  Any failure rolls the whole
// transaction back, including the order row itself: a failed booking
// leaves no trace.  On success the committed order is returned with
// its tickets echoing each request.
//
// Failure modes, all terminal for the call:
//   - ErrEmptyOrder           no tickets requested (checked up front)
//   - *JourneyNotFoundError   request references a missing journey
//   - *SeatRangeError         seat coordinates outside train bounds
//   - *SeatTakenError         seat already sold (unique index hit)
func (b *Booker) CreateOrder(ctx context.Context, userID uint64, requests []TicketRequest) (*repository.OrderDetail, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyOrder
	}
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	order := &model.Order{UserID: userID}
	if err := b.orders.CreateTx(ctx, tx, order); err != nil {
		return nil, err
	}

	tickets := make([]model.Ticket, 0, len(requests))
	for i, req := range requests {
		train, err := b.journeys.GetTrainTx(ctx, tx, req.JourneyID)
		if err != nil {
			if errors.Is(err, repository.ErrJourneyNotFound) {
				return nil, &JourneyNotFoundError{Index: i, JourneyID: req.JourneyID}
			}
			return nil, err
		}
		if violations := ValidateSeat(req.CargoNumber, req.SeatNumber, train); len(violations) > 0 {
			return nil, &SeatRangeError{Index: i, Fields: violations}
		}
		ticket := model.Ticket{
			OrderID:     order.ID,
			JourneyID:   req.JourneyID,
			CargoNumber: req.CargoNumber,
			SeatNumber:  req.SeatNumber,
		}
		if err := b.orders.CreateTicketTx(ctx, tx, &ticket); err != nil {
			if errors.Is(err, repository.ErrSeatTaken) {
				return nil, &SeatTakenError{
					Index:       i,
					JourneyID:   req.JourneyID,
					CargoNumber: req.CargoNumber,
					SeatNumber:  req.SeatNumber,
				}
			}
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	detail := &repository.OrderDetail{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]repository.TicketDetail, 0, len(tickets)),
	}
	for _, t := range tickets {
		detail.Tickets = append(detail.Tickets, repository.TicketDetail{
			ID:          t.ID,
			JourneyID:   t.JourneyID,
			CargoNumber: t.CargoNumber,
			SeatNumber:  t.SeatNumber,
		})
	}
	return detail, nil
}
