package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// OrderRepo provides persistence for orders and their tickets.  The
// write path is transactional only: CreateTx and CreateTicketTx run
// inside a transaction owned by the booking service, so an order row
// and its ticket rows become durable together or not at all.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying sql.DB for transaction control.
func (r *OrderRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts an order row within the caller's transaction and
// populates the generated ID and creation timestamp.  The caller must
// commit or roll back.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, o.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return tx.QueryRowContext(ctx, `SELECT created_at FROM orders WHERE id = ?`, o.ID).
		Scan(&o.CreatedAt)
}

// CreateTicketTx inserts a ticket row within the caller's
// transaction.  A violation of the uq_ticket_seat unique index (the
// seat was sold by a concurrently committed booking) is returned as
// ErrSeatTaken; the caller must then roll back the whole order.
func (r *OrderRepo) CreateTicketTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const q = `INSERT INTO tickets (order_id, journey_id, cargo_number, seat_number) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.OrderID, t.JourneyID, t.CargoNumber, t.SeatNumber)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// TicketDetail is one ticket of an order, with the journey's route
// resolved for display.
type TicketDetail struct {
	ID          uint64 `json:"id"`
	JourneyID   uint64 `json:"journey_id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	CargoNumber uint32 `json:"cargo_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

// OrderDetail is an order with its tickets as returned to customers.
type OrderDetail struct {
	ID        uint64         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Tickets   []TicketDetail `json:"tickets"`
}

// GetByIDForUser returns a single order for the given user.  When no
// order with the ID exists for the user, sql.ErrNoRows is returned.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderDetail, error) {
	var det OrderDetail
	const q = `SELECT id, created_at FROM orders WHERE id = ? AND user_id = ?`
	if err := r.db.QueryRowContext(ctx, q, orderID, userID).Scan(&det.ID, &det.CreatedAt); err != nil {
		return nil, err
	}
	tickets, err := r.ticketsForOrders(ctx, []uint64{det.ID})
	if err != nil {
		return nil, err
	}
	det.Tickets = tickets[det.ID]
	if det.Tickets == nil {
		det.Tickets = []TicketDetail{}
	}
	return &det, nil
}

// ListByUser returns all orders for the given user, newest first,
// each with its tickets populated.  When no orders exist, an empty
// slice is returned.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderDetail, error) {
	const q = `SELECT id, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]OrderDetail, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Tickets = []TicketDetail{}
		details = append(details, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	tickets, err := r.ticketsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range details {
		if ts, ok := tickets[details[i].ID]; ok {
			details[i].Tickets = ts
		}
	}
	return details, nil
}

// ticketsForOrders loads tickets for the given order IDs in a single
// query and groups them by order.
func (r *OrderRepo) ticketsForOrders(ctx context.Context, orderIDs []uint64) (map[uint64][]TicketDetail, error) {
	placeholders := make([]string, 0, len(orderIDs))
	args := make([]interface{}, 0, len(orderIDs))
	for _, id := range orderIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT tk.order_id, tk.id, tk.journey_id, s1.name, s2.name, tk.cargo_number, tk.seat_number
	          FROM tickets tk
	          JOIN journeys j ON j.id = tk.journey_id
	          JOIN routes r ON r.id = j.route_id
	          JOIN stations s1 ON s1.id = r.source_id
	          JOIN stations s2 ON s2.id = r.destination_id
	          WHERE tk.order_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY tk.order_id, tk.cargo_number, tk.seat_number`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64][]TicketDetail)
	for rows.Next() {
		var orderID uint64
		var td TicketDetail
		if err := rows.Scan(&orderID, &td.ID, &td.JourneyID, &td.Source, &td.Destination,
			&td.CargoNumber, &td.SeatNumber); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], td)
	}
	return out, rows.Err()
}

// DeleteForUser removes an order owned by the user; tickets are
// removed by the FK cascade, freeing the seats.  Returns
// sql.ErrNoRows when the order does not exist for this user.
func (r *OrderRepo) DeleteForUser(ctx context.Context, orderID, userID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ? AND user_id = ?`, orderID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
