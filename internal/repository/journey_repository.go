package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// ErrJourneyNotFound indicates that a journey lookup yielded no rows.
var ErrJourneyNotFound = errors.New("journey not found")

// JourneyRepo provides persistence for journeys and the read side of
// seat availability.  Availability is computed in SQL against
// committed ticket rows and is advisory only: between a read and a
// subsequent booking, concurrent commits may change it.  The
// authoritative check is the uq_ticket_seat unique index at write
// time, never this repository.
type JourneyRepo struct {
	db *sql.DB
}

// NewJourneyRepo constructs a JourneyRepo with the given DB handle.
func NewJourneyRepo(db *sql.DB) *JourneyRepo {
	return &JourneyRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *JourneyRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a journey and assigns the given crew members to it.
// Schedule sanity (arrival after departure) is validated by the admin
// handler before this is called.
func (r *JourneyRepo) Create(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const q = `INSERT INTO journeys (train_id, route_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, j.TrainID, j.RouteID, j.DepartureTime.UTC(), j.ArrivalTime.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = uint64(id)
	if err := replaceCrewTx(ctx, tx, j.ID, crewIDs); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM journeys WHERE id = ?`, j.ID).
		Scan(&j.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// replaceCrewTx rewrites the journey_crew rows for a journey inside
// the caller's transaction.  A nil slice leaves the journey without
// crew.
func replaceCrewTx(ctx context.Context, tx *sql.Tx, journeyID uint64, crewIDs []uint64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM journey_crew WHERE journey_id = ?`, journeyID); err != nil {
		return err
	}
	if len(crewIDs) == 0 {
		return nil
	}
	query := `INSERT INTO journey_crew (journey_id, crew_id) VALUES `
	args := make([]interface{}, 0, len(crewIDs)*2)
	for i, cid := range crewIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, journeyID, cid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// JourneyInfo is one entry of the journey listing: schedule, train
// and route names, and the live tickets_available annotation
// (capacity minus tickets sold at read time).
type JourneyInfo struct {
	ID               uint64    `json:"id"`
	Train            string    `json:"train"`
	Source           string    `json:"source"`
	Destination      string    `json:"destination"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable uint32    `json:"tickets_available"`
}

// ListWithAvailability returns all journeys ordered by departure time
// descending, each annotated with the number of unsold seats.
func (r *JourneyRepo) ListWithAvailability(ctx context.Context) ([]JourneyInfo, error) {
	const q = `SELECT j.id, t.name, s1.name, s2.name, j.departure_time, j.arrival_time,
	                  (t.cargo_count * t.seats_per_cargo) - COUNT(tk.id) AS tickets_available
	           FROM journeys j
	           JOIN trains t ON t.id = j.train_id
	           JOIN routes r ON r.id = j.route_id
	           JOIN stations s1 ON s1.id = r.source_id
	           JOIN stations s2 ON s2.id = r.destination_id
	           LEFT JOIN tickets tk ON tk.journey_id = j.id
	           GROUP BY j.id, t.name, s1.name, s2.name, j.departure_time, j.arrival_time,
	                    t.cargo_count, t.seats_per_cargo
	           ORDER BY j.departure_time DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	journeys := make([]JourneyInfo, 0)
	for rows.Next() {
		var ji JourneyInfo
		if err := rows.Scan(&ji.ID, &ji.Train, &ji.Source, &ji.Destination,
			&ji.DepartureTime, &ji.ArrivalTime, &ji.TicketsAvailable); err != nil {
			return nil, err
		}
		journeys = append(journeys, ji)
	}
	return journeys, rows.Err()
}

// AvailableSeats computes the remaining seats for a single journey:
// train capacity minus committed tickets.  The bounds and uniqueness
// invariants guarantee the value is never negative.
func (r *JourneyRepo) AvailableSeats(ctx context.Context, journeyID uint64) (uint32, error) {
	const q = `SELECT (t.cargo_count * t.seats_per_cargo) - COUNT(tk.id)
	           FROM journeys j
	           JOIN trains t ON t.id = j.train_id
	           LEFT JOIN tickets tk ON tk.journey_id = j.id
	           WHERE j.id = ?
	           GROUP BY t.cargo_count, t.seats_per_cargo`
	var available uint32
	err := r.db.QueryRowContext(ctx, q, journeyID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrJourneyNotFound
		}
		return 0, err
	}
	return available, nil
}

// GetTrainTx resolves the train operating a journey inside the
// caller's transaction.  The booking service calls this to obtain the
// capacity bounds each ticket request is validated against; running
// it in the same transaction as the ticket inserts keeps the bounds
// consistent with the rows being written.  Returns ErrJourneyNotFound
// when the journey does not exist.
func (r *JourneyRepo) GetTrainTx(ctx context.Context, tx *sql.Tx, journeyID uint64) (*model.Train, error) {
	const q = `SELECT t.id, t.name, t.train_type_id, t.cargo_count, t.seats_per_cargo
	           FROM journeys j
	           JOIN trains t ON t.id = j.train_id
	           WHERE j.id = ?`
	var t model.Train
	err := tx.QueryRowContext(ctx, q, journeyID).Scan(
		&t.ID, &t.Name, &t.TrainTypeID, &t.CargoCount, &t.SeatsPerCargo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJourneyNotFound
		}
		return nil, err
	}
	return &t, nil
}

// TakenPlace is one sold seat on a journey, as exposed in the
// journey detail response.
type TakenPlace struct {
	CargoNumber uint32 `json:"cargo_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

// JourneyDetail is the full journey view: listing fields plus crew
// names and every sold seat.
type JourneyDetail struct {
	JourneyInfo
	Crew        []string     `json:"crew_members"`
	TakenPlaces []TakenPlace `json:"taken_places"`
}

// GetDetail loads a single journey with availability, assigned crew
// and the list of taken places.  Returns ErrJourneyNotFound when the
// journey does not exist.
func (r *JourneyRepo) GetDetail(ctx context.Context, journeyID uint64) (*JourneyDetail, error) {
	const q = `SELECT j.id, t.name, s1.name, s2.name, j.departure_time, j.arrival_time,
	                  (t.cargo_count * t.seats_per_cargo) - COUNT(tk.id) AS tickets_available
	           FROM journeys j
	           JOIN trains t ON t.id = j.train_id
	           JOIN routes r ON r.id = j.route_id
	           JOIN stations s1 ON s1.id = r.source_id
	           JOIN stations s2 ON s2.id = r.destination_id
	           LEFT JOIN tickets tk ON tk.journey_id = j.id
	           WHERE j.id = ?
	           GROUP BY j.id, t.name, s1.name, s2.name, j.departure_time, j.arrival_time,
	                    t.cargo_count, t.seats_per_cargo`
	var d JourneyDetail
	err := r.db.QueryRowContext(ctx, q, journeyID).Scan(&d.ID, &d.Train, &d.Source, &d.Destination,
		&d.DepartureTime, &d.ArrivalTime, &d.TicketsAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJourneyNotFound
		}
		return nil, err
	}
	d.Crew = make([]string, 0)
	const crewQ = `SELECT c.first_name, c.last_name
	               FROM journey_crew jc
	               JOIN crew_members c ON c.id = jc.crew_id
	               WHERE jc.journey_id = ?
	               ORDER BY c.last_name, c.first_name`
	crows, err := r.db.QueryContext(ctx, crewQ, journeyID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var first, last string
		if err := crows.Scan(&first, &last); err != nil {
			return nil, err
		}
		d.Crew = append(d.Crew, first+" "+last)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}
	d.TakenPlaces = make([]TakenPlace, 0)
	const seatQ = `SELECT cargo_number, seat_number FROM tickets
	               WHERE journey_id = ?
	               ORDER BY cargo_number, seat_number`
	srows, err := r.db.QueryContext(ctx, seatQ, journeyID)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var tp TakenPlace
		if err := srows.Scan(&tp.CargoNumber, &tp.SeatNumber); err != nil {
			return nil, err
		}
		d.TakenPlaces = append(d.TakenPlaces, tp)
	}
	return &d, srows.Err()
}

// Update rewrites a journey's schedule, train, route and crew.
func (r *JourneyRepo) Update(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const q = `UPDATE journeys SET train_id = ?, route_id = ?, departure_time = ?, arrival_time = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, j.TrainID, j.RouteID, j.DepartureTime.UTC(), j.ArrivalTime.UTC(), j.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		var exists uint64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM journeys WHERE id = ?`, j.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrJourneyNotFound
			}
			return err
		}
	}
	if err := replaceCrewTx(ctx, tx, j.ID, crewIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a journey.  The tickets FK restricts deletion while
// sold tickets reference the journey; that case surfaces as
// ErrConflict.
func (r *JourneyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journeys WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "foreign key") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJourneyNotFound
	}
	return nil
}
