package repository // repository defines data access for trains and train types

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// ErrTrainNotFound indicates that a train lookup yielded no rows.
var ErrTrainNotFound = errors.New("train not found")

// ErrTrainTypeNotFound indicates that a train type lookup yielded no rows.
var ErrTrainTypeNotFound = errors.New("train type not found")

// TrainRepo provides persistence for trains and their types.  Train
// layout columns (cargo_count, seats_per_cargo) feed the capacity
// derivation used by the booking subsystem; writes are admin-only.
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo constructs a TrainRepo with the given DB handle.
func NewTrainRepo(db *sql.DB) *TrainRepo {
	return &TrainRepo{db: db}
}

// CreateType inserts a train type and populates its generated ID.
func (r *TrainRepo) CreateType(ctx context.Context, t *model.TrainType) error {
	const q = `INSERT INTO train_types (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, t.Name)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM train_types WHERE id = ?`, t.ID).
		Scan(&t.CreatedAt)
}

// ListTypes returns all train types ordered by name.
func (r *TrainRepo) ListTypes(ctx context.Context) ([]model.TrainType, error) {
	const q = `SELECT id, name, created_at FROM train_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]model.TrainType, 0)
	for rows.Next() {
		var t model.TrainType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// DeleteType removes a train type.  ErrConflict is returned when
// trains still reference it (FK restriction), ErrTrainTypeNotFound
// when no row was deleted.
func (r *TrainRepo) DeleteType(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM train_types WHERE id = ?`, id)
	if err != nil {
		return ErrConflict
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTrainTypeNotFound
	}
	return nil
}

// Create inserts a train and populates its generated ID and
// timestamps.  Layout bounds (positive cargo_count/seats_per_cargo)
// are validated by the admin handler before this is called.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	const q = `INSERT INTO trains (name, train_type_id, cargo_count, seats_per_cargo) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.TrainTypeID, t.CargoCount, t.SeatsPerCargo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM trains WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves a train by its ID.  Returns ErrTrainNotFound
// when no matching row exists.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*model.Train, error) {
	const q = `SELECT id, name, train_type_id, cargo_count, seats_per_cargo, created_at, updated_at
	           FROM trains WHERE id = ?`
	var t model.Train
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.Name, &t.TrainTypeID, &t.CargoCount, &t.SeatsPerCargo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}
	return &t, nil
}

// TrainInfo is a train joined with its type name and derived
// capacity, as returned by List for display.
type TrainInfo struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	TrainType     string `json:"train_type"`
	CargoCount    uint32 `json:"cargo_count"`
	SeatsPerCargo uint32 `json:"seats_per_cargo"`
	Capacity      uint32 `json:"capacity"`
}

// List returns all trains with their type name, ordered by name.
func (r *TrainRepo) List(ctx context.Context) ([]TrainInfo, error) {
	const q = `SELECT t.id, t.name, tt.name, t.cargo_count, t.seats_per_cargo
	           FROM trains t
	           JOIN train_types tt ON tt.id = t.train_type_id
	           ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	trains := make([]TrainInfo, 0)
	for rows.Next() {
		var t TrainInfo
		if err := rows.Scan(&t.ID, &t.Name, &t.TrainType, &t.CargoCount, &t.SeatsPerCargo); err != nil {
			return nil, err
		}
		t.Capacity = t.CargoCount * t.SeatsPerCargo
		trains = append(trains, t)
	}
	return trains, rows.Err()
}

// Update modifies a train's name, type and layout.  Returns
// ErrTrainNotFound when the train does not exist.
func (r *TrainRepo) Update(ctx context.Context, t *model.Train) error {
	const q = `UPDATE trains SET name = ?, train_type_id = ?, cargo_count = ?, seats_per_cargo = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.TrainTypeID, t.CargoCount, t.SeatsPerCargo, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish "missing" from "no change"
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM trains WHERE id = ?`, t.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTrainNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a train.  Journeys referencing it are removed by
// the FK cascade, which in turn cascades to nothing bookable: the
// tickets FK restricts journey deletion while tickets exist, so
// ErrConflict is surfaced in that case.
func (r *TrainRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trains WHERE id = ?`, id)
	if err != nil {
		return ErrConflict
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTrainNotFound
	}
	return nil
}
