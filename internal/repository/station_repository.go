package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// ErrStationNotFound indicates that a station lookup yielded no rows.
var ErrStationNotFound = errors.New("station not found")

// StationRepo provides persistence for stations.
type StationRepo struct {
	db *sql.DB
}

// NewStationRepo constructs a StationRepo with the given DB handle.
func NewStationRepo(db *sql.DB) *StationRepo {
	return &StationRepo{db: db}
}

// Create inserts a station.  Station names are unique; a duplicate
// name surfaces as ErrConflict.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
	const q = `INSERT INTO stations (name, latitude, longitude) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude)
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
	s.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM stations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a station by ID or ErrStationNotFound.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
	const q = `SELECT id, name, latitude, longitude, created_at, updated_at FROM stations WHERE id = ?`
	var s model.Station
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all stations ordered by name.
func (r *StationRepo) List(ctx context.Context) ([]model.Station, error) {
	const q = `SELECT id, name, latitude, longitude, created_at, updated_at FROM stations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stations := make([]model.Station, 0)
	for rows.Next() {
		var s model.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// Update modifies a station's name and coordinates.
func (r *StationRepo) Update(ctx context.Context, s *model.Station) error {
	const q = `UPDATE stations SET name = ?, latitude = ?, longitude = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude, s.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM stations WHERE id = ?`, s.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrStationNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a station; routes touching it are removed by the FK
// cascade.
func (r *StationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStationNotFound
	}
	return nil
}
