package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// ErrCrewNotFound indicates that a crew member lookup yielded no rows.
var ErrCrewNotFound = errors.New("crew member not found")

// CrewRepo provides persistence for crew members.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo {
	return &CrewRepo{db: db}
}

// Create inserts a crew member and populates the generated ID.
func (r *CrewRepo) Create(ctx context.Context, m *model.CrewMember) error {
	const q = `INSERT INTO crew_members (first_name, last_name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.FirstName, m.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM crew_members WHERE id = ?`, m.ID).
		Scan(&m.CreatedAt)
}

// GetByID retrieves a crew member or ErrCrewNotFound.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.CrewMember, error) {
	const q = `SELECT id, first_name, last_name, created_at FROM crew_members WHERE id = ?`
	var m model.CrewMember
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.FirstName, &m.LastName, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all crew members ordered by last then first name.
func (r *CrewRepo) List(ctx context.Context) ([]model.CrewMember, error) {
	const q = `SELECT id, first_name, last_name, created_at FROM crew_members ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]model.CrewMember, 0)
	for rows.Next() {
		var m model.CrewMember
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Update modifies a crew member's name.
func (r *CrewRepo) Update(ctx context.Context, m *model.CrewMember) error {
	const q = `UPDATE crew_members SET first_name = ?, last_name = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.FirstName, m.LastName, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM crew_members WHERE id = ?`, m.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCrewNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a crew member; journey assignments are removed by
// the FK cascade.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crew_members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCrewNotFound
	}
	return nil
}
