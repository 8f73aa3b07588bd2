package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// ErrRouteNotFound indicates that a route lookup yielded no rows.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo provides persistence for routes between stations.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo {
	return &RouteRepo{db: db}
}

// Create inserts a route and populates its generated ID.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM routes WHERE id = ?`, rt.ID).
		Scan(&rt.CreatedAt)
}

// RouteInfo is a route joined with its station names, as returned
// by List and GetByID for display.
type RouteInfo struct {
	ID          uint64 `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    uint32 `json:"distance"`
}

// GetByID retrieves a route with station names or ErrRouteNotFound.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteInfo, error) {
	const q = `SELECT r.id, s1.name, s2.name, r.distance
	           FROM routes r
	           JOIN stations s1 ON s1.id = r.source_id
	           JOIN stations s2 ON s2.id = r.destination_id
	           WHERE r.id = ?`
	var ri RouteInfo
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ri.ID, &ri.Source, &ri.Destination, &ri.Distance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &ri, nil
}

// List returns all routes with resolved station names.
func (r *RouteRepo) List(ctx context.Context) ([]RouteInfo, error) {
	const q = `SELECT r.id, s1.name, s2.name, r.distance
	           FROM routes r
	           JOIN stations s1 ON s1.id = r.source_id
	           JOIN stations s2 ON s2.id = r.destination_id
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	routes := make([]RouteInfo, 0)
	for rows.Next() {
		var ri RouteInfo
		if err := rows.Scan(&ri.ID, &ri.Source, &ri.Destination, &ri.Distance); err != nil {
			return nil, err
		}
		routes = append(routes, ri)
	}
	return routes, rows.Err()
}

// Delete removes a route; journeys on it are removed by the FK
// cascade unless tickets restrict them.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return ErrConflict
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRouteNotFound
	}
	return nil
}
