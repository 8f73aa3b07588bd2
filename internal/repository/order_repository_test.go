package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRepo(t *testing.T) (*OrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepo(db), mock
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, isDuplicateEntry(errors.New("Error 1062: Duplicate entry '5-2-14' for key 'uq_ticket_seat'")))
	assert.False(t, isDuplicateEntry(errors.New("Error 1452: Cannot add or update a child row")))
	assert.False(t, isDuplicateEntry(nil))
}

func TestListByUserGroupsTickets(t *testing.T) {
	repo, mock := newOrderRepo(t)
	older := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT id, created_at FROM orders WHERE user_id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(9, newer).
			AddRow(7, older))
	mock.ExpectQuery("FROM tickets tk").
		WithArgs(uint64(9), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "id", "journey_id", "name", "name", "cargo_number", "seat_number",
		}).
			AddRow(7, 11, 5, "Central", "Harbor", 1, 4).
			AddRow(9, 12, 5, "Central", "Harbor", 2, 17).
			AddRow(9, 13, 6, "Harbor", "Summit", 1, 1))

	orders, err := repo.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, uint64(9), orders[0].ID)
	assert.Len(t, orders[0].Tickets, 2)
	assert.Equal(t, uint64(7), orders[1].ID)
	require.Len(t, orders[1].Tickets, 1)
	assert.Equal(t, "Central", orders[1].Tickets[0].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserEmpty(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectQuery("SELECT id, created_at FROM orders WHERE user_id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	orders, err := repo.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUserMiss(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectQuery("SELECT id, created_at FROM orders WHERE id").
		WithArgs(uint64(7), uint64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDForUser(context.Background(), 7, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForUser(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectExec("DELETE FROM orders").
		WithArgs(uint64(7), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteForUser(context.Background(), 7, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForUserWrongOwner(t *testing.T) {
	repo, mock := newOrderRepo(t)

	mock.ExpectExec("DELETE FROM orders").
		WithArgs(uint64(7), uint64(13)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteForUser(context.Background(), 7, 13)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
