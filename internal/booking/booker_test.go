package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-station-booking/internal/repository"
)

func newTestBooker(t *testing.T) (*Booker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBooker(db, repository.NewJourneyRepo(db), repository.NewOrderRepo(db)), mock
}

func trainRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "train_type_id", "cargo_count", "seats_per_cargo"}).
		AddRow(3, "Express 7", 1, 10, 36)
}

func TestCreateOrderEmpty(t *testing.T) {
	b, mock := newTestBooker(t)

	_, err := b.CreateOrder(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderSuccess(t *testing.T) {
	b, mock := newTestBooker(t)
	created := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(trainRows())
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(7), uint64(5), uint32(2), uint32(14)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	detail, err := b.CreateOrder(context.Background(), 42, []TicketRequest{
		{JourneyID: 5, CargoNumber: 2, SeatNumber: 14},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), detail.ID)
	assert.Equal(t, created, detail.CreatedAt)
	require.Len(t, detail.Tickets, 1)
	assert.Equal(t, uint64(11), detail.Tickets[0].ID)
	assert.Equal(t, uint64(5), detail.Tickets[0].JourneyID)
	assert.Equal(t, uint32(2), detail.Tickets[0].CargoNumber)
	assert.Equal(t, uint32(14), detail.Tickets[0].SeatNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderJourneyMissing(t *testing.T) {
	b, mock := newTestBooker(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "train_type_id", "cargo_count", "seats_per_cargo"}))
	mock.ExpectRollback()

	_, err := b.CreateOrder(context.Background(), 42, []TicketRequest{
		{JourneyID: 99, CargoNumber: 1, SeatNumber: 1},
	})
	var notFound *JourneyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, notFound.Index)
	assert.Equal(t, uint64(99), notFound.JourneyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderSeatOutOfRange(t *testing.T) {
	b, mock := newTestBooker(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(trainRows())
	mock.ExpectRollback()

	_, err := b.CreateOrder(context.Background(), 42, []TicketRequest{
		{JourneyID: 5, CargoNumber: 11, SeatNumber: 40},
	})
	var rangeErr *SeatRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 0, rangeErr.Index)
	require.Len(t, rangeErr.Fields, 2)
	assert.Equal(t, "cargo_number", rangeErr.Fields[0].Field)
	assert.Equal(t, "seat_number", rangeErr.Fields[1].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderSeatTaken(t *testing.T) {
	b, mock := newTestBooker(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(trainRows())
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(7), uint64(5), uint32(2), uint32(14)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '5-2-14' for key 'uq_ticket_seat'"))
	mock.ExpectRollback()

	_, err := b.CreateOrder(context.Background(), 42, []TicketRequest{
		{JourneyID: 5, CargoNumber: 2, SeatNumber: 14},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, 0, taken.Index)
	assert.Equal(t, uint64(5), taken.JourneyID)
	assert.Equal(t, uint32(2), taken.CargoNumber)
	assert.Equal(t, uint32(14), taken.SeatNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failure on the second ticket must roll back the first one too.
func TestCreateOrderSecondTicketFails(t *testing.T) {
	b, mock := newTestBooker(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(trainRows())
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(7), uint64(5), uint32(1), uint32(1)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(trainRows())
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(7), uint64(5), uint32(1), uint32(2)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '5-1-2' for key 'uq_ticket_seat'"))
	mock.ExpectRollback()

	_, err := b.CreateOrder(context.Background(), 42, []TicketRequest{
		{JourneyID: 5, CargoNumber: 1, SeatNumber: 1},
		{JourneyID: 5, CargoNumber: 1, SeatNumber: 2},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, 1, taken.Index)
	assert.NoError(t, mock.ExpectationsWereMet())
}
