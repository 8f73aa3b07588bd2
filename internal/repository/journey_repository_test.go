package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJourneyRepo(t *testing.T) (*JourneyRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewJourneyRepo(db), mock
}

func TestListWithAvailability(t *testing.T) {
	repo, mock := newJourneyRepo(t)
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(4 * time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "name", "name", "name", "departure_time", "arrival_time", "tickets_available",
	}).
		AddRow(2, "Express 7", "Central", "Harbor", dep.Add(24*time.Hour), arr.Add(24*time.Hour), 360).
		AddRow(1, "Express 7", "Central", "Harbor", dep, arr, 357)
	mock.ExpectQuery("LEFT JOIN tickets tk").WillReturnRows(rows)

	journeys, err := repo.ListWithAvailability(context.Background())
	require.NoError(t, err)
	require.Len(t, journeys, 2)
	assert.Equal(t, uint64(2), journeys[0].ID)
	assert.Equal(t, uint32(360), journeys[0].TicketsAvailable)
	assert.Equal(t, uint32(357), journeys[1].TicketsAvailable)
	assert.Equal(t, "Central", journeys[1].Source)
	assert.Equal(t, "Harbor", journeys[1].Destination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeats(t *testing.T) {
	repo, mock := newJourneyRepo(t)

	mock.ExpectQuery("LEFT JOIN tickets tk").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(12))

	n, err := repo.AvailableSeats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeatsUnknownJourney(t *testing.T) {
	repo, mock := newJourneyRepo(t)

	mock.ExpectQuery("LEFT JOIN tickets tk").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"available"}))

	_, err := repo.AvailableSeats(context.Background(), 99)
	assert.ErrorIs(t, err, ErrJourneyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetail(t *testing.T) {
	repo, mock := newJourneyRepo(t)
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("LEFT JOIN tickets tk").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "name", "name", "departure_time", "arrival_time", "tickets_available",
		}).AddRow(1, "Express 7", "Central", "Harbor", dep, dep.Add(4*time.Hour), 358))
	mock.ExpectQuery("JOIN crew_members c").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name", "last_name"}).
			AddRow("Maya", "Abbott").
			AddRow("Oren", "Katz"))
	mock.ExpectQuery("SELECT cargo_number, seat_number FROM tickets").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"cargo_number", "seat_number"}).
			AddRow(1, 4).
			AddRow(2, 17))

	d, err := repo.GetDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(358), d.TicketsAvailable)
	assert.Equal(t, []string{"Maya Abbott", "Oren Katz"}, d.Crew)
	require.Len(t, d.TakenPlaces, 2)
	assert.Equal(t, TakenPlace{CargoNumber: 1, SeatNumber: 4}, d.TakenPlaces[0])
	assert.Equal(t, TakenPlace{CargoNumber: 2, SeatNumber: 17}, d.TakenPlaces[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailNotFound(t *testing.T) {
	repo, mock := newJourneyRepo(t)

	mock.ExpectQuery("LEFT JOIN tickets tk").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "name", "name", "departure_time", "arrival_time", "tickets_available",
		}))

	_, err := repo.GetDetail(context.Background(), 5)
	assert.ErrorIs(t, err, ErrJourneyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
