package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-station-booking/internal/booking"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	journeys := repository.NewJourneyRepo(db)
	orders := repository.NewOrderRepo(db)
	return NewBookingHandler(booking.NewBooker(db, journeys, orders), orders), mock
}

func postOrder(h *BookingHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// mimic what JWTAuth stores from the "sub" claim
	c.Set("user_id", float64(42))
	c.Set("role", "CUSTOMER")
	_ = h.CreateOrder(c)
	return rec
}

func TestCreateOrderRejectsEmpty(t *testing.T) {
	h, mock := newBookingHandler(t)

	rec := postOrder(h, `{"tickets":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderMapsSeatTakenToConflict(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "train_type_id", "cargo_count", "seats_per_cargo"}).
			AddRow(3, "Express 7", 1, 10, 36))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(7), uint64(5), uint32(2), uint32(14)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '5-2-14' for key 'uq_ticket_seat'"))
	mock.ExpectRollback()

	rec := postOrder(h, `{"tickets":[{"journey_id":5,"cargo_number":2,"seat_number":14}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "seat already taken", body["error"])
	assert.Equal(t, float64(0), body["index"])
	assert.Equal(t, float64(5), body["journey_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderMapsRangeErrorToBadRequest(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery("FROM journeys j").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "train_type_id", "cargo_count", "seats_per_cargo"}).
			AddRow(3, "Express 7", 1, 10, 36))
	mock.ExpectRollback()

	rec := postOrder(h, `{"tickets":[{"journey_id":5,"cargo_number":0,"seat_number":99}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string `json:"error"`
		Index  int    `json:"index"`
		Fields []struct {
			Field string `json:"field"`
			Max   uint32 `json:"max"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "seat out of range", body.Error)
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "cargo_number", body.Fields[0].Field)
	assert.Equal(t, uint32(10), body.Fields[0].Max)
	assert.Equal(t, "seat_number", body.Fields[1].Field)
	assert.Equal(t, uint32(36), body.Fields[1].Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderMissingUser(t *testing.T) {
	h, _ := newBookingHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(`{"tickets":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.CreateOrder(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
