package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/model"
	"github.com/RAJESH7500/reservation-app/internal/repository"
)

const (
	qInsertReservation  = `INSERT INTO reservations (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status) VALUES (?, ?, ?, ?, ?, ?, ?)`
	qSelectReservation  = `SELECT reservation_id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, created_at, updated_at FROM reservations WHERE reservation_id = ?`
	qSearchReservations = `SELECT reservation_id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, created_at, updated_at FROM reservations WHERE REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', '') LIKE CONCAT('%', ?, '%') ORDER BY reservation_date`
	qReservationsByDate = `SELECT reservation_id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, created_at, updated_at FROM reservations WHERE reservation_date = ? AND status <> 'finished' ORDER BY reservation_time`
)

func newReservationService(t *testing.T) (*ReservationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := NewReservationService(repository.NewReservationRepo(db))
	// Fixed clock: Monday 2025-03-10 12:00 UTC.
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, mock
}

func createPayload() map[string]any {
	return map[string]any{
		"first_name":       "Mouse",
		"last_name":        "Whale",
		"mobile_number":    "123-123-1235",
		"reservation_date": "2025-03-12",
		"reservation_time": "18:00",
		"people":           float64(2),
	}
}

func TestCreate_PersistsBookedReservation(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectExec(regexp.QuoteMeta(qInsertReservation)).
		WithArgs("Mouse", "Whale", "123-123-1235", "2025-03-12", "18:00", 2, model.StatusBooked).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta(qSelectReservation)).WithArgs(7).
		WillReturnRows(storedReservationRow(7, "18:00:00", 2, model.StatusBooked))

	res, err := svc.Create(context.Background(), createPayload())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res.ID)
	assert.Equal(t, model.StatusBooked, res.Status)
	assert.Equal(t, "2025-03-12", res.ReservationDate)
	assert.Equal(t, "18:00", res.ReservationTime)
	assert.False(t, res.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidPayloadDoesNotTouchDatabase(t *testing.T) {
	svc, mock := newReservationService(t)

	payload := createPayload()
	delete(payload, "people")
	_, err := svc.Create(context.Background(), payload)
	assertKind(t, err, apperr.KindInvalidField)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery(regexp.QuoteMeta(qSelectReservation)).WithArgs(42).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	_, err := svc.Get(context.Background(), 42)
	assertKind(t, err, apperr.KindNotFound)
	assert.EqualError(t, err, "Reservation cannot be found: 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_FinishedIsTerminal(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery(regexp.QuoteMeta(qSelectReservation)).WithArgs(7).
		WillReturnRows(storedReservationRow(7, "18:00:00", 2, model.StatusFinished))

	_, err := svc.UpdateStatus(context.Background(), 7, model.StatusSeated)
	assertKind(t, err, apperr.KindRuleViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_UnknownRejected(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery(regexp.QuoteMeta(qSelectReservation)).WithArgs(7).
		WillReturnRows(storedReservationRow(7, "18:00:00", 2, model.StatusBooked))

	_, err := svc.UpdateStatus(context.Background(), 7, "unknown")
	assertKind(t, err, apperr.KindInvalidValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_CancelsBookedReservation(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery(regexp.QuoteMeta(qSelectReservation)).WithArgs(7).
		WillReturnRows(storedReservationRow(7, "18:00:00", 2, model.StatusBooked))
	mock.ExpectExec(regexp.QuoteMeta(qUpdateStatus)).WithArgs(model.StatusCancelled, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.UpdateStatus(context.Background(), 7, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByPhone_NormalizesFragment(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery(regexp.QuoteMeta(qSearchReservations)).WithArgs("5550164").
		WillReturnRows(storedReservationRow(7, "20:00:00", 6, model.StatusBooked))

	items, err := svc.SearchByPhone(context.Background(), "555-0164")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "202-555-0164", items[0].MobileNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDate_RejectsMalformedDate(t *testing.T) {
	svc, mock := newReservationService(t)

	_, err := svc.ListByDate(context.Background(), "tomorrow")
	assertKind(t, err, apperr.KindInvalidValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDate_QueriesDailyView(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery(regexp.QuoteMeta(qReservationsByDate)).WithArgs("2025-03-12").
		WillReturnRows(storedReservationRow(7, "18:00:00", 2, model.StatusBooked))

	items, err := svc.ListByDate(context.Background(), "2025-03-12")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "18:00", items[0].ReservationTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDigitsOnly(t *testing.T) {
	cases := map[string]string{
		"555-0164":       "5550164",
		"(202) 555-0164": "2025550164",
		"1231231235":     "1231231235",
		"none":           "",
	}
	for in, want := range cases {
		if got := digitsOnly(in); got != want {
			t.Fatalf("digitsOnly(%q) = %q, want %q", in, got, want)
		}
	}
}

func storedReservationRow(id uint64, clock string, people int, status string) *sqlmock.Rows {
	ts := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(reservationCols).AddRow(
		id, "Rick", "Sanchez", "202-555-0164",
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), clock,
		people, status, ts, ts,
	)
}
