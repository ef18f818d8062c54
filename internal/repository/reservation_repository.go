package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/RAJESH7500/reservation-app/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Dates
// are stored in a DATE column and times in a TIME column; both are
// surfaced in their wire formats (YYYY-MM-DD and HH:mm).  All
// timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `reservation_id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, created_at, updated_at`

const selectReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = ?`

// Create inserts a new reservation and populates the generated ID and
// timestamps on the provided record by querying the row back.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.Status,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	stored, err := scanReservationRow(r.db.QueryRowContext(ctx, selectReservationByID, res.ID))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// GetByID returns a single reservation.  When no reservation with the
// given ID exists, sql.ErrNoRows is returned.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	return scanReservationRow(r.db.QueryRowContext(ctx, selectReservationByID, id))
}

// GetForUpdateTx loads a reservation inside a transaction with a row
// lock so concurrent seat attempts on the same reservation serialize.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = selectReservationByID + ` FOR UPDATE`
	return scanReservationRow(tx.QueryRowContext(ctx, q, id))
}

// Update replaces the mutable fields of a reservation and returns the
// stored row.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	const q = `UPDATE reservations SET first_name = ?, last_name = ?, mobile_number = ?, reservation_date = ?, reservation_time = ?, people = ?, status = ? WHERE reservation_id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.Status,
		res.ID,
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.ID)
}

const updateReservationStatus = `UPDATE reservations SET status = ? WHERE reservation_id = ?`

// UpdateStatus persists a new status for the reservation.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx, updateReservationStatus, status, id)
	return err
}

// UpdateStatusTx is UpdateStatus within the scope of an existing
// transaction.  The caller must commit or rollback.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, updateReservationStatus, status, id)
	return err
}

// ListByDate returns all reservations on the given date except the
// finished ones, ordered by reservation time so the daily view needs
// no re-sort.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_date = ? AND status <> 'finished' ORDER BY reservation_time`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// SearchByPhone matches reservations whose mobile number, reduced to
// digits, contains the given digit fragment.  Results are ordered by
// reservation date.
func (r *ReservationRepo) SearchByPhone(ctx context.Context, digits string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', '') LIKE CONCAT('%', ?, '%') ORDER BY reservation_date`
	rows, err := r.db.QueryContext(ctx, q, digits)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// List returns every reservation ordered by reservation time.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY reservation_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// Delete removes a reservation row.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE reservation_id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(s rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var date time.Time
	var clock string
	if err := s.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&date, &clock, &res.People, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	res.ReservationDate = date.Format("2006-01-02")
	res.ReservationTime = formatClock(clock)
	return &res, nil
}

func scanReservationRow(row *sql.Row) (*model.Reservation, error) {
	return scanReservation(row)
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// formatClock trims a TIME column value (HH:MM:SS) down to HH:mm.
func formatClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
