package repository

import (
	"context"
	"database/sql"

	"github.com/RAJESH7500/reservation-app/internal/model"
)

// TableRepo provides CRUD operations for dining tables and owns the
// SQL behind the table↔reservation link.  The reservation_id column
// is nullable; NULL means the table is free.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions
// that span repositories.
func (r *TableRepo) DB() *sql.DB { return r.db }

const tableColumns = `table_id, table_name, capacity, reservation_id`

const selectTableByID = `SELECT ` + tableColumns + ` FROM tables WHERE table_id = ?`

// Create inserts a new free table and populates its generated ID.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO tables (table_name, capacity) VALUES (?, ?)`
	result, err := r.db.ExecContext(ctx, q, t.TableName, t.Capacity)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID returns a single table.  When no table with the given ID
// exists, sql.ErrNoRows is returned.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	return scanTable(r.db.QueryRowContext(ctx, selectTableByID, id))
}

// GetForUpdateTx loads a table inside a transaction with a row lock.
// Seat and finish both take this lock first, which serializes racing
// assignments on the same table.
func (r *TableRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
	const q = selectTableByID + ` FOR UPDATE`
	return scanTable(tx.QueryRowContext(ctx, q, id))
}

// AssignReservationTx sets the table's reservation reference within
// the scope of an existing transaction.
func (r *TableRepo) AssignReservationTx(ctx context.Context, tx *sql.Tx, tableID, reservationID uint64) error {
	const q = `UPDATE tables SET reservation_id = ? WHERE table_id = ?`
	_, err := tx.ExecContext(ctx, q, reservationID, tableID)
	return err
}

// ClearReservationTx removes the table's reservation reference within
// the scope of an existing transaction.
func (r *TableRepo) ClearReservationTx(ctx context.Context, tx *sql.Tx, tableID uint64) error {
	const q = `UPDATE tables SET reservation_id = NULL WHERE table_id = ?`
	_, err := tx.ExecContext(ctx, q, tableID)
	return err
}

// List returns every table ordered by table name for display.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables ORDER BY table_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a table row.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM tables WHERE table_id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func scanTable(s rowScanner) (*model.Table, error) {
	var t model.Table
	var resID sql.NullInt64
	if err := s.Scan(&t.ID, &t.TableName, &t.Capacity, &resID); err != nil {
		return nil, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		t.ReservationID = &id
	}
	return &t, nil
}
