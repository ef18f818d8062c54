package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/model"
	"github.com/RAJESH7500/reservation-app/internal/queue"
	"github.com/RAJESH7500/reservation-app/internal/repository"
	"github.com/RAJESH7500/reservation-app/internal/validation"
)

// SeatingEvents receives the lifecycle events Seat and Finish emit
// after their transaction commits.
type SeatingEvents interface {
	PublishTableSeated(ctx context.Context, event queue.TableSeatedEvent) error
	PublishTableFinished(ctx context.Context, event queue.TableFinishedEvent) error
}

// TableService is the table assignment engine: the only component that
// creates or clears the table↔reservation link. Seat and Finish run
// their precondition checks and both row writes inside one database
// transaction with row locks, so two racing calls on the same table
// cannot both succeed. Events are published after commit, best-effort:
// a publish failure never fails the operation.
type TableService struct {
	tables       *repository.TableRepo
	reservations *repository.ReservationRepo
	events       SeatingEvents
	now          func() time.Time
}

// NewTableService constructs a TableService. The repositories must be
// non-nil; events may be nil to disable event publishing.
func NewTableService(tables *repository.TableRepo, reservations *repository.ReservationRepo, events SeatingEvents) *TableService {
	if tables == nil || reservations == nil {
		panic("nil repository passed to NewTableService")
	}
	return &TableService{
		tables:       tables,
		reservations: reservations,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the payload and persists a new free table.
func (s *TableService) Create(ctx context.Context, payload map[string]any) (*model.Table, error) {
	t, err := validation.Table(payload)
	if err != nil {
		return nil, err
	}
	if err := s.tables.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get fetches a table by id.
func (s *TableService) Get(ctx context.Context, id uint64) (*model.Table, error) {
	t, err := s.tables.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Table cannot be found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every table ordered by table name.
func (s *TableService) List(ctx context.Context) ([]model.Table, error) {
	return s.tables.List(ctx)
}

// Seat assigns a booked reservation to a free table and marks the
// reservation seated. The table's own reference column is the source
// of truth for occupancy; the reservation status check only guards
// against seating the same party twice at different tables. On any
// rejection the transaction rolls back and neither entity is mutated.
func (s *TableService) Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, *model.Reservation, error) {
	tx, err := s.tables.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, apperr.Internal("failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	table, err := s.tables.GetForUpdateTx(ctx, tx, tableID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("Table cannot be found: %d", tableID)
	}
	if err != nil {
		return nil, nil, err
	}
	res, err := s.reservations.GetForUpdateTx(ctx, tx, reservationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("Reservation cannot be found: %d", reservationID)
	}
	if err != nil {
		return nil, nil, err
	}

	if table.Capacity < res.People {
		return nil, nil, apperr.RuleViolation("insufficient table capacity")
	}
	if table.Occupied() {
		return nil, nil, apperr.RuleViolation("table is already occupied")
	}
	if res.Status == model.StatusSeated {
		return nil, nil, apperr.RuleViolation("reservation is already seated")
	}

	if err := s.tables.AssignReservationTx(ctx, tx, tableID, reservationID); err != nil {
		return nil, nil, err
	}
	if err := s.reservations.UpdateStatusTx(ctx, tx, reservationID, model.StatusSeated); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	table.ReservationID = &reservationID
	res.Status = model.StatusSeated

	if s.events != nil {
		_ = s.events.PublishTableSeated(ctx, queue.TableSeatedEvent{
			TableID:       table.ID,
			TableName:     table.TableName,
			ReservationID: res.ID,
			FirstName:     res.FirstName,
			LastName:      res.LastName,
			People:        res.People,
			SeatedAt:      s.now().Format(time.RFC3339),
		})
	}
	return table, res, nil
}

// Finish ends the visit at an occupied table: the reservation link is
// cleared and the linked reservation becomes finished. Finishing a
// free table is rejected without mutation.
func (s *TableService) Finish(ctx context.Context, tableID uint64) (*model.Table, *model.Reservation, error) {
	tx, err := s.tables.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, apperr.Internal("failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	table, err := s.tables.GetForUpdateTx(ctx, tx, tableID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("Table cannot be found: %d", tableID)
	}
	if err != nil {
		return nil, nil, err
	}
	if !table.Occupied() {
		return nil, nil, apperr.RuleViolation("table is not occupied")
	}

	reservationID := *table.ReservationID
	res, err := s.reservations.GetForUpdateTx(ctx, tx, reservationID)
	if errors.Is(err, sql.ErrNoRows) {
		// Dangling reference: the link exists but the reservation row is
		// gone. Surface it instead of silently clearing the table.
		return nil, nil, apperr.NotFound("Reservation cannot be found: %d", reservationID)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := s.tables.ClearReservationTx(ctx, tx, tableID); err != nil {
		return nil, nil, err
	}
	if err := s.reservations.UpdateStatusTx(ctx, tx, reservationID, model.StatusFinished); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	table.ReservationID = nil
	res.Status = model.StatusFinished

	if s.events != nil {
		_ = s.events.PublishTableFinished(ctx, queue.TableFinishedEvent{
			TableID:       table.ID,
			TableName:     table.TableName,
			ReservationID: res.ID,
			FinishedAt:    s.now().Format(time.RFC3339),
		})
	}
	return table, res, nil
}
