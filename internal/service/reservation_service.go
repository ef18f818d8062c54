// Package service holds the transport-agnostic core: the reservation
// lifecycle and the table assignment engine. Handlers decode requests
// into payload maps and ids; everything after that point is plain Go
// with explicit parameters, so the same operations could sit behind a
// different transport unchanged.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/model"
	"github.com/RAJESH7500/reservation-app/internal/repository"
	"github.com/RAJESH7500/reservation-app/internal/validation"
)

// ReservationService owns reservation creation, updates and status
// transitions. Every mutating operation runs the existence gate first
// and short-circuits with a not-found error when the reservation is
// absent.
type ReservationService struct {
	repo *repository.ReservationRepo
	now  func() time.Time
}

// NewReservationService constructs a ReservationService. The
// dependency must be non-nil.
func NewReservationService(repo *repository.ReservationRepo) *ReservationService {
	if repo == nil {
		panic("nil repository passed to NewReservationService")
	}
	return &ReservationService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Create validates the payload against the creation rules and persists
// a new reservation in booked status. The returned entity carries the
// generated id and timestamps.
func (s *ReservationService) Create(ctx context.Context, payload map[string]any) (*model.Reservation, error) {
	res, err := validation.CreateReservation(payload, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Get fetches a reservation by id, translating a missing row into the
// not-found error used as the precondition gate everywhere else.
func (s *ReservationService) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Reservation cannot be found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update validates the payload against the update rules and replaces
// the mutable fields of an existing reservation.
func (s *ReservationService) Update(ctx context.Context, id uint64, payload map[string]any) (*model.Reservation, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := validation.UpdateReservation(payload, s.now())
	if err != nil {
		return nil, err
	}
	res.ID = current.ID
	if res.Status == "" {
		res.Status = current.Status
	}
	return s.repo.Update(ctx, res)
}

// UpdateStatus moves a reservation to a new lifecycle status. The
// target must be one of the four status literals, and a reservation
// that is already finished rejects any further change.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.StatusTarget(status); err != nil {
		return nil, err
	}
	if current.Status == model.StatusFinished {
		return nil, apperr.RuleViolation("a finished reservation cannot be updated")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	current.Status = status
	return current, nil
}

// ListByDate returns the reservations for the given day, finished ones
// excluded, ordered by reservation time.
func (s *ReservationService) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperr.InvalidValue("date is not valid")
	}
	return s.repo.ListByDate(ctx, date)
}

// SearchByPhone matches reservations by a phone-number fragment. Both
// the fragment and the stored numbers are reduced to digits before
// comparison, so punctuation never affects the match.
func (s *ReservationService) SearchByPhone(ctx context.Context, fragment string) ([]model.Reservation, error) {
	return s.repo.SearchByPhone(ctx, digitsOnly(fragment))
}

// List returns every reservation ordered by reservation time.
func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.repo.List(ctx)
}

// digitsOnly strips everything but ASCII digits from s.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
