package booking

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/avendra/hotelops-backend/internal/audit"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	opCreate     = "booking.create"
	opReschedule = "booking.reschedule"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service schedules overlap-excluded reservations on rooms and halls.
type Service interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Reservation, error)
	Reschedule(ctx context.Context, input RescheduleInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Reservation, error)
	CheckAvailability(ctx context.Context, query AvailabilityQuery) (*AvailabilityResult, error)
	ListCalendar(ctx context.Context, hotelID, resourceID uuid.UUID, from, to time.Time) ([]models.Reservation, error)
}

type service struct {
	runner  txRunner
	repo    Repository
	logg    *logger.Logger
	audit   audit.Recorder
	metrics *metrics.LedgerMetrics
}

// NewService wires the booking scheduler service.
func NewService(runner txRunner, repo Repository, logg *logger.Logger, recorder audit.Recorder, ledgerMetrics *metrics.LedgerMetrics) Service {
	return &service{
		runner:  runner,
		repo:    repo,
		logg:    logg,
		audit:   recorder,
		metrics: ledgerMetrics,
	}
}

func (s *service) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Reservation, error) {
	if err := validateWindow(input.StartAt, input.EndAt); err != nil {
		return nil, err
	}
	if input.GuestName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name is required")
	}

	start := time.Now()
	var created *models.Reservation
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		resource, err := s.lockResource(ctx, repo, input.HotelID, input.ResourceID)
		if err != nil {
			return err
		}

		if err := s.ensureWindowFree(ctx, repo, resource.ID, input.StartAt, input.EndAt, nil); err != nil {
			return err
		}

		created = &models.Reservation{
			ID:         uuid.New(),
			ResourceID: resource.ID,
			HotelID:    input.HotelID,
			StartAt:    input.StartAt.UTC(),
			EndAt:      input.EndAt.UTC(),
			Status:     enums.ReservationStatusPending,
			GuestName:  input.GuestName,
			Notes:      input.Notes,
			CreatedBy:  input.ActorID,
		}
		if err := repo.CreateReservation(ctx, created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reservation")
		}
		return nil
	})
	s.metrics.ObserveDuration(opCreate, time.Since(start))
	if err != nil {
		s.metrics.IncOutcome(opCreate, "rejected")
		return nil, err
	}
	s.metrics.IncOutcome(opCreate, "committed")

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "booking.created",
		EntityType: "reservation",
		EntityID:   created.ID,
		Detail: map[string]any{
			"resource_id": created.ResourceID.String(),
			"start_at":    created.StartAt,
			"end_at":      created.EndAt,
		},
	})
	return created, nil
}

func (s *service) Reschedule(ctx context.Context, input RescheduleInput) (*models.Reservation, error) {
	if err := validateWindow(input.StartAt, input.EndAt); err != nil {
		return nil, err
	}

	start := time.Now()
	var updated *models.Reservation
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Lock the reservation first so the lifecycle check runs against
		// the committed status, not a read a concurrent cancel can stale.
		reservation, err := s.lockReservation(ctx, repo, input.HotelID, input.ReservationID)
		if err != nil {
			return err
		}
		if !reservation.Status.Occupying() {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "reservation can no longer be rescheduled").
				WithDetails(map[string]any{"status": reservation.Status.String()})
		}

		// Then the resource: concurrent creates and reschedules on the
		// same room serialize here before the overlap recheck.
		if _, err := s.lockResource(ctx, repo, input.HotelID, reservation.ResourceID); err != nil {
			return err
		}
		if err := s.ensureWindowFree(ctx, repo, reservation.ResourceID, input.StartAt, input.EndAt, &reservation.ID); err != nil {
			return err
		}

		err = repo.UpdateReservation(ctx, reservation.ID, map[string]any{
			"start_at": input.StartAt.UTC(),
			"end_at":   input.EndAt.UTC(),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reschedule reservation")
		}
		reservation.StartAt = input.StartAt.UTC()
		reservation.EndAt = input.EndAt.UTC()
		updated = reservation
		return nil
	})
	s.metrics.ObserveDuration(opReschedule, time.Since(start))
	if err != nil {
		s.metrics.IncOutcome(opReschedule, "rejected")
		return nil, err
	}
	s.metrics.IncOutcome(opReschedule, "committed")

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "booking.rescheduled",
		EntityType: "reservation",
		EntityID:   updated.ID,
		Detail: map[string]any{
			"start_at": updated.StartAt,
			"end_at":   updated.EndAt,
		},
	})
	return updated, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Reservation, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown reservation status").
			WithDetails(map[string]any{"status": input.Status.String()})
	}

	var updated *models.Reservation
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reservation, err := s.lockReservation(ctx, repo, input.HotelID, input.ReservationID)
		if err != nil {
			return err
		}
		if !reservation.Status.CanTransitionTo(input.Status) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "reservation status transition disallowed").
				WithDetails(map[string]any{
					"from": reservation.Status.String(),
					"to":   input.Status.String(),
				})
		}

		err = repo.UpdateReservation(ctx, reservation.ID, map[string]any{"status": input.Status})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reservation status")
		}
		reservation.Status = input.Status
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "booking.status_changed",
		EntityType: "reservation",
		EntityID:   updated.ID,
		Detail:     map[string]any{"status": updated.Status.String()},
	})
	return updated, nil
}

// CheckAvailability answers without taking locks. A window reported free can
// still be lost to a concurrent booking; create is the only authority.
func (s *service) CheckAvailability(ctx context.Context, query AvailabilityQuery) (*AvailabilityResult, error) {
	if err := validateWindow(query.StartAt, query.EndAt); err != nil {
		return nil, err
	}
	if _, err := s.findResource(ctx, s.repo, query.HotelID, query.ResourceID); err != nil {
		return nil, err
	}

	conflicts, err := s.repo.FindOverlapping(ctx, query.ResourceID, query.StartAt, query.EndAt, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query overlapping reservations")
	}
	return &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *service) ListCalendar(ctx context.Context, hotelID, resourceID uuid.UUID, from, to time.Time) ([]models.Reservation, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	if _, err := s.findResource(ctx, s.repo, hotelID, resourceID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListReservationsByResource(ctx, resourceID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reservations")
	}
	return rows, nil
}

func (s *service) lockResource(ctx context.Context, repo Repository, hotelID, resourceID uuid.UUID) (*models.BookableResource, error) {
	resource, err := repo.LockResource(ctx, resourceID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
		}
		return nil, err
	}
	if resource.HotelID != hotelID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	if !resource.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "resource is not accepting bookings")
	}
	return resource, nil
}

func (s *service) findResource(ctx context.Context, repo Repository, hotelID, resourceID uuid.UUID) (*models.BookableResource, error) {
	resource, err := repo.FindResource(ctx, resourceID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resource")
	}
	if resource.HotelID != hotelID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return resource, nil
}

// lockReservation holds the reservation row lock for the rest of the
// transaction. Status checks made after it cannot be invalidated by a
// concurrent lifecycle write.
func (s *service) lockReservation(ctx context.Context, repo Repository, hotelID, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := repo.LockReservation(ctx, reservationID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock reservation")
	}
	if reservation.HotelID != hotelID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
	}
	return reservation, nil
}

// ensureWindowFree re-checks overlap while the resource row lock is held.
func (s *service) ensureWindowFree(ctx context.Context, repo Repository, resourceID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) error {
	conflicts, err := repo.FindOverlapping(ctx, resourceID, startAt, endAt, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query overlapping reservations")
	}
	if len(conflicts) > 0 {
		first := conflicts[0]
		return pkgerrors.New(pkgerrors.CodeConflict, "window overlaps an existing reservation").
			WithDetails(map[string]any{
				"reservation_id": first.ID.String(),
				"start_at":       first.StartAt,
				"end_at":         first.EndAt,
			})
	}
	return nil
}

func validateWindow(startAt, endAt time.Time) error {
	if startAt.IsZero() || endAt.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start and end are required")
	}
	if !startAt.Before(endAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "start must be before end")
	}
	return nil
}
