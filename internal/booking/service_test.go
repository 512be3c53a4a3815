package booking

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/avendra/hotelops-backend/internal/audit"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := "file:booking_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.BookableResource{}, &models.Reservation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc := NewService(testTxRunner{db: gdb}, NewRepository(gdb), logg, audit.Noop(), nil)
	return svc, gdb
}

func seedResource(t *testing.T, gdb *gorm.DB, hotelID uuid.UUID, active bool) *models.BookableResource {
	t.Helper()
	resource := &models.BookableResource{
		ID:       uuid.New(),
		HotelID:  hotelID,
		Type:     enums.ResourceTypeRoom,
		Label:    "Room 101",
		Capacity: 2,
		IsActive: active,
	}
	if err := gdb.Create(resource).Error; err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	return resource
}

func at(hour int) time.Time {
	return time.Date(2026, time.September, 10, hour, 0, 0, 0, time.UTC)
}

func TestCreateBookingHalfOpenBoundaries(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)

	first, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.Status != enums.ReservationStatusPending {
		t.Fatalf("new booking should be pending, got %s", first.Status)
	}

	// Shares only the boundary instant; half-open windows do not conflict.
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(16),
		EndAt:      at(18),
		GuestName:  "Vikram Shah",
		ActorID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(15),
		EndAt:      at(17),
		GuestName:  "Meera Iyer",
		ActorID:    uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT for overlapping window, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(16),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for empty window, got %v", err)
	}

	inactive := seedResource(t, gdb, hotelID, false)
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: inactive.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    uuid.New(),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for inactive resource, got %v", err)
	}

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    uuid.New(),
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    uuid.New(),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for cross-tenant resource, got %v", err)
	}
}

func TestCancelledReservationFreesWindow(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)
	actorID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusCancelled,
		ActorID:       actorID,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Vikram Shah",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("rebooking a cancelled window should succeed: %v", err)
	}
}

func TestRescheduleExcludesSelf(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)
	actorID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Shifting by an hour overlaps the old window; only self-exclusion
	// lets this through.
	updated, err := svc.Reschedule(context.Background(), RescheduleInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		StartAt:       at(15),
		EndAt:         at(17),
		ActorID:       actorID,
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !updated.StartAt.Equal(at(15)) || !updated.EndAt.Equal(at(17)) {
		t.Fatalf("window not moved: [%s, %s)", updated.StartAt, updated.EndAt)
	}

	other, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(18),
		EndAt:      at(20),
		GuestName:  "Vikram Shah",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	_, err = svc.Reschedule(context.Background(), RescheduleInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		StartAt:       at(19),
		EndAt:         at(21),
		ActorID:       actorID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT rescheduling onto %s, got %v", other.ID, err)
	}
}

func TestRescheduleRejectedAfterLifecycleEnds(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)
	actorID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusCancelled,
		ActorID:       actorID,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = svc.Reschedule(context.Background(), RescheduleInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		StartAt:       at(18),
		EndAt:         at(20),
		ActorID:       actorID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidTransition {
		t.Fatalf("expected INVALID_TRANSITION rescheduling cancelled booking, got %v", err)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)
	actorID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// pending cannot jump straight to checked_out.
	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusCheckedOut,
		ActorID:       actorID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidTransition {
		t.Fatalf("expected INVALID_TRANSITION, got %v", err)
	}

	for _, status := range []enums.ReservationStatus{
		enums.ReservationStatusConfirmed,
		enums.ReservationStatusCheckedIn,
		enums.ReservationStatusCheckedOut,
	} {
		if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			HotelID:       hotelID,
			ReservationID: created.ID,
			Status:        status,
			ActorID:       actorID,
		}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	// checked_out is terminal.
	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusCancelled,
		ActorID:       actorID,
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidTransition {
		t.Fatalf("expected INVALID_TRANSITION out of terminal state, got %v", err)
	}
}

func TestUpdateStatusRevalidatesCommittedState(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)
	actorID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusConfirmed,
		ActorID:       actorID,
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Two staff race the same confirmed booking: a cancel lands first, so
	// the check-in must be validated against the cancelled row and rejected,
	// never applied over it.
	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusCancelled,
		ActorID:       actorID,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		HotelID:       hotelID,
		ReservationID: created.ID,
		Status:        enums.ReservationStatusCheckedIn,
		ActorID:       actorID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidTransition {
		t.Fatalf("expected INVALID_TRANSITION after cancel won, got %v", err)
	}

	var reloaded models.Reservation
	if err := gdb.First(&reloaded, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload reservation: %v", err)
	}
	if reloaded.Status != enums.ReservationStatusCancelled {
		t.Fatalf("losing writer overwrote status to %s", reloaded.Status)
	}
}

func TestCheckAvailability(t *testing.T) {
	t.Parallel()

	svc, gdb := newTestService(t)
	hotelID := uuid.New()
	resource := seedResource(t, gdb, hotelID, true)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !result.Available || len(result.Conflicts) != 0 {
		t.Fatalf("expected free window, got %+v", result)
	}

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(14),
		EndAt:      at(16),
		GuestName:  "Asha Rao",
		ActorID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err = svc.CheckAvailability(context.Background(), AvailabilityQuery{
		HotelID:    hotelID,
		ResourceID: resource.ID,
		StartAt:    at(15),
		EndAt:      at(17),
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if result.Available || len(result.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %+v", result)
	}
}
