package booking

import (
	"context"
	"time"

	"github.com/avendra/hotelops-backend/pkg/db"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for bookable resources and reservations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockResource(ctx context.Context, id uuid.UUID) (*models.BookableResource, error)
	FindResource(ctx context.Context, id uuid.UUID) (*models.BookableResource, error)
	LockReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	FindOverlapping(ctx context.Context, resourceID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
	UpdateReservation(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListReservationsByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]models.Reservation, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a booking repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockResource loads the resource while holding its row lock. Every create
// and reschedule serializes on this lock before checking overlap.
func (r *repository) LockResource(ctx context.Context, id uuid.UUID) (*models.BookableResource, error) {
	var resource models.BookableResource
	if err := db.LockForUpdate(ctx, r.db, &resource, "id = ?", id); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *repository) FindResource(ctx context.Context, id uuid.UUID) (*models.BookableResource, error) {
	var resource models.BookableResource
	if err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// LockReservation loads the reservation while holding its row lock, so
// lifecycle validation always runs against the committed status. Callers that
// also lock the resource take the reservation lock first.
func (r *repository) LockReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := db.LockForUpdate(ctx, r.db, &reservation, "id = ?", id); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindOverlapping returns occupying reservations whose half-open window
// intersects [startAt, endAt). excludeID skips the reservation being
// rescheduled so it cannot conflict with itself.
func (r *repository) FindOverlapping(ctx context.Context, resourceID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) ([]models.Reservation, error) {
	qb := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Where("status IN ?", enums.OccupyingReservationStatuses).
		Where("start_at < ? AND end_at > ?", endAt, startAt)
	if excludeID != nil {
		qb = qb.Where("id <> ?", *excludeID)
	}

	var rows []models.Reservation
	if err := qb.Order("start_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) UpdateReservation(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListReservationsByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
