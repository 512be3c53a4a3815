package vouchers

import (
	"context"

	"github.com/avendra/hotelops-backend/pkg/db"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for counted and meal vouchers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockVoucherByCode(ctx context.Context, code string) (*models.Voucher, error)
	LockMealVoucherByCode(ctx context.Context, code string) (*models.MealVoucher, error)
	UpdateVoucher(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateMealVoucher(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a voucher repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockVoucherByCode loads the voucher while holding its row lock so that
// concurrent redemptions of the same code serialize.
func (r *repository) LockVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := db.LockForUpdate(ctx, r.db, &voucher, "code = ?", code); err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *repository) LockMealVoucherByCode(ctx context.Context, code string) (*models.MealVoucher, error) {
	var voucher models.MealVoucher
	if err := db.LockForUpdate(ctx, r.db, &voucher, "code = ?", code); err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *repository) UpdateVoucher(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateMealVoucher(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.MealVoucher{}).
		Where("id = ?", id).
		Updates(updates).Error
}
