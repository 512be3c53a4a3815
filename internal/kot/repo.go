package kot

import (
	"context"

	"github.com/avendra/hotelops-backend/pkg/db"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for kitchen order tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockOrder(ctx context.Context, id uuid.UUID) (*models.KotOrder, error)
	FindOrderWithItems(ctx context.Context, id uuid.UUID) (*models.KotOrder, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]models.KotItem, error)
	FindMenuItemWithRecipe(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateOrder(ctx context.Context, order *models.KotOrder) error
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.KotOrderStatus) error
	ListOrders(ctx context.Context, hotelID uuid.UUID, status *enums.KotOrderStatus) ([]models.KotOrder, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a kitchen ticket repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockOrder loads the ticket while holding its row lock. Item transitions on
// one ticket serialize here so the derived status never races.
func (r *repository) LockOrder(ctx context.Context, id uuid.UUID) (*models.KotOrder, error) {
	var order models.KotOrder
	if err := db.LockForUpdate(ctx, r.db, &order, "id = ?", id); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderWithItems(ctx context.Context, id uuid.UUID) (*models.KotOrder, error) {
	var order models.KotOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListItems(ctx context.Context, orderID uuid.UUID) ([]models.KotItem, error) {
	var items []models.KotItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindMenuItemWithRecipe(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var menuItem models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Recipe").
		First(&menuItem, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &menuItem, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *models.KotOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.KotItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.KotOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.KotOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) ListOrders(ctx context.Context, hotelID uuid.UUID, status *enums.KotOrderStatus) ([]models.KotOrder, error) {
	qb := r.db.WithContext(ctx).
		Preload("Items").
		Where("hotel_id = ?", hotelID)
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}

	var orders []models.KotOrder
	if err := qb.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
