package stock

import (
	"context"

	"github.com/avendra/hotelops-backend/pkg/db"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository manages persistence for inventory items and their ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	FindItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	UpdateItemQty(ctx context.Context, id uuid.UUID, qty decimal.Decimal) error
	AppendTransaction(ctx context.Context, txn *models.InventoryTransaction) error
	ListTransactionsByItem(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.InventoryTransaction, string, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stock repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockItem loads the item while holding its row lock. Must run inside a
// transaction; the lock is released on commit or rollback.
func (r *repository) LockItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := db.LockForUpdate(ctx, r.db, &item, "id = ?", id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateItemQty(ctx context.Context, id uuid.UUID, qty decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("base_stock_qty", qty).Error
}

func (r *repository) AppendTransaction(ctx context.Context, txn *models.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) ListTransactionsByItem(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.InventoryTransaction, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Where("item_id = ?", itemID)
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.InventoryTransaction
	err = qb.Order("created_at DESC").Order("id DESC").
		Limit(limitWithBuffer).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}
