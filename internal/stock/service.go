package stock

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
	"github.com/avendra/hotelops-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const opApply = "stock.apply"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service applies typed stock movements against the inventory ledger.
//
// ApplyInTx exists so that other domains (kitchen ticket approval) can fold a
// deduction into their own transaction; ApplyTransaction is the standalone
// entrypoint that owns its transaction boundary.
type Service interface {
	ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (*ApplyTransactionResult, error)
	ApplyInTx(ctx context.Context, tx *gorm.DB, input ApplyTransactionInput) (*ApplyTransactionResult, error)
	GetItem(ctx context.Context, hotelID, itemID uuid.UUID) (*models.InventoryItem, error)
	ListTransactions(ctx context.Context, hotelID, itemID uuid.UUID, params pagination.Params) (*TransactionPage, error)
}

type service struct {
	runner  txRunner
	repo    Repository
	logg    *logger.Logger
	audit   audit.Recorder
	metrics *metrics.LedgerMetrics
}

// NewService wires the stock ledger service.
func NewService(runner txRunner, repo Repository, logg *logger.Logger, recorder audit.Recorder, ledgerMetrics *metrics.LedgerMetrics) Service {
	return &service{
		runner:  runner,
		repo:    repo,
		logg:    logg,
		audit:   recorder,
		metrics: ledgerMetrics,
	}
}

func (s *service) ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (*ApplyTransactionResult, error) {
	// Reject malformed movements before a transaction ever opens.
	if _, err := signedDelta(input.Type, input.Qty); err != nil {
		return nil, err
	}

	start := time.Now()

	var result *ApplyTransactionResult
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		applied, err := s.ApplyInTx(ctx, tx, input)
		if err != nil {
			return err
		}
		result = applied
		return nil
	})
	s.metrics.ObserveDuration(opApply, time.Since(start))
	if err != nil {
		s.metrics.IncOutcome(opApply, "rejected")
		return nil, err
	}
	s.metrics.IncOutcome(opApply, "committed")

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "stock.transaction_applied",
		EntityType: "inventory_item",
		EntityID:   input.ItemID,
		Detail: map[string]any{
			"transaction_id": result.Transaction.ID.String(),
			"type":           input.Type.String(),
			"qty_base":       result.Transaction.QtyBase.String(),
			"new_qty":        result.NewQty.String(),
		},
	})

	if result.LowStock {
		lowCtx := s.logg.WithFields(ctx, map[string]any{
			"item_id": input.ItemID.String(),
			"new_qty": result.NewQty.String(),
		})
		s.logg.Warn(lowCtx, "stock.low_stock")
	}
	return result, nil
}

// ApplyInTx validates the movement, locks the item row, revalidates the
// balance under the lock and appends the ledger entry. The caller owns the
// transaction; nothing here commits or rolls back.
func (s *service) ApplyInTx(ctx context.Context, tx *gorm.DB, input ApplyTransactionInput) (*ApplyTransactionResult, error) {
	delta, err := signedDelta(input.Type, input.Qty)
	if err != nil {
		return nil, err
	}

	repo := s.repo.WithTx(tx)

	item, err := repo.LockItem(ctx, input.ItemID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, err
	}
	if item.HotelID != input.HotelID {
		// Cross-tenant probes look identical to a missing item.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}

	newQty := item.BaseStockQty.Add(delta)
	if newQty.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "stock would go negative").
			WithDetails(map[string]any{
				"item_id":   item.ID.String(),
				"available": item.BaseStockQty.String(),
				"requested": delta.Abs().String(),
			})
	}

	if err := repo.UpdateItemQty(ctx, item.ID, newQty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item stock")
	}

	txn := &models.InventoryTransaction{
		ID:      uuid.New(),
		ItemID:  item.ID,
		HotelID: item.HotelID,
		Type:    input.Type,
		QtyBase: delta,
		ActorID: input.ActorID,
		Notes:   input.Notes,
	}
	if err := repo.AppendTransaction(ctx, txn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger entry")
	}

	return &ApplyTransactionResult{
		Transaction: txn,
		NewQty:      newQty,
		LowStock:    newQty.LessThanOrEqual(item.ReorderLevel),
	}, nil
}

// GetItem loads an item without locking it. Used for read surfaces and for
// route-layer checks that only need a recent snapshot.
func (s *service) GetItem(ctx context.Context, hotelID, itemID uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	if item.HotelID != hotelID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return item, nil
}

func (s *service) ListTransactions(ctx context.Context, hotelID, itemID uuid.UUID, params pagination.Params) (*TransactionPage, error) {
	if _, err := s.GetItem(ctx, hotelID, itemID); err != nil {
		return nil, err
	}

	rows, next, err := s.repo.ListTransactionsByItem(ctx, itemID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "list ledger entries")
	}
	return &TransactionPage{Transactions: rows, NextCursor: next}, nil
}

// signedDelta maps (type, qty) onto the signed base-unit delta the ledger
// stores. Receive/return add, issue/wastage subtract, adjustment carries its
// own sign and must be non-zero.
func signedDelta(txType enums.StockTransactionType, qty decimal.Decimal) (decimal.Decimal, error) {
	if !txType.IsValid() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown transaction type").
			WithDetails(map[string]any{"type": txType.String()})
	}

	switch {
	case txType.Additive():
		if !qty.IsPositive() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		return qty, nil
	case txType.Subtractive():
		if !qty.IsPositive() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		return qty.Neg(), nil
	default: // adjustment
		if qty.IsZero() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "adjustment delta must be non-zero")
		}
		return qty, nil
	}
}
