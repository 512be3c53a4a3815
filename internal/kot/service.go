package kot

import (
	"bytes"
	"context"
	stdErrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avendra/hotelops-backend/internal/audit"
	"github.com/avendra/hotelops-backend/internal/stock"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const opTransition = "kot.transition_item"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// stockDeductor is the slice of the stock service the kitchen flow needs:
// folding recipe deductions into the ticket's own transaction.
type stockDeductor interface {
	ApplyInTx(ctx context.Context, tx *gorm.DB, input stock.ApplyTransactionInput) (*stock.ApplyTransactionResult, error)
}

// Service manages kitchen order tickets: line transitions, approval-time
// recipe deduction and the derived ticket status.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.KotOrder, error)
	TransitionItem(ctx context.Context, input TransitionItemInput) (*models.KotOrder, error)
	GetOrder(ctx context.Context, hotelID, orderID uuid.UUID) (*models.KotOrder, error)
	ListOrders(ctx context.Context, hotelID uuid.UUID, status *enums.KotOrderStatus) ([]models.KotOrder, error)
}

type service struct {
	runner  txRunner
	repo    Repository
	stock   stockDeductor
	logg    *logger.Logger
	audit   audit.Recorder
	metrics *metrics.LedgerMetrics
}

// NewService wires the kitchen ticket service.
func NewService(runner txRunner, repo Repository, deductor stockDeductor, logg *logger.Logger, recorder audit.Recorder, ledgerMetrics *metrics.LedgerMetrics) Service {
	return &service{
		runner:  runner,
		repo:    repo,
		stock:   deductor,
		logg:    logg,
		audit:   recorder,
		metrics: ledgerMetrics,
	}
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.KotOrder, error) {
	if strings.TrimSpace(input.TableNo) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table number is required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line")
	}
	for _, line := range input.Lines {
		if line.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
	}

	var created *models.KotOrder
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		items := make([]models.KotItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			menuItem, err := repo.FindMenuItemWithRecipe(ctx, line.MenuItemID)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").
						WithDetails(map[string]any{"menu_item_id": line.MenuItemID.String()})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
			}
			if menuItem.HotelID != input.HotelID {
				return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").
					WithDetails(map[string]any{"menu_item_id": line.MenuItemID.String()})
			}
			items = append(items, models.KotItem{
				ID:         uuid.New(),
				MenuItemID: menuItem.ID,
				Qty:        line.Qty,
				Status:     enums.KotItemStatusPending,
			})
		}

		created = &models.KotOrder{
			ID:        uuid.New(),
			HotelID:   input.HotelID,
			TableNo:   input.TableNo,
			Status:    enums.KotOrderStatusOpen,
			Items:     items,
			CreatedBy: input.ActorID,
		}
		if err := repo.CreateOrder(ctx, created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create kot order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "kot.order_created",
		EntityType: "kot_order",
		EntityID:   created.ID,
		Detail:     map[string]any{"table_no": created.TableNo, "lines": len(created.Items)},
	})
	return created, nil
}

// TransitionItem moves one line to its next status and recomputes the ticket
// status, all in one transaction. Approving a line deducts its recipe from
// stock exactly once; an insufficient ingredient rolls the approval back.
func (s *service) TransitionItem(ctx context.Context, input TransitionItemInput) (*models.KotOrder, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown item status").
			WithDetails(map[string]any{"status": input.Status.String()})
	}
	needsReason := input.Status == enums.KotItemStatusDeclined || input.Status == enums.KotItemStatusCancelled
	if needsReason && (input.Reason == nil || strings.TrimSpace(*input.Reason) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a reason is required to decline or cancel")
	}

	start := time.Now()
	var result *models.KotOrder
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.LockOrder(ctx, input.OrderID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "kot order not found")
			}
			return err
		}
		if order.HotelID != input.HotelID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "kot order not found")
		}

		items, err := repo.ListItems(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}
		var target *models.KotItem
		for i := range items {
			if items[i].ID == input.ItemID {
				target = &items[i]
				break
			}
		}
		if target == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}

		if !target.Status.CanTransitionTo(input.Status) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "item status transition disallowed").
				WithDetails(map[string]any{
					"from": target.Status.String(),
					"to":   input.Status.String(),
				})
		}

		updates := map[string]any{"status": input.Status}
		if needsReason {
			updates["reason"] = strings.TrimSpace(*input.Reason)
		}

		if input.Status == enums.KotItemStatusApproved && !target.StockDeducted {
			if err := s.deductRecipe(ctx, tx, repo, order, target); err != nil {
				return err
			}
			updates["stock_deducted"] = true
			target.StockDeducted = true
		}

		if err := repo.UpdateItem(ctx, target.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
		}
		target.Status = input.Status

		newStatus := DeriveOrderStatus(items)
		if newStatus != order.Status {
			if err := repo.UpdateOrderStatus(ctx, order.ID, newStatus); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
			}
			order.Status = newStatus
		}

		order.Items = items
		result = order
		return nil
	})
	s.metrics.ObserveDuration(opTransition, time.Since(start))
	if err != nil {
		s.metrics.IncOutcome(opTransition, "rejected")
		return nil, err
	}
	s.metrics.IncOutcome(opTransition, "committed")

	detail := map[string]any{
		"order_id":     input.OrderID.String(),
		"order_status": result.Status.String(),
	}
	if needsReason {
		detail["reason"] = strings.TrimSpace(*input.Reason)
	}
	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "kot.item_" + input.Status.String(),
		EntityType: "kot_item",
		EntityID:   input.ItemID,
		Detail:     detail,
	})
	return result, nil
}

// deductRecipe issues every recipe ingredient for the line, scaled by the line
// quantity, through the stock ledger inside the caller's transaction.
func (s *service) deductRecipe(ctx context.Context, tx *gorm.DB, repo Repository, order *models.KotOrder, item *models.KotItem) error {
	menuItem, err := repo.FindMenuItemWithRecipe(ctx, item.MenuItemID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}

	// Deduct in item-id order so concurrent approvals sharing ingredients
	// always acquire the row locks in the same sequence.
	recipe := make([]models.RecipeIngredient, len(menuItem.Recipe))
	copy(recipe, menuItem.Recipe)
	sort.Slice(recipe, func(i, j int) bool {
		return bytes.Compare(recipe[i].ItemID[:], recipe[j].ItemID[:]) < 0
	})

	notes := fmt.Sprintf("kot %s line %s", order.ID, item.ID)
	qty := decimal.NewFromInt(int64(item.Qty))
	for _, ingredient := range recipe {
		_, err := s.stock.ApplyInTx(ctx, tx, stock.ApplyTransactionInput{
			HotelID: order.HotelID,
			ItemID:  ingredient.ItemID,
			Type:    enums.StockTransactionIssue,
			Qty:     ingredient.QtyBase.Mul(qty),
			ActorID: order.CreatedBy,
			Notes:   &notes,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *service) GetOrder(ctx context.Context, hotelID, orderID uuid.UUID) (*models.KotOrder, error) {
	order, err := s.repo.FindOrderWithItems(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "kot order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load kot order")
	}
	if order.HotelID != hotelID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "kot order not found")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, hotelID uuid.UUID, status *enums.KotOrderStatus) ([]models.KotOrder, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": status.String()})
	}
	orders, err := s.repo.ListOrders(ctx, hotelID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list kot orders")
	}
	return orders, nil
}
