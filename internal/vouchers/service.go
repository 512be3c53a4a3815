package vouchers

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/avendra/hotelops-backend/internal/audit"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	opRedeem     = "voucher.redeem"
	opRedeemMeal = "voucher.redeem_meal"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service redeems counted vouchers and single-use meal vouchers. All checks
// run after the row lock is held, so the counter and the single-use flag are
// revalidated against committed state, never against a stale read.
type Service interface {
	Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error)
	RedeemMealVoucher(ctx context.Context, input RedeemMealVoucherInput) error
}

type service struct {
	runner  txRunner
	repo    Repository
	logg    *logger.Logger
	audit   audit.Recorder
	metrics *metrics.LedgerMetrics
}

// NewService wires the voucher redemption service.
func NewService(runner txRunner, repo Repository, logg *logger.Logger, recorder audit.Recorder, ledgerMetrics *metrics.LedgerMetrics) Service {
	return &service{
		runner:  runner,
		repo:    repo,
		logg:    logg,
		audit:   recorder,
		metrics: ledgerMetrics,
	}
}

func (s *service) Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "voucher code is required")
	}
	at := input.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	start := time.Now()
	var result *RedeemResult
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		voucher, err := repo.LockVoucherByCode(ctx, code)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
			}
			return err
		}
		if voucher.HotelID != input.HotelID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}

		if voucher.ValidFrom != nil && at.Before(*voucher.ValidFrom) {
			return pkgerrors.New(pkgerrors.CodeExpired, "voucher not yet valid").
				WithDetails(map[string]any{"valid_from": voucher.ValidFrom})
		}
		if voucher.ValidUntil != nil && !at.Before(*voucher.ValidUntil) {
			return pkgerrors.New(pkgerrors.CodeExpired, "voucher validity window has ended").
				WithDetails(map[string]any{"valid_until": voucher.ValidUntil})
		}
		if voucher.MaxUses != nil && voucher.UsedCount >= *voucher.MaxUses {
			return pkgerrors.New(pkgerrors.CodeLimitReached, "voucher usage limit reached").
				WithDetails(map[string]any{
					"max_uses":   *voucher.MaxUses,
					"used_count": voucher.UsedCount,
				})
		}

		newCount := voucher.UsedCount + 1
		if err := repo.UpdateVoucher(ctx, voucher.ID, map[string]any{"used_count": newCount}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment voucher counter")
		}

		result = &RedeemResult{
			VoucherID: voucher.ID,
			UsedCount: newCount,
		}
		if voucher.MaxUses != nil {
			remaining := *voucher.MaxUses - newCount
			result.RemainingUses = &remaining
		}
		return nil
	})
	s.metrics.ObserveDuration(opRedeem, time.Since(start))
	if err != nil {
		s.metrics.IncOutcome(opRedeem, "rejected")
		return nil, err
	}
	s.metrics.IncOutcome(opRedeem, "committed")

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "voucher.redeemed",
		EntityType: "voucher",
		EntityID:   result.VoucherID,
		Detail:     map[string]any{"used_count": result.UsedCount},
	})
	return result, nil
}

func (s *service) RedeemMealVoucher(ctx context.Context, input RedeemMealVoucherInput) error {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "voucher code is required")
	}
	at := input.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	start := time.Now()
	var voucherID uuid.UUID
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		voucher, err := repo.LockMealVoucherByCode(ctx, code)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "meal voucher not found")
			}
			return err
		}
		if voucher.HotelID != input.HotelID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "meal voucher not found")
		}
		if voucher.Status == enums.MealVoucherStatusUsed {
			return pkgerrors.New(pkgerrors.CodeAlreadyUsed, "meal voucher already used")
		}

		voucherID = voucher.ID
		usedAt := at
		err = repo.UpdateMealVoucher(ctx, voucher.ID, map[string]any{
			"status":  enums.MealVoucherStatusUsed,
			"used_by": input.ActorID,
			"used_at": usedAt,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark meal voucher used")
		}
		return nil
	})
	s.metrics.ObserveDuration(opRedeemMeal, time.Since(start))
	if err != nil {
		s.metrics.IncOutcome(opRedeemMeal, "rejected")
		return err
	}
	s.metrics.IncOutcome(opRedeemMeal, "committed")

	s.audit.Record(ctx, audit.Entry{
		HotelID:    input.HotelID,
		ActorID:    input.ActorID,
		Action:     "voucher.meal_redeemed",
		EntityType: "meal_voucher",
		EntityID:   voucherID,
	})
	return nil
}
