package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avendra/hotelops-backend/api/responses"
	"github.com/avendra/hotelops-backend/internal/vouchers"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
)

// VoucherRedeem consumes one use of a counted voucher.
func VoucherRedeem(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "voucher code is required"))
			return
		}

		result, err := svc.Redeem(r.Context(), vouchers.RedeemInput{
			HotelID: caller.HotelID,
			Code:    code,
			ActorID: caller.UserID,
			At:      time.Now().UTC(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, voucherRedeemResponse{
			VoucherID:     result.VoucherID.String(),
			UsedCount:     result.UsedCount,
			RemainingUses: result.RemainingUses,
		})
	}
}

// MealVoucherRedeem consumes a single-use meal voucher.
func MealVoucherRedeem(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "voucher code is required"))
			return
		}

		err = svc.RedeemMealVoucher(r.Context(), vouchers.RedeemMealVoucherInput{
			HotelID: caller.HotelID,
			Code:    code,
			ActorID: caller.UserID,
			At:      time.Now().UTC(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "redeemed"})
	}
}

type voucherRedeemResponse struct {
	VoucherID     string `json:"voucher_id"`
	UsedCount     int    `json:"used_count"`
	RemainingUses *int   `json:"remaining_uses,omitempty"`
}
