package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avendra/hotelops-backend/api/responses"
	"github.com/avendra/hotelops-backend/api/validators"
	"github.com/avendra/hotelops-backend/internal/stock"
	"github.com/avendra/hotelops-backend/pkg/config"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/pagination"
	"github.com/avendra/hotelops-backend/pkg/units"
)

type stockTransactionRequest struct {
	Type  string          `json:"type" validate:"required"`
	Qty   decimal.Decimal `json:"qty" validate:"required"`
	Unit  string          `json:"unit"`
	Notes *string         `json:"notes"`
}

// StockApplyTransaction records one typed stock movement against an item.
// Wastage and large adjustments must carry a justification note.
func StockApplyTransaction(svc stock.Service, ledgerCfg config.LedgerConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload stockTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txType, err := enums.ParseStockTransactionType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type"))
			return
		}

		item, err := svc.GetItem(r.Context(), caller.HotelID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qtyBase := payload.Qty
		if unit := strings.TrimSpace(payload.Unit); unit != "" {
			parsed, parseErr := enums.ParseStockUnit(unit)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit"))
				return
			}
			converted, convErr := units.ToBase(payload.Qty, parsed, item.BaseUnit)
			if convErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, convErr, "unit conversion failed"))
				return
			}
			qtyBase = converted
		}

		if err := requireJustification(txType, qtyBase, item.BaseStockQty, ledgerCfg.LargeAdjustmentRatio, payload.Notes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyTransaction(r.Context(), stock.ApplyTransactionInput{
			HotelID: caller.HotelID,
			ItemID:  itemID,
			Type:    txType,
			Qty:     qtyBase,
			ActorID: caller.UserID,
			Notes:   payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stockApplyResponse{
			Transaction: transactionResponseFromModel(result.Transaction),
			NewQty:      result.NewQty,
			LowStock:    result.LowStock,
		})
	}
}

// requireJustification enforces the route-layer note policy: wastage always
// needs a note, adjustments need one when they exceed the configured fraction
// of current stock.
func requireJustification(txType enums.StockTransactionType, qtyBase, currentQty decimal.Decimal, ratio float64, notes *string) error {
	hasNote := notes != nil && strings.TrimSpace(*notes) != ""

	if txType == enums.StockTransactionWastage && !hasNote {
		return pkgerrors.New(pkgerrors.CodeValidation, "wastage requires a justification note")
	}
	if txType == enums.StockTransactionAdjustment && !hasNote {
		threshold := currentQty.Mul(decimal.NewFromFloat(ratio))
		if qtyBase.Abs().GreaterThan(threshold) {
			return pkgerrors.New(pkgerrors.CodeValidation, "large adjustment requires a justification note").
				WithDetails(map[string]any{"threshold": threshold.String()})
		}
	}
	return nil
}

// StockListTransactions returns one cursor page of ledger history.
func StockListTransactions(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListTransactions(r.Context(), caller.HotelID, itemID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]transactionResponse, 0, len(page.Transactions))
		for i := range page.Transactions {
			items = append(items, transactionResponseFromModel(&page.Transactions[i]))
		}
		responses.WriteSuccess(w, stockHistoryResponse{
			Transactions: items,
			NextCursor:   page.NextCursor,
		})
	}
}

type stockApplyResponse struct {
	Transaction transactionResponse `json:"transaction"`
	NewQty      decimal.Decimal     `json:"new_qty"`
	LowStock    bool                `json:"low_stock"`
}

type stockHistoryResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	NextCursor   string                `json:"next_cursor,omitempty"`
}

type transactionResponse struct {
	ID        uuid.UUID                  `json:"id"`
	ItemID    uuid.UUID                  `json:"item_id"`
	Type      enums.StockTransactionType `json:"type"`
	QtyBase   decimal.Decimal            `json:"qty_base"`
	ActorID   uuid.UUID                  `json:"actor_id"`
	Notes     *string                    `json:"notes,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
}

func transactionResponseFromModel(m *models.InventoryTransaction) transactionResponse {
	return transactionResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      m.Type,
		QtyBase:   m.QtyBase,
		ActorID:   m.ActorID,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}
