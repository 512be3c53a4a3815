package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avendra/hotelops-backend/api/responses"
	"github.com/avendra/hotelops-backend/api/validators"
	"github.com/avendra/hotelops-backend/internal/kot"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
)

type kotOrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Qty        int    `json:"qty" validate:"required,gt=0"`
}

type kotCreateOrderRequest struct {
	TableNo string                `json:"table_no" validate:"required"`
	Lines   []kotOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// KotCreateOrder opens a new kitchen order ticket.
func KotCreateOrder(svc kot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload kotCreateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]kot.OrderLine, 0, len(payload.Lines))
		for _, line := range payload.Lines {
			menuItemID, parseErr := uuid.Parse(strings.TrimSpace(line.MenuItemID))
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid menu_item_id"))
				return
			}
			lines = append(lines, kot.OrderLine{MenuItemID: menuItemID, Qty: line.Qty})
		}

		created, err := svc.CreateOrder(r.Context(), kot.CreateOrderInput{
			HotelID: caller.HotelID,
			TableNo: strings.TrimSpace(payload.TableNo),
			Lines:   lines,
			ActorID: caller.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, kotOrderResponseFromModel(created))
	}
}

type kotTransitionRequest struct {
	OrderID string  `json:"order_id" validate:"required"`
	Status  string  `json:"status" validate:"required"`
	Reason  *string `json:"reason"`
}

// KotTransitionItem moves one ticket line to its next status.
func KotTransitionItem(svc kot.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload kotTransitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := uuid.Parse(strings.TrimSpace(payload.OrderID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order_id"))
			return
		}
		status, err := enums.ParseKotItemStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status"))
			return
		}

		updated, err := svc.TransitionItem(r.Context(), kot.TransitionItemInput{
			HotelID: caller.HotelID,
			OrderID: orderID,
			ItemID:  itemID,
			Status:  status,
			Reason:  payload.Reason,
			ActorID: caller.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, kotOrderResponseFromModel(updated))
	}
}

// KotGetOrder returns one ticket with its lines.
func KotGetOrder(svc kot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), caller.HotelID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, kotOrderResponseFromModel(order))
	}
}

// KotListOrders returns the hotel's tickets, optionally filtered by status.
func KotListOrders(svc kot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.KotOrderStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, parseErr := enums.ParseKotOrderStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
				return
			}
			status = &parsed
		}

		orders, err := svc.ListOrders(r.Context(), caller.HotelID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]kotOrderResponse, 0, len(orders))
		for i := range orders {
			payload = append(payload, kotOrderResponseFromModel(&orders[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

type kotItemResponse struct {
	ID         uuid.UUID           `json:"id"`
	MenuItemID uuid.UUID           `json:"menu_item_id"`
	Qty        int                 `json:"qty"`
	Status     enums.KotItemStatus `json:"status"`
	Reason     *string             `json:"reason,omitempty"`
}

type kotOrderResponse struct {
	ID        uuid.UUID            `json:"id"`
	TableNo   string               `json:"table_no"`
	Status    enums.KotOrderStatus `json:"status"`
	Items     []kotItemResponse    `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func kotOrderResponseFromModel(m *models.KotOrder) kotOrderResponse {
	items := make([]kotItemResponse, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, kotItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Qty:        item.Qty,
			Status:     item.Status,
			Reason:     item.Reason,
		})
	}
	return kotOrderResponse{
		ID:        m.ID,
		TableNo:   m.TableNo,
		Status:    m.Status,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
