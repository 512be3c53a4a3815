package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avendra/hotelops-backend/api/responses"
	"github.com/avendra/hotelops-backend/api/validators"
	"github.com/avendra/hotelops-backend/internal/booking"
	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/enums"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
	"github.com/avendra/hotelops-backend/pkg/logger"
)

type createBookingRequest struct {
	StartAt   time.Time `json:"start_at" validate:"required"`
	EndAt     time.Time `json:"end_at" validate:"required"`
	GuestName string    `json:"guest_name" validate:"required"`
	Notes     *string   `json:"notes"`
}

// BookingCreate places a hold on a room or hall.
func BookingCreate(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resourceID, err := validators.ParseUUIDParam(r, "resourceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateBooking(r.Context(), booking.CreateBookingInput{
			HotelID:    caller.HotelID,
			ResourceID: resourceID,
			StartAt:    payload.StartAt,
			EndAt:      payload.EndAt,
			GuestName:  strings.TrimSpace(payload.GuestName),
			Notes:      payload.Notes,
			ActorID:    caller.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, reservationResponseFromModel(created))
	}
}

type rescheduleRequest struct {
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required"`
}

// BookingReschedule moves an existing reservation to a new window.
func BookingReschedule(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reservationID, err := validators.ParseUUIDParam(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rescheduleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Reschedule(r.Context(), booking.RescheduleInput{
			HotelID:       caller.HotelID,
			ReservationID: reservationID,
			StartAt:       payload.StartAt,
			EndAt:         payload.EndAt,
			ActorID:       caller.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reservationResponseFromModel(updated))
	}
}

// BookingCancel moves a reservation to cancelled, freeing its window.
func BookingCancel(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return bookingStatusHandler(svc, logg, enums.ReservationStatusCancelled)
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingUpdateStatus advances a reservation along its lifecycle.
func BookingUpdateStatus(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reservationID, err := validators.ParseUUIDParam(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bookingStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseReservationStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid reservation status"))
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), booking.UpdateStatusInput{
			HotelID:       caller.HotelID,
			ReservationID: reservationID,
			Status:        status,
			ActorID:       caller.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reservationResponseFromModel(updated))
	}
}

func bookingStatusHandler(svc booking.Service, logg *logger.Logger, status enums.ReservationStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reservationID, err := validators.ParseUUIDParam(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), booking.UpdateStatusInput{
			HotelID:       caller.HotelID,
			ReservationID: reservationID,
			Status:        status,
			ActorID:       caller.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reservationResponseFromModel(updated))
	}
}

// BookingAvailability answers an advisory window query.
func BookingAvailability(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resourceID, err := validators.ParseUUIDParam(r, "resourceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		startAt, err := validators.ParseQueryTime(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		endAt, err := validators.ParseQueryTime(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CheckAvailability(r.Context(), booking.AvailabilityQuery{
			HotelID:    caller.HotelID,
			ResourceID: resourceID,
			StartAt:    startAt,
			EndAt:      endAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		conflicts := make([]reservationResponse, 0, len(result.Conflicts))
		for i := range result.Conflicts {
			conflicts = append(conflicts, reservationResponseFromModel(&result.Conflicts[i]))
		}
		responses.WriteSuccess(w, availabilityResponse{
			Available: result.Available,
			Conflicts: conflicts,
		})
	}
}

// BookingCalendar lists a resource's reservations inside a window.
func BookingCalendar(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		resourceID, err := validators.ParseUUIDParam(r, "resourceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservations, err := svc.ListCalendar(r.Context(), caller.HotelID, resourceID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]reservationResponse, 0, len(reservations))
		for i := range reservations {
			payload = append(payload, reservationResponseFromModel(&reservations[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

type availabilityResponse struct {
	Available bool                  `json:"available"`
	Conflicts []reservationResponse `json:"conflicts"`
}

type reservationResponse struct {
	ID         uuid.UUID               `json:"id"`
	ResourceID uuid.UUID               `json:"resource_id"`
	StartAt    time.Time               `json:"start_at"`
	EndAt      time.Time               `json:"end_at"`
	Status     enums.ReservationStatus `json:"status"`
	GuestName  string                  `json:"guest_name"`
	Notes      *string                 `json:"notes,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

func reservationResponseFromModel(m *models.Reservation) reservationResponse {
	return reservationResponse{
		ID:         m.ID,
		ResourceID: m.ResourceID,
		StartAt:    m.StartAt,
		EndAt:      m.EndAt,
		Status:     m.Status,
		GuestName:  m.GuestName,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
