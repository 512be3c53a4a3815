package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/avendra/hotelops-backend/api/middleware"
	pkgerrors "github.com/avendra/hotelops-backend/pkg/errors"
)

// actor is the authenticated caller, as seeded by the auth middleware.
type actor struct {
	UserID  uuid.UUID
	HotelID uuid.UUID
}

func actorFromRequest(r *http.Request) (actor, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	hotelID := middleware.HotelIDFromContext(r.Context())
	if hotelID == "" {
		return actor{}, pkgerrors.New(pkgerrors.CodeForbidden, "hotel context missing")
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return actor{}, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid hotel id")
	}
	return actor{UserID: uid, HotelID: hid}, nil
}
