package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avendra/hotelops-backend/pkg/db/models"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry describes one committed ledger outcome worth auditing.
type Entry struct {
	HotelID    uuid.UUID
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Detail     any
}

// Recorder is informed after a successful commit. Implementations never join
// the ledger transaction and their failure never rolls a ledger operation back.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type recorder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewRecorder builds the default recorder, which appends audit rows on its
// own connection and logs failures instead of returning them.
func NewRecorder(db *gorm.DB, logg *logger.Logger) Recorder {
	return &recorder{db: db, logg: logg}
}

func (r *recorder) Record(ctx context.Context, entry Entry) {
	var detail json.RawMessage
	if entry.Detail != nil {
		encoded, err := json.Marshal(entry.Detail)
		if err != nil {
			if r.logg != nil {
				r.logg.Error(ctx, "audit.encode_detail", err)
			}
		} else {
			detail = encoded
		}
	}

	record := models.AuditRecord{
		ID:         uuid.New(),
		HotelID:    entry.HotelID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if r.logg != nil {
			ctx = r.logg.WithFields(ctx, map[string]any{
				"action":      entry.Action,
				"entity_type": entry.EntityType,
				"entity_id":   entry.EntityID.String(),
			})
			r.logg.Error(ctx, "audit.record_failed", err)
		}
	}
}

// Noop returns a recorder that drops every entry. Used in tests and in
// workers that have no audit sink wired.
func Noop() Recorder {
	return noopRecorder{}
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, Entry) {}
