package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditRecord captures a committed ledger outcome for the audit trail. Rows
// are written after commit and never participate in the ledger transaction.
type AuditRecord struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	HotelID    uuid.UUID       `gorm:"column:hotel_id;type:uuid;not null;index"`
	ActorID    uuid.UUID       `gorm:"column:actor_id;type:uuid;not null"`
	Action     string          `gorm:"column:action;not null"`
	EntityType string          `gorm:"column:entity_type;not null"`
	EntityID   uuid.UUID       `gorm:"column:entity_id;type:uuid;not null"`
	Detail     json.RawMessage `gorm:"column:detail;type:jsonb"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
