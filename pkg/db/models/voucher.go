package models

import (
	"time"

	"github.com/google/uuid"
)

// Voucher is a counted redemption credential. A nil MaxUses means unlimited;
// UsedCount never exceeds MaxUses at any committed state.
type Voucher struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	HotelID    uuid.UUID  `gorm:"column:hotel_id;type:uuid;not null;index"`
	Code       string     `gorm:"column:code;not null;uniqueIndex"`
	MaxUses    *int       `gorm:"column:max_uses"`
	UsedCount  int        `gorm:"column:used_count;not null;default:0"`
	ValidFrom  *time.Time `gorm:"column:valid_from"`
	ValidUntil *time.Time `gorm:"column:valid_until"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
