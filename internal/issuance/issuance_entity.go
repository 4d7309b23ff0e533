package issuance

import (
	"time"

	"noassets/internal/area"
	"noassets/internal/item"
	"noassets/internal/shared/record"

	"github.com/google/uuid"
)

// Issuance lifecycle states. ACTIVE, the only open state, means the item is
// out in the room right now; at most one ACTIVE issuance exists per item.
// TRANSFERRED and SURRENDERED are terminal.
const (
	StatusActive      = record.StatusActive
	StatusTransferred = "TRANSFERRED"
	StatusSurrendered = "SURRENDERED"
	StatusDeleted     = record.StatusDeleted
)

type Issuance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date       time.Time  `gorm:"not null"`
	ItemID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Item       *item.Item `gorm:"foreignKey:ItemID"`
	RoomID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Room       *area.Area `gorm:"foreignKey:RoomID"`
	AssignedBy uuid.UUID  `gorm:"type:uuid;not null"`
	Remarks    *string    `gorm:"type:text"`
	Signature  *string    `gorm:"type:text"`
	Status     string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	record.Audit
}

func (Issuance) TableName() string {
	return "issuances"
}
