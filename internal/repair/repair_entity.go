package repair

import (
	"time"

	"noassets/internal/item"
	"noassets/internal/shared/record"

	"github.com/google/uuid"
)

// Repair lifecycle states. ONGOING is the only open state; at most one
// ONGOING repair exists per item. COMPLETED returns the item to service,
// DEFECTIVE writes it off.
const (
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
	StatusDefective = "DEFECTIVE"
	StatusDeleted   = record.StatusDeleted
)

type Repair struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date      time.Time  `gorm:"not null"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Item      *item.Item `gorm:"foreignKey:ItemID"`
	Problem   string     `gorm:"type:text;not null"`
	Diagnosis *string    `gorm:"type:text"`
	ReportBy  uuid.UUID  `gorm:"type:uuid;not null"`
	CheckedBy *uuid.UUID `gorm:"type:uuid"`
	Status    string     `gorm:"type:varchar(20);not null;default:'ONGOING';index"`
	record.Audit
}

func (Repair) TableName() string {
	return "repairs"
}
