package area

import (
	"noassets/internal/shared/record"

	"github.com/google/uuid"
)

// Area is a room or location that items are issued to.
type Area struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Area   string    `gorm:"type:varchar(150);uniqueIndex:uq_area_name;not null"`
	Status string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	record.Audit
}
