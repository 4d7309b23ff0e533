package itemtype

import (
	"time"

	"github.com/google/uuid"
)

// ItemType is an immutable reference lookup: rows are created and read, never
// updated or soft deleted.
type ItemType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type      string    `gorm:"type:varchar(100);uniqueIndex:uq_itemtype_type;not null"`
	CreatedAt time.Time
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
}
