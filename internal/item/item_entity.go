package item

import (
	"noassets/internal/itemtype"
	"noassets/internal/shared/record"

	"github.com/google/uuid"
)

// Item lifecycle states. ASSIGNED holds exactly while an ACTIVE issuance
// references the item; DEFECTIVE holds while an ONGOING repair does, or after
// a repair write-off. The two never hold at once.
const (
	StatusActive    = record.StatusActive
	StatusAssigned  = "ASSIGNED"
	StatusDefective = "DEFECTIVE"
	StatusDeleted   = record.StatusDeleted
)

type Item struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TypeID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	Type         *itemtype.ItemType `gorm:"foreignKey:TypeID"`
	ItemName     string             `gorm:"type:varchar(150);not null"`
	Brand        string             `gorm:"type:varchar(100)"`
	SerialNo     string             `gorm:"type:varchar(100);uniqueIndex:uq_item_serial_no;not null"`
	BarcodeID    string             `gorm:"type:varchar(100);index"`
	OtherDetails *string            `gorm:"type:text"`
	Photo        *string            `gorm:"type:text"`
	Status       string             `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	record.Audit
}
