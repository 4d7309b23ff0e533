package trail

import (
	"time"

	"github.com/google/uuid"
)

// Trail is append-only: rows are inserted by the audit consumer and never
// updated or deleted by the application.
type Trail struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(16);not null;index"`
	Entity    string     `gorm:"type:varchar(32);not null;index"`
	EntityID  string     `gorm:"type:varchar(64);index"`
	Details   []byte     `gorm:"type:jsonb"`
	IP        string     `gorm:"type:varchar(45)"`
	Timestamp time.Time  `gorm:"not null;index"`
}
