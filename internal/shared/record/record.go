package record

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuses shared by every soft-deletable entity. Item, Issuance and Repair
// extend these with their own lifecycle states.
const (
	StatusActive  = "ACTIVE"
	StatusDeleted = "DELETED"
)

// Audit is embedded in every soft-deletable entity. A delete never removes the
// row; it flips the status column and fills the three deletion fields.
type Audit struct {
	CreatedAt     time.Time
	CreatedBy     *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt     *time.Time
	UpdatedBy     *uuid.UUID `gorm:"type:uuid"`
	DeletedAt     *time.Time
	DeletedBy     *uuid.UUID `gorm:"type:uuid"`
	DeletedReason *string    `gorm:"type:text"`
}

// SoftDelete fills the deletion fields. The caller is responsible for setting
// the entity's status column to its DELETED value in the same write.
func (a *Audit) SoftDelete(actor uuid.UUID, reason string) {
	now := time.Now().UTC()
	a.DeletedAt = &now
	a.DeletedBy = &actor
	a.DeletedReason = &reason
}

// Touch records an update by actor.
func (a *Audit) Touch(actor uuid.UUID) {
	now := time.Now().UTC()
	a.UpdatedAt = &now
	a.UpdatedBy = &actor
}

// NotDeleted scopes a query to rows that have not been soft deleted.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", StatusDeleted)
}

// WithStatus scopes a query to rows in the given status.
func WithStatus(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}
