package user

import (
	"noassets/internal/middleware"
	"noassets/internal/shared/record"

	"github.com/google/uuid"
)

const (
	RoleAdmin = middleware.RoleAdmin
	RoleUser  = middleware.RoleUser
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_user_email;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Firstname string    `gorm:"type:varchar(100);not null"`
	Lastname  string    `gorm:"type:varchar(100);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'USER'"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	record.Audit
}
