package model

import (
	"time"

	"gorm.io/gorm"
)

// Роль пользователя. Одна роль на пользователя.
type UserRole string

const (
	UserRoleGuest UserRole = "guest"
	UserRoleStaff UserRole = "staff"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleGuest, UserRoleStaff, UserRoleAdmin:
		return true
	}
	return false
}

// users
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Name         string   `gorm:"type:varchar(255)" json:"name"`
	Role         UserRole `gorm:"type:varchar(32);not null;default:'guest';index" json:"role"`

	// TokenVersion инкрементируется при logout; refresh-токены,
	// выпущенные до инкремента, перестают приниматься.
	TokenVersion int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"-"`
	UpdatedAt time.Time      `gorm:"not null" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
