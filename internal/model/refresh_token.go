package model

import (
	"time"

	"github.com/google/uuid"
)

// refresh_tokens
//
// Хранится только SHA-256 хеш токена: утечка таблицы не даёт
// возможности воспользоваться refresh-токеном.
type RefreshToken struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID    uint   `gorm:"not null;index"`
	TokenHash string `gorm:"type:varchar(64);not null"`

	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:"type:timestamp"`

	CreatedAt time.Time `gorm:"not null"`
}
