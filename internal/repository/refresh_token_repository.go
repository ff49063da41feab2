package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID uint, at time.Time) error
	// Чистка истёкших токенов; возвращает количество удалённых строк.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type GormRefreshTokenRepository struct {
	db *gorm.DB
}

func NewGormRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

func (r *GormRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *GormRefreshTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RefreshToken, error) {
	var t model.RefreshToken
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("refresh token %s", id)
		}
		return nil, apperr.Storage(err)
	}
	return &t, nil
}

func (r *GormRefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Update("revoked_at", at)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	return nil
}

func (r *GormRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Update("revoked_at", at)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	return nil
}

func (r *GormRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.RefreshToken{})
	if tx.Error != nil {
		return 0, apperr.Storage(tx.Error)
	}
	return tx.RowsAffected, nil
}
