package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
)

type UserRepository interface {
	// Создать пользователя. Дубликат email — apperr.ErrConflict.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetRole(ctx context.Context, id uint, role model.UserRole) error
	// Инкремент версии токенов: отзывает все ранее выпущенные refresh-токены.
	BumpTokenVersion(ctx context.Context, id uint) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = normalizeEmail(user.Email)

	var existing model.User
	tx := r.db.WithContext(ctx).First(&existing, "email = ?", user.Email)
	if tx.Error == nil {
		return apperr.Conflictf("email %q already registered", user.Email)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return apperr.Storage(tx.Error)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &u, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", normalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %s", email)
		}
		return nil, apperr.Storage(err)
	}
	return &u, nil
}

func (r *GormUserRepository) SetRole(ctx context.Context, id uint, role model.UserRole) error {
	tx := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", id)
	}
	return nil
}

func (r *GormUserRepository) BumpTokenVersion(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1"))
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", id)
	}
	return nil
}
