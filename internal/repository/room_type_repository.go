package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
)

type RoomTypeRepository interface {
	// Создать карточку типа. Дубликат кода — apperr.ErrConflict.
	Create(ctx context.Context, info *model.RoomTypeInfo) error
	GetByCode(ctx context.Context, code model.RoomType) (*model.RoomTypeInfo, error)
	List(ctx context.Context) ([]model.RoomTypeInfo, error)
}

type GormRoomTypeRepository struct {
	db *gorm.DB
}

func NewGormRoomTypeRepository(db *gorm.DB) *GormRoomTypeRepository {
	return &GormRoomTypeRepository{db: db}
}

func (r *GormRoomTypeRepository) Create(ctx context.Context, info *model.RoomTypeInfo) error {
	var existing model.RoomTypeInfo
	tx := r.db.WithContext(ctx).First(&existing, "code = ?", info.Code)
	if tx.Error == nil {
		return apperr.Conflictf("room type %q already described", info.Code)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return apperr.Storage(tx.Error)
	}

	if err := r.db.WithContext(ctx).Create(info).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *GormRoomTypeRepository) GetByCode(ctx context.Context, code model.RoomType) (*model.RoomTypeInfo, error) {
	var info model.RoomTypeInfo
	if err := r.db.WithContext(ctx).First(&info, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("room type %s", code)
		}
		return nil, apperr.Storage(err)
	}
	return &info, nil
}

func (r *GormRoomTypeRepository) List(ctx context.Context) ([]model.RoomTypeInfo, error) {
	var infos []model.RoomTypeInfo
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&infos).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return infos, nil
}
