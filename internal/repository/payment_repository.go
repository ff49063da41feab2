package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uint) (*model.Payment, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]model.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status model.PaymentStatus, at time.Time) error
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *GormPaymentRepository) GetByID(ctx context.Context, id uint) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("payment %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &p, nil
}

func (r *GormPaymentRepository) ListByBooking(ctx context.Context, bookingID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return payments, nil
}

func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, id uint, status model.PaymentStatus, at time.Time) error {
	update := map[string]any{"status": status}
	switch status {
	case model.PaymentStatusPaid:
		update["paid_at"] = at
	case model.PaymentStatusRefunded:
		update["refunded_at"] = at
	}

	tx := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", id).
		Updates(update)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("payment %d", id)
	}
	return nil
}
