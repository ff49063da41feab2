package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/stay"
)

type BookingRepository interface {
	// Создать бронирование без проверки конфликтов.
	Create(ctx context.Context, booking *model.Booking) error
	// Создать бронирование с повторной проверкой конфликтов в транзакции.
	// Пересечение с не-отменённым бронированием того же номера — apperr.ErrConflict.
	CreateConflictFree(ctx context.Context, booking *model.Booking) error
	// Получить бронирование по ID.
	GetByID(ctx context.Context, id uint) (*model.Booking, error)
	// Получить бронирование по коду.
	GetByReference(ctx context.Context, ref string) (*model.Booking, error)
	// Обновить статус (при отмене проставляется cancelled_at).
	UpdateStatus(ctx context.Context, id uint, status model.BookingStatus, cancelledAt *time.Time) error
	// Бронирования номера, без отменённых по желанию вызывающего.
	ListByRoom(ctx context.Context, roomID uint, includeCancelled bool) ([]model.Booking, error)
	// Бронирования пользователя за всё время с пагинацией.
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]model.Booking, int64, error)
	// Количество не-отменённых бронирований номера, пересекающих интервал.
	CountOverlapping(ctx context.Context, roomID uint, rng stay.Range) (int64, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// CreateConflictFree повторяет проверку пересечений в момент коммита.
// Поиск и создание бронирования — отдельные запросы, поэтому без этой
// проверки два конкурентных запроса могли бы оба пройти поиск и создать
// двойное бронирование. На Postgres строка номера блокируется через
// SELECT ... FOR UPDATE; sqlite блокировку не поддерживает и живёт
// на сериализации транзакций.
func (r *GormBookingRepository) CreateConflictFree(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomQ := tx
		if tx.Dialector.Name() == "postgres" {
			roomQ = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var room model.Room
		if err := roomQ.First(&room, "id = ?", booking.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("room %d", booking.RoomID)
			}
			return apperr.Storage(err)
		}

		rng := booking.Stay()
		var n int64
		err := tx.Model(&model.Booking{}).
			Where("room_id = ?", booking.RoomID).
			Where("status <> ?", model.BookingStatusCancelled).
			Where("check_in_date < ? AND ? < check_out_date", rng.CheckOut, rng.CheckIn).
			Count(&n).Error
		if err != nil {
			return apperr.Storage(err)
		}
		if n > 0 {
			return apperr.Conflictf("room %s is already booked for the requested dates", room.RoomNumber)
		}

		if err := tx.Create(booking).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uint) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("booking %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &b, nil
}

func (r *GormBookingRepository) GetByReference(ctx context.Context, ref string) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "reference_code = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("booking %s", ref)
		}
		return nil, apperr.Storage(err)
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status model.BookingStatus,
	cancelledAt *time.Time,
) error {
	update := map[string]any{
		"status": status,
	}
	if cancelledAt != nil {
		update["cancelled_at"] = *cancelledAt
	}
	tx := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(update)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("booking %d", id)
	}
	return nil
}

func (r *GormBookingRepository) ListByRoom(ctx context.Context, roomID uint, includeCancelled bool) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).Where("room_id = ?", roomID)
	if !includeCancelled {
		q = q.Where("status <> ?", model.BookingStatusCancelled)
	}

	var bookings []model.Booking
	if err := q.Order("check_in_date ASC").Find(&bookings).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByUser(
	ctx context.Context,
	userID uint,
	limit, offset int,
) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage(err)
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var bookings []model.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return bookings, total, nil
}

func (r *GormBookingRepository) CountOverlapping(ctx context.Context, roomID uint, rng stay.Range) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", model.BookingStatusCancelled).
		Where("check_in_date < ? AND ? < check_out_date", rng.CheckOut, rng.CheckIn).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}
