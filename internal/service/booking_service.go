package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/repository"
	"github.com/Leganyst/hotel-booking-platform/internal/stay"
)

type CreateBookingParams struct {
	UserID   uint
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type BookingService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository

	now func() time.Time
}

func NewBookingService(bookings repository.BookingRepository, rooms repository.RoomRepository) *BookingService {
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create создаёт бронирование в статусе pending. Конфликт по датам
// проверяется повторно в транзакции создания (CreateConflictFree),
// а не только на этапе поиска: иначе два конкурентных запроса могли
// бы обойти проверку и создать двойное бронирование.
func (s *BookingService) Create(ctx context.Context, p CreateBookingParams) (*model.Booking, error) {
	rng, err := stay.New(p.CheckIn, p.CheckOut)
	if err != nil {
		return nil, apperr.Validationf("check-out must be strictly after check-in")
	}

	today := s.now().Truncate(24 * time.Hour)
	if rng.CheckIn.Before(today) {
		return nil, apperr.Validationf("check-in date is in the past")
	}

	room, err := s.rooms.GetByID(ctx, p.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusAvailable {
		return nil, apperr.Conflictf("room %s is not open for booking (status %s)", room.RoomNumber, room.Status)
	}
	if p.Guests < 1 {
		return nil, apperr.Validationf("guests must be at least 1")
	}
	if p.Guests > room.MaxGuests {
		return nil, apperr.Validationf("room %s fits at most %d guests", room.RoomNumber, room.MaxGuests)
	}

	booking := &model.Booking{
		ReferenceCode: uuid.NewString(),
		RoomID:        room.ID,
		UserID:        p.UserID,
		CheckInDate:   rng.CheckIn,
		CheckOutDate:  rng.CheckOut,
		Guests:        p.Guests,
		Status:        model.BookingStatusPending,
		TotalPrice:    room.PricePerNight * float64(rng.Nights()),
	}

	if err := s.bookings.CreateConflictFree(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*model.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]model.Booking, int64, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *BookingService) ListByRoom(ctx context.Context, roomID uint) ([]model.Booking, error) {
	return s.bookings.ListByRoom(ctx, roomID, true)
}

// Confirm: pending -> confirmed.
func (s *BookingService) Confirm(ctx context.Context, id uint) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != model.BookingStatusPending {
		return apperr.Conflictf("booking %d cannot be confirmed from status %s", id, b.Status)
	}
	return s.bookings.UpdateStatus(ctx, id, model.BookingStatusConfirmed, nil)
}

// Complete: confirmed -> completed.
func (s *BookingService) Complete(ctx context.Context, id uint) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != model.BookingStatusConfirmed {
		return apperr.Conflictf("booking %d cannot be completed from status %s", id, b.Status)
	}
	return s.bookings.UpdateStatus(ctx, id, model.BookingStatusCompleted, nil)
}

// Cancel: pending/confirmed -> cancelled. Повторная отмена идемпотентна,
// завершённое бронирование отменить нельзя.
func (s *BookingService) Cancel(ctx context.Context, id uint) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch b.Status {
	case model.BookingStatusCancelled:
		return nil
	case model.BookingStatusCompleted:
		return apperr.Conflictf("booking %d is already completed", id)
	}
	now := s.now()
	return s.bookings.UpdateStatus(ctx, id, model.BookingStatusCancelled, &now)
}
