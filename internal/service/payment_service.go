package service

import (
	"context"
	"math"
	"time"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/repository"
)

type PaymentService struct {
	payments repository.PaymentRepository
	bookings repository.BookingRepository

	now func() time.Time
}

func NewPaymentService(payments repository.PaymentRepository, bookings repository.BookingRepository) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Charge фиксирует оплату бронирования на полную стоимость.
// Оплата pending-бронирования подтверждает его.
func (s *PaymentService) Charge(ctx context.Context, bookingID uint, amount float64, method string) (*model.Payment, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case model.BookingStatusCancelled:
		return nil, apperr.Conflictf("booking %d is cancelled", bookingID)
	case model.BookingStatusCompleted:
		return nil, apperr.Conflictf("booking %d is already completed", bookingID)
	}

	if math.Abs(amount-booking.TotalPrice) > 0.005 {
		return nil, apperr.Validationf("amount %.2f does not match booking total %.2f", amount, booking.TotalPrice)
	}

	existing, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Status == model.PaymentStatusPaid {
			return nil, apperr.Conflictf("booking %d is already paid", bookingID)
		}
	}

	now := s.now()
	payment := &model.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Status:    model.PaymentStatusPaid,
		PaidAt:    &now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if booking.Status == model.BookingStatusPending {
		if err := s.bookings.UpdateStatus(ctx, bookingID, model.BookingStatusConfirmed, nil); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// Refund: paid -> refunded; бронирование при этом отменяется.
func (s *PaymentService) Refund(ctx context.Context, paymentID uint) (*model.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != model.PaymentStatusPaid {
		return nil, apperr.Conflictf("payment %d cannot be refunded from status %s", paymentID, payment.Status)
	}

	now := s.now()
	if err := s.payments.UpdateStatus(ctx, paymentID, model.PaymentStatusRefunded, now); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != model.BookingStatusCancelled && booking.Status != model.BookingStatusCompleted {
		if err := s.bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusCancelled, &now); err != nil {
			return nil, err
		}
	}

	payment.Status = model.PaymentStatusRefunded
	payment.RefundedAt = &now
	return payment, nil
}

func (s *PaymentService) ListByBooking(ctx context.Context, bookingID uint) ([]model.Payment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}
