package model

import (
	"time"

	"github.com/Leganyst/hotel-booking-platform/internal/stay"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// bookings
//
// Инвариант: два бронирования одного номера со статусами,
// отличными от cancelled, не пересекаются как полуоткрытые
// интервалы [check_in_date, check_out_date).
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ReferenceCode string `gorm:"type:varchar(64);not null;uniqueIndex" json:"referenceCode"`

	// Внешние ключи храним как идентификаторы; связанные записи
	// репозитории достают по запросу, без живого графа объектов.
	RoomID uint `gorm:"not null;index" json:"roomId"`
	UserID uint `gorm:"not null;index" json:"userId"`

	CheckInDate  time.Time `gorm:"not null;index" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"not null" json:"checkOutDate"`
	Guests       int       `gorm:"not null;default:1" json:"guests"`

	Status      BookingStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	TotalPrice  float64       `json:"totalPrice"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

// Stay возвращает интервал проживания бронирования.
func (b *Booking) Stay() stay.Range {
	return stay.Range{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}
