package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

// payments
type Payment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint `gorm:"not null;index" json:"bookingId"`

	Amount   float64       `gorm:"not null" json:"amount"`
	Currency string        `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	Method   string        `gorm:"type:varchar(32)" json:"method"`
	Status   PaymentStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	PaidAt     *time.Time `json:"paidAt,omitempty"`
	RefundedAt *time.Time `json:"refundedAt,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
