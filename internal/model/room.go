package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип номера.
type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
	RoomTypeDeluxe RoomType = "deluxe"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}
	return false
}

// Операционный статус номера. Это административное состояние,
// не зависящее от истории бронирований: занятость по датам
// вычисляется отдельно по таблице bookings.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusCleaning    RoomStatus = "cleaning"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusCleaning:
		return true
	}
	return false
}

// rooms
type Room struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	RoomNumber    string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"roomNumber"`
	Type          RoomType   `gorm:"type:varchar(32);not null;index" json:"type"`
	PricePerNight float64    `gorm:"not null" json:"pricePerNight"`
	MaxGuests     int        `gorm:"not null;default:1" json:"maxGuests"`
	Description   string     `gorm:"type:text" json:"description"`
	Amenities     AmenitySet `json:"amenities"`
	Status        RoomStatus `gorm:"type:varchar(32);not null;default:'available';index" json:"availabilityStatus"`

	Photos datatypes.JSON `json:"photos,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"-"`
	UpdatedAt time.Time      `gorm:"not null" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
