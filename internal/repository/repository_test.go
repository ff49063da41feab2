package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/stay"
)

// newTestDB поднимает sqlite в памяти со схемой ядра.
// Одно соединение, иначе каждый запрос получит свою пустую БД.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) stay.Range {
	t.Helper()
	rng, err := stay.New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("stay: %v", err)
	}
	return rng
}

func seedRoom(t *testing.T, db *gorm.DB, room model.Room) *model.Room {
	t.Helper()
	if room.Status == "" {
		room.Status = model.RoomStatusAvailable
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room %s: %v", room.RoomNumber, err)
	}
	return &room
}

func seedBooking(t *testing.T, db *gorm.DB, booking model.Booking) *model.Booking {
	t.Helper()
	if booking.Status == "" {
		booking.Status = model.BookingStatusConfirmed
	}
	if booking.ReferenceCode == "" {
		booking.ReferenceCode = "ref-" + booking.CheckInDate.Format("20060102") + "-" + booking.CheckOutDate.Format("20060102")
	}
	if booking.Guests == 0 {
		booking.Guests = 1
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return &booking
}
