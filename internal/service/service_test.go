package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Leganyst/hotel-booking-platform/internal/model"
)

// Общий рантайм сервисных тестов: sqlite в памяти, одно соединение.
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

// fixedNow фиксирует "сегодня" для детерминированных проверок дат.
func fixedNow(t *testing.T) func() time.Time {
	t.Helper()
	return func() time.Time {
		return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	}
}
