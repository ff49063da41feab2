package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
)

//
// Тесты поиска свободных номеров.
//

// Номер 101 забронирован на 20–25 марта; запрос внутри интервала
// должен его исключить.
func TestSearchAvailable_OverlapExcluded(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	room := seedRoom(t, db, model.Room{
		RoomNumber:    "101",
		Type:          model.RoomTypeDouble,
		PricePerNight: 100,
		MaxGuests:     2,
	})
	seedBooking(t, db, model.Booking{
		RoomID:       room.ID,
		UserID:       1,
		CheckInDate:  mustDate(t, 2024, 3, 20),
		CheckOutDate: mustDate(t, 2024, 3, 25),
	})

	rooms, err := repo.SearchAvailable(context.Background(), SearchQuery{
		Stay: mustStay(t, mustDate(t, 2024, 3, 22), mustDate(t, 2024, 3, 24)),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected room 101 to be excluded, got %d rooms", len(rooms))
	}
}

// Заезд в день выезда предыдущего гостя — не конфликт.
func TestSearchAvailable_BackToBackIncluded(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	room := seedRoom(t, db, model.Room{
		RoomNumber:    "101",
		Type:          model.RoomTypeDouble,
		PricePerNight: 100,
		MaxGuests:     2,
	})
	seedBooking(t, db, model.Booking{
		RoomID:       room.ID,
		UserID:       1,
		CheckInDate:  mustDate(t, 2024, 3, 20),
		CheckOutDate: mustDate(t, 2024, 3, 25),
	})

	rooms, err := repo.SearchAvailable(context.Background(), SearchQuery{
		Stay: mustStay(t, mustDate(t, 2024, 3, 25), mustDate(t, 2024, 3, 27)),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Fatalf("expected room 101 for back-to-back stay, got %v", rooms)
	}
}

func TestSearchAvailable_DisjointIncluded(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	room := seedRoom(t, db, model.Room{
		RoomNumber:    "101",
		Type:          model.RoomTypeDouble,
		PricePerNight: 100,
		MaxGuests:     2,
	})
	seedBooking(t, db, model.Booking{
		RoomID:       room.ID,
		UserID:       1,
		CheckInDate:  mustDate(t, 2024, 3, 20),
		CheckOutDate: mustDate(t, 2024, 3, 25),
	})

	rooms, err := repo.SearchAvailable(context.Background(), SearchQuery{
		Stay: mustStay(t, mustDate(t, 2024, 3, 10), mustDate(t, 2024, 3, 15)),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected room 101 for disjoint stay, got %d rooms", len(rooms))
	}
}

// Отменённое бронирование не блокирует даты.
func TestSearchAvailable_CancelledBookingIgnored(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	room := seedRoom(t, db, model.Room{
		RoomNumber:    "101",
		Type:          model.RoomTypeDouble,
		PricePerNight: 100,
		MaxGuests:     2,
	})
	seedBooking(t, db, model.Booking{
		RoomID:       room.ID,
		UserID:       1,
		Status:       model.BookingStatusCancelled,
		CheckInDate:  mustDate(t, 2024, 3, 20),
		CheckOutDate: mustDate(t, 2024, 3, 25),
	})

	rooms, err := repo.SearchAvailable(context.Background(), SearchQuery{
		Stay: mustStay(t, mustDate(t, 2024, 3, 22), mustDate(t, 2024, 3, 24)),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("cancelled booking must not block the room, got %d rooms", len(rooms))
	}
}

// Номер на обслуживании исключается всегда, даже без бронирований.
func TestSearchAvailable_MaintenanceExcluded(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	seedRoom(t, db, model.Room{
		RoomNumber:    "102",
		Type:          model.RoomTypeSingle,
		PricePerNight: 80,
		MaxGuests:     1,
		Status:        model.RoomStatusMaintenance,
	})

	rooms, err := repo.SearchAvailable(context.Background(), SearchQuery{
		Stay: mustStay(t, mustDate(t, 2024, 3, 10), mustDate(t, 2024, 3, 15)),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("maintenance room must never appear, got %d rooms", len(rooms))
	}
}

// Каждый добавленный фильтр только сужает выдачу.
func TestSearchAvailable_ConjunctiveFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	seedRoom(t, db, model.Room{
		RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2,
		Amenities: model.AmenitySet{"wifi", "tv"},
	})
	seedRoom(t, db, model.Room{
		RoomNumber: "201", Type: model.RoomTypeSuite, PricePerNight: 250, MaxGuests: 4,
		Amenities: model.AmenitySet{"wifi", "tv", "minibar"},
	})
	seedRoom(t, db, model.Room{
		RoomNumber: "301", Type: model.RoomTypeSuite, PricePerNight: 400, MaxGuests: 4,
		Amenities: model.AmenitySet{"wifi"},
	})

	ctx := context.Background()
	rng := mustStay(t, mustDate(t, 2024, 5, 1), mustDate(t, 2024, 5, 3))

	all, err := repo.SearchAvailable(ctx, SearchQuery{Stay: rng})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rooms without filters, got %d", len(all))
	}

	suite := model.RoomTypeSuite
	byType, err := repo.SearchAvailable(ctx, SearchQuery{Stay: rng, RoomType: &suite})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byType) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(byType))
	}

	maxPrice := 300.0
	byPrice, err := repo.SearchAvailable(ctx, SearchQuery{Stay: rng, RoomType: &suite, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byPrice) != 1 || byPrice[0].RoomNumber != "201" {
		t.Fatalf("expected only room 201, got %v", byPrice)
	}

	byAmenity, err := repo.SearchAvailable(ctx, SearchQuery{
		Stay: rng, RoomType: &suite, MaxPrice: &maxPrice,
		Amenities: []string{"minibar", "sauna"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byAmenity) != 0 {
		t.Fatalf("expected no rooms with sauna, got %d", len(byAmenity))
	}
}

func TestSearchAvailable_GuestsFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	seedRoom(t, db, model.Room{RoomNumber: "101", Type: model.RoomTypeSingle, PricePerNight: 80, MaxGuests: 1})
	seedRoom(t, db, model.Room{RoomNumber: "201", Type: model.RoomTypeSuite, PricePerNight: 250, MaxGuests: 4})

	rooms, err := repo.SearchAvailable(context.Background(), SearchQuery{
		Stay:   mustStay(t, mustDate(t, 2024, 5, 1), mustDate(t, 2024, 5, 3)),
		Guests: 3,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomNumber != "201" {
		t.Fatalf("expected only room 201 for 3 guests, got %v", rooms)
	}
}

// Сортировка по цене с детерминированным tiebreak по id.
func TestSearchAvailable_SortDeterministic(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	seedRoom(t, db, model.Room{RoomNumber: "103", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2})
	seedRoom(t, db, model.Room{RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2})
	seedRoom(t, db, model.Room{RoomNumber: "102", Type: model.RoomTypeDouble, PricePerNight: 90, MaxGuests: 2})

	q := SearchQuery{
		Stay:   mustStay(t, mustDate(t, 2024, 5, 1), mustDate(t, 2024, 5, 3)),
		SortBy: RoomSortPrice,
	}

	rooms, err := repo.SearchAvailable(context.Background(), q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	if rooms[0].RoomNumber != "102" {
		t.Fatalf("expected cheapest room first, got %s", rooms[0].RoomNumber)
	}
	// Равная цена: порядок фиксируется id, то есть порядком создания.
	if rooms[1].RoomNumber != "103" || rooms[2].RoomNumber != "101" {
		t.Fatalf("expected id tiebreak for equal prices, got %s, %s", rooms[1].RoomNumber, rooms[2].RoomNumber)
	}

	// Повторный поиск даёт тот же порядок.
	again, err := repo.SearchAvailable(context.Background(), q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := range rooms {
		if rooms[i].ID != again[i].ID {
			t.Fatalf("repeated search changed order at %d: %d vs %d", i, rooms[i].ID, again[i].ID)
		}
	}
}

func TestSearchAvailable_SortFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	seedRoom(t, db, model.Room{RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2})
	seedRoom(t, db, model.Room{RoomNumber: "202", Type: model.RoomTypeSuite, PricePerNight: 250, MaxGuests: 4})
	seedRoom(t, db, model.Room{RoomNumber: "303", Type: model.RoomTypeDeluxe, PricePerNight: 180, MaxGuests: 3})

	rng := mustStay(t, mustDate(t, 2024, 5, 1), mustDate(t, 2024, 5, 3))
	minPrice := 150.0

	cases := []struct {
		name string
		q    SearchQuery
		want []string
	}{
		{"price desc", SearchQuery{Stay: rng, SortBy: RoomSortPrice, SortDesc: true}, []string{"202", "303", "101"}},
		{"room number asc", SearchQuery{Stay: rng, SortBy: RoomSortRoomNumber}, []string{"101", "202", "303"}},
		{"room number desc", SearchQuery{Stay: rng, SortBy: RoomSortRoomNumber, SortDesc: true}, []string{"303", "202", "101"}},
		{"max guests asc", SearchQuery{Stay: rng, SortBy: RoomSortMaxGuests}, []string{"101", "303", "202"}},
		{"type asc", SearchQuery{Stay: rng, SortBy: RoomSortType}, []string{"303", "101", "202"}},
		{"min price with sort", SearchQuery{Stay: rng, SortBy: RoomSortPrice, MinPrice: &minPrice}, []string{"303", "202"}},
	}

	for _, tc := range cases {
		rooms, err := repo.SearchAvailable(context.Background(), tc.q)
		if err != nil {
			t.Fatalf("%s: search: %v", tc.name, err)
		}
		if len(rooms) != len(tc.want) {
			t.Fatalf("%s: expected %d rooms, got %d", tc.name, len(tc.want), len(rooms))
		}
		for i, num := range tc.want {
			if rooms[i].RoomNumber != num {
				t.Fatalf("%s: position %d: expected %s, got %s", tc.name, i, num, rooms[i].RoomNumber)
			}
		}
	}
}

//
// CRUD.
//

func TestRoomCreate_DuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	first := &model.Room{RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2, Status: model.RoomStatusAvailable}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &model.Room{RoomNumber: "101", Type: model.RoomTypeSingle, PricePerNight: 80, MaxGuests: 1, Status: model.RoomStatusAvailable}
	err := repo.Create(ctx, dup)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate room number, got %v", err)
	}
}

func TestRoomGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)

	_, err := repo.GetByID(context.Background(), 777)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, model.Room{RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2})

	if err := repo.SoftDelete(ctx, room.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, room.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	rooms, err := repo.SearchAvailable(ctx, SearchQuery{
		Stay: mustStay(t, mustDate(t, 2024, 5, 1), mustDate(t, 2024, 5, 3)),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("deleted room must not appear in search, got %d rooms", len(rooms))
	}

	// Запись осталась в таблице.
	var n int64
	if err := db.Unscoped().Model(&model.Room{}).Where("id = ?", room.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("soft delete must keep the row, got %d", n)
	}
}

func TestRoomUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, model.Room{RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2})

	if err := repo.UpdateStatus(ctx, room.ID, model.RoomStatusCleaning); err != nil {
		t.Fatalf("update status: %v", err)
	}

	got, err := repo.GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.RoomStatusCleaning {
		t.Fatalf("expected cleaning, got %s", got.Status)
	}

	if err := repo.UpdateStatus(ctx, 777, model.RoomStatusCleaning); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing room, got %v", err)
	}
}

func TestRoomUpdate_ClearsFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, model.Room{
		RoomNumber: "101", Type: model.RoomTypeDouble, PricePerNight: 100, MaxGuests: 2,
		Description: "corner room",
	})

	room.Description = ""
	if err := repo.Update(ctx, room); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "" {
		t.Fatalf("expected cleared description, got %q", got.Description)
	}
}

func TestRoomList_Pagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	for _, num := range []string{"103", "101", "102"} {
		seedRoom(t, db, model.Room{RoomNumber: num, Type: model.RoomTypeSingle, PricePerNight: 80, MaxGuests: 1})
	}

	rooms, total, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(rooms) != 2 || rooms[0].RoomNumber != "101" || rooms[1].RoomNumber != "102" {
		t.Fatalf("unexpected page: %v", rooms)
	}
}
