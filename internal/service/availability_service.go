package service

import (
	"context"
	"time"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/repository"
	"github.com/Leganyst/hotel-booking-platform/internal/stay"
)

// SearchParams — параметры поиска свободных номеров, как они
// приходят с транспортного слоя (строковые enum ещё не проверены).
type SearchParams struct {
	CheckIn  time.Time
	CheckOut time.Time

	RoomType  string
	Guests    int
	MinPrice  *float64
	MaxPrice  *float64
	Amenities []string

	SortBy   string
	SortDesc bool
}

type AvailabilityService struct {
	rooms repository.RoomRepository
}

func NewAvailabilityService(rooms repository.RoomRepository) *AvailabilityService {
	return &AvailabilityService{rooms: rooms}
}

// Search возвращает номера, свободные на запрошенный интервал.
// Только чтение; пустой список — валидный результат, не ошибка.
func (s *AvailabilityService) Search(ctx context.Context, p SearchParams) ([]model.Room, error) {
	q := repository.SearchQuery{
		Guests:    p.Guests,
		MinPrice:  p.MinPrice,
		MaxPrice:  p.MaxPrice,
		Amenities: p.Amenities,
		SortDesc:  p.SortDesc,
	}

	if p.RoomType != "" {
		rt := model.RoomType(p.RoomType)
		if !rt.Valid() {
			return nil, apperr.Validationf("unknown room type %q", p.RoomType)
		}
		q.RoomType = &rt
	}

	if p.Guests < 0 {
		return nil, apperr.Validationf("guests must not be negative")
	}
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return nil, apperr.Validationf("minPrice must not be negative")
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return nil, apperr.Validationf("maxPrice must not be negative")
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MinPrice > *p.MaxPrice {
		return nil, apperr.Validationf("minPrice must not exceed maxPrice")
	}

	if p.SortBy != "" {
		sort := repository.RoomSort(p.SortBy)
		switch sort {
		case repository.RoomSortPrice, repository.RoomSortType,
			repository.RoomSortMaxGuests, repository.RoomSortRoomNumber:
			q.SortBy = sort
		default:
			return nil, apperr.Validationf("unknown sort field %q", p.SortBy)
		}
	}

	rng, err := stay.New(p.CheckIn, p.CheckOut)
	if err != nil {
		// Вырожденный или перевёрнутый интервал не может ни с чем
		// пересечься и ничего не находит; валидацию входа делает
		// транспортный слой, здесь просто пустой результат.
		return []model.Room{}, nil
	}
	q.Stay = rng

	rooms, err := s.rooms.SearchAvailable(ctx, q)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	return rooms, nil
}
