package service

import (
	"context"

	"gorm.io/datatypes"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/repository"
)

// CreateRoomParams — входные данные на создание номера.
type CreateRoomParams struct {
	RoomNumber    string
	Type          string
	PricePerNight float64
	MaxGuests     int
	Description   string
	Amenities     []string
	Photos        datatypes.JSON
}

// UpdateRoomParams — частичное обновление: nil-поле не трогается.
type UpdateRoomParams struct {
	PricePerNight *float64
	MaxGuests     *int
	Description   *string
	Amenities     []string
	Photos        datatypes.JSON
}

type RoomService struct {
	rooms     repository.RoomRepository
	roomTypes repository.RoomTypeRepository
}

func NewRoomService(rooms repository.RoomRepository, roomTypes repository.RoomTypeRepository) *RoomService {
	return &RoomService{rooms: rooms, roomTypes: roomTypes}
}

func (s *RoomService) Create(ctx context.Context, p CreateRoomParams) (*model.Room, error) {
	if p.RoomNumber == "" {
		return nil, apperr.Validationf("room number is required")
	}
	rt := model.RoomType(p.Type)
	if !rt.Valid() {
		return nil, apperr.Validationf("unknown room type %q", p.Type)
	}
	if p.PricePerNight < 0 {
		return nil, apperr.Validationf("price per night must not be negative")
	}
	if p.MaxGuests < 1 {
		return nil, apperr.Validationf("max guests must be at least 1")
	}

	room := &model.Room{
		RoomNumber:    p.RoomNumber,
		Type:          rt,
		PricePerNight: p.PricePerNight,
		MaxGuests:     p.MaxGuests,
		Description:   p.Description,
		Amenities:     model.AmenitySet(p.Amenities),
		Status:        model.RoomStatusAvailable,
		Photos:        p.Photos,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*model.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *RoomService) List(ctx context.Context, limit, offset int) ([]model.Room, int64, error) {
	return s.rooms.List(ctx, limit, offset)
}

func (s *RoomService) Update(ctx context.Context, id uint, p UpdateRoomParams) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.PricePerNight != nil {
		if *p.PricePerNight < 0 {
			return nil, apperr.Validationf("price per night must not be negative")
		}
		room.PricePerNight = *p.PricePerNight
	}
	if p.MaxGuests != nil {
		if *p.MaxGuests < 1 {
			return nil, apperr.Validationf("max guests must be at least 1")
		}
		room.MaxGuests = *p.MaxGuests
	}
	if p.Description != nil {
		room.Description = *p.Description
	}
	if p.Amenities != nil {
		room.Amenities = model.AmenitySet(p.Amenities)
	}
	if p.Photos != nil {
		room.Photos = p.Photos
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetStatus меняет операционный статус номера (административный слой
// доступности; занятость по датам он не учитывает и не изменяет).
func (s *RoomService) SetStatus(ctx context.Context, id uint, status string) error {
	st := model.RoomStatus(status)
	if !st.Valid() {
		return apperr.Validationf("unknown room status %q", status)
	}
	return s.rooms.UpdateStatus(ctx, id, st)
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.rooms.SoftDelete(ctx, id)
}

// CreateRoomTypeParams — карточка типа номера для каталога.
type CreateRoomTypeParams struct {
	Code        string
	DisplayName string
	Description string
	BaseRate    float64
	Features    datatypes.JSON
}

func (s *RoomService) CreateRoomType(ctx context.Context, p CreateRoomTypeParams) (*model.RoomTypeInfo, error) {
	code := model.RoomType(p.Code)
	if !code.Valid() {
		return nil, apperr.Validationf("unknown room type %q", p.Code)
	}
	if p.DisplayName == "" {
		return nil, apperr.Validationf("display name is required")
	}

	info := &model.RoomTypeInfo{
		Code:        code,
		DisplayName: p.DisplayName,
		Description: p.Description,
		BaseRate:    p.BaseRate,
		Features:    p.Features,
	}
	if err := s.roomTypes.Create(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *RoomService) ListRoomTypes(ctx context.Context) ([]model.RoomTypeInfo, error) {
	return s.roomTypes.List(ctx)
}
