package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/stay"
)

// Поле сортировки результатов поиска.
type RoomSort string

const (
	RoomSortPrice      RoomSort = "price"
	RoomSortType       RoomSort = "type"
	RoomSortMaxGuests  RoomSort = "maxGuests"
	RoomSortRoomNumber RoomSort = "roomNumber"
)

// Белый список колонок сортировки: значение снаружи никогда
// не попадает в ORDER BY напрямую.
var roomSortColumns = map[RoomSort]string{
	RoomSortPrice:      "price_per_night",
	RoomSortType:       "type",
	RoomSortMaxGuests:  "max_guests",
	RoomSortRoomNumber: "room_number",
}

// SearchQuery — критерии поиска свободных номеров. Все фильтры
// соединяются по AND; не заданный фильтр не накладывает ограничений.
type SearchQuery struct {
	Stay stay.Range

	RoomType  *model.RoomType
	MinPrice  *float64
	MaxPrice  *float64
	Guests    int
	Amenities []string

	SortBy   RoomSort // пустое значение — сортировка по id
	SortDesc bool
}

type RoomRepository interface {
	// Создать номер. Дубликат номера комнаты — apperr.ErrConflict.
	Create(ctx context.Context, room *model.Room) error
	// Найти номер по ID. Отсутствующий или мягко удалённый — apperr.ErrNotFound.
	GetByID(ctx context.Context, id uint) (*model.Room, error)
	// Обновить поля номера.
	Update(ctx context.Context, room *model.Room) error
	// Сменить операционный статус.
	UpdateStatus(ctx context.Context, id uint, status model.RoomStatus) error
	// Мягкое удаление: запись остаётся в БД, но перестаёт находиться.
	SoftDelete(ctx context.Context, id uint) error
	// Список номеров с пагинацией.
	List(ctx context.Context, limit, offset int) ([]model.Room, int64, error)
	// Поиск номеров, свободных на интервал Stay. Только чтение.
	SearchAvailable(ctx context.Context, q SearchQuery) ([]model.Room, error)
}

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *model.Room) error {
	var existing model.Room
	tx := r.db.WithContext(ctx).First(&existing, "room_number = ?", room.RoomNumber)
	if tx.Error == nil {
		return apperr.Conflictf("room number %q already exists", room.RoomNumber)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return apperr.Storage(tx.Error)
	}

	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *GormRoomRepository) GetByID(ctx context.Context, id uint) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("room %d", id)
		}
		return nil, apperr.Storage(err)
	}
	return &room, nil
}

// Update сохраняет все поля, включая обнулённые (Save, не Updates).
func (r *GormRoomRepository) Update(ctx context.Context, room *model.Room) error {
	tx := r.db.WithContext(ctx).Save(room)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("room %d", room.ID)
	}
	return nil
}

func (r *GormRoomRepository) UpdateStatus(ctx context.Context, id uint, status model.RoomStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("room %d", id)
	}
	return nil
}

func (r *GormRoomRepository) SoftDelete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id)
	if tx.Error != nil {
		return apperr.Storage(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return apperr.NotFoundf("room %d", id)
	}
	return nil
}

func (r *GormRoomRepository) List(ctx context.Context, limit, offset int) ([]model.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Room{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage(err)
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rooms []model.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return rooms, total, nil
}

// SearchAvailable отбирает номера в два слоя:
//  1. операционный — только status = available (maintenance/cleaning/occupied
//     исключаются безусловно, независимо от бронирований);
//  2. по бронированиям — анти-джойн против пересекающихся не-отменённых
//     бронирований на полуоткрытом интервале. NOT EXISTS гарантирует,
//     что каждый номер попадает в выдачу не более одного раза.
//
// Фильтр по удобствам применяется над результатом: набор хранится
// как JSON-текст, и проверка "надмножество" на стороне SQL была бы
// диалекто-зависимой.
func (r *GormRoomRepository) SearchAvailable(ctx context.Context, q SearchQuery) ([]model.Room, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("status = ?", model.RoomStatusAvailable)

	if q.RoomType != nil {
		query = query.Where("type = ?", *q.RoomType)
	}
	if q.Guests > 0 {
		query = query.Where("max_guests >= ?", q.Guests)
	}
	if q.MinPrice != nil {
		query = query.Where("price_per_night >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price_per_night <= ?", *q.MaxPrice)
	}

	query = query.Where(`NOT EXISTS (
		SELECT 1 FROM bookings b
		WHERE b.room_id = rooms.id
		  AND b.status <> ?
		  AND b.check_in_date < ?
		  AND ? < b.check_out_date
	)`, model.BookingStatusCancelled, q.Stay.CheckOut, q.Stay.CheckIn)

	query = query.Order(roomOrderClause(q.SortBy, q.SortDesc))

	var rooms []model.Room
	if err := query.Find(&rooms).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	if len(q.Amenities) == 0 {
		return rooms, nil
	}

	filtered := rooms[:0]
	for _, room := range rooms {
		if room.Amenities.HasAll(q.Amenities) {
			filtered = append(filtered, room)
		}
	}
	return filtered, nil
}

func roomOrderClause(sortBy RoomSort, desc bool) string {
	col, ok := roomSortColumns[sortBy]
	if !ok {
		return "id ASC"
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	// id — детерминированный tiebreak при равных значениях поля.
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}
