package model

import (
	"time"

	"gorm.io/datatypes"
)

// room_type_infos — каталожные карточки типов номеров.
// Сами номера ссылаются на тип по коду (Room.Type), а не по FK:
// карточка — справочная метаинформация, не владелец.
type RoomTypeInfo struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Code        RoomType `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	DisplayName string   `gorm:"type:varchar(255);not null" json:"displayName"`
	Description string   `gorm:"type:text" json:"description"`
	BaseRate    float64  `json:"baseRate"`

	// Произвольные характеристики типа (площадь, вид из окна и т.п.).
	Features datatypes.JSON `json:"features,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
