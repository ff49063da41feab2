package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AmenitySet — набор тегов удобств номера (wifi, tv, minibar и т.п.).
// Контракт сериализации: в БД хранится как JSON-массив строк
// в текстовой колонке. NULL и пустая строка читаются как пустой набор.
type AmenitySet []string

func (AmenitySet) GormDataType() string { return "text" }

func (a AmenitySet) Value() (driver.Value, error) {
	if a == nil {
		a = AmenitySet{}
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, fmt.Errorf("amenity set: %w", err)
	}
	return string(b), nil
}

func (a *AmenitySet) Scan(src any) error {
	if src == nil {
		*a = AmenitySet{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("amenity set: unsupported source type %T", src)
	}

	if len(data) == 0 {
		*a = AmenitySet{}
		return nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("amenity set: %w", err)
	}
	*a = AmenitySet(tags)
	return nil
}

func (a AmenitySet) Contains(tag string) bool {
	for _, t := range a {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAll — true, если каждый запрошенный тег присутствует в наборе.
// Пустой запрос не накладывает ограничений.
func (a AmenitySet) HasAll(tags []string) bool {
	for _, t := range tags {
		if !a.Contains(t) {
			return false
		}
	}
	return true
}
