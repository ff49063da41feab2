package apperr

import (
	"errors"
	"fmt"
)

// Таксономия ошибок ядра бронирования. Сервисы возвращают ошибки,
// обёрнутые вокруг этих сентинелов; транспортный слой сопоставляет
// их с HTTP-статусами через errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrStorage — хранилище недоступно или запрос завершился ошибкой.
	// Никогда не интерпретируется как "ничего не найдено".
	ErrStorage = errors.New("storage unavailable")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Storage оборачивает ошибку драйвера/БД, сохраняя её в цепочке.
func Storage(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
