package stay

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("invalid stay range")

// Range — интервал проживания, полуоткрытый [CheckIn, CheckOut).
// День выезда не занимает номер: следующий гость может заехать в ту же дату.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New создаёт интервал и делает простую валидацию:
// обе границы заданы, выезд строго позже заезда.
func New(checkIn, checkOut time.Time) (Range, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Range{}, ErrInvalidRange
	}
	if !checkOut.After(checkIn) {
		return Range{}, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidRange)
	}
	return Range{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов:
// a.CheckIn < b.CheckOut && b.CheckIn < a.CheckOut.
// Стык "выезд одного == заезд другого" пересечением не считается.
func (r Range) Overlaps(other Range) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights — количество ночей в интервале; неполная ночь округляется вверх.
func (r Range) Nights() int {
	d := r.CheckOut.Sub(r.CheckIn)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}
