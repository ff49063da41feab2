package model

import (
	"testing"
	"time"
)

func TestBookingStay(t *testing.T) {
	checkIn := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

	b := Booking{CheckInDate: checkIn, CheckOutDate: checkOut}
	rng := b.Stay()
	if !rng.CheckIn.Equal(checkIn) || !rng.CheckOut.Equal(checkOut) {
		t.Fatalf("unexpected stay range %+v", rng)
	}

	// Стыкующееся бронирование не пересекается с этим.
	next := Booking{
		CheckInDate:  checkOut,
		CheckOutDate: checkOut.AddDate(0, 0, 2),
	}
	if rng.Overlaps(next.Stay()) {
		t.Fatalf("back-to-back bookings must not overlap")
	}
}
