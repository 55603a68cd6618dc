package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	n, err := Nights(day("2024-06-01"), day("2024-06-05"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = Nights(day("2024-06-01"), day("2024-06-02"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// time-of-day components are ignored
	n, err = Nights(
		time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNightsRejectsBadOrder(t *testing.T) {
	_, err := Nights(day("2024-06-05"), day("2024-06-05"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Nights(day("2024-06-05"), day("2024-06-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestIsRangeFree(t *testing.T) {
	existing := []Span{{Start: day("2024-06-01"), End: day("2024-06-05")}}

	// back-to-back after: request check-in equals the booking's checkout
	assert.True(t, IsRangeFree(day("2024-06-05"), day("2024-06-08"), existing))
	// back-to-back before: request checkout equals the booking's check-in
	assert.True(t, IsRangeFree(day("2024-05-28"), day("2024-06-01"), existing))
	// partial overlap into the booking
	assert.False(t, IsRangeFree(day("2024-06-03"), day("2024-06-06"), existing))
	// exact match of the existing range
	assert.False(t, IsRangeFree(day("2024-06-01"), day("2024-06-05"), existing))
	// request fully contains the booking
	assert.False(t, IsRangeFree(day("2024-05-30"), day("2024-06-10"), existing))
	// request entirely inside the booking
	assert.False(t, IsRangeFree(day("2024-06-02"), day("2024-06-04"), existing))
}

func TestIsRangeFreeBetweenBookings(t *testing.T) {
	existing := []Span{
		{Start: day("2024-06-01"), End: day("2024-06-05")},
		{Start: day("2024-06-10"), End: day("2024-06-15")},
	}
	// the gap between two bookings is free, including both boundaries
	assert.True(t, IsRangeFree(day("2024-06-05"), day("2024-06-10"), existing))
	assert.True(t, IsRangeFree(day("2024-06-06"), day("2024-06-09"), existing))
	assert.False(t, IsRangeFree(day("2024-06-04"), day("2024-06-11"), existing))
}

func TestIsRangeFreeIsIdempotent(t *testing.T) {
	existing := []Span{{Start: day("2024-06-01"), End: day("2024-06-05")}}
	first := IsRangeFree(day("2024-06-03"), day("2024-06-06"), existing)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsRangeFree(day("2024-06-03"), day("2024-06-06"), existing))
	}
}

func TestValidateDuration(t *testing.T) {
	// 200 nights against a 180-day cap
	err := ValidateDuration(day("2024-01-01"), day("2024-07-19"), 180)
	require.ErrorIs(t, err, ErrExceedsMaxStay)
	assert.Contains(t, err.Error(), "180")

	// exactly at the cap is fine
	assert.NoError(t, ValidateDuration(day("2024-01-01"), day("2024-01-31"), 30))

	// no cap means any duration passes
	assert.NoError(t, ValidateDuration(day("2024-01-01"), day("2025-01-01"), 0))
}

func TestBookedDates(t *testing.T) {
	spans := []Span{
		{Start: day("2024-06-01"), End: day("2024-06-04")},
		{Start: day("2024-06-10"), End: day("2024-06-12")},
	}
	got := BookedDates(spans)
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-10", "2024-06-11"}
	assert.Len(t, got, len(want))
	for _, d := range want {
		assert.Contains(t, got, d)
	}
	// checkout days are not occupied
	assert.NotContains(t, got, "2024-06-04")
	assert.NotContains(t, got, "2024-06-12")

	// order-independent and duplicate-free for overlapping input
	reversed := BookedDates([]Span{spans[1], spans[0], spans[0]})
	assert.Equal(t, got, reversed)
}

func TestValidatePipeline(t *testing.T) {
	existing := []Span{{Start: day("2024-06-01"), End: day("2024-06-05")}}
	base := Request{
		CheckIn:     day("2024-06-05"),
		CheckOut:    day("2024-06-08"),
		Guests:      2,
		MaxGuests:   4,
		MaxStayDays: 30,
		Existing:    existing,
	}

	nights, err := Validate(base)
	require.NoError(t, err)
	assert.Equal(t, 3, nights)

	// date order is checked first
	bad := base
	bad.CheckIn, bad.CheckOut = bad.CheckOut, bad.CheckIn
	_, err = Validate(bad)
	assert.ErrorIs(t, err, ErrInvalidRange)

	// overlap with the confirmed booking
	bad = base
	bad.CheckIn, bad.CheckOut = day("2024-06-03"), day("2024-06-06")
	_, err = Validate(bad)
	assert.ErrorIs(t, err, ErrNotAvailable)

	// duration over the cap
	bad = base
	bad.CheckOut = day("2024-08-01")
	_, err = Validate(bad)
	assert.ErrorIs(t, err, ErrExceedsMaxStay)

	// too many guests
	bad = base
	bad.Guests = 5
	_, err = Validate(bad)
	require.ErrorIs(t, err, ErrTooManyGuests)
	assert.Contains(t, err.Error(), "4")

	// check-in before "now"
	bad = base
	bad.Now = day("2024-07-01")
	_, err = Validate(bad)
	assert.ErrorIs(t, err, ErrCheckInPast)
}
