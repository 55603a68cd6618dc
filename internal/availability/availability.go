// Package availability decides whether a requested stay is legal against a
// property's existing confirmed bookings and its stay-duration policy.  Date
// ranges are half-open [checkIn, checkOut): the checkout day itself is not
// occupied, so back-to-back stays are allowed.  The package is pure; it
// never reads storage.  Handlers load the confirmed spans and pass them in.
package availability

import (
	"errors"
	"fmt"
	"time"
)

// Named validation errors.  All are recoverable: the guest corrects the
// form and retries.  Handlers surface the specific error next to the
// relevant field rather than a generic failure.
var (
	// ErrInvalidRange means checkout is not strictly after checkin.
	ErrInvalidRange = errors.New("check-out must be after check-in")
	// ErrNotAvailable means the requested range overlaps a confirmed booking.
	ErrNotAvailable = errors.New("property is not available for the selected dates")
	// ErrExceedsMaxStay means the stay is longer than the property allows.
	ErrExceedsMaxStay = errors.New("stay exceeds the property's maximum")
	// ErrTooManyGuests means the party is larger than the property sleeps.
	ErrTooManyGuests = errors.New("guest count exceeds property capacity")
	// ErrCheckInPast means the requested check-in date has already passed.
	ErrCheckInPast = errors.New("check-in date is in the past")
)

// Span is a half-open occupied date range belonging to a confirmed booking.
type Span struct {
	Start time.Time
	End   time.Time
}

// dateOnly truncates a timestamp to midnight UTC so comparisons work on
// calendar days regardless of the time component the caller passed.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights in [checkIn, checkOut).  It is
// strictly positive for any valid range and returns ErrInvalidRange when
// checkout is not after checkin.
func Nights(checkIn, checkOut time.Time) (int, error) {
	in, out := dateOnly(checkIn), dateOnly(checkOut)
	if !out.After(in) {
		return 0, ErrInvalidRange
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// IsRangeFree reports whether [start, end) overlaps none of the existing
// spans.  Two half-open ranges overlap iff start < span.End && end >
// span.Start, so a request whose check-in equals an existing checkout (or
// vice versa) is free.  The result depends only on the arguments: calling
// it again with an unchanged span list yields the same answer.
func IsRangeFree(start, end time.Time, existing []Span) bool {
	s, e := dateOnly(start), dateOnly(end)
	for _, b := range existing {
		if s.Before(dateOnly(b.End)) && e.After(dateOnly(b.Start)) {
			return false
		}
	}
	return true
}

// ValidateDuration enforces the property's maximum-stay cap.  A cap of zero
// or less means the property has no cap and any duration passes.  The
// returned error names the limit so the UI can show it.
func ValidateDuration(checkIn, checkOut time.Time, maxStayDays int) error {
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return err
	}
	if maxStayDays <= 0 {
		return nil
	}
	if nights > maxStayDays {
		return fmt.Errorf("%w of %d days (requested %d nights)", ErrExceedsMaxStay, maxStayDays, nights)
	}
	return nil
}

// BookedDates expands every span into its occupied calendar days, keyed by
// YYYY-MM-DD.  Checkout days are not included.  Because the result is a
// set, overlapping input spans and input order do not affect it.
func BookedDates(spans []Span) map[string]struct{} {
	out := make(map[string]struct{})
	for _, sp := range spans {
		for d := dateOnly(sp.Start); d.Before(dateOnly(sp.End)); d = d.AddDate(0, 0, 1) {
			out[d.Format("2006-01-02")] = struct{}{}
		}
	}
	return out
}

// Request carries everything needed to validate one booking attempt.
type Request struct {
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	MaxGuests   int // 0 disables the guest check
	MaxStayDays int // 0 disables the duration check
	Existing    []Span
	Now         time.Time // zero value disables the past-date check
}

// Validate runs the full pipeline for a booking attempt: date order, past
// check-in, overlap against confirmed bookings, duration cap, guest count.
// The first failing check is terminal and its named error is returned; a
// nil error means the attempt is ready for checkout.
func Validate(req Request) (int, error) {
	nights, err := Nights(req.CheckIn, req.CheckOut)
	if err != nil {
		return 0, err
	}
	if !req.Now.IsZero() && dateOnly(req.CheckIn).Before(dateOnly(req.Now)) {
		return 0, ErrCheckInPast
	}
	if !IsRangeFree(req.CheckIn, req.CheckOut, req.Existing) {
		return 0, ErrNotAvailable
	}
	if err := ValidateDuration(req.CheckIn, req.CheckOut, req.MaxStayDays); err != nil {
		return 0, err
	}
	if req.MaxGuests > 0 && req.Guests > req.MaxGuests {
		return 0, fmt.Errorf("%w (maximum %d)", ErrTooManyGuests, req.MaxGuests)
	}
	return nights, nil
}
