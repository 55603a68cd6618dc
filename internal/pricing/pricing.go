// Package pricing derives guest-facing prices from owner inputs and the
// platform commission policy.  Everything here is a pure function of its
// arguments: callers (handlers) load the property and persist whatever
// these functions return.  All monetary values are whole currency units;
// rounding is round-half-up on the multiplication result.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Platform-wide pricing constants.  These are properties of the platform,
// not of any individual property, and are not configurable per listing.
const (
	// DefaultCommissionPct seeds new contracts.  The percentage stored on
	// an individual contract is authoritative once the contract is sent.
	DefaultCommissionPct = 15.0
	// ServiceFeePct is applied to the booking subtotal.
	ServiceFeePct = 0.12
	// TaxPct is applied to the booking subtotal.
	TaxPct = 0.08

	// LongTermRateThreshold splits listings into short and long term when
	// the owner has not declared a rental type: nightly rates at or above
	// this amount are treated as long-term.
	LongTermRateThreshold = 150.0
	// LongTermStayDays is the maximum-stay cutoff for the same split: a
	// listing allowing stays longer than this is long-term.
	LongTermStayDays = 180
)

// Term classification labels attached to properties.
const (
	TermShort = "short-term"
	TermLong  = "long-term"
)

var (
	// ErrInvalidRate is returned when a base rate is zero or negative.
	// Form validation upstream should prevent this; the check is kept so
	// a bad record never produces a negative guest price.
	ErrInvalidRate = errors.New("base rate must be positive")
	// ErrInvalidCommission is returned for commission percentages outside [0,100].
	ErrInvalidCommission = errors.New("commission percentage must be between 0 and 100")
	// ErrInvalidStayUnit is returned for an unknown maximum-stay unit.
	ErrInvalidStayUnit = errors.New("max stay unit must be days, months or years")
)

// FinalRate computes the frozen, commission-inclusive nightly rate:
// round(baseRate * (1 + pct/100)).  The result is always >= round(baseRate)
// for a valid commission.
func FinalRate(baseRate, commissionPct float64) (int64, error) {
	if baseRate <= 0 {
		return 0, ErrInvalidRate
	}
	if commissionPct < 0 || commissionPct > 100 {
		return 0, ErrInvalidCommission
	}
	return int64(math.Round(baseRate * (1 + commissionPct/100))), nil
}

// Breakdown itemizes the cost of a stay.  Total is always the exact sum of
// the three components.
type Breakdown struct {
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Taxes      float64 `json:"taxes"`
	Total      float64 `json:"total"`
}

// BookingTotal prices a stay of the given number of nights.  Service fee
// and taxes are each rounded independently before summing so the breakdown
// shown to the guest always adds up.
func BookingTotal(nightlyRate float64, nights int) (Breakdown, error) {
	if nightlyRate <= 0 {
		return Breakdown{}, ErrInvalidRate
	}
	if nights <= 0 {
		return Breakdown{}, fmt.Errorf("nights must be positive, got %d", nights)
	}
	sub := nightlyRate * float64(nights)
	fee := math.Round(sub * ServiceFeePct)
	tax := math.Round(sub * TaxPct)
	return Breakdown{
		Subtotal:   sub,
		ServiceFee: fee,
		Taxes:      tax,
		Total:      sub + fee + tax,
	}, nil
}

// MaxStayToDays normalizes an owner-entered maximum stay into whole days.
// Months count as 30 days and years as 365; calendar-month precision and
// leap years are deliberately not modeled.
func MaxStayToDays(value int, unit string) (int, error) {
	if value <= 0 {
		return 0, fmt.Errorf("max stay value must be positive, got %d", value)
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "days":
		return value, nil
	case "months":
		return value * 30, nil
	case "years":
		return value * 365, nil
	}
	return 0, ErrInvalidStayUnit
}

// MaxStayDisplay renders a maximum stay for listing pages, e.g. "6 months"
// or "1 year".
func MaxStayDisplay(value int, unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if value == 1 {
		u = strings.TrimSuffix(u, "s")
	}
	return fmt.Sprintf("%d %s", value, u)
}

// Classify labels a property short-term or long-term.  An owner-declared
// rental type always wins.  Without one the maximum-stay cap decides, and
// when no cap is set the nightly rate threshold is used as a last resort.
func Classify(rentalType string, maxStayDays int, nightlyRate float64) string {
	switch strings.ToLower(strings.TrimSpace(rentalType)) {
	case TermShort, "short":
		return TermShort
	case TermLong, "long":
		return TermLong
	}
	if maxStayDays > 0 {
		if maxStayDays > LongTermStayDays {
			return TermLong
		}
		return TermShort
	}
	if nightlyRate >= LongTermRateThreshold {
		return TermLong
	}
	return TermShort
}
