package model

import "time"

// Booking states.  A booking is created CONFIRMED once the availability
// check and payment stub succeed, and is immutable through this API from
// then on; COMPLETED is set when the stay ends and unlocks reviewing.
const (
	BookingConfirmed = "CONFIRMED"
	BookingPending   = "PENDING"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Payment states carried alongside the booking status.
const (
	PaymentPaid     = "PAID"
	PaymentPending  = "PENDING"
	PaymentRefunded = "REFUNDED"
)

// Booking records a customer's stay at a property, mirroring the
// `bookings` table.  CheckIn/CheckOut form a half-open range
// [check_in, check_out): the checkout day is not occupied, so
// back-to-back bookings are legal.  For a given property no two
// CONFIRMED bookings may overlap; the repository enforces this
// inside the insert transaction.
//
// Fields:
//  ID            – primary key identifier.
//  PropertyID    – property being booked.
//  CustomerID    – paying customer.
//  CheckIn       – first occupied day (DATE, UTC).
//  CheckOut      – day of departure, not occupied (DATE, UTC).
//  Guests        – party size, at most the property's MaxGuests.
//  Subtotal      – nightly rate times nights.
//  ServiceFee    – platform service fee on the subtotal.
//  Taxes         – taxes on the subtotal.
//  TotalAmount   – subtotal + service fee + taxes.
//  Status        – CONFIRMED, PENDING, CANCELLED or COMPLETED.
//  PaymentStatus – PAID, PENDING or REFUNDED.
//  CreatedAt     – creation timestamp.
type Booking struct {
	ID            uint64    // bookings.id
	PropertyID    uint64    // bookings.property_id
	CustomerID    uint64    // bookings.customer_id
	CheckIn       time.Time // bookings.check_in
	CheckOut      time.Time // bookings.check_out
	Guests        int       // bookings.guests
	Subtotal      float64   // bookings.subtotal
	ServiceFee    float64   // bookings.service_fee
	Taxes         float64   // bookings.taxes
	TotalAmount   float64   // bookings.total_amount
	Status        string    // bookings.status
	PaymentStatus string    // bookings.payment_status
	CreatedAt     time.Time // bookings.created_at
}
