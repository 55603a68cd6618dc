// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed.  It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64  `json:"booking_id"`
	PropertyID    uint64  `json:"property_id"`
	PropertyTitle string  `json:"property_title"`
	OwnerID       uint64  `json:"owner_id"`
	CustomerID    uint64  `json:"customer_id"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	Guests        int     `json:"guests"`
	TotalAmount   float64 `json:"total_amount"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
