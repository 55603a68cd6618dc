package model

import "time"

// Review is a customer's rating of a property after a completed stay,
// mirroring the `reviews` table.  One review per booking.
//
// Fields:
//  ID         – primary key identifier.
//  PropertyID – reviewed property.
//  BookingID  – completed booking the review belongs to.
//  CustomerID – author of the review.
//  Rating     – 1 to 5.
//  Comment    – free-form text, may be empty.
//  CreatedAt  – creation timestamp.
type Review struct {
	ID         uint64    // reviews.id
	PropertyID uint64    // reviews.property_id
	BookingID  uint64    // reviews.booking_id
	CustomerID uint64    // reviews.customer_id
	Rating     int       // reviews.rating
	Comment    string    // reviews.comment
	CreatedAt  time.Time // reviews.created_at
}
