// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrOverlap signals that a booking insert lost
// to an existing confirmed booking for the same dates.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as editing a property that has already
// been approved. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrPropertyNotFound is returned when a property lookup matches no row.
var ErrPropertyNotFound = errors.New("property not found")

// ErrContractNotFound is returned when a contract lookup matches no row.
var ErrContractNotFound = errors.New("contract not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrOverlap is returned by the transactional booking insert when the
// requested range collides with a confirmed booking, including one that
// was committed after the caller's availability pre-check. Handlers
// should treat it exactly like a failed availability check.
var ErrOverlap = errors.New("dates overlap an existing confirmed booking")

// ErrReviewExists is returned when a booking has already been reviewed.
var ErrReviewExists = errors.New("booking already reviewed")
