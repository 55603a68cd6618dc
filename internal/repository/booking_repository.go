package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rentora/booking-api/internal/availability"
	"github.com/rentora/booking-api/internal/model"
)

// BookingRepo provides persistence for bookings.  Check-in/check-out are
// DATE columns interpreted as a half-open range [check_in, check_out);
// all dates are stored in UTC.  The overlap invariant (no two CONFIRMED
// bookings for a property may overlap) is enforced by CreateIfAvailable,
// which locks the property's confirmed bookings and inserts in a single
// transaction rather than trusting the caller's earlier availability
// pre-check.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for multi-repository transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, property_id, customer_id, check_in, check_out,
	guests, subtotal, service_fee, taxes, total_amount, status,
	payment_status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.CustomerID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.Subtotal, &b.ServiceFee, &b.Taxes, &b.TotalAmount,
		&b.Status, &b.PaymentStatus, &b.CreatedAt,
	)
	return b, err
}

// ConfirmedSpans returns the occupied date ranges of a property's
// CONFIRMED bookings, for availability checks and calendar rendering.
func (r *BookingRepo) ConfirmedSpans(ctx context.Context, propertyID uint64) ([]availability.Span, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT check_in, check_out FROM bookings WHERE property_id=? AND status=?",
		propertyID, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	spans := []availability.Span{}
	for rows.Next() {
		var s availability.Span
		if err := rows.Scan(&s.Start, &s.End); err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	return spans, rows.Err()
}

// CreateIfAvailable inserts a CONFIRMED booking only if its date range
// overlaps no existing CONFIRMED booking for the same property.  The
// check and the insert run in one transaction with the conflicting rows
// locked (SELECT ... FOR UPDATE), so two simultaneous attempts for the
// same dates cannot both succeed.  Returns ErrOverlap when the range is
// taken.  On success the generated ID and creation time are populated on
// the provided booking.
func (r *BookingRepo) CreateIfAvailable(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Half-open overlap: request_start < booking_end AND request_end > booking_start.
	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE property_id=? AND status=? AND check_in < ? AND check_out > ?
		 FOR UPDATE`,
		b.PropertyID, model.BookingConfirmed, b.CheckOut, b.CheckIn).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrOverlap
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (property_id, customer_id, check_in, check_out,
		 guests, subtotal, service_fee, taxes, total_amount, status, payment_status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.PropertyID, b.CustomerID, b.CheckIn, b.CheckOut, b.Guests,
		b.Subtotal, b.ServiceFee, b.Taxes, b.TotalAmount,
		model.BookingConfirmed, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	b.ID = uint64(id)
	b.Status = model.BookingConfirmed
	b.CreatedAt = time.Now().UTC()
	return nil
}

// GetByID fetches one booking.  Returns ErrBookingNotFound when no row
// matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// CustomerBooking pairs a booking with the property title for listing a
// customer's trips without a second round trip.
type CustomerBooking struct {
	model.Booking
	PropertyTitle string
}

// ListByCustomer returns a customer's bookings, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]CustomerBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.property_id, b.customer_id, b.check_in, b.check_out,
			b.guests, b.subtotal, b.service_fee, b.taxes, b.total_amount,
			b.status, b.payment_status, b.created_at, p.title
		 FROM bookings b JOIN properties p ON p.id = b.property_id
		 WHERE b.customer_id=? ORDER BY b.created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CustomerBooking{}
	for rows.Next() {
		var cb CustomerBooking
		if err := rows.Scan(
			&cb.ID, &cb.PropertyID, &cb.CustomerID, &cb.CheckIn, &cb.CheckOut,
			&cb.Guests, &cb.Subtotal, &cb.ServiceFee, &cb.Taxes, &cb.TotalAmount,
			&cb.Status, &cb.PaymentStatus, &cb.CreatedAt, &cb.PropertyTitle,
		); err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, rows.Err()
}

// ListByProperty returns bookings for one property so owners can see
// upcoming stays.
func (r *BookingRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE property_id=? ORDER BY check_in", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CompleteFinished flips CONFIRMED bookings whose checkout has passed to
// COMPLETED.  Run lazily before review creation so guests can review as
// soon as the stay ends without a background job.
func (r *BookingRepo) CompleteFinished(ctx context.Context, customerID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE customer_id=? AND status=? AND check_out <= UTC_DATE()",
		model.BookingCompleted, customerID, model.BookingConfirmed)
	return err
}
