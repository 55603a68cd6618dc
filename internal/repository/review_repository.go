package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rentora/booking-api/internal/model"
)

// ReviewRepo persists property reviews.  One review per booking, enforced
// by a unique index on booking_id.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and populates its ID.  Returns ErrReviewExists
// when the booking already has one.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (property_id, booking_id, customer_id, rating, comment) VALUES (?,?,?,?,?)",
		rv.PropertyID, rv.BookingID, rv.CustomerID, rv.Rating, rv.Comment)
	if err != nil {
		// MySQL duplicate-key error code on the booking_id unique index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrReviewExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// ListByProperty returns a property's reviews, newest first.
func (r *ReviewRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, property_id, booking_id, customer_id, rating, comment, created_at
		 FROM reviews WHERE property_id=? ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		var comment sql.NullString
		if err := rows.Scan(&rv.ID, &rv.PropertyID, &rv.BookingID, &rv.CustomerID,
			&rv.Rating, &comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		out = append(out, rv)
	}
	return out, rows.Err()
}

// AverageRating returns the mean rating and review count for a property.
// Zero values mean the property has no reviews yet.
func (r *ReviewRepo) AverageRating(ctx context.Context, propertyID uint64) (float64, int, error) {
	var (
		avg   sql.NullFloat64
		count int
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT AVG(rating), COUNT(*) FROM reviews WHERE property_id=?",
		propertyID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}
