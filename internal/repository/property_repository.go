package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rentora/booking-api/internal/model"
)

// PropertyRepo provides CRUD operations for property listings.  Rates are
// stored as DECIMAL columns and scanned into float64; the frozen final
// rate is an integer column that stays NULL until a commission contract
// is accepted.  Properties are never hard-deleted: rejected listings keep
// their row so owners can appeal.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo returns a new PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *PropertyRepo) DB() *sql.DB { return r.db }

const propertyColumns = `id, owner_id, title, city, country, max_guests,
	proposed_rate, base_rate, commission_pct, final_rate, rental_type,
	max_stay_value, max_stay_unit, max_stay_days, max_stay_display,
	term_classification, status, contract_approved, rejection_reason,
	created_at, updated_at`

// scanProperty reads one property row from any row scanner.
func scanProperty(row interface{ Scan(...any) error }) (model.Property, error) {
	var (
		p          model.Property
		finalRate  sql.NullInt64
		rentalType sql.NullString
		rejection  sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.City, &p.Country, &p.MaxGuests,
		&p.ProposedRate, &p.BaseRate, &p.CommissionPct, &finalRate, &rentalType,
		&p.MaxStayValue, &p.MaxStayUnit, &p.MaxStayDays, &p.MaxStayDisplay,
		&p.TermClassification, &p.Status, &p.ContractApproved, &rejection,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Property{}, err
	}
	if finalRate.Valid {
		v := finalRate.Int64
		p.FinalRate = &v
	}
	p.RentalType = rentalType.String
	p.RejectionReason = rejection.String
	return p, nil
}

// Create inserts a new listing in PENDING_REVIEW state.  The derived
// fields (max_stay_days, max_stay_display, term_classification) must be
// computed by the caller before insertion; the repository stores what it
// is given.  The generated ID is set on the provided property.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	const q = `INSERT INTO properties
		(owner_id, title, city, country, max_guests, proposed_rate, base_rate,
		 commission_pct, rental_type, max_stay_value, max_stay_unit,
		 max_stay_days, max_stay_display, term_classification, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		p.OwnerID, p.Title, p.City, p.Country, p.MaxGuests, p.ProposedRate,
		p.BaseRate, p.CommissionPct, nullIfEmpty(p.RentalType), p.MaxStayValue,
		p.MaxStayUnit, p.MaxStayDays, p.MaxStayDisplay, p.TermClassification,
		model.PropertyPendingReview)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	p.Status = model.PropertyPendingReview
	return nil
}

// GetByID fetches a single property.  Returns ErrPropertyNotFound when no
// row matches.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (model.Property, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id=? LIMIT 1", id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return model.Property{}, ErrPropertyNotFound
	}
	return p, err
}

// Update rewrites the owner-editable fields of a listing.  Only the owner
// may edit, and only while the listing has not been approved: an approved
// listing's rate and stay policy are frozen by its contract.  The derived
// stay/classification fields must again be precomputed by the caller.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property, ownerID uint64) error {
	cur, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if cur.OwnerID != ownerID {
		return ErrForbidden
	}
	if cur.Status == model.PropertyApproved {
		return ErrConflict
	}
	const q = `UPDATE properties SET title=?, city=?, country=?, max_guests=?,
		proposed_rate=?, base_rate=?, rental_type=?, max_stay_value=?,
		max_stay_unit=?, max_stay_days=?, max_stay_display=?,
		term_classification=?, updated_at=NOW() WHERE id=?`
	_, err = r.db.ExecContext(ctx, q,
		p.Title, p.City, p.Country, p.MaxGuests, p.ProposedRate, p.BaseRate,
		nullIfEmpty(p.RentalType), p.MaxStayValue, p.MaxStayUnit, p.MaxStayDays,
		p.MaxStayDisplay, p.TermClassification, p.ID)
	return err
}

// ListByOwner returns all listings belonging to an owner, newest first.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Property, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE owner_id=? ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

// ListByStatus returns listings in a given lifecycle state for manager
// review queues.  An empty status returns everything.
func (r *PropertyRepo) ListByStatus(ctx context.Context, status string) ([]model.Property, error) {
	q := "SELECT " + propertyColumns + " FROM properties"
	args := []any{}
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

// ListBookable returns the listings customers may see: APPROVED with an
// accepted contract.
func (r *PropertyRepo) ListBookable(ctx context.Context) ([]model.Property, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+propertyColumns+` FROM properties
		 WHERE status=? AND contract_approved=1 ORDER BY created_at DESC`,
		model.PropertyApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

// SearchQuery defines filters & pagination for the public property search.
type SearchQuery struct {
	Title    string
	City     string
	Country  string
	Term     string // short-term | long-term
	Guests   int
	MaxRate  float64
	Page     int
	PageSize int
}

// Search finds bookable properties matching the query and reports the
// total match count for pagination.  Rate filtering uses the guest-facing
// rate: final_rate when frozen, otherwise proposed_rate.
func (r *PropertyRepo) Search(ctx context.Context, q SearchQuery) ([]model.Property, int64, error) {
	where := []string{"status = ?", "contract_approved = 1"}
	args := []any{model.PropertyApproved}

	if q.Title != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.City != "" {
		where = append(where, "LOWER(city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.Country != "" {
		where = append(where, "LOWER(country) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Country)+"%")
	}
	if q.Term != "" {
		where = append(where, "term_classification = ?")
		args = append(args, strings.ToLower(q.Term))
	}
	if q.Guests > 0 {
		where = append(where, "max_guests >= ?")
		args = append(args, q.Guests)
	}
	if q.MaxRate > 0 {
		where = append(where, "COALESCE(final_rate, proposed_rate) <= ?")
		args = append(args, q.MaxRate)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM properties WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE "+cond+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectProperties(rows)
	return items, total, err
}

// SetStatus moves a listing to a new lifecycle state.  The rejection
// reason is cleared unless the new state is REJECTED.
func (r *PropertyRepo) SetStatus(ctx context.Context, id uint64, status, rejectionReason string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE properties SET status=?, rejection_reason=?, updated_at=NOW() WHERE id=?",
		status, nullIfEmpty(rejectionReason), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrPropertyNotFound
	}
	return err
}

// FreezeFinalRateTx writes the computed commission-inclusive rate onto a
// property and marks it APPROVED with an accepted contract, inside the
// caller's transaction.  Used by the contract-accept flow so the contract
// state change and the rate freeze commit atomically.
func (r *PropertyRepo) FreezeFinalRateTx(ctx context.Context, tx *sql.Tx, propertyID uint64, finalRate int64, commissionPct float64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE properties SET final_rate=?, commission_pct=?, status=?,
		 contract_approved=1, rejection_reason=NULL, updated_at=NOW() WHERE id=?`,
		finalRate, commissionPct, model.PropertyApproved, propertyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrPropertyNotFound
	}
	return err
}

func collectProperties(rows *sql.Rows) ([]model.Property, error) {
	out := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// nullIfEmpty converts "" to NULL so optional text columns stay NULL
// instead of accumulating empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
