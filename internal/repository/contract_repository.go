package repository

import (
	"context"
	"database/sql"

	"github.com/rentora/booking-api/internal/model"
)

// ContractRepo persists commission contracts.  A contract is created in
// SENT state when a manager approves a listing; the owner responds
// AGREED/DISAGREED and a manager finalizes with ACCEPTED or REJECTED.
// Accepting is transactional with the property's final-rate freeze, see
// AcceptTx.
type ContractRepo struct {
	db *sql.DB
}

// NewContractRepo returns a new ContractRepo bound to the given database.
func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{db: db} }

// DB exposes the underlying handle for multi-repository transactions.
func (r *ContractRepo) DB() *sql.DB { return r.db }

const contractColumns = `id, property_id, owner_id, commission_pct, status, created_at, updated_at`

func scanContract(row interface{ Scan(...any) error }) (model.Contract, error) {
	var ct model.Contract
	err := row.Scan(&ct.ID, &ct.PropertyID, &ct.OwnerID, &ct.CommissionPct,
		&ct.Status, &ct.CreatedAt, &ct.UpdatedAt)
	return ct, err
}

// Create inserts a new contract in SENT state and populates its ID.
func (r *ContractRepo) Create(ctx context.Context, ct *model.Contract) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contracts (property_id, owner_id, commission_pct, status) VALUES (?,?,?,?)",
		ct.PropertyID, ct.OwnerID, ct.CommissionPct, model.ContractSent)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ct.ID = uint64(id)
	ct.Status = model.ContractSent
	return nil
}

// GetByID fetches one contract.  Returns ErrContractNotFound when no row
// matches.
func (r *ContractRepo) GetByID(ctx context.Context, id uint64) (model.Contract, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE id=? LIMIT 1", id)
	ct, err := scanContract(row)
	if err == sql.ErrNoRows {
		return model.Contract{}, ErrContractNotFound
	}
	return ct, err
}

// ListByOwner returns an owner's contracts, newest first.
func (r *ContractRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE owner_id=? ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Contract{}
	for rows.Next() {
		ct, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// SetStatus moves a contract to a new state (owner agree/disagree,
// manager reject).
func (r *ContractRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contracts SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrContractNotFound
	}
	return err
}

// AcceptTx marks the contract ACCEPTED within the scope of an existing
// transaction.  The caller freezes the property's final rate in the same
// transaction (PropertyRepo.FreezeFinalRateTx) and commits both together,
// so a contract can never be accepted without its property's rate being
// frozen.
func (r *ContractRepo) AcceptTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE contracts SET status=?, updated_at=NOW() WHERE id=?",
		model.ContractAccepted, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrContractNotFound
	}
	return err
}
