package model

import "time"

// Contract states.  The platform sends a contract when a manager approves
// a listing (SENT).  The owner responds AGREED or DISAGREED; a manager
// then finalizes with ACCEPTED (freezing the property's final rate) or
// REJECTED.
const (
	ContractSent      = "SENT"
	ContractAgreed    = "AGREED"
	ContractDisagreed = "DISAGREED"
	ContractAccepted  = "ACCEPTED"
	ContractRejected  = "REJECTED"
)

// Contract links a property to its owner and carries the commission
// percentage the platform adds on top of the owner's base rate, mirroring
// the `contracts` table.  New contracts are seeded with the platform
// default percentage but the value stored here is authoritative when the
// contract is accepted.
//
// Fields:
//  ID            – primary key identifier.
//  PropertyID    – property the contract covers.
//  OwnerID       – owner the contract was sent to.
//  CommissionPct – platform markup percentage applied to the base rate.
//  Status        – SENT, AGREED, DISAGREED, ACCEPTED or REJECTED.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Contract struct {
	ID            uint64    // contracts.id
	PropertyID    uint64    // contracts.property_id
	OwnerID       uint64    // contracts.owner_id
	CommissionPct float64   // contracts.commission_pct
	Status        string    // contracts.status
	CreatedAt     time.Time // contracts.created_at
	UpdatedAt     time.Time // contracts.updated_at
}
