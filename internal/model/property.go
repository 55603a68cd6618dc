package model

import "time"

// Property lifecycle states.  A submission starts in PENDING_REVIEW.  A
// manager approval moves it to PENDING_CONTRACT and sends a commission
// contract to the owner; accepting that contract freezes the final rate
// and moves the property to APPROVED.  Rejected properties keep their
// record (never hard-deleted) and may be appealed back into review.
const (
	PropertyPendingReview   = "PENDING_REVIEW"
	PropertyPendingContract = "PENDING_CONTRACT"
	PropertyApproved        = "APPROVED"
	PropertyRejected        = "REJECTED"
)

// Property represents a listing owned by a unit owner, mirroring the
// `properties` table.  Only APPROVED properties whose contract has been
// accepted are visible to customers.
//
// Fields:
//  ID                 – primary key identifier.
//  OwnerID            – user who created the listing; ownership never transfers.
//  Title              – listing title shown to guests.
//  City, Country      – location fields for browsing and search.
//  MaxGuests          – sleeping capacity; bookings may not exceed it.
//  ProposedRate       – owner-entered nightly price, shown until a final
//                       rate exists.
//  BaseRate           – rate the commission is applied to when the
//                       contract is accepted.
//  CommissionPct      – commission percentage from the accepted contract.
//  FinalRate          – frozen, commission-inclusive nightly rate; null
//                       until a contract is accepted.
//  RentalType         – owner-declared term classification, may be empty.
//  MaxStayValue/Unit  – owner-entered maximum stay (e.g. 6 months).
//  MaxStayDays        – normalized cap in days; zero means no cap.
//  MaxStayDisplay     – human rendering of the cap (e.g. "6 months").
//  TermClassification – derived short-term/long-term label.
//  Status             – lifecycle state, see constants above.
//  ContractApproved   – true once the commission contract is accepted.
//  RejectionReason    – manager-entered reason, empty unless REJECTED.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Property struct {
	ID                 uint64    // properties.id
	OwnerID            uint64    // properties.owner_id
	Title              string    // properties.title
	City               string    // properties.city
	Country            string    // properties.country
	MaxGuests          int       // properties.max_guests
	ProposedRate       float64   // properties.proposed_rate
	BaseRate           float64   // properties.base_rate
	CommissionPct      float64   // properties.commission_pct
	FinalRate          *int64    // properties.final_rate (nullable)
	RentalType         string    // properties.rental_type ('' when unset)
	MaxStayValue       int       // properties.max_stay_value
	MaxStayUnit        string    // properties.max_stay_unit
	MaxStayDays        int       // properties.max_stay_days (0 = no cap)
	MaxStayDisplay     string    // properties.max_stay_display
	TermClassification string    // properties.term_classification
	Status             string    // properties.status
	ContractApproved   bool      // properties.contract_approved
	RejectionReason    string    // properties.rejection_reason
	CreatedAt          time.Time // properties.created_at
	UpdatedAt          time.Time // properties.updated_at
}

// DisplayRate returns the nightly rate a guest should see: the frozen
// final rate when a contract has been accepted, otherwise the owner's
// proposed rate.  It never returns a null-ish value for a property that
// has either rate set, so listing pages can render it unconditionally.
func (p *Property) DisplayRate() float64 {
	if p.FinalRate != nil {
		return float64(*p.FinalRate)
	}
	return p.ProposedRate
}

// Bookable reports whether customers may see and book this property.
func (p *Property) Bookable() bool {
	return p.Status == PropertyApproved && p.ContractApproved
}
