package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/booking-api/internal/model"
	"github.com/rentora/booking-api/internal/pricing"
)

func TestBuildPropertyDerivesStayFields(t *testing.T) {
	p, msg := buildProperty(propertyReq{
		Title:        "Harbor Loft",
		City:         "Lisbon",
		Country:      "PT",
		MaxGuests:    4,
		ProposedRate: 120,
		MaxStayValue: 6,
		MaxStayUnit:  "months",
	}, 9)
	require.Empty(t, msg)

	assert.Equal(t, uint64(9), p.OwnerID)
	assert.Equal(t, 180, p.MaxStayDays)
	assert.Equal(t, "6 months", p.MaxStayDisplay)
	assert.Equal(t, pricing.TermShort, p.TermClassification)
	// the proposed rate doubles as the base rate for the future contract
	assert.Equal(t, 120.0, p.BaseRate)
	assert.Equal(t, pricing.DefaultCommissionPct, p.CommissionPct)
}

func TestBuildPropertyRespectsDeclaredRentalType(t *testing.T) {
	p, msg := buildProperty(propertyReq{
		Title:        "City Studio",
		MaxGuests:    2,
		ProposedRate: 300, // rate alone would classify long-term
		RentalType:   "short-term",
	}, 1)
	require.Empty(t, msg)
	assert.Equal(t, pricing.TermShort, p.TermClassification)
}

func TestBuildPropertyYearCapIsLongTerm(t *testing.T) {
	p, msg := buildProperty(propertyReq{
		Title:        "Country House",
		MaxGuests:    6,
		ProposedRate: 90,
		MaxStayValue: 1,
		MaxStayUnit:  "years",
	}, 1)
	require.Empty(t, msg)
	assert.Equal(t, 365, p.MaxStayDays)
	assert.Equal(t, pricing.TermLong, p.TermClassification)
}

func TestBuildPropertyValidation(t *testing.T) {
	_, msg := buildProperty(propertyReq{MaxGuests: 2, ProposedRate: 100}, 1)
	assert.Equal(t, "title is required", msg)

	_, msg = buildProperty(propertyReq{Title: "X", ProposedRate: 100}, 1)
	assert.Contains(t, msg, "max_guests")

	_, msg = buildProperty(propertyReq{Title: "X", MaxGuests: 2}, 1)
	assert.Contains(t, msg, "proposed_rate")

	_, msg = buildProperty(propertyReq{
		Title: "X", MaxGuests: 2, ProposedRate: 100,
		MaxStayValue: 2, MaxStayUnit: "weeks",
	}, 1)
	assert.NotEmpty(t, msg)
}

func TestBuildPropertyStatusDefaults(t *testing.T) {
	p, msg := buildProperty(propertyReq{Title: "X", MaxGuests: 2, ProposedRate: 100}, 1)
	require.Empty(t, msg)
	// the repository sets PENDING_REVIEW on insert; the builder leaves
	// status empty and never marks anything approved
	assert.Empty(t, p.Status)
	assert.False(t, p.ContractApproved)
	assert.NotEqual(t, model.PropertyApproved, p.Status)
}
