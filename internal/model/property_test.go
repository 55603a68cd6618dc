package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayRate(t *testing.T) {
	p := Property{ProposedRate: 100}
	// before approval the proposed rate is shown
	assert.Equal(t, 100.0, p.DisplayRate())

	final := int64(115)
	p.FinalRate = &final
	// once frozen, the final rate wins
	assert.Equal(t, 115.0, p.DisplayRate())
}

func TestBookable(t *testing.T) {
	p := Property{Status: PropertyApproved, ContractApproved: true}
	assert.True(t, p.Bookable())

	// approval without an accepted contract is not enough
	assert.False(t, (&Property{Status: PropertyApproved}).Bookable())
	assert.False(t, (&Property{Status: PropertyPendingContract, ContractApproved: true}).Bookable())
	assert.False(t, (&Property{Status: PropertyRejected}).Bookable())
}
