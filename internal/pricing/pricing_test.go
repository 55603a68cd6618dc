package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalRate(t *testing.T) {
	// 15% commission on a 100 base rate
	got, err := FinalRate(100, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(115), got)

	// zero commission returns the rounded base rate
	got, err = FinalRate(99.5, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)

	// round-half-up on the product: 101 * 1.125 = 113.625
	got, err = FinalRate(101, 12.5)
	require.NoError(t, err)
	assert.Equal(t, int64(114), got)
}

func TestFinalRateNeverBelowBase(t *testing.T) {
	for _, base := range []float64{1, 37, 100, 149.99, 1000} {
		for _, pct := range []float64{0, 5, 15, 50, 100} {
			got, err := FinalRate(base, pct)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, float64(got), float64(int64(base)),
				"base=%v pct=%v", base, pct)
		}
	}
}

func TestFinalRateRejectsBadInput(t *testing.T) {
	_, err := FinalRate(0, 15)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = FinalRate(-10, 15)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = FinalRate(100, -1)
	assert.ErrorIs(t, err, ErrInvalidCommission)

	_, err = FinalRate(100, 101)
	assert.ErrorIs(t, err, ErrInvalidCommission)
}

func TestBookingTotal(t *testing.T) {
	// 115/night for 4 nights: 460 + 55 fee + 37 tax = 552
	b, err := BookingTotal(115, 4)
	require.NoError(t, err)
	assert.Equal(t, 460.0, b.Subtotal)
	assert.Equal(t, 55.0, b.ServiceFee)
	assert.Equal(t, 37.0, b.Taxes)
	assert.Equal(t, 552.0, b.Total)

	// total is always the exact sum of its components
	b, err = BookingTotal(87.5, 3)
	require.NoError(t, err)
	assert.Equal(t, b.Subtotal+b.ServiceFee+b.Taxes, b.Total)
}

func TestBookingTotalRejectsBadInput(t *testing.T) {
	_, err := BookingTotal(0, 3)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = BookingTotal(100, 0)
	assert.Error(t, err)

	_, err = BookingTotal(100, -2)
	assert.Error(t, err)
}

func TestMaxStayToDays(t *testing.T) {
	tests := []struct {
		value int
		unit  string
		want  int
	}{
		{10, "days", 10},
		{2, "months", 60},
		{6, "months", 180},
		{1, "years", 365},
		{2, "Years", 730}, // unit is case-insensitive
	}
	for _, tt := range tests {
		got, err := MaxStayToDays(tt.value, tt.unit)
		require.NoError(t, err, "%d %s", tt.value, tt.unit)
		assert.Equal(t, tt.want, got, "%d %s", tt.value, tt.unit)
	}

	_, err := MaxStayToDays(0, "days")
	assert.Error(t, err)

	_, err = MaxStayToDays(3, "weeks")
	assert.ErrorIs(t, err, ErrInvalidStayUnit)
}

func TestMaxStayDisplay(t *testing.T) {
	assert.Equal(t, "6 months", MaxStayDisplay(6, "months"))
	assert.Equal(t, "1 year", MaxStayDisplay(1, "years"))
	assert.Equal(t, "1 day", MaxStayDisplay(1, "days"))
	assert.Equal(t, "30 days", MaxStayDisplay(30, "days"))
}

func TestClassify(t *testing.T) {
	// explicit rental type wins over everything else
	assert.Equal(t, TermShort, Classify("short-term", 365, 500))
	assert.Equal(t, TermLong, Classify("long-term", 30, 50))
	assert.Equal(t, TermLong, Classify("LONG", 30, 50))

	// without a rental type the max-stay cap decides
	assert.Equal(t, TermShort, Classify("", 180, 500))
	assert.Equal(t, TermLong, Classify("", 181, 50))
	assert.Equal(t, TermLong, Classify("", 365, 50))

	// without a cap the nightly rate threshold is the last resort
	assert.Equal(t, TermShort, Classify("", 0, 149.99))
	assert.Equal(t, TermLong, Classify("", 0, 150))
}

func TestYearLongStayIsLongTerm(t *testing.T) {
	days, err := MaxStayToDays(1, "years")
	require.NoError(t, err)
	assert.Equal(t, 365, days)
	assert.Equal(t, TermLong, Classify("", days, 100))
}
