package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$25.00", Format(25, CurrencyUSD))
	assert.Equal(t, "$52.37", Format(52.37, CurrencyUSD))
	assert.Equal(t, "$0.00", Format(0, CurrencyUSD))
	assert.Equal(t, "$1234.50", Format(1234.5, CurrencyUSD))
}

func TestFormatPKRWholeNumberGrouped(t *testing.T) {
	// 50 * 278.5 = 13925
	assert.Equal(t, "₨13,925", Format(50, CurrencyPKR))
	// 25 * 278.5 = 6962.5 -> rounds to 6963
	assert.Equal(t, "₨6,963", Format(25, CurrencyPKR))
	assert.Equal(t, "₨0", Format(0, CurrencyPKR))
	// 1000 * 278.5 = 278500
	assert.Equal(t, "₨278,500", Format(1000, CurrencyPKR))
}

func TestFormatPKRNeverHasDecimals(t *testing.T) {
	for _, v := range []float64{0.01, 1.99, 52.37, 123.456, 9999.99} {
		got := Format(v, CurrencyPKR)
		assert.False(t, strings.Contains(got, "."), "PKR output %q has a decimal point", got)
	}
}

func TestFormatUSDAlwaysTwoDecimals(t *testing.T) {
	for _, v := range []float64{0, 1, 1.5, 52.375, 100000} {
		got := Format(v, CurrencyUSD)
		i := strings.IndexByte(got, '.')
		assert.Equal(t, len(got)-3, i, "USD output %q", got)
	}
}

func TestFormatUnknownCurrencyFallsBackToUSD(t *testing.T) {
	assert.Equal(t, "$10.00", Format(10, "EUR"))
}

func TestGroupNegative(t *testing.T) {
	assert.Equal(t, "₨-13,925", Format(-50, CurrencyPKR))
}
