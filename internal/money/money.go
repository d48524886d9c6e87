// Package money converts base USD amounts into display strings. Prices are
// stored in USD; PKR is a display-only conversion at a fixed rate.
package money

import (
	"fmt"
	"math"
)

const (
	CurrencyUSD = "USD"
	CurrencyPKR = "PKR"

	// USDToPKR is the fixed display rate. Not a live rate.
	USDToPKR = 278.5
)

// Format renders a USD amount in the requested currency. USD keeps two
// decimals; PKR is converted, rounded and grouped with no decimal part.
// Unknown currencies fall back to USD.
func Format(amountUSD float64, currency string) string {
	if currency == CurrencyPKR {
		return "₨" + group(math.Round(amountUSD*USDToPKR))
	}
	return fmt.Sprintf("$%.2f", amountUSD)
}

// group renders a whole number with comma thousands separators.
func group(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		rem := n % 3
		if rem == 0 {
			rem = 3
		}
		out := s[:rem]
		for i := rem; i < n; i += 3 {
			out += "," + s[i:i+3]
		}
		s = out
	}
	if neg {
		return "-" + s
	}
	return s
}
