package catalog

import (
	"math"
	"strings"
)

// defaultEstimateUSD is charged when neither the catalog nor the analysis
// produced a price.
const defaultEstimateUSD = 50

// Normalized is the outcome of reconciling a label against the price table.
type Normalized struct {
	Category string  // canonical catalog name, or the unmatched label as given
	PriceUSD float64 // catalog price, or the rounded estimate
	Matched  bool    // true when the catalog price won
	Sizes    SizeSet
}

// Normalize reconciles a free-text or AI-suggested label with the catalog.
// The AI category is tried first (exact, then case-insensitive); on a match
// the catalog price always wins, whatever the analysis estimated. Unmatched
// labels keep their text and fall back to the estimate (or the default),
// rounded up to the next multiple of 5 so the shop never shows a raw model
// guess like $52.37.
func Normalize(rawLabel, aiCategory string, aiPriceUSD *float64) Normalized {
	label := strings.TrimSpace(aiCategory)
	if label == "" {
		label = strings.TrimSpace(rawLabel)
	}

	e, ok := LookupExact(label)
	if !ok {
		e, ok = Lookup(label)
	}
	if ok {
		return Normalized{Category: e.Name, PriceUSD: e.PriceUSD, Matched: true, Sizes: ResolveSizes(e.Name)}
	}

	price := float64(defaultEstimateUSD)
	if aiPriceUSD != nil && *aiPriceUSD > 0 {
		price = *aiPriceUSD
	}
	price = RoundUpToFive(price)
	return Normalized{Category: label, PriceUSD: price, Sizes: ResolveSizes(label)}
}

// FromEntry resolves a user-selected catalog entry directly: canonical name
// and exact price, no rounding.
func FromEntry(e Entry) Normalized {
	return Normalized{Category: e.Name, PriceUSD: e.PriceUSD, Matched: true, Sizes: ResolveSizes(e.Name)}
}

// RoundUpToFive rounds a price up to the nearest multiple of 5.
func RoundUpToFive(p float64) float64 {
	return math.Ceil(p/5) * 5
}
