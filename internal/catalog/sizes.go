package catalog

import "strings"

// SizeSet is the sizing scheme resolved for a product label.
type SizeSet struct {
	Sizes   []string
	Default string
}

var (
	footwearKeywords = []string{"shoe", "sneaker", "boot", "sandal", "slipper", "flip flop", "loafer"}

	accessoryKeywords = []string{
		"cap", "hat", "beanie", "visor", "bag", "backpack", "wallet", "watch",
		"sunglass", "belt", "tie", "cufflink", "scarf", "shawl", "handkerchief",
	}

	footwearSizes = []string{"US 7", "US 8", "US 9", "US 10", "US 11", "US 12"}
	apparelSizes  = []string{"S", "M", "L", "XL", "XXL"}
	oneSize       = []string{"One Size"}
)

// ResolveSizes maps a canonical or free-text label to a sizing scheme.
// Matching is plain substring containment over the lower-cased label, first
// keyword set wins: footwear, then accessories, then the apparel fallback.
// Note the containment test fires on incidental substrings ("bagpipe"
// matches "bag"); the shop has always displayed sizes that way, so the
// behaviour is kept as-is rather than tightened to word boundaries.
func ResolveSizes(label string) SizeSet {
	l := strings.ToLower(label)
	for _, kw := range footwearKeywords {
		if strings.Contains(l, kw) {
			return SizeSet{Sizes: footwearSizes, Default: "US 9"}
		}
	}
	for _, kw := range accessoryKeywords {
		if strings.Contains(l, kw) {
			return SizeSet{Sizes: oneSize, Default: "One Size"}
		}
	}
	return SizeSet{Sizes: apparelSizes, Default: "M"}
}
