// Package catalog holds the fixed reference price table used by the
// smart-pricing flow, the size-set resolver and the price normalization
// engine. The table is compiled in and never mutated at runtime.
package catalog

import "strings"

type Entry struct {
	Name     string
	PriceUSD float64
}

// entries is the canonical price list, 100 product types. Order matters:
// Search returns matches in this order.
var entries = []Entry{
	{"Running Sneaker", 120},
	{"Basketball Sneaker", 140},
	{"Skate Sneaker", 85},
	{"High-Top Sneaker", 110},
	{"Low-Top Sneaker", 95},
	{"Retro Sneaker", 130},
	{"Canvas Sneaker", 60},
	{"Knit Sneaker", 100},
	{"Leather Sneaker", 150},
	{"Suede Sneaker", 125},
	{"Slip-On Sneaker", 70},
	{"Chunky Sneaker", 135},
	{"Trail Running Shoe", 115},
	{"Tennis Shoe", 90},
	{"Training Shoe", 95},
	{"Walking Shoe", 80},
	{"Leather Boots", 180},
	{"Chelsea Boots", 160},
	{"Combat Boots", 150},
	{"Hiking Boots", 170},
	{"Chukka Boots", 140},
	{"Desert Boots", 130},
	{"Loafers", 110},
	{"Sandals", 45},
	{"Slides", 35},
	{"Flip Flops", 25},
	{"Slippers", 30},
	{"T-Shirt", 25},
	{"Graphic T-Shirt", 30},
	{"Long Sleeve T-Shirt", 35},
	{"Oversized T-Shirt", 35},
	{"Polo Shirt", 40},
	{"Tank Top", 20},
	{"Henley Shirt", 35},
	{"Flannel Shirt", 45},
	{"Denim Shirt", 50},
	{"Dress Shirt", 55},
	{"Jersey", 80},
	{"Hoodie", 65},
	{"Zip-Up Hoodie", 70},
	{"Sweatshirt", 55},
	{"Crewneck Sweatshirt", 60},
	{"Sweater", 70},
	{"Cardigan", 75},
	{"Track Jacket", 75},
	{"Bomber Jacket", 120},
	{"Denim Jacket", 95},
	{"Leather Jacket", 250},
	{"Puffer Jacket", 150},
	{"Windbreaker", 85},
	{"Varsity Jacket", 130},
	{"Parka", 180},
	{"Raincoat", 100},
	{"Trench Coat", 200},
	{"Overcoat", 220},
	{"Blazer", 160},
	{"Vest", 60},
	{"Jeans", 80},
	{"Ripped Jeans", 90},
	{"Skinny Jeans", 85},
	{"Cargo Pants", 70},
	{"Chinos", 60},
	{"Joggers", 55},
	{"Sweatpants", 50},
	{"Track Pants", 60},
	{"Shorts", 40},
	{"Cargo Shorts", 45},
	{"Denim Shorts", 50},
	{"Basketball Shorts", 35},
	{"Swim Trunks", 40},
	{"Leggings", 35},
	{"Tracksuit", 110},
	{"Jumpsuit", 95},
	{"Overalls", 90},
	{"Pajamas", 40},
	{"Socks", 10},
	{"Crew Socks", 12},
	{"Boxers", 15},
	{"Cap", 25},
	{"Snapback Cap", 30},
	{"Baseball Cap", 28},
	{"Beanie", 20},
	{"Bucket Hat", 30},
	{"Visor", 18},
	{"Fedora", 50},
	{"Backpack", 75},
	{"Tote Bag", 40},
	{"Duffel Bag", 85},
	{"Messenger Bag", 70},
	{"Crossbody Bag", 55},
	{"Fanny Pack", 35},
	{"Wallet", 45},
	{"Card Holder", 25},
	{"Belt", 35},
	{"Leather Belt", 50},
	{"Watch", 150},
	{"Sunglasses", 80},
	{"Scarf", 30},
	{"Shawl", 45},
	{"Tie", 35},
}

var (
	byName = map[string]int{}
	byFold = map[string]int{}
)

func init() {
	for i, e := range entries {
		byName[e.Name] = i
		byFold[strings.ToLower(e.Name)] = i
	}
}

// Entries returns the full table in catalog order. Callers must not mutate
// the returned slice.
func Entries() []Entry { return entries }

// LookupExact matches the trimmed name case-sensitively.
func LookupExact(name string) (Entry, bool) {
	i, ok := byName[strings.TrimSpace(name)]
	if !ok {
		return Entry{}, false
	}
	return entries[i], true
}

// Lookup matches the trimmed name case-insensitively.
func Lookup(name string) (Entry, bool) {
	i, ok := byFold[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return entries[i], true
}

// Search returns every entry whose canonical name contains the substring,
// case-insensitively, preserving catalog order. No ranking.
func Search(sub string) []Entry {
	q := strings.ToLower(strings.TrimSpace(sub))
	if q == "" {
		return nil
	}
	var res []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			res = append(res, e)
		}
	}
	return res
}
