// Package cart implements the session cart: an ordered collection of line
// items keyed by (product id, size). The cart is an explicit value passed
// around by the HTTP layer — it travels in a signed cookie, so there is
// exactly one writer per request and no locking.
package cart

// Item is one cart line. A (ProductID, Size) pair appears at most once;
// Add merges duplicates by incrementing the quantity in place.
type Item struct {
	ProductID string  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category,omitempty"`
	PriceUSD  float64 `json:"price"`
	ImageURL  string  `json:"image,omitempty"`
	Size      string  `json:"size"`
	Qty       int     `json:"qty"`
}

type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart { return &Cart{} }

// Add appends the item, or increments the quantity of the existing
// (product, size) line in place so insertion order is preserved.
// Quantities below 1 are treated as 1.
func (c *Cart) Add(it Item) {
	if it.Qty < 1 {
		it.Qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == it.ProductID && c.Items[i].Size == it.Size {
			c.Items[i].Qty += it.Qty
			return
		}
	}
	c.Items = append(c.Items, it)
}

// UpdateQuantity replaces the stored quantity. Quantities below 1 are
// ignored; removal is a separate operation.
func (c *Cart) UpdateQuantity(productID, size string, qty int) {
	if qty < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items[i].Qty = qty
			return
		}
	}
}

// Remove deletes the matching line. No-op when absent.
func (c *Cart) Remove(productID, size string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() { c.Items = nil }

// Total is the sum of price × quantity over all lines, in USD.
func (c *Cart) Total() float64 {
	t := 0.0
	for _, it := range c.Items {
		t += it.PriceUSD * float64(it.Qty)
	}
	return t
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }
