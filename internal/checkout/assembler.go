// Package checkout turns a cart and a shipping form into a persistable
// order and the WhatsApp handoff message. Everything here is pure; the HTTP
// layer owns the persist → clear cart → open handoff sequencing.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/sameerdev7/sneakhub/internal/cart"
	"github.com/sameerdev7/sneakhub/internal/domain"
	"github.com/sameerdev7/sneakhub/internal/money"
)

type ShippingForm struct {
	Name    string
	Phone   string
	City    string
	Address string
	Email   string
}

// Validate reports the first missing required field. Email is optional.
func (f ShippingForm) Validate() error {
	for _, p := range []struct{ field, v string }{
		{"name", f.Name},
		{"phone", f.Phone},
		{"city", f.City},
		{"address", f.Address},
	} {
		if strings.TrimSpace(p.v) == "" {
			return fmt.Errorf("%w: %s", domain.ErrValidation, p.field)
		}
	}
	return nil
}

// BuildOrder snapshots every cart line into an order item. The copies are
// intentional: catalog edits after checkout must not rewrite history.
func BuildOrder(c *cart.Cart, f ShippingForm) (*domain.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	o := &domain.Order{
		ID:           uuid.New(),
		Status:       domain.OrderStatusPending,
		CustomerName: strings.TrimSpace(f.Name),
		Phone:        strings.TrimSpace(f.Phone),
		City:         strings.TrimSpace(f.City),
		Address:      strings.TrimSpace(f.Address),
		Email:        strings.TrimSpace(f.Email),
		Total:        c.Total(),
	}
	for _, it := range c.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductName: it.Title,
			PriceUSD:    it.PriceUSD,
			Qty:         it.Qty,
			Size:        it.Size,
			ImageURL:    it.ImageURL,
		})
	}
	return o, nil
}

// BuildHandoffMessage composes the plain-text order summary handed to the
// shop operator. Items are 1-indexed, matching what the operator reads back
// to the customer on WhatsApp.
func BuildHandoffMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("New Order!\n\n")
	for i, it := range o.Items {
		fmt.Fprintf(&b, "%d. %s (Size: %s) x%d — %s\n", i+1, it.ProductName, it.Size, it.Qty, money.Format(it.PriceUSD*float64(it.Qty), money.CurrencyUSD))
	}
	fmt.Fprintf(&b, "\nName: %s\nPhone: %s\n", o.CustomerName, o.Phone)
	fmt.Fprintf(&b, "Total: %s\n", money.Format(o.Total, money.CurrencyUSD))
	return b.String()
}

// WhatsAppLink builds the wa.me deep link with the URL-escaped message.
func WhatsAppLink(phone string, o *domain.Order) string {
	p := strings.TrimLeft(strings.TrimSpace(phone), "+")
	return "https://wa.me/" + p + "?text=" + url.QueryEscape(BuildHandoffMessage(o))
}
