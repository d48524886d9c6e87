package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sameerdev7/sneakhub/internal/cart"
	"github.com/sameerdev7/sneakhub/internal/catalog"
	"github.com/sameerdev7/sneakhub/internal/domain"
)

// PricingUC drives the smart-pricing page: an uploaded photo is classified
// by the inference boundary, the suggested label is reconciled against the
// fixed catalog, and the result can be dropped into the cart as a transient
// product that never touches the store.
type PricingUC struct {
	AI domain.Inference
}

// Estimate is what the pricing page renders.
type Estimate struct {
	ProductName string
	Category    string
	PriceUSD    float64
	Matched     bool
	Sizes       []string
	DefaultSize string
	Reasoning   string
	Colors      []string
	Complexity  float64
}

// EstimateFromImage never fails: inference errors are absorbed into the
// fallback analysis upstream, and normalization treats that fallback as
// ordinary input.
func (uc *PricingUC) EstimateFromImage(ctx context.Context, image []byte, mimeType, nameHint string) Estimate {
	a := uc.AI.AnalyzeImage(ctx, image, mimeType, nameHint)
	n := catalog.Normalize(a.ProductName, a.Category, a.EstimatedPriceUSD)
	name := a.ProductName
	if name == "" {
		name = n.Category
	}
	return Estimate{
		ProductName: name,
		Category:    n.Category,
		PriceUSD:    n.PriceUSD,
		Matched:     n.Matched,
		Sizes:       n.Sizes.Sizes,
		DefaultSize: n.Sizes.Default,
		Reasoning:   a.Reasoning,
		Colors:      a.DominantColors,
		Complexity:  a.ComplexityScore,
	}
}

// EstimateFromCatalog covers the direct-pick path: the user clicked a
// catalog entry, so both name and price come straight from the table with
// no rounding.
func (uc *PricingUC) EstimateFromCatalog(name string) (Estimate, error) {
	e, ok := catalog.LookupExact(name)
	if !ok {
		e, ok = catalog.Lookup(name)
	}
	if !ok {
		return Estimate{}, domain.ErrNotFound
	}
	n := catalog.FromEntry(e)
	return Estimate{
		ProductName: n.Category,
		Category:    n.Category,
		PriceUSD:    n.PriceUSD,
		Matched:     true,
		Sizes:       n.Sizes.Sizes,
		DefaultSize: n.Sizes.Default,
	}, nil
}

// CartItem turns an estimate into a transient cart line. The id is minted
// from the clock, matching how the shop has always identified estimated
// products within a session.
func (e Estimate) CartItem(size string, imageURL string) cart.Item {
	if size == "" {
		size = e.DefaultSize
	}
	return cart.Item{
		ProductID: fmt.Sprintf("est-%d", time.Now().UnixNano()),
		Title:     e.ProductName,
		Category:  e.Category,
		PriceUSD:  e.PriceUSD,
		ImageURL:  imageURL,
		Size:      size,
		Qty:       1,
	}
}

// Stylist relays one chat turn. The reply is always usable text.
func (uc *PricingUC) Stylist(ctx context.Context, message string, history []domain.ChatTurn) string {
	return uc.AI.Chat(ctx, message, history)
}
