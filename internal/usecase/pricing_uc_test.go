package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameerdev7/sneakhub/internal/domain"
)

type stubInference struct {
	analysis domain.PricingAnalysis
	reply    string
}

func (s *stubInference) AnalyzeImage(_ context.Context, _ []byte, _, _ string) domain.PricingAnalysis {
	return s.analysis
}

func (s *stubInference) Chat(_ context.Context, _ string, _ []domain.ChatTurn) string {
	return s.reply
}

func TestEstimateFromImageCatalogPriceWins(t *testing.T) {
	est := 999.0
	uc := &PricingUC{AI: &stubInference{analysis: domain.PricingAnalysis{
		ProductName:       "Vintage Tee",
		Category:          "T-Shirt",
		EstimatedPriceUSD: &est,
	}}}

	got := uc.EstimateFromImage(context.Background(), []byte{1}, "image/jpeg", "")
	assert.True(t, got.Matched)
	assert.Equal(t, 25.0, got.PriceUSD)
	assert.Equal(t, "Vintage Tee", got.ProductName)
	assert.Equal(t, "M", got.DefaultSize)
}

func TestEstimateFromImageUnmatchedRoundsUp(t *testing.T) {
	est := 52.0
	uc := &PricingUC{AI: &stubInference{analysis: domain.PricingAnalysis{
		ProductName:       "Hand-painted denim vest",
		Category:          "Custom Vest",
		EstimatedPriceUSD: &est,
	}}}

	got := uc.EstimateFromImage(context.Background(), []byte{1}, "image/jpeg", "")
	assert.False(t, got.Matched)
	assert.Equal(t, 55.0, got.PriceUSD)
}

func TestEstimateFromCatalogExact(t *testing.T) {
	uc := &PricingUC{}
	got, err := uc.EstimateFromCatalog("Leather Boots")
	require.NoError(t, err)
	assert.Equal(t, 180.0, got.PriceUSD)
	assert.True(t, got.Matched)
	assert.Contains(t, got.Sizes, "US 9")

	_, err = uc.EstimateFromCatalog("Moon Rock")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartItemDefaultsSize(t *testing.T) {
	e := Estimate{ProductName: "Snapback Cap", Category: "Snapback Cap", PriceUSD: 30, DefaultSize: "One Size"}

	it := e.CartItem("", "")
	assert.Equal(t, "One Size", it.Size)
	assert.Equal(t, 1, it.Qty)
	assert.True(t, strings.HasPrefix(it.ProductID, "est-"))

	it = e.CartItem("L", "")
	assert.Equal(t, "L", it.Size)
}
