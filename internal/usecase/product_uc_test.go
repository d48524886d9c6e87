package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameerdev7/sneakhub/internal/domain"
)

func TestProductReadsDegradeWithoutStore(t *testing.T) {
	uc := &ProductUC{}

	list, total, err := uc.List(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	cats, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = uc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductWritesFailWithoutStore(t *testing.T) {
	uc := &ProductUC{}

	err := uc.Save(context.Background(), &domain.Product{Title: "Tee", ImageURL: "/x.jpg", PriceUSD: 25})
	assert.ErrorIs(t, err, domain.ErrStoreNotConnected)

	err = uc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrStoreNotConnected)
}

func TestProductSaveValidatesFirst(t *testing.T) {
	uc := &ProductUC{}

	// validation errors outrank the store check
	err := uc.Save(context.Background(), &domain.Product{ImageURL: "/x.jpg"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = uc.Save(context.Background(), &domain.Product{Title: "Tee"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = uc.Save(context.Background(), &domain.Product{Title: "Tee", ImageURL: "/x.jpg", PriceUSD: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
