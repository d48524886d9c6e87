package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sameerdev7/sneakhub/internal/domain"
)

// ProductUC wraps the product table. A nil repo means the hosted store is
// unconfigured: reads degrade to empty collections, writes fail with
// ErrStoreNotConnected.
type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if uc.Products == nil {
		log.Debug().Msg("store not connected, product list degrades to empty")
		return []domain.Product{}, 0, nil
	}
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	list, total, err := uc.Products.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Msg("product list")
		return []domain.Product{}, 0, nil
	}
	return list, total, nil
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if uc.Products == nil {
		return nil, domain.ErrNotFound
	}
	return uc.Products.FindByID(ctx, id)
}

// Save validates the admin form before any write: a product without a title
// or image never reaches the store.
func (uc *ProductUC) Save(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title", domain.ErrValidation)
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return fmt.Errorf("%w: image", domain.ErrValidation)
	}
	if p.PriceUSD < 0 {
		return fmt.Errorf("%w: price", domain.ErrValidation)
	}
	if uc.Products == nil {
		return domain.ErrStoreNotConnected
	}
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	if uc.Products == nil {
		return domain.ErrStoreNotConnected
	}
	return uc.Products.Delete(ctx, id)
}

func (uc *ProductUC) Categories(ctx context.Context) ([]string, error) {
	if uc.Products == nil {
		return []string{}, nil
	}
	cats, err := uc.Products.DistinctCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("categories")
		return []string{}, nil
	}
	return cats, nil
}
