package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

type OrderRepo interface {
	Insert(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, page, pageSize int) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

// Inference is the generative-model boundary. Implementations absorb their
// own failures: AnalyzeImage always yields a usable analysis and Chat always
// yields a reply, so callers never branch on AI outages.
type Inference interface {
	AnalyzeImage(ctx context.Context, image []byte, mimeType, nameHint string) PricingAnalysis
	Chat(ctx context.Context, message string, history []ChatTurn) string
}
