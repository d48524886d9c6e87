package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sameerdev7/sneakhub/internal/cart"
	"github.com/sameerdev7/sneakhub/internal/checkout"
	"github.com/sameerdev7/sneakhub/internal/domain"
)

type OrderUC struct {
	Orders domain.OrderRepo

	// WhatsAppPhone is the operator number the handoff link points at.
	WhatsAppPhone string
}

// Checkout assembles the order and persists it. The handoff link is only
// returned once the insert succeeded; on any error the cart must stay
// untouched and no link may be opened, so callers clear the cookie strictly
// after this returns nil error.
func (uc *OrderUC) Checkout(ctx context.Context, c *cart.Cart, f checkout.ShippingForm) (*domain.Order, string, error) {
	o, err := checkout.BuildOrder(c, f)
	if err != nil {
		return nil, "", err
	}
	if uc.Orders == nil {
		return nil, "", domain.ErrStoreNotConnected
	}
	if err := uc.Orders.Insert(ctx, o); err != nil {
		return nil, "", fmt.Errorf("persist order: %w", err)
	}
	return o, checkout.WhatsAppLink(uc.WhatsAppPhone, o), nil
}

func (uc *OrderUC) List(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	if uc.Orders == nil {
		log.Debug().Msg("store not connected, order list degrades to empty")
		return []domain.Order{}, 0, nil
	}
	list, total, err := uc.Orders.List(ctx, page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("order list")
		return []domain.Order{}, 0, nil
	}
	return list, total, nil
}

func (uc *OrderUC) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: status %q", domain.ErrValidation, status)
	}
	if uc.Orders == nil {
		return domain.ErrStoreNotConnected
	}
	return uc.Orders.UpdateStatus(ctx, id, status)
}

func (uc *OrderUC) Delete(ctx context.Context, id uuid.UUID) error {
	if uc.Orders == nil {
		return domain.ErrStoreNotConnected
	}
	return uc.Orders.Delete(ctx, id)
}
