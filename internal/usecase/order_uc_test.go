package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameerdev7/sneakhub/internal/cart"
	"github.com/sameerdev7/sneakhub/internal/checkout"
	"github.com/sameerdev7/sneakhub/internal/domain"
)

type fakeOrderRepo struct {
	inserted  []*domain.Order
	insertErr error
	statuses  map[uuid.UUID]domain.OrderStatus
}

func (f *fakeOrderRepo) Insert(_ context.Context, o *domain.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, o)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, o := range f.inserted {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context, _, _ int) ([]domain.Order, int64, error) {
	out := make([]domain.Order, 0, len(f.inserted))
	for _, o := range f.inserted {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, s domain.OrderStatus) error {
	if f.statuses == nil {
		f.statuses = map[uuid.UUID]domain.OrderStatus{}
	}
	f.statuses[id] = s
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func testCart() *cart.Cart {
	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Title: "Retro Runner 88", Category: "Sneakers", PriceUSD: 95, Size: "US 9", Qty: 1})
	return c
}

func testForm() checkout.ShippingForm {
	return checkout.ShippingForm{Name: "Ali", Phone: "+923001234567", City: "Lahore", Address: "12 Mall Rd"}
}

func TestCheckoutPersistsThenLinks(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := &OrderUC{Orders: repo, WhatsAppPhone: "+923009999999"}

	o, link, err := uc.Checkout(context.Background(), testCart(), testForm())
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, o.ID, repo.inserted[0].ID)
	assert.Contains(t, link, "https://wa.me/923009999999?text=")
	assert.Contains(t, link, "Retro+Runner+88")
}

func TestCheckoutWithoutStore(t *testing.T) {
	uc := &OrderUC{}

	_, link, err := uc.Checkout(context.Background(), testCart(), testForm())
	assert.ErrorIs(t, err, domain.ErrStoreNotConnected)
	assert.Empty(t, link)
}

func TestCheckoutEmptyCartBeatsStoreCheck(t *testing.T) {
	// validation runs before the store check, so an empty cart reports
	// ErrEmptyCart even when no store is configured
	uc := &OrderUC{}

	_, _, err := uc.Checkout(context.Background(), cart.New(), testForm())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutInsertFailureReturnsNoLink(t *testing.T) {
	repo := &fakeOrderRepo{insertErr: errors.New("boom")}
	uc := &OrderUC{Orders: repo, WhatsAppPhone: "+923009999999"}

	o, link, err := uc.Checkout(context.Background(), testCart(), testForm())
	assert.Error(t, err)
	assert.Nil(t, o)
	assert.Empty(t, link)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := &OrderUC{Orders: repo}

	err := uc.UpdateStatus(context.Background(), uuid.New(), "shipped")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, repo.statuses)

	id := uuid.New()
	require.NoError(t, uc.UpdateStatus(context.Background(), id, domain.OrderStatusCompleted))
	assert.Equal(t, domain.OrderStatusCompleted, repo.statuses[id])
}

func TestListDegradesToEmpty(t *testing.T) {
	uc := &OrderUC{}
	list, total, err := uc.List(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}
