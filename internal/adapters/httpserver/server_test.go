package httpserver

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameerdev7/sneakhub/internal/cart"
	"github.com/sameerdev7/sneakhub/internal/domain"
	"github.com/sameerdev7/sneakhub/internal/usecase"
)

type memOrderRepo struct {
	inserted []*domain.Order
}

func (m *memOrderRepo) Insert(_ context.Context, o *domain.Order) error {
	m.inserted = append(m.inserted, o)
	return nil
}
func (m *memOrderRepo) FindByID(_ context.Context, _ uuid.UUID) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (m *memOrderRepo) List(_ context.Context, _, _ int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}
func (m *memOrderRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ domain.OrderStatus) error {
	return nil
}
func (m *memOrderRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type memProductRepo struct {
	byID map[uuid.UUID]*domain.Product
}

func (m *memProductRepo) Save(_ context.Context, _ *domain.Product) error { return nil }
func (m *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}
func (m *memProductRepo) List(_ context.Context, _ domain.ProductFilter) ([]domain.Product, int64, error) {
	return nil, 0, nil
}
func (m *memProductRepo) Delete(_ context.Context, _ uuid.UUID) error           { return nil }
func (m *memProductRepo) DistinctCategories(_ context.Context) ([]string, error) { return nil, nil }

var testTmpl = template.Must(template.New("t").Parse(`{{define "cart.html"}}cart{{end}}{{define "checkout.html"}}checkout{{end}}{{define "home.html"}}home{{end}}`))

func newTestHandler(orders domain.OrderRepo) (http.Handler, *memProductRepo) {
	products := &memProductRepo{byID: map[uuid.UUID]*domain.Product{}}
	pUC := &usecase.ProductUC{Products: products}
	oUC := &usecase.OrderUC{Orders: orders, WhatsAppPhone: "+923009999999"}
	return New(testTmpl, pUC, oUC, &usecase.PricingUC{}, nil, nil, nil), products
}

func cartCookie(t *testing.T, c *cart.Cart) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	writeCart(rec, c)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func checkoutForm() url.Values {
	return url.Values{
		"name":    {"Ali"},
		"phone":   {"+923001234567"},
		"city":    {"Lahore"},
		"address": {"12 Mall Rd"},
	}
}

func TestCartCookieRoundTrip(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Title: "Boxy Tee", PriceUSD: 25, Size: "M", Qty: 2})

	req := httptest.NewRequest("GET", "/cart", nil)
	req.AddCookie(cartCookie(t, c))

	got := readCart(req)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Qty)
	assert.Equal(t, 50.0, got.Total())
}

func TestCartCookieTamperedSignatureIsDropped(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Title: "Boxy Tee", PriceUSD: 25, Size: "M", Qty: 1})
	ck := cartCookie(t, c)
	ck.Value = "x" + ck.Value[1:]

	req := httptest.NewRequest("GET", "/cart", nil)
	req.AddCookie(ck)
	assert.True(t, readCart(req).IsEmpty())
}

func TestCartAddMergesLines(t *testing.T) {
	h, products := newTestHandler(&memOrderRepo{})
	id := uuid.New()
	products.byID[id] = &domain.Product{ID: id, Title: "Retro Runner 88", Category: "Sneakers", PriceUSD: 95}

	form := url.Values{"id": {id.String()}, "size": {"US 9"}, "qty": {"1"}}
	req := httptest.NewRequest("POST", "/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code)

	// same product and size again, carrying the cookie forward
	req2 := httptest.NewRequest("POST", "/cart", strings.NewReader(form.Encode()))
	req2.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req2.Header.Set("Accept", "application/json")
	for _, ck := range rec.Result().Cookies() {
		req2.AddCookie(ck)
	}
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req2)
	require.Equal(t, 200, rec2.Code)

	var resp struct {
		Items int `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Items)
}

func TestCheckoutPersistsClearsThenRedirects(t *testing.T) {
	repo := &memOrderRepo{}
	h, _ := newTestHandler(repo)

	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Title: "Retro Runner 88", PriceUSD: 95, Size: "US 9", Qty: 1})

	req := httptest.NewRequest("POST", "/cart/checkout", strings.NewReader(checkoutForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cartCookie(t, c))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 302, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "https://wa.me/923009999999?text=")
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "Ali", repo.inserted[0].CustomerName)

	// the rewritten cart cookie must decode to empty
	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "cart" {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	r2 := httptest.NewRequest("GET", "/cart", nil)
	r2.AddCookie(cleared)
	assert.True(t, readCart(r2).IsEmpty())
}

func TestCheckoutWithoutStoreLeavesCartAlone(t *testing.T) {
	h, _ := newTestHandler(nil)

	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Title: "Retro Runner 88", PriceUSD: 95, Size: "US 9", Qty: 1})

	req := httptest.NewRequest("POST", "/cart/checkout", strings.NewReader(checkoutForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cartCookie(t, c))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 302, rec.Code)
	assert.Equal(t, "/checkout?err=store", rec.Header().Get("Location"))
	for _, ck := range rec.Result().Cookies() {
		assert.NotEqual(t, "cart", ck.Name, "a failed checkout must not rewrite the cart")
	}
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	h, _ := newTestHandler(&memOrderRepo{})

	req := httptest.NewRequest("POST", "/cart/checkout", strings.NewReader(checkoutForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 302, rec.Code)
	assert.Equal(t, "/cart?err=empty", rec.Header().Get("Location"))
}

func TestCheckoutMissingFieldsRedirects(t *testing.T) {
	h, _ := newTestHandler(&memOrderRepo{})

	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Title: "Tee", PriceUSD: 25, Size: "M", Qty: 1})
	form := checkoutForm()
	form.Del("phone")

	req := httptest.NewRequest("POST", "/cart/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cartCookie(t, c))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 302, rec.Code)
	assert.Equal(t, "/checkout?err=fields", rec.Header().Get("Location"))
}

func TestCatalogSearchEndpoint(t *testing.T) {
	h, _ := newTestHandler(&memOrderRepo{})

	req := httptest.NewRequest("GET", "/api/catalog/search?q=boots", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var resp struct {
		Results []struct {
			Name     string  `json:"name"`
			PriceUSD float64 `json:"priceUSD"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	found := false
	for _, r := range resp.Results {
		if r.Name == "Leather Boots" {
			found = true
			assert.Equal(t, 180.0, r.PriceUSD)
		}
	}
	assert.True(t, found)
}

func TestAdminRequiresSecret(t *testing.T) {
	h, _ := newTestHandler(&memOrderRepo{})

	req := httptest.NewRequest("GET", "/admin/orders", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 302, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}
