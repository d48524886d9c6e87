package httpserver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/sameerdev7/sneakhub/internal/cart"
	"github.com/sameerdev7/sneakhub/internal/catalog"
	"github.com/sameerdev7/sneakhub/internal/checkout"
	"github.com/sameerdev7/sneakhub/internal/domain"
	"github.com/sameerdev7/sneakhub/internal/money"
	"github.com/sameerdev7/sneakhub/internal/usecase"
)

// ImageSearcher is what the admin image lookup needs from the scraper.
type ImageSearcher interface {
	SearchImages(ctx context.Context, title, category string, maxResults int) ([]string, error)
}

type Server struct {
	mux       *http.ServeMux
	tmpl      *template.Template
	products  *usecase.ProductUC
	orders    *usecase.OrderUC
	pricing   *usecase.PricingUC
	customers domain.CustomerRepo
	images    ImageSearcher
	oauthCfg  *oauth2.Config

	adminSecret string

	// in-flight guards: checkout and image analysis reject a second
	// concurrent submission instead of racing on the disable timing of a
	// button.
	checkoutBusy atomic.Bool
	analyzeBusy  atomic.Bool
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func New(t *template.Template, p *usecase.ProductUC, o *usecase.OrderUC, pr *usecase.PricingUC, customers domain.CustomerRepo, images ImageSearcher, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		tmpl:      t,
		products:  p,
		orders:    o,
		pricing:   pr,
		customers: customers,
		images:    images,
		oauthCfg:  oauthCfg,
		mux:       http.NewServeMux(),
		adminSecret: os.Getenv("ADMIN_SECRET"),
	}
	s.routes()
	return Chain(s.mux,
		SecureHeaders,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/public/", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/products", s.handleProducts)
	s.mux.HandleFunc("/product/", s.handleProduct)
	s.mux.HandleFunc("/contact", s.handleContact)
	s.mux.HandleFunc("/currency", s.handleCurrency)

	s.mux.HandleFunc("/cart", s.handleCart)
	s.mux.HandleFunc("/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/checkout", s.handleCheckout)
	s.mux.HandleFunc("/cart/checkout", s.handleCartCheckout)

	s.mux.HandleFunc("/pricing", s.handlePricing)
	s.mux.HandleFunc("/stylist", s.handleStylist)
	s.mux.HandleFunc("/api/pricing/analyze", s.apiPricingAnalyze)
	s.mux.HandleFunc("/api/pricing/add", s.apiPricingAdd)
	s.mux.HandleFunc("/api/catalog/search", s.apiCatalogSearch)
	s.mux.HandleFunc("/api/stylist", s.apiStylist)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/logout", s.handleLogout)

	s.mux.HandleFunc("/admin", s.handleAdmin)
	s.mux.HandleFunc("/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/admin/products/save", s.handleAdminProductSave)
	s.mux.HandleFunc("/admin/products/delete", s.handleAdminProductDelete)
	s.mux.HandleFunc("/admin/orders", s.handleAdminOrders)
	s.mux.HandleFunc("/admin/orders/status", s.handleAdminOrderStatus)
	s.mux.HandleFunc("/admin/orders/delete", s.handleAdminOrderDelete)
	s.mux.HandleFunc("/admin/export/xlsx", s.handleAdminExportXLSX)
	s.mux.HandleFunc("/admin/images/search", s.handleAdminImageSearch)
}

// --- shop pages ---

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	list, _, err := s.products.List(r.Context(), domain.ProductFilter{Page: 1, PageSize: 8})
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	s.render(w, r, "home.html", map[string]any{"Products": list})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 24
	f := domain.ProductFilter{
		Page: page, PageSize: pageSize,
		Sort:     qv.Get("sort"),
		Query:    qv.Get("q"),
		Category: qv.Get("category"),
	}
	list, total, _ := s.products.List(r.Context(), f)
	pages := (int(total) + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	cats, _ := s.products.Categories(r.Context())
	s.render(w, r, "products.html", map[string]any{
		"Products": list, "Total": total, "Page": page, "Pages": pages,
		"Query": f.Query, "Sort": f.Sort, "Category": f.Category, "Categories": cats,
	})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/product/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	sizes := p.Sizes
	if len(sizes) == 0 {
		ss := catalog.ResolveSizes(p.Category)
		sizes = ss.Sizes
	}
	defaultSize := catalog.ResolveSizes(p.Category).Default
	added := r.URL.Query().Get("added") == "1"
	s.render(w, r, "product.html", map[string]any{
		"Product": p, "Sizes": sizes, "DefaultSize": defaultSize, "Added": added,
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "contact.html", map[string]any{})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	msg := strings.TrimSpace(r.FormValue("message"))
	if name == "" || msg == "" || (email != "" && !emailRe.MatchString(email)) {
		s.render(w, r, "contact.html", map[string]any{"Error": "please fill in your name and message"})
		return
	}
	go sendContactNotify(name, email, msg)
	s.render(w, r, "contact.html", map[string]any{"Sent": true})
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	c := r.URL.Query().Get("c")
	if c != money.CurrencyPKR {
		c = money.CurrencyUSD
	}
	http.SetCookie(w, &http.Cookie{Name: "currency", Value: c, Path: "/", MaxAge: 60 * 60 * 24 * 30})
	back := r.Referer()
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, 302)
}

func (s *Server) currency(r *http.Request) string {
	if c, err := r.Cookie("currency"); err == nil && c.Value == money.CurrencyPKR {
		return money.CurrencyPKR
	}
	return money.CurrencyUSD
}

// --- cart ---

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c := readCart(r)
		s.render(w, r, "cart.html", map[string]any{
			"Cart": c, "Total": c.Total(), "Empty": c.IsEmpty(),
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		idStr := r.FormValue("id")
		size := r.FormValue("size")
		qty, _ := strconv.Atoi(r.FormValue("qty"))
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, "id", 400)
			return
		}
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			http.Error(w, "product", 404)
			return
		}
		if size == "" {
			size = catalog.ResolveSizes(p.Category).Default
		}
		c := readCart(r)
		c.Add(cart.Item{
			ProductID: p.ID.String(),
			Title:     p.Title,
			Category:  p.Category,
			PriceUSD:  p.PriceUSD,
			ImageURL:  p.ImageURL,
			Size:      size,
			Qty:       qty,
		})
		writeCart(w, c)
		if wantsJSON(r) {
			writeJSON(w, 200, map[string]any{"status": "ok", "items": c.Count()})
			return
		}
		http.Redirect(w, r, "/product/"+idStr+"?added=1", 302)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	id := r.FormValue("id")
	size := r.FormValue("size")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	c := readCart(r)
	if err == nil {
		c.UpdateQuantity(id, size, qty)
	}
	writeCart(w, c)
	http.Redirect(w, r, "/cart", 302)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	c := readCart(r)
	c.Remove(r.FormValue("id"), r.FormValue("size"))
	writeCart(w, c)
	http.Redirect(w, r, "/cart", 302)
}

// handleCheckout renders the order form. An empty cart never reaches it.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	c := readCart(r)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", 302)
		return
	}
	data := map[string]any{"Cart": c, "Total": c.Total(), "Name": "", "Email": ""}
	if u := readUserSession(r); u != nil {
		data["Name"] = u.Name
		data["Email"] = u.Email
	}
	s.render(w, r, "checkout.html", data)
}

// handleCartCheckout persists the order, clears the cart, then redirects to
// the WhatsApp handoff — strictly in that order. A failed insert leaves the
// cart cookie untouched and never opens the link.
func (s *Server) handleCartCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if !s.checkoutBusy.CompareAndSwap(false, true) {
		http.Error(w, "checkout in progress", http.StatusTooManyRequests)
		return
	}
	defer s.checkoutBusy.Store(false)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	form := checkout.ShippingForm{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		City:    r.FormValue("city"),
		Address: r.FormValue("address"),
		Email:   r.FormValue("email"),
	}
	c := readCart(r)
	o, handoff, err := s.orders.Checkout(r.Context(), c, form)
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		http.Redirect(w, r, "/cart?err=empty", 302)
		return
	case errors.Is(err, domain.ErrValidation):
		http.Redirect(w, r, "/checkout?err=fields", 302)
		return
	case errors.Is(err, domain.ErrStoreNotConnected):
		log.Error().Msg("checkout rejected: store not connected")
		http.Redirect(w, r, "/checkout?err=store", 302)
		return
	case err != nil:
		log.Error().Err(err).Msg("checkout")
		http.Redirect(w, r, "/checkout?err=save", 302)
		return
	}

	c.Clear()
	writeCart(w, c)
	go sendOrderNotify(o)
	http.Redirect(w, r, handoff, 302)
}

// --- auth (optional Google sign-in for checkout prefill) ---

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", 500)
		return
	}
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), 302)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", 500)
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie("oauth_state")
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		http.Error(w, "state", 400)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth", 400)
		return
	}
	client := s.oauthCfg.Client(r.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil || resp.StatusCode != 200 {
		log.Error().Err(err).Msg("userinfo")
		http.Error(w, "userinfo", 400)
		return
	}
	defer resp.Body.Close()
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&info)
	if info.Email == "" {
		http.Error(w, "email", 400)
		return
	}
	if s.customers != nil {
		if _, err := s.customers.FindByEmail(r.Context(), info.Email); errors.Is(err, domain.ErrNotFound) {
			_ = s.customers.Save(r.Context(), &domain.Customer{ID: uuid.New(), Email: info.Email, Name: info.Name})
		}
	}
	writeUserSession(w, &sessionUser{Email: info.Email, Name: info.Name})
	http.Redirect(w, r, "/", 302)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeUserSession(w, nil)
	http.Redirect(w, r, "/", 302)
}

// --- render / cookie helpers ---

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	data["Currency"] = s.currency(r)
	data["CartCount"] = readCart(r).Count()
	if u := readUserSession(r); u != nil {
		data["User"] = u
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", 500)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") || r.Header.Get("X-Requested-With") == "fetch"
}

func secretKey() []byte {
	k := os.Getenv("SESSION_KEY")
	if k == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}

func signPayload(b []byte) string {
	h := hmac.New(sha256.New, secretKey())
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return sig + "." + base64.RawURLEncoding.EncodeToString(b)
}

func openPayload(val string) []byte {
	parts := strings.SplitN(val, ".", 2)
	if len(parts) != 2 {
		return nil
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil
	}
	return payload
}

func readCart(r *http.Request) *cart.Cart {
	c, err := r.Cookie("cart")
	if err != nil {
		return cart.New()
	}
	payload := openPayload(c.Value)
	if payload == nil {
		return cart.New()
	}
	out := cart.New()
	_ = json.Unmarshal(payload, out)
	return out
}

func writeCart(w http.ResponseWriter, c *cart.Cart) {
	b, _ := json.Marshal(c)
	http.SetCookie(w, &http.Cookie{Name: "cart", Value: signPayload(b), Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true})
}

type sessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func writeUserSession(w http.ResponseWriter, u *sessionUser) {
	if u == nil {
		http.SetCookie(w, &http.Cookie{Name: "sess", Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
		return
	}
	b, _ := json.Marshal(u)
	http.SetCookie(w, &http.Cookie{Name: "sess", Value: signPayload(b), Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true, SameSite: http.SameSiteStrictMode})
}

func readUserSession(r *http.Request) *sessionUser {
	c, err := r.Cookie("sess")
	if err != nil || c.Value == "" {
		return nil
	}
	payload := openPayload(c.Value)
	if payload == nil {
		return nil
	}
	var u sessionUser
	if err := json.Unmarshal(payload, &u); err != nil || u.Email == "" {
		return nil
	}
	return &u
}
