package httpserver

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/sameerdev7/sneakhub/internal/domain"
	"github.com/sameerdev7/sneakhub/internal/money"
)

const adminCookie = "admin"

// isAdminSession checks the signed admin cookie. Its payload is the literal
// marker string, not the secret, so a leaked cookie value reveals nothing.
func (s *Server) isAdminSession(r *http.Request) bool {
	if s.adminSecret == "" {
		return false
	}
	c, err := r.Cookie(adminCookie)
	if err != nil {
		return false
	}
	return string(openPayload(c.Value)) == "admin-ok"
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.isAdminSession(r) {
		return true
	}
	http.Redirect(w, r, "/admin/login", 302)
	return false
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	http.Redirect(w, r, "/admin/orders", 302)
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "admin_login.html", map[string]any{})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		secret := r.FormValue("secret")
		if s.adminSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(s.adminSecret)) != 1 {
			log.Warn().Str("ip", r.RemoteAddr).Msg("admin login rejected")
			s.render(w, r, "admin_login.html", map[string]any{"Error": "invalid secret"})
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name: adminCookie, Value: signPayload([]byte("admin-ok")),
			Path: "/", MaxAge: 60 * 60 * 8, HttpOnly: true, SameSite: http.SameSiteStrictMode,
		})
		http.Redirect(w, r, "/admin/orders", 302)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: adminCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/", 302)
}

// --- products ---

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	f := domain.ProductFilter{Page: page, PageSize: 50, Query: qv.Get("q"), Category: qv.Get("category")}
	list, total, err := s.products.List(r.Context(), f)
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	var edit *domain.Product
	if idStr := qv.Get("edit"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			edit, _ = s.products.Get(r.Context(), id)
		}
	}
	s.render(w, r, "admin_products.html", map[string]any{
		"Products": list, "Total": total, "Page": page, "Edit": edit, "Query": f.Query,
	})
}

func (s *Server) handleAdminProductSave(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
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
	p := &domain.Product{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Premium:     r.FormValue("premium") == "1",
	}
	if idStr := r.FormValue("id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			p.ID = id
		}
	}
	p.PriceUSD, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	p.Rating, _ = strconv.ParseFloat(r.FormValue("rating"), 64)
	p.Reviews, _ = strconv.Atoi(r.FormValue("reviews"))
	if raw := strings.TrimSpace(r.FormValue("sizes")); raw != "" {
		for _, sz := range strings.Split(raw, ",") {
			if sz = strings.TrimSpace(sz); sz != "" {
				p.Sizes = append(p.Sizes, sz)
			}
		}
	}
	if err := s.products.Save(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("product save")
		http.Redirect(w, r, "/admin/products?err=save", 302)
		return
	}
	http.Redirect(w, r, "/admin/products", 302)
}

func (s *Server) handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
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
	if r.FormValue("confirm") != "1" {
		http.Redirect(w, r, "/admin/products?err=confirm", 302)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("product delete")
	}
	http.Redirect(w, r, "/admin/products", 302)
}

// --- orders ---

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	list, _, err := s.orders.List(r.Context(), 1, 500)
	if err != nil {
		log.Error().Err(err).Msg("orders list")
	}
	var revenue float64
	pendings := 0
	for _, o := range list {
		if o.Status == domain.OrderStatusCompleted {
			revenue += o.Total
		}
		if o.Status == domain.OrderStatusPending {
			pendings++
		}
	}
	s.render(w, r, "admin_orders.html", map[string]any{
		"Orders": list, "Revenue": revenue, "Pending": pendings,
	})
}

func (s *Server) handleAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
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
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(r.FormValue("status"))); err != nil {
		log.Error().Err(err).Msg("order status")
		http.Redirect(w, r, "/admin/orders?err=status", 302)
		return
	}
	http.Redirect(w, r, "/admin/orders", 302)
}

func (s *Server) handleAdminOrderDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
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
	if r.FormValue("confirm") != "1" {
		http.Redirect(w, r, "/admin/orders?err=confirm", 302)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.orders.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("order delete")
	}
	http.Redirect(w, r, "/admin/orders", 302)
}

// handleAdminExportXLSX streams a workbook with one sheet of orders and one
// of products.
func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	orders, _, err := s.orders.List(r.Context(), 1, 10000)
	if err != nil {
		log.Error().Err(err).Msg("export orders")
	}
	products, _, err := s.products.List(r.Context(), domain.ProductFilter{Page: 1, PageSize: 10000})
	if err != nil {
		log.Error().Err(err).Msg("export products")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const ordersSheet = "Orders"
	f.SetSheetName("Sheet1", ordersSheet)
	_ = f.SetSheetRow(ordersSheet, "A1", &[]any{"ID", "Date", "Customer", "Phone", "City", "Status", "Items", "Total USD", "Total PKR"})
	for i, o := range orders {
		var lines []string
		for _, it := range o.Items {
			lines = append(lines, fmt.Sprintf("%s (%s) x%d", it.ProductName, it.Size, it.Qty))
		}
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(ordersSheet, cell, &[]any{
			o.ID.String(),
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.CustomerName,
			o.Phone,
			o.City,
			string(o.Status),
			strings.Join(lines, "; "),
			o.Total,
			money.Format(o.Total, money.CurrencyPKR),
		})
	}

	const productsSheet = "Products"
	_, _ = f.NewSheet(productsSheet)
	_ = f.SetSheetRow(productsSheet, "A1", &[]any{"ID", "Title", "Category", "Price USD", "Rating", "Reviews", "Premium"})
	for i, p := range products {
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(productsSheet, cell, &[]any{
			p.ID.String(), p.Title, p.Category, p.PriceUSD, p.Rating, p.Reviews, p.Premium,
		})
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sneakhub-export.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx write")
	}
}

// handleAdminImageSearch helps the product form: given a title and category
// it proposes a handful of candidate image urls.
func (s *Server) handleAdminImageSearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if s.images == nil {
		writeJSON(w, 200, map[string]any{"images": []string{}})
		return
	}
	q := r.URL.Query()
	urls, err := s.images.SearchImages(r.Context(), q.Get("title"), q.Get("category"), 6)
	if err != nil {
		log.Error().Err(err).Msg("image search")
		writeJSON(w, 200, map[string]any{"images": []string{}})
		return
	}
	writeJSON(w, 200, map[string]any{"images": urls})
}
