package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sameerdev7/sneakhub/internal/catalog"
	"github.com/sameerdev7/sneakhub/internal/domain"
	"github.com/sameerdev7/sneakhub/internal/usecase"
)

// maxUploadBytes bounds the pricing photo upload.
const maxUploadBytes = 8 << 20

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	s.render(w, r, "pricing.html", map[string]any{
		"Entries": catalog.Entries(),
	})
}

func (s *Server) handleStylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	s.render(w, r, "stylist.html", map[string]any{})
}

// apiPricingAnalyze classifies an uploaded photo and returns the normalized
// estimate. The handler never reports inference failure: a broken call comes
// back as the fallback analysis and normalizes like any other input.
func (s *Server) apiPricingAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if !s.analyzeBusy.CompareAndSwap(false, true) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "analysis in progress"})
		return
	}
	defer s.analyzeBusy.Store(false)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	fh := r.MultipartForm.File["image"]
	if len(fh) == 0 {
		http.Error(w, "image", 400)
		return
	}
	f, err := fh[0].Open()
	if err != nil {
		http.Error(w, "image", 400)
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	_ = f.Close()
	if err != nil || len(data) == 0 {
		http.Error(w, "image", 400)
		return
	}
	mime := fh[0].Header.Get("Content-Type")
	hint := strings.TrimSpace(r.FormValue("name"))

	est := s.pricing.EstimateFromImage(r.Context(), data, mime, hint)
	writeJSON(w, 200, map[string]any{
		"productName": est.ProductName,
		"category":    est.Category,
		"priceUSD":    est.PriceUSD,
		"matched":     est.Matched,
		"sizes":       est.Sizes,
		"defaultSize": est.DefaultSize,
		"reasoning":   est.Reasoning,
		"colors":      est.Colors,
		"complexity":  est.Complexity,
	})
}

// apiPricingAdd puts an estimated or catalog-picked product in the cart.
// The price is always recomputed server-side so nothing unrounded and
// nothing off-catalog can be injected from the client.
func (s *Server) apiPricingAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	source := r.FormValue("source")
	name := strings.TrimSpace(r.FormValue("name"))
	size := strings.TrimSpace(r.FormValue("size"))
	if name == "" {
		http.Error(w, "name", 400)
		return
	}

	est := s.estimateFor(source, name, r.FormValue("category"), r.FormValue("price"))
	c := readCart(r)
	c.Add(est.CartItem(size, ""))
	writeCart(w, c)
	if wantsJSON(r) {
		writeJSON(w, 200, map[string]any{"status": "ok", "items": c.Count(), "price": est.PriceUSD})
		return
	}
	http.Redirect(w, r, "/cart", 302)
}

func (s *Server) estimateFor(source, name, category, priceStr string) usecase.Estimate {
	if source == "catalog" {
		if est, err := s.pricing.EstimateFromCatalog(name); err == nil {
			return est
		}
		log.Warn().Str("name", name).Msg("catalog pick missed, renormalizing")
	}
	var price *float64
	if p, err := strconv.ParseFloat(priceStr, 64); err == nil && p > 0 {
		price = &p
	}
	n := catalog.Normalize(name, category, price)
	return usecase.Estimate{
		ProductName: name,
		Category:    n.Category,
		PriceUSD:    n.PriceUSD,
		Matched:     n.Matched,
		Sizes:       n.Sizes.Sizes,
		DefaultSize: n.Sizes.Default,
	}
}

func (s *Server) apiCatalogSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	res := catalog.Search(q)
	out := make([]map[string]any, 0, len(res))
	for _, e := range res {
		out = append(out, map[string]any{"name": e.Name, "priceUSD": e.PriceUSD})
	}
	writeJSON(w, 200, map[string]any{"results": out})
}

func (s *Server) apiStylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Message string            `json:"message"`
		History []domain.ChatTurn `json:"history"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message", 400)
		return
	}
	// cap the relayed history so an abusive client cannot grow the prompt
	if len(req.History) > 20 {
		req.History = req.History[len(req.History)-20:]
	}
	reply := s.pricing.Stylist(r.Context(), req.Message, req.History)
	writeJSON(w, 200, map[string]any{"reply": reply})
}
