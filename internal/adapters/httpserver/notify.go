package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sameerdev7/sneakhub/internal/domain"
)

// telegramChatIDs supports TELEGRAM_CHAT_IDS (comma separated) with a
// TELEGRAM_CHAT_ID fallback.
func telegramChatIDs() []string {
	raw := os.Getenv("TELEGRAM_CHAT_IDS")
	if strings.TrimSpace(raw) == "" {
		raw = os.Getenv("TELEGRAM_CHAT_ID")
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func sendTelegram(text string) error {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	ids := telegramChatIDs()
	if token == "" || len(ids) == 0 {
		return fmt.Errorf("telegram vars missing")
	}
	apiURL := "https://api.telegram.org/bot" + token + "/sendMessage"
	var lastErr error
	for _, id := range ids {
		form := url.Values{}
		form.Set("chat_id", id)
		form.Set("text", text)
		form.Set("disable_web_page_preview", "1")
		resp, err := http.PostForm(apiURL, form)
		if err != nil {
			lastErr = err
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode >= 300 {
				body, _ := io.ReadAll(resp.Body)
				lastErr = fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
			}
		}()
	}
	return lastErr
}

func sendOrderTelegram(o *domain.Order) error {
	var b strings.Builder
	b.WriteString("New order ")
	b.WriteString(o.ID.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nCity: %s\nAddress: %s\n", o.CustomerName, o.Phone, o.City, o.Address)
	if o.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", o.Email)
	}
	b.WriteString("Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s (%s) x%d — $%.2f\n", it.ProductName, it.Size, it.Qty, it.PriceUSD)
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", o.Total)
	return sendTelegram(b.String())
}

// sendOrderNotify runs in a goroutine after checkout; a failed notification
// never affects the order.
func sendOrderNotify(o *domain.Order) {
	if err := sendOrderTelegram(o); err != nil {
		log.Warn().Err(err).Msg("telegram notify failed")
	}
}

func sendContactNotify(name, email, message string) {
	var b strings.Builder
	b.WriteString("Contact form\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	if email != "" {
		fmt.Fprintf(&b, "Email: %s\n", email)
	}
	b.WriteString(message)
	if err := sendTelegram(b.String()); err != nil {
		log.Warn().Err(err).Msg("telegram notify failed")
	}
}
