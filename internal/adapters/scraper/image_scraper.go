// Package scraper finds candidate product photos for the admin inventory
// screen, so a new sneaker listing does not need a manual image hunt.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

type ImageScraper struct {
	client *http.Client
}

func NewImageScraper() *ImageScraper {
	return &ImageScraper{client: &http.Client{Timeout: 20 * time.Second}}
}

// SearchImages returns up to maxResults image URLs for a product label.
// DuckDuckGo Images is tried first, Google Images as fallback.
func (s *ImageScraper) SearchImages(ctx context.Context, title, category string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = 6
	}
	if maxResults > 20 {
		maxResults = 20
	}
	query := buildImageQuery(title, category)

	images, err := s.searchDuckDuckGo(ctx, query, maxResults)
	if err == nil && len(images) > 0 {
		log.Info().Str("query", query).Int("found", len(images)).Msg("images found on DuckDuckGo")
		return images, nil
	}
	log.Warn().Err(err).Msg("DuckDuckGo failed, trying Google Images")

	images, err = s.searchGoogleImages(ctx, query, maxResults)
	if err == nil && len(images) > 0 {
		log.Info().Str("query", query).Int("found", len(images)).Msg("images found on Google")
		return images, nil
	}
	return nil, fmt.Errorf("no images found: %w", err)
}

func buildImageQuery(title, category string) string {
	parts := []string{strings.TrimSpace(title)}
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, title) {
		parts = append(parts, c)
	}
	parts = append(parts, "streetwear product photo")
	return strings.Join(parts, " ")
}

// searchDuckDuckGo uses the unofficial image endpoint; it needs the vqd
// token scraped off the HTML search page first.
func (s *ImageScraper) searchDuckDuckGo(ctx context.Context, query string, maxResults int) ([]string, error) {
	searchURL := fmt.Sprintf("https://duckduckgo.com/?q=%s&iax=images&ia=images", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	vqdPattern := regexp.MustCompile(`vqd="([^"]+)"`)
	matches := vqdPattern.FindStringSubmatch(string(body))
	if len(matches) < 2 {
		return nil, fmt.Errorf("vqd token not found")
	}
	vqd := matches[1]

	imageSearchURL := fmt.Sprintf("https://duckduckgo.com/i.js?q=%s&vqd=%s&o=json&p=1&s=0", url.QueryEscape(query), url.QueryEscape(vqd))
	req2, err := http.NewRequestWithContext(ctx, http.MethodGet, imageSearchURL, nil)
	if err != nil {
		return nil, err
	}
	req2.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req2.Header.Set("Referer", searchURL)

	resp2, err := s.client.Do(req2)
	if err != nil {
		return nil, err
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", resp2.StatusCode)
	}

	var result struct {
		Results []struct {
			Image     string `json:"image"`
			Thumbnail string `json:"thumbnail"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding image results: %w", err)
	}

	images := []string{}
	const minSize = 300
	for _, img := range result.Results {
		if img.Width < minSize || img.Height < minSize {
			continue
		}
		imageURL := img.Image
		if imageURL == "" {
			imageURL = img.Thumbnail
		}
		if imageURL != "" && strings.HasPrefix(imageURL, "http") {
			images = append(images, imageURL)
			if len(images) >= maxResults {
				break
			}
		}
	}
	return images, nil
}

func (s *ImageScraper) searchGoogleImages(ctx context.Context, query string, maxResults int) ([]string, error) {
	searchURL := fmt.Sprintf("https://www.google.com/search?tbm=isch&q=%s&safe=active", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	images := []string{}
	keep := func(u string) bool {
		lower := strings.ToLower(u)
		return !strings.Contains(lower, "logo") && !strings.Contains(lower, "icon") && !strings.Contains(u, "gstatic.com")
	}

	doc.Find("img[data-src], img[src]").Each(func(i int, sel *goquery.Selection) {
		if len(images) >= maxResults {
			return
		}
		imageURL := ""
		if src, exists := sel.Attr("data-src"); exists && strings.HasPrefix(src, "http") {
			imageURL = src
		} else if src, exists := sel.Attr("src"); exists && strings.HasPrefix(src, "http") {
			imageURL = src
		}
		if imageURL != "" && keep(imageURL) {
			images = append(images, imageURL)
		}
	})

	// full-size URLs often only appear in the embedded JSON blobs
	imgPattern := regexp.MustCompile(`"(https?://[^"]+\.(?:jpg|jpeg|png|webp)[^"]*)"`)
	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		if len(images) >= maxResults {
			return
		}
		for _, match := range imgPattern.FindAllStringSubmatch(sel.Text(), -1) {
			if len(images) >= maxResults {
				break
			}
			if len(match) > 1 && keep(match[1]) {
				images = append(images, match[1])
			}
		}
	})

	seen := make(map[string]bool)
	unique := []string{}
	for _, img := range images {
		if !seen[img] {
			seen[img] = true
			unique = append(unique, img)
			if len(unique) >= maxResults {
				break
			}
		}
	}
	return unique, nil
}
