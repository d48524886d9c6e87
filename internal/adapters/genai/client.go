// Package genai adapts the generative-model API behind domain.Inference.
// Failures never escape: classification degrades to a fixed fallback
// analysis and chat degrades to a fixed apology, so the rest of the app
// treats AI outages as ordinary input.
package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/sameerdev7/sneakhub/internal/domain"
)

const (
	visionModel = openai.GPT4oMini
	chatModel   = openai.GPT4oMini

	fallbackCategory = "T-Shirt"
	fallbackPriceUSD = 55

	apologyReply = "Sorry, the stylist is unavailable right now. Please try again in a moment."

	analysisPrompt = `You are a streetwear pricing assistant. Look at the product photo and reply with ONLY a JSON object:
{"productName":"short product name","category":"product type, e.g. Running Sneaker, Hoodie, Cap","reasoning":"one sentence","dominantColors":["color", "color"],"complexityScore":0.5,"estimatedPriceUSD":55}
complexityScore is between 0 and 1. estimatedPriceUSD is a fair USD resale price.`

	stylistPrompt = `You are the SneakHub stylist: a friendly sneaker and streetwear expert. Keep answers short, concrete and about outfits, sizing and sneaker care. Recommend product types, never invent stock or prices.`
)

type Client struct {
	api *openai.Client
}

// New returns a client; an empty key is allowed and simply pins every call
// to its fallback.
func New(apiKey string) *Client {
	if strings.TrimSpace(apiKey) == "" {
		return &Client{}
	}
	return &Client{api: openai.NewClient(apiKey)}
}

func fallbackAnalysis(hint string) domain.PricingAnalysis {
	name := strings.TrimSpace(hint)
	if name == "" {
		name = fallbackCategory
	}
	price := float64(fallbackPriceUSD)
	return domain.PricingAnalysis{
		ProductName:       name,
		Category:          fallbackCategory,
		Reasoning:         "Automatic estimate; the image could not be analyzed.",
		DominantColors:    []string{},
		ComplexityScore:   0.5,
		EstimatedPriceUSD: &price,
	}
}

// AnalyzeImage classifies a product photo. Any failure — missing key, API
// error, malformed reply — returns the fallback analysis instead of an error.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mimeType, nameHint string) domain.PricingAnalysis {
	if c.api == nil || len(image) == 0 {
		return fallbackAnalysis(nameHint)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	userText := "Analyze this product."
	if strings.TrimSpace(nameHint) != "" {
		userText = "Analyze this product. The seller calls it: " + strings.TrimSpace(nameHint)
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	callCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()
	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: visionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userText},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		log.Warn().Err(err).Msg("image analysis failed, using fallback")
		return fallbackAnalysis(nameHint)
	}
	if len(resp.Choices) == 0 {
		log.Warn().Msg("image analysis returned no choices, using fallback")
		return fallbackAnalysis(nameHint)
	}
	a, err := parseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		log.Warn().Err(err).Msg("image analysis reply rejected, using fallback")
		return fallbackAnalysis(nameHint)
	}
	return a
}

// parseAnalysis validates the model reply against the expected shape.
// Anything that does not decode into the exact schema, or misses the
// required fields, is rejected rather than trusted.
func parseAnalysis(content string) (domain.PricingAnalysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var a domain.PricingAnalysis
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return domain.PricingAnalysis{}, err
	}
	if strings.TrimSpace(a.ProductName) == "" {
		return domain.PricingAnalysis{}, errMissing("productName")
	}
	if strings.TrimSpace(a.Category) == "" {
		return domain.PricingAnalysis{}, errMissing("category")
	}
	if a.ComplexityScore < 0 {
		a.ComplexityScore = 0
	}
	if a.ComplexityScore > 1 {
		a.ComplexityScore = 1
	}
	if a.DominantColors == nil {
		a.DominantColors = []string{}
	}
	if a.EstimatedPriceUSD != nil && *a.EstimatedPriceUSD <= 0 {
		a.EstimatedPriceUSD = nil
	}
	return a, nil
}

type errMissing string

func (e errMissing) Error() string { return "analysis missing field: " + string(e) }

// Chat relays one stylist turn with the prior history. On any failure the
// reply is a fixed apology.
func (c *Client) Chat(ctx context.Context, message string, history []domain.ChatTurn) string {
	if c.api == nil || strings.TrimSpace(message) == "" {
		return apologyReply
	}
	msgs := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: stylistPrompt}}
	for _, t := range history {
		role := openai.ChatMessageRoleUser
		if t.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       chatModel,
		Messages:    msgs,
		Temperature: 0.7,
		MaxTokens:   400,
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Warn().Err(err).Msg("stylist chat failed, using apology reply")
		return apologyReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return apologyReply
	}
	return reply
}
