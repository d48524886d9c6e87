package domain

// PricingAnalysis is the transient result of one image-classification call.
// It is consumed once, to seed price normalization, and never persisted.
type PricingAnalysis struct {
	ProductName       string   `json:"productName"`
	Category          string   `json:"category"`
	Reasoning         string   `json:"reasoning"`
	DominantColors    []string `json:"dominantColors"`
	ComplexityScore   float64  `json:"complexityScore"`
	EstimatedPriceUSD *float64 `json:"estimatedPriceUSD,omitempty"`
}

// ChatTurn is one prior exchange in the stylist conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
