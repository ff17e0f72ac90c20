package domain

// Strategy names the stage of the fallback chain that produced a result
type Strategy string

const (
	StrategySimilarity Strategy = "similarity"
	StrategyKeyword    Strategy = "keyword"
	StrategyCategory   Strategy = "category"
	StrategyRandom     Strategy = "random"
	StrategyNone       Strategy = "none" // empty catalog
)

// RecommendationResult is an ordered list of products, most relevant first
type RecommendationResult struct {
	Products []Product `json:"products"`
	Strategy Strategy  `json:"strategy"`
}

// Intent is the conversational intent detected for a chat query
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentIdentity      Intent = "identity"
	IntentCapabilities  Intent = "capabilities"
	IntentThanks        Intent = "thanks"
	IntentGoodbye       Intent = "goodbye"
	IntentProductSearch Intent = "product_search"
	IntentGeneral       Intent = "general"
)

// ChatReply is the assistant's answer to a chat query
type ChatReply struct {
	Response string    `json:"response"`
	Intent   Intent    `json:"intent,omitempty"`
	Products []Product `json:"products,omitempty"`
}

// ImageSearchResult holds the products matched for an image description
type ImageSearchResult struct {
	Products []Product       `json:"products"`
	Features ProductFeatures `json:"features"`
}
