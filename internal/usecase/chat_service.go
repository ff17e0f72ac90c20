package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopassist/backend/internal/domain"
)

// DefaultImagePrompt is sent with uploaded images when the caller gives no prompt
const DefaultImagePrompt = "What products do you see?"

// Package-level compiled regex patterns for cache keys
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

type intentPattern struct {
	intent   domain.Intent
	patterns []*regexp.Regexp
}

// intentPatterns are checked in order; the first matching intent wins
var intentPatterns = []intentPattern{
	{domain.IntentGreeting, []*regexp.Regexp{
		regexp.MustCompile(`\b(hi|hello|hey|good morning|good afternoon|good evening)\b`),
		regexp.MustCompile(`\b(how are you|how's it going)\b`),
	}},
	{domain.IntentIdentity, []*regexp.Regexp{
		regexp.MustCompile(`\b(what's your name|who are you|what do you call yourself)\b`),
		regexp.MustCompile(`\b(are you a bot|are you ai|are you artificial intelligence)\b`),
	}},
	{domain.IntentCapabilities, []*regexp.Regexp{
		regexp.MustCompile(`\b(what can you do|what are your features|help|what do you offer)\b`),
		regexp.MustCompile(`\b(how do you work|how can you help me)\b`),
	}},
	{domain.IntentThanks, []*regexp.Regexp{
		regexp.MustCompile(`\b(thank you|thanks|thx|appreciate it)\b`),
	}},
	{domain.IntentGoodbye, []*regexp.Regexp{
		regexp.MustCompile(`\b(bye|goodbye|see you|farewell|exit|quit)\b`),
	}},
}

// productSearchKeywords mark a query as a product search when no conversational intent matched
var productSearchKeywords = []string{
	"recommend", "search", "find", "show", "buy", "purchase", "looking for", "need",
}

var cannedResponses = map[domain.Intent][]string{
	domain.IntentGreeting: {
		"Hello! I'm your AI shopping assistant. How can I help you today?",
		"Hi there! I'm here to help you find the perfect products. What are you looking for?",
		"Greetings! I'm your personal shopping companion. How may I assist you?",
	},
	domain.IntentIdentity: {
		"I'm ShopBot, your AI-powered shopping assistant! I can help you find products, make recommendations, and answer questions about our catalog.",
		"My name is ShopBot! I'm an AI agent designed to make your shopping experience easier and more enjoyable.",
		"I'm ShopBot, your intelligent shopping companion. I can search products, provide recommendations, and help you make informed decisions.",
	},
	domain.IntentCapabilities: {
		"I can help you with:\n• Product recommendations based on your needs\n• Searching for specific items\n• Answering questions about products\n• Simulating image-based searches\n• General shopping assistance\n\nJust tell me what you're looking for!",
		"Here's what I can do for you:\n• Find products that match your requirements\n• Recommend items based on your preferences\n• Help you discover new products\n• Answer questions about our catalog\n• Assist with your shopping decisions\n\nWhat would you like to explore?",
		"My capabilities include:\n• Intelligent product search and recommendations\n• Natural conversation about shopping\n• Image-based product discovery (simulated)\n• Personalized shopping assistance\n• Product information and details\n\nHow can I help you today?",
	},
	domain.IntentThanks: {
		"You're welcome! I'm happy to help. Is there anything else you'd like to know?",
		"My pleasure! Feel free to ask if you need any more assistance.",
		"Glad I could help! Don't hesitate to reach out if you have more questions.",
	},
	domain.IntentGoodbye: {
		"Goodbye! Happy shopping! Come back anytime you need assistance.",
		"See you later! I hope you found what you were looking for.",
		"Take care! I'll be here when you need shopping help again.",
	},
	domain.IntentProductSearch: {
		"I'd be happy to help you find products! Could you tell me more specifically what you're looking for?",
		"Great! I can help you discover the perfect products. What type of item are you interested in?",
		"Perfect! I'm here to help you find exactly what you need. What are you searching for?",
	},
	domain.IntentGeneral: {
		"I'm here to help with your shopping needs! You can ask me to recommend products, search for specific items, or just chat about shopping.",
		"I'm your shopping assistant! Feel free to ask me about products, recommendations, or any shopping-related questions.",
		"I'm here to make your shopping experience better! What would you like to know about our products?",
	},
}

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	CacheTTL time.Duration
}

// ChatService answers conversational queries and proxies agent requests to the
// generative-language service. generator and cache may be nil.
type ChatService struct {
	recommender *RecommendationService
	generator   domain.TextGenerator
	cache       domain.CacheRepository
	sampler     *Sampler
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewChatService creates a new chat service with dependencies
func NewChatService(
	recommender *RecommendationService,
	generator domain.TextGenerator,
	cache domain.CacheRepository,
	sampler *Sampler,
	config ChatServiceConfig,
	logger zerolog.Logger,
) *ChatService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if sampler == nil {
		sampler = NewSampler(0)
	}

	return &ChatService{
		recommender: recommender,
		generator:   generator,
		cache:       cache,
		sampler:     sampler,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "chat").Logger(),
	}
}

// DetectIntent classifies a chat query by the first matching conversational pattern,
// then by product keywords; anything else is general conversation.
func DetectIntent(query string) domain.Intent {
	queryLower := strings.ToLower(query)
	for _, ip := range intentPatterns {
		for _, pattern := range ip.patterns {
			if pattern.MatchString(queryLower) {
				return ip.intent
			}
		}
	}
	if containsAnyWord(queryLower, productSearchKeywords) {
		return domain.IntentProductSearch
	}
	return domain.IntentGeneral
}

// Reply answers a chat query with a canned response for its intent plus recommendations
func (s *ChatService) Reply(ctx context.Context, query string) (*domain.ChatReply, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	intent := DetectIntent(query)
	reply := &domain.ChatReply{
		Response: s.sampler.Choice(cannedResponses[intent]),
		Intent:   intent,
	}

	recommendations, err := s.recommender.Recommend(ctx, query, 0)
	if err != nil {
		return nil, err
	}
	reply.Products = recommendations.Products
	return reply, nil
}

// AgentChat sends the query to the generative-language service and recommends products
// for the generated text. Generated text is cached by normalized query.
func (s *ChatService) AgentChat(ctx context.Context, query string) (*domain.ChatReply, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.generator == nil {
		return nil, domain.ErrServiceNotConfigured
	}

	cacheKey := generateCacheKey("agent_chat", query)
	response, err := s.getFromCache(ctx, cacheKey)
	if err != nil {
		response, err = s.generator.GenerateText(ctx, query)
		if err != nil {
			return nil, err
		}
		if err := s.setInCache(ctx, cacheKey, response); err != nil {
			// Log but don't fail if caching fails
			s.logger.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache generated response")
		}
	}

	recommendations, err := s.recommender.Recommend(ctx, response, 0)
	if err != nil {
		return nil, err
	}
	return &domain.ChatReply{Response: response, Products: recommendations.Products}, nil
}

// AgentImage asks the generative-language service to describe an image
func (s *ChatService) AgentImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	if len(image) == 0 {
		return "", domain.ErrInvalidRequest
	}
	if s.generator == nil {
		return "", domain.ErrServiceNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultImagePrompt
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return s.generator.DescribeImage(ctx, image, mimeType, prompt)
}

// generateCacheKey creates a normalized cache key. Format: "{scope}:{normalized_text}"
func generateCacheKey(scope, text string) string {
	return fmt.Sprintf("%s:%s", scope, normalizeForCacheKey(text))
}

// normalizeForCacheKey converts to lowercase, removes special characters and collapses whitespace
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func (s *ChatService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.cache == nil {
		return "", domain.ErrCacheMiss
	}
	return s.cache.Get(ctx, key)
}

func (s *ChatService) setInCache(ctx context.Context, key, value string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, value, s.cacheTTL)
}
