package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/shopassist/backend/internal/domain"
)

// DefaultRecommendationLimit is used when a caller passes a non-positive limit
const DefaultRecommendationLimit = 5

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	DefaultLimit        int
	SimilarityThreshold float64
	MaxFeatures         int
}

// RecommendationService ranks catalog products for a free-text query.
// Flow: similarity ranking -> keyword matching -> category slice -> random sample
type RecommendationService struct {
	catalog      domain.CatalogRepository
	ranker       *SimilarityRanker
	keywords     *KeywordMatcher
	classifier   *CategoryClassifier
	sampler      *Sampler
	defaultLimit int
	threshold    float64
	logger       zerolog.Logger
}

// NewRecommendationService creates a new recommendation service with dependencies
func NewRecommendationService(
	catalog domain.CatalogRepository,
	sampler *Sampler,
	config RecommendationConfig,
	logger zerolog.Logger,
) *RecommendationService {
	limit := config.DefaultLimit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	if sampler == nil {
		sampler = NewSampler(0)
	}

	return &RecommendationService{
		catalog:      catalog,
		ranker:       NewSimilarityRanker(config.MaxFeatures),
		keywords:     NewKeywordMatcher(),
		classifier:   NewCategoryClassifier(RecommendationCategoryRules),
		sampler:      sampler,
		defaultLimit: limit,
		threshold:    threshold,
		logger:       logger.With().Str("component", "recommender").Logger(),
	}
}

// Recommend returns up to limit products for query. The result is non-empty whenever
// the catalog is non-empty; errors come only from the catalog or a cancelled context.
func (s *RecommendationService) Recommend(ctx context.Context, query string, limit int) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	products, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return &domain.RecommendationResult{Products: []domain.Product{}, Strategy: domain.StrategyNone}, nil
	}

	if matches, strategy := s.rank(query, products, limit); len(matches) > 0 {
		return s.result(query, matches, strategy), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if category, ok := s.classifier.Classify(query); ok {
		if matches := filterByCategory(products, category, limit); len(matches) > 0 {
			return s.result(query, matches, domain.StrategyCategory), nil
		}
		s.logger.Debug().Str("category", category).Msg("category matched but has no products")
	}

	return s.result(query, s.sample(products, limit), domain.StrategyRandom), nil
}

// Search returns up to limit products ranked by similarity, falling back to keyword
// matching. Unlike Recommend it may return an empty result.
func (s *RecommendationService) Search(ctx context.Context, query string, limit int) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	products, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	matches, strategy := s.rank(query, products, limit)
	if len(products) == 0 {
		strategy = domain.StrategyNone
	}
	return s.result(query, matches, strategy), nil
}

// rank runs the similarity ranker and falls back to keyword matching on a
// vectorization fault or an empty ranking.
func (s *RecommendationService) rank(query string, products []domain.Product, limit int) ([]domain.Product, domain.Strategy) {
	if len(products) == 0 {
		return nil, domain.StrategyNone
	}

	documents := make([]string, len(products))
	for i, p := range products {
		documents[i] = p.SearchText()
	}

	scored, err := s.ranker.Rank(query, documents, limit, s.threshold)
	switch {
	case err == nil && len(scored) > 0:
		return pick(products, scored), domain.StrategySimilarity
	case errors.Is(err, domain.ErrVectorization):
		s.logger.Warn().Err(err).Str("query", query).Msg("similarity ranking failed, using keyword search")
	case err != nil:
		s.logger.Error().Err(err).Str("query", query).Msg("unexpected ranking error, using keyword search")
	}

	for i, p := range products {
		documents[i] = p.KeywordText()
	}
	return pick(products, s.keywords.Search(query, documents, limit)), domain.StrategyKeyword
}

// sample draws up to limit distinct products uniformly at random
func (s *RecommendationService) sample(products []domain.Product, limit int) []domain.Product {
	indices := s.sampler.Indices(len(products), limit)
	sampled := make([]domain.Product, 0, len(indices))
	for _, idx := range indices {
		sampled = append(sampled, products[idx])
	}
	return sampled
}

func (s *RecommendationService) result(query string, products []domain.Product, strategy domain.Strategy) *domain.RecommendationResult {
	if products == nil {
		products = []domain.Product{}
	}
	s.logger.Debug().
		Str("query", query).
		Str("strategy", string(strategy)).
		Int("count", len(products)).
		Msg("recommendation ready")
	return &domain.RecommendationResult{Products: products, Strategy: strategy}
}

// pick maps scored indices back to products, preserving rank order
func pick(products []domain.Product, scored []ScoredIndex) []domain.Product {
	picked := make([]domain.Product, 0, len(scored))
	for _, s := range scored {
		picked = append(picked, products[s.Index])
	}
	return picked
}

// filterByCategory returns up to limit products of category, in catalog order
func filterByCategory(products []domain.Product, category string, limit int) []domain.Product {
	var matches []domain.Product
	for _, p := range products {
		if p.Category == category {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}
