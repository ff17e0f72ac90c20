package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopassist/backend/internal/domain"
)

// Image search limits
const (
	imageSearchLimit    = 5
	uploadFallbackCount = 3
)

// filenameSeparators turns "red_running-shoes.jpg" into "red running-shoes jpg"
var filenameSeparators = strings.NewReplacer(".", " ", "_", " ")

// ImageSearchService simulates image search: a text description (or an uploaded file's
// name) stands in for the image content.
type ImageSearchService struct {
	catalog    domain.CatalogRepository
	normalizer *TextNormalizer
	features   *FeatureExtractor
	ranker     *SimilarityRanker
	sampler    *Sampler
	threshold  float64
	logger     zerolog.Logger
}

// NewImageSearchService creates a new image search service with dependencies
func NewImageSearchService(
	catalog domain.CatalogRepository,
	normalizer *TextNormalizer,
	sampler *Sampler,
	config RecommendationConfig,
	logger zerolog.Logger,
) *ImageSearchService {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if sampler == nil {
		sampler = NewSampler(0)
	}

	return &ImageSearchService{
		catalog:    catalog,
		normalizer: normalizer,
		features:   NewFeatureExtractor(),
		ranker:     NewSimilarityRanker(config.MaxFeatures),
		sampler:    sampler,
		threshold:  threshold,
		logger:     logger.With().Str("component", "image_search").Logger(),
	}
}

// SearchByDescription matches a description of an image against the catalog.
// Both sides are normalized; the extracted category, if any, is appended to every product text.
// On a vectorization fault it falls back to matching any description word.
func (s *ImageSearchService) SearchByDescription(ctx context.Context, description string) (*domain.ImageSearchResult, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrInvalidRequest
	}

	products, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	features := s.features.Extract(description)
	result := &domain.ImageSearchResult{Products: []domain.Product{}, Features: features}
	if len(products) == 0 {
		return result, nil
	}

	documents := make([]string, len(products))
	for i, p := range products {
		text := p.KeywordText()
		if features.Category != "" {
			text += " " + features.Category
		}
		documents[i] = s.normalizer.Normalize(text)
	}

	scored, err := s.ranker.Rank(s.normalizer.Normalize(description), documents, imageSearchLimit, s.threshold)
	if err == nil {
		result.Products = pick(products, scored)
		return result, nil
	}
	if !errors.Is(err, domain.ErrVectorization) {
		return nil, err
	}

	s.logger.Warn().Err(err).Str("description", description).Msg("image description ranking failed, using keyword match")
	words := strings.Fields(strings.ToLower(description))
	for _, p := range products {
		if containsAnyWord(strings.ToLower(p.KeywordText()), words) {
			result.Products = append(result.Products, p)
			if len(result.Products) == imageSearchLimit {
				break
			}
		}
	}
	return result, nil
}

// SearchByFilename simulates object detection from an uploaded file's name: every product whose
// name or description contains a filename keyword matches. Without matches a random sample is returned.
func (s *ImageSearchService) SearchByFilename(ctx context.Context, filename string) ([]domain.Product, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, domain.ErrInvalidRequest
	}

	products, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	keywords := strings.Fields(filenameSeparators.Replace(strings.ToLower(filename)))
	matches := []domain.Product{}
	for _, p := range products {
		if containsAnyWord(strings.ToLower(p.KeywordText()), keywords) {
			matches = append(matches, p)
		}
	}
	if len(matches) > 0 {
		return matches, nil
	}

	s.logger.Debug().Str("filename", filename).Msg("no filename keyword matched, sampling catalog")
	for _, idx := range s.sampler.Indices(len(products), uploadFallbackCount) {
		matches = append(matches, products[idx])
	}
	return matches, nil
}
