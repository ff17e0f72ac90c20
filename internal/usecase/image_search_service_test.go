package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist/backend/internal/domain"
)

func newTestImageSearch(catalog domain.CatalogRepository) *ImageSearchService {
	logger := zerolog.Nop()
	return NewImageSearchService(catalog, NewTextNormalizer(logger), NewSampler(3), RecommendationConfig{}, logger)
}

func TestImageSearchService_SearchByDescription(t *testing.T) {
	service := newTestImageSearch(&fakeCatalog{products: testProducts()})

	result, err := service.SearchByDescription(context.Background(), "A blue denim jacket")
	require.NoError(t, err)

	require.NotEmpty(t, result.Products)
	assert.Equal(t, 2, result.Products[0].ID)
	assert.LessOrEqual(t, len(result.Products), imageSearchLimit)
	assert.Equal(t, domain.CategoryClothing, result.Features.Category)
	assert.Equal(t, []string{"color:blue", "material:denim"}, result.Features.Attributes)
}

func TestImageSearchService_SearchByDescription_VectorizationFallback(t *testing.T) {
	catalog := &fakeCatalog{products: []domain.Product{
		{ID: 1, Name: "It", Description: "is"},
		{ID: 2, Name: "Other", Description: "than"},
	}}
	service := newTestImageSearch(catalog)

	result, err := service.SearchByDescription(context.Background(), "it is")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(result.Products))
}

func TestImageSearchService_SearchByDescription_EdgeCases(t *testing.T) {
	t.Run("blank description", func(t *testing.T) {
		service := newTestImageSearch(&fakeCatalog{products: testProducts()})

		_, err := service.SearchByDescription(context.Background(), "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("empty catalog keeps features", func(t *testing.T) {
		service := newTestImageSearch(&fakeCatalog{})

		result, err := service.SearchByDescription(context.Background(), "red leather boots")
		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.Equal(t, domain.CategoryClothing, result.Features.Category)
	})

	t.Run("catalog error", func(t *testing.T) {
		catalogErr := errors.New("unavailable")
		service := newTestImageSearch(&fakeCatalog{err: catalogErr})

		_, err := service.SearchByDescription(context.Background(), "lamp")
		assert.ErrorIs(t, err, catalogErr)
	})
}

func TestImageSearchService_SearchByFilename(t *testing.T) {
	service := newTestImageSearch(&fakeCatalog{products: testProducts()})

	tests := []struct {
		name     string
		filename string
		wantIDs  []int
	}{
		{"keywords from separators", "denim_jacket.png", []int{2}},
		{"several products", "wood_headphones.jpg", []int{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := service.SearchByFilename(context.Background(), tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(products))
		})
	}
}

func TestImageSearchService_SearchByFilename_RandomFallback(t *testing.T) {
	service := newTestImageSearch(&fakeCatalog{products: testProducts()})

	products, err := service.SearchByFilename(context.Background(), "zzz.qqq")
	require.NoError(t, err)
	require.Len(t, products, uploadFallbackCount)

	seen := make(map[int]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "product %d repeated", p.ID)
		seen[p.ID] = true
	}

	_, err = service.SearchByFilename(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
