package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shopassist/backend/internal/domain"
)

// fakeCatalog is an in-memory domain.CatalogRepository for service tests
type fakeCatalog struct {
	products []domain.Product
	err      error
}

func (f *fakeCatalog) All(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	products := make([]domain.Product, len(f.products))
	for i, p := range f.products {
		products[i] = p.Clone()
	}
	return products, nil
}

func (f *fakeCatalog) Get(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			product := p.Clone()
			return &product, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeCatalog) Add(ctx context.Context, product domain.Product) (int, error) {
	return 0, errors.New("not supported")
}

func (f *fakeCatalog) Update(ctx context.Context, id int, update domain.ProductUpdate) (*domain.Product, error) {
	return nil, errors.New("not supported")
}

func (f *fakeCatalog) Delete(ctx context.Context, id int) error {
	return errors.New("not supported")
}

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Name: "Trail Runner", Description: "Lightweight trail running shoe with a grippy sole",
			Price: decimal.RequireFromString("89.90"), Category: domain.CategorySports, Brand: "Peak",
			Tags: []string{"running", "trail"},
		},
		{
			ID: 2, Name: "Denim Jacket", Description: "Classic blue jacket with brass buttons",
			Price: decimal.RequireFromString("59.00"), Category: domain.CategoryClothing, Brand: "Indigo",
			Tags: []string{"jacket", "casual"},
		},
		{
			ID: 3, Name: "Noise Cancelling Headphones", Description: "Wireless over-ear headphones with long battery life",
			Price: decimal.RequireFromString("199.99"), Category: domain.CategoryElectronics, Brand: "Sonic",
			Tags: []string{"audio", "wireless"},
		},
		{
			ID: 4, Name: "Oak Desk", Description: "Solid wood desk for the office",
			Price: decimal.RequireFromString("240.00"), Category: domain.CategoryHome, Brand: "Grove",
			Tags: []string{"wood", "office"},
		},
	}
}

func productsWithout(category string) []domain.Product {
	var kept []domain.Product
	for _, p := range testProducts() {
		if p.Category != category {
			kept = append(kept, p)
		}
	}
	return kept
}

func ids(products []domain.Product) []int {
	result := make([]int, len(products))
	for i, p := range products {
		result[i] = p.ID
	}
	return result
}

// mockGenerator is a mock implementation of domain.TextGenerator
type mockGenerator struct {
	text       string
	err        error
	calls      int
	lastPrompt string
	lastMime   string
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.text, m.err
}

func (m *mockGenerator) DescribeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastMime = mimeType
	return m.text, m.err
}

// mockCacheRepository is a mock implementation of domain.CacheRepository
type mockCacheRepository struct {
	data   map[string]string
	setErr error
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{data: make(map[string]string)}
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return "", domain.ErrCacheMiss
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func newTestRecommender(products []domain.Product) *RecommendationService {
	return NewRecommendationService(&fakeCatalog{products: products}, NewSampler(11), RecommendationConfig{}, zerolog.Nop())
}
