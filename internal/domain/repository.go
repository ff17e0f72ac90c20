package domain

import (
	"context"
	"time"
)

// CatalogRepository is the product catalog consumed by the recommendation engine
type CatalogRepository interface {
	All(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Add(ctx context.Context, product Product) (int, error)
	Update(ctx context.Context, id int, update ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id int) error
}

// CacheRepository defines the interface for caching generated responses
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TextGenerator is the external generative-language service
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	DescribeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}
