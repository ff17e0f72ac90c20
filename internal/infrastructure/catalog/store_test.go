package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist/backend/internal/domain"
)

const testPath = "data/products.json"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := NewStore(fs, testPath, zerolog.Nop())
	store.Load()
	return store, fs
}

func readCatalogFile(t *testing.T, fs afero.Fs) []domain.Product {
	t.Helper()
	raw, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	return products
}

func TestStore_LoadSeedsMissingFile(t *testing.T) {
	store, fs := newTestStore(t)

	assert.Equal(t, len(SeedProducts()), store.Len())
	assert.NoError(t, store.LastSaveError())
	assert.True(t, store.Exists())

	onDisk := readCatalogFile(t, fs)
	assert.Len(t, onDisk, store.Len())
	assert.Equal(t, "Nike Air Max Running Shoes", onDisk[0].Name)
}

func TestStore_LoadExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `[{"id": 7, "name": "Café Mug", "description": "Ceramic mug", "price": 12.5, "category": "home", "brand": "Acme", "image_url": "", "tags": ["kitchen"]}]`
	require.NoError(t, afero.WriteFile(fs, testPath, []byte(content), 0o644))

	store := NewStore(fs, testPath, zerolog.Nop())
	store.Load()

	products, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].ID)
	assert.Equal(t, "Café Mug", products[0].Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(products[0].Price))
}

func TestStore_LoadCorruptFileFallsBackToSeed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", "{not json"},
		{"null document", "null"},
		{"empty file", ""},
		{"object instead of list", `{"id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, testPath, []byte(tt.content), 0o644))

			store := NewStore(fs, testPath, zerolog.Nop())
			store.Load()

			assert.Equal(t, len(SeedProducts()), store.Len())
			assert.Len(t, readCatalogFile(t, fs), len(SeedProducts()))
		})
	}
}

func TestStore_LoadReportsWhyItSeeded(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantLog string
	}{
		{"missing file", nil, "catalog file missing"},
		{"corrupt file", ptr("{oops"), "catalog file unreadable or corrupt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.content != nil {
				require.NoError(t, afero.WriteFile(fs, testPath, []byte(*tt.content), 0o644))
			}
			var logs bytes.Buffer

			store := NewStore(fs, testPath, zerolog.New(&logs))
			store.Load()

			assert.Contains(t, logs.String(), tt.wantLog)
			assert.True(t, store.Exists())
		})
	}
}

func ptr(s string) *string { return &s }

func TestStore_WritesReadableJSON(t *testing.T) {
	store, fs := newTestStore(t)

	_, err := store.Add(context.Background(), domain.Product{Name: "Café Crème <Deluxe>", Price: decimal.NewFromInt(4)})
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, `"name": "Café Crème <Deluxe>"`)
	assert.NotContains(t, text, `\u00e9`)
	assert.NotContains(t, text, `\u003c`)
	assert.Contains(t, text, "\n    {\n        \"id\": 1,")
	assert.Contains(t, text, `"tags": []`)
}

func TestStore_EmptyTagsStayEmpty(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, domain.Product{Name: "Plain", Tags: []string{}})
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Tags)

	empty := []string{}
	updated, err := store.Update(ctx, 1, domain.ProductUpdate{Tags: &empty})
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Tags)

	all, err := store.All(ctx)
	require.NoError(t, err)
	for _, p := range all {
		assert.NotNil(t, p.Tags, "product %d", p.ID)
	}

	raw, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"tags": null`)
}

func TestStore_AddAssignsNextID(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()

	id, err := store.Add(ctx, domain.Product{
		ID:       999,
		Name:     "Trail Socks",
		Price:    decimal.RequireFromString("9.99"),
		Category: domain.CategoryClothing,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trail Socks", got.Name)
	assert.NotNil(t, got.Tags)

	onDisk := readCatalogFile(t, fs)
	assert.Equal(t, 11, onDisk[len(onDisk)-1].ID)
}

func TestStore_AddToEmptyCatalogStartsAtOne(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("[]"), 0o644))
	store := NewStore(fs, testPath, zerolog.Nop())
	store.Load()

	id, err := store.Add(context.Background(), domain.Product{Name: "First"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestStore_Update(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()

	price := decimal.RequireFromString("99.00")
	name := "Nike Air Max Sale"

	tests := []struct {
		name    string
		id      int
		update  domain.ProductUpdate
		wantErr error
	}{
		{
			name:   "update name and price",
			id:     1,
			update: domain.ProductUpdate{Name: &name, Price: &price},
		},
		{
			name:    "unknown id",
			id:      404,
			update:  domain.ProductUpdate{Name: &name},
			wantErr: domain.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Update(ctx, tt.id, tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, name, got.Name)
			assert.True(t, price.Equal(got.Price))
			assert.Equal(t, domain.CategorySports, got.Category)
		})
	}

	onDisk := readCatalogFile(t, fs)
	assert.Equal(t, name, onDisk[0].Name)
}

func TestStore_Delete(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()
	before := store.Len()

	require.NoError(t, store.Delete(ctx, 3))
	assert.Equal(t, before-1, store.Len())

	_, err := store.Get(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = store.Delete(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, before-1, store.Len())

	for _, p := range readCatalogFile(t, fs) {
		assert.NotEqual(t, 3, p.ID)
	}
}

func TestStore_AllReturnsIndependentCopies(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	products, err := store.All(ctx)
	require.NoError(t, err)
	products[0].Name = "mutated"
	products[0].Tags[0] = "mutated"

	again, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Name)
	assert.NotEqual(t, "mutated", again[0].Tags[0])
}

func TestStore_Reset(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 1))
	store.Reset()

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Nike Air Max Running Shoes", got.Name)
}

func TestStore_SaveFailureKeepsMutation(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, testPath, zerolog.Nop())
	store.Load()

	store.fs = afero.NewReadOnlyFs(fs)
	id, err := store.Add(context.Background(), domain.Product{Name: "Unsaved"})
	require.NoError(t, err)

	assert.Equal(t, len(SeedProducts())+1, store.Len())
	saveErr := store.LastSaveError()
	require.Error(t, saveErr)
	assert.True(t, errors.Is(saveErr, domain.ErrPersistence))
	assert.ErrorIs(t, store.Save(), domain.ErrPersistence)

	got, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Unsaved", got.Name)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Add(ctx, domain.Product{Name: "Concurrent"})
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, len(SeedProducts())+workers, store.Len())
}

func TestStore_CanceledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.All(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
