package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/shopassist/backend/internal/domain"
)

// Store is a file-backed product catalog. Every mutation rewrites the whole file.
// A single mutex guards read-modify-persist so concurrent writers cannot interleave.
type Store struct {
	fs      afero.Fs
	path    string
	logger  zerolog.Logger
	mutex   sync.RWMutex
	data    []domain.Product
	saveErr error
}

// NewStore creates an empty store persisted at path on fs. Call Load before use.
func NewStore(fs afero.Fs, path string, logger zerolog.Logger) *Store {
	return &Store{
		fs:     fs,
		path:   path,
		logger: logger.With().Str("component", "catalog").Str("path", path).Logger(),
	}
}

// Load reads the catalog file. A missing or unreadable file never fails the caller:
// the seed catalog is installed and persisted instead.
func (s *Store) Load() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	products, err := s.read()
	if err != nil {
		if s.Exists() {
			s.logger.Warn().Err(err).Msg("catalog file unreadable or corrupt, replacing with sample catalog")
		} else {
			s.logger.Info().Msg("catalog file missing, creating sample catalog")
		}
		s.data = SeedProducts()
		s.persist()
		return
	}

	s.data = products
	s.logger.Info().Int("count", len(products)).Msg("loaded products from catalog")
}

// Reset replaces the catalog with the seed products and persists it
func (s *Store) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data = SeedProducts()
	s.persist()
}

// Save writes the full catalog to disk
func (s *Store) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.write()
}

// All returns an independent copy of every product in catalog order
func (s *Store) All(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	products := make([]domain.Product, len(s.data))
	for i, p := range s.data {
		products[i] = p.Clone()
	}
	return products, nil
}

// Get returns a copy of the product with id, or domain.ErrProductNotFound
func (s *Store) Get(ctx context.Context, id int) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		product := s.data[idx].Clone()
		return &product, nil
	}
	return nil, domain.ErrProductNotFound
}

// Add assigns the next id (max existing id + 1), appends the product and persists the catalog.
// Any id set on product is ignored.
func (s *Store) Add(ctx context.Context, product domain.Product) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	maxID := 0
	for _, p := range s.data {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	product = product.Clone()
	product.ID = maxID + 1
	if product.Tags == nil {
		product.Tags = []string{}
	}
	s.data = append(s.data, product)
	s.persist()

	s.logger.Info().Int("id", product.ID).Str("name", product.Name).Msg("added product")
	return product.ID, nil
}

// Update merges the set fields of update into the product with id and persists the catalog
func (s *Store) Update(ctx context.Context, id int, update domain.ProductUpdate) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}

	update.Apply(&s.data[idx])
	s.persist()

	s.logger.Info().Int("id", id).Msg("updated product")
	updated := s.data[idx].Clone()
	return &updated, nil
}

// Delete removes every product with id and persists the catalog.
// Returns domain.ErrProductNotFound, leaving the catalog untouched, when nothing matched.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	kept := s.data[:0:0]
	for _, p := range s.data {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(s.data) {
		return domain.ErrProductNotFound
	}

	s.data = kept
	s.persist()

	s.logger.Info().Int("id", id).Msg("deleted product")
	return nil
}

// Len returns the number of products in the catalog
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// LastSaveError returns the error of the most recent persist, or nil if it succeeded
func (s *Store) LastSaveError() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.saveErr
}

func (s *Store) indexOf(id int) int {
	for i, p := range s.data {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) read() ([]domain.Product, error) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrPersistence, s.path, err)
	}
	if products == nil {
		return nil, fmt.Errorf("%w: decode %s: not a product list", domain.ErrPersistence, s.path)
	}
	for i := range products {
		if products[i].Tags == nil {
			products[i].Tags = []string{}
		}
	}
	return products, nil
}

// persist saves the catalog and swallows the error: the in-memory mutation stands even
// when the file could not be written. Callers must hold the write lock.
func (s *Store) persist() {
	s.saveErr = s.write()
	if s.saveErr != nil {
		s.logger.Error().Err(s.saveErr).Msg("failed to save catalog")
		return
	}
	s.logger.Debug().Int("count", len(s.data)).Msg("saved catalog")
}

// write encodes the catalog as indented UTF-8 JSON into a temp file and renames it over the target
func (s *Store) write() error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	products := s.data
	if products == nil {
		products = []domain.Product{}
	}
	if err := encoder.Encode(products); err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrPersistence, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Exists reports whether the catalog file is present
func (s *Store) Exists() bool {
	_, err := s.fs.Stat(s.path)
	return !os.IsNotExist(err)
}
