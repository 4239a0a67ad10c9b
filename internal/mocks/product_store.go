package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

// ProductStore is an in-memory product store.
type ProductStore struct {
	mu       sync.Mutex
	products []model.Product
	Err      error
}

// NewProductStore returns an empty ProductStore.
func NewProductStore() *ProductStore {
	return &ProductStore{}
}

// Create inserts a new product.
func (s *ProductStore) Create(_ context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.products = append(s.products, *product)
	return nil
}

// GetByID returns the product with the given id, or ErrNotFound.
func (s *ProductStore) GetByID(_ context.Context, id model.ID) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := s.products[i]
	return &p, nil
}

// List returns every product, newest first.
func (s *ProductStore) List(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return newestFirst(s.products, func(p model.Product) time.Time { return p.CreatedAt }), nil
}

// Update applies patch and returns the updated product.
func (s *ProductStore) Update(_ context.Context, id model.ID, patch model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := &s.products[i]
	set(&p.Name, patch.Name)
	set(&p.Price, patch.Price)
	set(&p.Description, patch.Description)
	p.UpdatedAt = time.Now().UTC()
	updated := *p
	return &updated, nil
}

// Delete removes the product and returns it.
func (s *ProductStore) Delete(_ context.Context, id model.ID) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	return &p, nil
}

func (s *ProductStore) index(id model.ID) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
