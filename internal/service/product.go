package service

import (
	"context"
	"errors"
	"time"

	"github.com/lifeline/lifeline-api/internal/input"
	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

// ProductService manages the sample product catalogue. It has no ownership rules.
type ProductService struct {
	products ProductStore
	now      func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products, now: time.Now}
}

// Create stores a new product. Name and price are required.
func (s *ProductService) Create(ctx context.Context, body input.Body) (*model.Product, error) {
	name := body.String(input.Name)
	priceText := body.String(input.PriceField)

	var req input.Required
	req.Check(input.Name.Name(), name)
	req.Check(input.PriceField.Name(), priceText)
	if err := req.Err(); err != nil {
		return nil, err
	}

	v, _, _ := body.Lookup(input.PriceField)
	price, err := input.Price(v)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := &model.Product{
		ID:          model.NewID(),
		Name:        name,
		Price:       price,
		Description: body.String(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List returns every product, newest first.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

// Get returns the product with the given hex id.
func (s *ProductService) Get(ctx context.Context, rawID string) (*model.Product, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, ErrInvalidProductID
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, productError(err)
	}
	return product, nil
}

// Update applies the fields present in body to the product.
func (s *ProductService) Update(ctx context.Context, rawID string, body input.Body) (*model.Product, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	patch := model.ProductPatch{
		Name:        body.OptString(input.Name),
		Description: body.OptString(input.Description),
	}

	var req input.Required
	req.CheckSet(input.Name.Name(), patch.Name)
	if err := req.Err(); err != nil {
		return nil, err
	}

	if v, _, ok := body.Lookup(input.PriceField); ok {
		price, err := input.Price(v)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}

	if patch.Empty() {
		return s.Get(ctx, rawID)
	}

	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, productError(err)
	}
	return product, nil
}

// Delete removes the product and returns it.
func (s *ProductService) Delete(ctx context.Context, rawID string) (*model.Product, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, ErrInvalidProductID
	}
	product, err := s.products.Delete(ctx, id)
	if err != nil {
		return nil, productError(err)
	}
	return product, nil
}

func productError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}
