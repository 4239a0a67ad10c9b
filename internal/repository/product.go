package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
)

const productColumns = `id, name, price, description, created_at, updated_at`

// ProductRepository handles product persistence in MySQL.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	id := model.NewID()

	_, err := r.db.ExecContext(ctx, query, id.Hex(), product.Name, product.Price, product.Description, now, now)
	if err != nil {
		return err
	}

	product.ID = id
	product.CreatedAt = now
	product.UpdatedAt = now
	return nil
}

// GetByID returns the product with the given id, or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id model.ID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id.Hex()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns every product, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

// Update applies patch and returns the updated product.
func (r *ProductRepository) Update(ctx context.Context, id model.ID, patch model.ProductPatch) (*model.Product, error) {
	set := &setClause{}
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Price != nil {
		set.add("price", *patch.Price)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	set.add("updated_at", time.Now().UTC())

	query := `UPDATE products SET ` + set.sql() + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, append(set.args, id.Hex())...); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes the product and returns it.
func (r *ProductRepository) Delete(ctx context.Context, id model.ID) (*model.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id.Hex())
	if err != nil {
		return nil, err
	}
	if err := deleted(result); err != nil {
		return nil, err
	}
	return product, nil
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var rawID string
	product := &model.Product{}
	err := row.Scan(&rawID, &product.Name, &product.Price, &product.Description, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if product.ID, err = parseRowID(rawID); err != nil {
		return nil, err
	}
	return product, nil
}
