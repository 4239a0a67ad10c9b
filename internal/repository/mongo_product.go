package repository

import (
	"context"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProductRepository stores products in the products collection.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productsCollection)}
}

// Create inserts a new product.
func (r *MongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	doc := *product
	doc.ID = model.NewID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoError(err)
	}

	*product = doc
	return nil
}

// GetByID returns the product with the given id, or ErrNotFound.
func (r *MongoProductRepository) GetByID(ctx context.Context, id model.ID) (*model.Product, error) {
	return findOne[model.Product](ctx, r.coll, bson.M{"_id": id})
}

// List returns every product, newest first.
func (r *MongoProductRepository) List(ctx context.Context) ([]model.Product, error) {
	return findAll[model.Product](ctx, r.coll, bson.M{})
}

// Update applies patch and returns the updated product.
func (r *MongoProductRepository) Update(ctx context.Context, id model.ID, patch model.ProductPatch) (*model.Product, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return updateOne[model.Product](ctx, r.coll, id, set)
}

// Delete removes the product and returns it.
func (r *MongoProductRepository) Delete(ctx context.Context, id model.ID) (*model.Product, error) {
	return deleteOne[model.Product](ctx, r.coll, id)
}
