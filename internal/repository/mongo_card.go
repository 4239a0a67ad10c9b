package repository

import (
	"context"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCardRepository handles card persistence in MongoDB.
type MongoCardRepository struct {
	coll *mongo.Collection
}

// NewMongoCardRepository creates a new MongoCardRepository.
func NewMongoCardRepository(db *mongo.Database) *MongoCardRepository {
	return &MongoCardRepository{coll: db.Collection(cardsCollection)}
}

// Create inserts a new card.
func (r *MongoCardRepository) Create(ctx context.Context, card *model.Card) error {
	now := time.Now().UTC()
	doc := *card
	doc.ID = model.NewID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoError(err)
	}

	*card = doc
	return nil
}

// GetByID returns the card with the given id, or ErrNotFound.
func (r *MongoCardRepository) GetByID(ctx context.Context, id model.ID) (*model.Card, error) {
	return findOne[model.Card](ctx, r.coll, bson.M{"_id": id})
}

// List returns matching cards, newest first.
func (r *MongoCardRepository) List(ctx context.Context, filter model.CardFilter) ([]model.Card, error) {
	return findAll[model.Card](ctx, r.coll, cardFilterDoc(filter))
}

func cardFilterDoc(filter model.CardFilter) bson.M {
	doc := bson.M{}
	if filter.BloodType != "" {
		doc["bloodType"] = filter.BloodType
	}
	if filter.Status != "" {
		doc["status"] = filter.Status
	}
	if filter.Location != "" {
		doc["location"] = containsFold(filter.Location)
	}
	return doc
}

// Update applies patch and returns the updated card.
func (r *MongoCardRepository) Update(ctx context.Context, id model.ID, patch model.CardPatch) (*model.Card, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.BloodType != nil {
		set["bloodType"] = *patch.BloodType
	}
	if patch.MobilePhone != nil {
		set["mobilePhone"] = *patch.MobilePhone
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	return updateOne[model.Card](ctx, r.coll, id, set)
}

// Delete removes the card and returns it.
func (r *MongoCardRepository) Delete(ctx context.Context, id model.ID) (*model.Card, error) {
	return deleteOne[model.Card](ctx, r.coll, id)
}
