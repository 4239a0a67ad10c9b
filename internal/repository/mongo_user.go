package repository

import (
	"context"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepository handles user persistence in MongoDB.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// Create inserts a new user, assigning its ID and timestamps.
func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	doc := *user
	doc.ID = model.NewID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoError(err)
	}

	*user = doc
	return nil
}

// GetByPhone retrieves a user, including the password hash, by normalized phone.
func (r *MongoUserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return findOne[model.User](ctx, r.coll, bson.M{"phone": phone})
}

// GetByID retrieves a user by their ID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id model.ID) (*model.User, error) {
	return findOne[model.User](ctx, r.coll, bson.M{"_id": id})
}
