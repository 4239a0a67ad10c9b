package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	cardsCollection    = "cards"
	productsCollection = "products"
)

// NewMongo connects to MongoDB and pings the deployment.
func NewMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetName(uniquePhone)},
		},
		profilesCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true).SetName(uniqueUser)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(uniqueEmail)},
			{Keys: bson.D{{Key: "mobilePhone", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		cardsCollection: {
			{Keys: bson.D{{Key: "mobilePhone", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("creating indexes on %s: %w", coll, err)
		}
		slog.Debug("mongo indexes ready", "collection", coll, "indexes", names)
	}
	return nil
}

// newestFirst sorts a find by creation time, latest first.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// containsFold matches s anywhere in a string field, ignoring case.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// mongoError maps driver errors onto the repository sentinels.
func mongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return duplicateKey(err)
	default:
		return err
	}
}

// findAll decodes every document matched by filter into a slice, newest first.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// updateOne applies $set and returns the updated document.
func updateOne[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, set bson.M) (*T, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return nil, mongoError(err)
	}
	return &out, nil
}

// findOne decodes the single document matched by filter.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, mongoError(err)
	}
	return &out, nil
}

// deleteOne removes the document with id and returns it.
func deleteOne[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var out T
	if err := coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, mongoError(err)
	}
	return &out, nil
}
