package repository

import (
	"context"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProfileRepository handles donor profile persistence in MongoDB.
type MongoProfileRepository struct {
	coll *mongo.Collection
}

// NewMongoProfileRepository creates a new MongoProfileRepository.
func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(profilesCollection)}
}

// Create inserts a profile. Violations of the uniq_user and uniq_email indexes
// surface as *DuplicateKeyError.
func (r *MongoProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	now := time.Now().UTC()
	doc := *p
	doc.ID = model.NewID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoError(err)
	}

	*p = doc
	return nil
}

// GetByID returns the profile with the given id, or ErrNotFound.
func (r *MongoProfileRepository) GetByID(ctx context.Context, id model.ID) (*model.Profile, error) {
	return findOne[model.Profile](ctx, r.coll, bson.M{"_id": id})
}

// GetByUser returns the profile owned by userID, or ErrNotFound.
func (r *MongoProfileRepository) GetByUser(ctx context.Context, userID model.ID) (*model.Profile, error) {
	return findOne[model.Profile](ctx, r.coll, bson.M{"user": userID})
}

// GetByEmail returns the profile with the given email, or ErrNotFound.
func (r *MongoProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return findOne[model.Profile](ctx, r.coll, bson.M{"email": email})
}

// List returns matching profiles, newest first.
func (r *MongoProfileRepository) List(ctx context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	return findAll[model.Profile](ctx, r.coll, profileFilterDoc(filter))
}

func profileFilterDoc(filter model.ProfileFilter) bson.M {
	doc := bson.M{}
	if filter.BloodType != "" {
		doc["bloodType"] = filter.BloodType
	}
	if filter.Location != "" {
		doc["location"] = containsFold(filter.Location)
	}
	if filter.Gender != "" {
		doc["gender"] = filter.Gender
	}
	if filter.IsAvailable != nil {
		doc["isAvailable"] = *filter.IsAvailable
	}
	return doc
}

// Update applies patch and returns the updated profile.
func (r *MongoProfileRepository) Update(ctx context.Context, id model.ID, patch model.ProfilePatch) (*model.Profile, error) {
	set := bson.M{}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.MobilePhone != nil {
		set["mobilePhone"] = *patch.MobilePhone
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.BloodType != nil {
		set["bloodType"] = *patch.BloodType
	}
	if patch.DateOfBirth != nil {
		set["dateOfBirth"] = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		set["gender"] = *patch.Gender
	}
	if patch.EmergencyContact != nil {
		set["emergencyContact"] = *patch.EmergencyContact
	}
	if patch.MedicalHistory != nil {
		set["medicalHistory"] = *patch.MedicalHistory
	}
	if patch.IsAvailable != nil {
		set["isAvailable"] = *patch.IsAvailable
	}
	return updateOne[model.Profile](ctx, r.coll, id, set)
}

// Delete removes the profile and returns it.
func (r *MongoProfileRepository) Delete(ctx context.Context, id model.ID) (*model.Profile, error) {
	return deleteOne[model.Profile](ctx, r.coll, id)
}
