package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// ID is the identifier type shared by every stored record.
type ID = primitive.ObjectID

// NewID returns a fresh identifier.
func NewID() ID {
	return primitive.NewObjectID()
}

// ParseID parses the 24-character hex form of an identifier.
func ParseID(s string) (ID, error) {
	return primitive.ObjectIDFromHex(s)
}
