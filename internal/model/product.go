package model

import "time"

// Product is an item in the sample catalogue.
type Product struct {
	ID          ID        `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProductPatch lists the product fields touched by an update.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
}

// Empty reports whether the patch touches nothing.
func (p ProductPatch) Empty() bool {
	return p == ProductPatch{}
}
