package model

import "time"

// Card is a help posting such as a blood donation request or offer.
type Card struct {
	ID          ID        `bson:"_id" json:"id"`
	Owner       ID        `bson:"owner" json:"owner"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location"`
	BloodType   string    `bson:"bloodType" json:"bloodType"`
	MobilePhone string    `bson:"mobilePhone" json:"mobilePhone"`
	Description string    `bson:"description" json:"description"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CardPatch lists the card fields touched by an update. Nil fields are left as is.
type CardPatch struct {
	Name        *string
	Location    *string
	BloodType   *string
	MobilePhone *string
	Description *string
	Status      *string
}

// Empty reports whether the patch touches nothing.
func (p CardPatch) Empty() bool {
	return p == CardPatch{}
}

// CardFilter narrows a card listing. Empty fields do not filter.
type CardFilter struct {
	BloodType string
	Status    string
	Location  string
}
