package model

import "time"

// EmergencyContact is the person to reach on behalf of a donor.
type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	Phone        string `bson:"phone" json:"phone"`
	Relationship string `bson:"relationship" json:"relationship"`
}

// Profile is a donor profile, at most one per user.
type Profile struct {
	ID               ID                `bson:"_id" json:"id"`
	User             ID                `bson:"user" json:"user"`
	FirstName        string            `bson:"firstName" json:"firstName"`
	LastName         string            `bson:"lastName" json:"lastName"`
	Email            string            `bson:"email" json:"email"`
	MobilePhone      string            `bson:"mobilePhone" json:"mobilePhone"`
	Location         string            `bson:"location" json:"location"`
	BloodType        string            `bson:"bloodType,omitempty" json:"bloodType,omitempty"`
	DateOfBirth      *time.Time        `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender           string            `bson:"gender,omitempty" json:"gender,omitempty"`
	EmergencyContact *EmergencyContact `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	MedicalHistory   string            `bson:"medicalHistory" json:"medicalHistory"`
	IsAvailable      bool              `bson:"isAvailable" json:"isAvailable"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// ProfilePatch lists the profile fields touched by an update.
type ProfilePatch struct {
	FirstName        *string
	LastName         *string
	Email            *string
	MobilePhone      *string
	Location         *string
	BloodType        *string
	DateOfBirth      *time.Time
	Gender           *string
	EmergencyContact *EmergencyContact
	MedicalHistory   *string
	IsAvailable      *bool
}

// Empty reports whether the patch touches nothing.
func (p ProfilePatch) Empty() bool {
	return p == ProfilePatch{}
}

// ProfileFilter narrows a profile listing. Nil IsAvailable does not filter.
type ProfileFilter struct {
	BloodType   string
	Location    string
	Gender      string
	IsAvailable *bool
}
