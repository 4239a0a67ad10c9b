package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lifeline/lifeline-api/internal/input"
	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

// ProfileService manages donor profiles. Each user owns at most one profile
// and every profile email is unique.
type ProfileService struct {
	profiles ProfileStore
	now      func() time.Time
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles, now: time.Now}
}

// Create stores the caller's profile.
func (s *ProfileService) Create(ctx context.Context, caller model.Identity, body input.Body) (*model.Profile, error) {
	firstName := body.String(input.FirstName)
	lastName := body.String(input.LastName)
	email := body.String(input.Email)
	mobilePhone := body.String(input.MobilePhone)
	location := body.String(input.Location)

	var req input.Required
	req.Check(input.FirstName.Name(), firstName)
	req.Check(input.LastName.Name(), lastName)
	req.Check(input.Email.Name(), email)
	req.Check(input.MobilePhone.Name(), mobilePhone)
	req.Check(input.Location.Name(), location)
	if err := req.Err(); err != nil {
		return nil, err
	}

	email, err := input.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	profile := &model.Profile{
		ID:             model.NewID(),
		User:           caller.ID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		MobilePhone:    mobilePhone,
		Location:       location,
		MedicalHistory: body.String(input.MedicalHistory),
		IsAvailable:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if bt := body.String(input.BloodTypeField); bt != "" {
		if profile.BloodType, err = input.BloodType(bt); err != nil {
			return nil, err
		}
	}
	if g := body.String(input.GenderField); g != "" {
		if profile.Gender, err = input.Gender(g); err != nil {
			return nil, err
		}
	}
	if dob := body.String(input.DateOfBirth); dob != "" {
		t, err := input.Date(dob)
		if err != nil {
			return nil, err
		}
		profile.DateOfBirth = &t
	}
	if v, _, ok := body.Lookup(input.EmergencyContact); ok {
		if profile.EmergencyContact, err = emergencyContact(v); err != nil {
			return nil, err
		}
	}
	if v, _, ok := body.Lookup(input.IsAvailable); ok {
		if profile.IsAvailable, err = input.Bool(v); err != nil {
			return nil, err
		}
	}

	if _, err := s.profiles.GetByUser(ctx, caller.ID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, profileError(err)
	}
	return profile, nil
}

// List returns profiles matching the filter, newest first.
func (s *ProfileService) List(ctx context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	filter.BloodType = strings.ToUpper(strings.TrimSpace(filter.BloodType))
	filter.Gender = strings.ToLower(strings.TrimSpace(filter.Gender))
	filter.Location = strings.TrimSpace(filter.Location)
	return s.profiles.List(ctx, filter)
}

// Get returns the profile with the given hex id.
func (s *ProfileService) Get(ctx context.Context, rawID string) (*model.Profile, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, ErrInvalidProfileID
	}
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, profileError(err)
	}
	return profile, nil
}

// Mine returns the caller's own profile.
func (s *ProfileService) Mine(ctx context.Context, caller model.Identity) (*model.Profile, error) {
	profile, err := s.profiles.GetByUser(ctx, caller.ID)
	if err != nil {
		return nil, profileError(err)
	}
	return profile, nil
}

// Update applies the fields present in body to the caller's profile.
func (s *ProfileService) Update(ctx context.Context, caller model.Identity, rawID string, body input.Body) (*model.Profile, error) {
	profile, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if profile.User != caller.ID {
		return nil, ErrProfileUpdateDenied
	}

	patch, err := profilePatch(body)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return profile, nil
	}

	if patch.Email != nil && *patch.Email != profile.Email {
		other, err := s.profiles.GetByEmail(ctx, *patch.Email)
		switch {
		case err == nil && other.ID != profile.ID:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	updated, err := s.profiles.Update(ctx, profile.ID, patch)
	if err != nil {
		return nil, profileError(err)
	}
	return updated, nil
}

// Delete removes the caller's profile and returns it.
func (s *ProfileService) Delete(ctx context.Context, caller model.Identity, rawID string) (*model.Profile, error) {
	profile, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if profile.User != caller.ID {
		return nil, ErrProfileDeleteDenied
	}

	deleted, err := s.profiles.Delete(ctx, profile.ID)
	if err != nil {
		return nil, profileError(err)
	}
	return deleted, nil
}

func profilePatch(body input.Body) (model.ProfilePatch, error) {
	patch := model.ProfilePatch{
		FirstName:      body.OptString(input.FirstName),
		LastName:       body.OptString(input.LastName),
		MobilePhone:    body.OptString(input.MobilePhone),
		Location:       body.OptString(input.Location),
		MedicalHistory: body.OptString(input.MedicalHistory),
	}

	var req input.Required
	req.CheckSet(input.FirstName.Name(), patch.FirstName)
	req.CheckSet(input.LastName.Name(), patch.LastName)
	req.CheckSet(input.MobilePhone.Name(), patch.MobilePhone)
	req.CheckSet(input.Location.Name(), patch.Location)
	if err := req.Err(); err != nil {
		return model.ProfilePatch{}, err
	}

	if raw, ok := body.Raw(input.Email); ok {
		email, err := input.NormalizeEmail(raw)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.Email = &email
	}
	if raw, ok := body.Raw(input.BloodTypeField); ok {
		bt, err := input.BloodType(raw)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.BloodType = &bt
	}
	if raw, ok := body.Raw(input.DateOfBirth); ok {
		dob, err := input.Date(raw)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.DateOfBirth = &dob
	}
	if raw, ok := body.Raw(input.GenderField); ok {
		g, err := input.Gender(raw)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.Gender = &g
	}
	if v, _, ok := body.Lookup(input.EmergencyContact); ok {
		contact, err := emergencyContact(v)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.EmergencyContact = contact
	}
	if v, _, ok := body.Lookup(input.IsAvailable); ok {
		available, err := input.Bool(v)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.IsAvailable = &available
	}
	return patch, nil
}

// emergencyContact reads a nested {name, phone, relationship} object.
func emergencyContact(v any) (*model.EmergencyContact, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, input.ErrInvalidEmergencyContact
	}
	nested := input.Body(m)
	contact := &model.EmergencyContact{
		Name:         nested.String(input.ContactName),
		Phone:        input.NormalizePhone(nested.String(input.ContactPhone)),
		Relationship: nested.String(input.ContactRelationship),
	}
	if contact.Name == "" || contact.Phone == "" || contact.Relationship == "" {
		return nil, input.ErrInvalidEmergencyContact
	}
	return contact, nil
}

func profileError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	var dup *repository.DuplicateKeyError
	if errors.As(err, &dup) {
		if dup.Field == "user" {
			return ErrProfileExists
		}
		return ErrEmailTaken
	}
	return err
}
