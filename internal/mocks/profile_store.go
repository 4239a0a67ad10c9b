package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

// ProfileStore is an in-memory profile store. The owner and the email are
// unique keys.
type ProfileStore struct {
	mu       sync.Mutex
	profiles []model.Profile
	Err      error
}

// NewProfileStore returns an empty ProfileStore.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

// Create inserts a new profile.
func (s *ProfileStore) Create(_ context.Context, p *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if err := s.checkUnique(p.ID, p.User, p.Email); err != nil {
		return err
	}
	s.profiles = append(s.profiles, *p)
	return nil
}

// GetByID returns the profile with the given id, or ErrNotFound.
func (s *ProfileStore) GetByID(_ context.Context, id model.ID) (*model.Profile, error) {
	return s.find(func(p model.Profile) bool { return p.ID == id })
}

// GetByUser returns the profile owned by userID, or ErrNotFound.
func (s *ProfileStore) GetByUser(_ context.Context, userID model.ID) (*model.Profile, error) {
	return s.find(func(p model.Profile) bool { return p.User == userID })
}

// GetByEmail returns the profile with the given email, or ErrNotFound.
func (s *ProfileStore) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	return s.find(func(p model.Profile) bool { return p.Email == email })
}

// List returns matching profiles, newest first.
func (s *ProfileStore) List(_ context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Profile
	for _, p := range s.profiles {
		if filter.BloodType != "" && p.BloodType != filter.BloodType {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if filter.Location != "" && !containsFold(p.Location, filter.Location) {
			continue
		}
		if filter.IsAvailable != nil && p.IsAvailable != *filter.IsAvailable {
			continue
		}
		out = append(out, p)
	}
	return newestFirst(out, func(p model.Profile) time.Time { return p.CreatedAt }), nil
}

// Update applies patch and returns the updated profile.
func (s *ProfileStore) Update(_ context.Context, id model.ID, patch model.ProfilePatch) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := &s.profiles[i]
	if patch.Email != nil {
		if err := s.checkUnique(p.ID, model.ID{}, *patch.Email); err != nil {
			return nil, err
		}
	}
	set(&p.FirstName, patch.FirstName)
	set(&p.LastName, patch.LastName)
	set(&p.Email, patch.Email)
	set(&p.MobilePhone, patch.MobilePhone)
	set(&p.Location, patch.Location)
	set(&p.BloodType, patch.BloodType)
	set(&p.Gender, patch.Gender)
	set(&p.MedicalHistory, patch.MedicalHistory)
	set(&p.IsAvailable, patch.IsAvailable)
	if patch.DateOfBirth != nil {
		dob := *patch.DateOfBirth
		p.DateOfBirth = &dob
	}
	if patch.EmergencyContact != nil {
		contact := *patch.EmergencyContact
		p.EmergencyContact = &contact
	}
	p.UpdatedAt = time.Now().UTC()
	updated := *p
	return &updated, nil
}

// Delete removes the profile and returns it.
func (s *ProfileStore) Delete(_ context.Context, id model.ID) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := s.profiles[i]
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	return &p, nil
}

// checkUnique reports a duplicate owner or email held by a profile other than self.
// A zero user skips the owner check.
func (s *ProfileStore) checkUnique(self, user model.ID, email string) error {
	for _, p := range s.profiles {
		if p.ID == self {
			continue
		}
		if !user.IsZero() && p.User == user {
			return &repository.DuplicateKeyError{Field: "user"}
		}
		if p.Email == email {
			return &repository.DuplicateKeyError{Field: "email"}
		}
	}
	return nil
}

func (s *ProfileStore) find(match func(model.Profile) bool) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.profiles {
		if match(p) {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ProfileStore) index(id model.ID) int {
	for i, p := range s.profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}
