package mocks

import (
	"context"
	"sync"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

// UserStore is an in-memory credential store.
type UserStore struct {
	mu    sync.Mutex
	users []model.User
	Err   error
}

// NewUserStore returns an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{}
}

// Create inserts a new user.
func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Phone == user.Phone {
			return &repository.DuplicateKeyError{Field: "phone"}
		}
	}
	s.users = append(s.users, *user)
	return nil
}

// GetByPhone returns the user with the given phone, or ErrNotFound.
func (s *UserStore) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Phone == phone })
}

// GetByID returns the user with the given id, or ErrNotFound.
func (s *UserStore) GetByID(_ context.Context, id model.ID) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}

// Remove deletes the user with the given id, as an administrator would.
func (s *UserStore) Remove(id model.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

func (s *UserStore) find(match func(model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
