package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

// CardStore is an in-memory card store.
type CardStore struct {
	mu    sync.Mutex
	cards []model.Card
	Err   error
}

// NewCardStore returns an empty CardStore.
func NewCardStore() *CardStore {
	return &CardStore{}
}

// Create inserts a new card.
func (s *CardStore) Create(_ context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.cards = append(s.cards, *card)
	return nil
}

// GetByID returns the card with the given id, or ErrNotFound.
func (s *CardStore) GetByID(_ context.Context, id model.ID) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	c := s.cards[i]
	return &c, nil
}

// List returns matching cards, newest first.
func (s *CardStore) List(_ context.Context, filter model.CardFilter) ([]model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Card
	for _, c := range s.cards {
		if filter.BloodType != "" && c.BloodType != filter.BloodType {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Location != "" && !containsFold(c.Location, filter.Location) {
			continue
		}
		out = append(out, c)
	}
	return newestFirst(out, func(c model.Card) time.Time { return c.CreatedAt }), nil
}

// Update applies patch and returns the updated card.
func (s *CardStore) Update(_ context.Context, id model.ID, patch model.CardPatch) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	c := &s.cards[i]
	set(&c.Name, patch.Name)
	set(&c.Location, patch.Location)
	set(&c.BloodType, patch.BloodType)
	set(&c.MobilePhone, patch.MobilePhone)
	set(&c.Description, patch.Description)
	set(&c.Status, patch.Status)
	c.UpdatedAt = time.Now().UTC()
	updated := *c
	return &updated, nil
}

// Delete removes the card and returns it.
func (s *CardStore) Delete(_ context.Context, id model.ID) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	c := s.cards[i]
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return &c, nil
}

func (s *CardStore) index(id model.ID) int {
	for i, c := range s.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
