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

// CardService manages help cards. Mutations are restricted to the card owner.
type CardService struct {
	cards CardStore
	now   func() time.Time
}

// NewCardService creates a new CardService.
func NewCardService(cards CardStore) *CardService {
	return &CardService{cards: cards, now: time.Now}
}

// Create stores a new card owned by the caller.
func (s *CardService) Create(ctx context.Context, caller model.Identity, body input.Body) (*model.Card, error) {
	name := body.String(input.Name)
	location := body.String(input.Location)
	bloodType := body.String(input.BloodTypeField)
	mobilePhone := body.String(input.MobilePhone)

	var req input.Required
	req.Check(input.Name.Name(), name)
	req.Check(input.Location.Name(), location)
	req.Check(input.BloodTypeField.Name(), bloodType)
	req.Check(input.MobilePhone.Name(), mobilePhone)
	if err := req.Err(); err != nil {
		return nil, err
	}

	bloodType, err := input.BloodType(bloodType)
	if err != nil {
		return nil, err
	}

	status := input.DefaultCardStatus
	if raw, ok := body.Raw(input.StatusField); ok {
		if status, err = input.Status(raw); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	card := &model.Card{
		ID:          model.NewID(),
		Owner:       caller.ID,
		Name:        name,
		Location:    location,
		BloodType:   bloodType,
		MobilePhone: mobilePhone,
		Description: body.String(input.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// List returns cards matching the filter, newest first. Filter values are
// canonicalised before they reach the store.
func (s *CardService) List(ctx context.Context, filter model.CardFilter) ([]model.Card, error) {
	filter.BloodType = strings.ToUpper(strings.TrimSpace(filter.BloodType))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	filter.Location = strings.TrimSpace(filter.Location)
	return s.cards.List(ctx, filter)
}

// Get returns the card with the given hex id.
func (s *CardService) Get(ctx context.Context, rawID string) (*model.Card, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, ErrInvalidCardID
	}
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, cardError(err)
	}
	return card, nil
}

// Update applies the fields present in body to the caller's card.
func (s *CardService) Update(ctx context.Context, caller model.Identity, rawID string, body input.Body) (*model.Card, error) {
	card, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if card.Owner != caller.ID {
		return nil, ErrCardUpdateDenied
	}

	patch, err := cardPatch(body)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return card, nil
	}

	updated, err := s.cards.Update(ctx, card.ID, patch)
	if err != nil {
		return nil, cardError(err)
	}
	return updated, nil
}

// Delete removes the caller's card and returns it.
func (s *CardService) Delete(ctx context.Context, caller model.Identity, rawID string) (*model.Card, error) {
	card, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if card.Owner != caller.ID {
		return nil, ErrCardDeleteDenied
	}

	deleted, err := s.cards.Delete(ctx, card.ID)
	if err != nil {
		return nil, cardError(err)
	}
	return deleted, nil
}

func cardPatch(body input.Body) (model.CardPatch, error) {
	patch := model.CardPatch{
		Name:        body.OptString(input.Name),
		Location:    body.OptString(input.Location),
		MobilePhone: body.OptString(input.MobilePhone),
		Description: body.OptString(input.Description),
	}

	var req input.Required
	req.CheckSet(input.Name.Name(), patch.Name)
	req.CheckSet(input.Location.Name(), patch.Location)
	req.CheckSet(input.MobilePhone.Name(), patch.MobilePhone)
	if err := req.Err(); err != nil {
		return model.CardPatch{}, err
	}

	if raw, ok := body.Raw(input.BloodTypeField); ok {
		bt, err := input.BloodType(raw)
		if err != nil {
			return model.CardPatch{}, err
		}
		patch.BloodType = &bt
	}
	if raw, ok := body.Raw(input.StatusField); ok {
		st, err := input.Status(raw)
		if err != nil {
			return model.CardPatch{}, err
		}
		patch.Status = &st
	}
	return patch, nil
}

func cardError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCardNotFound
	}
	return err
}
