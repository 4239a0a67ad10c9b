package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
)

const cardColumns = `id, owner_id, name, location, blood_type, mobile_phone, description, status, created_at, updated_at`

// CardRepository handles card persistence in MySQL.
type CardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create inserts a card, assigning its ID and timestamps.
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	query := `INSERT INTO cards (` + cardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	id := model.NewID()

	_, err := r.db.ExecContext(ctx, query,
		id.Hex(), card.Owner.Hex(), card.Name, card.Location, card.BloodType,
		card.MobilePhone, card.Description, card.Status, now, now,
	)
	if err != nil {
		return err
	}

	card.ID = id
	card.CreatedAt = now
	card.UpdatedAt = now
	return nil
}

// GetByID retrieves a card by ID.
func (r *CardRepository) GetByID(ctx context.Context, id model.ID) (*model.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = ?`

	card, err := scanCard(r.db.QueryRowContext(ctx, query, id.Hex()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return card, nil
}

// List retrieves cards matching filter, newest first.
func (r *CardRepository) List(ctx context.Context, filter model.CardFilter) ([]model.Card, error) {
	where := cardWhere(filter)
	query := `SELECT ` + cardColumns + ` FROM cards` + where.sql() + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []model.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}

	return cards, rows.Err()
}

func cardWhere(filter model.CardFilter) *whereClause {
	where := &whereClause{}
	if filter.BloodType != "" {
		where.add("blood_type = ?", filter.BloodType)
	}
	if filter.Status != "" {
		where.add("status = ?", filter.Status)
	}
	if filter.Location != "" {
		where.add("LOWER(location) LIKE ?", likeContains(filter.Location))
	}
	return where
}

// Update applies patch to the card and returns the stored result.
func (r *CardRepository) Update(ctx context.Context, id model.ID, patch model.CardPatch) (*model.Card, error) {
	set := &setClause{}
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Location != nil {
		set.add("location", *patch.Location)
	}
	if patch.BloodType != nil {
		set.add("blood_type", *patch.BloodType)
	}
	if patch.MobilePhone != nil {
		set.add("mobile_phone", *patch.MobilePhone)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	set.add("updated_at", time.Now().UTC())

	query := `UPDATE cards SET ` + set.sql() + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, append(set.args, id.Hex())...); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes the card and returns it as it was before deletion.
func (r *CardRepository) Delete(ctx context.Context, id model.ID) (*model.Card, error) {
	card, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id.Hex())
	if err != nil {
		return nil, err
	}
	if err := deleted(result); err != nil {
		return nil, err
	}

	return card, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*model.Card, error) {
	var rawID, rawOwner string
	card := &model.Card{}
	err := row.Scan(
		&rawID, &rawOwner, &card.Name, &card.Location, &card.BloodType,
		&card.MobilePhone, &card.Description, &card.Status, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if card.ID, err = parseRowID(rawID); err != nil {
		return nil, err
	}
	if card.Owner, err = parseRowID(rawOwner); err != nil {
		return nil, err
	}
	return card, nil
}
