package service

import (
	"context"

	"github.com/lifeline/lifeline-api/internal/model"
)

// UserStore is the credential store.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id model.ID) (*model.User, error)
}

// ProfileStore persists donor profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id model.ID) (*model.Profile, error)
	GetByUser(ctx context.Context, userID model.ID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context, filter model.ProfileFilter) ([]model.Profile, error)
	Update(ctx context.Context, id model.ID, patch model.ProfilePatch) (*model.Profile, error)
	Delete(ctx context.Context, id model.ID) (*model.Profile, error)
}

// CardStore persists help cards.
type CardStore interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id model.ID) (*model.Card, error)
	List(ctx context.Context, filter model.CardFilter) ([]model.Card, error)
	Update(ctx context.Context, id model.ID, patch model.CardPatch) (*model.Card, error)
	Delete(ctx context.Context, id model.ID) (*model.Card, error)
}

// ProductStore persists products.
type ProductStore interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id model.ID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id model.ID, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id model.ID) (*model.Product, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Ready() error
	Issue(user *model.User) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}
