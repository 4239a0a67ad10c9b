package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
)

// UserRepository handles user persistence in MySQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user, assigning its ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, first_name, last_name, phone, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	id := model.NewID()

	_, err := r.db.ExecContext(ctx, query,
		id.Hex(), user.FirstName, user.LastName, user.Phone, user.PasswordHash, now, now,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return duplicateKey(err)
		}
		return err
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByPhone retrieves a user, including the password hash, by normalized phone.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	query := `SELECT id, first_name, last_name, phone, password_hash, created_at, updated_at
		FROM users WHERE phone = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, phone))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id model.ID) (*model.User, error) {
	query := `SELECT id, first_name, last_name, phone, password_hash, created_at, updated_at
		FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id.Hex()))
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	var rawID string
	user := &model.User{}
	err := row.Scan(
		&rawID, &user.FirstName, &user.LastName, &user.Phone,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.ID, err = parseRowID(rawID); err != nil {
		return nil, err
	}
	return user, nil
}
