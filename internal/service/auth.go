package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/lifeline/lifeline-api/internal/input"
	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

const (
	minPasswordRunes = 6
	maxPasswordBytes = 72
)

// AuthService handles signup, login and identity lookups.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	hasher PasswordHasher
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		now:    time.Now,
	}
}

// Signup creates a new account and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, body input.Body) (model.AuthResponse, error) {
	firstName := body.String(input.FirstName)
	lastName := body.String(input.LastName)
	phone := input.NormalizePhone(body.String(input.AccountPhone))
	password, _ := body.Raw(input.Password)
	confirm, _ := body.Raw(input.ConfirmPassword)

	var req input.Required
	req.Check(input.FirstName.Name(), firstName)
	req.Check(input.LastName.Name(), lastName)
	req.Check(input.AccountPhone.Name(), phone)
	req.Check(input.Password.Name(), password)
	req.Check(input.ConfirmPassword.Name(), confirm)
	if err := req.Err(); err != nil {
		return model.AuthResponse{}, err
	}

	if password != confirm {
		return model.AuthResponse{}, ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < minPasswordRunes {
		return model.AuthResponse{}, ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return model.AuthResponse{}, ErrPasswordTooLong
	}

	// An account that cannot be given a token must not be created.
	if err := s.tokens.Ready(); err != nil {
		return model.AuthResponse{}, err
	}

	_, err := s.users.GetByPhone(ctx, phone)
	if err == nil {
		return model.AuthResponse{}, ErrPhoneTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           model.NewID(),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.AuthResponse{}, ErrPhoneTaken
		}
		return model.AuthResponse{}, err
	}

	return s.respond(user)
}

// Login authenticates a user by phone and password.
func (s *AuthService) Login(ctx context.Context, body input.Body) (model.AuthResponse, error) {
	phone := input.NormalizePhone(body.String(input.AccountPhone))
	password, _ := body.Raw(input.Password)

	var req input.Required
	req.Check(input.AccountPhone.Name(), phone)
	req.Check(input.Password.Name(), password)
	if err := req.Err(); err != nil {
		return model.AuthResponse{}, err
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.respond(user)
}

// GetUser returns the public view of the user with the given id.
func (s *AuthService) GetUser(ctx context.Context, id model.ID) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.Response(), nil
}

func (s *AuthService) respond(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		Token: token,
		User:  user.Response(),
	}, nil
}
