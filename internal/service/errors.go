package service

import (
	"errors"

	"github.com/lifeline/lifeline-api/internal/input"
)

// Kind classifies a service error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a client-facing service failure.
type Error struct {
	Kind    Kind
	Message string
}

// Error returns the client-facing message.
func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Authentication
var (
	ErrPasswordMismatch   = newError(KindValidation, "Password and confirmPassword do not match")
	ErrWeakPassword       = newError(KindValidation, "Password must be at least 6 characters")
	ErrPasswordTooLong    = newError(KindValidation, "Password must be at most 72 bytes")
	ErrPhoneTaken         = newError(KindConflict, "Phone number is already registered")
	ErrInvalidCredentials = newError(KindUnauthorized, "Invalid phone or password")
	ErrUserNotFound       = newError(KindUnauthorized, "User not found")
)

// Profiles
var (
	ErrInvalidProfileID    = newError(KindValidation, "Invalid profile ID format")
	ErrProfileNotFound     = newError(KindNotFound, "Profile not found")
	ErrProfileExists       = newError(KindConflict, "User already has a profile")
	ErrEmailTaken          = newError(KindConflict, "Email is already registered")
	ErrProfileUpdateDenied = newError(KindForbidden, "Access denied. You can only update your own profile")
	ErrProfileDeleteDenied = newError(KindForbidden, "Access denied. You can only delete your own profile")
)

// Cards
var (
	ErrInvalidCardID    = newError(KindValidation, "Invalid card ID format")
	ErrCardNotFound     = newError(KindNotFound, "Card not found")
	ErrCardUpdateDenied = newError(KindForbidden, "Access denied. You can only update your own card")
	ErrCardDeleteDenied = newError(KindForbidden, "Access denied. You can only delete your own card")
)

// Products
var (
	ErrInvalidProductID = newError(KindValidation, "Invalid product ID format")
	ErrProductNotFound  = newError(KindNotFound, "Product not found")
)

// KindOf returns the kind of err. Input validation failures are KindValidation;
// anything unrecognised is KindInternal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	var vErr *input.ValidationError
	if errors.As(err, &vErr) {
		return KindValidation
	}
	return KindInternal
}
