package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Unique index names shared by both backends.
const (
	uniquePhone = "uniq_phone"
	uniqueUser  = "uniq_user"
	uniqueEmail = "uniq_email"
)

// DuplicateKeyError reports a unique index violation. Field is the logical
// field behind the violated index, or "" when it could not be determined.
type DuplicateKeyError struct {
	Field string
	Err   error
}

// Error describes the violated key.
func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

// Is matches ErrDuplicateKey.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// Unwrap returns the driver error.
func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// duplicateKey wraps err, naming the field whose index appears in the driver message.
func duplicateKey(err error) error {
	msg := err.Error()
	field := ""
	switch {
	case strings.Contains(msg, uniquePhone):
		field = "phone"
	case strings.Contains(msg, uniqueUser):
		field = "user"
	case strings.Contains(msg, uniqueEmail):
		field = "email"
	}
	return &DuplicateKeyError{Field: field, Err: err}
}
