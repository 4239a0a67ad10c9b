package input

import (
	"encoding/json"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ValidationError is a client input fault. Fields is set when the error lists
// missing required fields.
type ValidationError struct {
	Message string
	Fields  []string
}

// Error returns the client-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrInvalidEmail            = &ValidationError{Message: "Invalid email format"}
	ErrInvalidBloodType        = &ValidationError{Message: "Invalid blood type. Must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-"}
	ErrInvalidGender           = &ValidationError{Message: "Invalid gender. Must be one of: male, female, other"}
	ErrInvalidStatus           = &ValidationError{Message: "Invalid status. Must be one of: active, inactive, completed"}
	ErrInvalidDateOfBirth      = &ValidationError{Message: "Invalid date of birth format"}
	ErrInvalidAvailability     = &ValidationError{Message: "isAvailable must be a boolean"}
	ErrInvalidEmergencyContact = &ValidationError{Message: "emergencyContact must be an object with name, phone and relationship"}
	ErrInvalidPrice            = &ValidationError{Message: "Price must be a positive number"}
)

var (
	BloodTypes   = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	Genders      = []string{"male", "female", "other"}
	CardStatuses = []string{"active", "inactive", "completed"}
)

// DefaultCardStatus is the status of a card created without one.
const DefaultCardStatus = "active"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizePhone trims the value and removes every run of whitespace.
func NormalizePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// NormalizeEmail lowercases and trims s and checks it looks like local@domain.tld.
func NormalizeEmail(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// BloodType uppercases s and checks it is one of BloodTypes.
func BloodType(s string) (string, error) {
	return oneOf(strings.ToUpper(strings.TrimSpace(s)), BloodTypes, ErrInvalidBloodType)
}

// Gender lowercases s and checks it is one of Genders.
func Gender(s string) (string, error) {
	return oneOf(strings.ToLower(strings.TrimSpace(s)), Genders, ErrInvalidGender)
}

// Status lowercases s and checks it is one of CardStatuses.
func Status(s string) (string, error) {
	return oneOf(strings.ToLower(strings.TrimSpace(s)), CardStatuses, ErrInvalidStatus)
}

func oneOf(v string, allowed []string, err error) (string, error) {
	if !slices.Contains(allowed, v) {
		return "", err
	}
	return v, nil
}

// Date parses an RFC 3339 timestamp or a YYYY-MM-DD date.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDateOfBirth
}

// Bool interprets a decoded JSON value or form string as a boolean.
func Bool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, ErrInvalidAvailability
		}
		return b, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return false, ErrInvalidAvailability
		}
		return f != 0, nil
	case float64:
		return t != 0, nil
	default:
		return false, ErrInvalidAvailability
	}
}

// Price interprets v as a finite, non-negative amount.
func Price(v any) (float64, error) {
	var f float64
	var err error
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, ErrInvalidPrice
	}
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidPrice
	}
	return f, nil
}

// Required accumulates names of required fields that came back empty.
type Required struct {
	missing []string
}

// Check records name as missing when value is empty.
func (r *Required) Check(name, value string) {
	if value == "" {
		r.missing = append(r.missing, name)
	}
}

// CheckSet records name as missing when value is present but empty. A nil value
// means the field was not sent and is not checked.
func (r *Required) CheckSet(name string, value *string) {
	if value != nil {
		r.Check(name, *value)
	}
}

// Err returns a ValidationError naming every missing field, or nil.
func (r *Required) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return &ValidationError{
		Message: "Missing required fields: " + strings.Join(r.missing, ", "),
		Fields:  r.missing,
	}
}
