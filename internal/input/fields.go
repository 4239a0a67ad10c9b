package input

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Field is a logical request field and the body keys accepted for it.
// Aliases[0] is the canonical name; the rest are legacy spellings.
type Field struct {
	Aliases []string
}

// Name returns the canonical key of the field.
func (f Field) Name() string {
	return f.Aliases[0]
}

func field(aliases ...string) Field {
	return Field{Aliases: aliases}
}

var (
	FirstName       = field("firstName", "first_name", "firstname")
	LastName        = field("lastName", "last_name", "lastname")
	AccountPhone    = field("phone", "Phone", "phoneNumber", "phone_number", "numberPhone", "number_phone")
	Password        = field("password")
	ConfirmPassword = field("confirmPassword", "confirm_password")

	Name             = field("name", "Name")
	Location         = field("location", "Location")
	BloodTypeField   = field("bloodType", "blood_type")
	MobilePhone      = field("mobilePhone", "mobile_phone", "phone", "Phone")
	Description      = field("description", "Description")
	StatusField      = field("status", "Status")
	Email            = field("email", "Email")
	DateOfBirth      = field("dateOfBirth", "date_of_birth", "dob")
	GenderField      = field("gender", "Gender")
	EmergencyContact = field("emergencyContact", "emergency_contact")
	MedicalHistory   = field("medicalHistory", "medical_history")
	IsAvailable      = field("isAvailable", "is_available")
	PriceField       = field("price", "Price")

	ContactName         = field("name", "Name")
	ContactPhone        = field("phone", "Phone", "mobilePhone")
	ContactRelationship = field("relationship", "Relationship")
)

// Body is a decoded request body.
type Body map[string]any

// Lookup returns the value of the first alias of f that is present and not null,
// along with the alias that matched.
func (b Body) Lookup(f Field) (any, string, bool) {
	for _, key := range f.Aliases {
		v, ok := b[key]
		if !ok || v == nil {
			continue
		}
		if key != f.Name() {
			slog.Debug("deprecated field alias", "field", f.Name(), "alias", key)
		}
		return v, key, true
	}
	return nil, "", false
}

// Has reports whether f is present in the body.
func (b Body) Has(f Field) bool {
	_, _, ok := b.Lookup(f)
	return ok
}

// Raw returns the text form of f without trimming. ok is false when the field is absent.
func (b Body) Raw(f Field) (string, bool) {
	v, _, ok := b.Lookup(f)
	if !ok {
		return "", false
	}
	return Text(v), true
}

// String returns the trimmed text form of f, or "" when absent.
func (b Body) String(f Field) string {
	s, _ := b.Raw(f)
	return strings.TrimSpace(s)
}

// OptString returns the trimmed text form of f, or nil when absent.
func (b Body) OptString(f Field) *string {
	s, ok := b.Raw(f)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	return &s
}

// Text converts a decoded JSON scalar to its textual form.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
