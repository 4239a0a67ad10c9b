package input

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"555 123", "555123"},
		{"  +254 700\t123 456 ", "+254700123456"},
		{"555123", "555123"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Jane.Doe@Example.COM ")
	if err != nil {
		t.Fatalf("NormalizeEmail() unexpected error: %v", err)
	}
	if got != "jane.doe@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}

	for _, bad := range []string{"", "plain", "no@tld", "a b@c.d", "@example.com"} {
		if _, err := NormalizeEmail(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("NormalizeEmail(%q) error = %v, want ErrInvalidEmail", bad, err)
		}
	}
}

func TestBloodType(t *testing.T) {
	for _, in := range []string{"o-", "O-", " ab+ ", "a+"} {
		if _, err := BloodType(in); err != nil {
			t.Errorf("BloodType(%q) unexpected error: %v", in, err)
		}
	}

	got, _ := BloodType("o-")
	if got != "O-" {
		t.Errorf("BloodType(o-) = %q, want O-", got)
	}

	for _, in := range []string{"z+", "Z+", "", "AB", "C-"} {
		if _, err := BloodType(in); !errors.Is(err, ErrInvalidBloodType) {
			t.Errorf("BloodType(%q) error = %v, want ErrInvalidBloodType", in, err)
		}
	}
}

func TestGenderAndStatus(t *testing.T) {
	if g, err := Gender("FeMale"); err != nil || g != "female" {
		t.Errorf("Gender(FeMale) = %q, %v", g, err)
	}
	if _, err := Gender("unknown"); !errors.Is(err, ErrInvalidGender) {
		t.Errorf("Gender(unknown) error = %v", err)
	}
	if s, err := Status("ACTIVE"); err != nil || s != "active" {
		t.Errorf("Status(ACTIVE) = %q, %v", s, err)
	}
	if _, err := Status("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Status(archived) error = %v", err)
	}
}

func TestDate(t *testing.T) {
	got, err := Date("1990-05-17")
	if err != nil {
		t.Fatalf("Date() unexpected error: %v", err)
	}
	if !got.Equal(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date() = %v", got)
	}

	if _, err := Date("1990-05-17T10:00:00+02:00"); err != nil {
		t.Errorf("Date() RFC 3339 unexpected error: %v", err)
	}
	if _, err := Date("17/05/1990"); !errors.Is(err, ErrInvalidDateOfBirth) {
		t.Errorf("Date() error = %v, want ErrInvalidDateOfBirth", err)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		in      any
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"true", true, false},
		{"false", false, false},
		{json.Number("0"), false, false},
		{json.Number("1"), true, false},
		{"maybe", false, true},
		{map[string]any{}, false, true},
	}

	for _, tt := range tests {
		got, err := Bool(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Bool(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Bool(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrice(t *testing.T) {
	if p, err := Price(json.Number("19.99")); err != nil || p != 19.99 {
		t.Errorf("Price(19.99) = %v, %v", p, err)
	}
	if p, err := Price("0"); err != nil || p != 0 {
		t.Errorf("Price(\"0\") = %v, %v", p, err)
	}
	for _, bad := range []any{json.Number("-1"), "abc", true, "NaN", "Inf", "+Inf", "-Inf", math.NaN(), math.Inf(1)} {
		if _, err := Price(bad); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("Price(%v) error = %v, want ErrInvalidPrice", bad, err)
		}
	}
}

func TestRequiredCollectsAllMissing(t *testing.T) {
	var req Required
	req.Check("name", "")
	req.Check("location", "Nairobi")
	req.Check("bloodType", "")
	req.Check("mobilePhone", "")

	err := req.Err()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Err() = %v, want *ValidationError", err)
	}
	if vErr.Message != "Missing required fields: name, bloodType, mobilePhone" {
		t.Errorf("Err() message = %q", vErr.Message)
	}
	if len(vErr.Fields) != 3 {
		t.Errorf("Err() fields = %v", vErr.Fields)
	}
}

func TestRequiredNoneMissing(t *testing.T) {
	var req Required
	req.Check("name", "x")
	if err := req.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestRequiredCheckSet(t *testing.T) {
	blank, set := "", "Kisumu"

	var req Required
	req.CheckSet("name", nil)
	req.CheckSet("location", &set)
	req.CheckSet("mobilePhone", &blank)

	err := req.Err()
	if err == nil || err.Error() != "Missing required fields: mobilePhone" {
		t.Errorf("Err() = %v, want missing mobilePhone", err)
	}
}
