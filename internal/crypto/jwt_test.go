package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lifeline/lifeline-api/internal/model"
)

func testUser() *model.User {
	return &model.User{ID: model.NewID(), Phone: "555123"}
}

func TestIssue(t *testing.T) {
	token, err := NewTokenService("test-secret").Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty string")
	}
}

func TestIssueWithoutSecret(t *testing.T) {
	svc := NewTokenService("")

	_, err := svc.Issue(testUser())
	if !errors.Is(err, ErrSecretNotConfigured) {
		t.Fatalf("Issue() error = %v, want ErrSecretNotConfigured", err)
	}
	if svc.Ready() == nil {
		t.Error("Ready() expected error without secret")
	}
}

func TestVerifyValid(t *testing.T) {
	svc := NewTokenService("test-secret")
	user := testUser()

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	v := svc.Verify(token)
	if v.Status != TokenValid {
		t.Fatalf("Verify() status = %v, err = %v", v.Status, v.Err)
	}
	if v.Claims.UserID != user.ID.Hex() {
		t.Errorf("Verify() UserID = %q, want %q", v.Claims.UserID, user.ID.Hex())
	}
	if v.Claims.Phone != user.Phone {
		t.Errorf("Verify() Phone = %q, want %q", v.Claims.Phone, user.Phone)
	}
	if got := v.Claims.ExpiresAt.Sub(v.Claims.IssuedAt.Time); got != TokenTTL {
		t.Errorf("token lifetime = %v, want %v", got, TokenTTL)
	}
}

func TestVerifyMalformed(t *testing.T) {
	v := NewTokenService("test-secret").Verify("not-a-valid-token")
	if v.Status != TokenMalformed {
		t.Errorf("Verify() status = %v, want malformed", v.Status)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenService("correct-secret").Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	v := NewTokenService("wrong-secret").Verify(token)
	if v.Status != TokenMalformed {
		t.Errorf("Verify() status = %v, want malformed", v.Status)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := NewTokenService("test-secret")
	issued := time.Now().Add(-8 * 24 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	svc.now = time.Now
	v := svc.Verify(token)
	if v.Status != TokenExpired {
		t.Errorf("Verify() status = %v, want expired (err %v)", v.Status, v.Err)
	}
}

func TestVerifyStillValidBeforeSevenDays(t *testing.T) {
	svc := NewTokenService("test-secret")
	svc.now = func() time.Time { return time.Now().Add(-6 * 24 * time.Hour) }

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	svc.now = time.Now
	if v := svc.Verify(token); v.Status != TokenValid {
		t.Errorf("Verify() status = %v, want valid", v.Status)
	}
}

func TestVerifyWithoutSecret(t *testing.T) {
	token, err := NewTokenService("test-secret").Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	v := NewTokenService("").Verify(token)
	if v.Status != TokenFault || !errors.Is(v.Err, ErrSecretNotConfigured) {
		t.Errorf("Verify() = %v / %v, want fault / ErrSecretNotConfigured", v.Status, v.Err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: model.NewID().Hex(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if v := NewTokenService(secret).Verify(tokenString); v.Status != TokenMalformed {
		t.Errorf("Verify() status = %v, want malformed", v.Status)
	}
}

func TestVerifyMissingUserID(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if v := NewTokenService(secret).Verify(tokenString); v.Status != TokenMalformed {
		t.Errorf("Verify() status = %v, want malformed", v.Status)
	}
}
