package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Hash() = %q, want bcrypt $2a$ prefix", hash)
	}
}

func TestVerifyPasswordCorrect(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("my-secure-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	match, err := h.Verify("my-secure-password", hash)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if !match {
		t.Error("Verify() returned false for correct password")
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	match, err := h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if match {
		t.Error("Verify() returned true for wrong password")
	}
}

func TestHashProducesDifferentHashes(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash1, _ := h.Hash("same-password")
	hash2, _ := h.Hash("same-password")
	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost).Verify("password", "invalid-hash-format")
	if err == nil {
		t.Error("Verify() expected error for invalid hash format")
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	if h := NewPasswordHasher(0); h.cost != DefaultHashCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultHashCost)
	}
	if h := NewPasswordHasher(99); h.cost != DefaultHashCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultHashCost)
	}
}
