package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("zero cost should select default, got %d", h.cost)
	}
	if h := NewBcryptHasher(bcrypt.DefaultCost + 2); h.cost != bcrypt.DefaultCost+2 {
		t.Fatalf("unexpected cost: %d", h.cost)
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("1234")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "" || hash == "1234" {
		t.Fatalf("unexpected digest %q", hash)
	}

	if err := hasher.Compare(hash, "1234"); err != nil {
		t.Fatalf("matching pin rejected: %v", err)
	}
	if err := hasher.Compare(hash, "4321"); err == nil {
		t.Fatal("wrong pin accepted")
	}
}

func TestBcryptHasherInvalidCost(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("1234"); err == nil {
		t.Fatal("expected error for out-of-range cost")
	}
}
