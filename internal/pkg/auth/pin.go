package auth

import "golang.org/x/crypto/bcrypt"

// PINHasher hashes customer PINs for storage. PINs are short, so the stored
// form must be slow to brute-force offline.
type PINHasher interface {
	Hash(pin string) (string, error)
	Compare(hash string, pin string) error
}

// BcryptHasher hashes PINs with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost; zero selects the
// bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of the PIN.
func (h *BcryptHasher) Hash(pin string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare checks the PIN against a stored digest.
func (h *BcryptHasher) Compare(hash string, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
}
