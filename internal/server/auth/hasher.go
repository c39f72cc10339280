package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts. Longer passwords are
// reduced to a SHA-256 digest before hashing and verifying.
const MaxPasswordBytes = 72

// DefaultCost is the bcrypt work factor used when none (or an out-of-range
// one) is configured.
const DefaultCost = 10

// BcryptHasher produces and checks salted bcrypt digests.
type BcryptHasher struct {
	cost  int
	dummy string
}

// NewBcryptHasher builds a hasher with the given cost and precomputes a
// digest of a random secret. Login verifies against that digest when the
// account does not exist, so a missing user costs the same as a wrong password.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	h := &BcryptHasher{cost: cost}

	dummy, err := h.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy digest: %w", err)
	}
	h.dummy = dummy

	return h, nil
}

// Cost returns the work factor applied by Hash.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt digest of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest never matches.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(password)) == nil
}

// DummyDigest returns a digest no caller knows the password for.
func (h *BcryptHasher) DummyDigest() string {
	return h.dummy
}

// bcryptInput returns password unchanged when bcrypt can take it whole and
// its base64 SHA-256 digest otherwise, so every byte of a long password counts.
func bcryptInput(password string) []byte {
	if len(password) <= MaxPasswordBytes {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
