package auth

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies salted one-way password digests.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher with the given bcrypt work factor. Costs
// outside the bcrypt range fall back to the library default.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash returns a salted digest of the plaintext. The salt is generated per
// call, so hashing the same plaintext twice yields different digests.
func (h Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. Malformed digests
// verify as false rather than returning an error.
func (h Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
