package password

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt hashing and verification of user passwords.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the default bcrypt cost (10).
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted one-way digest from the plaintext. bcrypt
// embeds a random salt, so hashing the same plaintext twice yields
// different digests.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest. A malformed
// digest is reported as a plain mismatch rather than a distinct error,
// so callers cannot tell the two cases apart.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
