package service

import "golang.org/x/crypto/bcrypt"

// Hasher wraps the salted one-way hash used for passwords and for the
// one-time codes. Compare is constant-time with respect to the secret.
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(secret, digest string) bool
}

// BcryptHasher implements Hasher with bcrypt at the default cost (10).
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Compare(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
