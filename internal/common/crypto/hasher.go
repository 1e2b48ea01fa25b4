package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/constants"
)

// PasswordHasher abstracts the one-way password hash so services and
// tests never touch bcrypt directly.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher hashes registration passwords at a fixed cost. Only the
// hash is stored; the technical token is generated independently and is
// never derived from the password.
type BcryptHasher struct{}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
