package crypto

import "github.com/google/uuid"

// TokenGenerator issues the opaque per-user technical token. A v4 UUID
// carries 122 random bits, which is the unguessability the credential
// model asks for.
type TokenGenerator interface {
	NewToken() (string, error)
}

type UUIDTokenGenerator struct{}

func NewUUIDTokenGenerator() *UUIDTokenGenerator {
	return &UUIDTokenGenerator{}
}

func (g *UUIDTokenGenerator) NewToken() (string, error) {
	return uuid.NewString(), nil
}
