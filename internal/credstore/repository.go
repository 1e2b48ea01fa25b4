package credstore

import (
	"context"
	"errors"
	"time"
)

// Credential is the per-user record: a salted irreversible password
// hash and the opaque technical token issued once at registration. The
// token is the shared secret of the time-windowed request
// authentication and is never rotated.
type Credential struct {
	Username       string    `json:"-"`
	PasswordHash   string    `json:"hashed_password"`
	TechnicalToken string    `json:"tech_token"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
}

var (
	ErrNotFound       = errors.New("credential not found")
	ErrUsernameExists = errors.New("username already exists")
)

type Repository interface {
	Create(ctx context.Context, cred Credential) error
	FindByUsername(ctx context.Context, username string) (Credential, error)
}
