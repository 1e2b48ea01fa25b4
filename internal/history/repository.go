package history

import (
	"context"
	"time"
)

// Record is one completed sieve run. Records carry no link to the
// requesting user.
type Record struct {
	Limit     int       `json:"limit"`
	Timestamp time.Time `json:"timestamp"`
}

// Repository is an append-only ledger: records are never mutated or
// deleted, and ListAll returns them in insertion order. An empty ledger
// is a valid state, not an error.
type Repository interface {
	Append(ctx context.Context, rec Record) error
	ListAll(ctx context.Context) ([]Record, error)
}
