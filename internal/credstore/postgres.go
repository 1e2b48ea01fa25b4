package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, cred Credential) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO credentials (username, password_hash, technical_token, created_at)
		 VALUES ($1, $2, $3, $4)`,
		cred.Username,
		cred.PasswordHash,
		cred.TechnicalToken,
		cred.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (Credential, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT username, password_hash, technical_token, created_at
		 FROM credentials WHERE username = $1`,
		username,
	)

	var cred Credential
	err := row.Scan(&cred.Username, &cred.PasswordHash, &cred.TechnicalToken, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credential{}, ErrNotFound
		}
		return Credential{}, fmt.Errorf("failed to find credential by username: %w", err)
	}

	return cred, nil
}
