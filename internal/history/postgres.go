package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Append(ctx context.Context, rec Record) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO sieve_history (sieve_limit, recorded_at) VALUES ($1, $2)`,
		rec.Limit,
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}
	return nil
}

func (r *PgRepository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT sieve_limit, recorded_at FROM sieve_history ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Limit, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return records, nil
}
