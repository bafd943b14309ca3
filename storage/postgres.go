// storage/postgres.go

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore, connects to the database, and initializes the schema.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database for a few seconds
	for i := 0; i < 5; i++ {
		pool, err = pgxpool.New(ctx, connString)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to database after retries: %w", err)
	}

	store := &PostgresStore{db: pool}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the journal table if it doesn't exist.
func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
    CREATE TABLE IF NOT EXISTS operations (
        id UUID PRIMARY KEY,
        occurred_at TIMESTAMPTZ NOT NULL,
        kind TEXT NOT NULL,
        account_id BIGINT,
        counter_account_id BIGINT,
        amount NUMERIC(19, 5),
        outcome TEXT NOT NULL,
        detail TEXT NOT NULL DEFAULT ''
    );
    CREATE INDEX IF NOT EXISTS operations_account_idx ON operations (account_id, occurred_at);
    CREATE INDEX IF NOT EXISTS operations_counter_idx ON operations (counter_account_id, occurred_at);`
	_, err := s.db.Exec(ctx, query)
	return err
}

// Record appends an operation to the journal.
func (s *PostgresStore) Record(ctx context.Context, op Operation) error {
	op = op.normalize()
	query := `
		INSERT INTO operations (id, occurred_at, kind, account_id, counter_account_id, amount, outcome, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.Exec(ctx, query,
		op.ID, op.OccurredAt, op.Kind, nullID(op.AccountID), nullID(op.CounterAccountID),
		op.Amount, op.Outcome, op.Detail)
	if err != nil {
		return fmt.Errorf("could not record operation: %w", err)
	}
	return nil
}

// ListByAccount returns the journal entries touching an account, oldest first.
func (s *PostgresStore) ListByAccount(ctx context.Context, accountID int64) ([]Operation, error) {
	query := `
		SELECT id, occurred_at, kind, COALESCE(account_id, 0), COALESCE(counter_account_id, 0),
		       amount, outcome, detail
		FROM operations
		WHERE account_id = $1 OR counter_account_id = $1
		ORDER BY occurred_at, id`
	rows, err := s.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not query operations: %w", err)
	}
	defer rows.Close()

	ops := []Operation{}
	for rows.Next() {
		var op Operation
		if err := rows.Scan(&op.ID, &op.OccurredAt, &op.Kind, &op.AccountID, &op.CounterAccountID,
			&op.Amount, &op.Outcome, &op.Detail); err != nil {
			return nil, fmt.Errorf("could not scan operation row: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}

func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
