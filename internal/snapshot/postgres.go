package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/fantadev/asta/internal/models"
	"github.com/fantadev/asta/internal/sqlutil"
	"github.com/fantadev/asta/internal/state"
)

// keepSnapshots bounds the append-only history retained per auction
const keepSnapshots = 50

// PostgresStore persists snapshots as JSONB rows, newest last. Load reads
// the latest row; Save appends and prunes history beyond keepSnapshots.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgresStore connects with the given DSN and ensures the snapshot
// table exists.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore wraps an existing connection; callers own its lifecycle
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS auction_snapshots (
            id       BIGSERIAL PRIMARY KEY,
            payload  JSONB NOT NULL,
            saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec *models.AuctionRecord) error {
	data, err := state.Export(rec)
	if err != nil {
		return err
	}
	payload := pqtype.NullRawMessage{RawMessage: data, Valid: true}

	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO auction_snapshots (payload) VALUES ($1)
        `, payload); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
            DELETE FROM auction_snapshots
            WHERE id NOT IN (
                SELECT id FROM auction_snapshots ORDER BY id DESC LIMIT $1
            )
        `, keepSnapshots); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Load(ctx context.Context) (*models.AuctionRecord, error) {
	var payload pqtype.NullRawMessage
	err := s.db.QueryRowContext(ctx, `
        SELECT payload FROM auction_snapshots ORDER BY id DESC LIMIT 1
    `).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !payload.Valid {
		return nil, ErrNoSnapshot
	}
	return state.Import(payload.RawMessage)
}

// Close releases the underlying connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
