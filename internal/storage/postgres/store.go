package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"leadengine/pkg/platform/sentinel"
)

// DefaultTable holds one row per scoped visitor key.
const DefaultTable = "visitor_storage"

// Store persists visitor state in PostgreSQL. Suited to deployments that
// already run Postgres and want visitor history alongside CRM data.
type Store struct {
	db    *sql.DB
	table string
	clock func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTable overrides the table name.
func WithTable(table string) Option {
	return func(s *Store) {
		if table != "" {
			s.table = table
		}
	}
}

// WithClock sets the clock used for updated_at, for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a Postgres visitor store.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, table: DefaultTable, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureSchema creates the backing table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, pq.QuoteIdentifier(s.table))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure visitor storage schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, pq.QuoteIdentifier(s.table))
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", wrapUnavailable("get", key, err)
	}
	return value, nil
}

// Set upserts the value; concurrent writers resolve last-write-wins.
func (s *Store) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, pq.QuoteIdentifier(s.table))
	if _, err := s.db.ExecContext(ctx, query, key, value, s.clock()); err != nil {
		return wrapUnavailable("set", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, pq.QuoteIdentifier(s.table))
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return wrapUnavailable("delete", key, err)
	}
	return nil
}

func wrapUnavailable(op, key string, err error) error {
	// The store runs on either lib/pq or the pgx stdlib driver.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres %s %s (%s): %w: %w", op, key, pqErr.Code.Name(), sentinel.ErrUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s %s (%s): %w: %w", op, key, pgErr.Code, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("postgres %s %s: %w: %w", op, key, sentinel.ErrUnavailable, err)
}
