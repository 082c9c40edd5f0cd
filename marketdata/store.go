package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

const createQuotesTableSQL = `
CREATE TABLE IF NOT EXISTS zero_quotes (
    curve_name TEXT          NOT NULL,
    curve_date DATE          NOT NULL,
    position   INT           NOT NULL,
    pillar     TEXT          NOT NULL,
    rate       NUMERIC(12,8) NOT NULL,
    updated_at TIMESTAMPTZ   NOT NULL DEFAULT now(),
    PRIMARY KEY (curve_name, curve_date, pillar)
)`

const upsertQuoteSQL = `
INSERT INTO zero_quotes (curve_name, curve_date, position, pillar, rate, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (curve_name, curve_date, pillar)
DO UPDATE SET position = EXCLUDED.position, rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at`

const selectQuotesSQL = `
SELECT pillar, rate
FROM zero_quotes
WHERE curve_name = $1 AND curve_date = $2
ORDER BY position`

// Store persists quote sets in Postgres. Quote order is kept via an explicit
// position column so a reloaded set rebuilds the same curve.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStore opens a Postgres-backed store and verifies the connection.
func NewStore(ctx context.Context, dsn string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("NewStore: open: %w", err)
	}
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("NewStore: ping: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Init creates the backing table when missing.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createQuotesTableSQL); err != nil {
		return fmt.Errorf("Store.Init: %w", err)
	}
	return nil
}

// SaveQuotes upserts every quote of the set inside one transaction.
func (s *Store) SaveQuotes(ctx context.Context, set QuoteSet) error {
	const op = "SaveQuotes"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	for i, q := range set.Quotes {
		if _, err := tx.ExecContext(ctx, upsertQuoteSQL, set.Name, set.CurveDate, i, q.Pillar, q.Rate); err != nil {
			return fmt.Errorf("%s: pillar %q: %w", op, q.Pillar, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	s.logger.Info().
		Str("curve", set.Name).
		Str("curve_date", set.CurveDate.Format(dateLayout)).
		Int("quotes", len(set.Quotes)).
		Msg("saved quote set")
	return nil
}

// QuotesAsOf loads the quote set stored for (name, asOf). A name/date pair
// with nothing stored fails with ErrNoStoredQuotes.
func (s *Store) QuotesAsOf(ctx context.Context, name string, asOf time.Time) (QuoteSet, error) {
	const op = "QuotesAsOf"

	rows, err := s.db.QueryContext(ctx, selectQuotesSQL, name, asOf)
	if err != nil {
		return QuoteSet{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	set := QuoteSet{Name: name, CurveDate: asOf}
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.Pillar, &q.Rate); err != nil {
			return QuoteSet{}, fmt.Errorf("%s: scan: %w", op, err)
		}
		set.Quotes = append(set.Quotes, q)
	}
	if err := rows.Err(); err != nil {
		return QuoteSet{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(set.Quotes) == 0 {
		return QuoteSet{}, fmt.Errorf("%s: %w: %s on %s", op, ErrNoStoredQuotes, name, asOf.Format(dateLayout))
	}
	return set, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
