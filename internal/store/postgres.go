package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS arbiter_decisions (
	decision_id   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	profile       TEXT NOT NULL DEFAULT '',
	mode          TEXT NOT NULL,
	fuzziness     DOUBLE PRECISION NOT NULL DEFAULT 0,
	choice_offset DOUBLE PRECISION,
	chosen        TEXT,
	selected      BOOLEAN NOT NULL DEFAULT FALSE,
	fallback      TEXT NOT NULL DEFAULT '',
	candidates    JSONB NOT NULL DEFAULT '[]',
	client_id     TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
ALTER TABLE arbiter_decisions ADD COLUMN IF NOT EXISTS fallback TEXT NOT NULL DEFAULT '';
CREATE INDEX IF NOT EXISTS arbiter_decisions_profile_idx ON arbiter_decisions (profile, created_at DESC);
`

// EnsureSchema creates the decisions table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const decisionColumns = `decision_id, profile, mode, fuzziness, choice_offset,
	chosen, selected, fallback, candidates, client_id, created_at`

func (s *PostgresStore) CreateDecision(ctx context.Context, d *Decision) error {
	candidatesJSON, err := json.Marshal(d.Candidates)
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}

	var chosen *string
	if d.Selected {
		chosen = &d.Chosen
	}

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO arbiter_decisions (decision_id, profile, mode, fuzziness, choice_offset,
			chosen, selected, fallback, candidates, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		d.ID, d.Profile, d.Mode, d.Fuzziness, d.ChoiceOffset,
		chosen, d.Selected, d.Fallback, candidatesJSON, d.ClientID,
	).Scan(&d.CreatedAt)
}

func (s *PostgresStore) GetDecision(ctx context.Context, id uuid.UUID) (*Decision, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+decisionColumns+`
		FROM arbiter_decisions WHERE decision_id = $1`, id)
	d, err := scanDecision(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostgresStore) ListDecisions(ctx context.Context, filter DecisionFilter) ([]*Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM arbiter_decisions WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Profile != "" {
		n++
		query += fmt.Sprintf(" AND profile = $%d", n)
		args = append(args, filter.Profile)
	}
	if filter.Chosen != "" {
		n++
		query += fmt.Sprintf(" AND chosen = $%d", n)
		args = append(args, filter.Chosen)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []*Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func scanDecision(row pgx.Row) (*Decision, error) {
	d := &Decision{}
	var chosen sql.NullString
	var candidatesJSON []byte
	err := row.Scan(
		&d.ID, &d.Profile, &d.Mode, &d.Fuzziness, &d.ChoiceOffset,
		&chosen, &d.Selected, &d.Fallback, &candidatesJSON, &d.ClientID, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if chosen.Valid {
		d.Chosen = chosen.String
	}
	if candidatesJSON != nil {
		if err := json.Unmarshal(candidatesJSON, &d.Candidates); err != nil {
			return nil, fmt.Errorf("decode candidates: %w", err)
		}
	}
	return d, nil
}
