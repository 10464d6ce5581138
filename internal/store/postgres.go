package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. Tests substitute
// a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS saved_research (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	category    TEXT NOT NULL,
	depth       TEXT NOT NULL,
	response    TEXT NOT NULL,
	wiki_image  TEXT NOT NULL DEFAULT '',
	images      JSONB NOT NULL DEFAULT '[]',
	suggestions JSONB NOT NULL DEFAULT '[]',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, topic, category, depth)
);

CREATE INDEX IF NOT EXISTS idx_saved_research_user
	ON saved_research (user_id, created_at DESC);
`

// Migrate creates the schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Save inserts a record; a duplicate save key yields ErrAlreadySaved.
func (s *PostgresStore) Save(ctx context.Context, rec model.SavedResearch) (*model.SavedResearch, error) {
	rec.ID = uuid.NewString()
	rec.Topic = strings.TrimSpace(rec.Topic)
	rec.CreatedAt = time.Now().UTC()

	images, err := json.Marshal(rec.Images)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal images")
	}
	suggestions, err := json.Marshal(rec.Suggestions)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal suggestions")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO saved_research (id, user_id, topic, category, depth, response, wiki_image, images, suggestions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.UserID, rec.Topic, rec.Category, rec.Depth, rec.Response,
		rec.WikiImage, images, suggestions, rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadySaved
		}
		return nil, eris.Wrap(err, "postgres: insert saved research")
	}
	return &rec, nil
}

// ListByUser returns a user's saved research, newest first.
func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit int) ([]model.SavedResearch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, topic, category, depth, response, wiki_image, images, suggestions, created_at
		FROM saved_research WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list saved research")
	}
	defer rows.Close()

	var out []model.SavedResearch
	for rows.Next() {
		rec, err := scanSavedPg(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate saved research")
}

// Get returns one record by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.SavedResearch, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, topic, category, depth, response, wiki_image, images, suggestions, created_at
		FROM saved_research WHERE id = $1`, id)
	rec, err := scanSavedPg(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Delete removes one record owned by the user.
func (s *PostgresStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_research WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return eris.Wrap(err, "postgres: delete saved research")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func scanSavedPg(row pgx.Row) (*model.SavedResearch, error) {
	var rec model.SavedResearch
	var images, suggestions []byte
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Topic, &rec.Category, &rec.Depth,
		&rec.Response, &rec.WikiImage, &images, &suggestions, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan saved research")
	}
	if err := json.Unmarshal(images, &rec.Images); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal images")
	}
	if err := json.Unmarshal(suggestions, &rec.Suggestions); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal suggestions")
	}
	return &rec, nil
}
