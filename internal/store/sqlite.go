package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS saved_research (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	category    TEXT NOT NULL,
	depth       TEXT NOT NULL,
	response    TEXT NOT NULL,
	wiki_image  TEXT NOT NULL DEFAULT '',
	images      TEXT NOT NULL DEFAULT '[]',
	suggestions TEXT NOT NULL DEFAULT '[]',
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_research_key
	ON saved_research (user_id, topic, category, depth);

CREATE INDEX IF NOT EXISTS idx_saved_research_user
	ON saved_research (user_id, created_at);
`

// Migrate creates the schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// Save inserts a record; a duplicate save key yields ErrAlreadySaved.
func (s *SQLiteStore) Save(ctx context.Context, rec model.SavedResearch) (*model.SavedResearch, error) {
	rec.ID = uuid.NewString()
	rec.Topic = strings.TrimSpace(rec.Topic)
	rec.CreatedAt = time.Now().UTC()

	images, err := json.Marshal(rec.Images)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal images")
	}
	suggestions, err := json.Marshal(rec.Suggestions)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal suggestions")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_research (id, user_id, topic, category, depth, response, wiki_image, images, suggestions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Topic, rec.Category, rec.Depth, rec.Response,
		rec.WikiImage, string(images), string(suggestions), rec.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrAlreadySaved
		}
		return nil, eris.Wrap(err, "sqlite: insert saved research")
	}
	return &rec, nil
}

// ListByUser returns a user's saved research, newest first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string, limit int) ([]model.SavedResearch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, topic, category, depth, response, wiki_image, images, suggestions, created_at
		FROM saved_research WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list saved research")
	}
	defer rows.Close()

	var out []model.SavedResearch
	for rows.Next() {
		rec, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate saved research")
}

// Get returns one record by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.SavedResearch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, topic, category, depth, response, wiki_image, images, suggestions, created_at
		FROM saved_research WHERE id = ?`, id)
	rec, err := scanSaved(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return rec, err
}

// Delete removes one record owned by the user.
func (s *SQLiteStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_research WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete saved research")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaved(row rowScanner) (*model.SavedResearch, error) {
	var rec model.SavedResearch
	var images, suggestions string
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Topic, &rec.Category, &rec.Depth,
		&rec.Response, &rec.WikiImage, &images, &suggestions, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan saved research")
	}
	if err := json.Unmarshal([]byte(images), &rec.Images); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal images")
	}
	if err := json.Unmarshal([]byte(suggestions), &rec.Suggestions); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal suggestions")
	}
	return &rec, nil
}
