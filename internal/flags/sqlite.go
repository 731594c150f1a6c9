package flags

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver

	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/pkg/clock"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS flags (
	doc_kind   TEXT NOT NULL,
	doc_id     TEXT NOT NULL,
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (doc_kind, doc_id, namespace, key)
);`

type sqliteStore struct {
	db    *sqlx.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite flag store.
type SQLiteConfig struct {
	// Path is the database file path; ":memory:" is accepted for tests
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// NewSQLite opens (or creates) a SQLite-backed flag store at the given
// path. Suited to single-process hosts without a Redis deployment.
func NewSQLite(cfg *SQLiteConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	db, err := sqlx.Open("sqlite", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database at %s", cfg.Path)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to migrate flags schema")
	}

	return &sqliteStore{db: db, clock: c}, nil
}

func (s *sqliteStore) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateAddress(input.Scope, input.Namespace, input.Key); err != nil {
		return nil, err
	}

	var raw string
	err := s.db.GetContext(ctx, &raw,
		`SELECT value FROM flags WHERE doc_kind = ? AND doc_id = ? AND namespace = ? AND key = ?`,
		string(input.Scope.Kind), input.Scope.ID, input.Namespace, input.Key)
	if err != nil {
		if err == sql.ErrNoRows {
			return &GetOutput{Found: false}, nil
		}
		return nil, errors.Wrapf(err, "failed to read flag %s:%s on %s %s",
			input.Namespace, input.Key, input.Scope.Kind, input.Scope.ID)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, errors.Wrapf(err, "failed to decode flag %s:%s on %s %s",
			input.Namespace, input.Key, input.Scope.Kind, input.Scope.ID)
	}

	return &GetOutput{Value: value, Found: true}, nil
}

func (s *sqliteStore) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if err := validateAddress(input.Scope, input.Namespace, input.Key); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode flag value")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO flags (doc_kind, doc_id, namespace, key, value, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (doc_kind, doc_id, namespace, key)
		 DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(input.Scope.Kind), input.Scope.ID, input.Namespace, input.Key,
		string(data), s.clock.Now().Unix())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write flag %s:%s on %s %s",
			input.Namespace, input.Key, input.Scope.Kind, input.Scope.ID)
	}

	return &SetOutput{}, nil
}
