package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	_ "github.com/lib/pq"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS clickchess_sessions (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type PostgresStore struct {
	db *sql.DB
}

// OpenPostgresStore connects, pings and creates the sessions table if it
// does not exist yet.
func OpenPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("database url is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSessionsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, state model.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO clickchess_sessions (id, owner_id, state, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`,
		state.ID, state.OwnerID, raw, time.Now().UTC())
	return err
}

func (s *PostgresStore) Load(ctx context.Context, id string) (model.SessionState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM clickchess_sessions WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SessionState{}, ErrNotFound
	}
	if err != nil {
		return model.SessionState{}, err
	}
	var state model.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.SessionState{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return state, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clickchess_sessions WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
