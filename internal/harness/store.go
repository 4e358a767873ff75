// Package harness mediates between concurrent request handlers and the
// single authoritative active_hands row per table (spec.md §4.6). Every
// mutation is read -> pure handfsm transform -> conditional write, guarded
// by optimistic version locking with bounded retry, with idempotent replay
// of player actions keyed on (tableId, actionId).
//
// Grounded on internal/storage/postgres/postgres_sessions.go's raw-SQL
// query/scan idiom over database/sql + lib/pq, generalized from a single
// player_sessions table to the active_hands/action_log pair. The teacher
// has no equivalent of this package at all: its *Table type mutates
// in-process state directly under a mutex, which is exactly the
// single-instance anti-pattern spec.md §9 calls out.
package harness

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"holdem-engine/internal/poker/handfsm"
)

var (
	// ErrNotFound is returned when a table has no active_hands row.
	ErrNotFound = errors.New("harness: no active hand for table")
	// ErrConflict is returned when an optimistic write loses the race.
	ErrConflict = errors.New("harness: active_hands version conflict")
)

// Store is the persistence boundary the harness mutates through.
// PostgresStore is the production implementation; tests substitute an
// in-memory Store to exercise the retry/idempotency logic without a
// running database.
type Store interface {
	LoadActiveHand(ctx context.Context, tableID string) (state handfsm.GameState, version int, err error)
	SaveActiveHand(ctx context.Context, tableID string, state handfsm.GameState, expectedVersion int) (newVersion int, err error)
	DeleteActiveHand(ctx context.Context, tableID string) error

	LookupAction(ctx context.Context, tableID, actionID string) (result []byte, found bool, err error)
	RecordAction(ctx context.Context, tableID, actionID string, version int, result []byte) error
}

// PostgresStore implements Store against the active_hands and action_log
// tables (SPEC_FULL.md §4 schema).
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateSchema bootstraps the tables this store needs, mirroring the
// teacher's SessionPostgresStorage.CreateSessionTable idiom.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tables (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			blinds_sb       BIGINT NOT NULL,
			blinds_bb       BIGINT NOT NULL,
			max_players     INTEGER NOT NULL,
			min_buy_in      BIGINT NOT NULL,
			max_buy_in      BIGINT NOT NULL,
			turn_timeout_ms INTEGER NOT NULL,
			is_private      BOOLEAN NOT NULL DEFAULT FALSE,
			invite_code     TEXT
		);

		CREATE TABLE IF NOT EXISTS table_players (
			table_id        TEXT NOT NULL REFERENCES tables(id),
			user_id         TEXT NOT NULL,
			seat            INTEGER NOT NULL,
			stack           BIGINT NOT NULL,
			is_sitting_out  BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (table_id, seat),
			UNIQUE (table_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS active_hands (
			table_id    TEXT PRIMARY KEY REFERENCES tables(id),
			hand_number INTEGER NOT NULL,
			state       JSONB NOT NULL,
			version     INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS action_log (
			table_id   TEXT NOT NULL,
			action_id  TEXT NOT NULL,
			version    INTEGER NOT NULL,
			result     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (table_id, action_id)
		);
	`)
	return err
}

func (s *PostgresStore) LoadActiveHand(ctx context.Context, tableID string) (handfsm.GameState, int, error) {
	var raw []byte
	var version int
	err := s.db.QueryRowContext(ctx, `
		SELECT state, version FROM active_hands WHERE table_id = $1
	`, tableID).Scan(&raw, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return handfsm.GameState{}, 0, ErrNotFound
	}
	if err != nil {
		return handfsm.GameState{}, 0, err
	}
	var state handfsm.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return handfsm.GameState{}, 0, fmt.Errorf("harness: decode active_hands.state: %w", err)
	}
	return state, version, nil
}

// SaveActiveHand upserts the row, writing only if the row either does not
// exist yet or is still at expectedVersion — the optimistic compare-and-swap
// spec.md §4.6 requires. A mismatch is reported as ErrConflict.
func (s *PostgresStore) SaveActiveHand(ctx context.Context, tableID string, state handfsm.GameState, expectedVersion int) (int, error) {
	newVersion := expectedVersion + 1
	state.Version = newVersion
	raw, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("harness: encode active_hands.state: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO active_hands (table_id, hand_number, state, version)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (table_id) DO UPDATE
			SET hand_number = EXCLUDED.hand_number,
			    state       = EXCLUDED.state,
			    version     = EXCLUDED.version
			WHERE active_hands.version = $5
	`, tableID, state.HandNumber, raw, newVersion, expectedVersion)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrConflict
	}
	return newVersion, nil
}

func (s *PostgresStore) DeleteActiveHand(ctx context.Context, tableID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM active_hands WHERE table_id = $1`, tableID)
	return err
}

func (s *PostgresStore) LookupAction(ctx context.Context, tableID, actionID string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT result FROM action_log WHERE table_id = $1 AND action_id = $2
	`, tableID, actionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *PostgresStore) RecordAction(ctx context.Context, tableID, actionID string, version int, result []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_log (table_id, action_id, version, result)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (table_id, action_id) DO NOTHING
	`, tableID, actionID, version, result)
	return err
}
