// Package tables is the persistent table/seat registry: the tables and
// table_players rows SPEC_FULL.md's schema defines alongside
// active_hands. It is deliberately separate from internal/harness, which
// owns only the per-hand state machine — joining, leaving, and buying in
// happen between hands and never race the hand-scoped version check.
//
// Grounded on internal/storage/postgres/postgres_sessions.go's raw
// database/sql query/scan idiom — no ORM, parameterized queries, the
// same $1-style placeholder convention lib/pq expects.
package tables

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a table row doesn't exist.
var ErrNotFound = errors.New("tables: table not found")

// ErrSeatTaken is returned when JoinTable finds the user already seated
// at the table.
var ErrSeatTaken = errors.New("tables: seat already occupied")

// ErrTableFull is returned when JoinTable finds no open seat.
var ErrTableFull = errors.New("tables: no open seats")

// Config is one table's static configuration.
type Config struct {
	ID            string
	Name          string
	SmallBlind    int
	BigBlind      int
	MaxPlayers    int
	MinBuyIn      int
	MaxBuyIn      int
	TurnTimeoutMs int
	IsPrivate     bool
	InviteCode    string
}

// Seat is one occupied seat at a table.
type Seat struct {
	UserID     string
	Seat       int
	Stack      int
	SittingOut bool
}

// Store persists table configuration and seat assignments.
type Store struct {
	db *sql.DB
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSchema bootstraps the tables/table_players rows, mirroring the
// teacher's CreateSessionTable/CreateSchema idiom of one IF NOT EXISTS
// statement per table.
func (s *Store) CreateSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tables (
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
		)`,
		`CREATE TABLE IF NOT EXISTS table_players (
			table_id        TEXT NOT NULL REFERENCES tables(id),
			user_id         TEXT NOT NULL,
			seat            INTEGER NOT NULL,
			stack           BIGINT NOT NULL,
			is_sitting_out  BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (table_id, seat),
			UNIQUE (table_id, user_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("tables: create schema: %w", err)
		}
	}
	return nil
}

// CreateTable inserts a new table row.
func (s *Store) CreateTable(ctx context.Context, cfg Config) error {
	const query = `
		INSERT INTO tables (
			id, name, blinds_sb, blinds_bb, max_players,
			min_buy_in, max_buy_in, turn_timeout_ms, is_private, invite_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		cfg.ID, cfg.Name, cfg.SmallBlind, cfg.BigBlind, cfg.MaxPlayers,
		cfg.MinBuyIn, cfg.MaxBuyIn, cfg.TurnTimeoutMs, cfg.IsPrivate, cfg.InviteCode,
	)
	if err != nil {
		return fmt.Errorf("tables: create table: %w", err)
	}
	return nil
}

// GetTable fetches a table's configuration.
func (s *Store) GetTable(ctx context.Context, tableID string) (Config, error) {
	const query = `
		SELECT id, name, blinds_sb, blinds_bb, max_players,
		       min_buy_in, max_buy_in, turn_timeout_ms, is_private, invite_code
		FROM tables WHERE id = $1
	`
	var cfg Config
	var inviteCode sql.NullString
	err := s.db.QueryRowContext(ctx, query, tableID).Scan(
		&cfg.ID, &cfg.Name, &cfg.SmallBlind, &cfg.BigBlind, &cfg.MaxPlayers,
		&cfg.MinBuyIn, &cfg.MaxBuyIn, &cfg.TurnTimeoutMs, &cfg.IsPrivate, &inviteCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Config{}, ErrNotFound
	}
	if err != nil {
		return Config{}, fmt.Errorf("tables: get table: %w", err)
	}
	cfg.InviteCode = inviteCode.String
	return cfg, nil
}

// ListSeats returns every occupied seat at a table, ordered by seat
// number, for deriving handfsm.SeatedPlayerInput at deal time.
func (s *Store) ListSeats(ctx context.Context, tableID string) ([]Seat, error) {
	const query = `
		SELECT user_id, seat, stack, is_sitting_out
		FROM table_players WHERE table_id = $1 ORDER BY seat
	`
	rows, err := s.db.QueryContext(ctx, query, tableID)
	if err != nil {
		return nil, fmt.Errorf("tables: list seats: %w", err)
	}
	defer rows.Close()

	var seats []Seat
	for rows.Next() {
		var seat Seat
		if err := rows.Scan(&seat.UserID, &seat.Seat, &seat.Stack, &seat.SittingOut); err != nil {
			return nil, fmt.Errorf("tables: scan seat: %w", err)
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

// JoinTable seats userID at the lowest-numbered open seat with the given
// buy-in, failing if the table is full or the user is already seated.
func (s *Store) JoinTable(ctx context.Context, tableID, userID string, buyIn int) (int, error) {
	cfg, err := s.GetTable(ctx, tableID)
	if err != nil {
		return 0, err
	}

	seats, err := s.ListSeats(ctx, tableID)
	if err != nil {
		return 0, err
	}

	taken := make(map[int]bool, len(seats))
	for _, seat := range seats {
		taken[seat.Seat] = true
		if seat.UserID == userID {
			return 0, ErrSeatTaken
		}
	}

	seatNumber := -1
	for i := 0; i < cfg.MaxPlayers; i++ {
		if !taken[i] {
			seatNumber = i
			break
		}
	}
	if seatNumber == -1 {
		return 0, ErrTableFull
	}

	const query = `
		INSERT INTO table_players (table_id, user_id, seat, stack, is_sitting_out)
		VALUES ($1, $2, $3, $4, FALSE)
	`
	if _, err := s.db.ExecContext(ctx, query, tableID, userID, seatNumber, buyIn); err != nil {
		return 0, fmt.Errorf("tables: join table: %w", err)
	}
	return seatNumber, nil
}

// LeaveTable removes userID's seat at tableID.
func (s *Store) LeaveTable(ctx context.Context, tableID, userID string) error {
	const query = `DELETE FROM table_players WHERE table_id = $1 AND user_id = $2`
	if _, err := s.db.ExecContext(ctx, query, tableID, userID); err != nil {
		return fmt.Errorf("tables: leave table: %w", err)
	}
	return nil
}

// UpdateStack persists a seat's stack after a hand completes.
func (s *Store) UpdateStack(ctx context.Context, tableID, userID string, stack int) error {
	const query = `UPDATE table_players SET stack = $3 WHERE table_id = $1 AND user_id = $2`
	if _, err := s.db.ExecContext(ctx, query, tableID, userID, stack); err != nil {
		return fmt.Errorf("tables: update stack: %w", err)
	}
	return nil
}
