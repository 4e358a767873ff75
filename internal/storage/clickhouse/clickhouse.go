// Package clickhouse is a write-only analytics sink for completed hands:
// it is the handComplete consumer of the broadcast topic, separate from
// the authoritative Postgres active_hands row internal/harness owns.
//
// Grounded on internal/storage/clickhouse.go's ClickHouseAnalytics,
// trimmed from its four-table hand/fraud/session/table-stats schema down
// to the one table SPEC_FULL.md's telemetry actually produces,
// hand_history, populated from internal/telemetry.HandSummary events
// instead of the teacher's HandAnalyticsEvent/FraudAnalyticsEvent pair.
package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"holdem-engine/internal/telemetry"
)

// Config holds ClickHouse connection configuration, the same field set
// the teacher's ClickHouseConfig exposes.
type Config struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Database     string        `yaml:"database"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	Secure       bool          `yaml:"secure"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	ConnTimeout  time.Duration `yaml:"conn_timeout"`
}

// HandHistoryStore is the hand_history analytics sink.
type HandHistoryStore struct {
	db clickhouse.Conn
}

// New connects to ClickHouse, same clickhouse.Open(&clickhouse.Options{...})
// shape as NewClickHouseAnalytics.
func New(ctx context.Context, config Config) (*HandHistoryStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", config.Host, config.Port)},
		Auth: clickhouse.Auth{
			Database: config.Database,
			Username: config.Username,
			Password: config.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		TLS: &tls.Config{InsecureSkipVerify: config.Secure},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &HandHistoryStore{db: conn}, nil
}

// CreateSchema creates the hand_history table if it doesn't exist.
func (s *HandHistoryStore) CreateSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS hand_history (
		table_id String,
		hand_number Int64,
		pot_total Int64,
		duration_ms Int64,
		winner_ids Array(String),
		winner_amounts Array(Int64),
		player_ids Array(String),
		decision_latency_mean Array(Float64),
		decision_latency_stddev Array(Float64),
		raise_sizing_entropy Array(Float64),
		timestamp DateTime64(3)
	) ENGINE = ReplacingMergeTree(timestamp)
	ORDER BY (table_id, hand_number, timestamp)`

	if err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create hand_history table: %w", err)
	}
	return nil
}

// InsertHandEvent inserts one completed-hand summary as a single row,
// following the teacher's single-Exec-per-row insert idiom rather than
// the native PrepareBatch API the driver also offers (the teacher never
// uses PrepareBatch despite it being available, so this doesn't either).
func (s *HandHistoryStore) InsertHandEvent(ctx context.Context, summary telemetry.HandSummary) error {
	const query = `
		INSERT INTO hand_history (
			table_id, hand_number, pot_total, duration_ms,
			winner_ids, winner_amounts,
			player_ids, decision_latency_mean, decision_latency_stddev, raise_sizing_entropy,
			timestamp
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	winnerIDs := make([]string, len(summary.Winners))
	winnerAmounts := make([]int64, len(summary.Winners))
	for i, w := range summary.Winners {
		winnerIDs[i] = w.PlayerID
		winnerAmounts[i] = int64(w.Amount)
	}

	playerIDs := make([]string, len(summary.PlayerSignals))
	latencyMean := make([]float64, len(summary.PlayerSignals))
	latencyStdDev := make([]float64, len(summary.PlayerSignals))
	raiseEntropy := make([]float64, len(summary.PlayerSignals))
	for i, sig := range summary.PlayerSignals {
		playerIDs[i] = sig.PlayerID
		latencyMean[i] = sig.DecisionLatencyMean
		latencyStdDev[i] = sig.DecisionLatencyStdDev
		raiseEntropy[i] = sig.RaiseSizingEntropy
	}

	return s.db.Exec(ctx, query,
		summary.TableID, summary.HandNumber, summary.PotTotal, summary.DurationMs,
		winnerIDs, winnerAmounts,
		playerIDs, latencyMean, latencyStdDev, raiseEntropy,
		summary.Timestamp,
	)
}

// InsertHandEvents inserts multiple hand summaries, one Exec per row.
func (s *HandHistoryStore) InsertHandEvents(ctx context.Context, summaries []telemetry.HandSummary) error {
	for _, summary := range summaries {
		if err := s.InsertHandEvent(ctx, summary); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying connection.
func (s *HandHistoryStore) Close() error {
	return s.db.Close()
}
