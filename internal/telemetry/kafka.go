package telemetry

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"holdem-engine/internal/poker/handfsm"
)

const defaultTopic = "poker.hand-events"

// PublisherConfig configures a Publisher's underlying sarama producer,
// mirroring KafkaAlertProducerConfig's field set trimmed to sync mode.
type PublisherConfig struct {
	Brokers        []string
	Topic          string
	MaxRetries     int
	RetryBackoff   time.Duration
	FlushFrequency time.Duration
	RequiredAcks   sarama.RequiredAcks
}

// Publisher sends HandSummary events to Kafka, structured the same way
// KafkaAlertProducer sends AlertMessage events.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	mu       sync.RWMutex
	closed   bool
	sent     int64
	failed   int64
}

// NewPublisher creates a Publisher backed by a sarama.SyncProducer.
func NewPublisher(config PublisherConfig) (*Publisher, error) {
	topic := config.Topic
	if topic == "" {
		topic = defaultTopic
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = config.MaxRetries
	saramaConfig.Producer.Retry.Backoff = config.RetryBackoff
	saramaConfig.Producer.Flush.Frequency = config.FlushFrequency
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create Kafka producer: %w", err)
	}

	return &Publisher{producer: producer, topic: topic}, nil
}

// WinnerSummary is one player's share of one pot at showdown.
type WinnerSummary struct {
	PlayerID string `json:"player_id"`
	PotIndex int    `json:"pot_index"`
	Amount   int    `json:"amount"`
}

// HandSummary is the message format published to poker.hand-events.
type HandSummary struct {
	TableID       string          `json:"table_id"`
	HandNumber    int             `json:"hand_number"`
	PotTotal      int             `json:"pot_total"`
	DurationMs    int64           `json:"duration_ms"`
	Winners       []WinnerSummary `json:"winners"`
	PlayerSignals []Signals       `json:"player_signals"`
	Timestamp     time.Time       `json:"timestamp"`
}

// BuildHandSummary assembles a HandSummary from a completed hand's final
// state plus its start time.
func BuildHandSummary(state handfsm.GameState, startedAt time.Time, now time.Time) HandSummary {
	potTotal := 0
	for _, p := range state.Pots {
		potTotal += p.Amount
	}
	winners := make([]WinnerSummary, 0, len(state.Winners))
	for _, w := range state.Winners {
		winners = append(winners, WinnerSummary{PlayerID: w.PlayerID, PotIndex: w.PotIndex, Amount: w.Amount})
	}
	return HandSummary{
		TableID:       state.TableID,
		HandNumber:    state.HandNumber,
		PotTotal:      potTotal,
		DurationMs:    now.Sub(startedAt).Milliseconds(),
		Winners:       winners,
		PlayerSignals: ExtractSignals(state),
		Timestamp:     now,
	}
}

// Publish sends a HandSummary to Kafka synchronously.
func (p *Publisher) Publish(summary HandSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("telemetry: failed to marshal hand summary: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(summary.TableID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("table_id"), Value: []byte(summary.TableID)},
		},
		Timestamp: summary.Timestamp,
	}

	_, _, err = p.producer.SendMessage(msg)
	p.mu.Lock()
	if err != nil {
		p.failed++
	} else {
		p.sent++
	}
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("telemetry: failed to publish hand summary: %w", err)
	}
	return nil
}

// Stats returns the number of messages sent and failed so far.
func (p *Publisher) Stats() (sent, failed int64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sent, p.failed
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.producer.Close()
}
