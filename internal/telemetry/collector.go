package telemetry

import (
	"context"
	"log"
	"sync"
	"time"

	"holdem-engine/internal/harness"
	"holdem-engine/internal/poker/handfsm"
)

// Collector subscribes to one or more tables' broadcast topics and, on
// each handComplete event, fetches the final hand state, records its
// decision-latency/raise-sizing signals to Prometheus, and publishes a
// HandSummary to Kafka. Grounded in shape on cmd/game-server/main.go's
// per-table event consumer goroutine, repurposed from websocket fan-out
// to telemetry.
type Collector struct {
	harness   *harness.Harness
	publisher *Publisher
	sink      HandHistorySink

	mu      sync.Mutex
	started map[string]time.Time
}

// HandHistorySink persists a completed hand's summary for analytics.
// internal/storage/clickhouse.HandHistoryStore satisfies this; it is
// expressed here rather than imported directly to avoid a dependency
// cycle (that package imports HandSummary from this one).
type HandHistorySink interface {
	InsertHandEvent(ctx context.Context, summary HandSummary) error
}

// NewCollector wires a Collector to the harness it reads final state
// from and the publisher it forwards hand summaries to. publisher may be
// nil, in which case summaries are computed and recorded to Prometheus
// but never published (useful in tests or when Kafka isn't configured).
func NewCollector(h *harness.Harness, publisher *Publisher) *Collector {
	return &Collector{harness: h, publisher: publisher, started: make(map[string]time.Time)}
}

// SetSink wires an optional analytics sink (e.g. ClickHouse); every
// processed hand summary is also inserted there once set.
func (c *Collector) SetSink(sink HandHistorySink) {
	c.sink = sink
}

// Watch subscribes to tableID's broadcast topic and processes its events
// in a background goroutine until ctx is cancelled. The returned func
// unsubscribes immediately.
func (c *Collector) Watch(ctx context.Context, tableID string) func() {
	ch, unsubscribe := c.harness.Broadcaster().Subscribe(tableID, 64)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				c.handle(ctx, ev)
			}
		}
	}()
	return unsubscribe
}

// HandleEvent processes a single event synchronously. Exported so a
// caller already consuming the broadcast topic for its own purposes
// (e.g. the websocket session loop) can feed events to the collector
// without a second subscription.
func (c *Collector) HandleEvent(ctx context.Context, ev handfsm.GameEvent) {
	c.handle(ctx, ev)
}

func (c *Collector) handle(ctx context.Context, ev handfsm.GameEvent) {
	switch ev.Type {
	case handfsm.EventHandStarted:
		c.mu.Lock()
		c.started[ev.TableID] = ev.Timestamp
		c.mu.Unlock()

	case handfsm.EventHandComplete:
		c.mu.Lock()
		startedAt, ok := c.started[ev.TableID]
		delete(c.started, ev.TableID)
		c.mu.Unlock()
		if !ok {
			startedAt = ev.Timestamp
		}
		c.processHandComplete(ctx, ev.TableID, startedAt, ev.Timestamp)
	}
}

func (c *Collector) processHandComplete(ctx context.Context, tableID string, startedAt, now time.Time) {
	view, err := c.harness.GetState(ctx, tableID, "")
	if err != nil {
		log.Printf("telemetry: failed to fetch final state for table %s: %v", tableID, err)
		return
	}

	summary := BuildHandSummary(view.GameState, startedAt, now)
	for _, s := range summary.PlayerSignals {
		RecordSignals(tableID, s)
	}
	RecordHandProcessed(tableID)

	if c.sink != nil {
		if err := c.sink.InsertHandEvent(ctx, summary); err != nil {
			log.Printf("telemetry: failed to insert hand summary for table %s: %v", tableID, err)
		}
	}

	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(summary); err != nil {
		RecordPublishError(tableID)
		log.Printf("telemetry: failed to publish hand summary for table %s: %v", tableID, err)
	}
}
