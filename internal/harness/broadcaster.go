package harness

import (
	"sync"

	"holdem-engine/internal/poker/handfsm"
)

// Broadcaster fans GameEvents out to per-table subscribers on topic
// "table:{id}". Grounded on cmd/game-server/main.go's websocket fan-out,
// generalized from "one *Table goroutine writing directly to its own
// conns" into an explicit subscribe/publish registry decoupled from any
// transport, so the harness can publish without owning a connection.
//
// Private events (cardsDealt) still flow through the same topic channel;
// RecipientID distinguishes them. It is the subscriber's job — typically
// the websocket session loop — to drop a private event addressed to
// someone else before forwarding it to its client.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[string][]chan handfsm.GameEvent
}

// NewBroadcaster returns an empty registry.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[string][]chan handfsm.GameEvent)}
}

// Subscribe registers a buffered channel for tableID's events and returns
// an unsubscribe function that must be called when the caller disconnects.
func (b *Broadcaster) Subscribe(tableID string, buffer int) (<-chan handfsm.GameEvent, func()) {
	ch := make(chan handfsm.GameEvent, buffer)
	b.mu.Lock()
	b.subs[tableID] = append(b.subs[tableID], ch)
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[tableID]
		for i, c := range subs {
			if c == ch {
				b.subs[tableID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
}

// Publish fans events out to every current subscriber of tableID. A slow
// or dead subscriber never blocks the mutation path: a full channel drops
// the event rather than stalling the caller that produced it.
func (b *Broadcaster) Publish(tableID string, events []handfsm.GameEvent) {
	b.mu.Lock()
	subs := append([]chan handfsm.GameEvent(nil), b.subs[tableID]...)
	b.mu.Unlock()

	for _, ev := range events {
		for _, ch := range subs {
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
