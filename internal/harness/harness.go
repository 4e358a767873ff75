package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"holdem-engine/internal/poker/betting"
	"holdem-engine/internal/poker/handfsm"
	"holdem-engine/pkg/card"
)

// Bounded retry budget for a version conflict, per spec.md §4.6/§7: at most
// maxAttempts reads-and-writes, never spending more than retryWindow total.
const (
	maxAttempts = 3
	retryWindow = 200 * time.Millisecond
)

// Harness is the optimistic-concurrency mediator between concurrent
// request handlers and a single table's authoritative active_hands row.
// Deal, Action and ClaimTimeout all funnel through mutate; Reset deletes
// the row directly, and GetState is a plain read with hole cards filtered
// for the requesting viewer.
type Harness struct {
	store       Store
	broadcaster *Broadcaster
	rng         card.Source
}

// New wires a Store, a Broadcaster (created fresh if nil), and the card
// source used to shuffle every new hand.
func New(store Store, broadcaster *Broadcaster, rng card.Source) *Harness {
	if broadcaster == nil {
		broadcaster = NewBroadcaster()
	}
	return &Harness{store: store, broadcaster: broadcaster, rng: rng}
}

// Broadcaster exposes the harness's event fan-out registry so a transport
// layer (e.g. the websocket session loop) can subscribe to a table's topic.
func (h *Harness) Broadcaster() *Broadcaster { return h.broadcaster }

// Deal starts a new hand for the given seats and persists it as the
// table's active hand.
func (h *Harness) Deal(ctx context.Context, tableID string, seats []handfsm.SeatedPlayerInput, previousDealerIndex, handNumber, smallBlind, bigBlind, turnTimeoutMs int, now time.Time) (handfsm.GameState, error) {
	state, _, err := h.mutate(ctx, tableID, func(handfsm.GameState) (handfsm.GameState, []handfsm.GameEvent, error) {
		created, err := handfsm.CreateGameState(tableID, seats, previousDealerIndex, handNumber, smallBlind, bigBlind, turnTimeoutMs)
		if err != nil {
			return handfsm.GameState{}, nil, err
		}
		return handfsm.StartHand(created, h.rng, now)
	})
	return state, err
}

// Action applies one player action, replaying a cached result if actionID
// was already committed (idempotent replay, spec.md §4.6).
func (h *Harness) Action(ctx context.Context, tableID, actionID, playerID string, action betting.ActionType, amount int, now time.Time) (handfsm.GameState, error) {
	if cached, found, err := h.store.LookupAction(ctx, tableID, actionID); err != nil {
		return handfsm.GameState{}, err
	} else if found {
		var state handfsm.GameState
		if err := json.Unmarshal(cached, &state); err != nil {
			return handfsm.GameState{}, fmt.Errorf("harness: decode cached action result: %w", err)
		}
		RecordActionReplay()
		return state, nil
	}

	final, _, err := h.mutate(ctx, tableID, func(state handfsm.GameState) (handfsm.GameState, []handfsm.GameEvent, error) {
		if state.TableID == "" {
			return state, nil, ErrNotFound
		}
		return handfsm.ProcessAction(state, playerID, action, amount, now)
	})
	if err != nil {
		return handfsm.GameState{}, err
	}

	if raw, err := json.Marshal(final); err == nil {
		_ = h.store.RecordAction(ctx, tableID, actionID, final.Version, raw)
	}
	return final, nil
}

// ClaimTimeout force-folds the player currently on the clock if their turn
// has actually expired. Any connected client may call this; it needs no
// idempotency key because a second claim against an already-advanced turn
// simply fails ExpireTurn's deadline check.
func (h *Harness) ClaimTimeout(ctx context.Context, tableID string, now time.Time) (handfsm.GameState, error) {
	final, _, err := h.mutate(ctx, tableID, func(state handfsm.GameState) (handfsm.GameState, []handfsm.GameEvent, error) {
		if state.TableID == "" {
			return state, nil, ErrNotFound
		}
		return handfsm.ExpireTurn(state, now)
	})
	if err != nil {
		RecordTimeoutClaim("rejected")
	} else {
		RecordTimeoutClaim("applied")
	}
	return final, err
}

// GetState returns tableID's active hand as seen by viewerID: other
// players' hole cards, and the undealt deck, are never included.
func (h *Harness) GetState(ctx context.Context, tableID, viewerID string) (GameStateView, error) {
	state, _, err := h.store.LoadActiveHand(ctx, tableID)
	if err != nil {
		return GameStateView{}, err
	}
	return viewFor(state, viewerID), nil
}

// Reset discards tableID's active hand entirely (used between sessions or
// after an unrecoverable desync; never during normal play).
func (h *Harness) Reset(ctx context.Context, tableID string) error {
	return h.store.DeleteActiveHand(ctx, tableID)
}

// mutate loads the latest persisted state, applies fn, and writes the
// result back under an optimistic version check, retrying on conflict up
// to maxAttempts times or until retryWindow elapses, whichever comes
// first. On success the produced events are published to the table's
// broadcast topic.
func (h *Harness) mutate(ctx context.Context, tableID string, fn func(handfsm.GameState) (handfsm.GameState, []handfsm.GameEvent, error)) (handfsm.GameState, []handfsm.GameEvent, error) {
	attemptStart := time.Now()
	deadline := attemptStart.Add(retryWindow)
	var lastConflict error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		state, version, err := h.store.LoadActiveHand(ctx, tableID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return handfsm.GameState{}, nil, err
		}

		next, events, err := fn(state)
		if err != nil {
			return handfsm.GameState{}, nil, err
		}

		if _, err := h.store.SaveActiveHand(ctx, tableID, next, version); err != nil {
			if !errors.Is(err, ErrConflict) {
				return handfsm.GameState{}, nil, err
			}
			lastConflict = err
			RecordMutateAttempt(time.Since(attemptStart).Seconds(), true)
			if time.Now().After(deadline) {
				break
			}
			continue
		}

		RecordMutateAttempt(time.Since(attemptStart).Seconds(), false)
		h.broadcaster.Publish(tableID, events)
		return next, events, nil
	}

	RecordRetryBudgetExhausted()
	return handfsm.GameState{}, nil, fmt.Errorf("%w: exhausted retry budget: %v", ErrConflict, lastConflict)
}
