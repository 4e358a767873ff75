package handfsm

import (
	"time"

	"holdem-engine/internal/poker/betting"
	"holdem-engine/pkg/card"
)

// AdvancePhase sweeps pots, deals the next street's burn + community
// cards, and either hands control back to the first player to act or —
// when fewer than two players can still contest the betting (the rest are
// all-in) — keeps dealing straight through to the river and showdown
// without waiting on input.
func AdvancePhase(state GameState, now time.Time) (GameState, []GameEvent, error) {
	state = sweepPots(state)

	var events []GameEvent
	for {
		if state.Phase == River {
			final, endEvents, err := EndHand(state, now)
			return final, append(events, endEvents...), err
		}

		state.Phase++
		dealStreet(&state)
		resetStreetBetting(&state)

		events = append(events, GameEvent{
			Type:       EventPhaseChanged,
			TableID:    state.TableID,
			Timestamp:  now,
			HandNumber: state.HandNumber,
			Data: PhaseChangedPayload{
				Phase:     state.Phase,
				Community: append([]card.Card(nil), state.Community...),
			},
		})

		if countContestable(state.Players) >= 2 {
			firstIdx, ok := betting.FirstToAct(toRoundState(state), false, state.DealerIndex, state.BBIndex)
			if !ok {
				continue // nobody can act after all; keep dealing the run-out
			}
			state.CurrentPlayerIndex = firstIdx
			state.TurnStartedAt = now
			return state, events, nil
		}
		// Fewer than two players can still act: deal through to showdown.
	}
}

func dealStreet(state *GameState) {
	var n int
	switch state.Phase {
	case Flop:
		n = 3
	case Turn, River:
		n = 1
	default:
		return
	}
	if len(state.Deck) < n+1 {
		return
	}
	state.Deck = state.Deck[1:] // burn
	state.Community = append(state.Community, state.Deck[:n]...)
	state.Deck = state.Deck[n:]
}

func resetStreetBetting(state *GameState) {
	for i := range state.Players {
		state.Players[i].CurrentBet = 0
		state.Players[i].HasActed = false
	}
	state.CurrentBet = 0
	state.LastRaiseAmount = 0
	state.LastAggressorID = ""
	state.LastRaiseWasComplete = true
	state.BBHasActed = false
	state.CurrentPlayerIndex = -1
}

func countContestable(players []HandPlayer) int {
	n := 0
	for _, p := range players {
		if !p.Folded && !p.AllIn {
			n++
		}
	}
	return n
}
