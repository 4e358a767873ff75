package handfsm

import (
	"time"

	"holdem-engine/internal/poker/eval"
	"holdem-engine/internal/poker/pot"
	"holdem-engine/pkg/card"
)

// EndHand finalizes the hand: sweeps final pots, evaluates hands at
// showdown (skipped if only one player remains unfolded), distributes
// each pot to its winners with the odd-chip-clockwise-of-dealer rule, and
// credits each winner's stack in the returned state.
func EndHand(state GameState, now time.Time) (GameState, []GameEvent, error) {
	state = sweepPots(state)

	seatOrderIdx := dealOrder(state.Players, state.DealerIndex, func(HandPlayer) bool { return true })
	seatOrder := make([]string, len(seatOrderIdx))
	for i, idx := range seatOrderIdx {
		seatOrder[i] = state.Players[idx].ID
	}

	unfoldedIDs := make([]string, 0, len(state.Players))
	for _, p := range state.Players {
		if !p.Folded {
			unfoldedIDs = append(unfoldedIDs, p.ID)
		}
	}

	hands := make(map[string]eval.Hand)
	showdown := len(unfoldedIDs) > 1
	if showdown {
		for _, p := range state.Players {
			if p.Folded || len(p.HoleCards) != 2 {
				continue
			}
			cards := append(append([]card.Card(nil), p.HoleCards...), state.Community...)
			hands[p.ID] = eval.Evaluate7(cards)
		}
	}

	rank := func(a, b string) int {
		ha, aok := hands[a]
		hb, bok := hands[b]
		if !aok || !bok {
			return 0
		}
		return eval.Compare(ha, hb)
	}

	var winners []WinnerResult
	players := make([]HandPlayer, len(state.Players))
	copy(players, state.Players)

	for potIdx, p := range state.Pots {
		shares := pot.DistributePot(p, rank, seatOrder)
		for id, amount := range shares {
			if amount == 0 {
				continue
			}
			for i := range players {
				if players[i].ID == id {
					players[i].Stack += amount
					break
				}
			}
			var hand *eval.Hand
			if h, ok := hands[id]; ok {
				h := h
				hand = &h
			}
			winners = append(winners, WinnerResult{
				PlayerID:      id,
				PotIndex:      potIdx,
				Amount:        amount,
				EvaluatedHand: hand,
			})
		}
	}

	state.Players = players
	state.Winners = winners
	state.IsHandComplete = true
	state.Phase = Showdown
	state.CurrentPlayerIndex = -1

	events := []GameEvent{{
		Type:       EventHandComplete,
		TableID:    state.TableID,
		Timestamp:  now,
		HandNumber: state.HandNumber,
		Data:       HandCompletePayload{Winners: winners},
	}}
	return state, events, nil
}
