package handfsm

import (
	"time"

	"holdem-engine/internal/poker/betting"
	"holdem-engine/pkg/card"
)

// StartHand shuffles a fresh deck, deals hole cards, and posts blinds. It
// must be called on a GameState produced by CreateGameState (Phase ==
// Waiting). Returns the started state plus the events to emit: one
// handStarted broadcast, and one private cardsDealt event per dealt
// player.
func StartHand(state GameState, rng card.Source, now time.Time) (GameState, []GameEvent, error) {
	if state.Phase != Waiting {
		return state, nil, ErrHandAlreadyActive
	}

	deck := card.NewDeck()
	card.Shuffle(deck, rng)

	players := make([]HandPlayer, len(state.Players))
	copy(players, state.Players)

	active := func(p HandPlayer) bool { return !p.SittingOut }
	order := dealOrder(players, state.DealerIndex, active)

	// Deal two hole cards per active player, one at a time, two rounds.
	cursor := 0
	for round := 0; round < 2; round++ {
		for _, idx := range order {
			players[idx].HoleCards = append(players[idx].HoleCards, deck[cursor])
			cursor++
		}
	}
	deck = deck[cursor:]

	postBlind := func(idx int, blind int) int {
		p := &players[idx]
		amount := blind
		if amount > p.Stack {
			amount = p.Stack
		}
		p.Stack -= amount
		p.CurrentBet += amount
		p.TotalBet += amount
		if p.Stack == 0 {
			p.AllIn = true
		}
		return amount
	}

	postBlind(state.SBIndex, state.SmallBlind)
	postBlind(state.BBIndex, state.BigBlind)

	state.Players = players
	state.Deck = deck
	state.Community = nil
	state.Phase = Preflop
	state.CurrentBet = players[state.BBIndex].CurrentBet
	state.LastRaiseAmount = state.BigBlind
	state.LastAggressorID = players[state.BBIndex].ID
	state.LastRaiseWasComplete = true
	state.BBHasActed = false
	state.IsHandComplete = false
	state.Winners = nil
	state.Pots = nil
	state.ActionLog = nil

	firstIdx, ok := betting.FirstToAct(toRoundState(state), true, state.DealerIndex, state.BBIndex)
	if !ok {
		firstIdx = state.BBIndex
	}
	state.CurrentPlayerIndex = firstIdx
	state.TurnStartedAt = now

	events := []GameEvent{{
		Type:       EventHandStarted,
		TableID:    state.TableID,
		Timestamp:  now,
		HandNumber: state.HandNumber,
	}}
	for _, idx := range order {
		events = append(events, GameEvent{
			Type:        EventCardsDealt,
			TableID:     state.TableID,
			Timestamp:   now,
			HandNumber:  state.HandNumber,
			RecipientID: players[idx].ID,
			Data:        CardsDealtPayload{HoleCards: append([]card.Card(nil), players[idx].HoleCards...)},
		})
	}

	return state, events, nil
}

// dealOrder returns seat indices starting left of dealerIdx (clockwise),
// restricted to players satisfying pred.
func dealOrder(players []HandPlayer, dealerIdx int, pred func(HandPlayer) bool) []int {
	n := len(players)
	order := make([]int, 0, n)
	for step := 1; step <= n; step++ {
		i := (dealerIdx + step) % n
		if pred(players[i]) {
			order = append(order, i)
		}
	}
	return order
}
