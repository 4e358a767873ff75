package handfsm

import (
	"fmt"
	"time"

	"holdem-engine/internal/poker/betting"
)

func toRoundState(state GameState) betting.RoundState {
	players := make([]betting.PlayerState, len(state.Players))
	for i, p := range state.Players {
		players[i] = betting.PlayerState{
			ID:                  p.ID,
			Stack:               p.Stack,
			CommittedThisStreet: p.CurrentBet,
			Folded:              p.Folded,
			AllIn:               p.AllIn,
			SittingOut:          p.SittingOut,
			HasActedThisStreet:  p.HasActed,
		}
	}
	return betting.RoundState{
		Players:              players,
		CurrentBet:           state.CurrentBet,
		LastRaiseAmount:      state.LastRaiseAmount,
		BigBlind:             state.BigBlind,
		LastAggressorID:      state.LastAggressorID,
		LastRaiseWasComplete: state.LastRaiseWasComplete,
	}
}

func findPlayer(state GameState, playerID string) (int, bool) {
	for i, p := range state.Players {
		if p.ID == playerID {
			return i, true
		}
	}
	return 0, false
}

// ProcessAction validates and applies one player's action: fold, check,
// call, bet, raise, or all-in. On success it returns the next GameState
// (post phase-advance or hand-end if those were triggered) and the events
// produced along the way.
func ProcessAction(state GameState, playerID string, action betting.ActionType, amount int, now time.Time) (GameState, []GameEvent, error) {
	if state.Phase != Preflop && state.Phase != Flop && state.Phase != Turn && state.Phase != River {
		return state, nil, ErrWrongPhase
	}
	idx, ok := findPlayer(state, playerID)
	if !ok {
		return state, nil, ErrUnknownPlayer
	}
	if state.CurrentPlayerIndex != idx {
		return state, nil, ErrWrongTurn
	}

	rs := toRoundState(state)
	legal, callAmount, minTo, maxTo, err := betting.ValidActions(rs, idx)
	if err != nil {
		return state, nil, err
	}
	if !actionAllowed(legal, action) {
		return state, nil, fmt.Errorf("%w: %s not legal here", ErrIllegalAction, action)
	}
	if (action == betting.Bet || action == betting.Raise) && (amount < minTo || amount > maxTo) {
		return state, nil, fmt.Errorf("%w: amount %d outside [%d,%d]", ErrIllegalAction, amount, minTo, maxTo)
	}

	players := make([]HandPlayer, len(state.Players))
	copy(players, state.Players)
	p := &players[idx]
	prevStateCurrentBet := state.CurrentBet

	switch action {
	case betting.Fold:
		p.Folded = true

	case betting.Check:
		// no-op beyond marking acted

	case betting.Call:
		cost := callAmount
		if cost > p.Stack {
			cost = p.Stack
		}
		p.Stack -= cost
		p.CurrentBet += cost
		p.TotalBet += cost
		if p.Stack == 0 {
			p.AllIn = true
		}

	case betting.Bet:
		cost := amount - p.CurrentBet
		p.Stack -= cost
		p.CurrentBet = amount
		p.TotalBet += cost
		if p.Stack == 0 {
			p.AllIn = true
		}
		state.CurrentBet = amount
		state.LastRaiseAmount = amount
		state.LastAggressorID = p.ID
		state.LastRaiseWasComplete = true

	case betting.Raise:
		cost := amount - p.CurrentBet
		p.Stack -= cost
		p.CurrentBet = amount
		p.TotalBet += cost
		if p.Stack == 0 {
			p.AllIn = true
		}
		state.LastRaiseAmount = amount - prevStateCurrentBet
		state.CurrentBet = amount
		state.LastAggressorID = p.ID
		state.LastRaiseWasComplete = true

	case betting.AllIn:
		cost := p.Stack
		resultingBet := p.CurrentBet + cost
		p.Stack = 0
		p.CurrentBet = resultingBet
		p.TotalBet += cost
		p.AllIn = true
		if resultingBet > prevStateCurrentBet {
			raiseSize := resultingBet - prevStateCurrentBet
			state.CurrentBet = resultingBet
			if raiseSize >= state.LastRaiseAmount {
				state.LastRaiseAmount = raiseSize
				state.LastAggressorID = p.ID
				state.LastRaiseWasComplete = true
			} else {
				state.LastRaiseWasComplete = false
			}
		}

	default:
		return state, nil, fmt.Errorf("%w: unhandled action %s", ErrIllegalAction, action)
	}

	p.HasActed = true
	if idx == state.BBIndex && state.Phase == Preflop {
		state.BBHasActed = true
	}
	state.Players = players
	state.ActionLog = append(state.ActionLog, ActionLogEntry{
		PlayerID:  playerID,
		Action:    action,
		Amount:    amount,
		Phase:     state.Phase,
		Timestamp: now,
	})

	events := []GameEvent{{
		Type:       EventPlayerAction,
		TableID:    state.TableID,
		Timestamp:  now,
		HandNumber: state.HandNumber,
		Data:       PlayerActionPayload{PlayerID: playerID, Action: action, Amount: amount},
	}}

	return finishAction(state, idx, events, now)
}

// finishAction runs the decision common to every accepted action (explicit
// or timeout-forced): end the hand if only one player is left unfolded,
// advance the phase if the betting round has closed, or hand control to
// the next player to act.
func finishAction(state GameState, actedIdx int, events []GameEvent, now time.Time) (GameState, []GameEvent, error) {
	rs := toRoundState(state)
	if betting.ContestedPlayersRemaining(rs) == 1 {
		final, endEvents, err := EndHand(state, now)
		return final, append(events, endEvents...), err
	}

	if betting.IsRoundComplete(rs) {
		advanced, advEvents, err := AdvancePhase(state, now)
		return advanced, append(events, advEvents...), err
	}

	nextIdx, ok := betting.NextToAct(rs, actedIdx)
	if !ok {
		advanced, advEvents, err := AdvancePhase(state, now)
		return advanced, append(events, advEvents...), err
	}
	state.CurrentPlayerIndex = nextIdx
	state.TurnStartedAt = now
	return state, events, nil
}

// ExpireTurn force-folds the current player on a timeout claim. Unlike
// ProcessAction it takes no player or action from the caller and checks
// no action legality — fold is always legal. It only requires a betting
// phase (ErrWrongPhase), a current player (ErrWrongTurn), and an expired
// clock (ErrIllegalAction).
func ExpireTurn(state GameState, now time.Time) (GameState, []GameEvent, error) {
	if state.Phase != Preflop && state.Phase != Flop && state.Phase != Turn && state.Phase != River {
		return state, nil, ErrWrongPhase
	}
	idx := state.CurrentPlayerIndex
	if idx < 0 || idx >= len(state.Players) {
		return state, nil, ErrWrongTurn
	}
	deadline := state.TurnStartedAt.Add(time.Duration(state.TurnTimeoutMs) * time.Millisecond)
	if now.Before(deadline) {
		return state, nil, ErrIllegalAction
	}

	playerID := state.Players[idx].ID
	players := make([]HandPlayer, len(state.Players))
	copy(players, state.Players)
	players[idx].Folded = true
	players[idx].HasActed = true
	state.Players = players
	state.ActionLog = append(state.ActionLog, ActionLogEntry{
		PlayerID:  playerID,
		Action:    betting.Fold,
		Phase:     state.Phase,
		Timestamp: now,
		IsTimeout: true,
	})

	events := []GameEvent{
		{
			Type:       EventPlayerAction,
			TableID:    state.TableID,
			Timestamp:  now,
			HandNumber: state.HandNumber,
			Data:       PlayerActionPayload{PlayerID: playerID, Action: betting.Fold, IsTimeout: true},
		},
		{
			Type:       EventPlayerTimeout,
			TableID:    state.TableID,
			Timestamp:  now,
			HandNumber: state.HandNumber,
			Data:       PlayerActionPayload{PlayerID: playerID, Action: betting.Fold, IsTimeout: true},
		},
	}

	return finishAction(state, idx, events, now)
}

func actionAllowed(legal []betting.ActionType, want betting.ActionType) bool {
	for _, a := range legal {
		if a == want {
			return true
		}
	}
	return false
}
