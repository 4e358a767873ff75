// Package ai implements the preflop chart lookup and postflop heuristic
// suggester: a pure function from public game state plus one player's own
// hole cards to a legal (action, amount) recommendation.
//
// The teacher has no AI or bot-decision code anywhere in its tree; this
// package is grounded entirely on
// _examples/other_examples/135e72c3_philipjkim-pls7-cli__pkg-engine-ai.go.go,
// whose evaluateHandStrength/GetCPUAction shape (a heuristic strength
// score driving a threshold ladder of fold/call/bet/raise, bluffing gated
// behind an injected *rand.Rand) is adapted from its floating personality
// profiles into fixed, deterministic preflop charts plus the same kind of
// postflop ladder.
package ai

import (
	"math/rand"

	"holdem-engine/internal/harness"
	"holdem-engine/internal/poker/betting"
	"holdem-engine/internal/poker/handfsm"
)

// Suggestion is a recommended, already-legal action.
type Suggestion struct {
	Action     betting.ActionType
	Amount     int
	Confidence float64
	Rationale  string
}

// decision is the pre-clamp output of the preflop/postflop ladders:
// toAmount is the desired bet/raise target, bounded into the acting
// player's legal range only later, by clamp.
type decision struct {
	action     betting.ActionType
	toAmount   int // absolute "raise to" amount for a bet/raise decision
	confidence float64
	rationale  string
}

// Suggest recommends a legal action for the player at playerIdx, using
// only state visible to that player (view must already have been
// produced by harness.Harness.GetState for that viewer — other players'
// hole cards and the deck are never present). rng gates postflop
// bluff/semi-bluff jitter so callers can pin a seed in tests; pass
// rand.New(rand.NewSource(time.Now().UnixNano())) in production.
func Suggest(view harness.GameStateView, playerIdx int, rng *rand.Rand) Suggestion {
	if playerIdx < 0 || playerIdx >= len(view.Players) {
		return Suggestion{Action: betting.Fold, Confidence: 0}
	}
	me := view.Players[playerIdx]
	if len(me.HoleCards) != 2 {
		return Suggestion{Action: betting.Fold, Confidence: 0}
	}

	rs := toRoundState(view)
	legal, callAmount, minRaiseTo, maxRaiseTo, err := betting.ValidActions(rs, playerIdx)
	if err != nil || len(legal) == 0 {
		return Suggestion{Action: betting.Fold, Confidence: 0}
	}

	var d decision
	if view.Phase == handfsm.Preflop {
		d = decidePreflop(view, playerIdx, me)
	} else {
		d = decidePostflop(view, me, rng)
	}

	suggestion := clamp(d, legal, callAmount, minRaiseTo, maxRaiseTo, rs.Players[playerIdx])
	RecordSuggestion(suggestion)
	return suggestion
}

func toRoundState(view harness.GameStateView) betting.RoundState {
	players := make([]betting.PlayerState, len(view.Players))
	for i, p := range view.Players {
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
		CurrentBet:           view.CurrentBet,
		LastRaiseAmount:      view.LastRaiseAmount,
		BigBlind:             view.BigBlind,
		LastAggressorID:      view.LastAggressorID,
		LastRaiseWasComplete: view.LastRaiseWasComplete,
	}
}

func potSize(view harness.GameStateView) int {
	total := 0
	for _, p := range view.Pots {
		total += p.Amount
	}
	for _, p := range view.Players {
		total += p.CurrentBet
	}
	return total
}

// clamp turns a decision into a legal Suggestion: a bet/raise intent is
// downgraded to call/check/fold if betting is already closed for this
// player, and any amount is bounded into [minRaiseTo, maxRaiseTo] (or the
// call amount, for a plain call).
func clamp(d decision, legal []betting.ActionType, callAmount, minRaiseTo, maxRaiseTo int, me betting.PlayerState) Suggestion {
	has := func(a betting.ActionType) bool {
		for _, x := range legal {
			if x == a {
				return true
			}
		}
		return false
	}

	switch d.action {
	case betting.Fold:
		if has(betting.Check) {
			return Suggestion{Action: betting.Check, Confidence: d.confidence, Rationale: d.rationale}
		}
		return Suggestion{Action: betting.Fold, Confidence: d.confidence, Rationale: d.rationale}

	case betting.Check:
		if has(betting.Check) {
			return Suggestion{Action: betting.Check, Confidence: d.confidence, Rationale: d.rationale}
		}
		return Suggestion{Action: betting.Fold, Confidence: d.confidence, Rationale: d.rationale}

	case betting.Call:
		if has(betting.Call) {
			return Suggestion{Action: betting.Call, Amount: callAmount, Confidence: d.confidence, Rationale: d.rationale}
		}
		if has(betting.Check) {
			return Suggestion{Action: betting.Check, Confidence: d.confidence, Rationale: d.rationale}
		}
		return Suggestion{Action: betting.Fold, Confidence: d.confidence, Rationale: d.rationale}

	case betting.Bet, betting.Raise:
		actionType := betting.Bet
		if has(betting.Raise) {
			actionType = betting.Raise
		} else if !has(betting.Bet) {
			// Betting is closed for this player: fall back.
			if has(betting.Call) {
				return Suggestion{Action: betting.Call, Amount: callAmount, Confidence: d.confidence, Rationale: d.rationale}
			}
			if has(betting.Check) {
				return Suggestion{Action: betting.Check, Confidence: d.confidence, Rationale: d.rationale}
			}
			return Suggestion{Action: betting.Fold, Confidence: d.confidence, Rationale: d.rationale}
		}
		if minRaiseTo == 0 && maxRaiseTo == 0 {
			if has(betting.Call) {
				return Suggestion{Action: betting.Call, Amount: callAmount, Confidence: d.confidence, Rationale: d.rationale}
			}
			return Suggestion{Action: betting.Check, Confidence: d.confidence, Rationale: d.rationale}
		}
		amount := d.toAmount
		if amount < minRaiseTo {
			amount = minRaiseTo
		}
		if amount > maxRaiseTo {
			amount = maxRaiseTo
		}
		return Suggestion{Action: actionType, Amount: amount, Confidence: d.confidence, Rationale: d.rationale}

	case betting.AllIn:
		return Suggestion{Action: betting.AllIn, Amount: me.CommittedThisStreet + me.Stack, Confidence: d.confidence, Rationale: d.rationale}

	default:
		return Suggestion{Action: betting.Fold, Confidence: 0.5}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
