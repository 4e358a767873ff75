package ai

import (
	"math/rand"

	"holdem-engine/internal/harness"
	"holdem-engine/internal/poker/betting"
	"holdem-engine/internal/poker/eval"
	"holdem-engine/internal/poker/handfsm"
	"holdem-engine/pkg/card"
)

// categoryStrength maps a made-hand category to a 0..1 equity proxy
// baseline, before outs and jitter are added.
var categoryStrength = map[eval.HandRank]float64{
	eval.HighCard:      0.10,
	eval.OnePair:       0.35,
	eval.TwoPair:       0.55,
	eval.ThreeOfAKind:  0.65,
	eval.Straight:      0.78,
	eval.Flush:         0.82,
	eval.FullHouse:     0.90,
	eval.FourOfAKind:   0.97,
	eval.StraightFlush: 1.0,
	eval.RoyalFlush:    1.0,
}

const bluffJitterEpsilon = 0.05

// decidePostflop implements spec.md §4.7's board/draw/equity/ladder
// pipeline: classify the board, count outs, build an equity proxy, then
// walk the value/draw/air ladder (river overriding to a pure
// value-or-bluff polarization once no draws remain).
func decidePostflop(view harness.GameStateView, me harness.HandPlayerView, rng *rand.Rand) decision {
	community := view.Community
	board := AnalyzeBoard(community)
	draws := AnalyzeDraws(me.HoleCards, community)

	allCards := append(append([]card.Card{}, me.HoleCards...), community...)
	hand := eval.EvaluateAny(allCards)
	strength := categoryStrength[hand.Rank]

	outsMult := 0.02
	if len(community) == 3 {
		outsMult = 0.04
	}
	jitter := (rng.Float64() - 0.5) * bluffJitterEpsilon
	equity := strength + float64(draws.Outs)*outsMult + jitter
	if equity < 0 {
		equity = 0
	}
	if equity > 1 {
		equity = 1
	}

	pot := potSize(view)
	toCall := view.CurrentBet - me.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	canCheck := toCall == 0

	if view.Phase == handfsm.River {
		return decideRiver(view, me, strength, draws, board, rng, pot, canCheck)
	}

	wasAggressor := view.LastAggressorID == me.ID || (view.LastAggressorID == "" && view.Phase == handfsm.Flop)

	if equity > 0.75 {
		return decision{
			action:     betting.Raise,
			toAmount:   me.CurrentBet + int(0.75*float64(maxInt(1, pot))),
			confidence: 0.85,
			rationale:  "value hand, betting/raising for value",
		}
	}
	if equity > 0.5 {
		if canCheck {
			return decision{
				action:     betting.Bet,
				toAmount:   me.CurrentBet + int(0.5*float64(maxInt(1, pot))),
				confidence: 0.7,
				rationale:  "decent value, betting for value",
			}
		}
		return decision{action: betting.Call, confidence: 0.65, rationale: "decent value, calling"}
	}

	if draws.Outs > 0 {
		threshold := potOddsThreshold(pot, toCall, sprFor(me, pot))
		if equity > threshold {
			if draws.Outs >= 12 && rng.Float64() < 0.35 {
				return decision{
					action:     betting.Raise,
					toAmount:   me.CurrentBet + int(0.6*float64(maxInt(1, pot))),
					confidence: 0.5,
					rationale:  "semi-bluff raise with strong combined draw",
				}
			}
			return decision{action: betting.Call, confidence: 0.55, rationale: "draw priced in by pot odds"}
		}
	}

	// Air: c-bet as the preflop aggressor on dry boards, fold otherwise,
	// but keep a cheap gutshot alive against a small bet.
	if wasAggressor && canCheck {
		if !board.Wet {
			return decision{
				action:     betting.Bet,
				toAmount:   me.CurrentBet + int(0.6*float64(maxInt(1, pot))),
				confidence: 0.55,
				rationale:  "continuation bet on a dry board",
			}
		}
		if equity >= 0.5 {
			return decision{
				action:     betting.Bet,
				toAmount:   me.CurrentBet + int(0.6*float64(maxInt(1, pot))),
				confidence: 0.5,
				rationale:  "continuation bet on a wet board with enough equity",
			}
		}
	}
	if canCheck {
		return decision{action: betting.Check, confidence: 0.6, rationale: "no equity, taking the free card"}
	}
	if draws.Gutshot && pot > 0 && float64(toCall)/float64(pot) < 0.25 {
		return decision{action: betting.Call, confidence: 0.4, rationale: "cheap price to chase a gutshot"}
	}
	return decision{action: betting.Fold, confidence: 0.7, rationale: "no equity, folding to the bet"}
}

func decideRiver(view harness.GameStateView, me harness.HandPlayerView, strength float64, draws DrawAnalysis, board BoardTexture, rng *rand.Rand, pot int, canCheck bool) decision {
	if strength > 0.6 {
		return decision{
			action:     betting.Raise,
			toAmount:   me.CurrentBet + int(0.75*float64(maxInt(1, pot))),
			confidence: 0.8,
			rationale:  "river value, polarizing to a big bet",
		}
	}
	missedDraw := draws.Outs == 0 && strength <= categoryStrength[eval.HighCard]+0.01
	if canCheck && missedDraw && rng.Float64() < 0.25 {
		return decision{
			action:     betting.Bet,
			toAmount:   me.CurrentBet + int(0.75*float64(maxInt(1, pot))),
			confidence: 0.4,
			rationale:  "river bluff with a missed draw and high card",
		}
	}
	if canCheck {
		return decision{action: betting.Check, confidence: 0.55, rationale: "river, no value, checking"}
	}
	return decision{action: betting.Fold, confidence: 0.65, rationale: "river, no value, folding"}
}

// potOddsThreshold is the equity required to profitably call toCall into
// pot, loosened as the stack-to-pot ratio shrinks (lower SPR means a call
// commits a smaller fraction of what's left behind it, so the bar for
// continuing drops).
func potOddsThreshold(pot, toCall int, spr float64) float64 {
	if pot+toCall == 0 {
		return 0
	}
	required := float64(toCall) / float64(pot+toCall)
	adjustment := 0.1 - spr*0.02
	if adjustment < 0 {
		adjustment = 0
	}
	if adjustment > 0.1 {
		adjustment = 0.1
	}
	required -= adjustment
	if required < 0 {
		required = 0
	}
	return required
}

func sprFor(me harness.HandPlayerView, pot int) float64 {
	return float64(me.Stack) / float64(maxInt(1, pot))
}
