package ai

import (
	"holdem-engine/internal/harness"
	"holdem-engine/internal/poker/betting"
)

// decidePreflop implements spec.md §4.7's three preflop branches:
// first-in, BB facing limpers, and facing a raise.
func decidePreflop(view harness.GameStateView, playerIdx int, me harness.HandPlayerView) decision {
	format := FormatFor(len(view.Players))
	pos := PositionFor(len(view.Players), view.DealerIndex, playerIdx)
	code := HoleNotation(me.HoleCards[0], me.HoleCards[1])

	chart, ok := chartFor(format, pos)
	if !ok {
		return decision{action: betting.Fold, confidence: 0.5, rationale: "no chart for this format/position"}
	}

	facingRaise := view.CurrentBet > view.BigBlind
	if facingRaise {
		if chart.ThreeBet.ContainsCode(code) {
			return decision{
				action:     betting.Raise,
				toAmount:   int(threeBetSizeMultiplier * float64(view.CurrentBet)),
				confidence: 0.75,
				rationale:  "three-bet range",
			}
		}
		if chart.Call.ContainsCode(code) {
			return decision{action: betting.Call, confidence: 0.6, rationale: "calling range vs raise"}
		}
		return decision{action: betting.Fold, confidence: 0.7, rationale: "outside calling range vs raise"}
	}

	if pos == BB {
		limperCount := countLimpers(view, playerIdx)
		if limperCount == 0 {
			return decision{action: betting.Check, confidence: 0.9, rationale: "no limpers, option to check"}
		}
		if chart.ThreeBet.ContainsCode(code) {
			return decision{
				action:     betting.Raise,
				toAmount:   (3 + limperCount) * view.BigBlind,
				confidence: 0.7,
				rationale:  "premium hand vs limpers",
			}
		}
		if chart.OpenRaise.ContainsCode(code) {
			return decision{
				action:     betting.Raise,
				toAmount:   int(openRaiseSizeBB * float64(view.BigBlind)),
				confidence: 0.55,
				rationale:  "strong hand vs limpers",
			}
		}
		return decision{action: betting.Check, confidence: 0.6, rationale: "marginal hand, take the free look"}
	}

	if chart.OpenRaise.ContainsCode(code) {
		return decision{
			action:     betting.Raise,
			toAmount:   int(openRaiseSizeBB * float64(view.BigBlind)),
			confidence: 0.65,
			rationale:  "opening range for position",
		}
	}
	return decision{action: betting.Fold, confidence: 0.6, rationale: "outside opening range"}
}

// countLimpers counts active non-folded players, other than the one at
// idx, who have matched the big blind without raising it.
func countLimpers(view harness.GameStateView, idx int) int {
	n := 0
	for i, p := range view.Players {
		if i == idx || p.Folded {
			continue
		}
		if i == view.BBIndex {
			continue
		}
		if p.CurrentBet == view.BigBlind && p.HasActed {
			n++
		}
	}
	return n
}
