package telemetry

import (
	"math"

	"holdem-engine/internal/poker/betting"
	"holdem-engine/internal/poker/handfsm"
)

// Signals is one player's behavioral telemetry for a single completed
// hand: the action-time mean/stddev and bet-sizing entropy signals are
// the direct descendants of FeatureExtractor.ExtractFeatures's
// AvgActionTime/ActionTimeStdDev/BetPrecision, repurposed from bot
// scoring to operational monitoring.
type Signals struct {
	PlayerID              string
	ActionsObserved       int
	DecisionLatencyMean   float64
	DecisionLatencyStdDev float64
	RaiseSizingEntropy    float64
}

// ExtractSignals walks a completed hand's action log and computes one
// Signals value per player who acted. Decision latency for an action is
// approximated as the time since the previous logged action (of any
// player), which is the delay the table observed waiting for that seat
// to act. Raise-sizing entropy is the Shannon entropy, in bits, of a
// player's bet/raise amounts bucketed into big-blind-sized bins — a
// player who always bets the exact same fraction of a bucket collapses
// to near-zero entropy, mirroring calculateBetPrecision's round-number
// detection from the opposite direction.
func ExtractSignals(state handfsm.GameState) []Signals {
	latencies := map[string][]float64{}
	raiseBuckets := map[string]map[int]int{}
	order := make([]string, 0)
	seen := map[string]bool{}

	var prevTS int64
	havePrev := false
	for _, entry := range state.ActionLog {
		if !seen[entry.PlayerID] {
			seen[entry.PlayerID] = true
			order = append(order, entry.PlayerID)
		}
		ts := entry.Timestamp.UnixMilli()
		if havePrev && !entry.IsTimeout {
			delta := float64(ts-prevTS) / 1000.0
			if delta >= 0 {
				latencies[entry.PlayerID] = append(latencies[entry.PlayerID], delta)
			}
		}
		prevTS = ts
		havePrev = true

		if entry.Action == betting.Bet || entry.Action == betting.Raise {
			bb := state.BigBlind
			if bb <= 0 {
				bb = 1
			}
			bucket := entry.Amount / bb
			if raiseBuckets[entry.PlayerID] == nil {
				raiseBuckets[entry.PlayerID] = map[int]int{}
			}
			raiseBuckets[entry.PlayerID][bucket]++
		}
	}

	out := make([]Signals, 0, len(order))
	for _, id := range order {
		s := Signals{PlayerID: id, ActionsObserved: len(latencies[id])}
		s.DecisionLatencyMean = mean(latencies[id])
		s.DecisionLatencyStdDev = stdDev(latencies[id])
		s.RaiseSizingEntropy = shannonEntropy(raiseBuckets[id])
		out = append(out, s)
	}
	return out
}

func shannonEntropy(buckets map[int]int) float64 {
	total := 0
	for _, n := range buckets {
		total += n
	}
	if total == 0 {
		return 0
	}
	entropy := 0.0
	for _, n := range buckets {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		sumSq += (v - m) * (v - m)
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
