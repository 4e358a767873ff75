package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"holdem-engine/internal/poker/betting"
	"holdem-engine/internal/poker/handfsm"
	"holdem-engine/internal/poker/pot"
)

func TestBuildHandSummarySumsPotsAndMapsWinners(t *testing.T) {
	start := time.Unix(0, 0)
	end := start.Add(45 * time.Second)
	state := handfsm.GameState{
		TableID:    "t1",
		HandNumber: 7,
		BigBlind:   10,
		Pots:       []pot.Pot{{Amount: 120}, {Amount: 40}},
		Winners: []handfsm.WinnerResult{
			{PlayerID: "A", PotIndex: 0, Amount: 120},
			{PlayerID: "B", PotIndex: 1, Amount: 40},
		},
		ActionLog: []handfsm.ActionLogEntry{
			{PlayerID: "A", Action: betting.Bet, Amount: 20, Timestamp: start},
		},
	}

	summary := BuildHandSummary(state, start, end)
	if summary.TableID != "t1" || summary.HandNumber != 7 {
		t.Fatalf("unexpected summary header: %+v", summary)
	}
	if summary.PotTotal != 160 {
		t.Fatalf("expected pot total 160, got %d", summary.PotTotal)
	}
	if summary.DurationMs != 45000 {
		t.Fatalf("expected duration 45000ms, got %d", summary.DurationMs)
	}
	if len(summary.Winners) != 2 || summary.Winners[0].PlayerID != "A" || summary.Winners[0].Amount != 120 {
		t.Fatalf("unexpected winners: %+v", summary.Winners)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal HandSummary: %v", err)
	}
	var roundTrip HandSummary
	if err := json.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("unmarshal HandSummary: %v", err)
	}
	if roundTrip.PotTotal != summary.PotTotal {
		t.Fatalf("round trip lost pot total: %+v", roundTrip)
	}
}
