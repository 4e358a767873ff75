package eval

import (
	"testing"

	"holdem-engine/pkg/card"
)

func cards(t *testing.T, strs ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, len(strs))
	for i, s := range strs {
		c, err := card.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		out[i] = c
	}
	return out
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name string
		hand []string
		want HandRank
	}{
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "Ts", "2c", "3d"}, RoyalFlush},
		{"straight flush", []string{"9h", "8h", "7h", "6h", "5h", "2c", "3d"}, StraightFlush},
		{"four of a kind", []string{"Qs", "Qh", "Qd", "Qc", "2s", "3d", "4h"}, FourOfAKind},
		{"full house", []string{"Ks", "Kh", "Kd", "2c", "2s", "3d", "4h"}, FullHouse},
		{"flush", []string{"As", "Ks", "8s", "4s", "2s", "3d", "4h"}, Flush},
		{"straight", []string{"9h", "8c", "7h", "6d", "5h", "2c", "Kd"}, Straight},
		{"wheel straight", []string{"Ah", "2c", "3h", "4d", "5h", "Kc", "Qd"}, Straight},
		{"three of a kind", []string{"Ks", "Kh", "Kd", "2s", "5d", "9h", "Qc"}, ThreeOfAKind},
		{"two pair", []string{"Ks", "Kh", "5d", "5s", "2d", "9h", "Qc"}, TwoPair},
		{"one pair", []string{"Ks", "Kh", "5d", "3s", "2d", "9h", "Qc"}, OnePair},
		{"high card", []string{"Ks", "Jh", "5d", "3s", "2d", "9h", "Qc"}, HighCard},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate7(cards(t, tc.hand...))
			if got.Rank != tc.want {
				t.Errorf("rank = %v, want %v", got.Rank, tc.want)
			}
		})
	}
}

func TestCompareHigherBeatsLower(t *testing.T) {
	straight := Evaluate7(cards(t, "9h", "8c", "7h", "6d", "5h", "2c", "Kd"))
	flush := Evaluate7(cards(t, "As", "Ks", "8s", "4s", "2s", "3d", "4h"))
	if Compare(flush, straight) <= 0 {
		t.Errorf("expected flush to beat straight")
	}
	if Compare(straight, flush) >= 0 {
		t.Errorf("expected straight to lose to flush")
	}
}

func TestCompareKickerBreaksTie(t *testing.T) {
	a := Evaluate7(cards(t, "Ks", "Kh", "Ad", "9s", "2d", "3h", "4c"))
	b := Evaluate7(cards(t, "Ks", "Kh", "Qd", "9s", "2d", "3h", "4c"))
	if Compare(a, b) <= 0 {
		t.Errorf("expected ace kicker to beat queen kicker")
	}
}

func TestStraightFlushBeatsFourOfAKind(t *testing.T) {
	sf := Evaluate7(cards(t, "9h", "8h", "7h", "6h", "5h", "2c", "3d"))
	quads := Evaluate7(cards(t, "Qs", "Qh", "Qd", "Qc", "As", "3d", "4h"))
	if Compare(sf, quads) <= 0 {
		t.Errorf("expected straight flush to beat four of a kind")
	}
}

func TestWheelStraightLosesToSixHighStraight(t *testing.T) {
	wheel := Evaluate7(cards(t, "Ah", "2c", "3h", "4d", "5h", "Kc", "Qd"))
	sixHigh := Evaluate7(cards(t, "6h", "5c", "4h", "3d", "2h", "Kc", "Qd"))
	if Compare(sixHigh, wheel) <= 0 {
		t.Errorf("expected 6-high straight to beat the wheel")
	}
}

func TestExactTieIsATie(t *testing.T) {
	a := Evaluate7(cards(t, "As", "Ks", "Qs", "Js", "Ts", "2c", "3d"))
	b := Evaluate7(cards(t, "Ah", "Kh", "Qh", "Jh", "Th", "4c", "5d"))
	if Compare(a, b) != 0 {
		t.Errorf("expected identical royal flushes to tie, got %d", Compare(a, b))
	}
}
