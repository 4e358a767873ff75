package pot

import (
	"reflect"
	"sort"
	"testing"
)

func TestRefundUncalledReturnsExcess(t *testing.T) {
	// b folded without ever calling a's bet: the excess was never
	// contested by anyone, live or not, so it's a genuine refund.
	contributions := []Contribution{
		{PlayerID: "a", Amount: 500},
		{PlayerID: "b", Amount: 100, Folded: true},
	}
	adjusted, refundTo, refundAmount := RefundUncalled(contributions)
	if refundTo != "a" || refundAmount != 400 {
		t.Fatalf("got refundTo=%s refundAmount=%d, want a/400", refundTo, refundAmount)
	}
	if adjusted[0].Amount != 100 {
		t.Fatalf("adjusted amount = %d, want 100", adjusted[0].Amount)
	}
}

func TestRefundUncalledNoOpWhenCalled(t *testing.T) {
	contributions := []Contribution{
		{PlayerID: "a", Amount: 100},
		{PlayerID: "b", Amount: 100},
	}
	adjusted, refundTo, refundAmount := RefundUncalled(contributions)
	if refundTo != "" || refundAmount != 0 {
		t.Fatalf("expected no refund, got %s/%d", refundTo, refundAmount)
	}
	if !reflect.DeepEqual(adjusted, contributions) {
		t.Fatalf("expected contributions unchanged")
	}
}

func TestRefundUncalledNoOpWhenRunnerUpStillLive(t *testing.T) {
	// b is genuinely all-in for less, not folded: a's excess over b is a
	// legitimate uncontested side pot, not an uncalled bet.
	contributions := []Contribution{
		{PlayerID: "a", Amount: 500},
		{PlayerID: "b", Amount: 200},
	}
	adjusted, refundTo, refundAmount := RefundUncalled(contributions)
	if refundTo != "" || refundAmount != 0 {
		t.Fatalf("expected no refund when runner-up is live, got %s/%d", refundTo, refundAmount)
	}
	if !reflect.DeepEqual(adjusted, contributions) {
		t.Fatalf("expected contributions unchanged")
	}
}

func TestCalculatePotsSingleLevel(t *testing.T) {
	pots := CalculatePots([]Contribution{
		{PlayerID: "a", Amount: 100},
		{PlayerID: "b", Amount: 100},
		{PlayerID: "c", Amount: 100},
	})
	if len(pots) != 1 {
		t.Fatalf("expected 1 pot, got %d", len(pots))
	}
	if pots[0].Amount != 300 {
		t.Fatalf("pot amount = %d, want 300", pots[0].Amount)
	}
	for _, p := range []string{"a", "b", "c"} {
		if !pots[0].Eligible[p] {
			t.Fatalf("expected %s eligible", p)
		}
	}
}

func TestCalculatePotsSidePot(t *testing.T) {
	// a all-in for 50, b and c both put in 150.
	pots := CalculatePots([]Contribution{
		{PlayerID: "a", Amount: 50},
		{PlayerID: "b", Amount: 150},
		{PlayerID: "c", Amount: 150},
	})
	if len(pots) != 2 {
		t.Fatalf("expected 2 pots, got %d: %+v", len(pots), pots)
	}
	if pots[0].Amount != 150 { // 50*3
		t.Fatalf("main pot = %d, want 150", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Fatalf("main pot eligible = %v, want all 3", pots[0].Eligible)
	}
	if pots[1].Amount != 200 { // (150-50)*2
		t.Fatalf("side pot = %d, want 200", pots[1].Amount)
	}
	if pots[1].Eligible["a"] {
		t.Fatalf("a should not be eligible for the side pot")
	}
}

func TestCalculatePotsFoldedStillContributesButIneligible(t *testing.T) {
	pots := CalculatePots([]Contribution{
		{PlayerID: "a", Amount: 100},
		{PlayerID: "b", Amount: 100, Folded: true},
		{PlayerID: "c", Amount: 100},
	})
	if len(pots) != 1 {
		t.Fatalf("expected 1 pot, got %d", len(pots))
	}
	if pots[0].Amount != 300 {
		t.Fatalf("pot amount = %d, want 300", pots[0].Amount)
	}
	if pots[0].Eligible["b"] {
		t.Fatalf("folded player should not be eligible")
	}
}

func rankByOrder(order []string) Ranker {
	idx := make(map[string]int, len(order))
	for i, p := range order {
		idx[p] = i
	}
	return func(a, b string) int {
		// lower index = stronger hand
		switch {
		case idx[a] < idx[b]:
			return 1
		case idx[a] > idx[b]:
			return -1
		default:
			return 0
		}
	}
}

func TestDistributeSingleWinnerTakesPot(t *testing.T) {
	pots := []Pot{{Amount: 300, Eligible: map[string]bool{"a": true, "b": true, "c": true}}}
	payouts := Distribute(pots, rankByOrder([]string{"a", "b", "c"}), []string{"a", "b", "c"})
	if payouts["a"] != 300 {
		t.Fatalf("winner a payout = %d, want 300", payouts["a"])
	}
}

func TestDistributeOddChipGoesClockwiseOfDealer(t *testing.T) {
	// Tie between b and c, 101 chips, dealer is a so order starts at b.
	rank := func(x, y string) int {
		if x == "a" {
			return -1
		}
		if y == "a" {
			return 1
		}
		return 0
	}
	pots := []Pot{{Amount: 101, Eligible: map[string]bool{"a": true, "b": true, "c": true}}}
	payouts := Distribute(pots, rank, []string{"b", "c", "a"})
	if payouts["b"]+payouts["c"] != 101 {
		t.Fatalf("total payout = %d, want 101", payouts["b"]+payouts["c"])
	}
	if payouts["b"] != 51 || payouts["c"] != 50 {
		t.Fatalf("expected odd chip to b (first clockwise of dealer), got b=%d c=%d", payouts["b"], payouts["c"])
	}
}

func TestDistributeSidePotsIndependently(t *testing.T) {
	pots := []Pot{
		{Amount: 150, Eligible: map[string]bool{"a": true, "b": true, "c": true}},
		{Amount: 200, Eligible: map[string]bool{"b": true, "c": true}},
	}
	// a has the best hand but is only eligible for the main pot.
	rank := rankByOrder([]string{"a", "b", "c"})
	payouts := Distribute(pots, rank, []string{"a", "b", "c"})
	if payouts["a"] != 150 {
		t.Fatalf("a (all-in short stack) = %d, want 150", payouts["a"])
	}
	if payouts["b"] != 200 {
		t.Fatalf("b (best of side-pot-eligible) = %d, want 200", payouts["b"])
	}
	if payouts["c"] != 0 {
		t.Fatalf("c should get nothing, got %d", payouts["c"])
	}
}

func TestOrderByClockwiseDeterministic(t *testing.T) {
	winners := []string{"z", "y"}
	ordered := orderByClockwise(winners, []string{"y", "z"})
	sort.Strings(winners)
	if ordered[0] != "y" {
		t.Fatalf("expected y first per seat order, got %v", ordered)
	}
}
