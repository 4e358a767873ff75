package betting

import "testing"

func TestMinRaiseToUsesLastRaiseNotHalfPot(t *testing.T) {
	// current bet 100, last raise was 80 (e.g. 20 -> 100), big blind 10.
	got := MinRaiseTo(100, 80, 10)
	if got != 180 {
		t.Fatalf("MinRaiseTo = %d, want 180", got)
	}
}

func TestMinRaiseToFallsBackToBigBlind(t *testing.T) {
	got := MinRaiseTo(20, 0, 20)
	if got != 40 {
		t.Fatalf("MinRaiseTo = %d, want 40", got)
	}
}

func TestValidActionsFreshStreetOffersCheck(t *testing.T) {
	rs := RoundState{
		Players:  []PlayerState{{ID: "a", Stack: 1000}, {ID: "b", Stack: 1000}},
		BigBlind: 10,
	}
	actions, call, minTo, maxTo, err := ValidActions(rs, 0)
	if err != nil {
		t.Fatal(err)
	}
	if call != 0 {
		t.Fatalf("call = %d, want 0", call)
	}
	if !contains(actions, Check) || !contains(actions, Bet) {
		t.Fatalf("expected check+bet available, got %v", actions)
	}
	if minTo != 10 || maxTo != 1000 {
		t.Fatalf("minTo=%d maxTo=%d, want 10/1000", minTo, maxTo)
	}
}

func TestValidActionsFacingBetOffersCallRaiseFold(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", Stack: 1000, CommittedThisStreet: 0},
			{ID: "b", Stack: 1000, CommittedThisStreet: 50},
		},
		CurrentBet:           50,
		LastRaiseAmount:      50,
		BigBlind:             10,
		LastRaiseWasComplete: true,
	}
	actions, call, minTo, _, err := ValidActions(rs, 0)
	if err != nil {
		t.Fatal(err)
	}
	if call != 50 {
		t.Fatalf("call = %d, want 50", call)
	}
	if !contains(actions, Fold) || !contains(actions, Call) || !contains(actions, Raise) {
		t.Fatalf("expected fold+call+raise, got %v", actions)
	}
	if minTo != 100 {
		t.Fatalf("minTo = %d, want 100", minTo)
	}
}

func TestValidActionsShortStackCannotRaise(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", Stack: 20, CommittedThisStreet: 0},
			{ID: "b", Stack: 1000, CommittedThisStreet: 50},
		},
		CurrentBet:           50,
		LastRaiseAmount:      50,
		BigBlind:             10,
		LastRaiseWasComplete: true,
	}
	actions, _, _, _, err := ValidActions(rs, 0)
	if err != nil {
		t.Fatal(err)
	}
	if contains(actions, Raise) {
		t.Fatalf("short stack should not be able to raise, got %v", actions)
	}
	if !contains(actions, AllIn) {
		t.Fatalf("short stack should be able to go all-in, got %v", actions)
	}
}

func TestValidActionsUnderRaiseLockPreventsReraiseByPriorAggressor(t *testing.T) {
	// a bet/raised to 100 (the last full aggressor); b then went all-in
	// for only 115, a raise of 15 short of the 20 minimum. Only a — the
	// player whose complete raise was shortened — is locked to call/fold.
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", Stack: 1000, CommittedThisStreet: 100, HasActedThisStreet: true},
			{ID: "b", Stack: 0, CommittedThisStreet: 115, AllIn: true},
		},
		CurrentBet:           115,
		LastRaiseAmount:      15,
		BigBlind:             10,
		LastAggressorID:      "a",
		LastRaiseWasComplete: false,
	}
	actions, call, _, _, err := ValidActions(rs, 0)
	if err != nil {
		t.Fatal(err)
	}
	if call != 15 {
		t.Fatalf("call = %d, want 15", call)
	}
	if contains(actions, Raise) {
		t.Fatalf("prior aggressor should not be offered a re-raise, got %v", actions)
	}
}

func TestValidActionsUnderRaiseLockDoesNotLockOtherCallers(t *testing.T) {
	// c called a's original 100 (acted, never raised); b then shoved
	// all-in for only 115 over a's bet. c is not the last aggressor, so
	// the incomplete raise must not strip c's raise rights — spec.md
	// §4.4/§8 scenario 3.
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", Stack: 1000, CommittedThisStreet: 100, HasActedThisStreet: true},
			{ID: "b", Stack: 0, CommittedThisStreet: 115, AllIn: true},
			{ID: "c", Stack: 1000, CommittedThisStreet: 100, HasActedThisStreet: true},
		},
		CurrentBet:           115,
		LastRaiseAmount:      15,
		BigBlind:             10,
		LastAggressorID:      "a",
		LastRaiseWasComplete: false,
	}
	actions, call, _, _, err := ValidActions(rs, 2)
	if err != nil {
		t.Fatal(err)
	}
	if call != 15 {
		t.Fatalf("call = %d, want 15", call)
	}
	if !contains(actions, Raise) {
		t.Fatalf("non-aggressor caller should still be offered a raise, got %v", actions)
	}
}

func TestIsRoundCompleteAllMatched(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", CommittedThisStreet: 50, HasActedThisStreet: true},
			{ID: "b", CommittedThisStreet: 50, HasActedThisStreet: true},
		},
		CurrentBet: 50,
	}
	if !IsRoundComplete(rs) {
		t.Fatalf("expected round complete")
	}
}

func TestIsRoundCompleteFalseWhenOneHasNotActed(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", CommittedThisStreet: 50, HasActedThisStreet: true},
			{ID: "b", CommittedThisStreet: 0, HasActedThisStreet: false},
		},
		CurrentBet: 50,
	}
	if IsRoundComplete(rs) {
		t.Fatalf("expected round not complete")
	}
}

func TestIsRoundCompleteSkipsAllIn(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a", CommittedThisStreet: 50, HasActedThisStreet: true},
			{ID: "b", CommittedThisStreet: 10, AllIn: true},
		},
		CurrentBet: 50,
	}
	if !IsRoundComplete(rs) {
		t.Fatalf("expected round complete when remaining player is all-in")
	}
}

func TestFirstToActPreflopIsLeftOfBigBlind(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{{ID: "dealer"}, {ID: "sb"}, {ID: "bb"}, {ID: "utg"}},
	}
	idx, ok := FirstToAct(rs, true, 0, 2)
	if !ok || idx != 3 {
		t.Fatalf("FirstToAct(preflop) = %d,%v want 3,true", idx, ok)
	}
}

func TestFirstToActPostflopIsLeftOfDealer(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{{ID: "dealer"}, {ID: "sb"}, {ID: "bb"}, {ID: "utg"}},
	}
	idx, ok := FirstToAct(rs, false, 0, 2)
	if !ok || idx != 1 {
		t.Fatalf("FirstToAct(postflop) = %d,%v want 1,true", idx, ok)
	}
}

func TestFirstToActSkipsFoldedAllInAndSittingOut(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "dealer"},
			{ID: "sb", Folded: true},
			{ID: "bb", AllIn: true},
			{ID: "utg", SittingOut: true},
			{ID: "co"},
		},
	}
	idx, ok := FirstToAct(rs, false, 0, 2)
	if !ok || idx != 4 {
		t.Fatalf("FirstToAct = %d,%v want 4,true", idx, ok)
	}
}

func TestContestedPlayersRemaining(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{{ID: "a"}, {ID: "b", Folded: true}, {ID: "c"}},
	}
	if got := ContestedPlayersRemaining(rs); got != 2 {
		t.Fatalf("ContestedPlayersRemaining = %d, want 2", got)
	}
}

func TestNextToActSkipsFoldedAndAllIn(t *testing.T) {
	rs := RoundState{
		Players: []PlayerState{
			{ID: "a"},
			{ID: "b", Folded: true},
			{ID: "c", AllIn: true},
			{ID: "d"},
		},
	}
	idx, ok := NextToAct(rs, 0)
	if !ok || idx != 3 {
		t.Fatalf("NextToAct = %d,%v want 3,true", idx, ok)
	}
}

func contains(actions []ActionType, a ActionType) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
