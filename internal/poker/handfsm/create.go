package handfsm

// SeatedPlayerInput is the snapshot of a seated player a hand is created
// from — the table's persistent seats row, not yet hand-scoped state.
type SeatedPlayerInput struct {
	ID         string
	SeatIndex  int
	Stack      int
	SittingOut bool
}

// CreateGameState builds a fresh GameState ready for StartHand: it rotates
// the dealer button to the next eligible seat clockwise of
// previousDealerIndex (the canonical rule per the design notes: "next
// active seat clockwise from previous dealer with stack > 0"), and derives
// the small/big blind seats. Pass previousDealerIndex = -1 for the first
// hand at a table.
func CreateGameState(tableID string, seats []SeatedPlayerInput, previousDealerIndex, handNumber, smallBlind, bigBlind, turnTimeoutMs int) (GameState, error) {
	players := make([]HandPlayer, len(seats))
	for i, s := range seats {
		players[i] = HandPlayer{
			ID:         s.ID,
			SeatIndex:  s.SeatIndex,
			Stack:      s.Stack,
			SittingOut: s.SittingOut,
		}
	}

	activeCount := 0
	for _, p := range players {
		if isEligible(p) {
			activeCount++
		}
	}
	if activeCount < 2 {
		return GameState{}, ErrNotEnoughPlayers
	}

	dealerIdx, ok := nextEligibleSeat(players, previousDealerIndex, isEligible)
	if !ok {
		return GameState{}, ErrNotEnoughPlayers
	}

	var sbIdx, bbIdx int
	if activeCount == 2 {
		// Heads-up: the dealer posts the small blind.
		sbIdx = dealerIdx
		bbIdx, ok = nextEligibleSeat(players, sbIdx, isEligible)
		if !ok {
			return GameState{}, ErrNotEnoughPlayers
		}
	} else {
		sbIdx, ok = nextEligibleSeat(players, dealerIdx, isEligible)
		if !ok {
			return GameState{}, ErrNotEnoughPlayers
		}
		bbIdx, ok = nextEligibleSeat(players, sbIdx, isEligible)
		if !ok {
			return GameState{}, ErrNotEnoughPlayers
		}
	}

	return GameState{
		TableID:            tableID,
		HandNumber:         handNumber,
		Phase:              Waiting,
		Players:            players,
		DealerIndex:        dealerIdx,
		SBIndex:            sbIdx,
		BBIndex:            bbIdx,
		CurrentPlayerIndex: -1,
		SmallBlind:         smallBlind,
		BigBlind:           bigBlind,
		TurnTimeoutMs:      turnTimeoutMs,
		Version:            0,
	}, nil
}

func isEligible(p HandPlayer) bool {
	return p.Stack > 0 && !p.SittingOut
}

// nextEligibleSeat searches clockwise (increasing index, wrapping) from
// the seat after `from` for the first player satisfying pred.
func nextEligibleSeat(players []HandPlayer, from int, pred func(HandPlayer) bool) (int, bool) {
	n := len(players)
	if n == 0 {
		return 0, false
	}
	start := from
	for step := 1; step <= n; step++ {
		i := ((start+step)%n + n) % n
		if pred(players[i]) {
			return i, true
		}
	}
	return 0, false
}
