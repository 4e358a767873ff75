// Package eval implements 7-card hand evaluation: the best 5-card hand out
// of any 7 cards, a total ordering over evaluated hands, and comparison.
//
// The teacher's evaluator (pkg/poker/hand.go) scans categories in a fixed
// sequence (flush, then straight flush, then four-of-a-kind, ...), which
// makes edge cases like ace-low straights and straight-flush-vs-flush
// tie-breaking easy to get subtly wrong, and its checkPair references an
// undeclared rankCards identifier. This package instead enumerates every
// 5-card subset of the 7 and scores each independently, keeping the best —
// simpler to prove correct, at the cost of 21 evaluations instead of 1.
package eval

import (
	"sort"

	"holdem-engine/pkg/card"
)

// HandRank is the category of a 5-card poker hand, ordered low to high.
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Hand is a fully evaluated 5-card poker hand: its category plus a
// tie-breaking rank sequence, most significant first (e.g. for two pair,
// [highPairRank, lowPairRank, kickerRank]).
type Hand struct {
	Cards   [5]card.Card
	Rank    HandRank
	Breaker [5]int
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 for a tie.
func Compare(a, b Hand) int {
	if a.Rank != b.Rank {
		if a.Rank > b.Rank {
			return 1
		}
		return -1
	}
	for i := 0; i < 5; i++ {
		if a.Breaker[i] != b.Breaker[i] {
			if a.Breaker[i] > b.Breaker[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Evaluate7 returns the best 5-card Hand obtainable from a showdown's 7
// cards. It is EvaluateAny under another name: any 5 or more cards are
// accepted, and fewer than 5 panics.
func Evaluate7(cards []card.Card) Hand {
	return EvaluateAny(cards)
}

// EvaluateAny returns the best 5-card Hand obtainable from any 5 or more
// cards, by enumerating every 5-card subset.
func EvaluateAny(cards []card.Card) Hand {
	if len(cards) < 5 {
		panic("eval: need at least 5 cards")
	}
	var best Hand
	haveBest := false
	combo := make([]int, 5)
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == 5 {
			var five [5]card.Card
			for i, idx := range combo {
				five[i] = cards[idx]
			}
			h := evaluate5(five)
			if !haveBest || Compare(h, best) > 0 {
				best = h
				haveBest = true
			}
			return
		}
		for i := start; i < len(cards); i++ {
			combo[depth] = i
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
	return best
}

// evaluate5 scores exactly 5 cards.
func evaluate5(cards [5]card.Card) Hand {
	ranks := make([]int, 5)
	suits := make([]int, 5)
	for i, c := range cards {
		ranks[i] = int(c.Rank)
		suits[i] = int(c.Suit)
	}

	counts := make(map[int]int, 5)
	for _, r := range ranks {
		counts[r]++
	}

	isFlush := true
	for _, s := range suits {
		if s != suits[0] {
			isFlush = false
			break
		}
	}

	sortedRanks := append([]int(nil), ranks...)
	sort.Sort(sort.Reverse(sort.IntSlice(sortedRanks)))

	straightHigh, isStraight := straightHighCard(sortedRanks)

	// Group counts, descending by (count, rank).
	type group struct{ rank, count int }
	groups := make([]group, 0, len(counts))
	for r, c := range counts {
		groups = append(groups, group{rank: r, count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	var breaker [5]int
	fill := func(vals ...int) [5]int {
		var b [5]int
		copy(b[:], vals)
		return b
	}

	switch {
	case isFlush && isStraight:
		rank := StraightFlush
		if straightHigh == int(card.Ace) {
			rank = RoyalFlush
		}
		return Hand{Cards: cards, Rank: rank, Breaker: fill(straightHigh)}

	case groups[0].count == 4:
		kicker := groups[1].rank
		breaker = fill(groups[0].rank, kicker)
		return Hand{Cards: cards, Rank: FourOfAKind, Breaker: breaker}

	case groups[0].count == 3 && groups[1].count == 2:
		breaker = fill(groups[0].rank, groups[1].rank)
		return Hand{Cards: cards, Rank: FullHouse, Breaker: breaker}

	case isFlush:
		breaker = fill(sortedRanks[0], sortedRanks[1], sortedRanks[2], sortedRanks[3], sortedRanks[4])
		return Hand{Cards: cards, Rank: Flush, Breaker: breaker}

	case isStraight:
		return Hand{Cards: cards, Rank: Straight, Breaker: fill(straightHigh)}

	case groups[0].count == 3:
		breaker = fill(groups[0].rank, groups[1].rank, groups[2].rank)
		return Hand{Cards: cards, Rank: ThreeOfAKind, Breaker: breaker}

	case groups[0].count == 2 && groups[1].count == 2:
		hiPair, loPair := groups[0].rank, groups[1].rank
		if loPair > hiPair {
			hiPair, loPair = loPair, hiPair
		}
		breaker = fill(hiPair, loPair, groups[2].rank)
		return Hand{Cards: cards, Rank: TwoPair, Breaker: breaker}

	case groups[0].count == 2:
		breaker = fill(groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank)
		return Hand{Cards: cards, Rank: OnePair, Breaker: breaker}

	default:
		breaker = fill(sortedRanks[0], sortedRanks[1], sortedRanks[2], sortedRanks[3], sortedRanks[4])
		return Hand{Cards: cards, Rank: HighCard, Breaker: breaker}
	}
}

// straightHighCard returns the high card of a straight within the 5
// descending-sorted ranks, and whether one exists. The wheel (A-2-3-4-5)
// is recognized with a high card of Five.
func straightHighCard(sortedDesc []int) (int, bool) {
	distinct := make([]int, 0, 5)
	seen := make(map[int]bool, 5)
	for _, r := range sortedDesc {
		if !seen[r] {
			seen[r] = true
			distinct = append(distinct, r)
		}
	}
	if len(distinct) != 5 {
		return 0, false
	}
	consecutive := true
	for i := 1; i < 5; i++ {
		if distinct[i-1]-distinct[i] != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return distinct[0], true
	}
	// Wheel: A,5,4,3,2 sorted descending is [14,5,4,3,2].
	wheel := []int{int(card.Ace), int(card.Five), int(card.Four), int(card.Three), int(card.Two)}
	isWheel := true
	for i := range wheel {
		if distinct[i] != wheel[i] {
			isWheel = false
			break
		}
	}
	if isWheel {
		return int(card.Five), true
	}
	return 0, false
}
