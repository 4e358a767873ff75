// Package pot builds side pots from per-player contributions and splits
// them among the winning hands at showdown.
//
// The teacher's CalculateSidePots (internal/game/rules/engine.go) only
// slices pots at all-in contribution levels; it has no notion of the
// uncalled-bet refund and its odd-chip handling just hands the remainder
// to whichever winner happens to be first in an unordered slice. This
// package implements the general contribution-level sweep plus both of
// those rules.
package pot

import (
	"sort"
)

// Contribution is the total amount a single player has put into the pot
// this hand, and whether they are still live (not folded).
type Contribution struct {
	PlayerID string
	Amount   int
	Folded   bool
}

// Pot is one pot (main or side) with the set of players eligible to win it.
type Pot struct {
	Amount   int
	Eligible map[string]bool
}

// RefundUncalled returns the adjusted contributions after returning any
// uncalled portion of the largest bet/raise to its owner, along with the
// refunded amount and to whom (empty string if nothing was refunded).
//
// This applies only when the single highest contributor's runner-up is a
// folded player: nobody still live ever matched that amount, so the excess
// never entered a real contest and returns to its owner outright. When the
// runner-up is still live (an all-in for less, say), the excess is not
// "uncalled" — it is a legitimate side pot that runner-up simply can't
// reach, and CalculatePots already resolves it as an uncontested pot of
// its own without any refund needed.
func RefundUncalled(contributions []Contribution) (adjusted []Contribution, refundTo string, refundAmount int) {
	adjusted = make([]Contribution, len(contributions))
	copy(adjusted, contributions)
	if len(adjusted) < 2 {
		return adjusted, "", 0
	}

	maxIdx := 0
	for i, c := range adjusted {
		if c.Amount > adjusted[maxIdx].Amount {
			maxIdx = i
		}
	}
	secondAmount := 0
	anyLiveAtSecond := false
	for i, c := range adjusted {
		if i == maxIdx {
			continue
		}
		switch {
		case c.Amount > secondAmount:
			secondAmount = c.Amount
			anyLiveAtSecond = !c.Folded
		case c.Amount == secondAmount && !c.Folded:
			anyLiveAtSecond = true
		}
	}
	if adjusted[maxIdx].Amount > secondAmount && !anyLiveAtSecond {
		refundAmount = adjusted[maxIdx].Amount - secondAmount
		refundTo = adjusted[maxIdx].PlayerID
		adjusted[maxIdx].Amount = secondAmount
	}
	return adjusted, refundTo, refundAmount
}

// CalculatePots sweeps contributions into one or more pots. Contributions
// should already have had RefundUncalled applied. Players are swept level
// by level: the pot built at each distinct positive contribution level
// collects (level - previousLevel) from every player whose contribution
// reaches that level, and is eligible to every such player who hasn't
// folded. A level whose eligible set is identical to the previous pot's is
// added to that pot rather than opening a new one. Folded players' chips
// still count toward pot amounts — they just can't win them.
func CalculatePots(contributions []Contribution) []Pot {
	levels := distinctLevels(contributions)
	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		delta := level - prev
		if delta <= 0 {
			prev = level
			continue
		}
		amount := 0
		eligible := make(map[string]bool)
		for _, c := range contributions {
			if c.Amount >= level {
				amount += delta
				if !c.Folded {
					eligible[c.PlayerID] = true
				}
			}
		}
		if amount > 0 {
			n := len(pots)
			same := n > 0 && len(pots[n-1].Eligible) == len(eligible)
			for id := range eligible {
				if same && !pots[n-1].Eligible[id] {
					same = false
				}
			}
			if same {
				pots[n-1].Amount += amount
			} else {
				pots = append(pots, Pot{Amount: amount, Eligible: eligible})
			}
		}
		prev = level
	}
	return mergeEmpty(pots)
}

func distinctLevels(contributions []Contribution) []int {
	seen := make(map[int]bool)
	levels := make([]int, 0, len(contributions))
	for _, c := range contributions {
		if c.Amount > 0 && !seen[c.Amount] {
			seen[c.Amount] = true
			levels = append(levels, c.Amount)
		}
	}
	sort.Ints(levels)
	return levels
}

// mergeEmpty drops pots with no eligible winners (everyone who reached
// that level folded) by folding their amount into the next pot up, since
// those chips must still be awarded to whoever does win further along.
func mergeEmpty(pots []Pot) []Pot {
	out := make([]Pot, 0, len(pots))
	carry := 0
	for _, p := range pots {
		amount := p.Amount + carry
		if len(p.Eligible) == 0 {
			carry = amount
			continue
		}
		carry = 0
		out = append(out, Pot{Amount: amount, Eligible: p.Eligible})
	}
	if carry > 0 && len(out) > 0 {
		out[len(out)-1].Amount += carry
	}
	return out
}

// Ranker compares a's and b's hands at showdown: >0 if a beats b, <0 if b
// beats a, 0 for a tie. It is satisfied by a thin adapter over
// internal/poker/eval.Compare.
type Ranker func(a, b string) int

// Distribute splits each pot among its best-hand winners. rank(a, b)
// must return >0 if player a's hand beats player b's, <0 if b beats a, and
// 0 for a tie; seatOrder lists every eligible-to-deal seat's player ID in
// clockwise order starting immediately after the dealer, which is where
// odd chips (pot amounts that don't divide evenly among tied winners) are
// awarded first.
func Distribute(pots []Pot, rank Ranker, seatOrder []string) map[string]int {
	payouts := make(map[string]int)
	for _, p := range pots {
		for id, amount := range DistributePot(p, rank, seatOrder) {
			payouts[id] += amount
		}
	}
	return payouts
}

// DistributePot splits a single pot among its winners, as Distribute
// does, but returns the breakdown for that one pot — useful when callers
// need to record which pot each winner's share came from.
func DistributePot(p Pot, rank Ranker, seatOrder []string) map[string]int {
	payouts := make(map[string]int)
	winners := bestHandPlayers(p.Eligible, rank)
	if len(winners) == 0 {
		return payouts
	}
	share := p.Amount / len(winners)
	remainder := p.Amount % len(winners)
	for _, w := range winners {
		payouts[w] += share
	}
	if remainder == 0 {
		return payouts
	}
	ordered := orderByClockwise(winners, seatOrder)
	for i := 0; i < remainder; i++ {
		payouts[ordered[i%len(ordered)]]++
	}
	return payouts
}

func bestHandPlayers(eligible map[string]bool, rank Ranker) []string {
	candidates := make([]string, 0, len(eligible))
	for p := range eligible {
		candidates = append(candidates, p)
	}
	sort.Strings(candidates)
	if len(candidates) == 0 {
		return nil
	}
	best := []string{candidates[0]}
	for _, p := range candidates[1:] {
		cmp := rank(p, best[0])
		switch {
		case cmp > 0:
			best = []string{p}
		case cmp == 0:
			best = append(best, p)
		}
	}
	return best
}

// orderByClockwise returns the subset of winners present in seatOrder, in
// seatOrder's relative order; winners absent from seatOrder are appended
// afterward in their original (sorted) order, as a defensive fallback.
func orderByClockwise(winners []string, seatOrder []string) []string {
	inWinners := make(map[string]bool, len(winners))
	for _, w := range winners {
		inWinners[w] = true
	}
	ordered := make([]string, 0, len(winners))
	placed := make(map[string]bool, len(winners))
	for _, seat := range seatOrder {
		if inWinners[seat] && !placed[seat] {
			ordered = append(ordered, seat)
			placed[seat] = true
		}
	}
	for _, w := range winners {
		if !placed[w] {
			ordered = append(ordered, w)
			placed[w] = true
		}
	}
	return ordered
}
