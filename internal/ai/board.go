package ai

import (
	"sort"

	"holdem-engine/pkg/card"
)

// BoardTexture summarizes the community cards' drawing danger.
type BoardTexture struct {
	Paired     bool
	Monotone   bool // all three+ board cards share a suit
	TwoTone    bool // exactly two suits represented
	Rainbow    bool // every board card a different suit
	Connected3 bool // three-or-more-to-a-straight present on the board alone
	AvgGap     float64
	Wet        bool
}

// AnalyzeBoard classifies the community cards' texture.
func AnalyzeBoard(community []card.Card) BoardTexture {
	var t BoardTexture
	if len(community) == 0 {
		return t
	}

	suitCounts := map[card.Suit]int{}
	rankSet := map[card.Rank]bool{}
	rankCounts := map[card.Rank]int{}
	for _, c := range community {
		suitCounts[c.Suit]++
		rankSet[c.Rank] = true
		rankCounts[c.Rank]++
	}
	for _, n := range rankCounts {
		if n >= 2 {
			t.Paired = true
		}
	}

	distinctSuits := len(suitCounts)
	t.Monotone = len(community) >= 3 && distinctSuits == 1
	t.TwoTone = distinctSuits == 2
	t.Rainbow = distinctSuits == len(community)

	ranks := make([]int, 0, len(rankSet))
	for r := range rankSet {
		ranks = append(ranks, int(r))
	}
	sort.Ints(ranks)
	if len(ranks) >= 2 {
		span := ranks[len(ranks)-1] - ranks[0]
		gaps := len(ranks) - 1
		t.AvgGap = float64(span) / float64(gaps)
	}
	if len(ranks) >= 3 {
		span := ranks[len(ranks)-1] - ranks[0]
		if span <= 4 {
			t.Connected3 = true
		}
	}

	t.Wet = t.Monotone || t.TwoTone || t.Connected3 || (len(ranks) >= 2 && t.AvgGap <= 1.5)
	return t
}

// DrawAnalysis is the outs-based draw inventory for one player's hand
// against the current board.
type DrawAnalysis struct {
	FlushDraw        bool
	OpenEnded        bool
	Gutshot          bool
	BackdoorFlush    bool
	BackdoorStraight bool
	Outs             int
}

// straightWindows enumerates every 5-rank run a straight can complete on,
// ace playing both high and low.
var straightWindows = func() [][5]int {
	windows := make([][5]int, 0, 10)
	for low := 1; low <= 10; low++ {
		var w [5]int
		for i := 0; i < 5; i++ {
			r := low + i
			if r == 1 {
				r = int(card.Ace) // ace-low wheel card
			}
			w[i] = r
		}
		windows = append(windows, w)
	}
	return windows
}()

// AnalyzeDraws computes the flush/straight draw inventory for hole plus
// community cards, de-duplicating outs that would complete both a flush
// and a straight simultaneously (the same physical card).
func AnalyzeDraws(hole, community []card.Card) DrawAnalysis {
	var d DrawAnalysis
	combined := append(append([]card.Card{}, hole...), community...)
	if len(combined) < 4 {
		return d
	}

	known := map[card.Card]bool{}
	suitCounts := map[card.Suit]int{}
	rankPresent := map[int]bool{}
	for _, c := range combined {
		known[c] = true
		suitCounts[c.Suit]++
		rankPresent[int(c.Rank)] = true
	}
	rankPresent[1] = rankPresent[int(card.Ace)] // ace plays low too

	outCards := map[card.Card]bool{}

	var flushSuit card.Suit
	hasFlushSuit := false
	for s, n := range suitCounts {
		if n == 4 {
			flushSuit = s
			hasFlushSuit = true
		}
	}
	if hasFlushSuit {
		d.FlushDraw = true
		for r := card.Two; r <= card.Ace; r++ {
			c := card.Card{Rank: r, Suit: flushSuit}
			if !known[c] {
				outCards[c] = true
			}
		}
	}

	missingRanks := map[int]bool{}
	openEndedFound := false
	for _, w := range straightWindows {
		present := 0
		var missing int
		for _, r := range w {
			if rankPresent[r] {
				present++
			} else {
				missing = r
			}
		}
		if present != 4 {
			continue
		}
		// Open-ended: the four present ranks in this window are
		// consecutive, so the window's missing rank sits at either
		// end rather than in the middle.
		if missing == w[0] || missing == w[4] {
			openEndedFound = true
		}
		missingRanks[missing] = true
	}
	if openEndedFound {
		d.OpenEnded = true
	} else if len(missingRanks) > 0 {
		d.Gutshot = true
	}
	for r := range missingRanks {
		if r == 1 {
			continue // already counted as Ace
		}
		for suit := card.Clubs; suit <= card.Spades; suit++ {
			c := card.Card{Rank: card.Rank(r), Suit: suit}
			if !known[c] {
				outCards[c] = true
			}
		}
	}

	d.Outs = len(outCards)

	if len(community) == 3 {
		for s, n := range suitCounts {
			if n == 3 && (!hasFlushSuit || s != flushSuit) {
				d.BackdoorFlush = true
			}
		}
		if !d.OpenEnded && !d.Gutshot {
			for _, w := range straightWindows {
				present := 0
				for _, r := range w {
					if rankPresent[r] {
						present++
					}
				}
				if present == 3 {
					d.BackdoorStraight = true
				}
			}
		}
	}

	return d
}
