package card

// Deck is an ordered sequence of 52 distinct cards.
type Deck []Card

// NewDeck returns a fresh, unshuffled 52-card deck in suit-major,
// rank-ascending order.
func NewDeck() Deck {
	d := make(Deck, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := Two; r <= Ace; r++ {
			d = append(d, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// Source is the randomness a Shuffle draws on. pkg/rng.System satisfies
// this without either package importing the other.
type Source interface {
	// RandomInt returns a uniformly distributed integer in [0, max).
	RandomInt(max int) int
}

// Shuffle permutes the deck in place using a Fisher-Yates shuffle driven by
// src. The teacher's original ShuffleDeck set j := i on every iteration,
// which is a no-op — it never actually permuted anything. This is a real
// Fisher-Yates: for each position from the end down to 1, swap it with a
// uniformly chosen earlier (or equal) position.
func Shuffle(d Deck, src Source) {
	for i := len(d) - 1; i > 0; i-- {
		j := src.RandomInt(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// IDs returns the dense 0..51 identifiers of the deck's cards, in order —
// the representation used for shuffle-audit logging.
func (d Deck) IDs() []int {
	ids := make([]int, len(d))
	for i, c := range d {
		ids[i] = c.ID()
	}
	return ids
}
