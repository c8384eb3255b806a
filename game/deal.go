package game

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/rules"
)

// newDeck builds one or two ordered decks of cards up to the maximum rank.
func newDeck(r *rules.Rules) []card.Card {
	decks := 1
	if r.TwoDecks {
		decks = 2
	}
	deck := make([]card.Card, 0, decks*r.MaxRank*card.NumSuits)
	for range decks {
		for rank := 1; rank <= r.MaxRank; rank++ {
			for s := card.Suit(0); s < card.NumSuits; s++ {
				deck = append(deck, card.New(rank, s))
			}
		}
	}
	return deck
}

// shuffledDeck returns the deck for a seed. The permutation comes from a
// ChaCha stream keyed by the seed, so a seed always produces the same deal.
func shuffledDeck(r *rules.Rules, seed int64) []card.Card {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	rng := frand.NewCustom(key[:], 1024, 20)
	deck := newDeck(r)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func removeCard(deck []card.Card, c card.Card) []card.Card {
	for i := range deck {
		if deck[i].Equals(c) {
			return append(deck[:i], deck[i+1:]...)
		}
	}
	panic(fmt.Sprintf("card %v not in deck", c))
}

// NewSeeded deals a game from a seed. Cards are taken from the back of the
// shuffled deck: first the hole and any starting foundation cards, then the
// cells, stock, reserve, sequences and accordion, and finally the tableau
// row by row.
func NewSeeded(r rules.Rules, seed int64, opts ...Option) (*GameState, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	gs := allocate(r, opts...)
	deck := shuffledDeck(&gs.rules, seed)
	if r.AccordionSize > 0 {
		deck = deck[len(deck)-r.AccordionSize:]
	}
	pop := func() card.Card {
		c := deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		return c
	}

	if r.Hole {
		if r.HoleBase.IsGap() {
			gs.PlaceCard(gs.hole, pop())
		} else {
			deck = removeCard(deck, r.HoleBase)
			gs.PlaceCard(gs.hole, r.HoleBase)
		}
	}

	if r.Foundations {
		baseSuit := card.Clubs
		if r.FoundationsBase == rules.RandomBase {
			first := deck[0]
			gs.foundationsBase = first.Rank()
			baseSuit = first.Suit()
		}
		fill := 0
		switch r.FoundationsInitCards {
		case rules.InitOne:
			fill = 1
		case rules.InitAll:
			fill = len(gs.foundations)
		}
		for i := range fill {
			f := (i + int(baseSuit)) % len(gs.foundations)
			c := card.New(gs.foundationsBase, gs.foundationSuit(gs.foundations[f]))
			deck = removeCard(deck, c)
			gs.PlaceCard(gs.foundations[f], c)
		}
	}

	for i := range r.CellsPreFilled {
		gs.PlaceCard(gs.originalCells[i], pop())
	}
	for range r.StockSize {
		gs.PlaceCard(gs.stock, pop())
	}
	for i := range r.ReserveSize {
		ref := gs.originalReserve[0]
		if !r.ReserveStacked {
			ref = gs.originalReserve[i]
		}
		gs.PlaceCard(ref, pop())
	}

	if len(gs.sequences) > 0 {
		for t := 0; len(deck) > 0; t++ {
			c := pop()
			if c.Rank() == 1 {
				c = card.Gap
			}
			gs.PlaceCard(gs.sequences[t%len(gs.sequences)], c)
		}
	}
	for _, ref := range gs.accordion {
		gs.PlaceCard(ref, pop())
	}

	gs.dealTableau(deck)
	if err := gs.checkCardCount(); err != nil {
		return nil, err
	}
	return gs, nil
}

// dealTableau deals the remaining cards row by row. A diagonal deal gives the
// first row to every pile, the next to one fewer pile and so on, leaving the
// rightmost pile longest; anything left after that is dealt in full rows.
func (gs *GameState) dealTableau(deck []card.Card) {
	n := len(gs.originalTableau)
	if n == 0 {
		return
	}
	topOnly := gs.rules.FaceUp == rules.FaceUpTop
	for t := 0; len(deck) > 0; t++ {
		c := deck[len(deck)-1]
		if topOnly {
			c = c.FlippedDown()
		}
		p := t % n
		row := t / n
		if gs.rules.DiagonalDeal && row < n {
			p = n - p - 1
			if p < row {
				continue
			}
		}
		gs.PlaceCard(gs.originalTableau[p], c)
		deck = deck[:len(deck)-1]
	}
	if topOnly {
		for _, ref := range gs.originalTableau {
			if !gs.piles[ref].Empty() {
				gs.piles[ref].FlipTop()
			}
		}
	}
}
