package card

import "strings"

// Pile is an ordered stack of cards. The backing slice is bottom first; the
// top card is the last element. Callers that reason about "depth" use
// FromTop, where 0 is the top card.
type Pile struct {
	cards []Card
}

func NewPile(cards ...Card) *Pile {
	p := &Pile{cards: make([]Card, 0, len(cards))}
	p.cards = append(p.cards, cards...)
	return p
}

func (p *Pile) Len() int { return len(p.cards) }

func (p *Pile) Empty() bool { return len(p.cards) == 0 }

// Top returns the top card. It panics on an empty pile.
func (p *Pile) Top() Card {
	if len(p.cards) == 0 {
		panic("top of empty pile")
	}
	return p.cards[len(p.cards)-1]
}

// FromTop returns the card i places below the top.
func (p *Pile) FromTop(i int) Card {
	return p.cards[len(p.cards)-1-i]
}

// At returns the card at position i counted from the bottom.
func (p *Pile) At(i int) Card {
	return p.cards[i]
}

// Set replaces the card at position i counted from the bottom.
func (p *Pile) Set(i int, c Card) {
	p.cards[i] = c
}

func (p *Pile) Place(c Card) {
	p.cards = append(p.cards, c)
}

// Take removes and returns the top card. It panics on an empty pile.
func (p *Pile) Take() Card {
	if len(p.cards) == 0 {
		panic("take from empty pile")
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c
}

// FlipTop turns the top card face up.
func (p *Pile) FlipTop() {
	p.cards[len(p.cards)-1] = p.cards[len(p.cards)-1].FlippedUp()
}

// HideTop turns the top card face down.
func (p *Pile) HideTop() {
	p.cards[len(p.cards)-1] = p.cards[len(p.cards)-1].FlippedDown()
}

// Cards returns the cards bottom first. The slice must not be modified.
func (p *Pile) Cards() []Card {
	return p.cards
}

// Compare orders piles for canonicalisation: a shorter pile is less than a
// longer one, and piles of equal length compare card by card from the bottom.
// Piles holding the same cards are then ordered by their faces, face-up first,
// so only Equal piles compare as 0.
func (p *Pile) Compare(o *Pile) int {
	if len(p.cards) != len(o.cards) {
		if len(p.cards) < len(o.cards) {
			return -1
		}
		return 1
	}
	for i := range p.cards {
		if c := p.cards[i].Compare(o.cards[i]); c != 0 {
			return c
		}
	}
	for i := range p.cards {
		if p.cards[i].faceDown != o.cards[i].faceDown {
			if o.cards[i].faceDown {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether both piles hold the same cards in the same order and
// with the same faces showing.
func (p *Pile) Equal(o *Pile) bool {
	if len(p.cards) != len(o.cards) {
		return false
	}
	for i := range p.cards {
		if !p.cards[i].Equals(o.cards[i]) || p.cards[i].faceDown != o.cards[i].faceDown {
			return false
		}
	}
	return true
}

func (p *Pile) Copy() *Pile {
	return NewPile(p.cards...)
}

func (p *Pile) String() string {
	var sb strings.Builder
	for i, c := range p.cards {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
