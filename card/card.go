// Package card contains the playing card and pile primitives shared by every
// solitaire variant.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four French suits. The numbering is significant: it is
// the offset of the suit's foundation from the first foundation pile.
type Suit uint8

const (
	Clubs Suit = iota
	Hearts
	Spades
	Diamonds
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

// MaxRank is the highest rank a card can have.
const MaxRank = 13

type Colour uint8

const (
	Black Colour = iota
	Red
)

var suitLetters = [NumSuits]byte{'C', 'H', 'S', 'D'}

var ErrBadCard = errors.New("bad card string")

func (s Suit) Colour() Colour {
	if s == Clubs || s == Spades {
		return Black
	}
	return Red
}

func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return string(suitLetters[s])
}

// Card is a single playing card. Two cards are equal if their rank and suit
// are equal; the face-down bit is not part of a card's identity.
type Card struct {
	rank     uint8
	suit     Suit
	faceDown bool
}

// Gap is the placeholder card occupying the empty slot of a sequence row.
// It has rank 0 and never compares equal to a real card.
var Gap = Card{}

func New(rank int, suit Suit) Card {
	return Card{rank: uint8(rank), suit: suit}
}

func (c Card) Rank() int { return int(c.rank) }

func (c Card) Suit() Suit { return c.suit }

func (c Card) Colour() Colour { return c.suit.Colour() }

func (c Card) FaceDown() bool { return c.faceDown }

func (c Card) IsGap() bool { return c.rank == 0 }

func (c Card) Equals(o Card) bool {
	return c.rank == o.rank && c.suit == o.suit
}

// FlippedUp returns a face-up copy of the card.
func (c Card) FlippedUp() Card {
	c.faceDown = false
	return c
}

// FlippedDown returns a face-down copy of the card.
func (c Card) FlippedDown() Card {
	c.faceDown = true
	return c
}

// Compare orders cards by rank, then suit.
func (c Card) Compare(o Card) int {
	switch {
	case c.rank < o.rank:
		return -1
	case c.rank > o.rank:
		return 1
	case c.suit < o.suit:
		return -1
	case c.suit > o.suit:
		return 1
	}
	return 0
}

func rankString(r uint8) string {
	switch r {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// String renders the card as rank followed by suit letter, e.g. "10H". A
// face-down card uses a lowercase suit letter, which Parse understands.
func (c Card) String() string {
	if c.IsGap() {
		return "--"
	}
	if c.faceDown {
		return rankString(c.rank) + strings.ToLower(c.suit.String())
	}
	return rankString(c.rank) + c.suit.String()
}

// HiddenString renders a face-down card as "##".
func (c Card) HiddenString() string {
	if c.faceDown {
		return "##"
	}
	return c.String()
}

// Parse reads a card string such as "AS", "10h" or "1C". Parsing is case
// insensitive; see ParseDealt for the face-down convention.
func Parse(s string) (Card, error) {
	c, _, err := parse(s)
	return c, err
}

// ParseDealt is like Parse, but also reports whether the suit letter was
// written in lowercase. Deal documents use that to mark face-down cards.
func ParseDealt(s string) (Card, bool, error) {
	return parse(s)
}

func parse(s string) (Card, bool, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, false, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	suitByte := s[len(s)-1]
	lower := suitByte >= 'a' && suitByte <= 'z'
	var suit Suit
	switch suitByte {
	case 'C', 'c':
		suit = Clubs
	case 'H', 'h':
		suit = Hearts
	case 'S', 's':
		suit = Spades
	case 'D', 'd':
		suit = Diamonds
	default:
		return Card{}, false, fmt.Errorf("%w: unknown suit in %q", ErrBadCard, s)
	}
	var rank int
	switch r := strings.ToUpper(s[:len(s)-1]); r {
	case "A":
		rank = 1
	case "J":
		rank = 11
	case "Q":
		rank = 12
	case "K":
		rank = 13
	default:
		var err error
		rank, err = strconv.Atoi(r)
		if err != nil || rank < 1 || rank > MaxRank {
			return Card{}, false, fmt.Errorf("%w: unknown rank in %q", ErrBadCard, s)
		}
	}
	return New(rank, suit), lower, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
