package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/rules"
)

// Deal is a deal document. Every card list is bottom first. JSON deal files
// are read through the same YAML decoder.
type Deal struct {
	Tableau     [][]string `yaml:"tableau piles,omitempty"`
	Hole        string     `yaml:"hole,omitempty"`
	Foundations []string   `yaml:"foundations,omitempty"`
	Cells       []string   `yaml:"cells,omitempty"`
	Stock       []string   `yaml:"stock,omitempty"`
	Waste       []string   `yaml:"waste,omitempty"`
	Reserve     []string   `yaml:"reserve,omitempty"`
	// Sequences use "" or "--" for a gap.
	Sequences [][]string `yaml:"sequences,omitempty"`
	Accordion []string   `yaml:"accordion,omitempty"`
}

// ParseDeal decodes a deal document. Unknown keys are errors.
func ParseDeal(data []byte) (*Deal, error) {
	d := &Deal{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDeal)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeal, err)
	}
	return d, nil
}

// Marshal encodes the deal as YAML.
func (d *Deal) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func dealErr(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDeal, fmt.Sprintf(format, a...))
}

// parseDealCard reads one card of a document. A lowercase suit letter means
// face down when only top cards are dealt face up.
func parseDealCard(s string, faceDownAllowed bool) (card.Card, error) {
	if s == "" || s == "--" {
		return card.Gap, nil
	}
	c, lower, err := card.ParseDealt(s)
	if err != nil {
		return card.Card{}, err
	}
	if lower && faceDownAllowed {
		c = c.FlippedDown()
	}
	return c, nil
}

func (gs *GameState) placeStrings(key string, ref int, cards []string, faceDownAllowed, gapsAllowed bool) error {
	for _, s := range cards {
		c, err := parseDealCard(s, faceDownAllowed)
		if err != nil {
			return dealErr("%s: %v", key, err)
		}
		if c.IsGap() && !gapsAllowed {
			return dealErr("%s: empty card", key)
		}
		gs.PlaceCard(ref, c)
	}
	return nil
}

// NewFromDeal builds the starting position described by a deal document.
func NewFromDeal(r rules.Rules, d *Deal, opts ...Option) (*GameState, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	gs := allocate(r, opts...)
	topOnly := r.FaceUp == rules.FaceUpTop

	if r.TableauPiles > 0 {
		if len(d.Tableau) != r.TableauPiles {
			return nil, dealErr("%d tableau piles given, the rules have %d", len(d.Tableau), r.TableauPiles)
		}
		for i, p := range d.Tableau {
			if err := gs.placeStrings("tableau piles", gs.originalTableau[i], p, topOnly, false); err != nil {
				return nil, err
			}
		}
	} else if len(d.Tableau) > 0 {
		return nil, dealErr("tableau piles given but the rules have none")
	}

	if d.Hole != "" {
		if !r.Hole {
			return nil, dealErr("hole given but the rules have none")
		}
		if err := gs.placeStrings("hole", gs.hole, []string{d.Hole}, false, false); err != nil {
			return nil, err
		}
	}

	if len(d.Cells) > 0 {
		if len(d.Cells) != r.Cells {
			return nil, dealErr("%d cells given, the rules have %d", len(d.Cells), r.Cells)
		}
		for i, s := range d.Cells {
			if s == "" {
				continue
			}
			if err := gs.placeStrings("cells", gs.originalCells[i], []string{s}, false, false); err != nil {
				return nil, err
			}
		}
	}

	if len(d.Stock) > 0 || len(d.Waste) > 0 {
		if r.StockSize == 0 {
			return nil, dealErr("stock given but the rules have none")
		}
		if err := gs.placeStrings("stock", gs.stock, d.Stock, false, false); err != nil {
			return nil, err
		}
		if len(d.Waste) > 0 {
			if gs.waste == noPile {
				return nil, dealErr("waste given but the stock deals to the tableau")
			}
			if err := gs.placeStrings("waste", gs.waste, d.Waste, false, false); err != nil {
				return nil, err
			}
		}
	}

	if len(d.Reserve) > 0 {
		if len(d.Reserve) > r.ReserveSize {
			return nil, dealErr("%d reserve cards given, the rules have %d", len(d.Reserve), r.ReserveSize)
		}
		for i, s := range d.Reserve {
			ref := gs.originalReserve[0]
			if !r.ReserveStacked {
				ref = gs.originalReserve[i]
			}
			if err := gs.placeStrings("reserve", ref, []string{s}, false, false); err != nil {
				return nil, err
			}
		}
	}

	if r.SequenceCount > 0 {
		if len(d.Sequences) != r.SequenceCount {
			return nil, dealErr("%d sequences given, the rules have %d", len(d.Sequences), r.SequenceCount)
		}
		for i, row := range d.Sequences {
			if err := gs.placeStrings("sequences", gs.sequences[i], row, false, true); err != nil {
				return nil, err
			}
		}
	}

	if r.AccordionSize > 0 {
		if len(d.Accordion) != r.AccordionSize {
			return nil, dealErr("%d accordion cards given, the rules have %d", len(d.Accordion), r.AccordionSize)
		}
		for i, s := range d.Accordion {
			if err := gs.placeStrings("accordion", gs.accordion[i], []string{s}, false, false); err != nil {
				return nil, err
			}
		}
	}

	if r.Foundations {
		if len(d.Foundations) > 0 {
			for _, s := range d.Foundations {
				c, err := parseDealCard(s, false)
				if err != nil || c.IsGap() {
					return nil, dealErr("foundations: bad card %q", s)
				}
				gs.PlaceCard(gs.foundations[c.Suit()], c)
			}
		} else if r.FoundationsInitCards == rules.InitAll {
			base := r.FoundationsBase
			if base == rules.RandomBase {
				base = 1
			}
			for _, f := range gs.foundations {
				gs.PlaceCard(f, card.New(base, gs.foundationSuit(f)))
			}
		}
		gs.inferFoundationsBase()
	} else if len(d.Foundations) > 0 {
		return nil, dealErr("foundations given but the rules have none")
	}

	if err := gs.checkCardCount(); err != nil {
		return nil, err
	}
	if err := gs.checkDeck(); err != nil {
		return nil, err
	}
	return gs, nil
}

// inferFoundationsBase takes a random foundation base from the bottom card
// of the first non-empty foundation.
func (gs *GameState) inferFoundationsBase() {
	if gs.rules.FoundationsBase != rules.RandomBase {
		return
	}
	gs.foundationsBase = 1
	for _, f := range gs.foundations {
		if !gs.piles[f].Empty() {
			gs.foundationsBase = gs.piles[f].At(0).Rank()
			return
		}
	}
}

// checkDeck makes sure no card is dealt more often than the decks hold it.
func (gs *GameState) checkDeck() error {
	left := map[card.Card]int{}
	for _, c := range newDeck(&gs.rules) {
		left[c]++
	}
	for i := range gs.piles {
		for _, c := range gs.piles[i].Cards() {
			if c.IsGap() {
				continue
			}
			k := c.FlippedUp()
			if left[k] == 0 {
				return dealErr("card %v dealt too often or outside the deck", k)
			}
			left[k]--
		}
	}
	return nil
}

// NewFromPiles sets up a position directly. Piles are given in arena order
// (hole, foundations, cells, stock, waste, reserve, accordion, tableau,
// sequences), each bottom first. Neither the rules nor the card count are
// checked, so partial positions can be built for tests and analysis.
func NewFromPiles(r rules.Rules, piles [][]string, opts ...Option) (*GameState, error) {
	gs := allocate(r, opts...)
	if len(piles) > len(gs.piles) {
		return nil, dealErr("%d piles given, the rules have %d", len(piles), len(gs.piles))
	}
	topOnly := r.FaceUp == rules.FaceUpTop
	for ref, p := range piles {
		if err := gs.placeStrings(gs.roles[ref].String(), ref, p, topOnly, gs.roles[ref] == roleSequence); err != nil {
			return nil, err
		}
	}
	if r.Foundations {
		gs.inferFoundationsBase()
	}
	return gs, nil
}

// MustFromPiles is NewFromPiles for literal positions. It panics on error.
func MustFromPiles(r rules.Rules, piles [][]string, opts ...Option) *GameState {
	gs, err := NewFromPiles(r, piles, opts...)
	if err != nil {
		panic(err)
	}
	return gs
}

// Deal exports the current position as a deal document.
func (gs *GameState) Deal() *Deal {
	strs := func(p *card.Pile) []string {
		out := make([]string, p.Len())
		for i, c := range p.Cards() {
			if c.IsGap() {
				out[i] = "--"
			} else {
				out[i] = c.String()
			}
		}
		return out
	}
	d := &Deal{}
	for _, ref := range gs.originalTableau {
		d.Tableau = append(d.Tableau, strs(&gs.piles[ref]))
	}
	if gs.hole != noPile && !gs.piles[gs.hole].Empty() {
		// the deal format has room for one hole card
		d.Hole = gs.piles[gs.hole].Top().String()
	}
	for _, f := range gs.foundations {
		d.Foundations = append(d.Foundations, strs(&gs.piles[f])...)
	}
	for _, ref := range gs.originalCells {
		if gs.piles[ref].Empty() {
			d.Cells = append(d.Cells, "")
		} else {
			d.Cells = append(d.Cells, gs.piles[ref].Top().String())
		}
	}
	if gs.stock != noPile {
		d.Stock = strs(&gs.piles[gs.stock])
	}
	if gs.waste != noPile {
		d.Waste = strs(&gs.piles[gs.waste])
	}
	for _, ref := range gs.originalReserve {
		d.Reserve = append(d.Reserve, strs(&gs.piles[ref])...)
	}
	for _, ref := range gs.sequences {
		d.Sequences = append(d.Sequences, strs(&gs.piles[ref]))
	}
	for _, ref := range gs.accordion {
		d.Accordion = append(d.Accordion, strs(&gs.piles[ref])...)
	}
	return d
}
