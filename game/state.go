// Package game holds the rule-governed state of a solitaire deal. A
// GameState owns every pile, generates the legal moves from its current
// position and applies and undoes them in place.
package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/rules"
)

var ErrInvalidDeal = errors.New("invalid deal")

// Streamliner tightens the rules to prune the search. Any solution found
// with a streamliner is a real solution; an unsolvable result is not proof.
type Streamliner uint8

const (
	StreamlinerNone Streamliner = iota
	// StreamlinerAutoFoundations forces every card that can go up to the
	// foundations.
	StreamlinerAutoFoundations
	// StreamlinerSmart asks the caller to try auto-foundations first and fall
	// back to a full search. To the state itself it is the same as None.
	StreamlinerSmart
)

func (s Streamliner) String() string {
	switch s {
	case StreamlinerAutoFoundations:
		return "auto-foundations"
	case StreamlinerSmart:
		return "smart"
	}
	return "none"
}

func ParseStreamliner(s string) (Streamliner, error) {
	switch s {
	case "", "none":
		return StreamlinerNone, nil
	case "auto-foundations":
		return StreamlinerAutoFoundations, nil
	case "smart":
		return StreamlinerSmart, nil
	}
	return StreamlinerNone, fmt.Errorf("unknown streamliner %q", s)
}

type role uint8

const (
	roleHole role = iota
	roleFoundation
	roleCell
	roleStock
	roleWaste
	roleReserve
	roleAccordion
	roleTableau
	roleSequence
)

var roleNames = [...]string{"hole", "foundation", "cell", "stock", "waste",
	"reserve", "accordion", "tableau", "sequence"}

func (r role) String() string { return roleNames[r] }

// noPile is the reference of a pile the rules do not have.
const noPile = -1

// GameState is one position of a deal. Piles live in an arena and are
// addressed by a stable reference; the tableau, cell and reserve groups
// additionally keep a live ordering, largest pile first, so that positions
// differing only by a permutation of interchangeable piles look the same.
type GameState struct {
	rules rules.Rules

	piles []card.Pile
	roles []role

	hole        int
	stock       int
	waste       int
	foundations []int
	sequences   []int

	tableau   []int
	cells     []int
	reserve   []int
	accordion []int

	originalTableau []int
	originalCells   []int
	originalReserve []int

	foundationsBase int
	streamliner     Streamliner
	simpleStock     bool
	pileSymmetry    bool
}

// Option configures a GameState at construction.
type Option func(*GameState)

func WithStreamliner(s Streamliner) Option {
	return func(gs *GameState) { gs.streamliner = s }
}

// WithSimpleStock replaces k-plus stock moves with separate deal, redeal and
// waste moves. The search tree is deeper but every move is elementary.
func WithSimpleStock() Option {
	return func(gs *GameState) { gs.simpleStock = true }
}

// allocate lays out the pile arena. The order of roles is fixed: hole,
// foundations, cells, stock, waste, reserve, accordion, tableau, sequences.
func allocate(r rules.Rules, opts ...Option) *GameState {
	gs := &GameState{
		rules:           r,
		hole:            noPile,
		stock:           noPile,
		waste:           noPile,
		foundationsBase: r.FoundationsBase,
		pileSymmetry:    !r.StockDealsToTableau(),
	}
	if gs.foundationsBase == rules.RandomBase {
		gs.foundationsBase = 1
	}
	for _, o := range opts {
		o(gs)
	}
	add := func(ro role) int {
		gs.piles = append(gs.piles, card.Pile{})
		gs.roles = append(gs.roles, ro)
		return len(gs.piles) - 1
	}
	if r.Hole {
		gs.hole = add(roleHole)
	}
	for range r.FoundationCount() {
		gs.foundations = append(gs.foundations, add(roleFoundation))
	}
	for range r.Cells {
		gs.originalCells = append(gs.originalCells, add(roleCell))
	}
	if r.StockSize > 0 {
		gs.stock = add(roleStock)
		if r.StockDealType == rules.DealWaste {
			gs.waste = add(roleWaste)
		}
	}
	for range r.ReservePiles() {
		gs.originalReserve = append(gs.originalReserve, add(roleReserve))
	}
	for range r.AccordionSize {
		gs.accordion = append(gs.accordion, add(roleAccordion))
	}
	for range r.TableauPiles {
		gs.originalTableau = append(gs.originalTableau, add(roleTableau))
	}
	for range r.SequenceCount {
		gs.sequences = append(gs.sequences, add(roleSequence))
	}
	gs.tableau = slices.Clone(gs.originalTableau)
	gs.cells = slices.Clone(gs.originalCells)
	gs.reserve = slices.Clone(gs.originalReserve)
	return gs
}

func (gs *GameState) Rules() *rules.Rules { return &gs.rules }

func (gs *GameState) Streamliner() Streamliner { return gs.streamliner }

// FoundationsBase is the rank each foundation is built up from.
func (gs *GameState) FoundationsBase() int { return gs.foundationsBase }

// NumPiles is the size of the pile arena.
func (gs *GameState) NumPiles() int { return len(gs.piles) }

// Pile returns a read-only view of the pile with the given reference.
func (gs *GameState) Pile(ref int) *card.Pile {
	gs.checkRef(ref)
	return &gs.piles[ref]
}

// Role names the role of a pile, e.g. "tableau".
func (gs *GameState) Role(ref int) string {
	gs.checkRef(ref)
	return gs.roles[ref].String()
}

func (gs *GameState) Hole() int  { return gs.hole }
func (gs *GameState) Stock() int { return gs.stock }
func (gs *GameState) Waste() int { return gs.waste }

func (gs *GameState) Foundations() []int { return gs.foundations }
func (gs *GameState) Sequences() []int   { return gs.sequences }

// Tableau returns the tableau references in their live, canonical order.
func (gs *GameState) Tableau() []int { return gs.tableau }

func (gs *GameState) Cells() []int     { return gs.cells }
func (gs *GameState) Reserve() []int   { return gs.reserve }
func (gs *GameState) Accordion() []int { return gs.accordion }

// OriginalTableau returns the tableau references in dealing order.
func (gs *GameState) OriginalTableau() []int { return gs.originalTableau }

func (gs *GameState) checkRef(ref int) {
	if ref < 0 || ref >= len(gs.piles) {
		panic(fmt.Sprintf("pile reference %d out of range [0, %d)", ref, len(gs.piles)))
	}
}

// PlaceCard puts a card on top of a pile and restores the pile order.
func (gs *GameState) PlaceCard(ref int, c card.Card) {
	gs.checkRef(ref)
	gs.piles[ref].Place(c)
	gs.evalPileOrder(ref, true)
}

// TakeCard removes the top card of a pile and restores the pile order.
func (gs *GameState) TakeCard(ref int) card.Card {
	gs.checkRef(ref)
	c := gs.piles[ref].Take()
	gs.evalPileOrder(ref, false)
	return c
}

// CardCount is the number of cards across all piles. In sequence games
// each gap stands for an ace taken out of play and counts as a card.
func (gs *GameState) CardCount() int {
	n := 0
	for i := range gs.piles {
		n += gs.piles[i].Len()
	}
	return n
}

// Equal reports whether two states hold the same cards, with the same faces,
// in every pile of the arena. The live order of interchangeable piles is
// only compared where it is not ambiguous.
func (gs *GameState) Equal(o *GameState) bool {
	if len(gs.piles) != len(o.piles) {
		return false
	}
	for i := range gs.piles {
		if !gs.piles[i].Equal(&o.piles[i]) {
			return false
		}
	}
	return slices.Equal(gs.accordion, o.accordion)
}

// Copy returns a deep copy of the state.
func (gs *GameState) Copy() *GameState {
	c := *gs
	c.piles = make([]card.Pile, len(gs.piles))
	for i := range gs.piles {
		c.piles[i] = *gs.piles[i].Copy()
	}
	c.rules.AccordionMoves = slices.Clone(gs.rules.AccordionMoves)
	c.rules.AccordionPolicies = slices.Clone(gs.rules.AccordionPolicies)
	c.roles = slices.Clone(gs.roles)
	c.foundations = slices.Clone(gs.foundations)
	c.sequences = slices.Clone(gs.sequences)
	c.tableau = slices.Clone(gs.tableau)
	c.cells = slices.Clone(gs.cells)
	c.reserve = slices.Clone(gs.reserve)
	c.accordion = slices.Clone(gs.accordion)
	c.originalTableau = slices.Clone(gs.originalTableau)
	c.originalCells = slices.Clone(gs.originalCells)
	c.originalReserve = slices.Clone(gs.originalReserve)
	return &c
}

func (gs *GameState) isFoundation(ref int) bool {
	return ref >= 0 && gs.roles[ref] == roleFoundation
}

func (gs *GameState) isTableau(ref int) bool {
	return ref >= 0 && gs.roles[ref] == roleTableau
}

func (gs *GameState) isCell(ref int) bool {
	return ref >= 0 && gs.roles[ref] == roleCell
}

// foundationSuit is the suit a foundation is built in.
func (gs *GameState) foundationSuit(ref int) card.Suit {
	return card.Suit((ref - gs.foundations[0]) % card.NumSuits)
}

// checkCardCount fails unless the arena holds a full deck.
func (gs *GameState) checkCardCount() error {
	if n, want := gs.CardCount(), gs.rules.DeckSize(); n != want {
		return fmt.Errorf("%w: %d cards dealt, the rules need %d", ErrInvalidDeal, n, want)
	}
	return nil
}
