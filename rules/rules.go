// Package rules describes a solitaire variant as a plain configuration
// record. A Rules value is read-only once a game state has been built from
// it.
package rules

import (
	"errors"
	"fmt"

	"github.com/domino14/solvitaire/card"
)

var ErrInvalidRules = errors.New("invalid rules")

type BuildPolicy uint8

const (
	AnySuit BuildPolicy = iota
	RedBlack
	SameSuit
	NoBuild
)

type SpacesPolicy uint8

const (
	SpacesAny SpacesPolicy = iota
	SpacesNoBuild
	SpacesKings
	SpacesAutoReserveThenWaste
	SpacesAutoReserveThenAny
	SpacesAutoWasteThenStock
)

// BuiltGroupType says whether runs of cards may be moved as a unit.
type BuiltGroupType uint8

const (
	BuiltGroupNo BuiltGroupType = iota
	BuiltGroupYes
	BuiltGroupWholePile
	BuiltGroupMaximal
)

type FoundationsInit uint8

const (
	InitNone FoundationsInit = iota
	InitOne
	InitAll
)

type StockDealType uint8

const (
	DealWaste StockDealType = iota
	DealTableauPiles
	DealHole
)

type FaceUpPolicy uint8

const (
	FaceUpAll FaceUpPolicy = iota
	FaceUpTop
)

type Direction uint8

const (
	Left Direction = iota
	Right
	Both
)

type AccordionPolicy uint8

const (
	AccordionSameRank AccordionPolicy = iota
	AccordionSameSuit
	AccordionRedBlack
	AccordionAnySuit
)

// AccordionMove is a permitted jump: the pile Distance places away in
// Direction may be covered by the moving pile.
type AccordionMove struct {
	Direction Direction
	Distance  int
}

// RandomBase marks a foundation or hole base chosen by the deal.
const RandomBase = 0

// Rules is the full description of one solitaire variant.
type Rules struct {
	TableauPiles     int
	BuildPolicy      BuildPolicy
	SpacesPolicy     SpacesPolicy
	MoveBuiltGroup   BuiltGroupType
	BuiltGroupPolicy BuildPolicy
	DiagonalDeal     bool
	FaceUp           FaceUpPolicy

	MaxRank  int
	TwoDecks bool

	Hole bool
	// HoleBase is the card dealt to the hole. A zero card means it is taken
	// from the top of the shuffled deck.
	HoleBase       card.Card
	HoleBuildLoops bool

	Foundations          bool
	FoundationsInitCards FoundationsInit
	// FoundationsBase is the rank every foundation starts from, or
	// RandomBase.
	FoundationsBase              int
	FoundationsRemovable         bool
	FoundationsOnlyCompletePiles bool

	Cells          int
	CellsPreFilled int

	StockSize      int
	StockDealType  StockDealType
	StockDealCount int
	StockRedeal    bool

	ReserveSize    int
	ReserveStacked bool

	SequenceCount       int
	SequenceDirection   Direction
	SequenceBuildPolicy BuildPolicy
	SequenceFixedSuit   bool

	AccordionSize     int
	AccordionMoves    []AccordionMove
	AccordionPolicies []AccordionPolicy
}

// Blank returns rules with no piles at all. Tests and callers that build a
// variant field by field start from here.
func Blank() Rules {
	return Rules{
		BuildPolicy:         AnySuit,
		SpacesPolicy:        SpacesAny,
		MoveBuiltGroup:      BuiltGroupNo,
		BuiltGroupPolicy:    AnySuit,
		MaxRank:             card.MaxRank,
		HoleBase:            card.New(1, card.Spades),
		HoleBuildLoops:      true,
		FoundationsBase:     1,
		StockDealType:       DealWaste,
		StockDealCount:      1,
		FaceUp:              FaceUpAll,
		SequenceDirection:   Left,
		SequenceBuildPolicy: SameSuit,
	}
}

// DeckSize is the number of cards the variant is played with.
func (r *Rules) DeckSize() int {
	if r.AccordionSize > 0 {
		return r.AccordionSize
	}
	n := r.MaxRank * card.NumSuits
	if r.TwoDecks {
		n *= 2
	}
	return n
}

func (r *Rules) FoundationCount() int {
	if !r.Foundations {
		return 0
	}
	if r.TwoDecks {
		return 2 * card.NumSuits
	}
	return card.NumSuits
}

// StockDealsToTableau reports whether the stock deals into fixed tableau
// slots. Tableau piles are then no longer interchangeable.
func (r *Rules) StockDealsToTableau() bool {
	return r.StockSize > 0 && r.StockDealType == DealTableauPiles
}

func (r *Rules) HasWaste() bool {
	return r.StockSize > 0 && r.StockDealType == DealWaste
}

// ReservePiles is the number of reserve piles. A stacked reserve is one
// pile.
func (r *Rules) ReservePiles() int {
	if r.ReserveSize == 0 {
		return 0
	}
	if r.ReserveStacked {
		return 1
	}
	return r.ReserveSize
}

// AutoSpaces reports whether empty tableau piles are filled automatically.
func (r *Rules) AutoSpaces() bool {
	switch r.SpacesPolicy {
	case SpacesAutoReserveThenWaste, SpacesAutoReserveThenAny, SpacesAutoWasteThenStock:
		return true
	}
	return false
}

// OffTableau is the number of cards a deal places anywhere but the tableau.
func (r *Rules) OffTableau() int {
	n := r.CellsPreFilled + r.StockSize + r.ReserveSize
	if r.Hole {
		n++
	}
	if r.Foundations {
		switch r.FoundationsInitCards {
		case InitOne:
			n++
		case InitAll:
			n += r.FoundationCount()
		}
	}
	return n
}

func (r *Rules) winConditions() int {
	n := 0
	for _, b := range []bool{r.Hole, r.Foundations, r.SequenceCount > 0, r.AccordionSize > 0} {
		if b {
			n++
		}
	}
	return n
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRules, fmt.Sprintf(format, a...))
}

// Validate checks that the rules describe a playable variant.
func (r *Rules) Validate() error {
	switch {
	case r.MaxRank < 1 || r.MaxRank > card.MaxRank:
		return invalid("max rank %d out of range 1-%d", r.MaxRank, card.MaxRank)
	case r.winConditions() != 1:
		return invalid("exactly one of hole, foundations, sequences or accordion must be the win condition")
	case r.TableauPiles < 0 || r.Cells < 0 || r.StockSize < 0 || r.ReserveSize < 0:
		return invalid("pile counts must not be negative")
	case r.CellsPreFilled > r.Cells:
		return invalid("%d pre-filled cells but only %d cells", r.CellsPreFilled, r.Cells)
	case r.StockSize > 0 && r.StockDealCount < 1:
		return invalid("stock deal count must be positive")
	case r.StockSize > 0 && r.StockDealType == DealHole && !r.Hole:
		return invalid("stock deals to the hole but there is no hole")
	case r.StockDealsToTableau() && r.TableauPiles == 0:
		return invalid("stock deals to tableau piles but there are none")
	case r.SpacesPolicy == SpacesAutoWasteThenStock && !r.HasWaste():
		return invalid("auto-waste-then-stock spaces need a stock dealing to a waste pile")
	case (r.SpacesPolicy == SpacesAutoReserveThenWaste || r.SpacesPolicy == SpacesAutoReserveThenAny) && r.ReserveSize == 0:
		return invalid("auto-reserve spaces need a reserve")
	case r.FoundationsOnlyCompletePiles && !r.Foundations:
		return invalid("complete pile moves need foundations")
	case r.Hole && !r.HoleBase.IsGap() && r.HoleBase.Rank() > r.MaxRank:
		return invalid("hole base card %v is above max rank %d", r.HoleBase, r.MaxRank)
	case r.Foundations && r.FoundationsBase != RandomBase && (r.FoundationsBase < 1 || r.FoundationsBase > r.MaxRank):
		return invalid("foundation base rank %d out of range", r.FoundationsBase)
	case r.SequenceCount > 0 && r.DeckSize() != r.SequenceCount*r.MaxRank:
		return invalid("%d cards cannot be split into %d sequences of %d", r.DeckSize(), r.SequenceCount, r.MaxRank)
	case r.AccordionSize > 0 && (len(r.AccordionMoves) == 0 || len(r.AccordionPolicies) == 0):
		return invalid("accordion needs moves and build policies")
	case r.AccordionSize > r.MaxRank*card.NumSuits:
		return invalid("accordion of %d cards is larger than the deck", r.AccordionSize)
	}
	for _, m := range r.AccordionMoves {
		if m.Distance < 1 {
			return invalid("accordion move distance must be positive")
		}
	}
	if r.AccordionSize == 0 && r.SequenceCount == 0 && r.OffTableau() > r.DeckSize() {
		return invalid("deck of %d cards is too small for the layout", r.DeckSize())
	}
	return nil
}
