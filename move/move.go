package move

import (
	"fmt"
	"strings"
)

// Kind is a type of move; a single card, a built group, a stock deal, etc.
type Kind uint8

const (
	// Null is the move that leads to the starting position.
	Null Kind = iota
	Regular
	BuiltGroup
	StockToWaste
	StockToAllTableau
	Redeal
	// StockKPlus deals cards through the stock (or back from the waste) and
	// plays the resulting waste top card in one move.
	StockKPlus
	Sequence
	Accordion
)

var kindNames = [...]string{
	Null:              "null",
	Regular:           "regular",
	BuiltGroup:        "built-group",
	StockToWaste:      "stock-to-waste",
	StockToAllTableau: "stock-to-all-tableau",
	Redeal:            "redeal",
	StockKPlus:        "stock-k-plus",
	Sequence:          "sequence",
	Accordion:         "accordion",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Move is a complete, reversible description of a state transition. From
// and To are pile references into the game state's pile arena, except for
// sequence moves where they are encoded card positions.
type Move struct {
	Kind Kind
	From int
	To   int
	// Count is the number of cards moved. For StockKPlus it is the number
	// of cards dealt from the stock to the waste, or, when negative, the
	// number returned from the waste to the stock, before the waste top card
	// is played.
	Count int
	// Reveal is set when the move exposes a face-down card that is then
	// turned face up.
	Reveal bool
	// FlipWaste is set on a k-plus move that exhausts the stock; the waste
	// goes back to the stock once the card has been played.
	FlipWaste bool
	Dominance bool
}

// NewRegular moves the top card of one pile to another.
func NewRegular(from, to int) Move {
	return Move{Kind: Regular, From: from, To: to, Count: 1}
}

func NewBuiltGroup(from, to, count int) Move {
	return Move{Kind: BuiltGroup, From: from, To: to, Count: count}
}

func NewStockToWaste(stock, waste, count int) Move {
	return Move{Kind: StockToWaste, From: stock, To: waste, Count: count}
}

// NewStockToAllTableau deals one stock card onto each of the first count
// tableau piles.
func NewStockToAllTableau(stock, count int) Move {
	return Move{Kind: StockToAllTableau, From: stock, To: stock, Count: count}
}

func NewRedeal(waste, stock int) Move {
	return Move{Kind: Redeal, From: waste, To: stock}
}

func NewKPlus(stock, to, count int, flip bool) Move {
	return Move{Kind: StockKPlus, From: stock, To: to, Count: count, FlipWaste: flip}
}

func NewSequence(from, to int) Move {
	return Move{Kind: Sequence, From: from, To: to, Count: 1}
}

func NewAccordion(from, to, count int) Move {
	return Move{Kind: Accordion, From: from, To: to, Count: count}
}

// IsNull reports whether m is the placeholder parent of the first position.
func (m Move) IsNull() bool {
	return m.Kind == Null
}

// WithDominance returns a copy of m flagged as a forced move.
func (m Move) WithDominance() Move {
	m.Dominance = true
	return m
}

// Same reports whether two moves describe the same transition, ignoring the
// dominance flag.
func (m Move) Same(o Move) bool {
	m.Dominance, o.Dominance = false, false
	return m == o
}

// String provides a string for debugging and test failure output.
func (m Move) String() string {
	var flags []string
	if m.Reveal {
		flags = append(flags, "reveal")
	}
	if m.FlipWaste {
		flags = append(flags, "flip")
	}
	if m.Dominance {
		flags = append(flags, "dominance")
	}
	s := fmt.Sprintf("<%s %d->%d count: %d", m.Kind, m.From, m.To, m.Count)
	if len(flags) > 0 {
		s += " " + strings.Join(flags, ",")
	}
	return s + ">"
}

// ShortDescription is a compact form used by the shell and solution
// output, e.g. "4>1" or "4>1x3".
func (m Move) ShortDescription() string {
	switch m.Kind {
	case Null:
		return "(start)"
	case Regular, Sequence:
		return fmt.Sprintf("%d>%d", m.From, m.To)
	case BuiltGroup, Accordion:
		return fmt.Sprintf("%d>%dx%d", m.From, m.To, m.Count)
	case StockToWaste:
		return fmt.Sprintf("deal %d", m.Count)
	case StockToAllTableau:
		return fmt.Sprintf("deal row %d", m.Count)
	case Redeal:
		return "redeal"
	case StockKPlus:
		s := fmt.Sprintf("%d>%d%+d", m.From, m.To, m.Count)
		if m.FlipWaste {
			s += "!"
		}
		return s
	}
	return "UNHANDLED"
}
