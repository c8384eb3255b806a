package game

import (
	"fmt"

	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/move"
)

// MakeMove applies m in place. The move must have been generated for the
// current position; nothing is validated beyond the pile references.
func (gs *GameState) MakeMove(m move.Move) {
	switch m.Kind {
	case move.Null:
	case move.Regular:
		gs.PlaceCard(m.To, gs.TakeCard(m.From))
		gs.reveal(m)
	case move.BuiltGroup:
		gs.moveGroup(m.From, m.To, m.Count)
		gs.reveal(m)
	case move.StockToWaste:
		gs.dealCards(m.From, m.To, m.Count)
	case move.StockToAllTableau:
		for i := range m.Count {
			gs.PlaceCard(gs.originalTableau[i], gs.TakeCard(gs.stock))
		}
	case move.Redeal:
		gs.dealCards(gs.waste, gs.stock, gs.piles[gs.waste].Len())
	case move.StockKPlus:
		gs.makeKPlus(m)
	case move.Sequence:
		gs.swapSequenceCard(m.From, m.To)
	case move.Accordion:
		gs.moveGroup(m.From, m.To, m.Count)
		gs.removeAccordionPile(m.From)
	default:
		panic(fmt.Sprintf("cannot make move of kind %v", m.Kind))
	}
}

// UndoMove reverts m, which must be the last move made.
func (gs *GameState) UndoMove(m move.Move) {
	switch m.Kind {
	case move.Null:
	case move.Regular:
		gs.hide(m)
		gs.PlaceCard(m.From, gs.TakeCard(m.To))
	case move.BuiltGroup:
		gs.hide(m)
		gs.moveGroup(m.To, m.From, m.Count)
	case move.StockToWaste:
		gs.dealCards(m.To, m.From, m.Count)
	case move.StockToAllTableau:
		for i := m.Count - 1; i >= 0; i-- {
			gs.PlaceCard(gs.stock, gs.TakeCard(gs.originalTableau[i]))
		}
	case move.Redeal:
		gs.dealCards(gs.stock, gs.waste, m.Count)
	case move.StockKPlus:
		gs.undoKPlus(m)
	case move.Sequence:
		gs.swapSequenceCard(m.To, m.From)
	case move.Accordion:
		gs.insertAccordionPile(m.From)
		gs.moveGroup(m.To, m.From, m.Count)
	default:
		panic(fmt.Sprintf("cannot undo move of kind %v", m.Kind))
	}
}

func (gs *GameState) reveal(m move.Move) {
	if m.Reveal {
		gs.piles[m.From].FlipTop()
	}
}

func (gs *GameState) hide(m move.Move) {
	if m.Reveal {
		gs.piles[m.From].HideTop()
	}
}

// dealCards moves n cards one at a time, reversing their order.
func (gs *GameState) dealCards(from, to, n int) {
	for range n {
		gs.PlaceCard(to, gs.TakeCard(from))
	}
}

// moveGroup moves the top n cards of a pile as a unit, keeping their order.
func (gs *GameState) moveGroup(from, to, n int) {
	var buf [2 * card.MaxRank * card.NumSuits]card.Card
	for i := range n {
		buf[i] = gs.TakeCard(from)
	}
	for i := n - 1; i >= 0; i-- {
		gs.PlaceCard(to, buf[i])
	}
}

// makeKPlus deals (or returns) cards until the wanted card is the waste top,
// plays it, then turns the waste over if the stock ran out.
func (gs *GameState) makeKPlus(m move.Move) {
	if m.Count > 0 {
		gs.dealCards(gs.stock, gs.waste, m.Count)
	} else if m.Count < 0 {
		gs.dealCards(gs.waste, gs.stock, -m.Count)
	}
	gs.PlaceCard(m.To, gs.TakeCard(gs.waste))
	if m.FlipWaste {
		gs.dealCards(gs.waste, gs.stock, gs.piles[gs.waste].Len())
	}
}

func (gs *GameState) undoKPlus(m move.Move) {
	if m.FlipWaste {
		gs.dealCards(gs.stock, gs.waste, gs.piles[gs.stock].Len())
	}
	gs.PlaceCard(gs.waste, gs.TakeCard(m.To))
	if m.Count > 0 {
		gs.dealCards(gs.waste, gs.stock, m.Count)
	} else if m.Count < 0 {
		gs.dealCards(gs.stock, gs.waste, -m.Count)
	}
}

func (gs *GameState) removeAccordionPile(ref int) {
	for i, r := range gs.accordion {
		if r == ref {
			gs.accordion = append(gs.accordion[:i], gs.accordion[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("pile %d is not in the accordion", ref))
}

// insertAccordionPile puts a pile back into the accordion. References were
// allocated in dealing order, so the list stays sorted.
func (gs *GameState) insertAccordionPile(ref int) {
	i := 0
	for i < len(gs.accordion) && gs.accordion[i] < ref {
		i++
	}
	gs.accordion = append(gs.accordion, 0)
	copy(gs.accordion[i+1:], gs.accordion[i:])
	gs.accordion[i] = ref
}
