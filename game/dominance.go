package game

import (
	"cmp"
	"slices"

	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

// Dominance moves are moves that can be made without losing any solutions,
// so the solver takes them without branching. The auto-foundation rule is a
// heuristic bound on how far a foundation may run ahead of the others before
// its cards may still be needed on the tableau.

// autoFoundationSafe reports whether the next card of a foundation may go up
// automatically.
func (gs *GameState) autoFoundationSafe(target int) bool {
	r := &gs.rules
	if r.FoundationsOnlyCompletePiles || r.TwoDecks {
		return false
	}
	if gs.streamliner == StreamlinerAutoFoundations || r.BuildPolicy == rules.NoBuild || r.BuildPolicy == rules.SameSuit {
		return true
	}

	suit := gs.foundationSuit(target)
	up := gs.nextFoundationRank(target)
	sameDiff, otherDiff := 0, 0
	for _, f := range gs.foundations {
		if f == target {
			continue
		}
		rank := 0
		if !gs.piles[f].Empty() {
			rank = gs.foundationRank(gs.piles[f].Top().Rank())
		}
		diff := up - rank
		s := gs.foundationSuit(f)
		if s == suit || (r.BuildPolicy == rules.RedBlack && s.Colour() == suit.Colour()) {
			sameDiff = diff
		} else {
			otherDiff = max(otherDiff, diff)
		}
	}

	if r.BuildPolicy == rules.RedBlack {
		// Allowing the looser bound when cards can be worried back loses
		// solutions, e.g. in King Albert.
		return (otherDiff <= 2 && sameDiff <= 3) || (otherDiff <= 1 && !r.FoundationsRemovable)
	}
	return otherDiff <= 2
}

// dominanceBlocksFoundationMove reports whether the top card of a foundation
// would go straight back up if it were taken off.
func (gs *GameState) dominanceBlocksFoundationMove(f int) bool {
	p := &gs.piles[f]
	c := p.Take()
	blocked := gs.autoFoundationSafe(f)
	p.Place(c)
	return blocked
}

// DominanceMove returns a move that is safe to make without considering any
// alternative, if there is one.
func (gs *GameState) DominanceMove() (move.Move, bool) {
	r := &gs.rules
	switch r.SpacesPolicy {
	case rules.SpacesAutoReserveThenWaste, rules.SpacesAutoReserveThenAny:
		if m, ok := gs.autoReserveMove(); ok {
			return m, true
		}
	case rules.SpacesAutoWasteThenStock:
		if m, ok := gs.autoWasteStockMove(); ok {
			return m, true
		}
	}

	if !r.Foundations || r.TwoDecks || r.FoundationsOnlyCompletePiles {
		return move.Move{}, false
	}
	kPlusStock := r.StockDealCount == 1 && r.StockRedeal && !gs.simpleStock

	for ref := range gs.piles {
		if gs.piles[ref].Empty() {
			continue
		}
		switch gs.roles[ref] {
		case roleFoundation, roleHole, roleSequence, roleAccordion:
			continue
		case roleWaste:
			if !gs.simpleStock {
				continue
			}
		case roleStock:
			if kPlusStock && r.StockDealType == rules.DealWaste {
				if m, ok := gs.kPlusDominanceMove(); ok {
					return m, true
				}
			}
			continue
		}

		p := &gs.piles[ref]
		c := p.Top()
		f := gs.foundations[c.Suit()]
		if gs.foundationRank(c.Rank()) == gs.nextFoundationRank(f) && gs.autoFoundationSafe(f) {
			m := move.NewRegular(ref, f).WithDominance()
			m.Reveal = p.Len() > 1 && p.FromTop(1).FaceDown()
			return m, true
		}
	}
	return move.Move{}, false
}

// kPlusDominanceMove looks for a card reachable through the stock that may go
// up, trying the deepest one first.
func (gs *GameState) kPlusDominanceMove() (move.Move, bool) {
	cands := gs.kPlusCandidates()
	slices.SortFunc(cands, func(a, b kPlus) int { return cmp.Compare(b.count, a.count) })
	for _, kp := range cands {
		c := gs.kPlusCard(kp.count)
		f := gs.foundations[c.Suit()]
		if gs.foundationRank(c.Rank()) == gs.nextFoundationRank(f) && gs.autoFoundationSafe(f) {
			return move.NewKPlus(gs.stock, f, kp.count, kp.flip).WithDominance(), true
		}
	}
	return move.Move{}, false
}

func (gs *GameState) firstEmptyTableau() (int, bool) {
	for _, t := range gs.tableau {
		if gs.piles[t].Empty() {
			return t, true
		}
	}
	return noPile, false
}

// autoReserveMove fills a space from the reserve.
func (gs *GameState) autoReserveMove() (move.Move, bool) {
	if len(gs.reserve) == 0 {
		return move.Move{}, false
	}
	from := gs.reserve[0]
	if gs.piles[from].Empty() {
		return move.Move{}, false
	}
	to, ok := gs.firstEmptyTableau()
	if !ok {
		return move.Move{}, false
	}
	return move.NewRegular(from, to).WithDominance(), true
}

// autoWasteStockMove fills a space from the waste, or from the stock when the
// waste is empty.
func (gs *GameState) autoWasteStockMove() (move.Move, bool) {
	from := gs.waste
	if gs.piles[from].Empty() {
		from = gs.stock
	}
	if gs.piles[from].Empty() {
		return move.Move{}, false
	}
	to, ok := gs.firstEmptyTableau()
	if !ok {
		return move.Move{}, false
	}
	return move.NewRegular(from, to).WithDominance(), true
}
