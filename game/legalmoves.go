package game

import (
	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

// LegalMoves returns every move from the current position. parent is the
// move that led here, used to skip moves that would simply undo it. The
// solver tries the moves added last first.
func (gs *GameState) LegalMoves(parent move.Move) []move.Move {
	moves := make([]move.Move, 0, 32)
	r := &gs.rules

	if gs.stock != noPile {
		switch {
		case r.StockDealType == rules.DealTableauPiles:
			if s := gs.piles[gs.stock].Len(); s > 0 {
				moves = append(moves, move.NewStockToAllTableau(gs.stock, min(s, len(gs.tableau))))
			}
		case r.StockDealType == rules.DealWaste && gs.simpleStock:
			if s := gs.piles[gs.stock].Len(); s > 0 {
				moves = append(moves, move.NewStockToWaste(gs.stock, gs.waste, min(r.StockDealCount, s)))
			} else if w := gs.piles[gs.waste].Len(); r.StockRedeal && w > 0 {
				m := move.NewRedeal(gs.waste, gs.stock)
				m.Count = w
				moves = append(moves, m)
			}
		case r.StockDealType == rules.DealWaste:
			moves = gs.addKPlusMoves(moves)
		}
	}

	for ref := range gs.piles {
		if gs.piles[ref].Empty() || gs.undoesParent(ref, parent) {
			continue
		}
		switch gs.roles[ref] {
		case roleHole, roleSequence, roleAccordion:
			continue
		case roleFoundation:
			if !r.FoundationsRemovable || gs.dominanceBlocksFoundationMove(ref) {
				continue
			}
		case roleStock:
			if r.StockDealType == rules.DealHole {
				moves = append(moves, move.NewRegular(ref, gs.hole))
			}
			continue
		case roleWaste:
			if !gs.simpleStock {
				continue
			}
		}
		moves = gs.addSingleCardMoves(moves, ref)
	}

	if r.MoveBuiltGroup != rules.BuiltGroupNo {
		moves = gs.addBuiltGroupMoves(moves)
	}
	if r.FoundationsOnlyCompletePiles {
		moves = gs.addCompletePileMoves(moves)
	}
	if len(gs.sequences) > 0 {
		moves = gs.addSequenceMoves(moves)
	}
	if len(gs.accordion) > 0 {
		moves = gs.addAccordionMoves(moves)
	}
	return moves
}

func (gs *GameState) undoesParent(ref int, parent move.Move) bool {
	return parent.Kind == move.Regular && ref == parent.To && parent.Count == 1 && parent.From != gs.stock
}

// addSingleCardMoves adds the moves of the top card of one pile.
func (gs *GameState) addSingleCardMoves(moves []move.Move, from int) []move.Move {
	src := &gs.piles[from]
	c := src.Top()
	reveal := src.Len() > 1 && src.FromTop(1).FaceDown()
	regular := func(to int) move.Move {
		m := move.NewRegular(from, to)
		m.Reveal = reveal
		return m
	}

	if gs.singleTableauMovesAllowed(from) {
		for _, to := range gs.tableau {
			if to == from || !gs.tableauAccepts(to, c) {
				continue
			}
			// a lone card gains nothing by moving to another space
			if gs.isTableau(from) && src.Len() == 1 && gs.piles[to].Empty() {
				continue
			}
			moves = append(moves, regular(to))
		}
	}
	if !gs.isCell(from) {
		if cell, ok := gs.firstEmptyCell(from); ok {
			moves = append(moves, regular(cell))
		}
	}
	if !gs.isFoundation(from) {
		for _, f := range gs.foundations {
			if gs.foundationAccepts(f, c) {
				moves = append(moves, regular(f))
			}
		}
	}
	if gs.hole != noPile && gs.holeAccepts(c) {
		moves = append(moves, regular(gs.hole))
	}
	return moves
}

// singleTableauMovesAllowed is false for a tableau pile whose single card
// moves would split a group that may only move as a whole.
func (gs *GameState) singleTableauMovesAllowed(from int) bool {
	if !gs.isTableau(from) {
		return true
	}
	switch gs.rules.MoveBuiltGroup {
	case rules.BuiltGroupMaximal:
		return gs.builtGroupHeight(from) == 1
	case rules.BuiltGroupWholePile:
		return gs.piles[from].Len() == 1
	}
	return true
}

func (gs *GameState) firstEmptyCell(exclude int) (int, bool) {
	for _, c := range gs.cells {
		if c != exclude && gs.piles[c].Empty() {
			return c, true
		}
	}
	return noPile, false
}

// foundationRank converts a rank to its position in a foundation built up
// from the foundation base, so that the base is 1 and the rank below it the
// maximum.
func (gs *GameState) foundationRank(r int) int {
	top := gs.rules.MaxRank
	s := (r - (gs.foundationsBase - 1) + top) % top
	if s == 0 {
		return top
	}
	return s
}

// nextFoundationRank is the converted rank a foundation accepts next.
func (gs *GameState) nextFoundationRank(f int) int {
	p := &gs.piles[f]
	if p.Empty() {
		return 1
	}
	return gs.foundationRank(p.Top().Rank() + 1)
}

func (gs *GameState) foundationAccepts(f int, c card.Card) bool {
	if gs.rules.FoundationsOnlyCompletePiles || c.Suit() != gs.foundationSuit(f) {
		return false
	}
	if gs.piles[f].Len() >= gs.rules.MaxRank {
		return false
	}
	return gs.foundationRank(c.Rank()) == gs.nextFoundationRank(f)
}

// tableauAccepts reports whether c may be placed on a tableau pile.
func (gs *GameState) tableauAccepts(to int, c card.Card) bool {
	r := &gs.rules
	if r.BuildPolicy == rules.NoBuild {
		return false
	}
	p := &gs.piles[to]
	if p.Empty() {
		switch r.SpacesPolicy {
		case rules.SpacesNoBuild:
			return false
		case rules.SpacesKings:
			return c.Rank() == r.MaxRank
		}
		return true
	}
	return gs.follows(r.BuildPolicy, p.Top(), c)
}

// follows reports whether b may be built on a, one rank lower.
func (gs *GameState) follows(p rules.BuildPolicy, a, b card.Card) bool {
	return fitsPolicy(p, a, b) && gs.foundationRank(b.Rank())+1 == gs.foundationRank(a.Rank())
}

func (gs *GameState) holeAccepts(c card.Card) bool {
	h := gs.piles[gs.hole].Top().Rank()
	r := c.Rank()
	if r+1 == h || r-1 == h {
		return true
	}
	top := gs.rules.MaxRank
	return gs.rules.HoleBuildLoops && ((r == top && h == 1) || (r == 1 && h == top))
}

// builtGroupHeight counts the face-up cards at the top of a pile that form a
// run under the built group policy.
func (gs *GameState) builtGroupHeight(ref int) int {
	p := &gs.piles[ref]
	if p.Empty() {
		return 0
	}
	h := 1
	for h < p.Len() {
		upper := p.FromTop(h)
		if upper.FaceDown() || !gs.follows(gs.rules.BuiltGroupPolicy, upper, p.FromTop(h-1)) {
			break
		}
		h++
	}
	return h
}

// addBuiltGroupMoves adds moves of two or more cards between tableau piles.
func (gs *GameState) addBuiltGroupMoves(moves []move.Move) []move.Move {
	r := &gs.rules
	if r.BuildPolicy == rules.NoBuild {
		return moves
	}
	for _, from := range gs.tableau {
		src := &gs.piles[from]
		if src.Len() < 2 {
			continue
		}
		h := gs.builtGroupHeight(from)
		if h < 2 {
			continue
		}
		if r.MoveBuiltGroup == rules.BuiltGroupWholePile && h != src.Len() {
			continue
		}
		// the smallest group that may move
		lo := 2
		if r.MoveBuiltGroup != rules.BuiltGroupYes {
			lo = h
		}
		group := func(to, k int) move.Move {
			m := move.NewBuiltGroup(from, to, k)
			m.Reveal = src.Len() > k && src.FromTop(k).FaceDown()
			return m
		}
		for _, to := range gs.tableau {
			if to == from {
				continue
			}
			dst := &gs.piles[to]
			if dst.Empty() {
				// the auto policies only fill spaces by dominance, never with groups
				if r.SpacesPolicy != rules.SpacesAny && r.SpacesPolicy != rules.SpacesKings {
					continue
				}
				for k := lo; k <= h; k++ {
					if r.SpacesPolicy == rules.SpacesKings && src.FromTop(k-1).Rank() != r.MaxRank {
						continue
					}
					moves = append(moves, group(to, k))
				}
				continue
			}
			for k := lo; k <= h; k++ {
				if gs.follows(r.BuildPolicy, dst.Top(), src.FromTop(k-1)) {
					moves = append(moves, group(to, k))
					break
				}
			}
		}
	}
	return moves
}

// addCompletePileMoves moves a full run, king down to ace of one suit, from
// the top of a tableau pile to the first empty foundation.
func (gs *GameState) addCompletePileMoves(moves []move.Move) []move.Move {
	n := gs.rules.MaxRank
	for _, from := range gs.tableau {
		p := &gs.piles[from]
		if p.Len() < n {
			continue
		}
		top := p.Top()
		complete := true
		for i := range n {
			c := p.FromTop(i)
			if c.FaceDown() || c.Suit() != top.Suit() || c.Rank() != i+1 {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for _, f := range gs.foundations {
			if gs.piles[f].Empty() {
				m := move.NewBuiltGroup(from, f, n)
				m.Reveal = p.Len() > n && p.FromTop(n).FaceDown()
				moves = append(moves, m)
				break
			}
		}
	}
	return moves
}
