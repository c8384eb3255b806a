package game

import (
	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/move"
)

// A k-plus move folds a run of stock deals into the move that plays the
// resulting waste top, so the stock and waste never appear as states of
// their own. kPlus is one reachable waste top: the number of cards to deal
// (or, negative, to return from the waste after an implicit redeal) and
// whether the waste is turned over afterwards.
type kPlus struct {
	count int
	flip  bool
}

// kPlusCandidates lists every card reachable by dealing through the stock,
// first in the current pass and then, if the waste may be redealt, in the
// pass after it. Positions reachable both ways are only listed once.
func (gs *GameState) kPlusCandidates() []kPlus {
	s := gs.piles[gs.stock].Len()
	w := gs.piles[gs.waste].Len()
	d := gs.rules.StockDealCount
	redeal := gs.rules.StockRedeal

	var out []kPlus
	if w > 0 {
		out = append(out, kPlus{count: 0})
	}
	for k := d; k <= s; k += d {
		out = append(out, kPlus{count: k, flip: redeal && k == s})
	}
	if s%d != 0 {
		out = append(out, kPlus{count: s, flip: redeal})
	}
	if !redeal {
		return out
	}

	seen := func(c int) bool {
		for _, kp := range out {
			if kp.count == c {
				return true
			}
		}
		return false
	}
	n := w + s
	add := func(j int) {
		c := j - w
		if j <= w {
			c = -(w - j)
		}
		if !seen(c) {
			out = append(out, kPlus{count: c})
		}
	}
	for j := d; j <= n; j += d {
		add(j)
	}
	if n%d != 0 {
		add(n)
	}
	return out
}

// kPlusCard is the card a k-plus move with the given count plays.
func (gs *GameState) kPlusCard(count int) card.Card {
	switch {
	case count > 0:
		return gs.piles[gs.stock].FromTop(count - 1)
	case count < 0:
		return gs.piles[gs.waste].FromTop(-count)
	}
	return gs.piles[gs.waste].Top()
}

// addKPlusMoves adds a move for every target each reachable card fits.
func (gs *GameState) addKPlusMoves(moves []move.Move) []move.Move {
	for _, kp := range gs.kPlusCandidates() {
		c := gs.kPlusCard(kp.count)
		for _, f := range gs.foundations {
			if gs.foundationAccepts(f, c) {
				moves = append(moves, move.NewKPlus(gs.stock, f, kp.count, kp.flip))
			}
		}
		for _, t := range gs.tableau {
			if gs.tableauAccepts(t, c) {
				moves = append(moves, move.NewKPlus(gs.stock, t, kp.count, kp.flip))
			}
		}
		if cell, ok := gs.firstEmptyCell(noPile); ok {
			moves = append(moves, move.NewKPlus(gs.stock, cell, kp.count, kp.flip))
		}
		if gs.hole != noPile && gs.holeAccepts(c) {
			moves = append(moves, move.NewKPlus(gs.stock, gs.hole, kp.count, kp.flip))
		}
	}
	return moves
}
