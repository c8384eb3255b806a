package game

import (
	"errors"
	"fmt"

	"github.com/domino14/solvitaire/move"
)

var ErrIllegalMove = errors.New("illegal move")

// IsLegal reports whether m can be made from the current position, given
// the move that led to it.
func (gs *GameState) IsLegal(m move.Move, parent move.Move) bool {
	if d, ok := gs.DominanceMove(); ok && d.Same(m) {
		return true
	}
	for _, lm := range gs.LegalMoves(parent) {
		if lm.Same(m) {
			return true
		}
	}
	return false
}

// Replay plays a move trace from a copy of the position and returns the
// position after every move. The receiver is left untouched.
func (gs *GameState) Replay(moves []move.Move) ([]*GameState, error) {
	cur := gs.Copy()
	out := make([]*GameState, 0, len(moves))
	parent := move.Move{}
	for i, m := range moves {
		if !cur.IsLegal(m, parent) {
			return out, fmt.Errorf("%w: move %d (%v)", ErrIllegalMove, i+1, m)
		}
		cur.MakeMove(m)
		out = append(out, cur.Copy())
		parent = m
	}
	return out, nil
}
