package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

func tableauRules(piles int) rules.Rules {
	r := rules.Blank()
	r.TableauPiles = piles
	return r
}

func revealing(m move.Move) move.Move {
	m.Reveal = true
	return m
}

func assertMoves(t *testing.T, gs *GameState, want ...move.Move) {
	t.Helper()
	assert.ElementsMatch(t, want, gs.LegalMoves(move.Move{}), "position:\n%v", gs)
}

// testRNG is a reproducible generator for random walks.
func testRNG(seed byte) *frand.RNG {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

func topString(p *card.Pile) string {
	if p.Empty() {
		return ""
	}
	return p.Top().String()
}

// walk plays random legal moves from gs, undoing them all on the way back,
// and calls visit at every position reached.
func walk(gs *GameState, steps int, pick func(n int) int, visit func(*GameState)) {
	var made []move.Move
	parent := move.Move{}
	for range steps {
		visit(gs)
		var moves []move.Move
		if d, ok := gs.DominanceMove(); ok {
			moves = []move.Move{d}
		} else {
			moves = gs.LegalMoves(parent)
		}
		if len(moves) == 0 {
			break
		}
		m := moves[pick(len(moves))]
		gs.MakeMove(m)
		made = append(made, m)
		parent = m
	}
	for i := len(made) - 1; i >= 0; i-- {
		gs.UndoMove(made[i])
	}
}
