package game

import (
	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

// Sequence moves address single card positions rather than piles. A position
// is encoded as row*stride+column, where row is the ordinal of the sequence
// and stride the row length, which is always the maximum rank.

func (gs *GameState) sequenceStride() int {
	return gs.rules.MaxRank
}

func (gs *GameState) encodeSequencePos(row, col int) int {
	return row*gs.sequenceStride() + col
}

func (gs *GameState) decodeSequencePos(pos int) (row, col int) {
	s := gs.sequenceStride()
	return pos / s, pos % s
}

// SequenceCard returns the card at an encoded sequence position.
func (gs *GameState) SequenceCard(pos int) card.Card {
	row, col := gs.decodeSequencePos(pos)
	return gs.piles[gs.sequences[row]].At(col)
}

// swapSequenceCard moves the card at from into the gap at to.
func (gs *GameState) swapSequenceCard(from, to int) {
	fr, fc := gs.decodeSequencePos(from)
	tr, tc := gs.decodeSequencePos(to)
	src := &gs.piles[gs.sequences[fr]]
	dst := &gs.piles[gs.sequences[tr]]
	dst.Set(tc, src.At(fc))
	src.Set(fc, card.Gap)
}

// fitsPolicy reports whether b may follow a under a build policy, ignoring
// rank.
func fitsPolicy(p rules.BuildPolicy, a, b card.Card) bool {
	switch p {
	case rules.SameSuit:
		return a.Suit() == b.Suit()
	case rules.RedBlack:
		return a.Colour() != b.Colour()
	case rules.AnySuit:
		return true
	}
	return false
}

// addSequenceMoves finds every card that can slide into a gap. Rows are built
// up from the lowest rank (2, the aces having been removed) on the left. A
// left-direction game fills a gap from its left neighbour; a right-direction
// game fills it from its right neighbour, downwards.
func (gs *GameState) addSequenceMoves(moves []move.Move) []move.Move {
	r := &gs.rules
	left := r.SequenceDirection == rules.Left || r.SequenceDirection == rules.Both
	right := r.SequenceDirection == rules.Right || r.SequenceDirection == rules.Both
	stride := gs.sequenceStride()

	for row, ref := range gs.sequences {
		p := &gs.piles[ref]
		for col := range p.Len() {
			if !p.At(col).IsGap() {
				continue
			}
			to := gs.encodeSequencePos(row, col)
			if left {
				if col == 0 {
					moves = gs.addSequenceStarts(moves, row, to, 2, 0)
				} else if l := p.At(col - 1); !l.IsGap() && l.Rank() < r.MaxRank {
					moves = gs.addSequenceFollowers(moves, to, l, 1)
				}
			}
			if right {
				if col == stride-1 {
					moves = gs.addSequenceStarts(moves, row, to, r.MaxRank, stride-1)
				} else if rc := p.At(col + 1); !rc.IsGap() && rc.Rank() > 2 {
					moves = gs.addSequenceFollowers(moves, to, rc, -1)
				}
			}
		}
	}
	return moves
}

// addSequenceStarts adds the moves of a card of the given rank into the gap
// at the end of a row. Cards already at that end of another row stay put
// unless rows are fixed to a suit.
func (gs *GameState) addSequenceStarts(moves []move.Move, row, to, rank, endCol int) []move.Move {
	fixed := gs.rules.SequenceFixedSuit
	for r, ref := range gs.sequences {
		p := &gs.piles[ref]
		for c := range p.Len() {
			x := p.At(c)
			if x.Rank() != rank {
				continue
			}
			if fixed && x.Suit() != card.Suit(row%card.NumSuits) {
				continue
			}
			if c == endCol && (!fixed || r == row) {
				continue
			}
			moves = append(moves, move.NewSequence(gs.encodeSequencePos(r, c), to))
		}
	}
	return moves
}

// addSequenceFollowers adds the moves of every card that continues next to
// the neighbour of a gap. step is +1 when building up to the right and -1
// when building down to the left.
func (gs *GameState) addSequenceFollowers(moves []move.Move, to int, neighbour card.Card, step int) []move.Move {
	want := neighbour.Rank() + step
	for r, ref := range gs.sequences {
		p := &gs.piles[ref]
		for c := range p.Len() {
			x := p.At(c)
			if x.Rank() != want {
				continue
			}
			if fitsPolicy(gs.rules.SequenceBuildPolicy, neighbour, x) {
				moves = append(moves, move.NewSequence(gs.encodeSequencePos(r, c), to))
			}
		}
	}
	return moves
}

// sequencesSolved reports whether every row is a complete run with its gap at
// the end the rows are built from.
func (gs *GameState) sequencesSolved() bool {
	r := &gs.rules
	for row, ref := range gs.sequences {
		p := &gs.piles[ref]
		n := p.Len()
		ok := false
		if r.SequenceDirection != rules.Right && p.At(n-1).IsGap() {
			ok = gs.isSequenceRun(p.Cards()[:n-1], row)
		}
		if !ok && r.SequenceDirection != rules.Left && p.At(0).IsGap() {
			ok = gs.isSequenceRun(p.Cards()[1:], row)
		}
		if !ok {
			return false
		}
	}
	return true
}

// isSequenceRun checks for 2, 3, ... up to the maximum rank.
func (gs *GameState) isSequenceRun(cards []card.Card, row int) bool {
	if len(cards) != gs.rules.MaxRank-1 {
		return false
	}
	for i, c := range cards {
		if c.Rank() != i+2 {
			return false
		}
		if i == 0 {
			if gs.rules.SequenceFixedSuit && c.Suit() != card.Suit(row%card.NumSuits) {
				return false
			}
			continue
		}
		if !fitsPolicy(gs.rules.SequenceBuildPolicy, cards[i-1], c) {
			return false
		}
	}
	return true
}

// addAccordionMoves moves whole piles onto the pile a fixed distance away
// when their top cards match under one of the accordion policies.
func (gs *GameState) addAccordionMoves(moves []move.Move) []move.Move {
	for j, from := range gs.accordion {
		src := &gs.piles[from]
		for _, am := range gs.rules.AccordionMoves {
			var targets [2]int
			n := 0
			if am.Direction != rules.Right && j-am.Distance >= 0 {
				targets[n] = j - am.Distance
				n++
			}
			if am.Direction != rules.Left && j+am.Distance < len(gs.accordion) {
				targets[n] = j + am.Distance
				n++
			}
			for _, t := range targets[:n] {
				to := gs.accordion[t]
				if gs.accordionMatch(src.Top(), gs.piles[to].Top()) {
					moves = append(moves, move.NewAccordion(from, to, src.Len()))
				}
			}
		}
	}
	return moves
}

func (gs *GameState) accordionMatch(a, b card.Card) bool {
	for _, p := range gs.rules.AccordionPolicies {
		switch p {
		case rules.AccordionSameRank:
			if a.Rank() == b.Rank() {
				return true
			}
		case rules.AccordionSameSuit:
			if a.Suit() == b.Suit() {
				return true
			}
		case rules.AccordionRedBlack:
			if a.Colour() != b.Colour() {
				return true
			}
		case rules.AccordionAnySuit:
			return true
		}
	}
	return false
}
