package game

import (
	"github.com/cespare/xxhash"

	"github.com/domino14/solvitaire/card"
)

// Transposition keys. A position is encoded as bytes, one per card
// (rank<<2 | suit, with the high bit set for a face-down card) and a 0xff
// terminator per pile. The interchangeable pile groups are encoded in their
// live order, which is sorted, so permuted positions produce the same key.
// Their hash is the sum of the per-pile hashes and so does not depend on the
// order either.

const (
	pileEnd      = 0xff
	faceDownFlag = 0x80
)

func cardByte(c card.Card) byte {
	b := byte(c.Rank())<<2 | byte(c.Suit())
	if c.FaceDown() {
		b |= faceDownFlag
	}
	return b
}

func (gs *GameState) appendPile(dst []byte, ref int) []byte {
	for _, c := range gs.piles[ref].Cards() {
		dst = append(dst, cardByte(c))
	}
	return append(dst, pileEnd)
}

func (gs *GameState) appendPiles(dst []byte, refs []int) []byte {
	for _, ref := range refs {
		dst = gs.appendPile(dst, ref)
	}
	return dst
}

// appendFixed encodes every pile whose position matters.
func (gs *GameState) appendFixed(dst []byte) []byte {
	dst = gs.appendPiles(dst, gs.foundations)
	for _, ref := range []int{gs.hole, gs.stock, gs.waste} {
		if ref != noPile {
			dst = gs.appendPile(dst, ref)
		}
	}
	dst = gs.appendPiles(dst, gs.sequences)
	dst = gs.appendPiles(dst, gs.accordion)
	if !gs.pileSymmetry {
		dst = gs.appendPiles(dst, gs.tableau)
		dst = gs.appendPiles(dst, gs.cells)
		dst = gs.appendPiles(dst, gs.reserve)
	}
	return dst
}

// AppendKey appends the canonical encoding of the position to dst.
func (gs *GameState) AppendKey(dst []byte) []byte {
	dst = gs.appendFixed(dst)
	if gs.pileSymmetry {
		for _, group := range [...][]int{gs.tableau, gs.cells, gs.reserve} {
			dst = gs.appendPiles(dst, group)
			dst = append(dst, pileEnd)
		}
	}
	return dst
}

// Hash is a hash of the canonical encoding. It agrees for any two positions
// with the same key.
func (gs *GameState) Hash() uint64 {
	var buf [2 * card.MaxRank * card.NumSuits * 2]byte
	h := xxhash.Sum64(gs.appendFixed(buf[:0]))
	if !gs.pileSymmetry {
		return h
	}
	for salt, group := range [...][]int{gs.tableau, gs.cells, gs.reserve} {
		for _, ref := range group {
			b := append(buf[:0], byte(salt))
			h += xxhash.Sum64(gs.appendPile(b, ref))
		}
	}
	return h
}
