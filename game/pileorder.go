package game

import "fmt"

// evalPileOrder keeps the group of a changed tableau, cell or reserve pile
// sorted largest first. Only the changed pile can be out of place, so it is
// walked toward the front after a card is placed on it and toward the back
// after one is taken.
func (gs *GameState) evalPileOrder(ref int, placed bool) {
	if !gs.pileSymmetry {
		return
	}
	var group []int
	switch gs.roles[ref] {
	case roleTableau:
		group = gs.tableau
	case roleCell:
		group = gs.cells
	case roleReserve:
		group = gs.reserve
	default:
		return
	}
	idx := -1
	for i, r := range group {
		if r == ref {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(fmt.Sprintf("pile %d missing from its %s group", ref, gs.roles[ref]))
	}
	changed := &gs.piles[ref]
	if placed {
		for idx > 0 && gs.piles[group[idx-1]].Compare(changed) < 0 {
			group[idx], group[idx-1] = group[idx-1], group[idx]
			idx--
		}
		return
	}
	for idx < len(group)-1 && gs.piles[group[idx+1]].Compare(changed) > 0 {
		group[idx], group[idx+1] = group[idx+1], group[idx]
		idx++
	}
}

// pileOrderValid reports whether every symmetric group is sorted.
func (gs *GameState) pileOrderValid() bool {
	if !gs.pileSymmetry {
		return true
	}
	for _, group := range [][]int{gs.tableau, gs.cells, gs.reserve} {
		for i := 1; i < len(group); i++ {
			if gs.piles[group[i-1]].Compare(&gs.piles[group[i]]) < 0 {
				return false
			}
		}
	}
	return true
}
