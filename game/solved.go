package game

// IsSolved reports whether the win condition of the rules is met.
func (gs *GameState) IsSolved() bool {
	r := &gs.rules
	switch {
	case r.Hole:
		return gs.piles[gs.hole].Len() == r.DeckSize()
	case r.Foundations:
		for _, f := range gs.foundations {
			if gs.piles[f].Len() != r.MaxRank {
				return false
			}
		}
		return true
	case len(gs.sequences) > 0:
		return gs.sequencesSolved()
	case r.AccordionSize > 0:
		return len(gs.accordion) == 1
	}
	return false
}
