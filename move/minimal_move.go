package move

const (
	// constants used for the key of a minimal move.

	// layout
	// 32       24       16       8
	// xxxxxxxx xxxxxxxx xxxxxxxx xxxxxxxx
	// -dfrkkkk cccccccc tttttttt ffffffff
	// f - from pile (255 max)
	// t - to pile (255 max)
	// c - count, two's complement (-128 to 127)
	// k - kind
	// r - reveal
	// f - flip waste
	// d - dominance

	mmToShift        = 8
	mmCountShift     = 16
	mmKindShift      = 24
	mmRevealShift    = 28
	mmFlipShift      = 29
	mmDominanceShift = 30

	mmByteMask = (1 << 8) - 1
	mmKindMask = (1 << 4) - 1
)

// MinimalMove is a Move packed into 32 bits. The solver keeps the unexplored
// children of every frontier node, so that is where it pays off.
type MinimalMove uint32

func flagBit(b bool, shift uint) uint32 {
	if b {
		return 1 << shift
	}
	return 0
}

// Minimal packs the move. Pile references and counts must fit in a byte,
// which holds for every layout a single or double deck can produce.
func (m Move) Minimal() MinimalMove {
	if m.From < 0 || m.From > mmByteMask || m.To < 0 || m.To > mmByteMask ||
		m.Count < -128 || m.Count > 127 {
		panic("move does not fit in a minimal move: " + m.String())
	}
	key := uint32(m.From) |
		uint32(m.To)<<mmToShift |
		uint32(uint8(int8(m.Count)))<<mmCountShift |
		uint32(m.Kind)<<mmKindShift |
		flagBit(m.Reveal, mmRevealShift) |
		flagBit(m.FlipWaste, mmFlipShift) |
		flagBit(m.Dominance, mmDominanceShift)
	return MinimalMove(key)
}

// Move unpacks the minimal move.
func (mm MinimalMove) Move() Move {
	key := uint32(mm)
	return Move{
		Kind:      Kind((key >> mmKindShift) & mmKindMask),
		From:      int(key & mmByteMask),
		To:        int((key >> mmToShift) & mmByteMask),
		Count:     int(int8(uint8(key >> mmCountShift))),
		Reveal:    (key>>mmRevealShift)&1 == 1,
		FlipWaste: (key>>mmFlipShift)&1 == 1,
		Dominance: (key>>mmDominanceShift)&1 == 1,
	}
}

func (mm MinimalMove) Kind() Kind {
	return Kind((uint32(mm) >> mmKindShift) & mmKindMask)
}

// Pack converts a move list.
func Pack(moves []Move) []MinimalMove {
	out := make([]MinimalMove, len(moves))
	for i, m := range moves {
		out[i] = m.Minimal()
	}
	return out
}
