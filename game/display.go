package game

import (
	"fmt"
	"strings"

	"github.com/domino14/solvitaire/card"
	"github.com/domino14/solvitaire/rules"
)

func writeHeader(sb *strings.Builder, header string) {
	fmt.Fprintf(sb, "--- %s %s\n", header, strings.Repeat("-", max(0, 20-len(header))))
}

func cardText(c card.Card, hidden bool) string {
	if hidden {
		return c.HiddenString()
	}
	return c.String()
}

// writeColumns prints piles side by side, bottom card on the first row.
func (gs *GameState) writeColumns(sb *strings.Builder, refs []int, hidden bool) {
	rows := 0
	for _, ref := range refs {
		rows = max(rows, gs.piles[ref].Len())
	}
	for row := 0; row < max(rows, 1); row++ {
		for _, ref := range refs {
			p := &gs.piles[ref]
			switch {
			case row < p.Len():
				sb.WriteString(cardText(p.At(row), hidden))
			case row == 0:
				sb.WriteString("[]")
			}
			sb.WriteByte('\t')
		}
		sb.WriteByte('\n')
	}
}

func (gs *GameState) writeTops(sb *strings.Builder, refs []int, hidden bool) {
	for _, ref := range refs {
		p := &gs.piles[ref]
		if p.Empty() {
			sb.WriteString("[]")
		} else {
			sb.WriteString(cardText(p.Top(), hidden))
		}
		sb.WriteByte('\t')
	}
	sb.WriteByte('\n')
}

// ToDisplayText renders the position for a terminal. Piles are shown in
// dealing order. With hidden set, face-down cards print as "##".
func (gs *GameState) ToDisplayText(hidden bool) string {
	var sb strings.Builder
	r := &gs.rules
	if r.Foundations {
		writeHeader(&sb, "Foundations")
		gs.writeTops(&sb, gs.foundations, hidden)
	}
	if r.Cells > 0 {
		writeHeader(&sb, "Cells")
		gs.writeColumns(&sb, gs.originalCells, hidden)
	}
	if r.TableauPiles > 0 {
		writeHeader(&sb, "Tableau Piles")
		gs.writeColumns(&sb, gs.originalTableau, hidden)
	}
	if r.ReserveSize > 0 {
		if r.ReserveStacked {
			writeHeader(&sb, "Reserve (Stacked)")
		} else {
			writeHeader(&sb, "Reserve")
		}
		gs.writeColumns(&sb, gs.originalReserve, hidden)
	}
	if gs.stock != noPile {
		if r.StockDealType == rules.DealWaste {
			writeHeader(&sb, "Stock | Waste")
			gs.writeColumns(&sb, []int{gs.stock, gs.waste}, hidden)
		} else {
			writeHeader(&sb, "Stock")
			gs.writeColumns(&sb, []int{gs.stock}, hidden)
		}
	}
	if gs.hole != noPile {
		writeHeader(&sb, "Hole Card")
		gs.writeTops(&sb, []int{gs.hole}, hidden)
	}
	if len(gs.sequences) > 0 {
		writeHeader(&sb, "Sequences")
		for _, ref := range gs.sequences {
			sb.WriteString(gs.piles[ref].String())
			sb.WriteByte('\n')
		}
	}
	if len(gs.accordion) > 0 {
		writeHeader(&sb, "Accordion")
		gs.writeTops(&sb, gs.accordion, hidden)
	}
	sb.WriteString(strings.Repeat("=", 35))
	return sb.String()
}

func (gs *GameState) String() string {
	return gs.ToDisplayText(false)
}
