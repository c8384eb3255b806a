package game

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

func testPresets() []string {
	var out []string
	for _, n := range rules.PresetNames() {
		if strings.HasPrefix(n, "-test-") {
			out = append(out, n)
		}
	}
	return out
}

// Random walks down and back up the move tree must restore the deal exactly
// and never lose a card on the way.
func TestMakeUndoRestoresDeal(t *testing.T) {
	for _, name := range testPresets() {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			r := rules.MustPreset(name)
			rng := testRNG(7)
			for seed := range int64(5) {
				gs, err := NewSeeded(r, seed)
				is.NoErr(err)
				fresh := gs.Copy()
				key := string(gs.AppendKey(nil))
				walk(gs, 150, rng.Intn, func(gs *GameState) {
					if gs.CardCount() != r.DeckSize() {
						t.Fatalf("seed %d: %d cards in play\n%v", seed, gs.CardCount(), gs)
					}
					if !gs.pileOrderValid() {
						t.Fatalf("seed %d: pile order broken\n%v", seed, gs)
					}
				})
				is.True(gs.Equal(fresh))
				is.Equal(string(gs.AppendKey(nil)), key)
				is.Equal(gs.Hash(), fresh.Hash())
			}
		})
	}
}

func TestSimpleStockWalk(t *testing.T) {
	is := is.New(t)
	r := rules.MustPreset("-test-klondike")
	rng := testRNG(11)
	gs, err := NewSeeded(r, 42, WithSimpleStock())
	is.NoErr(err)
	fresh := gs.Copy()
	walk(gs, 200, rng.Intn, func(gs *GameState) {
		is.Equal(gs.CardCount(), r.DeckSize())
	})
	is.True(gs.Equal(fresh))
}

func TestBuiltGroupKeepsOrder(t *testing.T) {
	is := is.New(t)
	r := tableauRules(2)
	r.MoveBuiltGroup = rules.BuiltGroupYes
	gs := MustFromPiles(r, [][]string{{"4C"}, {"KH", "3H", "2S", "AD"}})
	m := move.NewBuiltGroup(1, 0, 3)
	gs.MakeMove(m)
	is.Equal(gs.Pile(0).String(), "4C 3H 2S AD")
	is.Equal(gs.Pile(1).Len(), 1)
	gs.UndoMove(m)
	is.Equal(gs.Pile(1).Len(), 4)
	is.Equal(topString(gs.Pile(1)), "AD")
}

func TestUnknownMovePanics(t *testing.T) {
	gs := MustFromPiles(tableauRules(1), [][]string{{"AC"}})
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	gs.MakeMove(move.Move{Kind: move.Kind(200)})
}

func TestPileOrderTracksChanges(t *testing.T) {
	is := is.New(t)
	gs := MustFromPiles(tableauRules(3), [][]string{{"2C"}, {}, {"KD"}})
	is.True(gs.pileOrderValid())
	is.Equal(gs.Tableau()[2], 1)

	gs.PlaceCard(1, gs.TakeCard(2))
	is.True(gs.pileOrderValid())
	is.Equal(gs.Tableau()[2], 2)
	// dealing order is unaffected
	is.Equal(gs.OriginalTableau(), []int{0, 1, 2})
}

func TestNoPileOrderWhenStockDealsToTableau(t *testing.T) {
	is := is.New(t)
	r := tableauRules(3)
	r.StockSize = 3
	r.StockDealType = rules.DealTableauPiles
	gs := MustFromPiles(r, [][]string{{"AS", "AH", "AD"}, {}, {"KD"}, {"2C"}})
	is.Equal(gs.Tableau(), []int{1, 2, 3})
}
