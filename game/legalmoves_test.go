package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

func TestBuildPolicies(t *testing.T) {
	piles := [][]string{{"2C"}, {"2H"}, {"2S"}, {"2D"}, {"AC"}}
	for _, tc := range []struct {
		policy rules.BuildPolicy
		want   []move.Move
	}{
		{rules.AnySuit, []move.Move{move.NewRegular(4, 0), move.NewRegular(4, 1), move.NewRegular(4, 2), move.NewRegular(4, 3)}},
		{rules.RedBlack, []move.Move{move.NewRegular(4, 1), move.NewRegular(4, 3)}},
		{rules.SameSuit, []move.Move{move.NewRegular(4, 0)}},
		{rules.NoBuild, nil},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			r := tableauRules(5)
			r.BuildPolicy = tc.policy
			assertMoves(t, MustFromPiles(r, piles), tc.want...)
		})
	}
}

func TestLoneCardNeverMovesToSpace(t *testing.T) {
	assertMoves(t, MustFromPiles(tableauRules(2), [][]string{{}, {"AC"}}))
}

func TestSpacesKings(t *testing.T) {
	r := tableauRules(3)
	r.SpacesPolicy = rules.SpacesKings
	gs := MustFromPiles(r, [][]string{{}, {"AC"}, {"3S", "KD"}})
	assertMoves(t, gs, move.NewRegular(2, 0))
}

func TestSpacesNoBuild(t *testing.T) {
	r := tableauRules(2)
	r.SpacesPolicy = rules.SpacesNoBuild
	assertMoves(t, MustFromPiles(r, [][]string{{}, {"AC"}}))
}

func TestMoveBuiltGroup(t *testing.T) {
	r := tableauRules(2)
	r.MoveBuiltGroup = rules.BuiltGroupYes
	gs := MustFromPiles(r, [][]string{{}, {"2C", "AC"}})
	assertMoves(t, gs, move.NewRegular(1, 0), move.NewBuiltGroup(1, 0, 2))

	r.MoveBuiltGroup = rules.BuiltGroupNo
	gs = MustFromPiles(r, [][]string{{}, {"AC", "2C"}})
	assertMoves(t, gs, move.NewRegular(1, 0))
}

// Auto-filled spaces take single cards only; a built group never moves into
// one.
func TestAutoSpacesTakeNoBuiltGroups(t *testing.T) {
	for _, tc := range []struct {
		policy rules.SpacesPolicy
		piles  [][]string
		want   move.Move
	}{
		// reserve 0, tableau 1-2
		{rules.SpacesAutoReserveThenWaste, [][]string{{}, {}, {"9S", "8H", "7C"}}, move.NewRegular(2, 1)},
		{rules.SpacesAutoReserveThenAny, [][]string{{}, {}, {"9S", "8H", "7C"}}, move.NewRegular(2, 1)},
		// stock 0, waste 1, tableau 2-3
		{rules.SpacesAutoWasteThenStock, [][]string{{}, {}, {}, {"9S", "8H", "7C"}}, move.NewRegular(3, 2)},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			r := tableauRules(2)
			r.BuildPolicy = rules.RedBlack
			r.MoveBuiltGroup = rules.BuiltGroupYes
			r.SpacesPolicy = tc.policy
			if tc.policy == rules.SpacesAutoWasteThenStock {
				r.StockSize = 3
			} else {
				r.ReserveSize = 2
				r.ReserveStacked = true
			}
			assertMoves(t, MustFromPiles(r, tc.piles), tc.want)
		})
	}
}

func TestFoundationMoves(t *testing.T) {
	r := tableauRules(4)
	r.Foundations = true
	gs := MustFromPiles(r, [][]string{{}, {}, {}, {}, {"AC"}, {"AH"}, {"AS"}, {"AD"}})
	assertMoves(t, gs,
		move.NewRegular(4, 0), move.NewRegular(5, 1),
		move.NewRegular(6, 2), move.NewRegular(7, 3))
}

func TestFoundationsRemovable(t *testing.T) {
	r := tableauRules(1)
	r.Foundations = true
	r.FoundationsRemovable = true
	// with only the ace up, the auto-foundation rule would block taking it
	// back down
	gs := MustFromPiles(r, [][]string{{"AC", "2C", "3C"}, {}, {}, {}, {}})
	assertMoves(t, gs, move.NewRegular(0, 4))

	gs = MustFromPiles(r, [][]string{{"AC"}, {}, {}, {}, {}})
	assertMoves(t, gs)
}

func TestTwoDecksFoundations(t *testing.T) {
	r := tableauRules(4)
	r.TwoDecks = true
	r.Foundations = true
	r.FoundationsRemovable = true
	gs := MustFromPiles(r, [][]string{
		{"AC"}, {}, {}, {}, {}, {}, {"AS"}, {},
		{}, {"AH"}, {}, {"AD"},
	})
	assertMoves(t, gs,
		// up
		move.NewRegular(9, 1), move.NewRegular(9, 5),
		move.NewRegular(11, 3), move.NewRegular(11, 7),
		// down
		move.NewRegular(0, 8), move.NewRegular(0, 10),
		move.NewRegular(6, 8), move.NewRegular(6, 10),
	)
}

func TestCellMoves(t *testing.T) {
	r := tableauRules(1)
	r.Cells = 2
	gs := MustFromPiles(r, [][]string{{"3D"}, {}, {"4H"}})
	assertMoves(t, gs, move.NewRegular(0, 2), move.NewRegular(2, 1))
}

func TestStockDealToTableau(t *testing.T) {
	r := tableauRules(3)
	r.Foundations = true
	r.StockSize = 2
	r.StockDealType = rules.DealTableauPiles
	gs := MustFromPiles(r, [][]string{{}, {}, {}, {}, {"AC", "AD"}, {"3H"}, {"5D"}, {"7C"}})
	assertMoves(t, gs, move.NewStockToAllTableau(4, 2))

	gs.MakeMove(move.NewStockToAllTableau(4, 2))
	is := is.New(t)
	is.Equal(topString(gs.Pile(5)), "AD")
	is.Equal(topString(gs.Pile(6)), "AC")
	is.Equal(topString(gs.Pile(7)), "7C")
	is.True(gs.Pile(4).Empty())
}

func TestUndoParentSkipped(t *testing.T) {
	is := is.New(t)
	r := tableauRules(3)
	gs := MustFromPiles(r, [][]string{{"3C"}, {"2H"}, {"5S", "3D"}})
	m := move.NewRegular(1, 2)
	found := false
	for _, lm := range gs.LegalMoves(move.Move{}) {
		found = found || lm == m
	}
	is.True(found)
	gs.MakeMove(m)
	for _, lm := range gs.LegalMoves(m) {
		is.True(lm.From != 2)
	}
}

var builtGroupPiles = [][]string{
	{},
	{"3C", "2C", "AC"}, // same suit
	{"3H", "2S", "AH"}, // red black
	{"3D", "2D", "AS"}, // any suit
	{},
}

var builtGroupSingles = []move.Move{
	move.NewRegular(1, 0), move.NewRegular(2, 0), move.NewRegular(3, 0),
	move.NewRegular(1, 4), move.NewRegular(2, 4), move.NewRegular(3, 4),
}

func TestBuiltGroupsToSpaces(t *testing.T) {
	groups := func(from int, counts ...int) []move.Move {
		var out []move.Move
		for _, to := range []int{0, 4} {
			for _, k := range counts {
				out = append(out, move.NewBuiltGroup(from, to, k))
			}
		}
		return out
	}
	for _, tc := range []struct {
		policy rules.BuildPolicy
		groups [][]move.Move
	}{
		{rules.SameSuit, [][]move.Move{groups(1, 2, 3)}},
		{rules.RedBlack, [][]move.Move{groups(2, 2, 3), groups(3, 2)}},
		{rules.AnySuit, [][]move.Move{groups(1, 2, 3), groups(2, 2, 3), groups(3, 2, 3)}},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			r := tableauRules(5)
			r.BuiltGroupPolicy = tc.policy
			r.MoveBuiltGroup = rules.BuiltGroupYes
			want := append([]move.Move{}, builtGroupSingles...)
			for _, g := range tc.groups {
				want = append(want, g...)
			}
			assertMoves(t, MustFromPiles(r, builtGroupPiles), want...)
		})
	}
}

func TestBuiltGroupsDisabled(t *testing.T) {
	r := tableauRules(5)
	r.MoveBuiltGroup = rules.BuiltGroupNo
	assertMoves(t, MustFromPiles(r, builtGroupPiles), builtGroupSingles...)
}

func TestBuiltGroupsOntoCards(t *testing.T) {
	piles := append(append([][]string{{"4C"}}, builtGroupPiles[1:]...), []string{"3C"})
	singles := []move.Move{move.NewRegular(1, 4), move.NewRegular(2, 4), move.NewRegular(3, 4)}
	bg := move.NewBuiltGroup
	for _, tc := range []struct {
		policy rules.BuildPolicy
		want   []move.Move
	}{
		{rules.SameSuit, []move.Move{
			move.NewRegular(5, 0),
			bg(1, 0, 3), bg(1, 4, 2), bg(1, 4, 3), bg(1, 5, 2),
		}},
		{rules.RedBlack, []move.Move{
			bg(2, 0, 3), bg(2, 4, 2), bg(2, 4, 3), bg(3, 4, 2), bg(3, 5, 2),
		}},
		{rules.AnySuit, []move.Move{
			move.NewRegular(5, 0),
			bg(1, 0, 3), bg(2, 0, 3), bg(3, 0, 3),
			bg(1, 4, 2), bg(1, 4, 3), bg(2, 4, 2), bg(2, 4, 3), bg(3, 4, 2), bg(3, 4, 3),
			bg(1, 5, 2), bg(2, 5, 2), bg(3, 5, 2),
		}},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			r := tableauRules(6)
			r.BuildPolicy = tc.policy
			r.BuiltGroupPolicy = tc.policy
			r.MoveBuiltGroup = rules.BuiltGroupYes
			assertMoves(t, MustFromPiles(r, piles), append(tc.want, singles...)...)
		})
	}
}

func TestBuiltGroupKingsOnly(t *testing.T) {
	piles := [][]string{
		{},
		{"KC", "QC", "JC"},
		{"KH", "QS", "JH"},
		{"KD", "QD", "JS"},
		{},
	}
	r := tableauRules(5)
	r.BuildPolicy = rules.SameSuit
	r.BuiltGroupPolicy = rules.RedBlack
	r.MoveBuiltGroup = rules.BuiltGroupYes
	r.SpacesPolicy = rules.SpacesKings
	assertMoves(t, MustFromPiles(r, piles), move.NewBuiltGroup(2, 0, 3), move.NewBuiltGroup(2, 4, 3))

	r.SpacesPolicy = rules.SpacesNoBuild
	assertMoves(t, MustFromPiles(r, piles))
}

func TestBuiltGroupMaximal(t *testing.T) {
	r := tableauRules(3)
	r.MoveBuiltGroup = rules.BuiltGroupMaximal
	gs := MustFromPiles(r, [][]string{{}, {"5S", "3C", "2C", "AC"}, {"4H"}})
	assertMoves(t, gs, move.NewBuiltGroup(1, 0, 3), move.NewBuiltGroup(1, 2, 3))
}

func TestBuiltGroupWholePile(t *testing.T) {
	r := tableauRules(3)
	r.MoveBuiltGroup = rules.BuiltGroupWholePile
	gs := MustFromPiles(r, [][]string{{}, {"5S", "3C", "2C", "AC"}, {"4H"}})
	assertMoves(t, gs)

	gs = MustFromPiles(r, [][]string{{}, {"3C", "2C", "AC"}, {"4H"}})
	assertMoves(t, gs, move.NewBuiltGroup(1, 0, 3), move.NewBuiltGroup(1, 2, 3))
}

func TestCompletePileMoves(t *testing.T) {
	r := tableauRules(2)
	r.MaxRank = 4
	r.FaceUp = rules.FaceUpTop
	r.Foundations = true
	r.FoundationsOnlyCompletePiles = true
	gs := MustFromPiles(r, [][]string{{}, {}, {}, {}, {"2d", "4S", "3S", "2S", "AS"}, {}})
	assertMoves(t, gs, move.NewRegular(4, 5), revealing(move.NewBuiltGroup(4, 0, 4)))

	is := is.New(t)
	m := revealing(move.NewBuiltGroup(4, 0, 4))
	gs.MakeMove(m)
	is.Equal(gs.Pile(0).Len(), 4)
	is.True(!gs.Pile(4).Top().FaceDown())
	gs.UndoMove(m)
	is.True(gs.Pile(4).At(0).FaceDown())
}

func TestFaceDownCardsParsed(t *testing.T) {
	is := is.New(t)
	r := tableauRules(3)
	r.BuildPolicy = rules.SameSuit
	r.BuiltGroupPolicy = rules.SameSuit
	r.MoveBuiltGroup = rules.BuiltGroupYes
	r.FaceUp = rules.FaceUpTop
	piles := [][]string{{"3S"}, {"2s", "AS"}, {}}

	gs := MustFromPiles(r, piles)
	is.True(!gs.Pile(0).At(0).FaceDown())
	is.True(gs.Pile(1).At(0).FaceDown())
	is.True(!gs.Pile(1).At(1).FaceDown())

	r.FaceUp = rules.FaceUpAll
	gs = MustFromPiles(r, piles)
	is.True(!gs.Pile(1).At(0).FaceDown())
}

func TestMoveRevealsCard(t *testing.T) {
	is := is.New(t)
	r := tableauRules(3)
	r.BuildPolicy = rules.SameSuit
	r.BuiltGroupPolicy = rules.SameSuit
	r.MoveBuiltGroup = rules.BuiltGroupYes
	r.FaceUp = rules.FaceUpTop

	gs := MustFromPiles(r, [][]string{{"4S"}, {"3s", "AS"}, {"2S"}})
	m := revealing(move.NewRegular(1, 2))
	assertMoves(t, gs, m)
	fresh := gs.Copy()
	gs.MakeMove(m)
	is.True(!gs.Pile(1).Top().FaceDown())
	gs.UndoMove(m)
	is.True(gs.Pile(1).At(0).FaceDown())
	is.True(gs.Equal(fresh))

	r.TableauPiles = 2
	gs = MustFromPiles(r, [][]string{{"3s", "2S", "AS"}, {}})
	m = revealing(move.NewBuiltGroup(0, 1, 2))
	assertMoves(t, gs, move.NewRegular(0, 1), m)
	gs.MakeMove(m)
	is.True(!gs.Pile(0).Top().FaceDown())
	is.Equal(gs.Pile(1).Len(), 2)
	gs.UndoMove(m)
	is.True(gs.Pile(0).At(0).FaceDown())
}

func TestFaceDownStopsBuiltGroup(t *testing.T) {
	r := tableauRules(3)
	r.BuildPolicy = rules.SameSuit
	r.BuiltGroupPolicy = rules.SameSuit
	r.MoveBuiltGroup = rules.BuiltGroupYes
	r.FaceUp = rules.FaceUpTop

	gs := MustFromPiles(r, [][]string{{"4S"}, {"3s", "2S", "AS"}, {"3S"}})
	assertMoves(t, gs, move.NewRegular(2, 0), revealing(move.NewBuiltGroup(1, 2, 2)))

	gs = MustFromPiles(r, [][]string{{"3S"}, {"2S", "AS"}, {}})
	assertMoves(t, gs, move.NewRegular(1, 2), move.NewBuiltGroup(1, 0, 2), move.NewBuiltGroup(1, 2, 2))
}

func TestHoleMoves(t *testing.T) {
	r := tableauRules(3)
	r.BuildPolicy = rules.NoBuild
	r.Hole = true
	r.MaxRank = 5
	gs := MustFromPiles(r, [][]string{{"AS"}, {"3C", "2H"}, {"4D", "5C"}, {"AD"}})
	assertMoves(t, gs, move.NewRegular(1, 0), move.NewRegular(2, 0))

	r.HoleBuildLoops = false
	gs = MustFromPiles(r, [][]string{{"AS"}, {"3C", "2H"}, {"4D", "5C"}, {"AD"}})
	assertMoves(t, gs, move.NewRegular(1, 0))
}
