package rules

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/solvitaire/card"
)

func TestDefaultPreset(t *testing.T) {
	is := is.New(t)
	r, err := FromPreset("default")
	is.NoErr(err)
	is.Equal(r.TableauPiles, 8)
	is.True(r.Foundations)
	is.True(!r.Hole)
	is.Equal(r.BuildPolicy, AnySuit)
	is.Equal(r.BuiltGroupPolicy, AnySuit)
	is.Equal(r.MaxRank, 13)
	is.Equal(r.DeckSize(), 52)
	is.Equal(r.FoundationCount(), 4)
	is.Equal(r.FoundationsBase, 1)
}

func TestAllPresetsValidate(t *testing.T) {
	is := is.New(t)
	names := PresetNames()
	is.True(len(names) > 80)
	for _, n := range names {
		_, err := FromPreset(n)
		if err != nil {
			t.Errorf("preset %s: %v", n, err)
		}
	}
	// test presets sort last
	is.Equal(names[len(names)-1][0], byte('-'))
	is.True(names[0][0] != '-')
}

func TestFreeCellPreset(t *testing.T) {
	is := is.New(t)
	r := MustPreset("free-cell")
	is.Equal(r.Cells, 4)
	is.Equal(r.BuildPolicy, RedBlack)
	// same-as-build follows the preset's own build policy
	is.Equal(r.BuiltGroupPolicy, RedBlack)
	is.Equal(r.TableauPiles, 8)
}

func TestCanfieldPreset(t *testing.T) {
	is := is.New(t)
	r := MustPreset("canfield")
	is.Equal(r.FoundationsBase, RandomBase)
	is.Equal(r.FoundationsInitCards, InitOne)
	is.Equal(r.StockDealCount, 3)
	is.True(r.StockRedeal)
	is.True(r.ReserveStacked)
	is.Equal(r.ReservePiles(), 1)
	is.Equal(r.SpacesPolicy, SpacesAutoReserveThenAny)
	is.Equal(r.MoveBuiltGroup, BuiltGroupYes)
	is.True(r.AutoSpaces())
}

func TestSpiderPreset(t *testing.T) {
	is := is.New(t)
	r := MustPreset("-test-spider")
	is.True(r.TwoDecks)
	is.Equal(r.FoundationCount(), 8)
	is.True(r.FoundationsOnlyCompletePiles)
	is.True(r.StockDealsToTableau())
	is.True(!r.HasWaste())
	is.Equal(r.BuiltGroupPolicy, SameSuit)
	is.Equal(r.FaceUp, FaceUpTop)
	is.Equal(r.DeckSize(), 24)
}

func TestAccordionPreset(t *testing.T) {
	is := is.New(t)
	r := MustPreset("-test-accordion")
	is.Equal(r.AccordionSize, 10)
	is.Equal(r.DeckSize(), 10)
	is.Equal(r.AccordionMoves, []AccordionMove{{Left, 1}, {Left, 3}})
	is.Equal(r.AccordionPolicies, []AccordionPolicy{AccordionSameSuit, AccordionSameRank})
	is.Equal(r.AccordionMoves[1].String(), "L3")
}

func TestGolfPreset(t *testing.T) {
	is := is.New(t)
	r := MustPreset("golf")
	is.True(r.Hole)
	is.Equal(r.HoleBase, card.Card{})
	is.Equal(r.StockDealType, DealHole)
	is.True(!r.HoleBuildLoops)
}

func TestParseOverridesDefaults(t *testing.T) {
	is := is.New(t)
	r, err := Parse([]byte(`
tableau piles:
  count: 5
  build policy: same suit
  move built group: maximal-group
cells: {count: 2}
max rank: 6
`))
	is.NoErr(err)
	is.Equal(r.TableauPiles, 5)
	is.Equal(r.BuildPolicy, SameSuit)
	is.Equal(r.BuiltGroupPolicy, SameSuit)
	is.Equal(r.MoveBuiltGroup, BuiltGroupMaximal)
	is.Equal(r.Cells, 2)
	is.Equal(r.MaxRank, 6)
	// untouched keys keep their defaults
	is.True(r.Foundations)
	is.Equal(r.SpacesPolicy, SpacesAny)
}

func TestParseJSON(t *testing.T) {
	is := is.New(t)
	r, err := Parse([]byte(`{"tableau piles": {"count": 17, "build policy": "no-build"},
		"foundations": {"present": false}, "hole": {"present": true}}`))
	is.NoErr(err)
	is.True(r.Hole)
	is.Equal(r.HoleBase, card.MustParse("AS"))
	is.Equal(r.BuildPolicy, NoBuild)
}

func TestParseEmptyIsDefault(t *testing.T) {
	is := is.New(t)
	r, err := Parse(nil)
	is.NoErr(err)
	is.Equal(r.TableauPiles, 8)
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		`tableau piles: {build policy: diagonal}`,
		`tableau piles: {colour: red}`,
		`unknown key: 3`,
		`hole: {present: true}`,
		`foundations: {present: false}`,
		`max rank: 14`,
		`cells: {count: 1, pre-filled: 2}`,
		`stock: {size: 4, deal type: sideways}`,
		`tableau piles: {spaces policy: auto-waste-then-stock}`,
		`foundations: {base card: Z}`,
		`hole: {present: true, base card: 1X}`,
		`max rank: 5
hole: {present: true, base card: KS}`,
		`foundations: {present: false}
accordion: {size: 10, moves: [X1], build policies: [same-suit]}`,
		`foundations: {present: false}
accordion: {size: 10, moves: [L1], build policies: []}`,
		`foundations: {present: false}
sequences: {count: 5}`,
		`stock: {size: 60}`,
		`tableau piles: [1, 2]`,
	} {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrInvalidRules) {
			t.Errorf("expected invalid rules for %q, got %v", doc, err)
		}
	}
}

func TestUnknownPreset(t *testing.T) {
	is := is.New(t)
	_, err := FromPreset("tic-tac-toe")
	is.True(errors.Is(err, ErrInvalidRules))
}

func TestEnumStrings(t *testing.T) {
	is := is.New(t)
	is.Equal(RedBlack.String(), "red-black")
	is.Equal(BuiltGroupYes.String(), "yes")
	is.Equal(FaceUpTop.String(), "top")
	is.Equal(DealTableauPiles.String(), "tableau-piles")
	is.Equal(SpacesAutoReserveThenAny.String(), "auto-reserve-then-any")
	is.Equal(Both.String(), "both")
}
