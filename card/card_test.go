package card

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParseRoundTrip(t *testing.T) {
	is := is.New(t)
	for suit := Clubs; suit < NumSuits; suit++ {
		for rank := 1; rank <= MaxRank; rank++ {
			c := New(rank, suit)
			parsed, err := Parse(c.String())
			is.NoErr(err)
			is.True(parsed.Equals(c))
			is.Equal(parsed.Rank(), rank)
			is.Equal(parsed.Suit(), suit)
		}
	}
}

func TestParseVariants(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in   string
		rank int
		suit Suit
	}
	cases := []tc{
		{"AS", 1, Spades},
		{"1s", 1, Spades},
		{"as", 1, Spades},
		{"10H", 10, Hearts},
		{"10h", 10, Hearts},
		{"KC", 13, Clubs},
		{"13c", 13, Clubs},
		{"jd", 11, Diamonds},
		{"Q D", 0, 0},
	}
	for _, c := range cases[:len(cases)-1] {
		card, err := Parse(c.in)
		is.NoErr(err)
		is.Equal(card.Rank(), c.rank)
		is.Equal(card.Suit(), c.suit)
	}
	_, err := Parse(cases[len(cases)-1].in)
	is.True(errors.Is(err, ErrBadCard))
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"", "A", "0S", "14H", "AX", "ZZ"} {
		_, err := Parse(s)
		is.True(errors.Is(err, ErrBadCard))
	}
}

func TestParseDealtLowercase(t *testing.T) {
	is := is.New(t)
	c, lower, err := ParseDealt("2s")
	is.NoErr(err)
	is.True(lower)
	is.True(c.Equals(MustParse("2S")))

	_, lower, err = ParseDealt("2S")
	is.NoErr(err)
	is.True(!lower)
}

func TestColours(t *testing.T) {
	is := is.New(t)
	is.Equal(MustParse("AC").Colour(), Black)
	is.Equal(MustParse("AS").Colour(), Black)
	is.Equal(MustParse("AH").Colour(), Red)
	is.Equal(MustParse("AD").Colour(), Red)
}

func TestFaceDownString(t *testing.T) {
	is := is.New(t)
	c := MustParse("QH").FlippedDown()
	is.True(c.FaceDown())
	is.Equal(c.String(), "Qh")
	is.Equal(c.HiddenString(), "##")
	is.True(c.Equals(MustParse("QH")))
	is.Equal(c.FlippedUp().String(), "QH")
	is.Equal(Gap.String(), "--")
}

func TestCompare(t *testing.T) {
	is := is.New(t)
	is.Equal(MustParse("2C").Compare(MustParse("AD")), 1)
	is.Equal(MustParse("2C").Compare(MustParse("2H")), -1)
	is.Equal(MustParse("2D").Compare(MustParse("2D")), 0)
}
