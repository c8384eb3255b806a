package cache

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/move"
	"github.com/domino14/solvitaire/rules"
)

// key lets tests pick the hash, so collisions can be forced.
type key struct {
	k string
	h uint64
}

func (k key) AppendKey(dst []byte) []byte { return append(dst, k.k...) }
func (k key) Hash() uint64                { return k.h }

func TestInsertAndContains(t *testing.T) {
	is := is.New(t)
	c := New(10)
	e, ok := c.Insert(key{"a", 1})
	is.True(ok)
	is.True(e.Live())
	is.True(c.Contains(key{"a", 1}))
	is.True(!c.Contains(key{"b", 2}))

	again, ok := c.Insert(key{"a", 1})
	is.True(!ok)
	is.Equal(again, e)
	is.Equal(c.Len(), 1)
}

func TestHashCollisions(t *testing.T) {
	is := is.New(t)
	c := New(10)
	_, ok := c.Insert(key{"a", 7})
	is.True(ok)
	_, ok = c.Insert(key{"b", 7})
	is.True(ok)
	is.Equal(c.Len(), 2)
	is.Equal(c.BucketCount(), 1)
	is.True(!c.Contains(key{"c", 7}))
}

func TestEvictsIdleBeforeLive(t *testing.T) {
	is := is.New(t)
	c := New(3)
	a, _ := c.Insert(key{"a", 1})
	b, _ := c.Insert(key{"b", 2})
	c.Insert(key{"c", 3})
	c.SetNonLive(b)

	c.Insert(key{"d", 4})
	is.Equal(c.Len(), 3)
	is.True(!c.Contains(key{"b", 2}))
	is.True(c.Contains(key{"a", 1}))
	is.Equal(c.Evictions(), uint64(1))
	is.Equal(c.LiveEvictions(), uint64(0))

	// everything left is live: the oldest goes
	c.Insert(key{"e", 5})
	is.True(!c.Contains(key{"a", 1}))
	is.Equal(c.LiveEvictions(), uint64(1))

	// an evicted entry can no longer be touched
	c.SetNonLive(a)
	c.SetNonLive(b)
	is.Equal(c.Len(), 3)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	is := is.New(t)
	c := New(2)
	a, _ := c.Insert(key{"a", 1})
	b, _ := c.Insert(key{"b", 2})
	c.SetNonLive(a)
	c.SetNonLive(b)

	// touching a makes b the oldest
	_, ok := c.Insert(key{"a", 1})
	is.True(!ok)
	c.Insert(key{"c", 3})
	is.True(c.Contains(key{"a", 1}))
	is.True(!c.Contains(key{"b", 2}))
}

func TestTinyCapacity(t *testing.T) {
	is := is.New(t)
	c := New(0)
	is.Equal(c.Capacity(), 1)
	for i := range 20 {
		c.Insert(key{string(rune('a' + i)), uint64(i)})
	}
	is.Equal(c.Len(), 1)
	is.Equal(c.Evictions(), uint64(19))
}

func TestClear(t *testing.T) {
	is := is.New(t)
	c := New(1)
	a, _ := c.Insert(key{"a", 1})
	c.Insert(key{"b", 2})
	c.Clear()
	is.Equal(c.Len(), 0)
	is.Equal(c.BucketCount(), 0)
	is.Equal(c.Evictions(), uint64(0))
	c.SetNonLive(a)
	_, ok := c.Insert(key{"a", 1})
	is.True(ok)
}

func TestPermutedTableauIsSeen(t *testing.T) {
	is := is.New(t)
	r := rules.Blank()
	r.TableauPiles = 3
	c := New(100)
	_, ok := c.Insert(game.MustFromPiles(r, [][]string{{"AC"}, {"2D", "3S"}, {}}))
	is.True(ok)
	is.True(c.Contains(game.MustFromPiles(r, [][]string{{}, {"AC"}, {"2D", "3S"}})))
	is.True(!c.Contains(game.MustFromPiles(r, [][]string{{}, {"AC"}, {"3S", "2D"}})))
}

func TestFaceDownCardsAreKeyed(t *testing.T) {
	is := is.New(t)
	r := rules.Blank()
	r.TableauPiles = 3
	r.BuildPolicy = rules.RedBlack
	r.MoveBuiltGroup = rules.BuiltGroupYes
	r.FaceUp = rules.FaceUpTop
	gs := game.MustFromPiles(r, [][]string{{"2C"}, {"2s", "AH"}, {}})
	c := New(1000)
	c.Insert(gs)

	steps := []struct {
		m     move.Move
		isNew bool
	}{
		{revealing(move.NewRegular(1, 2)), true}, // AH to the space
		{move.NewRegular(2, 1), true},            // back onto the turned 2S
		{move.NewRegular(1, 0), true},            // onto 2C
		{move.NewRegular(0, 1), false},           // back onto 2S again
	}
	for i, s := range steps {
		gs.MakeMove(s.m)
		_, ok := c.Insert(gs)
		if ok != s.isNew {
			t.Logf("step %d (%v):\n%v", i, s.m, gs)
		}
		is.Equal(ok, s.isNew)
	}
}

func revealing(m move.Move) move.Move {
	m.Reveal = true
	return m
}
