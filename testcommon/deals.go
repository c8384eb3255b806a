// Package testcommon holds deals that tests in several packages share.
package testcommon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/rules"
)

// BlackHoleDeal is a solvable -test-black-hole deal. The hole starts with
// the AS, so every solution moves the other 19 cards.
const BlackHoleDeal = `
hole: AS
tableau piles:
  - [5D, 4D, 3D, 2D, AD]
  - [5S, 4S, 3S, 2S, AH]
  - [5H, 4H, 3H, 2H, AC]
  - [5C, 4C, 3C, 2C]
`

const BlackHoleSolutionLength = 19

// WriteDeal writes a deal document into a temporary directory and returns
// its path.
func WriteDeal(t testing.TB, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deal.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// MustDeal parses a deal document for the named preset.
func MustDeal(preset, doc string) *game.GameState {
	d, err := game.ParseDeal([]byte(doc))
	if err != nil {
		panic(err)
	}
	gs, err := game.NewFromDeal(rules.MustPreset(preset), d)
	if err != nil {
		panic(err)
	}
	return gs
}
