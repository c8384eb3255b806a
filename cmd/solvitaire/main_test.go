package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/solvitaire/automatic"
	"github.com/domino14/solvitaire/config"
	"github.com/domino14/solvitaire/testcommon"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestParseArgs(t *testing.T) {
	is := is.New(t)
	a, err := parseArgs([]string{"-type", "free-cell", "-seed", "0", "-str", "smart",
		"-timeout", "30s", "-deal", "x.yaml", "y.yaml"})
	is.NoErr(err)
	is.Equal(a.preset, "free-cell")
	is.True(a.seedSet)
	is.Equal(a.streamliner, "smart")
	is.Equal(a.timeout, 30*time.Second)
	is.Equal(a.cache, -1)
	is.Equal(a.deals, []string{"x.yaml", "y.yaml"})

	a, err = parseArgs(nil)
	is.NoErr(err)
	is.True(!a.seedSet)

	_, err = parseArgs([]string{"-type", "klondike", "-rules", "r.yaml"})
	is.True(err != nil)
}

func TestSolveDealFile(t *testing.T) {
	is := is.New(t)
	path := testcommon.WriteDeal(t, testcommon.BlackHoleDeal)

	a, err := parseArgs([]string{"-type", "-test-black-hole", "-cache", "10000", path})
	is.NoErr(err)
	var out bytes.Buffer
	is.NoErr(run(context.Background(), config.DefaultConfig(), a, &out))
	is.True(strings.Contains(out.String(), "Solution:\n"))
	is.True(strings.Contains(out.String(), "\n19. "))
	is.True(strings.Contains(out.String(), "Solution Type: solved"))

	a.classify = true
	out.Reset()
	is.NoErr(run(context.Background(), config.DefaultConfig(), a, &out))
	is.True(!strings.Contains(out.String(), "Solution:\n"))
}

func TestSolveSeeds(t *testing.T) {
	is := is.New(t)
	a, err := parseArgs([]string{"-type", "-test-free-cell", "-seeds", "1..3", "-classify"})
	is.NoErr(err)
	var out bytes.Buffer
	is.NoErr(run(context.Background(), config.DefaultConfig(), a, &out))
	is.Equal(strings.Count(out.String(), "Solution Type: "), 3)
	is.True(strings.HasPrefix(out.String(), "--- seed 1 ---\n"))
}

func TestSolvabilityAndResume(t *testing.T) {
	is := is.New(t)
	a, err := parseArgs([]string{"-type", "-test-black-hole", "-solvability", "4",
		"-seed", "10", "-cores", "2", "-cache", "100000"})
	is.NoErr(err)
	var out bytes.Buffer
	is.NoErr(run(context.Background(), config.DefaultConfig(), a, &out))
	is.True(strings.Contains(out.String(), automatic.SummaryCSVHeader))

	path := filepath.Join(t.TempDir(), "log.csv")
	is.NoErr(os.WriteFile(path, out.Bytes(), 0o644))
	a.resume = path
	a.solvability = 6
	out.Reset()
	is.NoErr(run(context.Background(), config.DefaultConfig(), a, &out))
	// only seeds 14 and 15 are left
	is.True(strings.Contains(out.String(), "\n14, "))
	is.True(!strings.Contains(out.String(), "\n10, "))
}

func TestNothingToSolve(t *testing.T) {
	is := is.New(t)
	a, err := parseArgs([]string{"-type", "-test-black-hole"})
	is.NoErr(err)
	is.True(run(context.Background(), config.DefaultConfig(), a, &bytes.Buffer{}) != nil)

	a, err = parseArgs([]string{"-type", "no-such-game", "-seed", "1"})
	is.NoErr(err)
	is.True(run(context.Background(), config.DefaultConfig(), a, &bytes.Buffer{}) != nil)
}
