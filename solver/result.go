package solver

import (
	"fmt"
	"strings"
	"time"

	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/move"
)

type Outcome uint8

const (
	Solved Outcome = iota
	Unsolvable
	Timeout
	MemoryLimit
	Terminated
)

var outcomeNames = [...]string{
	Solved:      "solved",
	Unsolvable:  "unsolvable",
	Timeout:     "timed-out",
	MemoryLimit: "memory-limit-reached",
	Terminated:  "terminated",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome(%d)", o)
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for i, n := range outcomeNames {
		if n == s {
			return Outcome(i), nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// Conclusive reports whether the outcome settles the deal one way or the
// other.
func (o Outcome) Conclusive() bool {
	return o == Solved || o == Unsolvable
}

type Result struct {
	Outcome Outcome
	// Moves leads from the initial position to a solved one. It is only set
	// when the outcome is Solved.
	Moves []move.Move

	StatesSearched       uint64
	UniqueStatesSearched uint64
	Backtracks           uint64
	DominanceMoves       uint64
	Evictions            uint64
	LiveEvictions        uint64
	CacheSize            int
	CacheBuckets         int
	MaxDepth             int
	Depth                int
	Elapsed              time.Duration
}

// CSVHeader names the columns written by Result.CSV.
const CSVHeader = "Outcome, Time Taken(ms), States Searched, Unique States Searched, " +
	"Backtracks, Dominance Moves, States Removed From Cache, Live States Removed From Cache, " +
	"Final States In Cache, Final Buckets In Cache, Maximum Search Depth, Final Search Depth"

// CSV renders the result as one row matching CSVHeader.
func (r Result) CSV() string {
	return fmt.Sprintf("%s, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d",
		r.Outcome, r.Elapsed.Milliseconds(), r.StatesSearched, r.UniqueStatesSearched,
		r.Backtracks, r.DominanceMoves, r.Evictions, r.LiveEvictions,
		r.CacheSize, r.CacheBuckets, r.MaxDepth, r.Depth)
}

func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Solution Type: %v\n", r.Outcome)
	fmt.Fprintf(&sb, "States Searched: %d\n", r.StatesSearched)
	fmt.Fprintf(&sb, "Unique States Searched: %d\n", r.UniqueStatesSearched)
	fmt.Fprintf(&sb, "Backtracks: %d\n", r.Backtracks)
	fmt.Fprintf(&sb, "Dominance Moves: %d\n", r.DominanceMoves)
	fmt.Fprintf(&sb, "States Removed From Cache: %d (%d live)\n", r.Evictions, r.LiveEvictions)
	fmt.Fprintf(&sb, "Final States In Cache: %d\n", r.CacheSize)
	fmt.Fprintf(&sb, "Final Buckets In Cache: %d\n", r.CacheBuckets)
	fmt.Fprintf(&sb, "Maximum Search Depth: %d\n", r.MaxDepth)
	fmt.Fprintf(&sb, "Final Search Depth: %d\n", r.Depth)
	fmt.Fprintf(&sb, "Time Taken (milliseconds): %d\n", r.Elapsed.Milliseconds())
	return sb.String()
}

// SolutionText replays the solution from gs and renders every position on
// the way, starting with gs itself.
func (r Result) SolutionText(gs *game.GameState, hidden bool) (string, error) {
	positions, err := gs.Replay(r.Moves)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("Solution:\n")
	sb.WriteString(gs.ToDisplayText(hidden))
	sb.WriteString("\n")
	for i, p := range positions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Moves[i].ShortDescription())
		sb.WriteString(p.ToDisplayText(hidden))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
