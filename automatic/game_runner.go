// Package automatic runs the solver over many seeded deals: solvability
// estimates, benchmarks and the seed files that drive them.
package automatic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/rules"
	"github.com/domino14/solvitaire/solver"
)

// SeedSolver solves seeded deals of a single rule set.
type SeedSolver struct {
	Rules   rules.Rules
	Timeout time.Duration
	// CacheCapacity of zero sizes the cache from the memory limit.
	CacheCapacity  int
	MemoryFraction float64
	Streamliner    game.Streamliner
}

// SeedResult is the outcome of one seed. With the smart streamliner,
// Streamlined holds the first attempt and Result the one that counts.
type SeedResult struct {
	Seed        int64
	Streamlined *solver.Result
	Result      solver.Result

	// Initial is the position Result was searched from, dealt with the
	// streamliner that search used.
	Initial *game.GameState
}

// dealer builds the starting position under a streamliner.
type dealer func(sl game.Streamliner) (*game.GameState, error)

func (s *SeedSolver) options(timeout time.Duration) []solver.Option {
	var opts []solver.Option
	if timeout > 0 {
		opts = append(opts, solver.WithTimeout(timeout))
	}
	if s.MemoryFraction > 0 {
		opts = append(opts, solver.WithMemoryFraction(s.MemoryFraction))
	}
	if s.CacheCapacity > 0 {
		opts = append(opts, solver.WithCacheCapacity(s.CacheCapacity))
	}
	return opts
}

func (s *SeedSolver) run(ctx context.Context, deal dealer, sl game.Streamliner, timeout time.Duration) (solver.Result, *game.GameState, error) {
	gs, err := deal(sl)
	if err != nil {
		return solver.Result{}, nil, err
	}
	return solver.New(gs, s.options(timeout)...).Run(ctx), gs, nil
}

// Solve deals and solves one seed. The smart streamliner first tries
// auto-foundations with a tenth of the time, and only searches without it
// if that attempt was inconclusive.
func (s *SeedSolver) Solve(ctx context.Context, seed int64) (SeedResult, error) {
	return s.solve(ctx, SeedResult{Seed: seed}, func(sl game.Streamliner) (*game.GameState, error) {
		return game.NewSeeded(s.Rules, seed, game.WithStreamliner(sl))
	})
}

// SolveDeal is Solve for a deal document.
func (s *SeedSolver) SolveDeal(ctx context.Context, d *game.Deal) (SeedResult, error) {
	return s.solve(ctx, SeedResult{}, func(sl game.Streamliner) (*game.GameState, error) {
		return game.NewFromDeal(s.Rules, d, game.WithStreamliner(sl))
	})
}

func (s *SeedSolver) solve(ctx context.Context, out SeedResult, deal dealer) (SeedResult, error) {
	var err error
	if s.Streamliner != game.StreamlinerSmart {
		out.Result, out.Initial, err = s.run(ctx, deal, s.Streamliner, s.Timeout)
		return out, err
	}

	first, gs, err := s.run(ctx, deal, game.StreamlinerAutoFoundations, s.Timeout/10)
	if err != nil {
		return out, err
	}
	out.Streamlined = &first
	out.Result, out.Initial = first, gs
	if rerun(first.Outcome) {
		zerolog.Ctx(ctx).Debug().Int64("seed", out.Seed).Str("outcome", first.Outcome.String()).
			Msg("streamliner-inconclusive")
		out.Result, out.Initial, err = s.run(ctx, deal, game.StreamlinerNone, s.Timeout)
	}
	return out, err
}

// rerun reports whether a streamlined attempt leaves the seed open. An
// unsolvable verdict under a streamliner proves nothing.
func rerun(o solver.Outcome) bool {
	return o == solver.Unsolvable || o == solver.Timeout
}

// csvColumns is the number of fields in solver.CSVHeader.
var csvColumns = strings.Count(solver.CSVHeader, ",") + 1

// SeedCSVHeader names the columns of SeedResult.CSV.
func SeedCSVHeader(smart bool) string {
	var sb strings.Builder
	sb.WriteString("Attempted Seed, ")
	if smart {
		sb.WriteString("(Streamliner Results:) ")
		sb.WriteString(solver.CSVHeader)
		sb.WriteString(", (Non-Streamliner Results:) ")
	}
	sb.WriteString(solver.CSVHeader)
	sb.WriteString(", Overall Result")
	return sb.String()
}

// CSV renders the seed as one row under SeedCSVHeader. A smart run whose
// first attempt settled the seed leaves the second group of columns empty.
func (r SeedResult) CSV(smart bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d, ", r.Seed)
	if smart && r.Streamlined != nil {
		sb.WriteString(r.Streamlined.CSV())
		sb.WriteString(", ")
		if rerun(r.Streamlined.Outcome) {
			sb.WriteString(r.Result.CSV())
		} else {
			sb.WriteString(strings.Repeat("-, ", csvColumns-1))
			sb.WriteString("-")
		}
	} else {
		sb.WriteString(r.Result.CSV())
	}
	fmt.Fprintf(&sb, ", %v", r.Result.Outcome)
	return sb.String()
}
