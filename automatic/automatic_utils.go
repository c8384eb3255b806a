package automatic

// Solvability estimates: solve many seeds in parallel and put confidence
// bounds on the share that can be won.

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/solver"
	"github.com/domino14/solvitaire/stats"
)

// Tally counts seed outcomes.
type Tally struct {
	Solvable      int
	Unsolvable    int
	TimedOut      int
	MemoryLimited int
}

func (t *Tally) Add(o solver.Outcome) {
	switch o {
	case solver.Solved:
		t.Solvable++
	case solver.Unsolvable:
		t.Unsolvable++
	case solver.Timeout:
		t.TimedOut++
	case solver.MemoryLimit:
		t.MemoryLimited++
	}
}

// Merge adds the counts of o.
func (t *Tally) Merge(o Tally) {
	t.Solvable += o.Solvable
	t.Unsolvable += o.Unsolvable
	t.TimedOut += o.TimedOut
	t.MemoryLimited += o.MemoryLimited
}

func (t Tally) Total() int {
	return t.Solvable + t.Unsolvable + t.TimedOut + t.MemoryLimited
}

// Intervals bounds the solvable share. Seeds that were not settled count
// against the lower bound and for the upper one.
func (t Tally) Intervals(confidence float64) (wilson, agrestiCoull, clopperPearson stats.Interval) {
	open := t.TimedOut + t.MemoryLimited
	wilson = stats.Wilson(t.Solvable, t.Unsolvable, open, confidence)
	agrestiCoull = stats.AgrestiCoull(t.Solvable, t.Unsolvable, open, confidence)
	clopperPearson = stats.ClopperPearson(t.Solvable, t.Unsolvable, open, confidence)
	return
}

// SummaryCSVHeader names the columns of Tally.CSV.
const SummaryCSVHeader = "Solvable, Unsolvable, Timed Out, Memory Limited, " +
	"Wilson Lower(%), Wilson Upper(%), Agresti-Coull Lower(%), Agresti-Coull Upper(%), " +
	"Clopper-Pearson Lower(%), Clopper-Pearson Upper(%)"

func (t Tally) CSV(confidence float64) string {
	w, ac, cp := t.Intervals(confidence)
	return fmt.Sprintf("%d, %d, %d, %d, %.3f, %.3f, %.3f, %.3f, %.3f, %.3f",
		t.Solvable, t.Unsolvable, t.TimedOut, t.MemoryLimited,
		100*w.Lower, 100*w.Upper, 100*ac.Lower, 100*ac.Upper, 100*cp.Lower, 100*cp.Upper)
}

// SolvabilityRunner solves seeds on several workers and writes a CSV row per
// seed, followed by a summary.
type SolvabilityRunner struct {
	SeedSolver
	Cores      int
	Confidence float64
	Out        io.Writer
	// Prior carries the counts of a resumed run.
	Prior Tally

	mu    sync.Mutex
	tally Tally
	times stats.Statistic
}

func (sr *SolvabilityRunner) record(res SeedResult) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.tally.Add(res.Result.Outcome)
	if sr.Out != nil {
		fmt.Fprintln(sr.Out, res.CSV(sr.Streamliner == game.StreamlinerSmart))
	}
}

// SolveTimes returns the spread of solve times, in milliseconds, for the
// seeds of the last Run.
func (sr *SolvabilityRunner) SolveTimes() stats.Statistic {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return sr.times
}

// Tally returns the counts so far, including Prior.
func (sr *SolvabilityRunner) Tally() Tally {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	t := sr.Prior
	t.Merge(sr.tally)
	return t
}

// Run solves every seed. Cancelling ctx stops the workers; seeds cut short
// are not counted and the counts so far are returned with the error.
func (sr *SolvabilityRunner) Run(ctx context.Context, seeds []int64) (Tally, error) {
	logger := zerolog.Ctx(ctx)
	cores := sr.Cores
	if cores < 1 {
		cores = max(1, runtime.NumCPU()-1)
	}
	confidence := sr.Confidence
	if confidence == 0 {
		confidence = 95
	}
	sr.mu.Lock()
	sr.tally = Tally{}
	sr.times = stats.Statistic{}
	sr.mu.Unlock()

	smart := sr.Streamliner == game.StreamlinerSmart
	if sr.Out != nil {
		fmt.Fprintf(sr.Out, "--- Timeout = %d milliseconds ---\n", sr.Timeout.Milliseconds())
		fmt.Fprintln(sr.Out, SeedCSVHeader(smart))
	}
	logger.Info().Int("seeds", len(seeds)).Int("cores", cores).
		Str("streamliner", sr.Streamliner.String()).Msg("solvability-start")

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int64)
	g.Go(func() error {
		defer close(jobs)
		for _, s := range seeds {
			select {
			case jobs <- s:
			case <-gctx.Done():
				logger.Info().Msg("got stop signal, exiting soon")
				return gctx.Err()
			}
		}
		return nil
	})
	for range cores {
		g.Go(func() error {
			// each worker keeps its own times and folds them in when done
			var times stats.Statistic
			defer func() {
				sr.mu.Lock()
				sr.times.Merge(&times)
				sr.mu.Unlock()
			}()
			for seed := range jobs {
				res, err := sr.Solve(gctx, seed)
				if err != nil {
					return fmt.Errorf("seed %d: %w", seed, err)
				}
				if res.Result.Outcome == solver.Terminated {
					return gctx.Err()
				}
				sr.record(res)
				times.Push(float64(res.Result.Elapsed.Milliseconds()))
				logger.Debug().Int64("seed", seed).Str("outcome", res.Result.Outcome.String()).
					Dur("elapsed", res.Result.Elapsed).Msg("seed-done")
			}
			return nil
		})
	}
	err := g.Wait()

	t := sr.Tally()
	solveTimes := sr.SolveTimes()
	if sr.Out != nil {
		fmt.Fprintln(sr.Out, SummaryCSVHeader)
		fmt.Fprintln(sr.Out, t.CSV(confidence))
	}
	logger.Info().Int("solvable", t.Solvable).Int("unsolvable", t.Unsolvable).
		Int("timed-out", t.TimedOut).Int("memory-limited", t.MemoryLimited).
		Float64("mean-ms", solveTimes.Mean()).Msg("solvability-done")
	return t, err
}
