package automatic

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/solvitaire/solver"
	"github.com/domino14/solvitaire/stats"
)

// BenchmarkReport summarises solving a range of seeds one after another.
type BenchmarkReport struct {
	Times      stats.Statistic // microseconds
	States     stats.Statistic
	Solvable   int
	Unsolvable int
	// Other counts seeds that hit a limit.
	Other int

	times  []float64
	states []float64
}

func median(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func (b *BenchmarkReport) add(res solver.Result) {
	us := float64(res.Elapsed.Microseconds())
	b.Times.Push(us)
	b.States.Push(float64(res.StatesSearched))
	// keep both sorted for the running medians
	i, _ := slices.BinarySearch(b.times, us)
	b.times = slices.Insert(b.times, i, us)
	i, _ = slices.BinarySearch(b.states, float64(res.StatesSearched))
	b.states = slices.Insert(b.states, i, float64(res.StatesSearched))
	switch res.Outcome {
	case solver.Solved:
		b.Solvable++
	case solver.Unsolvable:
		b.Unsolvable++
	default:
		b.Other++
	}
}

func (b *BenchmarkReport) MedianTime() float64   { return median(b.times) }
func (b *BenchmarkReport) MedianStates() float64 { return median(b.states) }

// Histogram prints the spread of solve times.
func (b *BenchmarkReport) Histogram(w io.Writer, bins int) error {
	if len(b.times) == 0 {
		return nil
	}
	hist := histogram.Hist(bins, b.times)
	return histogram.Fprintf(w, hist, histogram.Linear(40), func(v float64) string {
		return time.Duration(v * float64(time.Microsecond)).String()
	})
}

// Benchmark solves the seeds in order on the calling goroutine, writing the
// running medians and means after each one.
func Benchmark(ctx context.Context, s *SeedSolver, seeds []int64, w io.Writer) (*BenchmarkReport, error) {
	b := &BenchmarkReport{}
	fmt.Fprintln(w, "Seed | Median/Mean Solution Time(us) | Median/Mean States Searched | Solvable/Unsolvable")
	for _, seed := range seeds {
		res, err := s.Solve(ctx, seed)
		if err != nil {
			return b, err
		}
		if res.Result.Outcome == solver.Terminated {
			return b, ctx.Err()
		}
		b.add(res.Result)
		fmt.Fprintf(w, "%d | %.0f/%.0f | %.0f/%.0f | %d/%d\n", seed,
			b.MedianTime(), b.Times.Mean(), b.MedianStates(), b.States.Mean(),
			b.Solvable, b.Unsolvable)
	}
	fmt.Fprintf(w, "Time: %v\nStates: %v\n", &b.Times, &b.States)
	return b, b.Histogram(w, 10)
}
