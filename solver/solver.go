// Package solver runs a depth-first search over solitaire positions, pruning
// repeated positions with a transposition cache.
package solver

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/solvitaire/cache"
	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/move"
)

const (
	// DefaultMemoryFraction is the share of system memory a search may use.
	DefaultMemoryFraction = 0.5
	// MaxCacheCapacity bounds the cache when it is sized from memory.
	MaxCacheCapacity = 100_000_000

	// rough per-entry overhead on top of the key bytes: the entry itself,
	// its bucket slot and the map.
	entryOverhead = 112

	memPollInterval = 1 << 14
	progressEvery   = 1 << 22
)

// node is one step of the current search path. children are the moves still
// to try from the position the node's move leads to, packed since deep
// searches hold many of them.
type node struct {
	move     move.Move
	children []move.MinimalMove
	entry    *cache.Entry
}

type Solver struct {
	initial *game.GameState
	state   *game.GameState
	cache   *cache.Cache

	frontier []node

	timeout     time.Duration
	moveBudget  uint64
	memoryLimit uint64

	res Result
}

type Option func(*Solver)

// WithCacheCapacity fixes the number of positions the cache holds.
func WithCacheCapacity(n int) Option {
	return func(s *Solver) {
		s.cache = cache.New(n)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Solver) {
		s.timeout = d
	}
}

// WithMoveBudget stops the search after n states. Zero means no budget.
func WithMoveBudget(n uint64) Option {
	return func(s *Solver) {
		s.moveBudget = n
	}
}

// WithMemoryLimit stops the search once the heap grows past the given number
// of bytes. Zero turns the check off.
func WithMemoryLimit(bytes uint64) Option {
	return func(s *Solver) {
		s.memoryLimit = bytes
	}
}

// WithMemoryFraction sets the memory limit to a share of system memory.
func WithMemoryFraction(f float64) Option {
	return func(s *Solver) {
		s.memoryLimit = uint64(f * float64(memory.TotalMemory()))
	}
}

// New creates a solver for a copy of gs. Unless told otherwise the memory
// limit is half of system memory and the cache is sized to fit inside it.
func New(gs *game.GameState, opts ...Option) *Solver {
	s := &Solver{
		initial:     gs.Copy(),
		memoryLimit: uint64(DefaultMemoryFraction * float64(memory.TotalMemory())),
	}
	for _, o := range opts {
		o(s)
	}
	if s.cache == nil {
		s.cache = cache.New(CacheCapacityFor(gs, s.memoryLimit))
	}
	return s
}

// CacheCapacityFor estimates how many positions of gs fit in the given
// number of bytes.
func CacheCapacityFor(gs *game.GameState, bytes uint64) int {
	if bytes == 0 {
		return MaxCacheCapacity
	}
	per := uint64(len(gs.AppendKey(nil)) + entryOverhead)
	return int(min(bytes/per, MaxCacheCapacity))
}

// Cache exposes the transposition cache, mostly for inspection after a run.
func (s *Solver) Cache() *cache.Cache {
	return s.cache
}

func (s *Solver) reset() {
	s.state = s.initial.Copy()
	s.cache.Clear()
	s.frontier = s.frontier[:0]
	s.frontier = append(s.frontier, node{})
	s.res = Result{}
}

// Run searches until the position is solved, proven unsolvable, or one of
// the limits is hit. Cancelling ctx terminates the search; a ctx deadline
// counts as a timeout. Run can be called more than once; every call starts
// afresh.
func (s *Solver) Run(ctx context.Context) Result {
	s.reset()
	log.Debug().
		Int("cache-capacity", s.cache.Capacity()).
		Dur("timeout", s.timeout).
		Uint64("move-budget", s.moveBudget).
		Uint64("memory-limit", s.memoryLimit).
		Msg("solve-config")

	start := time.Now()
	var deadline time.Time
	if s.timeout > 0 {
		deadline = start.Add(s.timeout)
	}
	s.res.Outcome = s.search(ctx, deadline)
	s.res.Elapsed = time.Since(start)
	s.res.Evictions = s.cache.Evictions()
	s.res.LiveEvictions = s.cache.LiveEvictions()
	s.res.CacheSize = s.cache.Len()
	s.res.CacheBuckets = s.cache.BucketCount()
	if s.res.Outcome == Solved {
		s.res.Moves = make([]move.Move, 0, len(s.frontier)-1)
		for _, n := range s.frontier[1:] {
			s.res.Moves = append(s.res.Moves, n.move)
		}
	}

	log.Info().
		Str("outcome", s.res.Outcome.String()).
		Uint64("states", s.res.StatesSearched).
		Uint64("unique-states", s.res.UniqueStatesSearched).
		Uint64("backtracks", s.res.Backtracks).
		Uint64("evictions", s.res.Evictions).
		Int("max-depth", s.res.MaxDepth).
		Float64("time-elapsed-sec", s.res.Elapsed.Seconds()).
		Msg("solve-returning")
	return s.res
}

func (s *Solver) overMemory() bool {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc > s.memoryLimit
}

func (s *Solver) search(ctx context.Context, deadline time.Time) Outcome {
	done := ctx.Done()
	exhausted := false

	for !s.state.IsSolved() && !exhausted {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return Timeout
		}
		select {
		case <-done:
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return Timeout
			}
			return Terminated
		default:
		}
		if s.moveBudget > 0 && s.res.StatesSearched >= s.moveBudget {
			return Timeout
		}
		if s.res.StatesSearched%memPollInterval == 0 {
			if s.memoryLimit > 0 && s.overMemory() {
				return MemoryLimit
			}
			if s.res.StatesSearched > 0 && s.res.StatesSearched%progressEvery == 0 {
				log.Debug().
					Uint64("states", s.res.StatesSearched).
					Int("depth", s.res.Depth).
					Int("cache-size", s.cache.Len()).
					Msg("search-progress")
			}
		}

		unique := true
		cur := &s.frontier[len(s.frontier)-1]
		// Dominance moves are forced, so their positions are never cached.
		if d, ok := s.state.DominanceMove(); ok {
			cur.children = append(cur.children, d.Minimal())
		} else {
			e, fresh := s.cache.Insert(s.state)
			cur.entry = e
			if fresh {
				if moves := s.state.LegalMoves(cur.move); len(moves) > 0 {
					cur.children = move.Pack(moves)
				} else {
					exhausted = s.backtrack(e)
				}
			} else {
				unique = false
				exhausted = s.backtrack(nil)
			}
		}

		if !exhausted {
			s.descend()
		}
		s.res.StatesSearched++
		if unique {
			s.res.UniqueStatesSearched++
		}
	}

	if s.state.IsSolved() {
		return Solved
	}
	return Unsolvable
}

func (s *Solver) descend() {
	cur := &s.frontier[len(s.frontier)-1]
	last := len(cur.children) - 1
	m := cur.children[last].Move()
	cur.children = cur.children[:last]
	s.frontier = append(s.frontier, node{move: m})

	s.state.MakeMove(m)
	s.res.Depth++
	s.res.MaxDepth = max(s.res.MaxDepth, s.res.Depth)
	if m.Dominance {
		s.res.DominanceMoves++
	}
}

// backtrack climbs back up the search path until it reaches a node that
// still has moves to try. It returns true when the root runs out. e is the
// cache entry of the position being left, which is no longer on the path.
func (s *Solver) backtrack(e *cache.Entry) bool {
	for len(s.frontier) > 1 {
		s.cache.SetNonLive(e)
		top := len(s.frontier) - 1
		s.state.UndoMove(s.frontier[top].move)
		s.res.Depth--
		s.res.Backtracks++

		e = s.frontier[top-1].entry
		s.frontier = s.frontier[:top]
		if len(s.frontier[top-1].children) > 0 {
			return false
		}
	}
	return true
}
