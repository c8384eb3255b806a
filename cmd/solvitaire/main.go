// Command solvitaire solves solitaire deals in batch: single deals or seeds,
// solvability estimates over a range of seeds, and benchmarks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/solvitaire/automatic"
	"github.com/domino14/solvitaire/config"
	"github.com/domino14/solvitaire/game"
	"github.com/domino14/solvitaire/rules"
	"github.com/domino14/solvitaire/solver"
)

type cliArgs struct {
	preset      string
	rulesFile   string
	seed        int64
	seedSet     bool
	seeds       string
	seedFile    string
	deals       []string
	timeout     time.Duration
	cache       int
	cores       int
	streamliner string
	classify    bool
	solvability int
	resume      string
	benchmark   bool
	hidden      bool
	profilePath string
	logLevel    string
	configPath  string
}

func parseArgs(argv []string) (*cliArgs, error) {
	a := &cliArgs{}
	fs := flag.NewFlagSet("solvitaire", flag.ContinueOnError)
	fs.StringVar(&a.preset, "type", "", "preset rules to play (see -type list)")
	fs.StringVar(&a.rulesFile, "rules", "", "path to a rules document")
	fs.Int64Var(&a.seed, "seed", 0, "seed to deal; the first seed for -solvability")
	fs.StringVar(&a.seeds, "seeds", "", "inclusive seed range, a..b")
	fs.StringVar(&a.seedFile, "seedfile", "", "file of seeds, one per line")
	var deal string
	fs.StringVar(&deal, "deal", "", "path to a deal document")
	fs.DurationVar(&a.timeout, "timeout", 0, "time limit per deal; defaults to the config")
	fs.IntVar(&a.cache, "cache", -1, "cache capacity in states; 0 sizes it from memory")
	fs.IntVar(&a.cores, "cores", 0, "worker count for -solvability")
	fs.StringVar(&a.streamliner, "str", "", "streamliner: none, auto-foundations or smart")
	fs.StringVar(&a.streamliner, "streamliner", "", "same as -str")
	fs.BoolVar(&a.classify, "classify", false, "print only the outcome and statistics")
	fs.IntVar(&a.solvability, "solvability", 0, "estimate solvability over this many seeds")
	fs.StringVar(&a.resume, "resume", "", "solvability log to resume from")
	fs.BoolVar(&a.benchmark, "benchmark", false, "benchmark the solver over -seeds")
	fs.BoolVar(&a.hidden, "hidden", false, "hide face-down cards in solutions")
	fs.StringVar(&a.profilePath, "profilepath", "", "path for a CPU profile")
	fs.StringVar(&a.logLevel, "loglevel", "", "log level; overrides the config")
	fs.StringVar(&a.configPath, "config", "", "path to a config file")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			a.seedSet = true
		}
	})
	if deal != "" {
		a.deals = append(a.deals, deal)
	}
	a.deals = append(a.deals, fs.Args()...)
	if a.preset != "" && a.rulesFile != "" {
		return nil, errors.New("-type and -rules cannot both be given")
	}
	return a, nil
}

func (a *cliArgs) loadRules(cfg *config.Config) (rules.Rules, error) {
	if a.rulesFile != "" {
		data, err := os.ReadFile(a.rulesFile)
		if err != nil {
			return rules.Rules{}, err
		}
		return rules.Parse(data)
	}
	preset := a.preset
	if preset == "" {
		preset = cfg.DefaultPreset()
	}
	return rules.FromPreset(preset)
}

func (a *cliArgs) seedSolver(cfg *config.Config) (*automatic.SeedSolver, error) {
	r, err := a.loadRules(cfg)
	if err != nil {
		return nil, err
	}
	str := lo.Ternary(a.streamliner != "", a.streamliner, cfg.Streamliner())
	sl, err := game.ParseStreamliner(str)
	if err != nil {
		return nil, err
	}
	return &automatic.SeedSolver{
		Rules:          r,
		Timeout:        lo.Ternary(a.timeout > 0, a.timeout, cfg.Timeout()),
		CacheCapacity:  lo.Ternary(a.cache >= 0, a.cache, cfg.CacheCapacity()),
		MemoryFraction: cfg.MemoryFraction(),
		Streamliner:    sl,
	}, nil
}

// seedList gathers the seeds named by -seed, -seeds and -seedfile, in that
// order.
func (a *cliArgs) seedList() ([]int64, error) {
	var seeds []int64
	if a.seedSet {
		seeds = append(seeds, a.seed)
	}
	if a.seeds != "" {
		r, err := automatic.SeedRange(a.seeds)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, r...)
	}
	if a.seedFile != "" {
		f, err := automatic.LoadSeeds(a.seedFile)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, f...)
	}
	return seeds, nil
}

func printResult(w io.Writer, a *cliArgs, name string, res automatic.SeedResult) error {
	fmt.Fprintf(w, "--- %s ---\n", name)
	if !a.classify && res.Result.Outcome == solver.Solved {
		text, err := res.Result.SolutionText(res.Initial, a.hidden)
		if err != nil {
			return err
		}
		io.WriteString(w, text)
	}
	io.WriteString(w, res.Result.String())
	return nil
}

func run(ctx context.Context, cfg *config.Config, a *cliArgs, w io.Writer) error {
	s, err := a.seedSolver(cfg)
	if err != nil {
		return err
	}

	switch {
	case a.solvability > 0:
		seeds := lo.RangeFrom(a.seed, a.solvability)
		sr := &automatic.SolvabilityRunner{
			SeedSolver: *s,
			Cores:      lo.Ternary(a.cores > 0, a.cores, cfg.Cores()),
			Confidence: cfg.Confidence(),
			Out:        w,
		}
		if a.resume != "" {
			prior, err := automatic.AnalyzeLogFile(a.resume)
			if err != nil {
				return err
			}
			seeds = prior.Remaining(seeds)
			sr.Prior = prior.Tally
			log.Info().Int("done", len(prior.Done)).Int("remaining", len(seeds)).Msg("resuming")
		}
		_, err := sr.Run(ctx, seeds)
		return err

	case a.benchmark:
		seeds, err := a.seedList()
		if err != nil {
			return err
		}
		if len(seeds) == 0 {
			seeds = lo.RangeFrom(int64(0), 100)
		}
		_, err = automatic.Benchmark(ctx, s, seeds, w)
		return err
	}

	seeds, err := a.seedList()
	if err != nil {
		return err
	}
	if len(seeds) == 0 && len(a.deals) == 0 {
		return errors.New("nothing to solve; give a deal file, -seed or -seeds")
	}
	for _, path := range a.deals {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		d, err := game.ParseDeal(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		res, err := s.SolveDeal(ctx, d)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err = printResult(w, a, path, res); err != nil {
			return err
		}
		if res.Result.Outcome == solver.Terminated {
			return ctx.Err()
		}
	}
	for _, seed := range seeds {
		res, err := s.Solve(ctx, seed)
		if err != nil {
			return fmt.Errorf("seed %d: %w", seed, err)
		}
		if err = printResult(w, a, fmt.Sprintf("seed %d", seed), res); err != nil {
			return err
		}
		if res.Result.Outcome == solver.Terminated {
			return ctx.Err()
		}
	}
	return nil
}

func setupLogging(level string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(lo.Ternary(a.logLevel != "", a.logLevel, cfg.LogLevel()))

	if a.preset == "list" {
		fmt.Println(strings.Join(rules.PresetNames(), "\n"))
		return
	}

	if a.profilePath != "" {
		f, err := os.Create(a.profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	if err := run(ctx, cfg, a, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted")
			return
		}
		log.Error().Err(err).Msg("")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
