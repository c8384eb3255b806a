package automatic

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/solvitaire/solver"
)

// PriorRun is what a solvability log says about the seeds it finished.
type PriorRun struct {
	Tally Tally
	Done  map[int64]bool
}

// AnalyzeLogFile reads the output of an earlier solvability run so it can be
// resumed. Only per-seed rows are counted; headers and summaries are
// skipped, as are rows for seeds that were cut short.
func AnalyzeLogFile(path string) (*PriorRun, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	prior := &PriorRun{Done: map[int64]bool{}}
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) < 3 {
			continue
		}
		// Row looks like:
		// seed, outcome, time, ..., overall outcome
		seed, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			continue
		}
		outcome, err := solver.ParseOutcome(strings.TrimSpace(fields[len(fields)-1]))
		if err != nil {
			// the summary row also starts with a number
			continue
		}
		if prior.Done[seed] {
			return nil, fmt.Errorf("line %d: seed %d appears twice", lineNum, seed)
		}
		prior.Done[seed] = true
		prior.Tally.Add(outcome)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}
	return prior, nil
}

// Remaining filters out the seeds the prior run already finished.
func (p *PriorRun) Remaining(seeds []int64) []int64 {
	var out []int64
	for _, s := range seeds {
		if !p.Done[s] {
			out = append(out, s)
		}
	}
	return out
}
