package automatic

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// SeedRange parses "n" or "a..b" (inclusive) into a list of seeds.
func SeedRange(s string) ([]int64, error) {
	first, last, isRange := strings.Cut(s, "..")
	start, err := strconv.ParseInt(strings.TrimSpace(first), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad seed range %q: %w", s, err)
	}
	if !isRange {
		return []int64{start}, nil
	}
	end, err := strconv.ParseInt(strings.TrimSpace(last), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad seed range %q: %w", s, err)
	}
	if end < start {
		return nil, fmt.Errorf("bad seed range %q: end before start", s)
	}
	return lo.RangeFrom(start, int(end-start+1)), nil
}

// SaveSeeds writes seeds to a file, one per line.
func SaveSeeds(seeds []int64, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err = writer.WriteString("# Solitaire deal seeds, one per line\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, seed := range seeds {
		if _, err = writer.WriteString(strconv.FormatInt(seed, 10) + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return writer.Flush()
}

// LoadSeeds reads seeds from a file written by SaveSeeds. Blank lines and
// lines starting with # are skipped.
func LoadSeeds(path string) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds []int64
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse seed at line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
