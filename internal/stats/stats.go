// Package stats computes reports over split per-storm files: a census of
// cyclone status codes, a scan for SST windows with partially missing
// values, and anomaly statistics over the 31-day SST windows.
package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/storm-track-splitter/internal/besttrack"
)

// StatusCount pairs a cyclone status code with its occurrence count.
type StatusCount struct {
	Code  string
	Count int
}

// CountStatuses tallies status codes across every fix record of the files
// in dir matching pattern ("*.txt" for split tracks, "*_SST.txt" for
// extraction output). Header and malformed lines are skipped.
func CountStatuses(dir, pattern string) ([]StatusCount, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files matching %s in %s", pattern, dir)
	}

	counts := make(map[string]int)
	for _, path := range paths {
		if err := accumulateStatuses(path, counts); err != nil {
			return nil, err
		}
	}
	return sortedCounts(counts), nil
}

func accumulateStatuses(path string, counts map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if code, ok := besttrack.Status(sc.Text()); ok {
			counts[code]++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// sortedCounts orders by descending count, ties broken by code.
func sortedCounts(counts map[string]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, StatusCount{Code: code, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Total sums the counts.
func Total(counts []StatusCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}

// sstWindow is the number of trailing SST columns appended by the
// extraction step: one per day from D-15 through D+15.
const sstWindow = 31

// missingTokens are the sentinels the extraction step writes for days with
// no usable SST value.
var missingTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"-999": true, // legacy placeholder
}

// MixedRow locates a fix record whose SST window mixes valid and missing
// values.
type MixedRow struct {
	Path    string
	Line    int
	Preview string // first 20 characters of the row
}

// FindMixedMissing scans the *_SST.txt files in dir for rows whose trailing
// 31-column SST window contains both valid and missing values. Rows that
// are entirely valid or entirely missing are fine; a mix usually means the
// extraction straddled a coastline or a dataset gap and deserves review.
func FindMixedMissing(dir string) ([]MixedRow, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_SST.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}

	var mixed []MixedRow
	for _, path := range paths {
		rows, err := mixedRowsInFile(path)
		if err != nil {
			return nil, err
		}
		mixed = append(mixed, rows...)
	}
	return mixed, nil
}

func mixedRowsInFile(path string) ([]MixedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var mixed []MixedRow
	sc := bufio.NewScanner(f)
	for lineNum := 1; sc.Scan(); lineNum++ {
		line := sc.Text()
		if !besttrack.IsDataLine(line) {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < sstWindow {
			continue
		}

		missing := 0
		for _, tok := range fields[len(fields)-sstWindow:] {
			if isMissing(tok) {
				missing++
			}
		}
		if missing > 0 && missing < sstWindow {
			mixed = append(mixed, MixedRow{
				Path:    path,
				Line:    lineNum,
				Preview: preview(line),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return mixed, nil
}

func isMissing(tok string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(tok))]
}

func preview(line string) string {
	if len(line) > 20 {
		return line[:20]
	}
	return line
}
