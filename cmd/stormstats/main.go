// Command stormstats reports on split per-storm files: a census of cyclone
// status codes, and optionally the same census over extraction output plus
// a scan for SST windows mixing valid and missing values.
//
// Usage:
//
//	stormstats -dir single_TC
//	stormstats -dir single_TC -sst-dir t_data
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/storm-track-splitter/internal/stats"
)

func main() {
	dir := flag.String("dir", "single_TC", "directory of split per-storm .txt files")
	sstDir := flag.String("sst-dir", "", "directory of *_SST.txt files to scan for mixed missing values")
	flag.Parse()

	if code := run(*dir, *sstDir); code != 0 {
		os.Exit(code)
	}
}

func run(dir, sstDir string) int {
	if err := printCensus(dir, "*.txt"); err != nil {
		fmt.Fprintf(os.Stderr, "stormstats: %v\n", err)
		return 1
	}

	if sstDir == "" {
		return 0
	}

	fmt.Println()
	if err := printCensus(sstDir, "*_SST.txt"); err != nil {
		fmt.Fprintf(os.Stderr, "stormstats: %v\n", err)
		return 1
	}

	mixed, err := stats.FindMixedMissing(sstDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stormstats: %v\n", err)
		return 1
	}
	if len(mixed) == 0 {
		fmt.Printf("\nNo mixed missing/valid SST rows in %s.\n", sstDir)
		return 0
	}

	fmt.Printf("\nMixed missing/valid SST rows in %s:\n", sstDir)
	for _, row := range mixed {
		fmt.Printf("  %s: line %d  (%s…)\n", row.Path, row.Line, row.Preview)
	}
	return 0
}

func printCensus(dir, pattern string) error {
	counts, err := stats.CountStatuses(dir, pattern)
	if err != nil {
		return err
	}
	total := stats.Total(counts)
	fmt.Printf("Status codes in %s (%s, %d fixes):\n", dir, pattern, total)
	for _, c := range counts {
		fmt.Printf("  %-4s %6d  (%.1f%%)\n", c.Code, c.Count, 100*float64(c.Count)/float64(total))
	}
	return nil
}
