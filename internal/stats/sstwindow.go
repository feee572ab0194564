package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/storm-track-splitter/internal/besttrack"
)

// Window indices. Column 0 of the SST window is day -15, column 15 is the
// day of the fix, column 30 is day +15. The baseline is the pre-storm mean
// over days -10 through -4.
const (
	dayZeroIndex  = 15
	baselineFirst = 5  // day -10
	baselineLast  = 11 // day -4

	// MinWindowDay is the day offset of the first window column.
	MinWindowDay = -15
)

// windowStatuses limits anomaly statistics to fixes at tropical-storm
// strength or above.
var windowStatuses = map[string]bool{
	"TS": true,
	"HU": true,
}

// LoadWindows reads the trailing 31-column SST windows of TS and HU fixes
// from the *_SST.txt files in dir. Rows with missing or unparseable values
// anywhere in the window are skipped.
func LoadWindows(dir string) ([][]float64, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_SST.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}

	var windows [][]float64
	for _, path := range paths {
		ws, err := windowsInFile(path)
		if err != nil {
			return nil, err
		}
		windows = append(windows, ws...)
	}
	return windows, nil
}

func windowsInFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var windows [][]float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !besttrack.IsDataLine(line) {
			continue
		}
		code, ok := besttrack.Status(line)
		if !ok || !windowStatuses[code] {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < sstWindow {
			continue
		}
		if w, ok := parseWindow(fields[len(fields)-sstWindow:]); ok {
			windows = append(windows, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return windows, nil
}

func parseWindow(tokens []string) ([]float64, bool) {
	w := make([]float64, 0, sstWindow)
	for _, tok := range tokens {
		if isMissing(tok) {
			return nil, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, false
		}
		w = append(w, v)
	}
	return w, true
}

// baseline is the mean SST over days -10 through -4 of one window.
func baseline(w []float64) float64 {
	return stat.Mean(w[baselineFirst:baselineLast+1], nil)
}

// WindowStats holds per-day anomaly statistics relative to the pre-storm
// baseline. Median and Mean each carry one entry per window column, day
// -15 through day +15.
type WindowStats struct {
	Rows   int
	Median []float64
	Mean   []float64
}

// AnomalyStats computes the per-day median and mean SST anomaly
// (SST minus the window's pre-storm baseline) over the given windows.
func AnomalyStats(windows [][]float64) WindowStats {
	ws := WindowStats{
		Rows:   len(windows),
		Median: make([]float64, sstWindow),
		Mean:   make([]float64, sstWindow),
	}
	if len(windows) == 0 {
		return ws
	}

	baselines := make([]float64, len(windows))
	for i, w := range windows {
		baselines[i] = baseline(w)
	}

	vals := make([]float64, len(windows))
	for day := 0; day < sstWindow; day++ {
		for i, w := range windows {
			vals[i] = w[day] - baselines[i]
		}
		sort.Float64s(vals)
		ws.Mean[day] = stat.Mean(vals, nil)
		ws.Median[day] = stat.Quantile(0.5, stat.Empirical, vals, nil)
	}
	return ws
}

// SplitBySign partitions windows by the sign of the day-0 anomaly. A zero
// anomaly lands in the warming group.
func SplitBySign(windows [][]float64) (cooling, warming [][]float64) {
	for _, w := range windows {
		if w[dayZeroIndex]-baseline(w) < 0 {
			cooling = append(cooling, w)
		} else {
			warming = append(warming, w)
		}
	}
	return cooling, warming
}

// DiffStats describes the distribution of one SST difference metric.
type DiffStats struct {
	Label           string
	Values          []float64
	PercentPositive float64
}

// DiffDistributions computes the three SST difference metrics of the
// window analysis: day 0 minus day -15, day 0 minus day -10, and day 0
// minus the pre-storm baseline.
func DiffDistributions(windows [][]float64) []DiffStats {
	defs := []struct {
		label string
		delta func(w []float64) float64
	}{
		{"SST(D0) - SST(D-15)", func(w []float64) float64 { return w[dayZeroIndex] - w[0] }},
		{"SST(D0) - SST(D-10)", func(w []float64) float64 { return w[dayZeroIndex] - w[baselineFirst] }},
		{"SST(D0) - mean(D-10..D-4)", func(w []float64) float64 { return w[dayZeroIndex] - baseline(w) }},
	}

	out := make([]DiffStats, 0, len(defs))
	for _, def := range defs {
		d := DiffStats{Label: def.label, Values: make([]float64, 0, len(windows))}
		positive := 0
		for _, w := range windows {
			v := def.delta(w)
			d.Values = append(d.Values, v)
			if v > 0 {
				positive++
			}
		}
		if len(d.Values) > 0 {
			d.PercentPositive = 100 * float64(positive) / float64(len(d.Values))
		}
		out = append(out, d)
	}
	return out
}
