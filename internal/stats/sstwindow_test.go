package stats_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/couchcryptid/storm-track-splitter/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusRow builds a data line with the given status and SST window tokens.
func statusRow(status string, tokens []string) string {
	return "20200916, 0000,  , " + status + ", 13.4N, 82.7W, " + strings.Join(tokens, ", ")
}

// flatWindow is 31 columns of base with day-relative overrides applied.
// Offsets are days: -15 is the first column, 0 the fix day.
func flatWindow(base float64, overrides map[int]float64) []float64 {
	w := make([]float64, 31)
	for i := range w {
		w[i] = base
	}
	for day, v := range overrides {
		w[day-stats.MinWindowDay] = v
	}
	return w
}

func windowTokens(w []float64) []string {
	tokens := make([]string, len(w))
	for i, v := range w {
		tokens[i] = strconv.FormatFloat(v, 'f', 1, 64)
	}
	return tokens
}

func TestLoadWindows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AL012020_Ana_1_SST.txt",
		"AL012020, Ana , 1\n"+
			statusRow("TS", windowTokens(flatWindow(28, map[int]float64{0: 27})))+"\n"+
			statusRow("HU", windowTokens(flatWindow(29, nil)))+"\n"+
			statusRow("EX", windowTokens(flatWindow(20, nil)))+"\n"+ // extratropical, excluded
			statusRow("TS", sstTokens("28.1", map[int]string{4: "nan"}))+"\n"+
			statusRow("TS", sstTokens("28.1", map[int]string{9: "-999"}))+"\n")

	windows, err := stats.LoadWindows(dir)
	require.NoError(t, err)

	require.Len(t, windows, 2)
	assert.InDelta(t, 27, windows[0][15], 1e-9)
	assert.InDelta(t, 29, windows[1][15], 1e-9)
}

func TestLoadWindows_EmptyDir(t *testing.T) {
	windows, err := stats.LoadWindows(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestAnomalyStats(t *testing.T) {
	windows := [][]float64{
		flatWindow(28, map[int]float64{0: 27}), // day-0 anomaly -1
		flatWindow(28, map[int]float64{0: 29}), // +1
		flatWindow(28, map[int]float64{0: 31}), // +3
	}

	ws := stats.AnomalyStats(windows)

	assert.Equal(t, 3, ws.Rows)
	require.Len(t, ws.Mean, 31)
	assert.InDelta(t, 1, ws.Mean[15], 1e-9)
	assert.InDelta(t, 1, ws.Median[15], 1e-9)
	// Away from day 0 every window sits on its baseline.
	assert.InDelta(t, 0, ws.Mean[0], 1e-9)
	assert.InDelta(t, 0, ws.Median[30], 1e-9)
}

func TestAnomalyStats_NoWindows(t *testing.T) {
	ws := stats.AnomalyStats(nil)
	assert.Equal(t, 0, ws.Rows)
	assert.Len(t, ws.Median, 31)
}

func TestSplitBySign(t *testing.T) {
	windows := [][]float64{
		flatWindow(28, map[int]float64{0: 27}),
		flatWindow(28, map[int]float64{0: 29}),
		flatWindow(28, nil), // zero anomaly counts as warming
	}

	cooling, warming := stats.SplitBySign(windows)

	assert.Len(t, cooling, 1)
	assert.Len(t, warming, 2)
}

func TestDiffDistributions(t *testing.T) {
	windows := [][]float64{
		flatWindow(26, map[int]float64{-15: 25, 0: 27}),
	}

	diffs := stats.DiffDistributions(windows)
	require.Len(t, diffs, 3)

	assert.InDelta(t, 2, diffs[0].Values[0], 1e-9) // D0 - D-15
	assert.InDelta(t, 1, diffs[1].Values[0], 1e-9) // D0 - D-10
	assert.InDelta(t, 1, diffs[2].Values[0], 1e-9) // D0 - baseline
	for _, d := range diffs {
		assert.InDelta(t, 100, d.PercentPositive, 1e-9)
	}
}
