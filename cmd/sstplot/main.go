// Command sstplot renders the SST window analysis from *_SST.txt files:
// per-day anomaly statistics across the 31-day window, and the
// distributions of the day-0 SST differences.
//
// Usage:
//
//	sstplot -dir t_data -out plots
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/storm-track-splitter/internal/stats"
)

func main() {
	dir := flag.String("dir", "t_data", "directory of *_SST.txt files")
	outDir := flag.String("out", ".", "directory receiving the rendered PNGs")
	flag.Parse()

	if err := run(*dir, *outDir); err != nil {
		log.Fatalf("sstplot: %v", err)
	}
}

func run(dir, outDir string) error {
	windows, err := stats.LoadWindows(dir)
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		return fmt.Errorf("no usable SST windows in %s", dir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := renderWindowStats(windows, filepath.Join(outDir, "sst_window_stats.png")); err != nil {
		return err
	}
	return renderDiffDistributions(windows, outDir)
}

// renderWindowStats draws median and mean anomaly per day, for all windows
// and for the day-0 cooling and warming subsets.
func renderWindowStats(windows [][]float64, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("SST anomaly around fix day (%d fixes, baseline D-10..D-4)", len(windows))
	p.X.Label.Text = "day relative to fix"
	p.Y.Label.Text = "dSST (deg C)"
	p.Legend.Top = true
	p.Legend.Left = true

	var (
		black = color.Black
		blue  = color.RGBA{B: 0xcc, A: 0xff}
		red   = color.RGBA{R: 0xcc, A: 0xff}
	)

	cooling, warming := stats.SplitBySign(windows)
	groups := []struct {
		label   string
		windows [][]float64
		color   color.Color
	}{
		{"all", windows, black},
		{"cooling", cooling, blue},
		{"warming", warming, red},
	}
	for _, g := range groups {
		ws := stats.AnomalyStats(g.windows)
		if ws.Rows == 0 {
			continue
		}
		if err := addLine(p, g.label+" median", ws.Median, g.color, false); err != nil {
			return err
		}
		if err := addLine(p, g.label+" mean", ws.Mean, g.color, true); err != nil {
			return err
		}
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// renderDiffDistributions writes one histogram per difference metric:
// sst_diff_pdf_a.png through sst_diff_pdf_c.png.
func renderDiffDistributions(windows [][]float64, outDir string) error {
	for i, d := range stats.DiffDistributions(windows) {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s  (%.1f%% > 0, n=%d)", d.Label, d.PercentPositive, len(d.Values))
		p.X.Label.Text = "dSST (deg C)"
		p.Y.Label.Text = "density"

		h, err := plotter.NewHist(plotter.Values(d.Values), 40)
		if err != nil {
			return fmt.Errorf("histogram %s: %w", d.Label, err)
		}
		h.Normalize(1)
		p.Add(h)

		name := fmt.Sprintf("sst_diff_pdf_%c.png", 'a'+i)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(outDir, name)); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}

func addLine(p *plot.Plot, label string, values []float64, c color.Color, dashed bool) error {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i + stats.MinWindowDay), Y: v}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("line %s: %w", label, err)
	}
	line.Color = c
	if dashed {
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}
