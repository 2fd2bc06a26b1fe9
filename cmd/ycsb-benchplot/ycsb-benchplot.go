// Command ycsb-benchplot plots averaged YCSB files as mean value against
// client count.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	bench "github.com/fjl/ycsb-bench"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func main() {
	var (
		width  int
		height int
		title  string
		ylabel string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "ycsb-benchplot --out <file> <averaged file>...",
		Short: "Plot averaged YCSB files",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, files []string) {
			if out == "" {
				log.Fatal("--out is required")
			}
			series := bench.MustReadSeries(files)
			plt, err := plot.New()
			if err != nil {
				log.Fatal(err)
			}
			plt.Title.Text = title
			plt.X.Label.Text = "clients"
			plt.Y.Label.Text = ylabel
			plt.X.Tick.Marker = clientTicks(series)
			plt.Legend.Top = true
			addPlots(plt, series)
			if err := plt.Save(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, out); err != nil {
				log.Fatal(err)
			}
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&width, "width", 15, "width of plot in cm")
	flags.IntVar(&height, "height", 10, "height of plot in cm")
	flags.StringVar(&title, "title", "", "plot title")
	flags.StringVar(&ylabel, "ylabel", "mean", "label of the value axis")
	flags.StringVar(&out, "out", "", "output filename (.png, .svg, .pdf)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPlots(plt *plot.Plot, series []bench.Series) {
	for i, s := range series {
		if len(s.Points) == 0 {
			log.Printf("Warning: %s has no data points", s.Name)
			continue
		}
		l, p, err := plotter.NewLinePoints(meanPlot(s.Points))
		if err != nil {
			log.Fatal(err)
		}
		l.Color = plotutil.Color(i)
		p.Color = plotutil.Color(i)
		p.Shape = plotutil.Shape(i)
		plt.Add(l, p)
		plt.Legend.Add(s.Name, l, p)
	}
}

// meanPlot plots X = client count against Y = mean value.
type meanPlot []bench.Point

func (p meanPlot) Len() int {
	return len(p)
}

func (p meanPlot) XY(i int) (float64, float64) {
	return float64(p[i].Clients), p[i].Mean
}

// clientTicks labels the X axis with the client counts present in the data.
type clientTicks []bench.Series

func (ct clientTicks) Ticks(min, max float64) (t []plot.Tick) {
	seen := make(map[int]bool)
	var counts []int
	for _, s := range ct {
		for _, p := range s.Points {
			if !seen[p.Clients] {
				seen[p.Clients] = true
				counts = append(counts, p.Clients)
			}
		}
	}
	sort.Ints(counts)
	for _, c := range counts {
		if v := float64(c); v >= math.Floor(min) && v <= math.Ceil(max) {
			t = append(t, plot.Tick{Value: v, Label: fmt.Sprint(c)})
		}
	}
	return t
}
