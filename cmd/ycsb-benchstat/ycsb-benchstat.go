// Command ycsb-benchstat summarizes per-configuration record files before
// they are averaged, and scan progress files written by ycsb-analyse.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	bench "github.com/fjl/ycsb-bench"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func main() {
	cmd := &cobra.Command{
		Use:   "ycsb-benchstat <file>...",
		Short: "Summarize YCSB record files (*_clients.txt) and scan progress files (*.json)",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, files []string) {
			var records, progress []string
			for _, f := range files {
				if filepath.Ext(f) == ".json" {
					progress = append(progress, f)
				} else {
					records = append(records, f)
				}
			}
			for _, r := range bench.MustReadReports(records) {
				printRecordStats(r)
			}
			for _, f := range progress {
				printProgressStats(f)
			}
		},
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printRecordStats(r bench.Report) {
	values, err := bench.Values(r.Name, r.Records)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("-- %s (%d records)\n", r.Name, len(values))
	if len(values) == 0 {
		return
	}
	mean, std := stat.MeanStdDev(values, nil)
	median, _ := stats.Median(values)
	p95, _ := stats.Percentile(values, 95)
	p99, _ := stats.Percentile(values, 99)
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	fmt.Printf("  mean: %.3f (+- %.3f)\n", mean, std)
	fmt.Printf("  median: %.3f  p95: %.3f  p99: %.3f\n", median, p95, p99)
	fmt.Printf("  min: %.3f  max: %.3f\n", lo, hi)
}

func printProgressStats(file string) {
	events, err := bench.ReadProgress(file)
	if err != nil {
		log.Fatalf("%s: %v", file, err)
	}
	var (
		bps       []float64
		weight    []float64
		totalTime float64
		totalSize uint64
	)
	for _, ev := range events {
		if ev.Duration <= 0 {
			continue
		}
		bps = append(bps, ev.BPS())
		weight = append(weight, float64(ev.Duration))
		totalTime += float64(ev.Duration) / float64(time.Second)
		totalSize += ev.Delta
	}
	fmt.Printf("-- %s (%d events)", filepath.Base(file), len(events))
	fmt.Printf(" total time: %.4fs\n", totalTime)
	fmt.Printf(" total size: %d bytes\n", totalSize)
	if len(bps) > 0 {
		meanBPS, stdBPS := stat.MeanStdDev(bps, weight)
		fmt.Printf("  mean mb/s: %.3f (+- %.3f)\n", meanBPS/1024/1024, stdBPS/1024/1024)
	}
}
