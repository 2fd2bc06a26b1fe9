package bench

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// AverageConfig selects the configurations reduced by Average.
type AverageConfig struct {
	Label   string
	Clients []string // processed in this order
	Pairs   []Pair
}

// AverageWriter receives the mean of every configuration.
type AverageWriter interface {
	// WriteAverage stores the mean of k. The first call for each
	// parameter pair has create set and must discard earlier output.
	WriteAverage(k Key, mean float64, create bool) error
}

// Point is the mean value measured at a client count.
type Point struct {
	Clients int
	Mean    float64
}

// Series holds the averaged values of one parameter pair.
type Series struct {
	Name   string
	Points []Point
}

// Average computes the mean of every (client count, pair) configuration in
// src, hands it to out and removes the configuration's records.
//
// The first client count of cfg.Clients creates the averaged output of each
// pair, later counts extend it.
func Average(src Source, cfg AverageConfig, out AverageWriter) ([]Series, error) {
	if len(cfg.Clients) == 0 {
		return nil, fmt.Errorf("%w: no client counts given", ErrBadClients)
	}
	series := make([]Series, len(cfg.Pairs))
	for j, p := range cfg.Pairs {
		series[j].Name = strings.TrimSuffix(AverageFileName(cfg.Label, p), ".txt")
	}
	for i, clients := range cfg.Clients {
		n, err := strconv.Atoi(clients)
		if err != nil {
			return series, fmt.Errorf("%w %q", ErrBadClients, clients)
		}
		for j, p := range cfg.Pairs {
			k := Key{Label: cfg.Label, Pair: p, Clients: clients}
			recs, err := src.Records(k)
			if err != nil {
				return series, err
			}
			mean, err := Mean(k.FileName(), recs)
			if err != nil {
				return series, err
			}
			if out != nil {
				if err := out.WriteAverage(k, mean, i == 0); err != nil {
					return series, err
				}
			}
			if err := src.Remove(k); err != nil {
				return series, err
			}
			series[j].Points = append(series[j].Points, Point{Clients: n, Mean: mean})
		}
	}
	return series, nil
}

// Values parses the values of recs. name identifies the record set in errors.
func Values(name string, recs []Record) ([]float64, error) {
	values := make([]float64, len(recs))
	for i, r := range recs {
		v, err := r.Value()
		if err != nil {
			return nil, &LineError{Name: name, Line: i + 1, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// Mean returns the arithmetic mean of the record values.
func Mean(name string, recs []Record) (float64, error) {
	if len(recs) == 0 {
		return 0, fmt.Errorf("%w: %s has no records", ErrEmptyDataset, name)
	}
	values, err := Values(name, recs)
	if err != nil {
		return 0, err
	}
	// Unit weights make stat.Mean add the values one by one in record
	// order. The unweighted path sums in a different order, which changes
	// the last bits of the result.
	weights := make([]float64, len(values))
	for i := range weights {
		weights[i] = 1
	}
	return stat.Mean(values, weights), nil
}

// FormatMean formats a mean value for the averaged file: the shortest
// representation that round-trips, with a ".0" suffix for integral values.
// Values with a decimal exponent below -4 or from 16 up are written in
// exponent form (1e-05, 1.5e+16).
func FormatMean(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(v, 'e', -1, 64)
	if exp, _ := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:]); exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DirAverageWriter writes averaged files into a directory.
type DirAverageWriter struct {
	Dir string
}

// Path returns the averaged file path of a parameter pair.
func (w DirAverageWriter) Path(label string, p Pair) string {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, AverageFileName(label, p))
}

func (w DirAverageWriter) WriteAverage(k Key, mean float64, create bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if create {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(w.Path(k.Label, k.Pair), flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s %s\n", k.Clients, FormatMean(mean)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
