package bench

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRecords(t *testing.T, store Sink, label string, p Pair, clients string, fields ...string) {
	t.Helper()
	for _, f := range fields {
		require.NoError(t, store.Add(Key{label, p, clients}, Record{Clients: clients, Field: f}))
	}
}

func TestAverageThreeCounts(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir)
	p := Pair{"READ", "AverageLatency"}
	writeRecords(t, store, "run", p, "1", " 10", " 20")
	writeRecords(t, store, "run", p, "2", " 1.5", " 2.5", " 3.5")
	writeRecords(t, store, "run", p, "4", " 0.1", " 0.2")

	series, err := Average(store, AverageConfig{
		Label:   "run",
		Clients: []string{"1", "2", "4"},
		Pairs:   []Pair{p},
	}, DirAverageWriter{Dir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "YCSB_run_READ_AverageLatency.txt"))
	require.NoError(t, err)
	require.Equal(t, "1 15.0\n2 2.5\n4 0.15000000000000002\n", string(data))

	require.Len(t, series, 1)
	require.Equal(t, "YCSB_run_READ_AverageLatency", series[0].Name)
	require.Equal(t, []Point{{1, 15}, {2, 2.5}, {4, 0.15000000000000002}}, series[0].Points)

	for _, c := range []string{"1", "2", "4"} {
		_, err := os.Stat(store.Path(Key{"run", p, c}))
		require.True(t, os.IsNotExist(err), "records of %s clients not removed", c)
	}
}

func TestAverageFirstCountRecreates(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir)
	out := DirAverageWriter{Dir: dir}
	p := Pair{"a", "b"}
	cfg := AverageConfig{Label: "load", Clients: []string{"2", "8"}, Pairs: []Pair{p}}

	for i := 0; i < 2; i++ {
		writeRecords(t, store, "load", p, "2", "4")
		writeRecords(t, store, "load", p, "8", "6")
		_, err := Average(store, cfg, out)
		require.NoError(t, err)
	}
	data, err := os.ReadFile(out.Path("load", p))
	require.NoError(t, err)
	require.Equal(t, "2 4.0\n8 6.0\n", string(data))
}

func TestAverageMissingRecords(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ycsb.txt")
	require.NoError(t, os.WriteFile(input, []byte(ycsbOutput), 0o644))

	store := NewDirStore(dir)
	p := Pair{"INSERT", "AverageLatency"}
	_, err := FilterFile(input, FilterConfig{Label: "run", Clients: "1", Pairs: []Pair{p}}, store)
	require.NoError(t, err)

	_, err = Average(store, AverageConfig{Label: "run", Clients: []string{"1"}, Pairs: []Pair{p}}, DirAverageWriter{Dir: dir})
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestAverageEmptyDataset(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir)
	p := Pair{"a", "b"}
	require.NoError(t, os.WriteFile(store.Path(Key{"run", p, "1"}), nil, 0o644))

	_, err := Average(store, AverageConfig{Label: "run", Clients: []string{"1"}, Pairs: []Pair{p}}, nil)
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestAverageMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir)
	p := Pair{"a", "b"}
	require.NoError(t, os.WriteFile(store.Path(Key{"run", p, "1"}), []byte("1 2.0\n1\n"), 0o644))

	_, err := Average(store, AverageConfig{Label: "run", Clients: []string{"1"}, Pairs: []Pair{p}}, nil)
	require.ErrorIs(t, err, ErrMalformedLine)
	var lerr *LineError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, 2, lerr.Line)
}

func recordsOf(values ...float64) []Record {
	recs := make([]Record, len(values))
	for i, v := range values {
		recs[i] = Record{Clients: "1", Field: " " + strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return recs
}

func TestMeanSumsInOrder(t *testing.T) {
	// Pairwise or unrolled summation loses the small values differently.
	mean, err := Mean("cancel", recordsOf(1e16, 1, 1, 1, 1, -1e16, 3, 0.1))
	require.NoError(t, err)
	require.Equal(t, 0.3875, mean)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		values := make([]float64, 3+rng.Intn(20))
		for j := range values {
			values[j] = float64(rng.Intn(100000)) / 100
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		mean, err := Mean("latency", recordsOf(values...))
		require.NoError(t, err)
		require.Equal(t, FormatMean(sum/float64(len(values))), FormatMean(mean), "values %v", values)
	}
}

func TestFormatMean(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{0, "0.0"},
		{2.5, "2.5"},
		{310.125, "310.125"},
		{-1, "-1.0"},
		{0.0001, "0.0001"},
		{1e-5, "1e-05"},
		{1.25e-7, "1.25e-07"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e16, "1.5e+16"},
		{-2.5e20, "-2.5e+20"},
		{math.Inf(1), "inf"},
		{math.NaN(), "nan"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, FormatMean(test.in), "%v", test.in)
	}
}
