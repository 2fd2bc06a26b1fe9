package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	inputs := map[string]string{
		"1": "[READ], AverageLatency(us), 100\n[READ], AverageLatency(us), 200\n[UPDATE], AverageLatency(us), 50\n",
		"2": "[READ], AverageLatency(us), 300\n[UPDATE], AverageLatency(us), 70\n",
		"4": "[READ], AverageLatency(us), 400\n[UPDATE], AverageLatency(us), 90\n",
	}
	files := make(map[string]string)
	for clients, content := range inputs {
		file := filepath.Join(dir, "ycsb_"+clients+".txt")
		require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
		files[clients] = file
	}

	read := Pair{"READ", "AverageLatency"}
	update := Pair{"UPDATE", "AverageLatency"}
	out := DirAverageWriter{Dir: dir}
	series, err := Run(context.Background(), RunConfig{
		Label:  "run",
		Inputs: files,
		Pairs:  []Pair{read, update},
		Output: out,
	})
	require.NoError(t, err)
	require.Len(t, series, 2)
	require.Equal(t, []Point{{1, 150}, {2, 300}, {4, 400}}, series[0].Points)
	require.Equal(t, []Point{{1, 50}, {2, 70}, {4, 90}}, series[1].Points)

	data, err := os.ReadFile(out.Path("run", read))
	require.NoError(t, err)
	require.Equal(t, "1 150.0\n2 300.0\n4 400.0\n", string(data))

	// no record files are left behind
	leftovers, err := filepath.Glob(filepath.Join(dir, "*_clients.txt"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestRunMissingInput(t *testing.T) {
	_, err := Run(context.Background(), RunConfig{
		Label:  "run",
		Inputs: map[string]string{"1": filepath.Join(t.TempDir(), "missing.txt")},
		Pairs:  []Pair{{"a", "b"}},
	})
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestRunBadClients(t *testing.T) {
	_, err := Run(context.Background(), RunConfig{
		Inputs: map[string]string{"many": "x.txt"},
		Pairs:  []Pair{{"a", "b"}},
	})
	require.ErrorIs(t, err, ErrBadClients)
}
