package bench

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelStore(t *testing.T) {
	dbpath := filepath.Join(t.TempDir(), "records.db")
	store, err := OpenLevelStore(dbpath)
	require.NoError(t, err)

	p := Pair{"READ", "AverageLatency"}
	k1 := Key{"run", p, "1"}
	k10 := Key{"run", p, "10"}
	writeRecords(t, store, "run", p, "1", " 3", " 4")
	writeRecords(t, store, "run", p, "10", " 7")

	recs, err := store.Records(k1)
	require.NoError(t, err)
	require.Equal(t, []Record{{"1", " 3"}, {"1", " 4"}}, recs)

	// sequence numbers continue after reopening
	require.NoError(t, store.Close())
	store, err = OpenLevelStore(dbpath)
	require.NoError(t, err)
	defer store.Close()
	writeRecords(t, store, "run", p, "1", " 5")
	recs, err = store.Records(k1)
	require.NoError(t, err)
	require.Equal(t, []Record{{"1", " 3"}, {"1", " 4"}, {"1", " 5"}}, recs)

	var keys []Key
	require.NoError(t, store.Each(func(k Key, r Record) error {
		keys = append(keys, k)
		return nil
	}))
	require.Equal(t, []Key{k1, k1, k1, k10}, keys)

	require.NoError(t, store.Remove(k1))
	_, err = store.Records(k1)
	require.ErrorIs(t, err, ErrMissingFile)
	recs, err = store.Records(k10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestLevelStoreCloseTwice(t *testing.T) {
	store, err := OpenLevelStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestLevelStoreAverage(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(StoreLevelDB, dir, "")
	require.NoError(t, err)
	defer store.Close()

	p := Pair{"a", "b"}
	writeRecords(t, store, "load", p, "1", "1", "2", "3")
	writeRecords(t, store, "load", p, "2", "5")
	series, err := Average(store, AverageConfig{Label: "load", Clients: []string{"1", "2"}, Pairs: []Pair{p}}, nil)
	require.NoError(t, err)
	require.Equal(t, []Point{{1, 2}, {2, 5}}, series[0].Points)

	_, err = store.Records(Key{"load", p, "1"})
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestOpenStoreUnknown(t *testing.T) {
	_, err := OpenStore("redis", t.TempDir(), "")
	require.Error(t, err)
}

func TestResults(t *testing.T) {
	p := Pair{"a", "b"}
	a := Results{}
	b := Results{}
	require.NoError(t, a.Add(Key{"l", p, "2"}, Record{"2", "1"}))
	require.NoError(t, b.Add(Key{"l", p, "2"}, Record{"2", "3"}))
	require.NoError(t, b.Add(Key{"l", p, "10"}, Record{"10", "4"}))
	a.Merge(b)

	require.Len(t, a, 2)
	recs, err := a.Records(Key{"l", p, "2"})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.NoError(t, a.Remove(Key{"l", p, "2"}))
	_, err = a.Records(Key{"l", p, "2"})
	require.ErrorIs(t, err, ErrMissingFile)
}
