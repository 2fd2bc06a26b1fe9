package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Sink receives filtered records.
type Sink interface {
	Add(k Key, r Record) error
}

// Source provides the records of a configuration to the averaging step.
type Source interface {
	// Records returns all records of k. It returns an error wrapping
	// ErrMissingFile if nothing was recorded for k.
	Records(k Key) ([]Record, error)
	// Remove deletes the records of k.
	Remove(k Key) error
}

// Store is a record Sink and Source.
type Store interface {
	Sink
	Source
	io.Closer
}

// Store kinds accepted by OpenStore.
const (
	StoreFiles   = "files"
	StoreLevelDB = "leveldb"
)

// OpenStore opens a record store of the given kind. Record files are kept in
// dir, leveldb databases at dbpath.
func OpenStore(kind, dir, dbpath string) (Store, error) {
	switch kind {
	case "", StoreFiles:
		return NewDirStore(dir), nil
	case StoreLevelDB:
		if dbpath == "" {
			dbpath = filepath.Join(dir, "ycsb-records.db")
		}
		return OpenLevelStore(dbpath)
	default:
		return nil, fmt.Errorf("unknown store %q (want %s or %s)", kind, StoreFiles, StoreLevelDB)
	}
}

// Results is an in-memory record store.
type Results map[Key][]Record

func (res Results) Add(k Key, r Record) error {
	res[k] = append(res[k], r)
	return nil
}

func (res Results) Records(k Key) ([]Record, error) {
	recs, ok := res[k]
	if !ok {
		return nil, fmt.Errorf("%w: no records for %s", ErrMissingFile, k)
	}
	return recs, nil
}

func (res Results) Remove(k Key) error {
	delete(res, k)
	return nil
}

func (res Results) Close() error {
	return nil
}

// Merge appends all records of other.
func (res Results) Merge(other Results) {
	for k, recs := range other {
		res[k] = append(res[k], recs...)
	}
}

// DirStore keeps one record file per configuration in a directory.
// Every Add opens the file in append mode and closes it again.
type DirStore struct {
	Dir string
}

func NewDirStore(dir string) *DirStore {
	if dir == "" {
		dir = "."
	}
	return &DirStore{Dir: dir}
}

// Path returns the record file path of k.
func (s *DirStore) Path(k Key) string {
	return filepath.Join(s.Dir, k.FileName())
}

func (s *DirStore) Add(k Key, r Record) error {
	f, err := os.OpenFile(s.Path(k), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, r.String()+"\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *DirStore) Records(k Key) ([]Record, error) {
	return ReadRecords(s.Path(k))
}

func (s *DirStore) Remove(k Key) error {
	return os.Remove(s.Path(k))
}

func (s *DirStore) Close() error {
	return nil
}

// ReadRecords reads a per-configuration record file.
func ReadRecords(file string) ([]Record, error) {
	fd, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	} else if err != nil {
		return nil, err
	}
	defer fd.Close()

	var (
		recs []Record
		br   = bufio.NewReader(fd)
		name = filepath.Base(file)
	)
	for lineno := 1; ; lineno++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			r, perr := ParseRecord(line)
			if perr != nil {
				return recs, &LineError{Name: name, Line: lineno, Err: perr}
			}
			recs = append(recs, r)
		}
		if err == io.EOF {
			return recs, nil
		} else if err != nil {
			return recs, err
		}
	}
}
