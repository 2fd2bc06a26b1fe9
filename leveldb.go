package bench

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelStore keeps records in a leveldb database, so filtering and averaging
// can run as separate processes without per-configuration files.
//
// Keys are <label> 0x00 <A> 0x00 <B> 0x00 <clients> 0x00 <seq>, where seq is
// a big-endian uint64 that keeps records in insertion order.
type LevelStore struct {
	db *leveldb.DB

	mu     sync.Mutex
	seq    map[string]uint64 // next sequence number per key prefix
	closed bool
}

func OpenLevelStore(dir string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("can't open record database: %w", err)
	}
	return &LevelStore{db: db, seq: make(map[string]uint64)}, nil
}

func levelPrefix(k Key) []byte {
	var b bytes.Buffer
	for _, s := range []string{k.Label, k.Pair.A, k.Pair.B, k.Clients} {
		b.WriteString(s)
		b.WriteByte(0)
	}
	return b.Bytes()
}

func decodeLevelKey(key []byte) (Key, bool) {
	if len(key) < 9 {
		return Key{}, false
	}
	parts := bytes.Split(key[:len(key)-9], []byte{0})
	if len(parts) != 4 {
		return Key{}, false
	}
	return Key{
		Label:   string(parts[0]),
		Pair:    Pair{A: string(parts[1]), B: string(parts[2])},
		Clients: string(parts[3]),
	}, true
}

// nextSeq returns the next free sequence number below prefix.
func (s *LevelStore) nextSeq(prefix []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.seq[string(prefix)]
	if !ok {
		it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
		if it.Last() {
			n = binary.BigEndian.Uint64(it.Key()[len(prefix):]) + 1
		}
		it.Release()
		if err := it.Error(); err != nil {
			return 0, err
		}
	}
	s.seq[string(prefix)] = n + 1
	return n, nil
}

func (s *LevelStore) Add(k Key, r Record) error {
	prefix := levelPrefix(k)
	n, err := s.nextSeq(prefix)
	if err != nil {
		return err
	}
	key := binary.BigEndian.AppendUint64(prefix, n)
	return s.db.Put(key, []byte(r.Field), nil)
}

func (s *LevelStore) Records(k Key) ([]Record, error) {
	it := s.db.NewIterator(util.BytesPrefix(levelPrefix(k)), nil)
	defer it.Release()

	var recs []Record
	for it.Next() {
		recs = append(recs, Record{Clients: k.Clients, Field: string(it.Value())})
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	if recs == nil {
		return nil, fmt.Errorf("%w: no records for %s", ErrMissingFile, k)
	}
	return recs, nil
}

func (s *LevelStore) Remove(k Key) error {
	prefix := levelPrefix(k)
	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	batch := new(leveldb.Batch)
	for it.Next() {
		batch.Delete(bytes.Clone(it.Key()))
	}
	it.Release()
	if err := it.Error(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.seq, string(prefix))
	s.mu.Unlock()
	return s.db.Write(batch, nil)
}

// Each calls fn for every stored record, in key order.
func (s *LevelStore) Each(fn func(Key, Record) error) error {
	it := s.db.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		k, ok := decodeLevelKey(it.Key())
		if !ok {
			return fmt.Errorf("invalid record key %x", it.Key())
		}
		if err := fn(k, Record{Clients: k.Clients, Field: string(it.Value())}); err != nil {
			return err
		}
	}
	return it.Error()
}

// Close closes the database. Closing an already closed store is a no-op.
func (s *LevelStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
