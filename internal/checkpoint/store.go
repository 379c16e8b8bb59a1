// Package checkpoint keeps solution snapshots of a running integrator in a
// cometbft-db key/value store, one entry per recorded step.
package checkpoint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/shamaton/msgpack/v2"

	"github.com/sunbind/sunbind/types"
)

var prefix = []byte("cp/")

// ErrClosed is returned by every operation on a closed store.
var ErrClosed = errors.New("checkpoint store is closed")

// Point is one recorded solution.
type Point struct {
	Step uint64
	T    float64
	Y    []float64
}

// record is the stored value; the step lives in the key.
type record struct {
	T float64
	Y []float64
}

// Store is safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	db  dbm.DB
	len int
}

// Open creates or opens the store described by cfg.
func Open(cfg types.CheckpointConfig) (*Store, error) {
	var (
		db  dbm.DB
		err error
	)
	switch dbm.BackendType(cfg.Backend) {
	case dbm.MemDBBackend, "":
		db = dbm.NewMemDB()
	default:
		db, err = dbm.NewDB(cfg.Name, dbm.BackendType(cfg.Backend), cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open checkpoint store %q: %w", cfg.Name, err)
		}
	}
	return newStore(db)
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *Store {
	s, err := newStore(dbm.NewMemDB())
	if err != nil {
		// an empty memdb cannot fail to iterate
		panic(err)
	}
	return s
}

func newStore(db dbm.DB) (*Store, error) {
	s := &Store{db: db}
	err := s.scan(func([]byte, []byte) bool {
		s.len++
		return true
	}, false)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func key(step uint64) []byte {
	k := make([]byte, len(prefix)+8)
	copy(k, prefix)
	binary.BigEndian.PutUint64(k[len(prefix):], step)
	return k
}

func decode(k, v []byte) (Point, error) {
	var r record
	if err := msgpack.UnmarshalAsArray(v, &r); err != nil {
		return Point{}, fmt.Errorf("decode checkpoint: %w", err)
	}
	return Point{Step: binary.BigEndian.Uint64(k[len(prefix):]), T: r.T, Y: r.Y}, nil
}

// end of the prefix range
func prefixEnd() []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}

// Save stores p under its step, replacing any earlier point for that step.
// Y is encoded before Save returns, so views handed to hooks may be passed
// directly.
func (s *Store) Save(p Point) error {
	if math.IsNaN(p.T) {
		return fmt.Errorf("checkpoint at step %d: time is NaN", p.Step)
	}
	bz, err := msgpack.MarshalAsArray(record{T: p.T, Y: p.Y})
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	k := key(p.Step)
	had, err := s.db.Has(k)
	if err != nil {
		return err
	}
	if err := s.db.Set(k, bz); err != nil {
		return err
	}
	if !had {
		s.len++
	}
	return nil
}

// Load returns the point stored for step.
func (s *Store) Load(step uint64) (Point, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return Point{}, false, ErrClosed
	}
	k := key(step)
	v, err := s.db.Get(k)
	if err != nil || v == nil {
		return Point{}, false, err
	}
	p, err := decode(k, v)
	return p, err == nil, err
}

// Nearest returns the last recorded point whose time does not exceed t.
func (s *Store) Nearest(t float64) (Point, bool, error) {
	var (
		best  Point
		found bool
		derr  error
	)
	err := s.scan(func(k, v []byte) bool {
		p, err := decode(k, v)
		if err != nil {
			derr = err
			return false
		}
		if p.T <= t {
			best, found = p, true
			return false
		}
		return true
	}, true)
	if err == nil {
		err = derr
	}
	return best, found, err
}

// Range calls fn for every point in step order until fn returns false.
func (s *Store) Range(fn func(Point) bool) error {
	var derr error
	err := s.scan(func(k, v []byte) bool {
		p, err := decode(k, v)
		if err != nil {
			derr = err
			return false
		}
		return fn(p)
	}, false)
	if err != nil {
		return err
	}
	return derr
}

func (s *Store) scan(fn func(k, v []byte) bool, reverse bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	var (
		it  dbm.Iterator
		err error
	)
	if reverse {
		it, err = s.db.ReverseIterator(prefix, prefixEnd())
	} else {
		it, err = s.db.Iterator(prefix, prefixEnd())
	}
	if err != nil {
		return err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

// Len returns the number of stored points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.len
}

// Close releases the underlying database. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
