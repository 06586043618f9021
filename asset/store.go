// Package asset provides the byte-addressable asset store used by the engine
// Assets are read once per id and served from memory afterwards
package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/buji/status"
)

var (
	ErrInvalidPath = errors.New("invalid asset path")
	ErrEmptyPath   = errors.New("empty asset path")
)

// Store memoizes asset bytes by id
// The first LoadOrGet for an id reads from the backing filesystem; later calls return the cached
// slice without touching storage, even if a different path is passed
// Returned slices are shared and must be treated as read-only
type Store struct {
	mu     sync.Mutex
	fsys   fs.FS
	assets map[uint32][]byte

	statReads *atomic.Int64
	statHits  *atomic.Int64
}

// NewStore creates a store reading from fsys
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:      fsys,
		assets:    make(map[uint32][]byte),
		statReads: new(atomic.Int64),
		statHits:  new(atomic.Int64),
	}
}

// NewDirStore creates a store rooted at dir on the host filesystem
func NewDirStore(dir string) *Store {
	return NewStore(os.DirFS(dir))
}

// WithMetrics routes read and hit counters into reg
func (s *Store) WithMetrics(reg *status.Registry) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statReads = reg.Counters.Get(status.AssetReads)
	s.statHits = reg.Counters.Get(status.AssetHits)
	return s
}

// LoadOrGet returns the bytes cached for id, reading path on the first request
// A failed read caches nothing, so a later call retries the read
func (s *Store) LoadOrGet(id uint32, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok := s.assets[id]; ok {
		s.statHits.Add(1)
		return data, nil
	}

	if path == "" {
		return nil, fmt.Errorf("asset %d: %w", id, ErrEmptyPath)
	}
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("asset %d %q: %w", id, path, ErrInvalidPath)
	}

	data, err := fs.ReadFile(s.fsys, path)
	s.statReads.Add(1)
	if err != nil {
		return nil, fmt.Errorf("asset %d: read %q: %w", id, path, err)
	}

	s.assets[id] = data
	return data, nil
}

// Get returns cached bytes without reading storage
func (s *Store) Get(id uint32) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.assets[id]
	return data, ok
}

// Put caches data under id, replacing nothing that is already present
// Returns false when id was already cached
func (s *Store) Put(id uint32, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; ok {
		return false
	}
	s.assets[id] = data
	return true
}

// Len returns the number of cached assets
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assets)
}
