package inmemorystore

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vk/glsipy/internal/modulestore"
)

// Store is an in-memory implementation of modulestore.Store.
//
// Records are kept in a sync.Map keyed by module name. The resolver itself is
// single threaded, but a store may be shared by several resolvers compiling
// in parallel, so first-writer-wins is enforced with LoadOrStore.
type Store struct {
	records sync.Map // Key: module name, Value: *modulestore.Record
	count   atomic.Int64
}

// New creates a new, empty in-memory module store.
func New() *Store {
	return &Store{}
}

var _ modulestore.Store = (*Store)(nil)

// Get retrieves the record stored under name.
func (s *Store) Get(ctx context.Context, name string) (*modulestore.Record, bool) {
	v, ok := s.records.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*modulestore.Record), true
}

// Put stores rec under rec.Name if that name is still free.
func (s *Store) Put(ctx context.Context, rec *modulestore.Record) bool {
	content := make([]string, len(rec.Content))
	copy(content, rec.Content)
	stored := &modulestore.Record{Name: rec.Name, Content: content}

	if _, loaded := s.records.LoadOrStore(rec.Name, stored); loaded {
		return false
	}
	s.count.Add(1)
	return true
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	return int(s.count.Load())
}
