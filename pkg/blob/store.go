// Package blob holds generated output content behind revocable handles until it is
// written out or superseded by a newer run.
package blob

import (
	"fmt"
	"sync"
	"sync/atomic"

	"gitlab.com/tozd/go/errors"
)

// ErrRevoked is returned for handles that were revoked or never issued.
var ErrRevoked = errors.Base("blob handle revoked")

// Handle identifies one stored blob.
type Handle string

// Store is an in-memory blob registry.
type Store struct {
	mu    sync.RWMutex
	blobs map[Handle][]byte
	seq   atomic.Uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{blobs: make(map[Handle][]byte)}
}

// Put stores data and returns a new handle for it. The store keeps its own copy.
func (s *Store) Put(data []byte) Handle {
	h := Handle(fmt.Sprintf("blob:%d", s.seq.Add(1)))
	cp := append([]byte(nil), data...)

	s.mu.Lock()
	s.blobs[h] = cp
	s.mu.Unlock()

	return h
}

// Get returns the content behind h.
func (s *Store) Get(h Handle) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[h]
	if !ok {
		return nil, errors.WithDetails(ErrRevoked, "handle", string(h))
	}
	return data, nil
}

// Revoke releases h. Revoking an unknown handle is a no-op.
func (s *Store) Revoke(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, h)
}

// Len returns the number of live blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blobs)
}
